package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/skoshiwosh/collager/pkg/config"
	"github.com/skoshiwosh/collager/pkg/logging"
	"github.com/spf13/cobra"
)

// app carries state resolved once in PersistentPreRunE to every command
type app struct {
	cfg    *config.Config
	closer io.Closer
}

// Execute runs the root command with args and closes the log file on every
// exit path, including a failed RunE which skips the post-run hooks.
func Execute(ctx context.Context, gitsha string, args []string) error {
	root, a := newRoot(ctx, gitsha)
	root.SetArgs(args)
	return a.execute(ctx, root)
}

func (a *app) execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if cerr := a.teardown(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func newRoot(ctx context.Context, gitsha string) (*cobra.Command, *app) {
	a := &app{cfg: config.DefaultConfig()}
	cmd := &cobra.Command{
		Use:   "collager [flags] <image_path>",
		Short: "tile a source image in mirrored 2x2 patterns",
		Long: "Generates mirrored variants of a source image and 2x2 collages of them.\n" +
			"Outputs are written next to the source unless --out-dir is given.\n\n" +
			patternListing(),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(ctx, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBuild(ctx, cmd, args)
		},
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewPatternsCmd(ctx),
		NewBoxesCmd(ctx, a),
		NewConfigCmd(ctx),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-file", "", "also write logs to this rotating file")
	pf.String("config", "", "YAML config file")
	f := cmd.Flags()
	f.StringP("index", "i", "", "optional index list of patterns, e.g. 0,2,5-7 (4 alone writes a plain tile)")
	f.StringP("out-dir", "o", "", "output directory (default: source directory)")
	return cmd, a
}

// setup loads the config and installs the default logger; flags win over
// the config file.
func (a *app) setup(ctx context.Context, cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		cfg.Logging.Level = f.Value.String()
	}
	if f := cmd.Flags().Lookup("log-file"); f != nil && f.Changed {
		cfg.Logging.File = f.Value.String()
	}
	a.cfg = cfg

	level, levelErr := logging.ParseLevel(cfg.Logging.Level)
	w, closer := logging.Writer(os.Stdout, cfg.FileOptions())
	a.closer = closer
	slog.SetDefault(logging.Logger(w, cfg.Logging.JSON, level))
	if levelErr != nil {
		slog.WarnContext(ctx, "Invalid log level, defaulting to INFO", "level", cfg.Logging.Level, "error", levelErr)
	}
	return nil
}

func (a *app) teardown() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Long:  "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), gitsha)
		},
	}
	return cmd
}
