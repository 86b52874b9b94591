package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/skoshiwosh/collager/pkg/collage"
	"github.com/skoshiwosh/collager/pkg/generate"
	"github.com/skoshiwosh/collager/pkg/imageio"
	"github.com/spf13/cobra"
)

// tileSpec is the index value that selects the plain four-corner tile
// instead of catalog index 4
const tileSpec = "4"

var errNoImage = errors.New("image path is required")

// runBuild is the root command: collages for the requested indices, or
// every index when --index is absent.
func (a *app) runBuild(ctx context.Context, cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		cmd.Help()
		return errNoImage
	}
	path := args[0]
	if !imageio.IsFile(path) {
		slog.ErrorContext(ctx, "Invalid file argument", "path", path)
		cmd.Help()
		return fmt.Errorf("%w: %s", imageio.ErrSourceNotFound, path)
	}

	outDir, _ := cmd.Flags().GetString("out-dir")
	if outDir == "" {
		outDir = a.cfg.Output.Dir
	}
	g := &generate.Generator{OutDir: outDir, Log: slog.Default()}

	spec, _ := cmd.Flags().GetString("index")
	var indices []int
	switch {
	case !cmd.Flags().Changed("index"):
		indices = collage.AllIndices()
	case spec == tileSpec:
		out, err := g.Tile(ctx, path)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.Path)
		slog.InfoContext(ctx, "Successfully collaged", "path", path)
		return nil
	default:
		var err error
		if indices, err = collage.ParseIndices(spec); err != nil {
			return err
		}
		slog.DebugContext(ctx, "Pattern indices", "indices", indices)
	}

	outs, err := g.Build(ctx, path, indices)
	for _, out := range outs {
		fmt.Fprintln(cmd.OutOrStdout(), out.Path)
	}
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "Successfully collaged", "path", path, "outputs", len(outs))
	return nil
}
