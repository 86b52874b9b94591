package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/skoshiwosh/collager/pkg/collage"
	"github.com/skoshiwosh/collager/pkg/imageio"
	"github.com/skoshiwosh/collager/pkg/session"
	"github.com/spf13/cobra"
)

// NewBoxesCmd drives the four-box editor session without a window
func NewBoxesCmd(ctx context.Context, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boxes <image_path>",
		Short: "save the four-box collages",
		Long: "Composes the four-box patterns for a source image and saves the selected\n" +
			"boxes next to the source as {base}_cll{i}{ext}, or under names given with --name.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !imageio.IsFile(path) {
				cmd.Help()
				return fmt.Errorf("%w: %s", imageio.ErrSourceNotFound, path)
			}
			s := session.New()
			if err := s.Load(ctx, path); err != nil {
				return err
			}

			if sel, _ := cmd.Flags().GetString("select"); cmd.Flags().Changed("select") {
				if err := applySelection(s, sel); err != nil {
					return err
				}
			}
			names, _ := cmd.Flags().GetStringArray("name")
			for _, kv := range names {
				i, name, err := parseBoxName(kv)
				if err != nil {
					return err
				}
				if err := s.SetOutputName(i, name); err != nil {
					return err
				}
			}

			if dir, _ := cmd.Flags().GetString("preview-dir"); dir != "" {
				width, _ := cmd.Flags().GetInt("preview-width")
				if !cmd.Flags().Changed("preview-width") {
					width = a.cfg.Preview.Width
				}
				if err := writePreviews(s, path, dir, width); err != nil {
					return err
				}
			}

			saved, err := s.Save(ctx)
			for _, p := range saved {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return err
		},
	}
	f := cmd.Flags()
	f.String("select", "0-3", "boxes to save, e.g. 0,2")
	f.StringArray("name", nil, "output name for a box as i=file (repeatable)")
	f.String("preview-dir", "", "also write preview thumbnails to this directory")
	f.Int("preview-width", session.DefaultPreviewWidth, "preview thumbnail width")
	return cmd
}

func applySelection(s *session.Session, spec string) error {
	indices, err := collage.ParseIndices(spec)
	if err != nil {
		return err
	}
	for i := 0; i < session.Boxes; i++ {
		if err := s.SetSelected(i, false); err != nil {
			return err
		}
	}
	for _, i := range indices {
		if err := s.SetSelected(i, true); err != nil {
			return err
		}
	}
	return nil
}

func parseBoxName(kv string) (int, string, error) {
	k, v, ok := strings.Cut(kv, "=")
	if !ok {
		return 0, "", fmt.Errorf("invalid --name %q, want i=file", kv)
	}
	i, err := strconv.Atoi(strings.TrimSpace(k))
	if err != nil {
		return 0, "", fmt.Errorf("invalid --name %q: %w", kv, err)
	}
	return i, v, nil
}

func writePreviews(s *session.Session, srcPath, dir string, width int) error {
	src, err := collage.ParseSource(srcPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for i := 0; i < session.Boxes; i++ {
		img, err := s.Preview(i, width)
		if err != nil {
			return err
		}
		name, err := collage.BasicCollageName(src.Base+"_preview", ".png", i)
		if err != nil {
			return err
		}
		if err := imageio.Save(img, filepath.Join(dir, name), imageio.MaxQuality); err != nil {
			return err
		}
	}
	return nil
}
