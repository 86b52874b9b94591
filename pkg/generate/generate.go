// Package generate writes collage catalogs for a source image to disk.
package generate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/skoshiwosh/collager/pkg/collage"
	"github.com/skoshiwosh/collager/pkg/imageio"
	"github.com/skoshiwosh/collager/pkg/util"
)

// Kind distinguishes the files a run produces
type Kind string

const (
	KindVariant Kind = "variant"
	KindCollage Kind = "collage"
	KindTile    Kind = "tile"
)

// Output describes one written file
type Output struct {
	Kind        Kind
	Index       int             // catalog index, KindCollage only
	Variant     collage.Variant // KindVariant only
	Path        string
	Size        image.Point
	Fingerprint string
}

// Generator builds collages from source files. The zero value writes next
// to the source and logs to slog.Default.
type Generator struct {
	// OutDir overrides the source directory as destination
	OutDir string
	// Log receives progress records; nil means slog.Default()
	Log *slog.Logger
}

func (g *Generator) log() *slog.Logger {
	if g.Log != nil {
		return g.Log
	}
	return slog.Default()
}

type loaded struct {
	src collage.Source
	set *collage.MirrorSet
}

func (g *Generator) load(ctx context.Context, srcPath string) (*loaded, error) {
	if !imageio.IsFile(srcPath) {
		return nil, fmt.Errorf("%w: %s", imageio.ErrSourceNotFound, srcPath)
	}
	src, err := collage.ParseSource(srcPath)
	if err != nil {
		return nil, err
	}
	// variants keep the source format unless nothing can write it
	src.Ext = imageio.OutputExt(srcPath, collage.CollageExt)
	img, err := imageio.Open(srcPath)
	if err != nil {
		return nil, err
	}
	set, err := collage.DeriveVariants(img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", srcPath, err)
	}
	g.log().DebugContext(ctx, "Loaded source", "path", srcPath, "width", set.Size().X, "height", set.Size().Y)
	return &loaded{src: src.WithDir(g.OutDir), set: set}, nil
}

// Build writes the catalog collages listed in indices for the image at
// srcPath. With more than one index the three mirror variants are written
// first. An out of range index is skipped when several were requested and
// fails the run when it is the only one.
func (g *Generator) Build(ctx context.Context, srcPath string, indices []int) ([]Output, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: no indices", collage.ErrMalformedIndexSpec)
	}
	l, err := g.load(ctx, srcPath)
	if err != nil {
		return nil, err
	}
	log := g.log()

	var outputs []Output
	if len(indices) > 1 {
		for _, v := range []collage.Variant{collage.MirroredH, collage.MirroredV, collage.MirroredHV} {
			if err := ctx.Err(); err != nil {
				return outputs, err
			}
			path, err := l.src.VariantPath(v)
			if err != nil {
				return outputs, err
			}
			img := l.set.Variant(v)
			if err := imageio.Save(img, path, imageio.MaxQuality); err != nil {
				return outputs, err
			}
			out := Output{Kind: KindVariant, Variant: v, Path: path, Size: img.Bounds().Size(), Fingerprint: util.ImageUUID(img)}
			log.InfoContext(ctx, "Saved mirror variant", "variant", v.String(), "path", path)
			outputs = append(outputs, out)
		}
	}

	for _, i := range indices {
		if err := ctx.Err(); err != nil {
			return outputs, err
		}
		p, err := collage.PatternAt(i)
		if errors.Is(err, collage.ErrIndexOutOfRange) && len(indices) > 1 {
			log.WarnContext(ctx, "Skipping collage", "index", i, "error", err)
			continue
		}
		if err != nil {
			return outputs, err
		}
		img, err := collage.Compose(p, l.set)
		if err != nil {
			return outputs, fmt.Errorf("collage %d: %w", i, err)
		}
		path, err := l.src.CollagePath(i)
		if err != nil {
			return outputs, err
		}
		if err := imageio.Save(img, path, imageio.MaxQuality); err != nil {
			return outputs, err
		}
		out := Output{Kind: KindCollage, Index: i, Path: path, Size: img.Bounds().Size(), Fingerprint: util.ImageUUID(img)}
		log.InfoContext(ctx, "Saved collage", "index", i, "pattern", p.Label(), "path", path,
			"width", out.Size.X, "height", out.Size.Y, "fingerprint", out.Fingerprint)
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// Tile writes the source repeated in all four quadrants as {base}_tile.jpg
func (g *Generator) Tile(ctx context.Context, srcPath string) (Output, error) {
	l, err := g.load(ctx, srcPath)
	if err != nil {
		return Output{}, err
	}
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	n := l.set.Variant(collage.Identity)
	img, err := collage.Tile(n, n, n, n)
	if err != nil {
		return Output{}, err
	}
	path, err := l.src.TilePath()
	if err != nil {
		return Output{}, err
	}
	if err := imageio.Save(img, path, imageio.MaxQuality); err != nil {
		return Output{}, err
	}
	out := Output{Kind: KindTile, Path: path, Size: img.Bounds().Size(), Fingerprint: util.ImageUUID(img)}
	g.log().InfoContext(ctx, "Saved tile", "path", path, "width", out.Size.X, "height", out.Size.Y)
	return out, nil
}
