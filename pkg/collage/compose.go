package collage

import (
	"fmt"
	"image"
	"log/slog"

	"golang.org/x/image/draw"
)

// CanvasSize returns the collage size for tiles of the given size. Tiles
// share a one-pixel border, so the canvas is 2W-1 by 2H-1 rather than 2W by 2H.
func CanvasSize(tile image.Point) image.Point {
	return image.Pt(2*tile.X-1, 2*tile.Y-1)
}

// origins returns the top-left corner of each slot, in Slot order
func origins(tile image.Point) [4]image.Point {
	return [4]image.Point{
		TopLeft:     {0, 0},
		TopRight:    {tile.X - 1, 0},
		BottomLeft:  {0, tile.Y - 1},
		BottomRight: {tile.X - 1, tile.Y - 1},
	}
}

// canvas is the drawing surface of a single composition. It only accepts
// draws between paint acquiring it and paint finishing it.
type canvas struct {
	img  *image.NRGBA
	open bool
}

func (c *canvas) place(src image.Image, at image.Point) {
	if !c.open {
		panic("collage: draw on finished canvas")
	}
	// Src replaces the covered pixels, so the later tile owns the shared border
	draw.Copy(c.img, at, src, src.Bounds(), draw.Src, nil)
}

func (c *canvas) finish() {
	c.open = false
}

// paint allocates a canvas, hands it to fn and finishes it on every exit path.
func paint(size image.Point, fn func(c *canvas) error) (*image.NRGBA, error) {
	c := &canvas{img: image.NewNRGBA(image.Rect(0, 0, size.X, size.Y)), open: true}
	defer c.finish()
	if err := fn(c); err != nil {
		return nil, err
	}
	return c.img, nil
}

// Compose draws the four variants selected by p into one collage.
func Compose(p Pattern, set *MirrorSet) (*image.NRGBA, error) {
	if set == nil {
		return nil, fmt.Errorf("%w: no variants", ErrEmptyImage)
	}
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, [4]Variant(p))
	}
	tiles := [4]image.Image{}
	for s, v := range p {
		tiles[s] = set.Variant(v)
	}
	slog.Debug("Composing collage", "pattern", p.Label(), "tile", set.Size())
	return composite(set.Size(), tiles)
}

// Tile composes four arbitrary images of equal size, top-left, top-right,
// bottom-left, bottom-right.
func Tile(tl, tr, bl, br image.Image) (*image.NRGBA, error) {
	tiles := [4]image.Image{tl, tr, bl, br}
	size := tl.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, size.X, size.Y)
	}
	for s, t := range tiles[1:] {
		if got := t.Bounds().Size(); got != size {
			return nil, fmt.Errorf("%w: slot %d is %v, want %v", ErrSizeMismatch, s+1, got, size)
		}
	}
	return composite(size, tiles)
}

func composite(tile image.Point, tiles [4]image.Image) (*image.NRGBA, error) {
	at := origins(tile)
	return paint(CanvasSize(tile), func(c *canvas) error {
		for s := TopLeft; s <= BottomRight; s++ {
			c.place(tiles[s], at[s])
		}
		return nil
	})
}
