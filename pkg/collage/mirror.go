// Package collage builds 2x2 mirrored collages from a single source image.
//
// A source is flipped into four variants (see MirrorSet), a Pattern assigns
// one variant to each quadrant, and Compose draws the quadrants onto a
// canvas that overlaps neighbouring tiles by one pixel.
package collage

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Variant tags one mirror orientation of the source image
type Variant uint8

const (
	Identity   Variant = iota // N
	MirroredH                 // flipped left-right
	MirroredV                 // flipped top-bottom
	MirroredHV                // flipped both ways
)

// Variants lists every tag in declaration order
var Variants = [...]Variant{Identity, MirroredH, MirroredV, MirroredHV}

var variantLabels = [...]string{"N", "H", "V", "HV"}

// String returns the short label used in pattern listings (N, H, V, HV)
func (v Variant) String() string {
	if int(v) < len(variantLabels) {
		return variantLabels[v]
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// Valid reports whether v is one of the four known tags
func (v Variant) Valid() bool {
	return int(v) < len(variantLabels)
}

// MirrorSet holds the four orientations of one source. All share the
// source's width and height and are never modified after DeriveVariants.
type MirrorSet struct {
	images [len(variantLabels)]*image.NRGBA
	size   image.Point
}

// DeriveVariants computes all four mirror variants of src eagerly.
func DeriveVariants(src image.Image) (*MirrorSet, error) {
	size := src.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, size.X, size.Y)
	}
	set := &MirrorSet{size: size}
	set.images[Identity] = imaging.Clone(src)
	set.images[MirroredH] = imaging.FlipH(src)
	set.images[MirroredV] = imaging.FlipV(src)
	set.images[MirroredHV] = imaging.FlipV(set.images[MirroredH])
	return set, nil
}

// Variant returns the raster for tag v. Callers must not modify it.
func (s *MirrorSet) Variant(v Variant) *image.NRGBA {
	if !v.Valid() {
		return nil
	}
	return s.images[v]
}

// Size returns the shared width and height of the variants
func (s *MirrorSet) Size() image.Point {
	return s.size
}
