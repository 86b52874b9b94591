package collage

import (
	"fmt"
	"strings"
)

// Slot is a quadrant position within a Pattern
type Slot int

const (
	TopLeft Slot = iota
	TopRight
	BottomLeft
	BottomRight
)

// Pattern assigns a variant to each quadrant, in Slot order
type Pattern [4]Variant

// At returns the variant drawn in slot s
func (p Pattern) At(s Slot) Variant {
	return p[s]
}

// Label renders the pattern as N-H-V-HV style text
func (p Pattern) Label() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = v.String()
	}
	return strings.Join(parts, "-")
}

// Valid reports whether every slot holds a known variant
func (p Pattern) Valid() bool {
	for _, v := range p {
		if !v.Valid() {
			return false
		}
	}
	return true
}

const (
	CatalogSize      = 8
	BasicCatalogSize = 4
)

var catalog = [CatalogSize]Pattern{
	{Identity, MirroredH, MirroredV, MirroredHV},
	{MirroredH, Identity, MirroredHV, MirroredV},
	{MirroredHV, MirroredV, MirroredH, Identity},
	{MirroredV, MirroredHV, Identity, MirroredH},
	{Identity, Identity, Identity, Identity},
	{Identity, Identity, MirroredV, MirroredV},
	{MirroredH, MirroredH, Identity, Identity},
	{MirroredHV, MirroredHV, Identity, Identity},
}

// basic is the four-box table. It is not a slice of catalog.
var basic = [BasicCatalogSize]Pattern{
	{MirroredH, Identity, MirroredHV, MirroredV},
	{Identity, MirroredH, MirroredV, MirroredHV},
	{MirroredHV, MirroredV, MirroredH, Identity},
	{MirroredV, MirroredHV, Identity, MirroredH},
}

// PatternAt returns catalog entry index (0-7)
func PatternAt(index int) (Pattern, error) {
	if index < 0 || index >= len(catalog) {
		return Pattern{}, fmt.Errorf("%w: %d not in 0-%d", ErrIndexOutOfRange, index, len(catalog)-1)
	}
	return catalog[index], nil
}

// BasicPatternAt returns four-box entry index (0-3)
func BasicPatternAt(index int) (Pattern, error) {
	if index < 0 || index >= len(basic) {
		return Pattern{}, fmt.Errorf("%w: %d not in 0-%d", ErrIndexOutOfRange, index, len(basic)-1)
	}
	return basic[index], nil
}

// Patterns returns a copy of the full catalog
func Patterns() []Pattern {
	out := make([]Pattern, len(catalog))
	copy(out, catalog[:])
	return out
}

// BasicPatterns returns a copy of the four-box catalog
func BasicPatterns() []Pattern {
	out := make([]Pattern, len(basic))
	copy(out, basic[:])
	return out
}

// AllIndices returns every catalog index in order, used when no index
// spec was given.
func AllIndices() []int {
	out := make([]int, len(catalog))
	for i := range out {
		out[i] = i
	}
	return out
}
