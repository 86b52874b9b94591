package session

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
)

// DefaultPreviewWidth matches the box width of the editor window
const DefaultPreviewWidth = 300

// Resizer scales box images for display
type Resizer interface {
	Resize(width, height uint, img image.Image) image.Image
}

// NfntResizer uses the nfnt/resize package to resize an image.
type NfntResizer struct {
	InterP resize.InterpolationFunction
}

// Resize calls nfnt/resize; a zero height keeps the aspect ratio.
func (r NfntResizer) Resize(width, height uint, img image.Image) image.Image {
	return resize.Resize(width, height, img, r.InterP)
}

// DefaultResizer is used by Preview
var DefaultResizer Resizer = NfntResizer{InterP: resize.Bilinear}

// Preview returns box i scaled to width pixels wide
func (s *Session) Preview(i int, width int) (image.Image, error) {
	if err := checkBox(i); err != nil {
		return nil, err
	}
	if width <= 0 {
		return nil, fmt.Errorf("invalid preview width %d", width)
	}
	img := s.entries[i].Image
	if img == nil {
		return nil, ErrNoSource
	}
	return DefaultResizer.Resize(uint(width), 0, img), nil
}
