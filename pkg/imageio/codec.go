package imageio

import (
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/tiff"
)

// MaxQuality is the JPEG quality every collage output is written with
const MaxQuality = 100

// Codec defines the interface for an on-disk raster format
type Codec interface {
	// Encode writes img to w; quality only applies to lossy formats
	Encode(w io.Writer, img image.Image, quality int) error
	// Decode reads an image from r
	Decode(r io.Reader) (image.Image, error)
	// Name returns the codec identifier (e.g., "jpeg")
	Name() string
	// Extensions returns the lower-case file extensions mapped to this codec
	Extensions() []string
}

// jpegCodec implements Codec for baseline JPEG
type jpegCodec struct{}

func (c *jpegCodec) Encode(w io.Writer, img image.Image, quality int) error {
	return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(clampQuality(quality)))
}

func (c *jpegCodec) Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r)
}

func (c *jpegCodec) Name() string {
	return "jpeg"
}

func (c *jpegCodec) Extensions() []string {
	return []string{".jpg", ".jpeg"}
}

// pngCodec implements Codec for PNG
type pngCodec struct{}

func (c *pngCodec) Encode(w io.Writer, img image.Image, quality int) error {
	return imaging.Encode(w, img, imaging.PNG)
}

func (c *pngCodec) Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r)
}

func (c *pngCodec) Name() string {
	return "png"
}

func (c *pngCodec) Extensions() []string {
	return []string{".png"}
}

// tiffCodec implements Codec for TIFF, written losslessly with Deflate
type tiffCodec struct{}

func (c *tiffCodec) Encode(w io.Writer, img image.Image, quality int) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

func (c *tiffCodec) Decode(r io.Reader) (image.Image, error) {
	return tiff.Decode(r)
}

func (c *tiffCodec) Name() string {
	return "tiff"
}

func (c *tiffCodec) Extensions() []string {
	return []string{".tif", ".tiff"}
}

// gifCodec implements Codec for GIF, quantized to a 256 color palette
type gifCodec struct{}

func (c *gifCodec) Encode(w io.Writer, img image.Image, quality int) error {
	return imaging.Encode(w, img, imaging.GIF)
}

func (c *gifCodec) Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r)
}

func (c *gifCodec) Name() string {
	return "gif"
}

func (c *gifCodec) Extensions() []string {
	return []string{".gif"}
}

// bmpCodec implements Codec for uncompressed BMP
type bmpCodec struct{}

func (c *bmpCodec) Encode(w io.Writer, img image.Image, quality int) error {
	return imaging.Encode(w, img, imaging.BMP)
}

func (c *bmpCodec) Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r)
}

func (c *bmpCodec) Name() string {
	return "bmp"
}

func (c *bmpCodec) Extensions() []string {
	return []string{".bmp"}
}

// codecsByName maps codec names to implementations
var codecsByName = map[string]Codec{
	"jpeg": &jpegCodec{},
	"jpg":  &jpegCodec{}, // alias
	"png":  &pngCodec{},
	"tiff": &tiffCodec{},
	"tif":  &tiffCodec{}, // alias
	"gif":  &gifCodec{},
	"bmp":  &bmpCodec{},
}

// codecsByExt maps file extensions to implementations
var codecsByExt = map[string]Codec{}

func init() {
	for _, c := range []Codec{CodecJPEG, CodecPNG, CodecTIFF, CodecGIF, CodecBMP} {
		for _, ext := range c.Extensions() {
			codecsByExt[ext] = c
		}
	}
}

// Predefined codec instances for convenience
var (
	CodecJPEG Codec = codecsByName["jpeg"]
	CodecPNG  Codec = codecsByName["png"]
	CodecTIFF Codec = codecsByName["tiff"]
	CodecGIF  Codec = codecsByName["gif"]
	CodecBMP  Codec = codecsByName["bmp"]
)

// CodecByName returns a codec by name, or nil if not found
func CodecByName(name string) Codec {
	return codecsByName[strings.ToLower(name)]
}

// CodecForPath returns the codec matching the extension of path, or nil
func CodecForPath(path string) Codec {
	return codecsByExt[strings.ToLower(filepath.Ext(path))]
}

// OutputExt returns the extension of path when a codec can write it, and
// fallback otherwise
func OutputExt(path, fallback string) string {
	if CodecForPath(path) == nil {
		return fallback
	}
	return filepath.Ext(path)
}

func clampQuality(q int) int {
	switch {
	case q < 1:
		return 1
	case q > MaxQuality:
		return MaxQuality
	}
	return q
}
