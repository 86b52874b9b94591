package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

var (
	ErrSourceNotFound    = errors.New("source image not found")
	ErrDecodeFailure     = errors.New("decode failed")
	ErrEncodeFailure     = errors.New("encode failed")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// IsFile reports whether path names an existing regular file
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Open decodes the image at path. The codec is picked by extension, falling
// back to content sniffing for unknown extensions.
func Open(path string) (image.Image, error) {
	if !IsFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceNotFound, path, err)
	}
	defer f.Close()

	var img image.Image
	if codec := CodecForPath(path); codec != nil {
		img, err = codec.Decode(bufio.NewReader(f))
	} else {
		img, err = imaging.Decode(bufio.NewReader(f))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailure, path, err)
	}
	slog.Debug("Decoded image", "path", path, "size", img.Bounds().Size())
	return img, nil
}

// Save encodes img to path in the format implied by its extension. The data
// goes to a temporary file in the same directory which is renamed over path
// once complete, so a failed save never leaves a partial file behind.
func Save(img image.Image, path string, quality int) (err error) {
	codec := CodecForPath(path)
	if codec == nil {
		return fmt.Errorf("%w: %s: %w", ErrEncodeFailure, path, ErrUnsupportedFormat)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncodeFailure, path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = codec.Encode(bw, img, quality); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncodeFailure, path, err)
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncodeFailure, path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncodeFailure, path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncodeFailure, path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncodeFailure, path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncodeFailure, path, err)
	}
	slog.Debug("Wrote image", "path", path, "codec", codec.Name(), "quality", quality)
	return nil
}
