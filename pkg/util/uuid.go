package util

import (
	"crypto/md5"
	"encoding/binary"
	"image"

	"github.com/google/uuid"
)

// ImageUUID fingerprints the pixels of img as a UUID string. Equal
// dimensions and pixel bytes always give the same value.
func ImageUUID(img *image.NRGBA) string {
	if img == nil {
		return ""
	}
	hasher := md5.New()
	var dims [16]byte
	size := img.Bounds().Size()
	binary.LittleEndian.PutUint64(dims[:8], uint64(size.X))
	binary.LittleEndian.PutUint64(dims[8:], uint64(size.Y))
	hasher.Write(dims[:])
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		off := img.PixOffset(img.Rect.Min.X, y)
		hasher.Write(img.Pix[off : off+size.X*4])
	}
	hash := hasher.Sum(nil)
	id, err := uuid.FromBytes(hash[:16])
	if err != nil {
		return ""
	}
	return id.String()
}

// NewID returns a random identifier for a run or session
func NewID() string {
	return uuid.NewString()
}
