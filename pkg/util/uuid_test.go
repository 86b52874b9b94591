package util

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageUUID(t *testing.T) {
	a := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	b := image.NewNRGBA(image.Rect(0, 0, 4, 4))

	idA := ImageUUID(a)
	_, err := uuid.Parse(idA)
	require.NoError(t, err)
	assert.Equal(t, idA, ImageUUID(b))

	b.SetNRGBA(1, 1, color.NRGBA{R: 1})
	assert.NotEqual(t, idA, ImageUUID(b))

	// same bytes, different shape
	assert.NotEqual(t, idA, ImageUUID(image.NewNRGBA(image.Rect(0, 0, 2, 8))))
	assert.Empty(t, ImageUUID(nil))
}

func TestImageUUID_SubImage(t *testing.T) {
	big := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	big.SetNRGBA(5, 5, color.NRGBA{G: 9, A: 0xFF})
	sub := big.SubImage(image.Rect(2, 2, 6, 6)).(*image.NRGBA)

	want := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	want.SetNRGBA(3, 3, color.NRGBA{G: 9, A: 0xFF})
	assert.Equal(t, ImageUUID(want), ImageUUID(sub))
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}
