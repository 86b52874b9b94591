package session

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skoshiwosh/collager/pkg/collage"
	"github.com/skoshiwosh/collager/pkg/imageio"
)

func newSession() *Session {
	return New(WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
}

func writeSource(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 30), B: 0x40, A: 0xFF})
		}
	}
	path := filepath.Join(dir, name)
	require.NoError(t, imageio.Save(img, path, imageio.MaxQuality))
	return path
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestNew(t *testing.T) {
	s := newSession()
	assert.NotEmpty(t, s.ID())
	assert.False(t, s.Loaded())
	for i, e := range s.Entries() {
		want, err := collage.BasicPatternAt(i)
		require.NoError(t, err)
		assert.Equal(t, want, e.Pattern)
		assert.True(t, e.Selected)
		assert.Empty(t, e.OutputName)
		assert.Nil(t, e.Image)
	}
	assert.NotEqual(t, s.ID(), newSession().ID())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "photo.png", 6, 5)
	s := newSession()
	require.NoError(t, s.Load(context.Background(), path))
	assert.True(t, s.Loaded())
	assert.Equal(t, path, s.Source())

	for i := 0; i < Boxes; i++ {
		e, err := s.Entry(i)
		require.NoError(t, err)
		assert.Equal(t, "photo_cll"+string(rune('0'+i))+".png", e.OutputName)
		require.NotNil(t, e.Image)
		assert.Equal(t, image.Pt(11, 9), e.Image.Bounds().Size())
	}
	// nothing is written before Save
	assert.Equal(t, []string{"photo.png"}, listDir(t, dir))
}

func TestLoad_KeepsStateOnError(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "photo.png", 4, 4)
	s := newSession()
	require.NoError(t, s.Load(context.Background(), path))

	err := s.Load(context.Background(), filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, imageio.ErrSourceNotFound)
	assert.Equal(t, path, s.Source())
	e, err := s.Entry(0)
	require.NoError(t, err)
	assert.Equal(t, "photo_cll0.png", e.OutputName)
}

func TestSave_SelectedOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "photo.png", 4, 3)
	s := newSession()
	require.NoError(t, s.Load(context.Background(), path))

	require.NoError(t, s.SetSelected(1, false))
	require.NoError(t, s.SetSelected(3, false))
	require.NoError(t, s.SetOutputName(2, " renamed.tif "))

	saved, err := s.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "photo_cll0.png"),
		filepath.Join(dir, "renamed.tif"),
	}, saved)
	assert.Equal(t, []string{"photo.png", "photo_cll0.png", "renamed.tif"}, listDir(t, dir))

	img, err := imageio.Open(filepath.Join(dir, "renamed.tif"))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(7, 5), img.Bounds().Size())
}

func TestSave_Errors(t *testing.T) {
	s := newSession()
	_, err := s.Save(context.Background())
	assert.ErrorIs(t, err, ErrNoSource)

	dir := t.TempDir()
	require.NoError(t, s.Load(context.Background(), writeSource(t, dir, "photo.png", 3, 3)))
	require.NoError(t, s.SetOutputName(0, "  "))
	_, err = s.Save(context.Background())
	assert.ErrorIs(t, err, ErrEmptyOutputName)

	require.NoError(t, s.SetOutputName(0, "photo.webp"))
	_, err = s.Save(context.Background())
	assert.ErrorIs(t, err, imageio.ErrUnsupportedFormat)
}

func TestSetOutputName_StaysInSourceDir(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "src")
	require.NoError(t, os.Mkdir(dir, 0o755))
	s := newSession()
	require.NoError(t, s.Load(context.Background(), writeSource(t, dir, "photo.png", 3, 3)))

	for _, name := range []string{"../x.png", filepath.Join(parent, "abs.png"), "a/../../x.png", ".."} {
		err := s.SetOutputName(0, name)
		assert.ErrorIs(t, err, ErrInvalidOutputName, name)
	}
	e, err := s.Entry(0)
	require.NoError(t, err)
	assert.Equal(t, "photo_cll0.png", e.OutputName)

	require.NoError(t, s.SetOutputName(1, "sub/../inside.png"))
	for _, i := range []int{0, 2, 3} {
		require.NoError(t, s.SetSelected(i, false))
	}
	saved, err := s.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "inside.png")}, saved)
	assert.Equal(t, []string{"src"}, listDir(t, parent))
}

func TestLoad_SourceFormats(t *testing.T) {
	tests := []struct {
		name  string
		codec imageio.Codec
		want  string
	}{
		{"photo.gif", imageio.CodecGIF, "photo_cll0.gif"},
		{"photo.bmp", imageio.CodecBMP, "photo_cll0.bmp"},
		{"photo", imageio.CodecGIF, "photo_cll0.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			var buf bytes.Buffer
			require.NoError(t, tt.codec.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 3, 3)), imageio.MaxQuality))
			path := filepath.Join(dir, tt.name)
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

			s := newSession()
			require.NoError(t, s.Load(context.Background(), path))
			e, err := s.Entry(0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.OutputName)

			saved, err := s.Save(context.Background())
			require.NoError(t, err)
			assert.Len(t, saved, Boxes)
			assert.Equal(t, filepath.Join(dir, tt.want), saved[0])
		})
	}
}

func TestBoxOutOfRange(t *testing.T) {
	s := newSession()
	for _, i := range []int{-1, Boxes} {
		_, err := s.Entry(i)
		assert.ErrorIs(t, err, collage.ErrIndexOutOfRange)
		assert.ErrorIs(t, s.SetSelected(i, true), collage.ErrIndexOutOfRange)
		assert.ErrorIs(t, s.SetOutputName(i, "x.png"), collage.ErrIndexOutOfRange)
		_, err = s.Preview(i, 10)
		assert.ErrorIs(t, err, collage.ErrIndexOutOfRange)
	}
}

func TestReset(t *testing.T) {
	dir := t.TempDir()
	s := newSession()
	require.NoError(t, s.Load(context.Background(), writeSource(t, dir, "photo.png", 3, 3)))
	require.NoError(t, s.SetSelected(2, false))

	s.Reset()
	assert.False(t, s.Loaded())
	for i, e := range s.Entries() {
		assert.Empty(t, e.OutputName)
		assert.Nil(t, e.Image)
		assert.Equal(t, i != 2, e.Selected)
	}
	_, err := s.Save(context.Background())
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestPreview(t *testing.T) {
	dir := t.TempDir()
	s := newSession()

	_, err := s.Preview(0, DefaultPreviewWidth)
	assert.ErrorIs(t, err, ErrNoSource)

	require.NoError(t, s.Load(context.Background(), writeSource(t, dir, "photo.png", 8, 4)))
	img, err := s.Preview(0, 30)
	require.NoError(t, err)
	// 15x7 canvas scaled to 30 wide keeps the aspect ratio
	assert.Equal(t, 30, img.Bounds().Dx())
	assert.Equal(t, 14, img.Bounds().Dy())

	_, err = s.Preview(0, 0)
	assert.Error(t, err)
}
