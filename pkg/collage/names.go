package collage

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CollageExt is the extension of indexed and tiled collages; they are
// always written as JPEG regardless of the source format.
const CollageExt = ".jpg"

// VariantName returns {base}_{H|V|HV}{ext}
func VariantName(base, ext string, v Variant) (string, error) {
	if err := checkBase(base); err != nil {
		return "", err
	}
	if v == Identity {
		return "", ErrIdentityUnnamed
	}
	if !v.Valid() {
		return "", fmt.Errorf("%w: %v", ErrInvalidPattern, v)
	}
	return base + "_" + v.String() + ext, nil
}

// CollageName returns {base}_CLL{index}{ext}, the indexed catalog output
func CollageName(base, ext string, index int) (string, error) {
	if err := checkBase(base); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_CLL%d%s", base, index, ext), nil
}

// BasicCollageName returns {base}_cll{index}{ext}, the four-box default name
func BasicCollageName(base, ext string, index int) (string, error) {
	if err := checkBase(base); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_cll%d%s", base, index, ext), nil
}

// TileName returns {base}_tile.jpg
func TileName(base string) (string, error) {
	if err := checkBase(base); err != nil {
		return "", err
	}
	return base + "_tile" + CollageExt, nil
}

func checkBase(base string) error {
	if strings.TrimSpace(base) == "" || base == "." || base == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidSourceName, base)
	}
	return nil
}

// Source is a source image path split into the parts output names are
// built from.
type Source struct {
	Dir  string
	Base string
	Ext  string
}

// ParseSource splits path into directory, base name and extension.
func ParseSource(path string) (Source, error) {
	dir, file := filepath.Split(path)
	ext := filepath.Ext(file)
	src := Source{
		Dir:  filepath.Clean(dir),
		Base: strings.TrimSuffix(file, ext),
		Ext:  ext,
	}
	if err := checkBase(src.Base); err != nil {
		return Source{}, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// Path joins name onto the source directory
func (s Source) Path(name string) string {
	return filepath.Clean(filepath.Join(s.Dir, name))
}

// VariantPath is the output path of mirror variant v
func (s Source) VariantPath(v Variant) (string, error) {
	name, err := VariantName(s.Base, s.Ext, v)
	if err != nil {
		return "", err
	}
	return s.Path(name), nil
}

// CollagePath is the output path of catalog collage index
func (s Source) CollagePath(index int) (string, error) {
	name, err := CollageName(s.Base, CollageExt, index)
	if err != nil {
		return "", err
	}
	return s.Path(name), nil
}

// TilePath is the output path of the four-corner tile
func (s Source) TilePath() (string, error) {
	name, err := TileName(s.Base)
	if err != nil {
		return "", err
	}
	return s.Path(name), nil
}

// WithDir returns a copy of s whose outputs land in dir instead
func (s Source) WithDir(dir string) Source {
	if dir != "" {
		s.Dir = filepath.Clean(dir)
	}
	return s
}
