// Package session holds the state behind the four-box collage editor: one
// collage per basic pattern, each with a selection flag and an editable
// output name, persisted only on an explicit Save.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/skoshiwosh/collager/pkg/collage"
	"github.com/skoshiwosh/collager/pkg/imageio"
	"github.com/skoshiwosh/collager/pkg/util"
)

// Boxes is the number of collage boxes, one per basic pattern
const Boxes = collage.BasicCatalogSize

var (
	ErrNoSource          = errors.New("no source image loaded")
	ErrEmptyOutputName   = errors.New("empty output name")
	ErrInvalidOutputName = errors.New("output name must stay inside the source directory")
)

// Entry is the state of one box
type Entry struct {
	Pattern    collage.Pattern
	Selected   bool
	OutputName string
	Image      *image.NRGBA
}

// Session is the four-box editor state. It is not safe for concurrent use.
type Session struct {
	id      string
	log     *slog.Logger
	source  string
	dir     string
	entries [Boxes]Entry
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the logger used for load/save records
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// New returns an empty session with every box selected
func New(opts ...Option) *Session {
	s := &Session{id: util.NewID(), log: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("session", s.id)
	for i := range s.entries {
		p, _ := collage.BasicPatternAt(i)
		s.entries[i] = Entry{Pattern: p, Selected: true}
	}
	return s
}

// ID identifies the session in log records
func (s *Session) ID() string {
	return s.id
}

// Source returns the loaded source path, empty when nothing is loaded
func (s *Session) Source() string {
	return s.source
}

// Loaded reports whether a source is loaded
func (s *Session) Loaded() bool {
	return s.source != ""
}

// Load decodes path and composes every box. On error the previous state
// is kept.
func (s *Session) Load(ctx context.Context, path string) error {
	src, err := collage.ParseSource(path)
	if err != nil {
		return err
	}
	src.Ext = imageio.OutputExt(path, collage.CollageExt)
	img, err := imageio.Open(path)
	if err != nil {
		return err
	}
	set, err := collage.DeriveVariants(img)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	var next [Boxes]Entry
	for i := range next {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := s.entries[i].Pattern
		cll, err := collage.Compose(p, set)
		if err != nil {
			return fmt.Errorf("box %d: %w", i, err)
		}
		name, err := collage.BasicCollageName(src.Base, src.Ext, i)
		if err != nil {
			return err
		}
		next[i] = Entry{Pattern: p, Selected: s.entries[i].Selected, OutputName: name, Image: cll}
		s.log.DebugContext(ctx, "Composed box", "box", i, "pattern", p.Label())
	}

	s.entries = next
	s.source = path
	s.dir = src.Dir
	s.log.InfoContext(ctx, "Loaded source", "path", path, "width", set.Size().X, "height", set.Size().Y)
	return nil
}

func checkBox(i int) error {
	if i < 0 || i >= Boxes {
		return fmt.Errorf("%w: box %d not in 0-%d", collage.ErrIndexOutOfRange, i, Boxes-1)
	}
	return nil
}

// Entry returns a copy of box i
func (s *Session) Entry(i int) (Entry, error) {
	if err := checkBox(i); err != nil {
		return Entry{}, err
	}
	return s.entries[i], nil
}

// Entries returns a copy of every box
func (s *Session) Entries() [Boxes]Entry {
	return s.entries
}

// SetSelected marks box i for saving
func (s *Session) SetSelected(i int, selected bool) error {
	if err := checkBox(i); err != nil {
		return err
	}
	s.entries[i].Selected = selected
	return nil
}

// SetOutputName changes the file name box i is saved under. The name is
// relative to the source directory and may not leave it.
func (s *Session) SetOutputName(i int, name string) error {
	if err := checkBox(i); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name != "" {
		if err := checkOutputName(name); err != nil {
			return fmt.Errorf("box %d: %w", i, err)
		}
	}
	s.entries[i].OutputName = name
	return nil
}

func checkOutputName(name string) error {
	if name == "" {
		return ErrEmptyOutputName
	}
	if !filepath.IsLocal(name) {
		return fmt.Errorf("%w: %q", ErrInvalidOutputName, name)
	}
	return nil
}

// Save writes every selected box into the source directory and returns the
// written paths. Unselected boxes are ignored.
func (s *Session) Save(ctx context.Context) ([]string, error) {
	if !s.Loaded() {
		return nil, ErrNoSource
	}
	s.log.InfoContext(ctx, "Saving collages", "dir", s.dir)

	var saved []string
	for i, e := range s.entries {
		if !e.Selected {
			continue
		}
		if err := ctx.Err(); err != nil {
			return saved, err
		}
		if err := checkOutputName(e.OutputName); err != nil {
			return saved, fmt.Errorf("box %d: %w", i, err)
		}
		path := filepath.Clean(filepath.Join(s.dir, e.OutputName))
		if err := imageio.Save(e.Image, path, imageio.MaxQuality); err != nil {
			return saved, fmt.Errorf("box %d: %w", i, err)
		}
		s.log.InfoContext(ctx, "Saved collage", "box", i, "path", path)
		saved = append(saved, path)
	}
	return saved, nil
}

// Reset drops the source, names and images. Selection flags are kept.
func (s *Session) Reset() {
	s.log.Info("Resetting session")
	for i := range s.entries {
		s.entries[i].OutputName = ""
		s.entries[i].Image = nil
	}
	s.source = ""
	s.dir = ""
}
