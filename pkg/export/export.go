// Package export provides section holders that write committed car sections
// to disk. Every writer collects sections through mesh.Holder and writes the
// file on Close, so a failed commit leaves no partial output behind.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/chazu/carmesh/pkg/mesh"
)

// ErrUnknownFormat is returned by New for paths with an unsupported extension.
var ErrUnknownFormat = errors.New("export: unknown output format")

// ErrEmpty is returned by Close when nothing was committed.
var ErrEmpty = errors.New("export: no sections committed")

// Writer is a section holder backed by a file.
type Writer interface {
	mesh.Holder
	// Close writes everything committed so far to the target path.
	Close() error
	Path() string
}

// Format identifies an output file format.
type Format int

const (
	FormatOBJ Format = iota
	FormatSTL
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatOBJ:
		return "obj"
	case FormatSTL:
		return "stl"
	case FormatJSON:
		return "json.gz"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFor picks a format from the path's extension.
func FormatFor(path string) (Format, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".json.gz"):
		return FormatJSON, nil
	case filepath.Ext(lower) == ".obj":
		return FormatOBJ, nil
	case filepath.Ext(lower) == ".stl":
		return FormatSTL, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// New returns the writer matching path's extension.
func New(path string) (Writer, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatSTL:
		return NewSTLWriter(path), nil
	case FormatJSON:
		return NewJSONWriter(path), nil
	default:
		return NewOBJWriter(path), nil
	}
}

// Collector is an in-memory holder. It keeps its own copy of every
// committed section.
type Collector struct {
	mu       sync.Mutex
	sections []*mesh.Section
}

// CreateSection stores a copy of s.
func (c *Collector) CreateSection(s *mesh.Section) error {
	if s == nil {
		return errors.New("export: nil section")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, have := range c.sections {
		if have.Index == s.Index {
			return fmt.Errorf("export: section %d committed twice", s.Index)
		}
	}
	c.sections = append(c.sections, s.Clone())
	return nil
}

// Sections returns the committed sections ordered by index. Commit order is
// not significant to a holder, so output is stable regardless of it.
func (c *Collector) Sections() []*mesh.Section {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*mesh.Section, len(c.sections))
	copy(out, c.sections)
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Len returns the number of committed sections.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sections)
}

// Model returns the committed sections as a model.
func (c *Collector) Model() *mesh.Model {
	return &mesh.Model{Sections: c.Sections()}
}

// Reset drops everything committed so far.
func (c *Collector) Reset() {
	c.mu.Lock()
	c.sections = nil
	c.mu.Unlock()
}

func (c *Collector) nonEmpty() ([]*mesh.Section, error) {
	secs := c.Sections()
	if len(secs) == 0 {
		return nil, ErrEmpty
	}
	return secs, nil
}

// replaceFile runs write against a temporary file next to path and renames
// it into place only on success. A failed write leaves nothing behind.
func replaceFile(path string, write func(tmp string) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	tmp := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("export: %w", err)
	}
	if err := write(tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
