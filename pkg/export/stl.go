package export

import (
	"fmt"

	"github.com/chazu/carmesh/pkg/mesh"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
)

// STLWriter writes every committed triangle into a single binary STL.
// STL carries no color or grouping, so sections are merged.
type STLWriter struct {
	Collector
	path string
}

// NewSTLWriter returns a writer targeting path.
func NewSTLWriter(path string) *STLWriter {
	return &STLWriter{path: path}
}

// Path returns the target file.
func (w *STLWriter) Path() string { return w.path }

// Close writes the STL file.
func (w *STLWriter) Close() error {
	secs, err := w.nonEmpty()
	if err != nil {
		return err
	}
	return replaceFile(w.path, func(tmp string) error {
		if err := render.SaveSTL(tmp, Triangles(secs...)); err != nil {
			return fmt.Errorf("export: save stl %s: %w", w.path, err)
		}
		return nil
	})
}

// Triangles flattens sections into sdfx triangles, skipping degenerate faces.
func Triangles(secs ...*mesh.Section) []*sdf.Triangle3 {
	var n int
	for _, s := range secs {
		n += s.TriangleCount()
	}
	out := make([]*sdf.Triangle3, 0, n)
	for _, s := range secs {
		for i := 0; i < s.TriangleCount(); i++ {
			if s.FaceNormal(i).Length() == 0 {
				continue
			}
			t := sdf.Triangle3(s.Triangle(i))
			out = append(out, &t)
		}
	}
	return out
}
