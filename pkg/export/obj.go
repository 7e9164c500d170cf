package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/carmesh/pkg/mesh"
)

// OBJWriter writes a Wavefront OBJ with one object group per section and a
// companion MTL file carrying each section's color and opacity.
type OBJWriter struct {
	Collector
	path string
}

// NewOBJWriter returns a writer targeting path. The material library is
// written next to it with an .mtl extension.
func NewOBJWriter(path string) *OBJWriter {
	return &OBJWriter{path: path}
}

// Path returns the target OBJ file.
func (w *OBJWriter) Path() string { return w.path }

// MTLPath returns the companion material library path.
func (w *OBJWriter) MTLPath() string {
	return strings.TrimSuffix(w.path, filepath.Ext(w.path)) + ".mtl"
}

// Close writes the OBJ and MTL files.
func (w *OBJWriter) Close() error {
	secs, err := w.nonEmpty()
	if err != nil {
		return err
	}
	if err := writeFile(w.MTLPath(), func(b *bufio.Writer) error {
		return writeMTL(b, secs)
	}); err != nil {
		return err
	}
	if err := writeFile(w.path, func(b *bufio.Writer) error {
		return writeOBJ(b, filepath.Base(w.MTLPath()), secs)
	}); err != nil {
		os.Remove(w.MTLPath())
		return err
	}
	return nil
}

func writeFile(path string, fn func(*bufio.Writer) error) error {
	return replaceFile(path, func(tmp string) error {
		f, err := os.Create(tmp)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		b := bufio.NewWriter(f)
		if err := fn(b); err != nil {
			f.Close()
			return fmt.Errorf("export: write %s: %w", path, err)
		}
		if err := b.Flush(); err != nil {
			f.Close()
			return fmt.Errorf("export: write %s: %w", path, err)
		}
		return f.Close()
	})
}

func materialName(s *mesh.Section) string {
	return fmt.Sprintf("%s_%d", s.Name, s.Index)
}

// sectionColor is the color of the section's first vertex. Builder sections
// are uniformly colored.
func sectionColor(s *mesh.Section) mesh.Color {
	if len(s.Colors) == 0 {
		return mesh.Color{R: 1, G: 1, B: 1, A: 1}
	}
	return s.Colors[0]
}

func writeMTL(b *bufio.Writer, secs []*mesh.Section) error {
	for _, s := range secs {
		c := sectionColor(s)
		fmt.Fprintf(b, "newmtl %s\n", materialName(s))
		fmt.Fprintf(b, "Kd %.4f %.4f %.4f\n", c.R, c.G, c.B)
		fmt.Fprintf(b, "d %.4f\n", c.A)
		if s.Material == mesh.MaterialTranslucent {
			fmt.Fprintf(b, "illum 4\n\n")
		} else {
			fmt.Fprintf(b, "illum 2\n\n")
		}
	}
	return nil
}

// writeOBJ emits positions, normals and faces. OBJ indices are 1-based and
// global across the file, so each section is offset by the vertices before it.
func writeOBJ(b *bufio.Writer, mtl string, secs []*mesh.Section) error {
	fmt.Fprintf(b, "# carmesh\nmtllib %s\n", mtl)
	offset := 1
	for _, s := range secs {
		fmt.Fprintf(b, "o %s\nusemtl %s\n", s.Name, materialName(s))
		for _, v := range s.Vertices {
			fmt.Fprintf(b, "v %g %g %g\n", v.X, v.Y, v.Z)
		}
		for _, n := range s.Normals {
			fmt.Fprintf(b, "vn %g %g %g\n", n.X, n.Y, n.Z)
		}
		for i := 0; i+2 < len(s.Triangles); i += 3 {
			a := int(s.Triangles[i]) + offset
			c := int(s.Triangles[i+1]) + offset
			d := int(s.Triangles[i+2]) + offset
			if _, err := fmt.Fprintf(b, "f %d//%d %d//%d %d//%d\n", a, a, c, c, d, d); err != nil {
				return err
			}
		}
		offset += len(s.Vertices)
	}
	return nil
}
