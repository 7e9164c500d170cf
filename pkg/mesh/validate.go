package mesh

import "fmt"

// DegenerateSectionError reports a section whose buffers are inconsistent
// and must not be handed to a renderer.
type DegenerateSectionError struct {
	Index  int
	Name   string
	Reason string
}

func (e *DegenerateSectionError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("degenerate section %d (%s): %s", e.Index, e.Name, e.Reason)
	}
	return fmt.Sprintf("degenerate section %d: %s", e.Index, e.Reason)
}

func (s *Section) degenerate(format string, args ...any) error {
	return &DegenerateSectionError{
		Index:  s.Index,
		Name:   s.Name,
		Reason: fmt.Sprintf(format, args...),
	}
}

// Validate checks that every per-vertex buffer matches the vertex count,
// that the index buffer holds whole triangles, and that every index is in
// range.
func (s *Section) Validate() error {
	n := len(s.Vertices)
	if n == 0 {
		return s.degenerate("no vertices")
	}
	if len(s.Normals) != n {
		return s.degenerate("%d normals for %d vertices", len(s.Normals), n)
	}
	if len(s.UVs) != n {
		return s.degenerate("%d uvs for %d vertices", len(s.UVs), n)
	}
	if len(s.Colors) != n {
		return s.degenerate("%d colors for %d vertices", len(s.Colors), n)
	}
	if len(s.Tangents) != n {
		return s.degenerate("%d tangents for %d vertices", len(s.Tangents), n)
	}
	if len(s.Triangles)%3 != 0 {
		return s.degenerate("index count %d is not a multiple of 3", len(s.Triangles))
	}
	for i, idx := range s.Triangles {
		if idx < 0 || int(idx) >= n {
			return s.degenerate("index %d at position %d out of range [0, %d)", idx, i, n)
		}
	}
	return nil
}

// Validate checks every section and that no two sections share an index.
// The first failure is returned.
func (m *Model) Validate() error {
	seen := make(map[int]bool, len(m.Sections))
	for _, s := range m.Sections {
		if s == nil {
			return fmt.Errorf("model contains a nil section")
		}
		if seen[s.Index] {
			return s.degenerate("duplicate section index")
		}
		seen[s.Index] = true
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}
