package mesh

import (
	"errors"
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// quad returns a valid unit square in the XY plane facing +Z.
func quad() *Section {
	up := v3.Vec{Z: 1}
	return &Section{
		Index: 7,
		Name:  "quad",
		Vertices: []v3.Vec{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
		Triangles: []int32{0, 1, 2, 0, 2, 3},
		Normals:   []v3.Vec{up, up, up, up},
		UVs:       make([]UV, 4),
		Colors:    []Color{{1, 0, 0, 1}, {1, 0, 0, 1}, {1, 0, 0, 1}, {1, 0, 0, 1}},
		Tangents:  make([]Tangent, 4),
	}
}

func TestSectionCounts(t *testing.T) {
	tests := []struct {
		name    string
		section *Section
		verts   int
		tris    int
		empty   bool
	}{
		{"empty", &Section{}, 0, 0, true},
		{"quad", quad(), 4, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.section.VertexCount(); got != tt.verts {
				t.Errorf("VertexCount() = %d, want %d", got, tt.verts)
			}
			if got := tt.section.TriangleCount(); got != tt.tris {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.tris)
			}
			if got := tt.section.IsEmpty(); got != tt.empty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.empty)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Section)
		ok     bool
	}{
		{"valid", func(s *Section) {}, true},
		{"no vertices", func(s *Section) { s.Vertices = nil }, false},
		{"short normals", func(s *Section) { s.Normals = s.Normals[:3] }, false},
		{"short uvs", func(s *Section) { s.UVs = s.UVs[:1] }, false},
		{"long colors", func(s *Section) { s.Colors = append(s.Colors, Color{}) }, false},
		{"missing tangents", func(s *Section) { s.Tangents = nil }, false},
		{"partial triangle", func(s *Section) { s.Triangles = s.Triangles[:4] }, false},
		{"index past end", func(s *Section) { s.Triangles[5] = 4 }, false},
		{"negative index", func(s *Section) { s.Triangles[0] = -1 }, false},
		{"no triangles", func(s *Section) { s.Triangles = nil }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := quad()
			tt.mutate(s)
			err := s.Validate()
			if tt.ok {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var de *DegenerateSectionError
			if !errors.As(err, &de) {
				t.Fatalf("Validate() = %v, want *DegenerateSectionError", err)
			}
			if de.Index != 7 {
				t.Errorf("error index = %d, want 7", de.Index)
			}
		})
	}
}

func TestModelValidateDuplicateIndex(t *testing.T) {
	m := &Model{Sections: []*Section{quad(), quad()}}
	var de *DegenerateSectionError
	if err := m.Validate(); !errors.As(err, &de) {
		t.Fatalf("Validate() = %v, want duplicate index error", err)
	}

	b := quad()
	b.Index = 8
	m = &Model{Sections: []*Section{quad(), b}}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestFaceNormal(t *testing.T) {
	s := quad()
	for i := 0; i < s.TriangleCount(); i++ {
		n := s.FaceNormal(i)
		if math.Abs(n.Z-1) > 1e-9 || math.Abs(n.X) > 1e-9 || math.Abs(n.Y) > 1e-9 {
			t.Errorf("FaceNormal(%d) = %v, want (0,0,1)", i, n)
		}
	}

	s.Vertices[2] = s.Vertices[1]
	if n := s.FaceNormal(0); n != (v3.Vec{}) {
		t.Errorf("degenerate FaceNormal = %v, want zero", n)
	}
}

func TestBoundingBox(t *testing.T) {
	s := quad()
	s.Vertices[2] = v3.Vec{X: 3, Y: 2, Z: -1}
	bb := s.BoundingBox()
	if bb.Min != (v3.Vec{X: 0, Y: 0, Z: -1}) {
		t.Errorf("min = %v", bb.Min)
	}
	if bb.Max != (v3.Vec{X: 3, Y: 2, Z: 0}) {
		t.Errorf("max = %v", bb.Max)
	}

	other := quad()
	other.Index = 8
	for i := range other.Vertices {
		other.Vertices[i] = other.Vertices[i].Add(v3.Vec{X: -5})
	}
	m := &Model{Sections: []*Section{s, {Index: 9}, other}}
	mb := m.BoundingBox()
	if mb.Min.X != -5 || mb.Max.X != 3 {
		t.Errorf("model bounds X = [%v, %v], want [-5, 3]", mb.Min.X, mb.Max.X)
	}
}

func TestModelLookup(t *testing.T) {
	m := &Model{Sections: []*Section{quad()}}
	if m.Section(7) == nil {
		t.Error("Section(7) = nil")
	}
	if m.Section(0) != nil {
		t.Error("Section(0) should be nil")
	}
	if m.VertexCount() != 4 || m.TriangleCount() != 2 {
		t.Errorf("counts = %d/%d, want 4/2", m.VertexCount(), m.TriangleCount())
	}
}

func TestHolderFunc(t *testing.T) {
	var got []int
	var h Holder = HolderFunc(func(s *Section) error {
		got = append(got, s.Index)
		return nil
	})
	if err := h.CreateSection(quad()); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != 7 {
		t.Errorf("got %v, want [7]", got)
	}
}
