// Package mesh defines the sectioned triangle mesh handed to a renderer.
// A Model is an ordered list of Sections; each Section carries its own
// vertex, index and per-vertex attribute buffers and is indexed
// independently of every other section.
package mesh

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Material selects how the renderer blends a section.
type Material int

const (
	MaterialOpaque Material = iota
	MaterialTranslucent
)

func (m Material) String() string {
	switch m {
	case MaterialOpaque:
		return "opaque"
	case MaterialTranslucent:
		return "translucent"
	default:
		return "unknown"
	}
}

// UV is a 2D texture coordinate.
type UV struct {
	U, V float32
}

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Tangent is a per-vertex tangent direction plus the handedness flag the
// renderer uses to derive the bitangent.
type Tangent struct {
	X, Y, Z float32
	FlipY   bool
}

// Section is one independently indexed, independently materialed piece of
// a model.
type Section struct {
	Index     int       `json:"index"`
	Name      string    `json:"name"`
	Vertices  []v3.Vec  `json:"vertices"`
	Triangles []int32   `json:"triangles"` // [i0,i1,i2, ...] counter-clockwise from outside
	Normals   []v3.Vec  `json:"normals"`
	UVs       []UV      `json:"uvs"`
	Colors    []Color   `json:"colors"`
	Tangents  []Tangent `json:"tangents"`
	Collision bool      `json:"collision"`
	Material  Material  `json:"material"`
}

// VertexCount returns the number of vertices.
func (s *Section) VertexCount() int {
	return len(s.Vertices)
}

// TriangleCount returns the number of triangles.
func (s *Section) TriangleCount() int {
	return len(s.Triangles) / 3
}

// IsEmpty returns true if the section has no geometry.
func (s *Section) IsEmpty() bool {
	return len(s.Vertices) == 0
}

// Triangle returns the vertex positions of triangle i.
func (s *Section) Triangle(i int) [3]v3.Vec {
	return [3]v3.Vec{
		s.Vertices[s.Triangles[i*3]],
		s.Vertices[s.Triangles[i*3+1]],
		s.Vertices[s.Triangles[i*3+2]],
	}
}

// FaceNormal returns the unit geometric normal of triangle i, derived from
// its winding. Degenerate triangles yield the zero vector.
func (s *Section) FaceNormal(i int) v3.Vec {
	t := s.Triangle(i)
	n := t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
	if n.Length() == 0 {
		return v3.Vec{}
	}
	return n.Normalize()
}

// BoundingBox returns the axis-aligned bounds of the section's vertices.
// An empty section yields the zero box.
func (s *Section) BoundingBox() sdf.Box3 {
	if len(s.Vertices) == 0 {
		return sdf.Box3{}
	}
	lo, hi := s.Vertices[0], s.Vertices[0]
	for _, v := range s.Vertices[1:] {
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	return sdf.Box3{Min: lo, Max: hi}
}

// Model is the ordered set of sections that make up one vehicle.
type Model struct {
	Sections []*Section `json:"sections"`
}

// Section returns the section with the given index, or nil.
func (m *Model) Section(index int) *Section {
	for _, s := range m.Sections {
		if s.Index == index {
			return s
		}
	}
	return nil
}

// VertexCount returns the total number of vertices across all sections.
func (m *Model) VertexCount() int {
	n := 0
	for _, s := range m.Sections {
		n += s.VertexCount()
	}
	return n
}

// TriangleCount returns the total number of triangles across all sections.
func (m *Model) TriangleCount() int {
	n := 0
	for _, s := range m.Sections {
		n += s.TriangleCount()
	}
	return n
}

// BoundingBox returns the bounds of every section combined.
func (m *Model) BoundingBox() sdf.Box3 {
	var bb sdf.Box3
	first := true
	for _, s := range m.Sections {
		if s.IsEmpty() {
			continue
		}
		sb := s.BoundingBox()
		if first {
			bb = sb
			first = false
			continue
		}
		bb = sdf.Box3{Min: bb.Min.Min(sb.Min), Max: bb.Max.Max(sb.Max)}
	}
	return bb
}
