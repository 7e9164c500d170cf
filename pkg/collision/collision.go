// Package collision builds signed-distance collision proxies for mesh
// sections using the github.com/deadsy/sdfx SDF library. Only sections
// with collision enabled get a proxy.
package collision

import (
	"fmt"
	"math"

	"github.com/chazu/carmesh/pkg/mesh"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Kind selects the proxy shape.
type Kind int

const (
	// Box wraps the section's axis-aligned bounding box.
	Box Kind = iota
	// CylinderY wraps a cylinder whose axis runs along Y, sized from the
	// section's X/Z extent (radius) and Y extent (length).
	CylinderY
)

func (k Kind) String() string {
	switch k {
	case Box:
		return "box"
	case CylinderY:
		return "cylinder-y"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// defaultMeshCells controls marching cubes resolution for proxy previews.
const defaultMeshCells = 64

var proxyColor = mesh.Color{R: 0, G: 1, B: 0, A: 0.3}

// Proxy is a convex stand-in for one collision-enabled section.
type Proxy struct {
	Index int
	Name  string
	Kind  Kind
	s     sdf.SDF3
}

// Distance returns the signed distance from p to the proxy surface;
// negative inside.
func (p *Proxy) Distance(pt v3.Vec) float64 {
	return p.s.Evaluate(pt)
}

// Contains reports whether pt lies inside or on the proxy.
func (p *Proxy) Contains(pt v3.Vec) bool {
	return p.s.Evaluate(pt) <= 1e-9
}

// BoundingBox returns the axis-aligned bounding box.
func (p *Proxy) BoundingBox() (min, max [3]float64) {
	bb := p.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// New builds a proxy of the given kind around s.
func New(s *mesh.Section, kind Kind) (*Proxy, error) {
	if s.IsEmpty() {
		return nil, fmt.Errorf("collision: section %d has no vertices", s.Index)
	}
	bb := s.BoundingBox()
	size := bb.Max.Sub(bb.Min)
	center := bb.Min.Add(bb.Max).MulScalar(0.5)

	var shape sdf.SDF3
	var err error
	switch kind {
	case Box:
		shape, err = sdf.Box3D(size, 0)
	case CylinderY:
		radius := math.Max(size.X, size.Z) / 2
		shape, err = sdf.Cylinder3D(size.Y, radius, 0)
		if err == nil {
			// Cylinder3D runs along Z; lay it on its side.
			shape = sdf.Transform3D(shape, sdf.RotateX(math.Pi/2))
		}
	default:
		return nil, fmt.Errorf("collision: unknown proxy kind %v", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("collision: section %d (%s): %w", s.Index, s.Name, err)
	}

	return &Proxy{
		Index: s.Index,
		Name:  s.Name,
		Kind:  kind,
		s:     sdf.Transform3D(shape, sdf.Translate3d(center)),
	}, nil
}

// Build returns one proxy per collision-enabled section of m, in section
// order. kinds maps section indices to shapes; unlisted sections get a Box.
func Build(m *mesh.Model, kinds map[int]Kind) ([]*Proxy, error) {
	var out []*Proxy
	for _, s := range m.Sections {
		if !s.Collision {
			continue
		}
		p, err := New(s, kinds[s.Index])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ToMesh tessellates the proxy with marching cubes into a translucent,
// non-colliding preview section carrying true face normals.
func (p *Proxy) ToMesh(cells int) (*mesh.Section, error) {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(p.s, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("collision: proxy %d produced no triangles", p.Index)
	}

	numVerts := len(triangles) * 3
	s := &mesh.Section{
		Index:     p.Index,
		Name:      p.Name + "_proxy",
		Vertices:  make([]v3.Vec, 0, numVerts),
		Triangles: make([]int32, 0, numVerts),
		Normals:   make([]v3.Vec, 0, numVerts),
		UVs:       make([]mesh.UV, numVerts),
		Colors:    make([]mesh.Color, 0, numVerts),
		Tangents:  make([]mesh.Tangent, numVerts),
		Material:  mesh.MaterialTranslucent,
	}

	for i, tri := range triangles {
		n := tri.Normal()
		for j := 0; j < 3; j++ {
			s.Vertices = append(s.Vertices, tri[j])
			s.Normals = append(s.Normals, n)
			s.Colors = append(s.Colors, proxyColor)
			s.Triangles = append(s.Triangles, int32(i*3+j))
		}
	}
	return s, nil
}
