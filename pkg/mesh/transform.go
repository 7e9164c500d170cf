package mesh

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl32"
)

// Placement positions a model in the world: a location plus a yaw about
// the up (Z) axis in degrees.
type Placement struct {
	Location [3]float32 `yaml:"location" json:"location"`
	Yaw      float32    `yaml:"yaw" json:"yaw"`
}

// Matrix returns the placement as a model matrix (rotate, then translate).
func (p Placement) Matrix() mgl32.Mat4 {
	t := mgl32.Translate3D(p.Location[0], p.Location[1], p.Location[2])
	r := mgl32.HomogRotate3DZ(mgl32.DegToRad(p.Yaw))
	return t.Mul4(r)
}

// IsIdentity reports whether the placement leaves geometry unchanged.
func (p Placement) IsIdentity() bool {
	return p.Location == [3]float32{} && p.Yaw == 0
}

// Clone returns a deep copy of the section.
func (s *Section) Clone() *Section {
	c := *s
	c.Vertices = append([]v3.Vec(nil), s.Vertices...)
	c.Triangles = append([]int32(nil), s.Triangles...)
	c.Normals = append([]v3.Vec(nil), s.Normals...)
	c.UVs = append([]UV(nil), s.UVs...)
	c.Colors = append([]Color(nil), s.Colors...)
	c.Tangents = append([]Tangent(nil), s.Tangents...)
	return &c
}

// Transform returns a copy of the section with positions moved by m and
// normals and tangents rotated by its upper 3x3. m is expected to be rigid.
func (s *Section) Transform(m mgl32.Mat4) *Section {
	c := s.Clone()
	rot := m.Mat3()
	for i, v := range c.Vertices {
		p := m.Mul4x1(mgl32.Vec4{float32(v.X), float32(v.Y), float32(v.Z), 1})
		c.Vertices[i] = v3.Vec{X: float64(p.X()), Y: float64(p.Y()), Z: float64(p.Z())}
	}
	for i, n := range c.Normals {
		r := rot.Mul3x1(mgl32.Vec3{float32(n.X), float32(n.Y), float32(n.Z)})
		if r.Len() > 0 {
			r = r.Normalize()
		}
		c.Normals[i] = v3.Vec{X: float64(r.X()), Y: float64(r.Y()), Z: float64(r.Z())}
	}
	for i, t := range c.Tangents {
		r := rot.Mul3x1(mgl32.Vec3{t.X, t.Y, t.Z})
		c.Tangents[i] = Tangent{X: r.X(), Y: r.Y(), Z: r.Z(), FlipY: t.FlipY}
	}
	return c
}

// Transform returns a placed copy of the model; the receiver is unchanged.
func (m *Model) Transform(mat mgl32.Mat4) *Model {
	out := &Model{Sections: make([]*Section, 0, len(m.Sections))}
	for _, s := range m.Sections {
		out.Sections = append(out.Sections, s.Transform(mat))
	}
	return out
}
