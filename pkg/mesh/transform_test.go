package mesh

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func near(a, b v3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestPlacementIdentity(t *testing.T) {
	if !(Placement{}).IsIdentity() {
		t.Error("zero placement should be identity")
	}
	if (Placement{Yaw: 90}).IsIdentity() {
		t.Error("yawed placement should not be identity")
	}
}

func TestTransformTranslateAndYaw(t *testing.T) {
	s := quad()
	s.Normals[0] = v3.Vec{X: 1}
	s.Tangents[0] = Tangent{X: 1}

	p := Placement{Location: [3]float32{10, 20, 30}, Yaw: 90}
	out := s.Transform(p.Matrix())

	// (1,0,0) yawed 90 degrees is (0,1,0), then offset.
	if !near(out.Vertices[1], v3.Vec{X: 10, Y: 21, Z: 30}, 1e-4) {
		t.Errorf("vertex 1 = %v, want (10,21,30)", out.Vertices[1])
	}
	if !near(out.Normals[0], v3.Vec{Y: 1}, 1e-5) {
		t.Errorf("normal 0 = %v, want (0,1,0)", out.Normals[0])
	}
	if !near(out.Normals[1], v3.Vec{Z: 1}, 1e-5) {
		t.Errorf("up normal changed under yaw: %v", out.Normals[1])
	}
	if math.Abs(float64(out.Tangents[0].Y)-1) > 1e-5 {
		t.Errorf("tangent 0 = %+v, want +Y", out.Tangents[0])
	}

	// Receiver is untouched.
	if s.Vertices[1] != (v3.Vec{X: 1}) {
		t.Errorf("source vertex mutated: %v", s.Vertices[1])
	}
}

func TestModelTransformCopies(t *testing.T) {
	m := &Model{Sections: []*Section{quad()}}
	out := m.Transform(Placement{Location: [3]float32{0, 0, 5}}.Matrix())
	if out == m || out.Sections[0] == m.Sections[0] {
		t.Fatal("Transform must return fresh sections")
	}
	if out.Sections[0].Vertices[0].Z != 5 {
		t.Errorf("z = %v, want 5", out.Sections[0].Vertices[0].Z)
	}
	if m.Sections[0].Vertices[0].Z != 0 {
		t.Error("source model mutated")
	}
}
