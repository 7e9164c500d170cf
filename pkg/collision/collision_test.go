package collision_test

import (
	"math"
	"testing"

	"github.com/chazu/carmesh/pkg/carmesh"
	"github.com/chazu/carmesh/pkg/collision"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestBuildSkipsNonColliding(t *testing.T) {
	b := carmesh.Default()
	proxies, err := b.CollisionProxies(b.Build())
	if err != nil {
		t.Fatalf("CollisionProxies failed: %v", err)
	}
	if len(proxies) != 5 {
		t.Fatalf("expected 5 proxies (body + 4 wheels), got %d", len(proxies))
	}
	for _, p := range proxies {
		if p.Index == carmesh.WindowsIndex {
			t.Error("windows should have no proxy")
		}
	}
	if proxies[0].Kind != collision.Box {
		t.Errorf("body proxy kind = %v, want box", proxies[0].Kind)
	}
	for _, p := range proxies[1:] {
		if p.Kind != collision.CylinderY {
			t.Errorf("proxy %d kind = %v, want cylinder-y", p.Index, p.Kind)
		}
	}
}

func TestBodyProxyContainsHull(t *testing.T) {
	body := carmesh.Default().BuildBody()
	p, err := collision.New(body, collision.Box)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i, v := range body.Vertices {
		if p.Distance(v) > 1e-6 {
			t.Errorf("vertex %d %v outside body proxy (d=%f)", i, v, p.Distance(v))
		}
	}
	if p.Contains(v3.Vec{X: 500}) {
		t.Error("point far in front of the car should be outside")
	}
	if !p.Contains(v3.Vec{Z: 10}) {
		t.Error("point inside the hull should be inside")
	}

	min, max := p.BoundingBox()
	const tol = 0.01
	if math.Abs(min[0]+120) > tol || math.Abs(max[0]-120) > tol {
		t.Errorf("proxy X bounds = [%f, %f], want [-120, 120]", min[0], max[0])
	}
	if math.Abs(min[2]) > tol || math.Abs(max[2]-80) > tol {
		t.Errorf("proxy Z bounds = [%f, %f], want [0, 80]", min[2], max[2])
	}
}

func TestWheelProxyMatchesRim(t *testing.T) {
	b := carmesh.Default()
	centers := b.WheelCenters()
	for i, w := range b.BuildWheels() {
		p, err := collision.New(w, collision.CylinderY)
		if err != nil {
			t.Fatalf("New(wheel %d) failed: %v", i, err)
		}
		if !p.Contains(centers[i]) {
			t.Errorf("wheel %d hub %v outside proxy", i, centers[i])
		}
		// The 8-gon's rim vertices touch the circumscribed cylinder.
		for j, v := range w.Vertices {
			if d := p.Distance(v); math.Abs(d) > 1e-6 {
				t.Errorf("wheel %d vertex %d distance %f, want ~0", i, j, d)
			}
		}
		if p.Contains(centers[i].Add(v3.Vec{Y: 30})) {
			t.Errorf("wheel %d: point beyond the tread width should be outside", i)
		}
	}
}

func TestProxyToMesh(t *testing.T) {
	w := carmesh.Default().BuildWheels()[0]
	p, err := collision.New(w, collision.CylinderY)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s, err := p.ToMesh(32)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if s.IsEmpty() || s.TriangleCount() == 0 {
		t.Fatal("proxy mesh is empty")
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("proxy mesh invalid: %v", err)
	}
	if s.Collision {
		t.Error("proxy preview must not collide")
	}
	t.Logf("wheel proxy triangle count: %d", s.TriangleCount())
}

func TestNewRejectsEmptySection(t *testing.T) {
	w := carmesh.Default().BuildWheels()[0]
	w.Vertices = nil
	if _, err := collision.New(w, collision.Box); err == nil {
		t.Fatal("expected error for empty section")
	}
	if _, err := collision.New(carmesh.Default().BuildBody(), collision.Kind(42)); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
