package carmesh

import "github.com/chazu/carmesh/pkg/mesh"

// FloorIndex is the section index used for the ground plane. It follows
// the car sections so a scene can hold both.
const FloorIndex = FirstWheelIndex + WheelCount

// DefaultFloorExtent is the side length of the stock ground plane: a
// 100-unit plane scaled ten times.
const DefaultFloorExtent = 1000

var floorColor = mesh.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}

// Floor returns a flat, square, collision-enabled ground plane of the
// given side length centred on the origin at Z = 0.
func Floor(extent float64) *mesh.Section {
	h := extent / 2
	w := newSection(FloorIndex, "floor", floorColor, true, mesh.MaterialOpaque)
	w.vertex(-h, -h, 0)
	w.vertex(h, -h, 0)
	w.vertex(h, h, 0)
	w.vertex(-h, h, 0)
	w.quad(0, 1, 2, 3)
	return w.s
}
