package carmesh

import (
	"math"

	"github.com/chazu/carmesh/pkg/mesh"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Wheel positions, in section order.
const (
	FrontLeft = iota
	FrontRight
	RearLeft
	RearRight
)

var wheelNames = [WheelCount]string{"wheel_fl", "wheel_fr", "wheel_rl", "wheel_rr"}

// WheelCenters returns the hub positions in section order. Front wheels sit
// at -AxleOffset, left wheels at -TrackOffset.
func (b *Builder) WheelCenters() [WheelCount]v3.Vec {
	d := b.dims
	return [WheelCount]v3.Vec{
		FrontLeft:  {X: -d.AxleOffset, Y: -d.TrackOffset, Z: d.WheelZ},
		FrontRight: {X: -d.AxleOffset, Y: d.TrackOffset, Z: d.WheelZ},
		RearLeft:   {X: d.AxleOffset, Y: -d.TrackOffset, Z: d.WheelZ},
		RearRight:  {X: d.AxleOffset, Y: d.TrackOffset, Z: d.WheelZ},
	}
}

// BuildWheels returns one section per wheel, indices 2 through 5.
func (b *Builder) BuildWheels() []*mesh.Section {
	centers := b.WheelCenters()
	out := make([]*mesh.Section, 0, WheelCount)
	for i, c := range centers {
		out = append(out, b.buildWheel(FirstWheelIndex+i, wheelNames[i], c))
	}
	return out
}

// buildWheel builds an open cylinder around the Y (axle) axis. Each of the
// segments+1 angular steps places an inner and an outer rim vertex; the
// last step lands back on angle 2π and is not snapped to the first.
func (b *Builder) buildWheel(index int, name string, c v3.Vec) *mesh.Section {
	d := b.dims
	seg := d.WheelSegments
	hw := d.WheelWidth / 2

	w := newSection(index, name, wheelColor, true, mesh.MaterialOpaque)

	for i := 0; i <= seg; i++ {
		a := 2 * math.Pi * float64(i) / float64(seg)
		x := c.X + d.WheelRadius*math.Cos(a)
		z := c.Z + d.WheelRadius*math.Sin(a)
		w.vertex(x, c.Y-hw, z)
		w.vertex(x, c.Y+hw, z)
	}

	for i := 0; i < seg; i++ {
		in0, out0 := int32(2*i), int32(2*i+1)
		in1, out1 := int32(2*i+2), int32(2*i+3)
		w.tri(in0, out0, out1)
		w.tri(in0, out1, in1)
	}

	return w.s
}
