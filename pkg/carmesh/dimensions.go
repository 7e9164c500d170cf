package carmesh

import "fmt"

// MaxWheelSegments caps the wheel ring resolution so vertex indices stay
// well inside int32.
const MaxWheelSegments = 1024

// Dimensions holds every size the builder uses. Body and glass derive
// their heights from the same fields so the two never drift apart.
//
// The car's local frame is X along the length (front at -X), Y across the
// width (left at -Y) and Z up, with the ground plane at Z = 0.
type Dimensions struct {
	Length      float64 `yaml:"length"`
	Width       float64 `yaml:"width"`
	HoodHeight  float64 `yaml:"hood_height"`
	CabinHeight float64 `yaml:"cabin_height"`
	RoofHeight  float64 `yaml:"roof_height"` // above the cabin belt line
	TailHeight  float64 `yaml:"tail_height"`

	HoodEnd    float64 `yaml:"hood_end"`
	CabinFront float64 `yaml:"cabin_front"`
	CabinRear  float64 `yaml:"cabin_rear"`
	RoofFront  float64 `yaml:"roof_front"`
	RoofRear   float64 `yaml:"roof_rear"`
	RoofWidth  float64 `yaml:"roof_width"`

	// GlassInset drops the window base below the belt line and pulls the
	// window edges in from the body sides.
	GlassInset float64 `yaml:"glass_inset"`

	WheelRadius   float64 `yaml:"wheel_radius"`
	WheelWidth    float64 `yaml:"wheel_width"`
	WheelSegments int     `yaml:"wheel_segments"`
	AxleOffset    float64 `yaml:"axle_offset"`  // front/rear axle distance from origin
	TrackOffset   float64 `yaml:"track_offset"` // left/right wheel distance from origin
	WheelZ        float64 `yaml:"wheel_z"`      // hub height; at least WheelRadius so the tyres rest on Z = 0
}

// DefaultDimensions returns the stock car.
func DefaultDimensions() Dimensions {
	return Dimensions{
		Length:      240,
		Width:       100,
		HoodHeight:  25,
		CabinHeight: 45,
		RoofHeight:  35,
		TailHeight:  20,

		HoodEnd:    -40,
		CabinFront: -50,
		CabinRear:  60,
		RoofFront:  -30,
		RoofRear:   40,
		RoofWidth:  70,

		GlassInset: 5,

		WheelRadius:   30,
		WheelWidth:    20,
		WheelSegments: 8,
		AxleOffset:    80,
		TrackOffset:   55,
		WheelZ:        30,
	}
}

// GlassBase is the height of the bottom edge of both windows.
func (d Dimensions) GlassBase() float64 {
	return d.CabinHeight - d.GlassInset
}

// GlassTop is the height of the top edge of both windows.
func (d Dimensions) GlassTop() float64 {
	return d.GlassBase() + d.RoofHeight
}

// RoofZ is the height of the roof panel.
func (d Dimensions) RoofZ() float64 {
	return d.CabinHeight + d.RoofHeight
}

// Validate rejects dimensions that cannot produce a sensible hull.
func (d Dimensions) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"length", d.Length},
		{"width", d.Width},
		{"hood_height", d.HoodHeight},
		{"cabin_height", d.CabinHeight},
		{"roof_height", d.RoofHeight},
		{"tail_height", d.TailHeight},
		{"roof_width", d.RoofWidth},
		{"wheel_radius", d.WheelRadius},
		{"wheel_width", d.WheelWidth},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("dimension %s is %.4f, must be positive", p.name, p.v)
		}
	}

	half := d.Length / 2
	switch {
	case d.WheelSegments < 3:
		return fmt.Errorf("wheel_segments is %d, must be at least 3", d.WheelSegments)
	case d.WheelSegments > MaxWheelSegments:
		return fmt.Errorf("wheel_segments is %d, must be at most %d", d.WheelSegments, MaxWheelSegments)
	case d.WheelZ < d.WheelRadius:
		return fmt.Errorf("wheel_z %.4f is below wheel_radius %.4f, wheels would sink under the ground", d.WheelZ, d.WheelRadius)
	case d.RoofWidth > d.Width:
		return fmt.Errorf("roof_width %.4f exceeds width %.4f", d.RoofWidth, d.Width)
	case d.GlassInset < 0 || d.GlassInset >= d.CabinHeight || 2*d.GlassInset >= d.Width:
		return fmt.Errorf("glass_inset %.4f out of range", d.GlassInset)
	case d.HoodEnd <= -half || d.HoodEnd >= half:
		return fmt.Errorf("hood_end %.4f outside body length", d.HoodEnd)
	case d.CabinFront <= -half || d.CabinRear >= half || d.CabinFront >= d.CabinRear:
		return fmt.Errorf("cabin span [%.4f, %.4f] invalid", d.CabinFront, d.CabinRear)
	case d.RoofFront < d.CabinFront || d.RoofRear > d.CabinRear || d.RoofFront >= d.RoofRear:
		return fmt.Errorf("roof span [%.4f, %.4f] must lie inside the cabin span", d.RoofFront, d.RoofRear)
	case d.TailHeight > d.HoodHeight:
		return fmt.Errorf("tail_height %.4f exceeds hood_height %.4f", d.TailHeight, d.HoodHeight)
	}
	return nil
}
