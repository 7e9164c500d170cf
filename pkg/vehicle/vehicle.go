// Package vehicle holds the drivetrain and camera setup that accompanies a
// car model: engine torque curve, maximum RPM, gearbox mode and the chase
// camera arm. It is configuration only; nothing here integrates motion.
package vehicle

import (
	"fmt"
	"sort"
)

// Key is one point on a curve.
type Key struct {
	In  float64 `yaml:"in" json:"in"`
	Out float64 `yaml:"out" json:"out"`
}

// Curve is a piecewise-linear function kept sorted by In.
type Curve struct {
	Keys []Key `yaml:"keys" json:"keys"`
}

// Reset removes every key.
func (c *Curve) Reset() {
	c.Keys = nil
}

// AddKey inserts a key, replacing any existing key at the same input.
func (c *Curve) AddKey(in, out float64) {
	i := sort.Search(len(c.Keys), func(i int) bool { return c.Keys[i].In >= in })
	if i < len(c.Keys) && c.Keys[i].In == in {
		c.Keys[i].Out = out
		return
	}
	c.Keys = append(c.Keys, Key{})
	copy(c.Keys[i+1:], c.Keys[i:])
	c.Keys[i] = Key{In: in, Out: out}
}

// Eval interpolates the curve at in, clamping to the first and last keys.
// An empty curve evaluates to zero.
func (c *Curve) Eval(in float64) float64 {
	n := len(c.Keys)
	switch {
	case n == 0:
		return 0
	case in <= c.Keys[0].In:
		return c.Keys[0].Out
	case in >= c.Keys[n-1].In:
		return c.Keys[n-1].Out
	}
	i := sort.Search(n, func(i int) bool { return c.Keys[i].In >= in })
	a, b := c.Keys[i-1], c.Keys[i]
	t := (in - a.In) / (b.In - a.In)
	return a.Out + t*(b.Out-a.Out)
}

// Peak returns the key with the highest output.
func (c *Curve) Peak() (Key, bool) {
	if len(c.Keys) == 0 {
		return Key{}, false
	}
	best := c.Keys[0]
	for _, k := range c.Keys[1:] {
		if k.Out > best.Out {
			best = k
		}
	}
	return best, true
}

// EngineSetup describes the engine: torque (Nm) as a function of RPM.
type EngineSetup struct {
	MaxRPM float64 `yaml:"max_rpm" json:"maxRPM"`
	Torque Curve   `yaml:"torque" json:"torque"`
}

// TransmissionSetup selects the gearbox behaviour.
type TransmissionSetup struct {
	Automatic bool `yaml:"automatic" json:"automatic"`
}

// CameraRig is the chase camera on its spring arm.
type CameraRig struct {
	ArmLength              float64 `yaml:"arm_length" json:"armLength"`
	UsePawnControlRotation bool    `yaml:"use_pawn_control_rotation" json:"usePawnControlRotation"`
}

// Setup bundles everything the vehicle needs beyond its mesh.
type Setup struct {
	Engine       EngineSetup       `yaml:"engine" json:"engine"`
	Transmission TransmissionSetup `yaml:"transmission" json:"transmission"`
	Camera       CameraRig         `yaml:"camera" json:"camera"`
}

// Default returns the stock setup: 5700 RPM redline, a torque curve that
// peaks at 500 Nm around 1890 RPM, automatic gears and a 500-unit camera
// arm.
func Default() Setup {
	s := Setup{
		Engine:       EngineSetup{MaxRPM: 5700},
		Transmission: TransmissionSetup{Automatic: true},
		Camera:       CameraRig{ArmLength: 500, UsePawnControlRotation: true},
	}
	s.Engine.Torque.AddKey(0, 400)
	s.Engine.Torque.AddKey(1890, 500)
	s.Engine.Torque.AddKey(5730, 400)
	return s
}

// TorqueAt returns engine torque at rpm, clamped to the redline.
func (e *EngineSetup) TorqueAt(rpm float64) float64 {
	if rpm > e.MaxRPM {
		rpm = e.MaxRPM
	}
	return e.Torque.Eval(rpm)
}

// Validate rejects setups the physics layer could not use.
func (s Setup) Validate() error {
	if s.Engine.MaxRPM <= 0 {
		return fmt.Errorf("engine max_rpm is %.2f, must be positive", s.Engine.MaxRPM)
	}
	if len(s.Engine.Torque.Keys) == 0 {
		return fmt.Errorf("engine torque curve has no keys")
	}
	for _, k := range s.Engine.Torque.Keys {
		if k.In < 0 || k.Out < 0 {
			return fmt.Errorf("torque key (%.2f, %.2f) must be non-negative", k.In, k.Out)
		}
	}
	if s.Camera.ArmLength < 0 {
		return fmt.Errorf("camera arm_length is %.2f, must not be negative", s.Camera.ArmLength)
	}
	return nil
}
