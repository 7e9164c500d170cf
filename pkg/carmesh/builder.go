// Package carmesh builds the fixed-topology triangle mesh of a stylized
// car: a body hull, front and rear windows, and four wheels. Each part is
// emitted as its own mesh.Section so the renderer can give it a material
// and collision setting.
package carmesh

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/chazu/carmesh/pkg/mesh"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"go.uber.org/zap"
)

// Section indices, fixed so a renderer can bind material slots by index.
const (
	BodyIndex       = 0
	WindowsIndex    = 1
	FirstWheelIndex = 2
	WheelCount      = 4
)

// ErrMissingCollaborator is returned when there is no mesh holder to
// receive the sections.
var ErrMissingCollaborator = errors.New("carmesh: missing mesh holder")

var (
	bodyColor   = mesh.Color{R: 1, G: 0, B: 0, A: 1}
	glassColor  = mesh.Color{R: 0, G: 0, B: 1, A: 0.7}
	wheelColor  = mesh.Color{R: 0, G: 0, B: 0, A: 1}
	up          = v3.Vec{X: 0, Y: 0, Z: 1}
	flatTangent = mesh.Tangent{X: 1, Y: 0, Z: 0}
)

// Builder produces the car model from a fixed set of dimensions. It holds
// no mutable state; every Build call allocates fresh buffers.
type Builder struct {
	dims Dimensions
	log  *zap.Logger
}

// New returns a Builder for the given dimensions. A nil logger disables
// logging.
func New(d Dimensions, log *zap.Logger) (*Builder, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("carmesh: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{dims: d, log: log}, nil
}

// Default returns a Builder for the stock car.
func Default() *Builder {
	return &Builder{dims: DefaultDimensions(), log: zap.NewNop()}
}

// Dimensions returns the sizes the builder was created with.
func (b *Builder) Dimensions() Dimensions {
	return b.dims
}

// sectionWriter appends vertices with their attributes in lock step, so
// every buffer of the section always has the same length.
type sectionWriter struct {
	s     *mesh.Section
	color mesh.Color
}

func newSection(index int, name string, color mesh.Color, collision bool, mat mesh.Material) *sectionWriter {
	return &sectionWriter{
		s: &mesh.Section{
			Index:     index,
			Name:      name,
			Collision: collision,
			Material:  mat,
		},
		color: color,
	}
}

func (w *sectionWriter) vertex(x, y, z float64) {
	w.s.Vertices = append(w.s.Vertices, v3.Vec{X: x, Y: y, Z: z})
	w.s.Normals = append(w.s.Normals, up)
	w.s.UVs = append(w.s.UVs, mesh.UV{})
	w.s.Colors = append(w.s.Colors, w.color)
	w.s.Tangents = append(w.s.Tangents, flatTangent)
}

func (w *sectionWriter) tri(a, b, c int32) {
	w.s.Triangles = append(w.s.Triangles, a, b, c)
}

// quad adds a, b, c, d as two triangles. The corners must be listed
// counter-clockwise as seen from outside.
func (w *sectionWriter) quad(a, b, c, d int32) {
	w.tri(a, b, c)
	w.tri(a, c, d)
}

// BuildBody returns the hull as section 0.
//
// Vertex tiers, five of them: ground (0-3), hood (4-7), cabin belt line
// (8-11), trunk (12-15) and roof (16-19).
func (b *Builder) BuildBody() *mesh.Section {
	d := b.dims
	hl, hw, rw := d.Length/2, d.Width/2, d.RoofWidth/2
	roof := d.RoofZ()

	w := newSection(BodyIndex, "body", bodyColor, true, mesh.MaterialOpaque)

	// ground
	w.vertex(-hl, -hw, 0)
	w.vertex(-hl, hw, 0)
	w.vertex(hl, hw, 0)
	w.vertex(hl, -hw, 0)
	// hood
	w.vertex(-hl, -hw, d.HoodHeight)
	w.vertex(-hl, hw, d.HoodHeight)
	w.vertex(d.HoodEnd, hw, d.HoodHeight)
	w.vertex(d.HoodEnd, -hw, d.HoodHeight)
	// cabin
	w.vertex(d.CabinFront, -hw, d.CabinHeight)
	w.vertex(d.CabinFront, hw, d.CabinHeight)
	w.vertex(d.CabinRear, hw, d.CabinHeight)
	w.vertex(d.CabinRear, -hw, d.CabinHeight)
	// trunk
	w.vertex(d.CabinRear, -hw, d.HoodHeight)
	w.vertex(d.CabinRear, hw, d.HoodHeight)
	w.vertex(hl, 0, d.TailHeight)
	w.vertex(hl, 0, 0)
	// roof
	w.vertex(d.RoofFront, -rw, roof)
	w.vertex(d.RoofFront, rw, roof)
	w.vertex(d.RoofRear, rw, roof)
	w.vertex(d.RoofRear, -rw, roof)

	w.quad(0, 1, 2, 3)     // underside
	w.quad(0, 4, 5, 1)     // nose
	w.quad(4, 7, 6, 5)     // hood
	w.quad(7, 8, 9, 6)     // cowl
	w.quad(8, 16, 17, 9)   // windshield slope
	w.quad(16, 19, 18, 17) // roof
	w.quad(19, 11, 10, 18) // rear window slope
	w.quad(12, 13, 10, 11) // deck
	w.tri(12, 14, 13)      // sloped trunk lid
	w.tri(3, 15, 14)       // tail
	w.tri(15, 2, 14)

	return w.s
}

// BuildWindows returns the windshield and rear window as section 1. The
// glass is translucent and takes no part in collision.
func (b *Builder) BuildWindows() *mesh.Section {
	d := b.dims
	base, top := d.GlassBase(), d.GlassTop()
	bw := d.Width/2 - d.GlassInset
	tw := d.RoofWidth / 2

	w := newSection(WindowsIndex, "windows", glassColor, false, mesh.MaterialTranslucent)

	// windshield
	w.vertex(d.CabinFront, -bw, base)
	w.vertex(d.CabinFront, bw, base)
	w.vertex(d.RoofFront, tw, top)
	w.vertex(d.RoofFront, -tw, top)
	// rear window
	w.vertex(d.RoofRear, -tw, top)
	w.vertex(d.RoofRear, tw, top)
	w.vertex(d.CabinRear, bw, base)
	w.vertex(d.CabinRear, -bw, base)

	w.quad(0, 3, 2, 1)
	w.quad(4, 7, 6, 5)

	return w.s
}

// Build returns the complete car: body, windows, then the four wheels.
func (b *Builder) Build() *mesh.Model {
	sections := make([]*mesh.Section, 0, 2+WheelCount)
	sections = append(sections, b.BuildBody(), b.BuildWindows())
	sections = append(sections, b.BuildWheels()...)
	return &mesh.Model{Sections: sections}
}

// Commit builds the car and hands every section to h.
func (b *Builder) Commit(h mesh.Holder) error {
	return CommitModel(h, b.Build(), b.log)
}

// CommitModel hands every section of m to h. All sections are validated
// before the first one is committed, so h never sees part of a broken
// model. The first holder error stops the commit.
func CommitModel(h mesh.Holder, m *mesh.Model, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if isNilHolder(h) {
		log.Error("mesh construction aborted", zap.Error(ErrMissingCollaborator))
		return ErrMissingCollaborator
	}
	if err := m.Validate(); err != nil {
		log.Error("mesh validation failed", zap.Error(err))
		return fmt.Errorf("carmesh: %w", err)
	}
	for _, s := range m.Sections {
		if err := h.CreateSection(s); err != nil {
			log.Error("section commit failed", zap.Int("section", s.Index), zap.Error(err))
			return fmt.Errorf("carmesh: commit section %d (%s): %w", s.Index, s.Name, err)
		}
		log.Debug("section committed",
			zap.Int("section", s.Index),
			zap.String("name", s.Name),
			zap.Int("vertices", s.VertexCount()),
			zap.Int("triangles", s.TriangleCount()),
			zap.Bool("collision", s.Collision),
		)
	}
	return nil
}

// isNilHolder also catches a typed nil pointer stored in the interface.
func isNilHolder(h mesh.Holder) bool {
	if h == nil {
		return true
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
