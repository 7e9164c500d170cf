package export

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"

	"github.com/chazu/carmesh/pkg/mesh"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// SerializedSection is the on-disk form of one section: flat float32
// buffers ready for a GPU upload.
type SerializedSection struct {
	Name      string             `json:"name"`
	Index     int                `json:"index"`
	Vertices  []float32          `json:"vertices"`
	Normals   []float32          `json:"normals"`
	Colors    []float32          `json:"colors"`
	Faces     []int32            `json:"faces"`
	Collision bool               `json:"collision"`
	Material  SerializedMaterial `json:"material"`
}

// SerializedMaterial contains the section's surface properties.
type SerializedMaterial struct {
	DiffuseColor [3]float32 `json:"diffuse_color"`
	Alpha        float32    `json:"alpha"`
	Translucent  bool       `json:"translucent,omitempty"`
}

// SerializedModel is the complete serializable representation of a car.
type SerializedModel struct {
	Name     string              `json:"name"`
	Bounds   [2][3]float32       `json:"bounds"`
	Sections []SerializedSection `json:"sections"`
}

// SerializeSection converts a section to flat buffers.
func SerializeSection(s *mesh.Section) SerializedSection {
	c := sectionColor(s)
	out := SerializedSection{
		Name:      s.Name,
		Index:     s.Index,
		Vertices:  flatten(s.Vertices),
		Normals:   flatten(s.Normals),
		Colors:    make([]float32, 0, 4*len(s.Colors)),
		Faces:     append([]int32(nil), s.Triangles...),
		Collision: s.Collision,
		Material: SerializedMaterial{
			DiffuseColor: [3]float32{c.R, c.G, c.B},
			Alpha:        c.A,
			Translucent:  s.Material == mesh.MaterialTranslucent,
		},
	}
	for _, col := range s.Colors {
		out.Colors = append(out.Colors, col.R, col.G, col.B, col.A)
	}
	return out
}

// SerializeModel converts every section of m.
func SerializeModel(name string, m *mesh.Model) *SerializedModel {
	out := &SerializedModel{Name: name}
	if len(m.Sections) > 0 {
		bb := m.BoundingBox()
		out.Bounds = [2][3]float32{
			{float32(bb.Min.X), float32(bb.Min.Y), float32(bb.Min.Z)},
			{float32(bb.Max.X), float32(bb.Max.Y), float32(bb.Max.Z)},
		}
	}
	for _, s := range m.Sections {
		out.Sections = append(out.Sections, SerializeSection(s))
	}
	return out
}

func flatten(vs []v3.Vec) []float32 {
	out := make([]float32, 0, 3*len(vs))
	for _, v := range vs {
		out = append(out, float32(v.X), float32(v.Y), float32(v.Z))
	}
	return out
}

// JSONWriter writes a gzip-compressed JSON model.
type JSONWriter struct {
	Collector
	path string
	Name string
}

// NewJSONWriter returns a writer targeting path.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path, Name: "car"}
}

// Path returns the target file.
func (w *JSONWriter) Path() string { return w.path }

// Close writes the compressed model.
func (w *JSONWriter) Close() error {
	if _, err := w.nonEmpty(); err != nil {
		return err
	}
	model := SerializeModel(w.Name, w.Model())
	return replaceFile(w.path, func(tmp string) error {
		f, err := os.Create(tmp)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		gz := gzip.NewWriter(f)
		if err := json.NewEncoder(gz).Encode(model); err != nil {
			gz.Close()
			f.Close()
			return fmt.Errorf("export: encode %s: %w", w.path, err)
		}
		if err := gz.Close(); err != nil {
			f.Close()
			return fmt.Errorf("export: compress %s: %w", w.path, err)
		}
		return f.Close()
	})
}

// ReadJSON loads a model written by JSONWriter.
func ReadJSON(path string) (*SerializedModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	var m SerializedModel
	if err := json.NewDecoder(gz).Decode(&m); err != nil {
		return nil, fmt.Errorf("export: decode %s: %w", path, err)
	}
	return &m, nil
}
