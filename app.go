package main

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/chazu/carmesh/internal/logger"
	"github.com/chazu/carmesh/pkg/carmesh"
	"github.com/chazu/carmesh/pkg/mesh"
	"github.com/chazu/carmesh/pkg/profile"
)

// App is the Wails backend. It exposes methods to the frontend via bindings
// and acts as the mesh holder the builder commits into.
type App struct {
	ctx     context.Context
	profile *profile.Engine
	log     *zap.Logger

	buildMu  sync.Mutex // serializes Evaluate's reset-commit-read cycle
	mu       sync.Mutex
	sections []*mesh.Section
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Index     int       `json:"index"`
	PartName  string    `json:"partName"`
	Vertices  []float32 `json:"vertices"`
	Normals   []float32 `json:"normals"`
	Indices   []uint32  `json:"indices"`
	Color     string    `json:"color"`
	Alpha     float32   `json:"alpha"`
	Collision bool      `json:"collision"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// BuildResult is the full result returned to the frontend.
type BuildResult struct {
	Meshes []MeshData      `json:"meshes"`
	Errors []EvalErrorData `json:"errors"`
	MaxRPM float64         `json:"maxRPM"`
}

// NewApp creates a new App with its own profile engine.
func NewApp() *App {
	log := logger.Named("app")
	return &App{
		profile: profile.NewEngine(log),
		log:     log,
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// CreateSection receives one committed section.
func (a *App) CreateSection(s *mesh.Section) error {
	if s == nil {
		return fmt.Errorf("app: nil section")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sections = append(a.sections, s)
	return nil
}

// Build returns the stock car.
func (a *App) Build() BuildResult {
	return a.Evaluate("")
}

// Evaluate takes a vehicle profile and returns the car's meshes or errors.
// This is the primary binding called by the frontend editor.
func (a *App) Evaluate(source string) BuildResult {
	result := BuildResult{
		Meshes: []MeshData{},
		Errors: []EvalErrorData{},
	}

	// Step 1: Evaluate the profile into dimensions and a vehicle setup.
	p, evalErrs, err := a.profile.Evaluate(source)
	if err != nil {
		a.log.Error("profile fatal error", zap.Error(err))
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}
	result.MaxRPM = p.Vehicle.Engine.MaxRPM

	// Step 2: Build and commit the car into this holder.
	b, err := carmesh.New(p.Dimensions, a.log)
	if err != nil {
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	a.buildMu.Lock()
	defer a.buildMu.Unlock()

	a.mu.Lock()
	a.sections = nil
	a.mu.Unlock()

	if err := b.Commit(a); err != nil {
		a.log.Error("commit failed", zap.Error(err))
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "commit failed: " + err.Error(),
		})
		return result
	}

	// Step 3: Convert committed sections to the frontend format.
	a.mu.Lock()
	secs := append([]*mesh.Section(nil), a.sections...)
	a.mu.Unlock()
	sort.Slice(secs, func(i, j int) bool { return secs[i].Index < secs[j].Index })

	for _, s := range secs {
		result.Meshes = append(result.Meshes, toMeshData(s))
	}
	return result
}

func toMeshData(s *mesh.Section) MeshData {
	md := MeshData{
		Index:     s.Index,
		PartName:  s.Name,
		Vertices:  make([]float32, 0, 3*len(s.Vertices)),
		Normals:   make([]float32, 0, 3*len(s.Normals)),
		Indices:   make([]uint32, len(s.Triangles)),
		Color:     "#ffffff",
		Alpha:     1,
		Collision: s.Collision,
	}
	for _, v := range s.Vertices {
		md.Vertices = append(md.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
	}
	for _, n := range s.Normals {
		vec := mgl32.Vec3{float32(n.X), float32(n.Y), float32(n.Z)}
		if vec.Len() > 0 {
			vec = vec.Normalize()
		}
		md.Normals = append(md.Normals, vec[0], vec[1], vec[2])
	}
	for i, idx := range s.Triangles {
		md.Indices[i] = uint32(idx)
	}
	if len(s.Colors) > 0 {
		c := s.Colors[0]
		md.Color = hexColor(c)
		md.Alpha = c.A
	}
	return md
}

func hexColor(c mesh.Color) string {
	clamp := func(f float32) int {
		v := mgl32.Clamp(f, 0, 1)
		return int(v*255 + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.R), clamp(c.G), clamp(c.B))
}
