// carmesh builds the procedural car mesh and writes it to an OBJ, STL or
// compressed JSON file.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/chazu/carmesh/internal/config"
	"github.com/chazu/carmesh/internal/logger"
	"github.com/chazu/carmesh/pkg/carmesh"
	"github.com/chazu/carmesh/pkg/export"
	"github.com/chazu/carmesh/pkg/mesh"
	"github.com/chazu/carmesh/pkg/profile"
	"github.com/chazu/carmesh/pkg/vehicle"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("carmesh failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	dims := cfg.Car
	setup := vehicle.Default()

	if cfg.Profile.Path != "" {
		p, err := loadProfile(cfg.Profile.Path)
		if err != nil {
			return err
		}
		dims = p.Dimensions
		setup = p.Vehicle
	}

	peak, _ := setup.Engine.Torque.Peak()
	logger.Info("vehicle setup",
		zap.Float64("max_rpm", setup.Engine.MaxRPM),
		zap.Float64("peak_torque", peak.Out),
		zap.Float64("peak_rpm", peak.In),
		zap.Bool("automatic", setup.Transmission.Automatic),
	)

	b, err := carmesh.New(dims, logger.Named("builder"))
	if err != nil {
		return err
	}

	m := b.Build()
	if !cfg.Placement.IsIdentity() {
		m = m.Transform(cfg.Placement.Matrix())
	}

	if cfg.Output.Proxies {
		if err := addProxies(b, m, cfg.Output.ProxyCells); err != nil {
			return err
		}
	}

	if cfg.Output.Floor {
		floor := carmesh.Floor(cfg.Output.FloorExtent)
		if m.Section(floor.Index) != nil {
			floor.Index = nextIndex(m)
		}
		m.Sections = append(m.Sections, floor)
	}

	w, err := export.New(cfg.Output.Path)
	if err != nil {
		return err
	}
	if err := carmesh.CommitModel(w, m, logger.Named("commit")); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	logger.Info("car written",
		zap.String("path", w.Path()),
		zap.Int("sections", len(m.Sections)),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()),
	)
	return nil
}

func loadProfile(path string) (*profile.Profile, error) {
	eng := profile.NewEngine(logger.Named("profile"))
	p, evalErrs, err := eng.EvaluateFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			logger.Error("profile error", zap.String("file", path), zap.Int("line", e.Line), zap.String("message", e.Message))
		}
		return nil, fmt.Errorf("profile %s: %d errors", path, len(evalErrs))
	}
	return p, nil
}

// addProxies appends marching-cubes previews of the car's collision
// proxies, re-indexed after the last section so indices stay unique. The
// floor is added afterwards since a flat plane has no volume to wrap.
func addProxies(b *carmesh.Builder, m *mesh.Model, cells int) error {
	proxies, err := b.CollisionProxies(m)
	if err != nil {
		return err
	}
	if len(proxies) == 0 {
		return errors.New("no collision proxies")
	}
	next := nextIndex(m)
	for _, p := range proxies {
		s, err := p.ToMesh(cells)
		if err != nil {
			return err
		}
		s.Index = next
		next++
		m.Sections = append(m.Sections, s)
	}
	return nil
}

func nextIndex(m *mesh.Model) int {
	next := 0
	for _, s := range m.Sections {
		if s.Index >= next {
			next = s.Index + 1
		}
	}
	return next
}
