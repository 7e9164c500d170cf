// Package profile evaluates vehicle profiles written in a small Lisp
// dialect. It wraps zygomys in a sandboxed environment and produces the
// dimensions and drivetrain setup for one car.
//
// A profile is a sequence of calls that override the stock car:
//
//	(body :length 260 :roof-height 30)
//	(wheels :radius 32 :z 32 :segments 12)
//	(torque-key 0 380)
//	(torque-key 2500 520)
//	(gearbox :automatic false)
package profile

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/carmesh/pkg/carmesh"
	"github.com/chazu/carmesh/pkg/vehicle"
	zygo "github.com/glycerine/zygomys/zygo"
	"go.uber.org/zap"
)

// Profile is the result of evaluating a profile source.
type Profile struct {
	Dimensions carmesh.Dimensions
	Vehicle    vehicle.Setup
}

// Default returns the stock car profile.
func Default() *Profile {
	return &Profile{
		Dimensions: carmesh.DefaultDimensions(),
		Vehicle:    vehicle.Default(),
	}
}

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error, a bad builtin argument or an invalid result.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use;
// each call to Evaluate creates a fresh sandboxed environment.
type Engine struct {
	// Timeout bounds each evaluation; zero means EvalTimeout.
	Timeout time.Duration

	mu         sync.Mutex
	generation uint64
	log        *zap.Logger
}

// NewEngine creates a new Engine. A nil logger disables logging.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

// Evaluate runs profile source and returns the resulting profile.
//
// Return semantics:
//   - On success: returns profile + nil errors + nil error
//   - On parse/eval/validation failure: returns nil + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*Profile, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		p, evalErrs, err := e.evaluate(source)
		ch <- evalResult{profile: p, errors: evalErrs, err: err}
	}()

	p, evalErrs, err := e.await(ch, gen)
	var superseded *SupersededError
	switch {
	case errors.As(err, &superseded):
		e.log.Debug("profile result dropped", zap.Uint64("generation", superseded.Generation), zap.Uint64("latest", superseded.Latest))
	case err != nil:
		e.log.Error("profile evaluation failed", zap.Error(err))
	case len(evalErrs) > 0:
		e.log.Warn("profile has errors", zap.Int("count", len(evalErrs)), zap.String("first", evalErrs[0].Error()))
	default:
		e.log.Debug("profile evaluated", zap.Float64("length", p.Dimensions.Length), zap.Int("wheel_segments", p.Dimensions.WheelSegments))
	}
	return p, evalErrs, err
}

// EvaluateFile reads and evaluates a profile from disk.
func (e *Engine) EvaluateFile(path string) (*Profile, []EvalError, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	return e.Evaluate(string(src))
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Profile, []EvalError, error) {
	p := Default()

	// Empty source is a valid profile: the stock car.
	if strings.TrimSpace(source) == "" {
		return p, nil, nil
	}

	// Sandbox mode prevents profiles from touching the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, p)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	if err := p.Validate(); err != nil {
		return nil, []EvalError{{Message: err.Error()}}, nil
	}
	return p, nil, nil
}

// Validate checks both the dimensions and the vehicle setup.
func (p *Profile) Validate() error {
	if err := p.Dimensions.Validate(); err != nil {
		return err
	}
	return p.Vehicle.Validate()
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?is)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?is)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalError values,
// extracting the line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
