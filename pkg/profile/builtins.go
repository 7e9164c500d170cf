package profile

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
)

// kwPrefix marks keyword tokens after preprocessing.
const kwPrefix = "__kw_"

// preprocessSource rewrites profile source so zygomys can read it:
//
//   - :keyword becomes the string "__kw_keyword", so keywords need no
//     global symbol registration.
//   - kebab-case identifiers become snake_case (torque-key -> torque_key),
//     since zygomys reads a hyphen as subtraction.
//   - ; line comments become // comments.
//
// String literals are copied through untouched.
func preprocessSource(source string) string {
	b := []byte(source)
	out := make([]byte, 0, len(b)+len(b)/4)

	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == '"':
			j := i + 1
			for j < len(b) && b[j] != '"' {
				if b[j] == '\\' && j+1 < len(b) {
					j++
				}
				j++
			}
			if j < len(b) {
				j++
			}
			out = append(out, b[i:j]...)
			i = j

		case c == ';':
			out = append(out, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}

		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, kwPrefix...)
			out = append(out, b[i+1:j]...)
			out = append(out, '"')
			i = j

		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out = append(out, '_')
			i++

		default:
			out = append(out, c)
			i++
		}
	}
	return string(out)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isIdentChar(c) || c == '-'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// isKW returns the keyword name if s is a preprocessed keyword.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds a parsed argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	order      []string
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if _, seen := result.kw[name]; !seen {
			result.order = append(result.order, name)
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts a whole number from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a boolean from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if v, ok := s.(*zygo.SexpBool); ok {
		return v.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// setter stores one keyword value into the profile.
type setter func(zygo.Sexp) error

func floatField(dst *float64) setter {
	return func(s zygo.Sexp) error {
		v, err := toFloat64(s)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

func intField(dst *int) setter {
	return func(s zygo.Sexp) error {
		v, err := toInt(s)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

func boolField(dst *bool) setter {
	return func(s zygo.Sexp) error {
		v, err := toBool(s)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// keywordBuiltin returns a builtin that accepts only the listed keywords
// and writes each value through its setter.
func keywordBuiltin(fields map[string]setter) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		parsed := parseArgs(args)
		if len(parsed.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("%s: unexpected positional argument %s", name, parsed.positional[0].SexpString(nil))
		}
		for _, kw := range parsed.order {
			set, ok := fields[kw]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("%s: unknown option :%s", name, kw)
			}
			if err := set(parsed.kw[kw]); err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %s: %w", name, kw, err)
			}
		}
		return zygo.SexpNull, nil
	}
}

// registerBuiltins installs the profile builtins. Each one writes into p.
//
// Source must be run through preprocessSource first so keyword tokens
// are recognizable.
func registerBuiltins(env *zygo.Zlisp, p *Profile) {
	d := &p.Dimensions
	v := &p.Vehicle

	// (body :length 240 :width 100 :hood-height 25 ...)
	env.AddFunction("body", keywordBuiltin(map[string]setter{
		"length":       floatField(&d.Length),
		"width":        floatField(&d.Width),
		"hood-height":  floatField(&d.HoodHeight),
		"cabin-height": floatField(&d.CabinHeight),
		"roof-height":  floatField(&d.RoofHeight),
		"tail-height":  floatField(&d.TailHeight),
		"hood-end":     floatField(&d.HoodEnd),
		"cabin-front":  floatField(&d.CabinFront),
		"cabin-rear":   floatField(&d.CabinRear),
		"roof-front":   floatField(&d.RoofFront),
		"roof-rear":    floatField(&d.RoofRear),
		"roof-width":   floatField(&d.RoofWidth),
	}))

	// (glass :inset 5)
	env.AddFunction("glass", keywordBuiltin(map[string]setter{
		"inset": floatField(&d.GlassInset),
	}))

	// (wheels :radius 30 :width 20 :segments 8 :axle-offset 80 ...)
	env.AddFunction("wheels", keywordBuiltin(map[string]setter{
		"radius":       floatField(&d.WheelRadius),
		"width":        floatField(&d.WheelWidth),
		"segments":     intField(&d.WheelSegments),
		"axle-offset":  floatField(&d.AxleOffset),
		"track-offset": floatField(&d.TrackOffset),
		"z":            floatField(&d.WheelZ),
	}))

	// (engine :max-rpm 5700)
	env.AddFunction("engine", keywordBuiltin(map[string]setter{
		"max-rpm": floatField(&v.Engine.MaxRPM),
	}))

	// (gearbox :automatic true)
	env.AddFunction("gearbox", keywordBuiltin(map[string]setter{
		"automatic": boolField(&v.Transmission.Automatic),
	}))

	// (camera :arm-length 500 :pawn-rotation true)
	env.AddFunction("camera", keywordBuiltin(map[string]setter{
		"arm-length":    floatField(&v.Camera.ArmLength),
		"pawn-rotation": boolField(&v.Camera.UsePawnControlRotation),
	}))

	// (torque-key rpm nm). The first call replaces the stock curve.
	customCurve := false
	env.AddFunction("torque_key", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("torque-key requires rpm and torque, got %d arguments", len(args))
		}
		rpm, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("torque-key: rpm: %w", err)
		}
		nm, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("torque-key: torque: %w", err)
		}
		if !customCurve {
			v.Engine.Torque.Reset()
			customCurve = true
		}
		v.Engine.Torque.AddKey(rpm, nm)
		return zygo.SexpNull, nil
	})
}
