package profile

import (
	"errors"
	"fmt"
	"time"
)

// EvalTimeout is the default limit for a single profile evaluation.
const EvalTimeout = 5 * time.Second

// ErrTimeout is returned when a profile runs longer than the engine allows.
var ErrTimeout = errors.New("profile: evaluation timed out")

// SupersededError is returned to an Evaluate call whose result arrived
// after a newer call had started. The previewer rebuilds on every edit, so
// only the latest profile is worth building.
type SupersededError struct {
	Generation uint64
	Latest     uint64
}

func (e *SupersededError) Error() string {
	return fmt.Sprintf("profile: evaluation %d superseded by %d", e.Generation, e.Latest)
}

// evalResult passes evaluation results through a channel.
type evalResult struct {
	profile *Profile
	errors  []EvalError
	err     error
}

// await waits for generation gen's result. On timeout the evaluating
// goroutine keeps running; its result lands in the buffered channel and
// is dropped.
func (e *Engine) await(ch <-chan evalResult, gen uint64) (*Profile, []EvalError, error) {
	limit := e.Timeout
	if limit <= 0 {
		limit = EvalTimeout
	}
	timer := time.NewTimer(limit)
	defer timer.Stop()

	select {
	case res := <-ch:
		if latest := e.latest(); latest != gen {
			return nil, nil, &SupersededError{Generation: gen, Latest: latest}
		}
		return res.profile, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, limit)
	}
}

func (e *Engine) latest() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}
