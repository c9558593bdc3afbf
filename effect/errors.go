package effect

import (
	"errors"
	"fmt"
)

// ErrTimeout is the synthetic failure of a run whose handle exceeded its
// timeout budget.
var ErrTimeout = errors.New("effect: timed out")

// ErrInvalidResult is the synthetic failure produced when a handle's
// payload is not a result.Result, defending against malformed branch
// implementations.
var ErrInvalidResult = errors.New("effect: handle payload is not a result")

// PanicError captures a fault raised while forcing or executing a thunk.
// The engine returns it as a failure; the raw fault never escapes Run.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("effect: panic during execution: %v", e.Value)
}
