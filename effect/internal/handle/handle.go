package handle

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned by Await when the payload does not arrive within
// the given budget.
var ErrTimeout = errors.New("handle: await timed out")

// ErrAbandoned is returned when the spawned work was cancelled before it
// produced a payload.
var ErrAbandoned = errors.New("handle: work abandoned before producing a payload")

// Panic is the payload substituted when a spawned unit of work panics.
// The engine converts it into a failure instead of letting the fault escape.
type Panic struct {
	Value any
}

// Handle is a runtime handle to independently scheduled work.
// The payload is delivered at most once; Await must be called exactly once.
type Handle struct {
	out      chan any
	cancelFn context.CancelFunc
}

// Spawn schedules fn on its own goroutine with its own cancellable context
// and returns once the goroutine has started. A panic inside fn is recovered
// into a Panic payload rather than crashing the process.
func Spawn(ctx context.Context, fn func(context.Context) any) *Handle {
	ctx, cancelFn := context.WithCancel(ctx)
	out := make(chan any, 1)
	ready := make(chan struct{})

	go func() {
		defer close(out)
		defer func() {
			if r := recover(); r != nil {
				out <- Panic{Value: r}
			}
		}()
		close(ready)

		select {
		case <-ctx.Done():
			return
		default:
		}

		out <- fn(ctx)
	}()
	<-ready

	return &Handle{out: out, cancelFn: cancelFn}
}

// Await blocks until the payload arrives, the timeout elapses, or ctx is
// cancelled. On timeout or cancellation the underlying work is cancelled
// and abandoned. A timeout of zero means no budget beyond ctx itself.
func (h *Handle) Await(ctx context.Context, timeout time.Duration) (any, error) {
	var timeoutCh <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	select {
	case payload, ok := <-h.out:
		if !ok {
			return nil, ErrAbandoned
		}
		return payload, nil
	case <-timeoutCh:
		h.cancelFn()
		return nil, ErrTimeout
	case <-ctx.Done():
		h.cancelFn()
		return nil, ctx.Err()
	}
}

// Cancel abandons the underlying work. Await on a cancelled handle returns
// ErrAbandoned once the goroutine has observed the cancellation.
func (h *Handle) Cancel() {
	h.cancelFn()
}
