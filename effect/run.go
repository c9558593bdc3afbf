package effect

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/on-the-ground/effectflow_go/effect/config"
	"github.com/on-the-ground/effectflow_go/effect/internal/handle"
	"github.com/on-the-ground/effectflow_go/effect/telemetry"
	"github.com/on-the-ground/effectflow_go/effect/trace"
	"github.com/on-the-ground/effectflow_go/shared/helper"
	"github.com/on-the-ground/effectflow_go/shared/result"
)

type runOptions struct {
	spanName string
	timeout  time.Duration
	cfg      *config.Config
	emitter  *telemetry.Emitter
}

// RunOption overrides one run's behavior without touching the effect.
type RunOption func(*runOptions)

// WithSpanName relabels this run's span.
func WithSpanName(name string) RunOption {
	return func(o *runOptions) { o.spanName = name }
}

// WithTimeout overrides the timeout for this run only. It takes precedence
// over the effect's own trace timeout and the configured default.
func WithTimeout(d time.Duration) RunOption {
	return func(o *runOptions) { o.timeout = d }
}

// WithConfig replaces the configuration for this run and its nested runs.
func WithConfig(cfg config.Config) RunOption {
	return func(o *runOptions) { o.cfg = &cfg }
}

// WithEmitter replaces the telemetry emitter for this run and its nested runs.
func WithEmitter(em *telemetry.Emitter) RunOption {
	return func(o *runOptions) { o.emitter = em }
}

// Run drives one effect to completion: forces its thunk to obtain a
// concurrent handle, awaits the handle within the resolved timeout budget,
// and materializes the outcome as a result.Result.
//
// Timeout precedence: per-call WithTimeout > the effect's trace timeout >
// the configured default.
//
// Run never panics for domain or synthetic failures. A fault raised while
// forcing or executing the thunk resolves to a PanicError failure; a
// payload that is not a result resolves to an ErrInvalidResult failure;
// exceeding the budget cancels the handle and resolves to ErrTimeout.
//
// When telemetry is enabled, the whole operation is bracketed by a start
// event (timeout, span name) and a stop event (duration, summarized
// result, effect type, status, trace linkage).
func Run[T any](ctx context.Context, e Effect[T], opts ...RunOption) result.Result[T] {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}

	rt := runtimeOrDefault(ctx)
	if o.cfg != nil {
		rt.Config = *o.cfg
	}
	if o.emitter != nil {
		rt.Emitter = o.emitter
	}
	// nested runs spawned by combinator thunks inherit the same runtime
	ctx = WithRuntime(ctx, rt)

	tr := e.trace.DefaultSpanName(rt.Config.DefaultSpanName)
	if o.spanName != "" {
		tr.SpanName = o.spanName
	}
	timeout := resolveTimeout(o.timeout, e.trace.Timeout, rt.Config.DefaultTimeout)

	h, started := force(ctx, rt, e, tr, timeout)
	return settle[T](ctx, rt, e, tr, h, started, timeout)
}

// resolveTimeout applies the precedence order: per-call override, then the
// effect's own trace timeout, then the configured default.
func resolveTimeout(override, perEffect, fallback time.Duration) time.Duration {
	switch {
	case override > 0:
		return override
	case perEffect > 0:
		return perEffect
	default:
		return fallback
	}
}

// force spawns the effect's thunk and emits the start event. A fault
// raised while forcing is confined here: the returned handle then carries
// a Panic payload instead of letting the fault escape.
func force[T any](
	ctx context.Context,
	rt Runtime,
	e Effect[T],
	tr trace.Context,
	timeout time.Duration,
) (h *handle.Handle, started time.Time) {
	if rt.Config.TelemetryEnabled {
		rt.Emitter.RunStart(tr, timeout)
	}
	started = time.Now()

	defer func() {
		if r := recover(); r != nil {
			h = handle.Spawn(ctx, func(context.Context) any {
				return handle.Panic{Value: r}
			})
		}
	}()
	h = e.thunk(ctx)
	return
}

// settle awaits the handle, coerces its payload into a result, and emits
// the stop event.
func settle[T any](
	ctx context.Context,
	rt Runtime,
	e Effect[T],
	tr trace.Context,
	h *handle.Handle,
	started time.Time,
	timeout time.Duration,
) result.Result[T] {
	payload, err := h.Await(ctx, timeout)
	res := coerce[T](payload, err)

	if rt.Config.TelemetryEnabled {
		span := telemetry.NewTimeSpan(started, time.Now())
		rt.Emitter.RunStop(tr, span, summaryPayload(res), string(e.kind), statusOf(res))
	}
	return res
}

// coerce converts a raw awaited payload into the terminal result:
// a result passes through, a recovered panic becomes a PanicError failure,
// anything else is an invalid-result failure.
func coerce[T any](payload any, err error) result.Result[T] {
	switch {
	case errors.Is(err, handle.ErrTimeout):
		return result.Failure[T](ErrTimeout)
	case err != nil:
		return result.Failure[T](err)
	}

	if res, ok := helper.TypedOrFalse[result.Result[T]](payload); ok {
		return res
	}
	if p, ok := helper.TypedOrFalse[handle.Panic](payload); ok {
		return result.Failure[T](&PanicError{Value: p.Value})
	}
	return result.Failure[T](fmt.Errorf("%w: %T", ErrInvalidResult, payload))
}

func statusOf[T any](res result.Result[T]) string {
	if res.Succeeded() {
		return "ok"
	}
	return "error"
}

func summaryPayload[T any](res result.Result[T]) any {
	if v, ok := res.Value(); ok {
		return v
	}
	return res.Err()
}
