package effect

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/on-the-ground/effectflow_go/effect/config"
	"github.com/on-the-ground/effectflow_go/effect/telemetry"
	"github.com/on-the-ground/effectflow_go/shared/helper"
)

// Runtime bundles the configuration value and the telemetry emitter one
// run consumes. It is explicit: pass it via WithRuntime or per-call run
// options; absent both, runs fall back to the pure defaults.
type Runtime struct {
	Config  config.Config
	Emitter *telemetry.Emitter
}

// DefaultRuntime returns the pure fallback: default configuration and a
// discarding emitter. No environment lookup, no globals.
func DefaultRuntime() Runtime {
	return Runtime{
		Config:  config.Default(),
		Emitter: telemetry.Nop(),
	}
}

// NewRuntime builds a runtime whose emitter logs under the configured
// telemetry namespace.
func NewRuntime(cfg config.Config, logger *zap.Logger, opts ...telemetry.EmitterOption) Runtime {
	opts = append([]telemetry.EmitterOption{telemetry.WithNamespace(cfg.TelemetryNamespace)}, opts...)
	return Runtime{
		Config:  cfg,
		Emitter: telemetry.NewEmitter(logger, opts...),
	}
}

type runtimeKeyType string

const runtimeKey runtimeKeyType = "effectflow_runtime_key"

// WithRuntime installs the runtime in the context so that nested runs,
// including the branches spawned by combinators, inherit it.
func WithRuntime(ctx context.Context, rt Runtime) context.Context {
	return context.WithValue(ctx, runtimeKey, rt)
}

func runtimeFrom(ctx context.Context) (Runtime, bool) {
	return helper.TypedOrFalse[Runtime](ctx.Value(runtimeKey))
}

func runtimeOrDefault(ctx context.Context) Runtime {
	if rt, ok := runtimeFrom(ctx); ok {
		return rt
	}
	return DefaultRuntime()
}

var errNoRuntime = errors.New("no runtime installed in context")

// mustRuntimeFrom returns the runtime installed by the enclosing run.
// Combinator thunks are forced only through Run, which installs the
// runtime before forcing, so a missing runtime is a programming error;
// the resulting panic surfaces as a PanicError failure.
func mustRuntimeFrom(ctx context.Context) Runtime {
	return helper.MustTypedValueOf[Runtime](func() (any, error) {
		raw := ctx.Value(runtimeKey)
		if raw == nil {
			return nil, errNoRuntime
		}
		return raw, nil
	})
}
