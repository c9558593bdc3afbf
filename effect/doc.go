// Package effect provides a deferred, traced, concurrent execution core.
//
// An Effect is a success/failure computation that does nothing until Run
// forces it. Forcing spawns the work on its own goroutine behind a
// concurrent handle; Run awaits that handle within a timeout budget,
// captures faults, and materializes the outcome as a result.Result.
//
// # Composition
//
// Two composition strategies with deliberately different partial-failure
// semantics:
//
//   - Sequence/Traverse: ordered, fail-fast. Element i+1 is never forced
//     once element i failed.
//   - SequenceA/TraverseA/Validate: parallel, error-accumulating. Every
//     branch is spawned before any is awaited, and every failure is
//     collected in input order.
//
// # Tracing
//
// Every effect carries an immutable trace.Context. Combinators label each
// branch "<base>[<index>]", merge branch contexts into one representative
// context, and promote it once per composition level. The merge is a pure
// associative fold with an identity, so it stays deterministic under
// concurrent fan-out.
//
// # Runtime
//
// Configuration (default timeout, telemetry toggle, namespace, default
// span name) and the telemetry emitter travel as an explicit Runtime
// value, injected via WithRuntime or per-call run options, with pure
// defaults when absent. There is no ambient global state.
//
// Example:
//
//	rt := effect.NewRuntime(config.Default(), logger)
//	ctx := effect.WithRuntime(context.Background(), rt)
//
//	res := effect.Run(ctx, effect.Sequence([]effect.Effect[int]{
//	    effect.Right(1),
//	    effect.Try(fetchCount),
//	}))
package effect
