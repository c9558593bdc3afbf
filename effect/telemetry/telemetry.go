package telemetry

import (
	"fmt"
	"time"

	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/zap"

	"github.com/on-the-ground/effectflow_go/effect/trace"
)

// TimeSpan is the interval covered by one run, start to stop.
type TimeSpan = timespan.TimeSpan

// NewTimeSpan builds the interval between two instants.
func NewTimeSpan(from, to time.Time) TimeSpan {
	return timespan.BetweenTimes(from, to)
}

// Summarizable lets payloads provide their own compact representation
// before entering a telemetry event. Consumed here, never implemented.
type Summarizable interface {
	Summarize() any
}

// Summarizer converts an arbitrary payload into a compact representation
// to bound event size.
type Summarizer func(any) any

const maxSummaryLen = 128

// DefaultSummarizer defers to the payload's Summarizable implementation
// when present, otherwise formats and truncates it.
func DefaultSummarizer(v any) any {
	if s, ok := v.(Summarizable); ok {
		return s.Summarize()
	}
	formatted := fmt.Sprintf("%v", v)
	if len(formatted) > maxSummaryLen {
		formatted = formatted[:maxSummaryLen] + "..."
	}
	return formatted
}

// Emitter writes the start/stop observability events of the execution
// engine to a zap logger. Emission is append-only and safe for concurrent
// use from parallel branches; zap guarantees a single event's fields are
// never interleaved with another's.
type Emitter struct {
	logger    *zap.Logger
	namespace string
	summarize Summarizer
}

// EmitterOption configures an Emitter.
type EmitterOption func(*Emitter)

// WithNamespace overrides the event-name prefix.
func WithNamespace(ns string) EmitterOption {
	return func(e *Emitter) { e.namespace = ns }
}

// WithSummarizer replaces the default result summarizer.
func WithSummarizer(s Summarizer) EmitterOption {
	return func(e *Emitter) { e.summarize = s }
}

// NewEmitter wraps a zap logger into an event emitter.
func NewEmitter(logger *zap.Logger, opts ...EmitterOption) *Emitter {
	e := &Emitter{
		logger:    logger,
		namespace: "effectflow",
		summarize: DefaultSummarizer,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Nop returns an emitter that discards every event.
func Nop() *Emitter {
	return NewEmitter(zap.NewNop())
}

// RunStart emits the event preceding a run: timeout budget and span name.
func (e *Emitter) RunStart(tc trace.Context, timeout time.Duration) {
	if e == nil {
		return
	}
	e.logger.Info(e.namespace+".run.start",
		zap.String("span_name", tc.SpanName),
		zap.Duration("timeout", timeout),
		zap.String("trace_id", tc.TraceID),
	)
}

// RunStop emits the event following a run: duration, summarized result,
// effect type (success/failure tag), status (ok/error), and trace linkage.
func (e *Emitter) RunStop(tc trace.Context, span TimeSpan, res any, effectType, status string) {
	if e == nil {
		return
	}
	fields := []zap.Field{
		zap.String("span_name", tc.SpanName),
		zap.Duration("duration", span.Duration()),
		zap.Any("result", e.summarize(res)),
		zap.String("effect_type", effectType),
		zap.String("status", status),
		zap.String("trace_id", tc.TraceID),
	}
	if tc.ParentTraceID != "" {
		fields = append(fields, zap.String("parent_trace_id", tc.ParentTraceID))
	}
	e.logger.Info(e.namespace+".run.stop", fields...)
}
