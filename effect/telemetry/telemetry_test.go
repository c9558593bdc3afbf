package telemetry_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/effectflow_go/effect/telemetry"
	"github.com/on-the-ground/effectflow_go/effect/trace"
)

type summarizablePayload struct{}

func (summarizablePayload) Summarize() any { return "compact" }

func TestDefaultSummarizer(t *testing.T) {
	require.Equal(t, "compact", telemetry.DefaultSummarizer(summarizablePayload{}))

	require.Equal(t, "42", telemetry.DefaultSummarizer(42))

	long := strings.Repeat("x", 500)
	summary, ok := telemetry.DefaultSummarizer(long).(string)
	require.True(t, ok)
	require.Less(t, len(summary), 200, "summaries must be bounded")
	require.True(t, strings.HasSuffix(summary, "..."))
}

func TestRunStartFields(t *testing.T) {
	em, logs := telemetry.NewObservedEmitter(telemetry.WithNamespace("ns"))

	tc := trace.New(trace.WithTraceID("tid"), trace.WithSpanName("op"))
	em.RunStart(tc, 2*time.Second)

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "ns.run.start", entries[0].Message)

	fields := entries[0].ContextMap()
	require.Equal(t, "op", fields["span_name"])
	require.Equal(t, "tid", fields["trace_id"])
	require.Equal(t, 2*time.Second, fields["timeout"])
}

func TestRunStopFields(t *testing.T) {
	em, logs := telemetry.NewObservedEmitter()

	tc := trace.New(
		trace.WithTraceID("tid"),
		trace.WithParentTraceID("parent"),
		trace.WithSpanName("op"),
	)
	started := time.Now()
	span := telemetry.NewTimeSpan(started, started.Add(30*time.Millisecond))

	em.RunStop(tc, span, "payload", "success", "ok")

	fields := logs.All()[0].ContextMap()
	require.Equal(t, "success", fields["effect_type"])
	require.Equal(t, "ok", fields["status"])
	require.Equal(t, "tid", fields["trace_id"])
	require.Equal(t, "parent", fields["parent_trace_id"])
	require.Equal(t, 30*time.Millisecond, fields["duration"])
}

func TestRunStop_OmitsAbsentParent(t *testing.T) {
	em, logs := telemetry.NewObservedEmitter()

	tc := trace.New(trace.WithTraceID("tid"))
	span := telemetry.NewTimeSpan(time.Now(), time.Now())
	em.RunStop(tc, span, nil, "success", "ok")

	_, present := logs.All()[0].ContextMap()["parent_trace_id"]
	require.False(t, present)
}

func TestCustomSummarizer(t *testing.T) {
	em, logs := telemetry.NewObservedEmitter(
		telemetry.WithSummarizer(func(any) any { return "redacted" }),
	)

	tc := trace.New()
	span := telemetry.NewTimeSpan(time.Now(), time.Now())
	em.RunStop(tc, span, "secret", "success", "ok")

	require.Equal(t, "redacted", logs.All()[0].ContextMap()["result"])
}

func TestConcurrentEmission(t *testing.T) {
	em, logs := telemetry.NewObservedEmitter()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			em.RunStart(trace.New(), time.Second)
		}()
	}
	wg.Wait()

	require.Equal(t, n, logs.Len(), "parallel branches must emit without loss")
}
