package trace_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/effectflow_go/effect/trace"
)

func TestNew_GeneratesTraceID(t *testing.T) {
	c := trace.New()
	require.NotEmpty(t, c.TraceID)
	require.Empty(t, c.SpanName)
	require.Zero(t, c.Timeout)

	c2 := trace.New(trace.WithTraceID("fixed"), trace.WithTimeout(time.Second))
	require.Equal(t, "fixed", c2.TraceID)
	require.Equal(t, time.Second, c2.Timeout)
}

func TestDefaultSpanName_OnlyWhenEmpty(t *testing.T) {
	c := trace.New().DefaultSpanName("fallback")
	require.Equal(t, "fallback", c.SpanName)

	c = trace.New(trace.WithSpanName("explicit")).DefaultSpanName("fallback")
	require.Equal(t, "explicit", c.SpanName)
}

func TestPromote(t *testing.T) {
	c := trace.New(trace.WithTraceID("id"))
	promoted := c.Promote("outer")
	require.Equal(t, "outer", promoted.SpanName)
	require.Equal(t, "id", promoted.TraceID)

	twice := promoted.Promote("outermost")
	require.Equal(t, "outermost -> outer", twice.SpanName)
}

func TestPromote_DoesNotMutate(t *testing.T) {
	c := trace.New(trace.WithSpanName("inner"))
	_ = c.Promote("outer")
	require.Equal(t, "inner", c.SpanName)
}

func TestMerge_Identity(t *testing.T) {
	a := trace.New(trace.WithTraceID("a"), trace.WithSpanName("s"), trace.WithTimeout(time.Second))

	left := trace.Empty().Merge(a)
	right := a.Merge(trace.Empty())

	for _, m := range []trace.Context{left, right} {
		assert.Equal(t, a.TraceID, m.TraceID)
		assert.Equal(t, a.SpanName, m.SpanName)
		assert.Equal(t, a.Timeout, m.Timeout)
		assert.Empty(t, m.SiblingIDs())
	}
}

func TestMerge_Associativity(t *testing.T) {
	a := trace.New(trace.WithTraceID("a"))
	b := trace.New(trace.WithTraceID("b"))
	c := trace.New(trace.WithTraceID("c"))

	leftAssoc := a.Merge(b).Merge(c)
	rightAssoc := a.Merge(b.Merge(c))

	require.Equal(t, leftAssoc.TraceID, rightAssoc.TraceID)
	require.Equal(t, leftAssoc.SiblingIDs(), rightAssoc.SiblingIDs())
	require.Equal(t, leftAssoc.Fingerprint(), rightAssoc.Fingerprint())
}

func TestMergeAll_FirstSeenPrimary(t *testing.T) {
	a := trace.New(trace.WithTraceID("a"))
	b := trace.New(trace.WithTraceID("b"))
	c := trace.New(trace.WithTraceID("c"))

	permutations := [][]trace.Context{
		{a, b, c},
		{b, c, a},
		{c, a, b},
	}

	var fingerprints []uint64
	for _, perm := range permutations {
		merged := trace.MergeAll("combined", perm...)

		require.Equal(t, perm[0].TraceID, merged.TraceID, "primary follows the first-seen rule")
		require.Equal(t, "combined", merged.SpanName)

		// the id set is permutation-invariant: primary + siblings = {a, b, c}
		ids := append(merged.SiblingIDs(), merged.TraceID)
		require.ElementsMatch(t, []string{"a", "b", "c"}, ids)

		fingerprints = append(fingerprints, merged.Fingerprint())
	}

	require.Equal(t, fingerprints[0], fingerprints[1])
	require.Equal(t, fingerprints[1], fingerprints[2])
}

func TestMergeAll_GeneratesIDWhenAllEmpty(t *testing.T) {
	merged := trace.MergeAll("label")
	require.NotEmpty(t, merged.TraceID)
	require.Equal(t, "label", merged.SpanName)
}

func TestMergeAll_PromotesExistingSpanName(t *testing.T) {
	named := trace.New(trace.WithTraceID("a"), trace.WithSpanName("inner"))
	merged := trace.MergeAll("outer", named)
	require.Equal(t, "outer -> inner", merged.SpanName)
}

func TestMerge_DeduplicatesSiblings(t *testing.T) {
	a := trace.New(trace.WithTraceID("a"))
	b := trace.New(trace.WithTraceID("b"))

	once := a.Merge(b)
	again := once.Merge(b)

	require.Equal(t, []string{"b"}, again.SiblingIDs())
}
