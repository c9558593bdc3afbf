package trace

import (
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Context is the immutable tracing metadata threaded through every effect.
//
//   - TraceID identifies the logical computation; generated if absent.
//   - ParentTraceID is an optional back-reference for lookup only, never
//     an ownership link.
//   - SpanName labels the current composition level.
//   - Timeout, when non-zero, overrides the configured default for this
//     effect only.
//
// All operations return derived copies; a Context is never mutated.
type Context struct {
	TraceID       string
	ParentTraceID string
	SpanName      string
	Timeout       time.Duration

	siblingIDs []string
}

// Option configures a new Context.
type Option func(*Context)

// WithTraceID supplies an explicit trace id instead of a generated one.
func WithTraceID(id string) Option {
	return func(c *Context) { c.TraceID = id }
}

// WithParentTraceID records a back-reference to the spawning trace.
func WithParentTraceID(id string) Option {
	return func(c *Context) { c.ParentTraceID = id }
}

// WithSpanName labels the context.
func WithSpanName(name string) Option {
	return func(c *Context) { c.SpanName = name }
}

// WithTimeout sets a per-effect timeout override.
func WithTimeout(d time.Duration) Option {
	return func(c *Context) { c.Timeout = d }
}

// New builds a Context, generating a TraceID when none is supplied.
// SpanName defaults to empty and Timeout to absent.
func New(opts ...Option) Context {
	var c Context
	for _, opt := range opts {
		opt(&c)
	}
	if c.TraceID == "" {
		c.TraceID = uuid.New().String()
	}
	return c
}

// Empty returns the merge identity: no ids, no label, no timeout.
func Empty() Context { return Context{} }

// DefaultSpanName sets the span name only if it is currently empty.
// Used to label array-element branches, e.g. "seq[3]".
func (c Context) DefaultSpanName(fallback string) Context {
	if c.SpanName == "" {
		c.SpanName = fallback
	}
	return c
}

// Promote derives a context one composition level up. The new span name is
// label when the current one is empty, else "<label> -> <current>".
// Trace ids are unchanged.
func (c Context) Promote(label string) Context {
	if c.SpanName == "" {
		c.SpanName = label
	} else {
		c.SpanName = label + " -> " + c.SpanName
	}
	return c
}

// Merge combines two contexts into one representative context. It is
// associative with Empty as identity: the primary TraceID, ParentTraceID,
// SpanName and Timeout are each the first non-empty of the pair, and every
// non-primary trace id is retained in the sibling set.
func (c Context) Merge(other Context) Context {
	merged := Context{
		TraceID:       firstNonEmpty(c.TraceID, other.TraceID),
		ParentTraceID: firstNonEmpty(c.ParentTraceID, other.ParentTraceID),
		SpanName:      firstNonEmpty(c.SpanName, other.SpanName),
		Timeout:       c.Timeout,
	}
	if merged.Timeout == 0 {
		merged.Timeout = other.Timeout
	}

	seen := map[string]struct{}{merged.TraceID: {}, "": {}}
	for _, id := range [][]string{
		{c.TraceID, other.TraceID},
		c.siblingIDs,
		other.siblingIDs,
	} {
		for _, sibling := range id {
			if _, dup := seen[sibling]; dup {
				continue
			}
			seen[sibling] = struct{}{}
			merged.siblingIDs = append(merged.siblingIDs, sibling)
		}
	}
	sort.Strings(merged.siblingIDs)
	return merged
}

// MergeAll left-folds contexts into one representative context (primary
// TraceID follows the first-seen rule) and promotes it once with label.
// A TraceID is generated when every input lacks one.
func MergeAll(label string, ctxs ...Context) Context {
	merged := Empty()
	for _, c := range ctxs {
		merged = merged.Merge(c)
	}
	if merged.TraceID == "" {
		merged.TraceID = uuid.New().String()
	}
	return merged.Promote(label)
}

// SiblingIDs returns the collected non-primary trace ids, sorted.
// The returned slice is a copy.
func (c Context) SiblingIDs() []string {
	out := make([]string, len(c.siblingIDs))
	copy(out, c.siblingIDs)
	return out
}

// Fingerprint hashes the full id set (primary plus siblings) into a single
// permutation-invariant value: xor of the xxhash of each id. Two merges of
// the same contexts in any order fingerprint identically.
func (c Context) Fingerprint() uint64 {
	var fp uint64
	if c.TraceID != "" {
		fp = xxhash.Sum64String(c.TraceID)
	}
	for _, id := range c.siblingIDs {
		fp ^= xxhash.Sum64String(id)
	}
	return fp
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
