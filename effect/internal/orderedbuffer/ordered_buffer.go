package orderedbuffer

import (
	"context"
	"sort"
	"sync/atomic"
)

type CompareFunc[T any] func(a, b T) int

// OrderedBuffer collects out-of-order items and releases them in compare
// order once sealed. Fan-out branches complete in nondeterministic order;
// feeding their indexed outcomes through this buffer restores input order.
//
// Insert must be called from a single collector goroutine.
type OrderedBuffer[T any] struct {
	data    []T
	compare CompareFunc[T]

	sink   chan T
	sealed atomic.Bool
}

func New[T any](capacity int, cmp CompareFunc[T]) *OrderedBuffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &OrderedBuffer[T]{
		data:    make([]T, 0, capacity),
		compare: cmp,
		sink:    make(chan T, capacity),
	}
}

// Insert places val at its sorted position. Returns false if the buffer is
// already sealed or ctx is cancelled.
func (b *OrderedBuffer[T]) Insert(ctx context.Context, val T) bool {
	if b.sealed.Load() {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	default:
	}

	idx := sort.Search(len(b.data), func(i int) bool {
		return b.compare(val, b.data[i]) < 0
	})

	b.data = append(b.data, val)
	copy(b.data[idx+1:], b.data[idx:])
	b.data[idx] = val

	return true
}

// Source yields the buffered items in compare order after Seal.
func (b *OrderedBuffer[T]) Source() <-chan T {
	return b.sink
}

// Seal flushes all buffered items to the sink in order and closes it.
// Duplicate calls are ignored. The sink is closed even when ctx is
// cancelled mid-flush, so a pending range over Source always terminates.
func (b *OrderedBuffer[T]) Seal(ctx context.Context) {
	if !b.sealed.CompareAndSwap(false, true) {
		return
	}
	defer close(b.sink)

	// the sink's capacity matches the buffer's, so sends only block when
	// more items were inserted than declared; the ctx arm bounds that case
	for _, v := range b.data {
		select {
		case <-ctx.Done():
			return
		case b.sink <- v:
		}
	}
}
