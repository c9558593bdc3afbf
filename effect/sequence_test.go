package effect_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/effectflow_go/effect"
)

func TestSequence_AllSuccess(t *testing.T) {
	res := effect.Run(context.Background(), effect.Sequence([]effect.Effect[int]{
		effect.Right(1),
		effect.Right(2),
		effect.Right(3),
	}))

	vs, ok := res.Value()
	if !ok {
		t.Fatalf("unexpected failure: %v", res.Err())
	}
	require.Equal(t, []int{1, 2, 3}, vs)
}

func TestSequence_FailFast(t *testing.T) {
	var thirdForced atomic.Int32
	boom := errors.New("err")

	res := effect.Run(context.Background(), effect.Sequence([]effect.Effect[int]{
		effect.Right(1),
		effect.Left[int](boom),
		effect.Try(func(ctx context.Context) (int, error) {
			thirdForced.Add(1)
			return 3, nil
		}),
	}))

	require.ErrorIs(t, res.Err(), boom)
	require.Equal(t, int32(0), thirdForced.Load(),
		"elements after the first failure must never be forced")
}

func TestSequence_PropagatesFirstFailureOnly(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	res := effect.Run(context.Background(), effect.Sequence([]effect.Effect[int]{
		effect.Left[int](first),
		effect.Left[int](second),
	}))

	require.ErrorIs(t, res.Err(), first)
	require.NotErrorIs(t, res.Err(), second)
}

func TestSequence_Empty(t *testing.T) {
	res := effect.Run(context.Background(), effect.Sequence[int](nil))
	vs, ok := res.Value()
	require.True(t, ok)
	require.Empty(t, vs)
}

func TestTraverse_MapsInOrder(t *testing.T) {
	res := effect.Run(context.Background(), effect.Traverse(
		[]int{1, 2, 3},
		func(n int) effect.Effect[int] { return effect.Right(n * 10) },
	))

	vs, ok := res.Value()
	require.True(t, ok)
	require.Equal(t, []int{10, 20, 30}, vs)
}

func TestTraverse_FailFast(t *testing.T) {
	var forced atomic.Int32
	bad := errors.New("bad element")

	res := effect.Run(context.Background(), effect.Traverse(
		[]int{1, -1, 2},
		func(n int) effect.Effect[int] {
			if n < 0 {
				return effect.Left[int](bad)
			}
			return effect.Try(func(ctx context.Context) (int, error) {
				forced.Add(1)
				return n, nil
			})
		},
	))

	require.ErrorIs(t, res.Err(), bad)
	require.Equal(t, int32(1), forced.Load(), "only the element before the failure runs")
}
