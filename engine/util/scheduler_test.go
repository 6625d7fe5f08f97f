package util

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_AdvanceRunsEveryOccurrenceInOrder(t *testing.T) {
	s := NewScheduler()
	var trace []string
	s.Every("fast", 10*time.Millisecond, func() error {
		trace = append(trace, "fast")
		return nil
	})
	s.Every("slow", 25*time.Millisecond, func() error {
		trace = append(trace, "slow")
		return nil
	})

	require.NoError(t, s.AdvanceTo(50*time.Millisecond))

	// fast at 10,20,30,40,50; slow at 25,50; fast wins the tie at 50 (registered first)
	assert.Equal(t, []string{"fast", "fast", "slow", "fast", "fast", "fast", "slow"}, trace)
	assert.Equal(t, uint64(5), s.Runs("fast"))
	assert.Equal(t, uint64(2), s.Runs("slow"))
	assert.Equal(t, 50*time.Millisecond, s.Now())
}

func TestScheduler_AdvanceIsIncremental(t *testing.T) {
	s := NewScheduler()
	ticks := 0
	s.Every("clock", time.Millisecond, func() error {
		ticks++
		return nil
	})

	require.NoError(t, s.AdvanceTo(500*time.Microsecond))
	assert.Equal(t, 0, ticks)
	require.NoError(t, s.AdvanceTo(time.Second))
	assert.Equal(t, 1000, ticks)
	require.NoError(t, s.AdvanceTo(time.Second))
	assert.Equal(t, 1000, ticks)
}

func TestScheduler_TaskErrorStopsAdvance(t *testing.T) {
	s := NewScheduler()
	boom := errors.New("boom")
	runs := 0
	s.Every("failing", time.Millisecond, func() error {
		runs++
		if runs == 3 {
			return boom
		}
		return nil
	})

	err := s.AdvanceTo(time.Second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "failing")
	assert.Equal(t, 3, runs)
	assert.Equal(t, 3*time.Millisecond, s.Now())
}

func TestScheduler_CoalesceLateCollapsesMissedRuns(t *testing.T) {
	s := NewScheduler()
	render, clock := 0, 0
	s.Every("clock", time.Millisecond, func() error {
		clock++
		return nil
	})
	s.EveryCoalesced("render", 10*time.Millisecond, func() error {
		render++
		return nil
	})

	s.coalesceLate(95 * time.Millisecond)
	require.NoError(t, s.AdvanceTo(95*time.Millisecond))
	assert.Equal(t, 1, render)
	assert.Equal(t, 95, clock)

	require.NoError(t, s.AdvanceTo(100*time.Millisecond))
	assert.Equal(t, 2, render)
}

func TestScheduler_RunStopsOnErrStopped(t *testing.T) {
	s := NewScheduler()
	runs := 0
	s.Every("stopper", time.Millisecond, func() error {
		runs++
		if runs == 5 {
			return ErrStopped
		}
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Run(ctx))
	assert.Equal(t, 5, runs)
}

func TestScheduler_RunReturnsTaskError(t *testing.T) {
	s := NewScheduler()
	s.Every("failing", time.Millisecond, func() error {
		return errors.New("no context")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no context")
}

func TestScheduler_RunEndsWithContext(t *testing.T) {
	s := NewScheduler()
	s.Every("idle", 5*time.Millisecond, func() error { return nil })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	require.NoError(t, s.Run(ctx))
	assert.NotZero(t, s.Runs("idle"))
}
