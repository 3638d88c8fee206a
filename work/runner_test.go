package work

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequentialOrder(t *testing.T) {
	items := Generate(NewGenerator(3), 25)

	var seen []int
	err := Sequential(items, func(it Item) error {
		seen = append(seen, it.ID)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, seen, len(items))
	for i, id := range seen {
		assert.Equal(t, items[i].ID, id)
	}
}

func TestSequentialStopsOnError(t *testing.T) {
	items := Generate(NewGenerator(3), 10)
	boom := errors.New("boom")

	var calls int
	err := Sequential(items, func(it Item) error {
		calls++
		if it.ID == 4 {
			return boom
		}
		return nil
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 4, calls)
}

func TestPoolProcessesAll(t *testing.T) {
	items := Generate(NewGenerator(5), 100)

	var done atomic.Int64
	err := Pool(items, 8, func(worker int, it Item) error {
		done.Add(1)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(100), done.Load())
}

// recordPeak bumps the in-flight count and folds it into the observed
// high-water mark.
func recordPeak(active, peak *atomic.Int64) func() {
	cur := active.Add(1)
	for {
		prev := peak.Load()
		if cur <= prev || peak.CompareAndSwap(prev, cur) {
			break
		}
	}
	return func() { active.Add(-1) }
}

func TestPoolBoundsConcurrency(t *testing.T) {
	items := Generate(NewGenerator(5), 30)

	var active, peak atomic.Int64
	err := Pool(items, 3, func(worker int, it Item) error {
		defer recordPeak(&active, &peak)()
		time.Sleep(2 * time.Millisecond)
		return nil
	})

	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int64(3))
	assert.Positive(t, peak.Load())
}

func TestPoolAggregatesErrors(t *testing.T) {
	items := Generate(NewGenerator(5), 40)

	var done atomic.Int64
	err := Pool(items, 4, func(worker int, it Item) error {
		done.Add(1)
		if it.ID%10 == 0 {
			return fmt.Errorf("item %d: %w", it.ID, errBad)
		}
		return nil
	})

	// Failures surface only after the barrier; siblings still ran.
	assert.ErrorIs(t, err, errBad)
	assert.Equal(t, int64(40), done.Load())
}

var errBad = errors.New("bad item")

func TestPoolWorkerIndexInRange(t *testing.T) {
	items := Generate(NewGenerator(9), 50)

	var outOfRange atomic.Int64
	err := Pool(items, 3, func(worker int, it Item) error {
		if worker < 0 || worker >= 3 {
			outOfRange.Add(1)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Zero(t, outOfRange.Load())
}

func TestBoundedProcessesAll(t *testing.T) {
	items := Generate(NewGenerator(6), 100)

	var done atomic.Int64
	err := Bounded(items, 3, func(it Item) error {
		done.Add(1)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(100), done.Load())
}

func TestBoundedBoundsConcurrency(t *testing.T) {
	items := Generate(NewGenerator(6), 30)

	var active, peak atomic.Int64
	err := Bounded(items, 3, func(it Item) error {
		defer recordPeak(&active, &peak)()
		time.Sleep(2 * time.Millisecond)
		return nil
	})

	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int64(3))
	assert.Positive(t, peak.Load())
}

func TestBoundedUnlimited(t *testing.T) {
	items := Generate(NewGenerator(6), 64)

	var done atomic.Int64
	err := Bounded(items, -1, func(it Item) error {
		done.Add(1)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(64), done.Load())
}

// A limit of zero must degrade to serial execution like Pool does,
// not block on a semaphore that can never be acquired.
func TestBoundedZeroLimit(t *testing.T) {
	items := Generate(NewGenerator(6), 5)

	done := make(chan error, 1)
	go func() {
		var n atomic.Int64
		err := Bounded(items, 0, func(it Item) error {
			n.Add(1)
			return nil
		})
		if n.Load() != 5 {
			err = errors.Join(err, fmt.Errorf("processed %d of 5 items", n.Load()))
		}
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Bounded with limit 0 did not return")
	}
}

func TestBoundedAggregatesErrors(t *testing.T) {
	items := Generate(NewGenerator(6), 20)

	err := Bounded(items, 4, func(it Item) error {
		if it.ID == 7 || it.ID == 13 {
			return errBad
		}
		return nil
	})
	assert.ErrorIs(t, err, errBad)
}
