// FILE: lixenwraith/alog/queue_test.go
package alog

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(i int) logEntry {
	return logEntry{Level: LevelInfo, Message: fmt.Sprintf("m%d", i)}
}

func TestQueueFIFOAcrossSegments(t *testing.T) {
	q := newQueue(0, OverflowDropNewest)
	const n = segmentSize*3 + 17

	for i := 0; i < n; i++ {
		assert.Equal(t, pushAccepted, q.push(entry(i)))
	}
	assert.Equal(t, int64(n), q.approxSize())
	assert.Equal(t, uint64(n), q.pushed())

	var got []logEntry
	for {
		batch := q.popBatch(nil, 100)
		if len(batch) == 0 {
			break
		}
		assert.LessOrEqual(t, len(batch), 100)
		got = append(got, batch...)
	}

	require.Len(t, got, n)
	for i, e := range got {
		assert.Equal(t, fmt.Sprintf("m%d", i), e.Message)
	}
	assert.Equal(t, int64(0), q.approxSize())
}

func TestQueuePopBatchBound(t *testing.T) {
	q := newQueue(0, OverflowDropNewest)
	for i := 0; i < 10; i++ {
		q.push(entry(i))
	}

	batch := q.popBatch(make([]logEntry, 0, 4), 4)
	assert.Len(t, batch, 4)
	assert.Equal(t, "m0", batch[0].Message)
	assert.Equal(t, int64(6), q.approxSize())

	assert.Empty(t, newQueue(0, OverflowDropNewest).popBatch(nil, 8))
}

func TestQueueReuseAfterDrain(t *testing.T) {
	q := newQueue(0, OverflowDropNewest)

	for round := 0; round < 5; round++ {
		for i := 0; i < segmentSize+1; i++ {
			q.push(entry(i))
		}
		total := 0
		for {
			batch := q.popBatch(nil, 64)
			if len(batch) == 0 {
				break
			}
			total += len(batch)
		}
		assert.Equal(t, segmentSize+1, total)
	}
	assert.Equal(t, uint64(5*(segmentSize+1)), q.pushed())
}

func TestQueuePopZeroesSlots(t *testing.T) {
	q := newQueue(0, OverflowDropNewest)
	q.push(entry(1))
	q.push(entry(2))

	_ = q.popBatch(nil, 1)
	assert.Equal(t, logEntry{}, q.head.entries[0])
	assert.Equal(t, "m2", q.head.entries[1].Message)
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := newQueue(0, OverflowDropNewest)
	const producers = 8
	const perProducer = 5000

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.push(logEntry{Level: int64(p), Message: fmt.Sprint(i)})
			}
		}(p)
	}
	wg.Wait()

	last := make([]int, producers)
	for i := range last {
		last[i] = -1
	}
	count := 0
	for {
		batch := q.popBatch(nil, 128)
		if len(batch) == 0 {
			break
		}
		for _, e := range batch {
			var seq int
			_, err := fmt.Sscan(e.Message, &seq)
			require.NoError(t, err)
			require.Equal(t, last[e.Level]+1, seq)
			last[e.Level] = seq
			count++
		}
	}
	assert.Equal(t, producers*perProducer, count)
}

func TestQueueOverflow(t *testing.T) {
	t.Run("drop newest", func(t *testing.T) {
		q := newQueue(3, OverflowDropNewest)
		for i := 0; i < 3; i++ {
			assert.Equal(t, pushAccepted, q.push(entry(i)))
		}
		assert.Equal(t, pushRejected, q.push(entry(3)))
		assert.Equal(t, int64(3), q.approxSize())
		assert.Equal(t, uint64(3), q.pushed())
		assert.Equal(t, uint64(0), q.evicted())

		batch := q.popBatch(nil, 10)
		assert.Equal(t, "m0", batch[0].Message)
		assert.Equal(t, "m2", batch[2].Message)
	})

	t.Run("drop oldest", func(t *testing.T) {
		q := newQueue(3, OverflowDropOldest)
		for i := 0; i < 3; i++ {
			q.push(entry(i))
		}
		assert.Equal(t, pushEvicted, q.push(entry(3)))
		assert.Equal(t, int64(3), q.approxSize())
		assert.Equal(t, uint64(4), q.pushed())
		assert.Equal(t, uint64(1), q.evicted())

		batch := q.popBatch(nil, 10)
		require.Len(t, batch, 3)
		assert.Equal(t, "m1", batch[0].Message)
		assert.Equal(t, "m3", batch[2].Message)
	})

	t.Run("limits change keeps entries", func(t *testing.T) {
		q := newQueue(0, OverflowDropNewest)
		for i := 0; i < 5; i++ {
			q.push(entry(i))
		}
		q.setLimits(2, OverflowDropNewest)
		assert.Equal(t, pushRejected, q.push(entry(5)))
		assert.Equal(t, int64(5), q.approxSize())

		q.setLimits(0, OverflowDropNewest)
		assert.Equal(t, pushAccepted, q.push(entry(6)))
	})
}

func TestQueueWake(t *testing.T) {
	q := newQueue(0, OverflowDropNewest)

	select {
	case <-q.wake():
		t.Fatal("wake signalled on empty queue")
	default:
	}

	// Multiple pushes coalesce into one pending signal
	q.push(entry(1))
	q.push(entry(2))

	select {
	case <-q.wake():
	case <-time.After(time.Second):
		t.Fatal("no wake signal after push")
	}

	select {
	case <-q.wake():
		t.Fatal("signal not coalesced")
	default:
	}
}

func TestMetricsAverage(t *testing.T) {
	var m metrics
	assert.Equal(t, 0.0, m.avgProcessingTimeMs())

	m.recordBatch(4, 8*time.Millisecond)
	assert.InDelta(t, 2.0, m.avgProcessingTimeMs(), 1e-9)

	m.recordBatch(4, 0)
	assert.InDelta(t, 1.0, m.avgProcessingTimeMs(), 1e-9)
	assert.Equal(t, uint64(8), m.processed.Load())
}

func TestLevelGate(t *testing.T) {
	g := newLevelGate(LevelWarning)
	assert.False(t, g.admits(LevelInfo))
	assert.True(t, g.admits(LevelWarning))
	assert.True(t, g.admits(LevelCritical))

	g.set(LevelOff)
	assert.False(t, g.admits(LevelCritical))
	assert.False(t, g.admits(LevelOff))
	assert.Equal(t, LevelOff, g.get())

	g.set(LevelTrace)
	assert.True(t, g.admits(LevelTrace))
	assert.False(t, g.admits(LevelOff), "off is never an entry level")
	assert.False(t, g.admits(LevelOff+4))
}
