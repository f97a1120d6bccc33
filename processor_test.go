// FILE: lixenwraith/alog/processor_test.go
package alog

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a goroutine safe diagnostic writer
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// countingSink only counts lines
type countingSink struct {
	count atomic.Uint64
}

func (s *countingSink) WriteLine([]byte) error {
	s.count.Add(1)
	return nil
}

// blockingSink holds every write until release is closed
type blockingSink struct {
	release chan struct{}
}

func (s *blockingSink) WriteLine([]byte) error {
	<-s.release
	return nil
}

func TestSinkFailureIsolation(t *testing.T) {
	logger, healthy := newTestLogger(t)
	diag := &syncBuffer{}
	logger.SetDiagnosticWriter(diag)

	failing := &memorySink{failWith: errors.New("disk on fire")}
	require.NoError(t, logger.AddSink("failing", failing))
	second := &memorySink{}
	require.NoError(t, logger.AddSink("after", second))
	require.NoError(t, logger.Start())

	for i := 0; i < 5; i++ {
		logger.Info("entry")
	}
	require.NoError(t, logger.Flush(time.Second))

	assert.Equal(t, uint64(5), logger.Processed())
	assert.Len(t, healthy.snapshot(), 5)
	assert.Len(t, second.snapshot(), 5, "sinks after a failing one still receive every line")

	var failingInfo SinkInfo
	for _, info := range logger.SinkStatus() {
		if info.Name == "failing" {
			failingInfo = info
		}
	}
	assert.Equal(t, uint64(5), failingInfo.Errors)
	assert.True(t, failingInfo.Enabled)

	out := diag.String()
	assert.Contains(t, out, "alog: failed to write to sink 'failing': disk on fire")
	assert.Equal(t, 5, strings.Count(out, "\n"))
}

func TestDiagnosticsDisabled(t *testing.T) {
	logger, _ := newTestLogger(t, func(c *Config) { c.InternalErrorsToStderr = false })
	diag := &syncBuffer{}
	logger.SetDiagnosticWriter(diag)

	require.NoError(t, logger.AddSink("failing", &memorySink{failWith: errors.New("nope")}))
	require.NoError(t, logger.Start())

	logger.Error("entry")
	require.NoError(t, logger.Flush(time.Second))

	assert.Equal(t, uint64(1), logger.Processed())
	assert.Empty(t, diag.String())
}

func TestAverageProcessingTime(t *testing.T) {
	t.Run("zero before processing", func(t *testing.T) {
		logger, _ := createTestLogger(t)
		logger.Debug("filtered only")
		assert.Equal(t, 0.0, logger.AvgProcessingTimeMs())
	})

	t.Run("positive with slow sink", func(t *testing.T) {
		logger, sink := newTestLogger(t)
		sink.delay = 2 * time.Millisecond
		require.NoError(t, logger.Start())

		for i := 0; i < 5; i++ {
			logger.Info("slow")
		}
		require.NoError(t, logger.Flush(5*time.Second))

		assert.Equal(t, uint64(5), logger.Processed())
		assert.Greater(t, logger.AvgProcessingTimeMs(), 1.0)
	})
}

func TestHighVolumeConcurrentProducers(t *testing.T) {
	const producers = 16
	const perProducer = 10000

	logger, _ := newTestLogger(t, func(c *Config) { c.Level = LevelTrace })
	counter := &countingSink{}
	require.NoError(t, logger.AddSink("counter", counter))
	require.NoError(t, logger.Start())

	levels := []int64{LevelTrace, LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical}

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			r := rand.New(rand.NewSource(seed))
			for i := 0; i < perProducer; i++ {
				logger.Submit(levels[r.Intn(len(levels))], "stress message")
			}
		}(int64(p))
	}
	wg.Wait()

	require.NoError(t, logger.Shutdown())

	assert.Equal(t, uint64(producers*perProducer), logger.Submitted())
	assert.Equal(t, uint64(producers*perProducer), logger.Processed())
	assert.Equal(t, uint64(0), logger.Filtered())
	assert.Equal(t, uint64(0), logger.Dropped())
	assert.Equal(t, int64(0), logger.Pending())
	assert.Equal(t, uint64(producers*perProducer), counter.count.Load())
}

func TestFlush(t *testing.T) {
	t.Run("waits for prior submissions", func(t *testing.T) {
		logger, sink := newTestLogger(t)
		sink.delay = time.Millisecond
		require.NoError(t, logger.Start())

		for i := 0; i < 50; i++ {
			logger.Info("entry")
		}
		require.NoError(t, logger.Flush(10*time.Second))

		assert.Equal(t, uint64(50), logger.Processed())
		assert.Len(t, sink.snapshot(), 50)
	})

	t.Run("nothing pending", func(t *testing.T) {
		logger, _ := createTestLogger(t)
		assert.NoError(t, logger.Flush(10*time.Millisecond))
	})

	t.Run("timeout", func(t *testing.T) {
		logger, _ := newTestLogger(t)
		blocker := &blockingSink{release: make(chan struct{})}
		require.NoError(t, logger.AddSink("blocker", blocker))
		require.NoError(t, logger.Start())
		defer close(blocker.release)

		logger.Info("stuck")
		err := logger.Flush(50 * time.Millisecond)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout")
	})

	t.Run("counts evicted entries", func(t *testing.T) {
		logger, _ := newTestLogger(t, func(c *Config) {
			c.QueueCapacity = 2
			c.OverflowPolicy = OverflowDropOldest
		})
		for i := 0; i < 10; i++ {
			logger.Info("entry")
		}
		require.NoError(t, logger.Start())
		require.NoError(t, logger.Flush(time.Second))

		assert.Equal(t, uint64(2), logger.Processed())
		assert.Equal(t, uint64(8), logger.Dropped())
	})
}

func TestHeartbeat(t *testing.T) {
	logger, sink := createTestLogger(t, func(c *Config) { c.HeartbeatIntervalMs = 20 })

	assert.Eventually(t, func() bool {
		for _, line := range sink.snapshot() {
			if strings.Contains(line, "] [INFO] heartbeat seq=1 ") {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	lines := sink.snapshot()
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "submitted=0")
	assert.Contains(t, lines[0], "num_goroutine=")
	assert.Equal(t, uint64(0), logger.Processed(), "heartbeat lines are not counted")
	assert.Equal(t, uint64(0), logger.Submitted())
}

func TestHeartbeatUnderLoad(t *testing.T) {
	logger, sink := newTestLogger(t, func(c *Config) {
		c.HeartbeatIntervalMs = 20
		c.BatchSize = 10
	})
	sink.delay = time.Millisecond

	const total = 500
	for i := 0; i < total; i++ {
		logger.Info("busy")
	}
	require.NoError(t, logger.Start())
	require.NoError(t, logger.Flush(10*time.Second))

	lines := sink.snapshot()
	firstHeartbeat, lastEntry := -1, -1
	for i, line := range lines {
		if strings.Contains(line, "] [INFO] heartbeat seq=") {
			if firstHeartbeat == -1 {
				firstHeartbeat = i
			}
			continue
		}
		lastEntry = i
	}
	require.NotEqual(t, -1, firstHeartbeat, "no heartbeat while the queue stayed busy")
	assert.Less(t, firstHeartbeat, lastEntry, "heartbeat waited for the queue to empty")
	assert.Equal(t, uint64(total), logger.Processed())
}

func TestBatchSizeChange(t *testing.T) {
	logger, sink := createTestLogger(t, func(c *Config) { c.BatchSize = 1 })

	for i := 0; i < 20; i++ {
		logger.Info("entry")
	}
	require.NoError(t, logger.ApplyOverride("batch_size=512"))
	for i := 0; i < 20; i++ {
		logger.Info("entry")
	}
	require.NoError(t, logger.Shutdown())

	assert.Len(t, sink.snapshot(), 40)
	assert.Equal(t, uint64(40), logger.Processed())
}
