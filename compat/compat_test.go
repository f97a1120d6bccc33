// FILE: lixenwraith/alog/compat/compat_test.go
package compat

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/alog"
)

type submission struct {
	level   int64
	message string
}

// recordingSubmitter captures submissions synchronously
type recordingSubmitter struct {
	mu      sync.Mutex
	entries []submission
	flushes int
}

func (r *recordingSubmitter) Submit(level int64, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, submission{level: level, message: message})
}

func (r *recordingSubmitter) Flush(timeout time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushes++
	return nil
}

func (r *recordingSubmitter) all() []submission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]submission(nil), r.entries...)
}

// lineSink collects written lines
type lineSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *lineSink) WriteLine(line []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, string(line))
	return nil
}

func (s *lineSink) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

// createTestLogger creates a started logger writing to an in-memory sink only
func createTestLogger(t *testing.T) (*alog.Logger, *lineSink) {
	t.Helper()
	logger, err := alog.NewBuilder().
		EnableConsole(false).
		LevelString("trace").
		Build()
	require.NoError(t, err)

	sink := &lineSink{}
	require.NoError(t, logger.AddSink("memory", sink))
	require.NoError(t, logger.Start())
	t.Cleanup(func() { _ = logger.Shutdown() })
	return logger, sink
}

func TestGnetAdapter(t *testing.T) {
	rec := &recordingSubmitter{}
	var fatalMsg string
	adapter := NewGnetAdapter(rec, WithFatalHandler(func(msg string) {
		fatalMsg = msg
	}))

	adapter.Debugf("gnet debug id=%d", 1)
	adapter.Infof("gnet info id=%d", 2)
	adapter.Warnf("gnet warn id=%d", 3)
	adapter.Errorf("gnet error id=%d", 4)
	adapter.Fatalf("gnet fatal id=%d", 5)

	expected := []submission{
		{alog.LevelDebug, "gnet: gnet debug id=1"},
		{alog.LevelInfo, "gnet: gnet info id=2"},
		{alog.LevelWarning, "gnet: gnet warn id=3"},
		{alog.LevelError, "gnet: gnet error id=4"},
		{alog.LevelCritical, "gnet: gnet fatal id=5"},
	}
	assert.Equal(t, expected, rec.all())
	assert.Equal(t, "gnet fatal id=5", fatalMsg, "Custom fatal handler should have been called")
	assert.Equal(t, 1, rec.flushes, "Fatalf should flush a submitter that supports it")
}

func TestFastHTTPAdapter(t *testing.T) {
	t.Run("level detection", func(t *testing.T) {
		rec := &recordingSubmitter{}
		adapter := NewFastHTTPAdapter(rec)

		testMessages := []string{
			"this is some informational message",
			"a debug message for the developers",
			"warning: something might be wrong",
			"an error occurred while processing",
			"trace of request path",
		}
		for _, msg := range testMessages {
			adapter.Printf("%s", msg)
		}

		expectedLevels := []int64{alog.LevelInfo, alog.LevelDebug, alog.LevelWarning, alog.LevelError, alog.LevelTrace}
		got := rec.all()
		require.Len(t, got, len(testMessages))
		for i, s := range got {
			assert.Equal(t, expectedLevels[i], s.level, testMessages[i])
			assert.Equal(t, "fasthttp: "+testMessages[i], s.message)
		}
	})

	t.Run("default level", func(t *testing.T) {
		rec := &recordingSubmitter{}
		adapter := NewFastHTTPAdapter(rec, WithDefaultLevel(alog.LevelWarning))
		adapter.Printf("plain message")
		adapter.Printf("request failed")

		got := rec.all()
		require.Len(t, got, 2)
		assert.Equal(t, alog.LevelWarning, got[0].level)
		assert.Equal(t, alog.LevelError, got[1].level)
	})

	t.Run("custom detector", func(t *testing.T) {
		rec := &recordingSubmitter{}
		adapter := NewFastHTTPAdapter(rec, WithLevelDetector(func(string) int64 {
			return alog.LevelCritical
		}))
		adapter.Printf("anything")
		assert.Equal(t, alog.LevelCritical, rec.all()[0].level)
	})
}

func TestFiberAdapter(t *testing.T) {
	rec := &recordingSubmitter{}
	var fatalCalled, panicCalled bool
	adapter := NewFiberAdapter(rec,
		WithFiberFatalHandler(func(msg string) { fatalCalled = true }),
		WithFiberPanicHandler(func(msg string) { panicCalled = true }),
	)

	adapter.Tracef("fiber trace id=%d", 1)
	adapter.Debug("fiber debug id=", 2)
	adapter.Infow("request served", "status", 200, "client_ip", "127.0.0.1")
	adapter.Warnf("fiber warn id=%d", 4)
	adapter.Errorw("dangling", "key")
	adapter.Fatalf("fiber fatal id=%d", 6)
	adapter.Panicw("fiber panic", "id", 7)
	_, err := adapter.Write([]byte("written line\n"))
	require.NoError(t, err)

	expected := []submission{
		{alog.LevelTrace, "fiber: fiber trace id=1"},
		{alog.LevelDebug, "fiber: fiber debug id=2"},
		{alog.LevelInfo, "fiber: request served status=200 client_ip=127.0.0.1"},
		{alog.LevelWarning, "fiber: fiber warn id=4"},
		{alog.LevelError, "fiber: dangling key"},
		{alog.LevelCritical, "fiber: fiber fatal id=6"},
		{alog.LevelCritical, "fiber: fiber panic id=7"},
		{alog.LevelInfo, "fiber: written line"},
	}
	assert.Equal(t, expected, rec.all())
	assert.True(t, fatalCalled, "Custom fatal handler should have been called")
	assert.True(t, panicCalled, "Custom panic handler should have been called")
}

func TestCompatBuilder(t *testing.T) {
	t.Run("with existing logger", func(t *testing.T) {
		logger, _ := createTestLogger(t)
		builder := NewBuilder().WithLogger(logger)

		gnetAdapter, err := builder.BuildGnet()
		require.NoError(t, err)
		assert.Same(t, logger, gnetAdapter.logger)

		got, err := builder.GetLogger()
		require.NoError(t, err)
		assert.Same(t, logger, got)
	})

	t.Run("nil logger", func(t *testing.T) {
		_, err := NewBuilder().WithLogger(nil).BuildFastHTTP()
		assert.Error(t, err)
	})

	t.Run("with config creates started logger", func(t *testing.T) {
		cfg := alog.DefaultConfig()
		cfg.EnableConsole = false

		builder := NewBuilder().WithConfig(cfg)
		fasthttpAdapter, err := builder.BuildFastHTTP()
		require.NoError(t, err)
		assert.NotNil(t, fasthttpAdapter)

		logger, err := builder.GetLogger()
		require.NoError(t, err)
		defer logger.Shutdown()
		assert.Equal(t, "running", logger.WorkerState())

		fiberAdapter, err := builder.BuildFiber()
		require.NoError(t, err)
		assert.Same(t, logger, fiberAdapter.logger, "builder should reuse the created logger")
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := alog.DefaultConfig()
		cfg.Format = "xml"
		_, err := NewBuilder().WithConfig(cfg).BuildGnet()
		assert.ErrorIs(t, err, alog.ErrConfiguration)
	})
}

func TestAdaptersThroughLogger(t *testing.T) {
	logger, sink := createTestLogger(t)
	builder := NewBuilder().WithLogger(logger)

	gnetAdapter, err := builder.BuildGnet()
	require.NoError(t, err)
	fasthttpAdapter, err := builder.BuildFastHTTP()
	require.NoError(t, err)

	gnetAdapter.Infof("engine started on %s", "tcp://:9000")
	fasthttpAdapter.Printf("error when serving connection %q", "127.0.0.1")

	require.NoError(t, logger.Flush(time.Second))

	lines := sink.snapshot()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "] [INFO] gnet: engine started on tcp://:9000\n"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], `] [ERROR] fasthttp: error when serving connection "127.0.0.1"`+"\n"), lines[1])
}
