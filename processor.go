// FILE: lixenwraith/alog/processor.go
package alog

import (
	"time"
)

// processLogs is the worker loop. It writes queued entries in batches until a stop
// has been requested and the queue has been observed empty.
func (l *Logger) processLogs(heartbeatInterval time.Duration) {
	defer func() {
		l.state.WorkerState.Store(workerStopped)
		l.progress.broadcast() // Release Flush waiters
		close(l.doneChan)
	}()

	var heartbeatTick <-chan time.Time
	if heartbeatInterval > 0 {
		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()
		heartbeatTick = ticker.C
	}

	draining := false
	batch := make([]logEntry, 0, defaultBatchSize)

	for {
		batch = l.queue.popBatch(batch[:0], int(l.batchSize.Load()))

		if len(batch) > 0 {
			l.processBatch(batch)
			clear(batch)

			// A busy queue must not starve the heartbeat
			select {
			case <-heartbeatTick:
				l.writeHeartbeat()
			default:
			}

			if !draining {
				select {
				case <-l.stopChan:
					draining = true
					l.state.WorkerState.Store(workerDraining)
				default:
				}
			}
			continue
		}

		if draining {
			return
		}

		select {
		case <-l.queue.wake():
			// May be stale, the next pop decides
		case <-l.stopChan:
			draining = true
			l.state.WorkerState.Store(workerDraining)
		case <-heartbeatTick:
			l.writeHeartbeat()
		}
	}
}

// processBatch formats each entry once and writes it to every enabled sink, in pop order
func (l *Logger) processBatch(batch []logEntry) {
	start := time.Now()
	f := l.formatter.Load()

	for i := range batch {
		e := &batch[i]
		line := f.Format(e.TimeStamp, LevelName(e.Level), e.Message)
		l.sinks.writeLine(line, l.reportSinkError)
	}

	l.metrics.recordBatch(len(batch), time.Since(start))
	l.progress.broadcast()
}

// reportSinkError is the diagnostic path for failed sink writes
func (l *Logger) reportSinkError(name string, err error) {
	l.internalLog("failed to write to sink '%s': %v\n", name, err)
}
