// FILE: lixenwraith/alog/queue.go
package alog

import (
	"sync"
	"sync/atomic"
)

// pushResult reports what happened to a pushed entry
type pushResult int

const (
	pushAccepted pushResult = iota
	pushEvicted             // Accepted after dropping the oldest queued entry
	pushRejected            // Queue full under drop_newest, entry discarded
)

// segment is a fixed block of queue slots, linked in push order
type segment struct {
	entries [segmentSize]logEntry
	read    int
	write   int
	next    *segment
}

// queue is an unbounded (or optionally bounded) multi-producer, single-consumer FIFO.
// Producers hold the lock for one slot write or one segment link, independent of depth.
type queue struct {
	mu       sync.Mutex
	head     *segment
	tail     *segment
	spare    *segment // Last consumed segment, reused for the next link
	capacity int64    // 0 = unbounded
	policy   string

	size        atomic.Int64
	pushedCount atomic.Uint64
	evictCount  atomic.Uint64

	notify chan struct{} // 1-buffered consumer wake signal
}

// newQueue creates an empty queue with the given limits
func newQueue(capacity int64, policy string) *queue {
	s := &segment{}
	return &queue{
		head:     s,
		tail:     s,
		capacity: capacity,
		policy:   policy,
		notify:   make(chan struct{}, 1),
	}
}

// push appends an entry and wakes the consumer, never blocking on the consumer
func (q *queue) push(e logEntry) pushResult {
	result := pushAccepted

	q.mu.Lock()
	if q.capacity > 0 && q.size.Load() >= q.capacity {
		if q.policy != OverflowDropOldest {
			q.mu.Unlock()
			return pushRejected
		}
		if _, ok := q.takeLocked(); ok {
			q.evictCount.Add(1)
			result = pushEvicted
		}
	}

	if q.tail.write == segmentSize {
		q.tail.next = q.newSegmentLocked()
		q.tail = q.tail.next
	}
	q.tail.entries[q.tail.write] = e
	q.tail.write++
	q.size.Add(1)
	q.pushedCount.Add(1)
	q.mu.Unlock()

	// Non-blocking: a pending signal already covers this entry
	select {
	case q.notify <- struct{}{}:
	default:
	}
	return result
}

// popBatch appends up to max entries to dst in FIFO order without blocking
func (q *queue) popBatch(dst []logEntry, max int) []logEntry {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(dst) < max {
		e, ok := q.takeLocked()
		if !ok {
			break
		}
		dst = append(dst, e)
	}
	return dst
}

// takeLocked removes the oldest entry, q.mu must be held
func (q *queue) takeLocked() (logEntry, bool) {
	h := q.head
	if h.read == h.write {
		if h.next == nil {
			// Empty: rewind so the single segment is reused in place
			h.read, h.write = 0, 0
			return logEntry{}, false
		}
		q.head = h.next
		q.recycleLocked(h)
		h = q.head
	}

	e := h.entries[h.read]
	h.entries[h.read] = logEntry{} // Release the message for collection
	h.read++
	q.size.Add(-1)
	return e, true
}

// newSegmentLocked returns the spare segment or allocates one
func (q *queue) newSegmentLocked() *segment {
	if s := q.spare; s != nil {
		q.spare = nil
		return s
	}
	return &segment{}
}

// recycleLocked keeps a fully consumed segment for reuse
func (q *queue) recycleLocked(s *segment) {
	s.read, s.write, s.next = 0, 0, nil
	q.spare = s
}

// setLimits changes capacity and overflow policy; entries already queued are kept
func (q *queue) setLimits(capacity int64, policy string) {
	q.mu.Lock()
	q.capacity = capacity
	q.policy = policy
	q.mu.Unlock()
}

// approxSize is a lock-free, possibly stale pending count
func (q *queue) approxSize() int64 {
	return q.size.Load()
}

// pushed returns the total number of entries ever accepted
func (q *queue) pushed() uint64 {
	return q.pushedCount.Load()
}

// evicted returns the number of entries dropped by drop_oldest
func (q *queue) evicted() uint64 {
	return q.evictCount.Load()
}

// wake returns the consumer notification channel
func (q *queue) wake() <-chan struct{} {
	return q.notify
}
