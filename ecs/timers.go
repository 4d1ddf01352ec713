package ecs

import (
	"container/heap"
	"math"
)

// TimerId identifies a scheduled callback. The zero value never names a timer.
type TimerId uint64

// Timers is a deterministic task queue driven by simulation time instead of
// the wall clock. The Scheduler advances it by each frame's delta and fires
// due callbacks after the frame's commands have been flushed.
type Timers struct {
	now    float64
	nextId TimerId
	seq    uint64
	queue  timerHeap
	byId   map[TimerId]*timer
	closed bool
}

type timer struct {
	id  TimerId
	due float64
	seq uint64
	fn  func()
}

// NewTimers creates an empty queue at time zero.
func NewTimers() *Timers {
	return &Timers{byId: make(map[TimerId]*timer)}
}

// Now returns the current simulation time in seconds. While a callback runs
// this is the callback's due time.
func (t *Timers) Now() float64 {
	return t.now
}

// Pending returns the number of scheduled callbacks.
func (t *Timers) Pending() int {
	return len(t.byId)
}

// After schedules fn to run once delay seconds of simulation time have
// elapsed. Negative or NaN delays are treated as zero. Returns 0 and drops fn
// once the queue is closed.
func (t *Timers) After(delay float64, fn func()) TimerId {
	if t.closed || fn == nil {
		return 0
	}
	if math.IsNaN(delay) || delay < 0 {
		delay = 0
	}

	t.nextId++
	t.seq++
	tm := &timer{
		id:  t.nextId,
		due: t.now + delay,
		seq: t.seq,
		fn:  fn,
	}
	heap.Push(&t.queue, tm)
	t.byId[tm.id] = tm
	return tm.id
}

// Cancel removes a pending callback. Returns false if it already ran or never existed.
func (t *Timers) Cancel(id TimerId) bool {
	tm, ok := t.byId[id]
	if !ok {
		return false
	}
	delete(t.byId, id)
	tm.fn = nil
	return true
}

// Close drops every pending callback; After becomes a no-op.
func (t *Timers) Close() {
	t.closed = true
	t.queue = nil
	clear(t.byId)
}

// Closed reports whether Close has been called.
func (t *Timers) Closed() bool {
	return t.closed
}

// Advance moves the clock forward by dt without firing anything.
func (t *Timers) Advance(dt float64) {
	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	t.now += dt
}

// Fire runs every callback due at or before the current time, earliest first
// and in scheduling order on ties. Callbacks scheduled by a running callback
// are based on its due time and run in the same call if they are already due.
func (t *Timers) Fire() int {
	fired := 0
	frameAt := t.now
	for len(t.queue) > 0 && !t.closed {
		next := t.queue[0]
		if next.due > frameAt {
			break
		}
		heap.Pop(&t.queue)
		if next.fn == nil {
			continue
		}
		delete(t.byId, next.id)

		t.now = next.due
		next.fn()
		fired++
	}
	t.now = frameAt
	return fired
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(x any) { *h = append(*h, x.(*timer)) }

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
