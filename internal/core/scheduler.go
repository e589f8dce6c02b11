package core

import (
	"container/heap"
	"time"
)

type scheduled[E any] struct {
	at  time.Duration
	seq uint64
	gen uint64
	ev  E
}

type eventQueue[E any] []scheduled[E]

func (q eventQueue[E]) Len() int { return len(q) }
func (q eventQueue[E]) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}
func (q eventQueue[E]) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *eventQueue[E]) Push(x any)   { *q = append(*q, x.(scheduled[E])) }
func (q *eventQueue[E]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Scheduler is a deferred-event queue driven by simulation time.
//
// Every event is stamped with the generation current at scheduling time.
// Invalidate starts a new generation: events from older generations are
// discarded when they come due instead of being delivered, so callbacks
// from a finished run can never act on the next one.
type Scheduler[E any] struct {
	now   time.Duration
	gen   uint64
	seq   uint64
	queue eventQueue[E]
}

// NewScheduler returns an empty scheduler at time zero, generation one.
func NewScheduler[E any]() *Scheduler[E] {
	return &Scheduler[E]{gen: 1}
}

// Now returns the elapsed simulation time.
func (s *Scheduler[E]) Now() time.Duration {
	return s.now
}

// Generation returns the current generation.
func (s *Scheduler[E]) Generation() uint64 {
	return s.gen
}

// After schedules ev to be delivered once d has elapsed.
func (s *Scheduler[E]) After(d time.Duration, ev E) {
	s.seq++
	heap.Push(&s.queue, scheduled[E]{at: s.now + d, seq: s.seq, gen: s.gen, ev: ev})
}

// Advance moves time forward by dt and returns the events that came due, in
// due-time order. Stale-generation events are dropped.
func (s *Scheduler[E]) Advance(dt time.Duration) []E {
	s.now += dt
	var due []E
	for s.queue.Len() > 0 && s.queue[0].at <= s.now {
		item := heap.Pop(&s.queue).(scheduled[E])
		if item.gen != s.gen {
			continue
		}
		due = append(due, item.ev)
	}
	return due
}

// Invalidate starts a new generation and returns it.
func (s *Scheduler[E]) Invalidate() uint64 {
	s.gen++
	return s.gen
}

// Reset invalidates all pending events, empties the queue and rewinds the clock.
func (s *Scheduler[E]) Reset() {
	s.Invalidate()
	s.queue = s.queue[:0]
	s.now = 0
}

// Pending returns the number of queued events, stale ones included.
func (s *Scheduler[E]) Pending() int {
	return s.queue.Len()
}
