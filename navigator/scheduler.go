package navigator

import (
	"container/heap"
	"time"
)

// QueueScheduler is Scheduler running on virtual clock. Nothing happens
// until the owner advances the clock, so timers fire as discrete events of
// the same loop which delivers input.
type QueueScheduler struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

type timer struct {
	at       time.Duration
	seq      uint64
	fn       func()
	canceled bool
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }
func (q timerQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}
func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *timerQueue) Push(x any)   { *q = append(*q, x.(*timer)) }
func (q *timerQueue) Pop() any {
	old := *q
	t := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return t
}

// NewQueueScheduler returns scheduler with clock at zero.
func NewQueueScheduler() *QueueScheduler {
	return &QueueScheduler{}
}

// After implements Scheduler.
func (s *QueueScheduler) After(d time.Duration, fn func()) func() {
	s.seq++
	t := &timer{at: s.now + max(d, 0), seq: s.seq, fn: fn}
	heap.Push(&s.queue, t)
	return func() { t.canceled = true }
}

// Now returns virtual time.
func (s *QueueScheduler) Now() time.Duration {
	return s.now
}

// Pending returns number of timers which are still to fire.
func (s *QueueScheduler) Pending() int {
	n := 0
	for _, t := range s.queue {
		if !t.canceled {
			n++
		}
	}
	return n
}

// Next returns virtual time of the earliest live timer.
func (s *QueueScheduler) Next() (time.Duration, bool) {
	for s.queue.Len() > 0 {
		if t := s.queue[0]; !t.canceled {
			return t.at, true
		}
		heap.Pop(&s.queue)
	}
	return 0, false
}

// Advance moves clock forward by d firing due timers in order. Timers
// scheduled by fired callbacks run too when they become due within d.
// Returns number of callbacks run.
func (s *QueueScheduler) Advance(d time.Duration) int {
	end := s.now + max(d, 0)
	fired := 0
	for s.queue.Len() > 0 && s.queue[0].at <= end {
		t := heap.Pop(&s.queue).(*timer)
		if t.canceled {
			continue
		}
		s.now = t.at
		t.fn()
		fired++
	}
	s.now = end
	return fired
}

// RunNext jumps clock to the earliest live timer and fires it. Returns
// false when nothing is pending.
func (s *QueueScheduler) RunNext() bool {
	for s.queue.Len() > 0 {
		t := heap.Pop(&s.queue).(*timer)
		if t.canceled {
			continue
		}
		s.now = max(s.now, t.at)
		t.fn()
		return true
	}
	return false
}
