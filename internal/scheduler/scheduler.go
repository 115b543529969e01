package scheduler

import (
	"container/heap"
	"time"
)

// Handle identifies a scheduled task. The zero Handle is never issued.
type Handle uint64

type task struct {
	id       Handle
	fireAt   time.Duration
	interval time.Duration
	seq      uint64
	fn       func()
}

type queue []*task

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].fireAt == q[j].fireAt {
		return q[i].seq < q[j].seq
	}
	return q[i].fireAt < q[j].fireAt
}
func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)   { *q = append(*q, x.(*task)) }
func (q *queue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

// Scheduler is a deterministic timer queue driven by an external game clock.
// Tasks only fire inside Advance, on the caller's goroutine.
type Scheduler struct {
	now    time.Duration
	nextID Handle
	seq    uint64
	q      queue
	live   map[Handle]*task
}

func New() *Scheduler {
	return &Scheduler{live: make(map[Handle]*task)}
}

// Now returns the game time of the last Advance.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn once, d after the current game time.
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	return s.add(d, 0, fn)
}

// Every schedules fn repeatedly with the given period, first firing one
// period from now.
func (s *Scheduler) Every(period time.Duration, fn func()) Handle {
	if period <= 0 {
		period = time.Millisecond
	}
	return s.add(period, period, fn)
}

func (s *Scheduler) add(d, interval time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.seq++
	t := &task{id: s.nextID, fireAt: s.now + d, interval: interval, seq: s.seq, fn: fn}
	heap.Push(&s.q, t)
	s.live[t.id] = t
	return t.id
}

// Cancel removes a pending task. It reports whether the task was pending.
func (s *Scheduler) Cancel(h Handle) bool {
	if _, ok := s.live[h]; !ok {
		return false
	}
	delete(s.live, h)
	return true
}

func (s *Scheduler) Pending(h Handle) bool {
	_, ok := s.live[h]
	return ok
}

// Remaining reports how long until h fires.
func (s *Scheduler) Remaining(h Handle) (time.Duration, bool) {
	t, ok := s.live[h]
	if !ok {
		return 0, false
	}
	return t.fireAt - s.now, true
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	return len(s.live)
}

// Clear drops every pending task.
func (s *Scheduler) Clear() {
	s.q = nil
	s.live = make(map[Handle]*task)
}

// Advance moves the clock to now and runs every task due at or before it in
// fire-time order. Tasks scheduled by callbacks run in the same call if they
// are already due. It returns the number of callbacks run.
func (s *Scheduler) Advance(now time.Duration) int {
	if now < s.now {
		now = s.now
	}
	fired := 0
	for s.q.Len() > 0 {
		t := s.q[0]
		if _, ok := s.live[t.id]; !ok {
			heap.Pop(&s.q)
			continue
		}
		if t.fireAt > now {
			break
		}
		heap.Pop(&s.q)
		s.now = t.fireAt
		if t.interval > 0 {
			s.seq++
			t.fireAt += t.interval
			t.seq = s.seq
			heap.Push(&s.q, t)
		} else {
			delete(s.live, t.id)
		}
		t.fn()
		fired++
	}
	s.now = now
	return fired
}
