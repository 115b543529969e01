package session

import (
	"context"
	"log"
	"sync"
	"time"

	"primehunt/internal/entities"
	"primehunt/internal/events"
	"primehunt/internal/game"
	"primehunt/internal/scheduler"
	"primehunt/internal/wshub"
)

const commandBuffer = 64

// Session is one running game. The mode, its dispatcher and its scheduler
// are touched only by the Run goroutine; everything else goes through the
// command channel or the snapshot lock.
type Session struct {
	ID        string
	Code      string
	Options   game.Options
	CreatedAt time.Time
	Hub       *wshub.Hub

	mode       game.Mode
	dispatcher *events.Dispatcher
	sched      *scheduler.Scheduler
	shared     *Shared
	tick       time.Duration

	commands chan game.Command
	started  chan struct{}
	done     chan struct{}
	once     sync.Once

	// owned by Run
	now    time.Duration
	paused bool

	mu         sync.RWMutex
	snapshot   game.Snapshot
	result     *game.Result
	lastActive time.Time
	finishedAt time.Time
	isPaused   bool
}

func newSession(id, code string, opts game.Options, mode game.Mode, d *events.Dispatcher, sched *scheduler.Scheduler, shared *Shared, tick time.Duration) *Session {
	s := &Session{
		ID:         id,
		Code:       code,
		Options:    opts,
		CreatedAt:  time.Now(),
		Hub:        wshub.NewHub(),
		mode:       mode,
		dispatcher: d,
		sched:      sched,
		shared:     shared,
		tick:       tick,
		commands:   make(chan game.Command, commandBuffer),
		started:    make(chan struct{}),
		done:       make(chan struct{}),
		lastActive: time.Now(),
	}
	d.SubscribeAll(s.forward)
	s.snapshot = copySnapshot(mode.Snapshot())
	return s
}

// forward relays a game event to the metrics and to every connected client.
func (s *Session) forward(ev events.Event) {
	s.shared.Metrics.Observe(s.mode.Board(), ev)
	if name, ok := WireType(ev.Type); ok {
		s.Hub.Broadcast(wshub.ServerMessage{Type: name, Data: ev.Data})
	}
}

// Begin lets Run start the game clock. Sessions wait for their player so no
// enemies spawn before anyone is watching.
func (s *Session) Begin() {
	s.once.Do(func() { close(s.started) })
}

// Send queues a client command. It reports false when the session is over
// or the queue is full.
func (s *Session) Send(cmd game.Command) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.commands <- cmd:
		s.mu.Lock()
		s.lastActive = time.Now()
		s.mu.Unlock()
		return true
	default:
		return false
	}
}

// Done is closed when Run returns.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) Snapshot() game.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Result returns the final result once the game is over.
func (s *Session) Result() (game.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return game.Result{}, false
	}
	return *s.result, true
}

func (s *Session) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isPaused
}

// State is the message a client receives on connect.
func (s *Session) State() wshub.ServerMessage {
	return wshub.ServerMessage{Type: MsgState, ID: s.ID, Data: s.Snapshot()}
}

// Run drives the game until it ends or ctx is cancelled. Paused time does not
// advance the game clock.
func (s *Session) Run(ctx context.Context) {
	defer close(s.done)

	select {
	case <-ctx.Done():
		return
	case <-s.started:
	}

	s.startGame()

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-s.commands:
			s.apply(cmd)
		case t := <-ticker.C:
			s.step(t.Sub(last))
			last = t
		}
		if s.mode.Over() {
			s.finish()
			return
		}
	}
}

func (s *Session) startGame() {
	s.mode.Start(s.now)
	s.publish()
}

// step advances the game clock by dt unless paused.
func (s *Session) step(dt time.Duration) {
	if s.paused {
		return
	}
	s.now += dt
	s.mode.Update(s.now)
	s.publish()
}

func (s *Session) apply(cmd game.Command) {
	switch cmd.Type {
	case game.CmdPause:
		if s.paused {
			return
		}
		s.setPaused(true)
		s.Hub.Broadcast(wshub.ServerMessage{Type: MsgPaused})
		return
	case game.CmdResume:
		if !s.paused {
			return
		}
		s.setPaused(false)
		s.Hub.Broadcast(wshub.ServerMessage{Type: MsgResumed})
		return
	case game.CmdQuit:
	default:
		if s.paused {
			return
		}
	}
	s.mode.Handle(cmd, s.now)
	s.publish()
}

func (s *Session) setPaused(p bool) {
	s.paused = p
	s.mu.Lock()
	s.isPaused = p
	s.mu.Unlock()
}

func (s *Session) publish() {
	snap := copySnapshot(s.mode.Snapshot())
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}

func (s *Session) finish() {
	r := s.mode.Result()
	s.publish()
	s.mu.Lock()
	s.result = &r
	s.finishedAt = time.Now()
	s.mu.Unlock()

	log.Printf("[Session] %s finished: mode=%s score=%d rank=%d\n", s.ID, r.Mode, r.Score, r.Rank)
	if s.shared.OnFinish != nil {
		s.shared.OnFinish(s, r)
	}
	s.Hub.Close()
}

// copySnapshot detaches enemy values from the live game.
func copySnapshot(snap game.Snapshot) game.Snapshot {
	enemies := make([]*entities.Enemy, len(snap.Enemies))
	for i, e := range snap.Enemies {
		c := *e
		enemies[i] = &c
	}
	snap.Enemies = enemies
	return snap
}
