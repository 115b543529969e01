package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"primehunt/internal/achievements"
	"primehunt/internal/difficulty"
	"primehunt/internal/events"
	"primehunt/internal/game"
	"primehunt/internal/leaderboard"
	"primehunt/internal/metrics"
	"primehunt/internal/scheduler"
	"primehunt/internal/sound"
	"primehunt/internal/stats"
)

// finishedGrace keeps a finished session around so clients can still fetch
// its result.
const finishedGrace = 2 * time.Minute

var ErrNotFound = errors.New("session not found")

// Shared are the cross-session managers every game reports to.
type Shared struct {
	Lifetime     *stats.LifetimeStore
	Achievements *achievements.Store
	Leaderboard  *leaderboard.Manager
	Difficulty   *difficulty.Manager
	Sound        *sound.Manager
	Metrics      *metrics.Metrics

	// OnFinish runs on the session goroutine after game over.
	OnFinish func(s *Session, r game.Result)
}

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	codes    map[string]string
	cancels  map[string]context.CancelFunc

	shared *Shared
	tick   time.Duration
	ttl    time.Duration
	ctx    context.Context
	stop   context.CancelFunc
}

func NewStore(shared *Shared, tick, ttl time.Duration) *Store {
	ctx, stop := context.WithCancel(context.Background())
	s := &Store{
		sessions: make(map[string]*Session),
		codes:    make(map[string]string),
		cancels:  make(map[string]context.CancelFunc),
		shared:   shared,
		tick:     tick,
		ttl:      ttl,
		ctx:      ctx,
		stop:     stop,
	}
	go s.sweepStale()
	return s
}

// Create builds a session for opts and starts its loop. The game clock waits
// for Begin.
func (s *Store) Create(opts game.Options) (*Session, error) {
	d := events.NewDispatcher()
	sched := scheduler.New()
	mode, err := game.New(opts, game.Deps{
		Events:       d,
		Sched:        sched,
		Rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		Lifetime:     s.shared.Lifetime,
		Achievements: s.shared.Achievements,
		Leaderboard:  s.shared.Leaderboard,
		Difficulty:   s.shared.Difficulty,
		Sound:        s.shared.Sound,
	})
	if err != nil {
		return nil, err
	}
	opts.Mode = mode.Name()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Try up to 10 times to generate a unique code
	for _i := 0; _i < 10; _i++ {
		code, err := GenerateCode()
		if err != nil {
			return nil, fmt.Errorf("generating spectate code: %w", err)
		}
		if _, exists := s.codes[code]; exists {
			continue
		}

		sess := newSession(uuid.NewString(), code, opts, mode, d, sched, s.shared, s.tick)
		ctx, cancel := context.WithCancel(s.ctx)
		s.sessions[sess.ID] = sess
		s.codes[code] = sess.ID
		s.cancels[sess.ID] = cancel
		go sess.Run(ctx)

		if m := s.shared.Metrics; m != nil {
			m.SessionsCreated.WithLabelValues(mode.Board()).Inc()
			m.SessionsActive.Inc()
		}
		log.Printf("[Session] Created %s mode=%s code=%s\n", sess.ID, mode.Board(), code)
		return sess, nil
	}
	return nil, fmt.Errorf("failed to generate unique spectate code after 10 attempts")
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("getting %s: %w", id, ErrNotFound)
	}
	return sess, nil
}

func (s *Store) ByCode(code string) (*Session, error) {
	norm, ok := NormalizeCode(code)
	if !ok {
		return nil, fmt.Errorf("spectate code %q: %w", code, ErrNotFound)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.codes[norm]
	if !ok {
		return nil, fmt.Errorf("spectate code %q: %w", code, ErrNotFound)
	}
	return s.sessions[id], nil
}

// Delete stops the session loop and disconnects its clients.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(id)
}

func (s *Store) deleteLocked(id string) {
	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	s.cancels[id]()
	sess.Hub.Close()
	delete(s.sessions, id)
	delete(s.codes, sess.Code)
	delete(s.cancels, id)
	if m := s.shared.Metrics; m != nil {
		m.SessionsActive.Dec()
	}
}

// List returns sessions oldest first.
func (s *Store) List() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		list = append(list, sess)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

// Close stops every session.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.sessions {
		s.deleteLocked(id)
	}
	s.stop()
}

// stale reports whether a session should be dropped at now: idle past the
// TTL, or finished longer than the grace period ago.
func (s *Store) stale(sess *Session, now time.Time) bool {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	if !sess.finishedAt.IsZero() && now.Sub(sess.finishedAt) > finishedGrace {
		return true
	}
	return now.Sub(sess.lastActive) > s.ttl
}

func (s *Store) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if s.stale(sess, now) {
			s.deleteLocked(id)
			n++
		}
	}
	return n
}

func (s *Store) sweepStale() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.sweep(now); n > 0 {
				log.Printf("[Session] Swept %d stale sessions\n", n)
			}
		}
	}
}
