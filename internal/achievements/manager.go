package achievements

import (
	"primehunt/internal/events"
	"primehunt/internal/gameconfig"
	"primehunt/internal/scheduler"
)

// StatsSource is the slice of the session tracker the rules read.
type StatsSource interface {
	CorrectHits() int
	ShotsFired() int
	Accuracy() int
	SpeedDemon() bool
	PerfectWaves() int
	MaxStreak() int
	MaxCombo() int
	HintsUsed() int
}

// Manager checks unlock rules for one session and shows one toast at a time.
type Manager struct {
	store  *Store
	sched  *scheduler.Scheduler
	events *events.Dispatcher

	newlyUnlocked []ID
	queue         []Achievement
	showing       bool
}

func NewManager(store *Store, sched *scheduler.Scheduler, d *events.Dispatcher) *Manager {
	return &Manager{store: store, sched: sched, events: d}
}

// Unlock records id and queues its toast. Repeat calls are no-ops.
func (m *Manager) Unlock(id ID) bool {
	if !m.store.Unlock(id) {
		return false
	}
	m.newlyUnlocked = append(m.newlyUnlocked, id)
	m.queue = append(m.queue, All[id])
	m.showNext()
	return true
}

func (m *Manager) showNext() {
	if m.showing || len(m.queue) == 0 {
		return
	}
	m.showing = true
	a := m.queue[0]
	m.queue = m.queue[1:]
	m.events.Emit(events.AchievementShown, a)

	cycle := gameconfig.AchievementToastIn + gameconfig.AchievementToastHold + gameconfig.AchievementToastOut
	m.sched.After(cycle, func() {
		m.showing = false
		m.events.Emit(events.AchievementDismissed, a)
		m.showNext()
	})
}

func progress(s StatsSource, wave, lives, score int) Progress {
	return Progress{
		CorrectHits:  s.CorrectHits(),
		ShotsFired:   s.ShotsFired(),
		Accuracy:     s.Accuracy(),
		SpeedDemon:   s.SpeedDemon(),
		PerfectWaves: s.PerfectWaves(),
		MaxStreak:    s.MaxStreak(),
		MaxCombo:     s.MaxCombo(),
		HintsUsed:    s.HintsUsed(),
		Wave:         wave,
		Lives:        lives,
		Score:        score,
	}
}

// Check unlocks every achievement whose condition currently holds.
func (m *Manager) Check(s StatsSource, wave, lives, score int) {
	for _, id := range Evaluate(progress(s, wave, lives, score)) {
		m.Unlock(id)
	}
}

// CheckEndGame runs Check plus the rules only evaluated at game over.
func (m *Manager) CheckEndGame(s StatsSource, wave, lives, score int) {
	for _, id := range EvaluateEndGame(progress(s, wave, lives, score)) {
		m.Unlock(id)
	}
}

func (m *Manager) NewlyUnlocked() []Achievement {
	out := make([]Achievement, 0, len(m.newlyUnlocked))
	for _, id := range m.newlyUnlocked {
		out = append(out, All[id])
	}
	return out
}

func (m *Manager) ClearNewlyUnlocked() {
	m.newlyUnlocked = nil
}

// Queued reports toasts waiting behind the visible one.
func (m *Manager) Queued() int {
	return len(m.queue)
}

func (m *Manager) Showing() bool {
	return m.showing
}

func (m *Manager) UnlockedCount() int {
	return m.store.UnlockedCount()
}

func (m *Manager) TotalCount() int {
	return len(All)
}

func (m *Manager) All() []Status {
	return m.store.List()
}
