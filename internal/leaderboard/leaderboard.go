package leaderboard

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"primehunt/internal/gameconfig"
	"primehunt/internal/kv"
)

const (
	ModeClassic    = "classic"
	ModeTimeAttack = "time_attack"
	ModeEndless    = "endless"
	AllModes       = "all"
)

// DefaultModes are the boards that always exist, even when empty.
var DefaultModes = []string{
	ModeClassic,
	ModeTimeAttack,
	ModeEndless,
	"challenge_twin_primes",
	"challenge_mersenne_primes",
	"challenge_small_primes",
	"challenge_large_primes",
	"challenge_fibonacci_primes",
}

type Entry struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Score int            `json:"score"`
	Date  time.Time      `json:"date"`
	Stats map[string]int `json:"stats,omitempty"`
}

// Manager keeps one top-10 list per game mode.
type Manager struct {
	mu       sync.Mutex
	store    kv.Store
	boards   map[string][]Entry
	now      func() time.Time
	OnUpdate func(mode string, entries []Entry)
}

func NewManager(store kv.Store) *Manager {
	m := &Manager{store: store, now: time.Now}
	m.boards = defaults()
	loaded := make(map[string][]Entry)
	if kv.LoadJSON(store, gameconfig.KeyLeaderboards, &loaded) {
		for mode, entries := range loaded {
			m.boards[mode] = entries
		}
	}
	return m
}

func defaults() map[string][]Entry {
	boards := make(map[string][]Entry, len(DefaultModes))
	for _, mode := range DefaultModes {
		boards[mode] = []Entry{}
	}
	return boards
}

// AddScore inserts a result and returns its 1-based rank, or 0 when it did
// not make the list.
func (m *Manager) AddScore(mode, name string, score int, stats map[string]int) int {
	m.mu.Lock()
	entry := Entry{
		ID:    uuid.New().String(),
		Name:  name,
		Score: score,
		Date:  m.now().UTC(),
		Stats: stats,
	}
	board := append(m.boards[mode], entry)
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Score > board[j].Score
	})
	if len(board) > gameconfig.MaxLeaderboardEntries {
		board = board[:gameconfig.MaxLeaderboardEntries]
	}
	m.boards[mode] = board
	m.save()

	rank := 0
	for i, e := range board {
		if e.ID == entry.ID {
			rank = i + 1
			break
		}
	}
	snapshot := clone(board)
	hook := m.OnUpdate
	m.mu.Unlock()

	if rank > 0 && hook != nil {
		hook(mode, snapshot)
	}
	return rank
}

func (m *Manager) Board(mode string) []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.boards[mode])
}

// Modes lists every board, default modes first.
func (m *Manager) Modes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	modes := append([]string(nil), DefaultModes...)
	var extra []string
	for mode := range m.boards {
		if !isDefault(mode) {
			extra = append(extra, mode)
		}
	}
	sort.Strings(extra)
	return append(modes, extra...)
}

func isDefault(mode string) bool {
	for _, d := range DefaultModes {
		if d == mode {
			return true
		}
	}
	return false
}

// IsHighScore reports whether score would enter the board.
func (m *Manager) IsHighScore(mode string, score int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	board := m.boards[mode]
	if len(board) < gameconfig.MaxLeaderboardEntries {
		return true
	}
	return score > board[len(board)-1].Score
}

// Clear empties one board, or every board for AllModes.
func (m *Manager) Clear(mode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mode == AllModes {
		m.boards = defaults()
	} else {
		m.boards[mode] = []Entry{}
	}
	m.save()
}

func (m *Manager) save() {
	kv.SaveJSON(m.store, gameconfig.KeyLeaderboards, m.boards)
}

func clone(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
