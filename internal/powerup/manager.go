package powerup

import (
	"math/rand"
	"slices"

	"primehunt/internal/gameconfig"
	"primehunt/internal/numbers"
)

// Item is a power-up falling towards the player.
type Item struct {
	ID        int     `json:"id"`
	Kind      Kind    `json:"kind"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	FallSpeed float64 `json:"speed"`
}

type Schedule struct {
	Index         int `json:"index"`
	NextThreshold int `json:"nextThreshold"`
}

type Manager struct {
	rng     *rand.Rand
	fib     []int
	index   int
	next    int
	nextID  int
	pending map[int]*Item
}

func NewManager(rng *rand.Rand) *Manager {
	m := &Manager{rng: rng, fib: gameconfig.PowerUpFibonacci, pending: make(map[int]*Item)}
	m.Reset()
	return m
}

// Threshold returns 10 × Σ fib[0..index], clamping index to the sequence.
func Threshold(index int) int {
	fib := gameconfig.PowerUpFibonacci
	index = min(max(index, 0), len(fib)-1)
	total := 0
	for _, f := range fib[:index+1] {
		total += f
	}
	return total * gameconfig.PowerUpThresholdUnit
}

// CheckForPowerUpSpawn spawns at most one item when score has reached the
// current threshold, then advances the schedule.
func (m *Manager) CheckForPowerUpSpawn(score int) (*Item, bool) {
	if score < m.next {
		return nil, false
	}
	x := numbers.RandomInt(m.rng, gameconfig.EnemyMargin, gameconfig.FieldWidth-gameconfig.EnemyMargin)
	item := m.SpawnPowerUp(x, -20)

	m.index++
	if m.index >= len(m.fib) {
		m.index = len(m.fib) - 1
	}
	m.next = Threshold(m.index)
	return item, true
}

// SpawnPowerUp creates an item of a uniformly random kind at (x, y).
func (m *Manager) SpawnPowerUp(x, y int) *Item {
	m.nextID++
	item := &Item{
		ID:        m.nextID,
		Kind:      Kinds[m.rng.Intn(len(Kinds))],
		X:         x,
		Y:         y,
		FallSpeed: gameconfig.PowerUpFallSpeed,
	}
	m.pending[item.ID] = item
	return item
}

// Collect removes a falling item. It reports false for unknown or already
// collected ids.
func (m *Manager) Collect(id int) (*Item, bool) {
	item, ok := m.pending[id]
	if !ok {
		return nil, false
	}
	delete(m.pending, id)
	return item, true
}

// Discard drops an item that left the playfield.
func (m *Manager) Discard(id int) bool {
	_, ok := m.pending[id]
	delete(m.pending, id)
	return ok
}

func (m *Manager) Pending() int {
	return len(m.pending)
}

// Items lists falling items by id.
func (m *Manager) Items() []Item {
	out := make([]Item, 0, len(m.pending))
	for _, it := range m.pending {
		out = append(out, *it)
	}
	slices.SortFunc(out, func(a, b Item) int { return a.ID - b.ID })
	return out
}

// Info mirrors the next-power-up progress display.
func (m *Manager) Info() (pointsNeeded, ordinal int) {
	return m.next, m.index + 1
}

func (m *Manager) Schedule() Schedule {
	return Schedule{Index: m.index, NextThreshold: m.next}
}

func (m *Manager) Reset() {
	m.index = 0
	m.next = Threshold(0)
	m.pending = make(map[int]*Item)
}
