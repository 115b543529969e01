package difficulty

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"primehunt/internal/gameconfig"
	"primehunt/internal/kv"
)

const (
	Easy   = "EASY"
	Normal = "NORMAL"
	Hard   = "HARD"
	Expert = "EXPERT"
)

var ErrUnknownLevel = errors.New("unknown difficulty level")

type Level struct {
	Name                string  `json:"name"`
	SpeedMultiplier     float64 `json:"speedMultiplier"`
	SpawnRateMultiplier float64 `json:"spawnRateMultiplier"`
	NumberRangeMax      int     `json:"numberRangeMax"`
	Lives               int     `json:"lives"`
}

var Levels = map[string]Level{
	Easy:   {Name: "Easy", SpeedMultiplier: 0.7, SpawnRateMultiplier: 1.5, NumberRangeMax: 50, Lives: 5},
	Normal: {Name: "Normal", SpeedMultiplier: 1.0, SpawnRateMultiplier: 1.0, NumberRangeMax: 100, Lives: 3},
	Hard:   {Name: "Hard", SpeedMultiplier: 1.3, SpawnRateMultiplier: 0.7, NumberRangeMax: 200, Lives: 2},
	Expert: {Name: "Expert", SpeedMultiplier: 1.6, SpawnRateMultiplier: 0.5, NumberRangeMax: 300, Lives: 1},
}

// Order lists the level keys from easiest to hardest.
var Order = []string{Easy, Normal, Hard, Expert}

// Base is the untuned part of a wave profile that a level scales.
type Base struct {
	EnemySpeed     float64
	SpawnRate      time.Duration
	NumberRangeMax int
}

type Applied struct {
	EnemySpeed     float64
	SpawnRate      time.Duration
	NumberRangeMax int
	Lives          int
}

// Manager holds the selected level. Only the level key is persisted.
type Manager struct {
	mu    sync.Mutex
	store kv.Store
	level string
}

func NewManager(store kv.Store) *Manager {
	m := &Manager{store: store, level: Normal}
	raw, ok, err := store.Get(gameconfig.KeyDifficulty)
	if err != nil {
		log.Printf("[Difficulty] Load error: %v\n", err)
	}
	if ok {
		if _, known := Levels[string(raw)]; known {
			m.level = string(raw)
		} else {
			log.Printf("[Difficulty] Ignoring stored level %q\n", raw)
		}
	}
	return m
}

// Set selects level. Unknown levels are rejected and the current level kept.
func (m *Manager) Set(level string) error {
	if _, ok := Levels[level]; !ok {
		log.Printf("[Difficulty] Invalid difficulty: %s\n", level)
		return fmt.Errorf("setting difficulty %q: %w", level, ErrUnknownLevel)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = level
	if err := m.store.Set(gameconfig.KeyDifficulty, []byte(level)); err != nil {
		log.Printf("[Difficulty] Could not save difficulty: %v\n", err)
	}
	return nil
}

func (m *Manager) Level() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

func (m *Manager) Config() Level {
	return Levels[m.Level()]
}

// Apply scales base by the current level.
func (m *Manager) Apply(base Base) Applied {
	return ApplyLevel(m.Config(), base)
}

func ApplyLevel(l Level, base Base) Applied {
	return Applied{
		EnemySpeed:     base.EnemySpeed * l.SpeedMultiplier,
		SpawnRate:      time.Duration(float64(base.SpawnRate) * l.SpawnRateMultiplier),
		NumberRangeMax: min(base.NumberRangeMax, l.NumberRangeMax),
		Lives:          l.Lives,
	}
}

// Reset returns to the default level and forgets the stored choice.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = Normal
	if err := m.store.Delete(gameconfig.KeyDifficulty); err != nil {
		log.Printf("[Difficulty] Could not clear difficulty: %v\n", err)
	}
}
