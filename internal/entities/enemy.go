package entities

import (
	"math/rand"
	"slices"
	"time"

	"primehunt/internal/gameconfig"
	"primehunt/internal/numbers"
)

// Enemy is a numbered ship. The client moves it down the field at Speed
// pixels per second and reports a hit or an escape by ID.
type Enemy struct {
	ID        int           `json:"id"`
	Number    int           `json:"n"`
	Prime     bool          `json:"-"`
	X         int           `json:"x"`
	Y         int           `json:"y"`
	Speed     float64       `json:"speed"`
	SpawnedAt time.Duration `json:"-"`
}

// Enemies holds the live enemies of one game. It is owned by the session
// goroutine; snapshots hand out copies.
type Enemies struct {
	rng     *rand.Rand
	enemies map[int]*Enemy
	nextID  int
}

func NewEnemies(rng *rand.Rand) *Enemies {
	return &Enemies{
		rng:     rng,
		enemies: make(map[int]*Enemy),
		nextID:  1,
	}
}

// Add places a new enemy at a random column above the field.
func (s *Enemies) Add(number int, speed float64, now time.Duration) *Enemy {
	id := s.nextID
	s.nextID++
	e := &Enemy{
		ID:        id,
		Number:    number,
		Prime:     numbers.IsPrime(number),
		X:         numbers.RandomInt(s.rng, gameconfig.EnemyMargin, gameconfig.FieldWidth-gameconfig.EnemyMargin),
		Y:         -gameconfig.EnemyMargin,
		Speed:     speed,
		SpawnedAt: now,
	}
	s.enemies[id] = e
	return e
}

func (s *Enemies) Get(id int) *Enemy {
	return s.enemies[id]
}

// Kill removes an enemy. It reports false for unknown or already killed
// enemies so a hit is never counted twice.
func (s *Enemies) Kill(id int) (*Enemy, bool) {
	e, ok := s.enemies[id]
	if !ok {
		return nil, false
	}
	delete(s.enemies, id)
	return e, true
}

// Active returns live enemies in spawn order.
func (s *Enemies) Active() []*Enemy {
	list := make([]*Enemy, 0, len(s.enemies))
	for _, e := range s.enemies {
		list = append(list, e)
	}
	slices.SortFunc(list, func(a, b *Enemy) int { return a.ID - b.ID })
	return list
}

func (s *Enemies) ActiveNumbers() []int {
	active := s.Active()
	out := make([]int, len(active))
	for i, e := range active {
		out[i] = e.Number
	}
	return out
}

func (s *Enemies) ActiveCount() int {
	return len(s.enemies)
}

func (s *Enemies) Clear() {
	s.enemies = make(map[int]*Enemy)
	s.nextID = 1
}
