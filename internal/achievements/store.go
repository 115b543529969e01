package achievements

import (
	"log"
	"sync"

	"primehunt/internal/gameconfig"
	"primehunt/internal/kv"
)

// Store is the persisted unlock record shared by every session.
type Store struct {
	mu       sync.Mutex
	kv       kv.Store
	unlocked map[ID]bool
}

func NewStore(s kv.Store) *Store {
	st := &Store{kv: s, unlocked: make(map[ID]bool)}
	kv.LoadJSON(s, gameconfig.KeyAchievements, &st.unlocked)
	if st.unlocked == nil {
		st.unlocked = make(map[ID]bool)
	}
	return st
}

func (s *Store) IsUnlocked(id ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unlocked[id]
}

// Unlock marks id and persists the record. It returns false for unknown or
// already unlocked ids.
func (s *Store) Unlock(id ID) bool {
	if _, ok := All[id]; !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unlocked[id] {
		return false
	}
	s.unlocked[id] = true
	kv.SaveJSON(s.kv, gameconfig.KeyAchievements, s.unlocked)
	return true
}

func (s *Store) UnlockedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.unlocked {
		if v {
			n++
		}
	}
	return n
}

type Status struct {
	Achievement
	Unlocked bool `json:"unlocked"`
}

// List returns the catalog in display order with unlock flags.
func (s *Store) List() []Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Status, 0, len(Order))
	for _, id := range Order {
		out = append(out, Status{Achievement: All[id], Unlocked: s.unlocked[id]})
	}
	return out
}

// Reset clears every unlock. Used by the full data wipe.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unlocked = make(map[ID]bool)
	if err := s.kv.Delete(gameconfig.KeyAchievements); err != nil {
		log.Printf("[Store] Delete %s error: %v\n", gameconfig.KeyAchievements, err)
	}
}
