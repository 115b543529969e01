package stats

import (
	"log"
	"sync"
	"time"

	"primehunt/internal/gameconfig"
	"primehunt/internal/kv"
)

// Lifetime is the cross-session aggregate.
type Lifetime struct {
	TotalGames           int   `json:"totalGames"`
	TotalScore           int   `json:"totalScore"`
	HighScore            int   `json:"highScore"`
	TotalPrimesDestroyed int   `json:"totalPrimesDestroyed"`
	TotalShotsFired      int   `json:"totalShotsFired"`
	BestAccuracy         int   `json:"bestAccuracy"`
	HighestWave          int   `json:"highestWave"`
	LongestStreak        int   `json:"longestStreak"`
	TotalPlayTime        int64 `json:"totalPlayTime"` // milliseconds
}

// GameResult is what one finished game contributes to Lifetime.
type GameResult struct {
	Score       int
	Wave        int
	CorrectHits int
	ShotsFired  int
	MaxStreak   int
	Accuracy    int
	PlayTime    time.Duration
}

// LifetimeStore holds the persisted aggregate shared by every session.
type LifetimeStore struct {
	mu    sync.Mutex
	store kv.Store
	stats Lifetime
}

func NewLifetimeStore(store kv.Store) *LifetimeStore {
	ls := &LifetimeStore{store: store}
	kv.LoadJSON(store, gameconfig.KeyLifetimeStats, &ls.stats)
	return ls
}

func (ls *LifetimeStore) Get() Lifetime {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.stats
}

// Merge folds one game into the aggregate and persists it.
func (ls *LifetimeStore) Merge(r GameResult) Lifetime {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	s := &ls.stats
	s.TotalGames++
	s.TotalScore += r.Score
	s.HighScore = max(s.HighScore, r.Score)
	s.TotalPrimesDestroyed += r.CorrectHits
	s.TotalShotsFired += r.ShotsFired
	s.HighestWave = max(s.HighestWave, r.Wave)
	s.LongestStreak = max(s.LongestStreak, r.MaxStreak)
	s.TotalPlayTime += r.PlayTime.Milliseconds()
	s.BestAccuracy = max(s.BestAccuracy, r.Accuracy)
	kv.SaveJSON(ls.store, gameconfig.KeyLifetimeStats, ls.stats)
	return ls.stats
}

// Reset wipes the aggregate.
func (ls *LifetimeStore) Reset() {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.stats = Lifetime{}
	if err := ls.store.Delete(gameconfig.KeyLifetimeStats); err != nil {
		log.Printf("[Store] Delete %s error: %v\n", gameconfig.KeyLifetimeStats, err)
	}
}
