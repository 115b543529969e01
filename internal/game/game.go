package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"primehunt/internal/achievements"
	"primehunt/internal/difficulty"
	"primehunt/internal/entities"
	"primehunt/internal/events"
	"primehunt/internal/leaderboard"
	"primehunt/internal/powerup"
	"primehunt/internal/scheduler"
	"primehunt/internal/sound"
	"primehunt/internal/stats"
)

const (
	ModeClassic    = leaderboard.ModeClassic
	ModeEndless    = leaderboard.ModeEndless
	ModeTimeAttack = leaderboard.ModeTimeAttack
	ModeChallenge  = "challenge"
)

var (
	ErrUnknownMode     = errors.New("unknown game mode")
	ErrUnknownCategory = errors.New("unknown challenge category")
)

// Client commands.
const (
	CmdShoot   = "shoot"
	CmdHit     = "hit"
	CmdEscape  = "escape"
	CmdCollect = "collect"
	CmdDrop    = "drop"
	CmdHint    = "hint"
	CmdPause   = "pause"
	CmdResume  = "resume"
	CmdQuit    = "quit"
)

// Command is one client report. ID names an enemy for hit/escape and a
// power-up for collect/drop.
type Command struct {
	Type string `json:"t"`
	ID   int    `json:"id,omitempty"`
}

// Mode is a playable game mode. All methods run on the owning session's
// goroutine; now is game time.
type Mode interface {
	Name() string
	Board() string
	Start(now time.Duration)
	Update(now time.Duration)
	Handle(cmd Command, now time.Duration)
	Over() bool
	Snapshot() Snapshot
	Result() Result
}

// Deps are the shared managers a mode reports to. Sound and Difficulty may
// be nil.
type Deps struct {
	Events       *events.Dispatcher
	Sched        *scheduler.Scheduler
	Rng          *rand.Rand
	Lifetime     *stats.LifetimeStore
	Achievements *achievements.Store
	Leaderboard  *leaderboard.Manager
	Difficulty   *difficulty.Manager
	Sound        *sound.Manager
}

type Options struct {
	Mode     string `json:"mode"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// New builds the mode named by opts.Mode.
func New(opts Options, deps Deps) (Mode, error) {
	switch opts.Mode {
	case ModeClassic, "":
		return NewClassic(opts.Name, deps), nil
	case ModeEndless:
		return NewEndless(opts.Name, deps), nil
	case ModeTimeAttack:
		return NewTimeAttack(opts.Name, deps), nil
	case ModeChallenge:
		return NewChallenge(opts.Name, opts.Category, deps)
	}
	return nil, fmt.Errorf("creating mode %q: %w", opts.Mode, ErrUnknownMode)
}

// Hit is the payload of CorrectHit, WrongHit and EnemyDestroyed.
type Hit struct {
	ID     int  `json:"id"`
	Number int  `json:"n"`
	Prime  bool `json:"prime"`
	Points int  `json:"points"`
}

// Escape is the payload of EnemyEscaped.
type Escape struct {
	ID     int  `json:"id"`
	Number int  `json:"n"`
	Prime  bool `json:"prime"`
}

type Combo struct {
	Count int `json:"count"`
	Bonus int `json:"bonus"`
}

// Effect is the payload of EffectStarted and EffectEnded.
type Effect struct {
	Kind        powerup.Kind  `json:"kind"`
	Duration    time.Duration `json:"duration,omitempty"`
	SpeedFactor float64       `json:"speedFactor"`
}

type Progress struct {
	Found    int  `json:"found"`
	Total    int  `json:"total"`
	Complete bool `json:"complete"`
	Bonus    int  `json:"bonus,omitempty"`
}

// Result summarises a finished game.
type Result struct {
	Mode            string                     `json:"mode"`
	Name            string                     `json:"name"`
	Score           int                        `json:"score"`
	Wave            int                        `json:"wave"`
	Completed       bool                       `json:"completed,omitempty"`
	CorrectHits     int                        `json:"correctHits"`
	WrongHits       int                        `json:"wrongHits"`
	ShotsFired      int                        `json:"shotsFired"`
	Rank            int                        `json:"rank"`
	SessionStats    stats.Session              `json:"sessionStats"`
	NewAchievements []achievements.Achievement `json:"newAchievements,omitempty"`
}

// Snapshot is the visible state of a running game.
type Snapshot struct {
	Mode           string            `json:"mode"`
	Score          int               `json:"score"`
	Lives          int               `json:"lives"`
	Wave           int               `json:"wave"`
	Combo          int               `json:"combo,omitempty"`
	Enemies        []*entities.Enemy `json:"enemies"`
	PowerUps       []powerup.Item    `json:"powerUps,omitempty"`
	Effects        map[string]int64  `json:"effects,omitempty"`
	Shield         bool              `json:"shield,omitempty"`
	HintsRemaining int               `json:"hintsRemaining,omitempty"`
	NextPowerUp    int               `json:"nextPowerUp,omitempty"`
	TimeRemaining  int64             `json:"timeRemaining,omitempty"`
	Progress       *Progress         `json:"progress,omitempty"`
	Over           bool              `json:"over"`
}

// Record is a finished game as kept in the archive.
type Record struct {
	ID          string    `json:"id" db:"id"`
	Mode        string    `json:"mode" db:"mode"`
	Name        string    `json:"name" db:"name"`
	Score       int       `json:"score" db:"score"`
	Wave        int       `json:"wave" db:"wave"`
	CorrectHits int       `json:"correctHits" db:"correct_hits"`
	WrongHits   int       `json:"wrongHits" db:"wrong_hits"`
	Completed   bool      `json:"completed" db:"completed"`
	PlayedAt    time.Time `json:"playedAt" db:"played_at"`
}

func NewRecord(id string, r Result, at time.Time) Record {
	return Record{
		ID:          id,
		Mode:        r.Mode,
		Name:        r.Name,
		Score:       r.Score,
		Wave:        r.Wave,
		CorrectHits: r.CorrectHits,
		WrongHits:   r.WrongHits,
		Completed:   r.Completed,
		PlayedAt:    at,
	}
}

// Summary aggregates archived games of one mode.
type Summary struct {
	Mode      string  `json:"mode" db:"mode"`
	Games     int     `json:"games" db:"games"`
	BestScore int     `json:"bestScore" db:"best_score"`
	AvgScore  float64 `json:"avgScore" db:"avg_score"`
}
