package game

import (
	"math/rand"
	"time"

	"primehunt/internal/achievements"
	"primehunt/internal/entities"
	"primehunt/internal/events"
	"primehunt/internal/gameconfig"
	"primehunt/internal/powerup"
	"primehunt/internal/scheduler"
	"primehunt/internal/sound"
	"primehunt/internal/stats"
)

// base holds what every mode shares: the ship, the enemy store, the score
// and the game-over bookkeeping.
type base struct {
	name   string
	board  string
	player string
	deps   Deps
	events *events.Dispatcher
	sched  *scheduler.Scheduler
	rng    *rand.Rand
	audio  *sound.Channel

	ship    *entities.Player
	enemies *entities.Enemies
	tracker *stats.Tracker

	score      int
	floorScore bool
	spawnTimer scheduler.Handle
	over       bool
	result     Result
}

func newBase(name, board, player string, deps Deps, lives int, lifetime *stats.LifetimeStore) base {
	if player == "" {
		player = "Player"
	}
	b := base{
		name:    name,
		board:   board,
		player:  player,
		deps:    deps,
		events:  deps.Events,
		sched:   deps.Sched,
		rng:     deps.Rng,
		ship:    entities.NewPlayer(deps.Sched, lives, gameconfig.MaxLives),
		enemies: entities.NewEnemies(deps.Rng),
		tracker: stats.NewTracker(deps.Sched.Now, lifetime),
	}
	if deps.Sound != nil {
		b.audio = deps.Sound.NewChannel()
	}
	return b
}

func (b *base) Name() string { return b.name }

func (b *base) Board() string { return b.board }

func (b *base) Over() bool { return b.over }

func (b *base) Result() Result { return b.result }

func (b *base) start() {
	b.tracker.StartGame()
	if b.audio == nil {
		return
	}
	if c, ok := b.audio.StartMusic(); ok {
		b.events.Emit(events.SoundCue, c)
	}
}

func (b *base) play(e sound.Event) {
	if b.audio == nil {
		return
	}
	if c, ok := b.audio.Cue(e); ok {
		b.events.Emit(events.SoundCue, c)
	}
}

func (b *base) stopMusic() {
	if b.audio != nil && b.audio.StopMusic() {
		b.events.Emit(events.SoundCue, sound.Cue{Event: sound.MusicStop})
	}
}

func (b *base) addScore(delta int) {
	b.score += delta
	if b.floorScore && b.score < 0 {
		b.score = 0
	}
	b.events.Emit(events.ScoreChanged, b.score)
}

func (b *base) shoot(now time.Duration) bool {
	if !b.ship.Shoot(now) {
		return false
	}
	b.tracker.RecordShot()
	b.play(sound.Shoot)
	return true
}

// spawn adds an enemy and announces it.
func (b *base) spawn(number int, speed float64) *entities.Enemy {
	e := b.enemies.Add(number, speed, b.sched.Now())
	b.events.Emit(events.EnemySpawned, e)
	return e
}

// loseLife applies one point of damage and reports whether the game is
// lost.
func (b *base) loseLife() bool {
	lives, blocked := b.ship.TakeDamage()
	if blocked {
		b.events.Emit(events.EffectEnded, Effect{Kind: powerup.Shield, SpeedFactor: b.ship.SpeedFactor()})
		return false
	}
	b.events.Emit(events.LivesChanged, lives)
	return lives <= 0
}

// finish ends the game once: it stops spawning, records the board entry and
// publishes GameOver. Achievements, when non-nil, contribute the newly
// unlocked list.
func (b *base) finish(wave int, completed bool, boardStats map[string]int, ach *achievements.Manager) {
	if b.over {
		return
	}
	b.over = true
	b.sched.Cancel(b.spawnTimer)
	b.stopMusic()
	b.play(sound.GameOver)

	b.result = Result{
		Mode:         b.board,
		Name:         b.player,
		Score:        b.score,
		Wave:         wave,
		Completed:    completed,
		CorrectHits:  b.tracker.CorrectHits(),
		WrongHits:    b.tracker.WrongHits(),
		ShotsFired:   b.tracker.ShotsFired(),
		SessionStats: b.tracker.Session(),
	}
	if ach != nil {
		b.result.NewAchievements = ach.NewlyUnlocked()
	}
	if lb := b.deps.Leaderboard; lb != nil && lb.IsHighScore(b.board, b.score) {
		b.result.Rank = lb.AddScore(b.board, b.player, b.score, boardStats)
	}
	b.events.Emit(events.GameOver, b.result)
}

func (b *base) baseSnapshot() Snapshot {
	return Snapshot{
		Mode:    b.board,
		Score:   b.score,
		Lives:   b.ship.Lives(),
		Enemies: b.enemies.Active(),
		Shield:  b.ship.HasShield(),
		Over:    b.over,
	}
}
