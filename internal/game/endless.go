package game

import (
	"time"

	"primehunt/internal/events"
	"primehunt/internal/gameconfig"
	"primehunt/internal/hints"
	"primehunt/internal/numbers"
	"primehunt/internal/sound"
	"primehunt/internal/wave"
)

// Endless has no wave quota: every twenty correct hits raise the wave and
// every fifty restore a life.
type Endless struct {
	base
	wave int
}

func NewEndless(player string, deps Deps) *Endless {
	e := &Endless{
		base: newBase(ModeEndless, ModeEndless, player, deps, gameconfig.EndlessLives, nil),
		wave: 1,
	}
	e.floorScore = true
	return e
}

// Ramp is the difficulty multiplier of wave.
func Ramp(wave int) float64 {
	return 1 + float64(max(wave, 1)-1)*gameconfig.EndlessDifficultyRamp
}

// EndlessProfile derives the spawn parameters of an endless wave.
func EndlessProfile(w int) wave.Profile {
	r := Ramp(w)
	return wave.Profile{
		NumberRangeMax: min(gameconfig.NumberRangeBaseMax+w*gameconfig.NumberRangeStep, gameconfig.NumberRangeHardCap),
		EnemySpeed:     gameconfig.EnemyBaseSpeed * r,
		SpawnRate:      max(gameconfig.EnemyMinSpawnRate, time.Duration(float64(gameconfig.EnemyBaseSpawnRate)/r)),
	}
}

func (e *Endless) Start(now time.Duration) {
	e.sched.Advance(now)
	e.start()
	e.events.Emit(events.LivesChanged, e.ship.Lives())
	e.startSpawning()
}

func (e *Endless) startSpawning() {
	e.sched.Cancel(e.spawnTimer)
	e.spawnTimer = e.sched.Every(EndlessProfile(e.wave).SpawnRate, e.spawnEnemy)
	e.events.Emit(events.WaveStarted, wave.Info{Wave: e.wave, Difficulty: EndlessProfile(e.wave)})
}

func (e *Endless) spawnEnemy() {
	if e.over {
		return
	}
	p := EndlessProfile(e.wave)
	e.spawn(numbers.RandomInt(e.rng, gameconfig.NumberRangeMin, p.NumberRangeMax), p.EnemySpeed)
}

func (e *Endless) Handle(cmd Command, now time.Duration) {
	if e.over {
		return
	}
	switch cmd.Type {
	case CmdShoot:
		e.shoot(now)
	case CmdHit:
		e.hitEnemy(cmd.ID, now)
	case CmdEscape:
		e.escapeEnemy(cmd.ID)
	case CmdQuit:
		e.gameOver()
	}
}

func (e *Endless) hitEnemy(id int, now time.Duration) {
	en, ok := e.enemies.Kill(id)
	if !ok {
		return
	}
	e.tracker.RecordHit(en.Number, en.Prime, now-en.SpawnedAt)
	if !en.Prime {
		e.play(sound.Wrong)
		e.events.Emit(events.WrongHit, Hit{ID: en.ID, Number: en.Number, Points: gameconfig.ScoreWrongHit})
		e.addScore(gameconfig.ScoreWrongHit)
		e.events.Emit(events.Feedback, hints.WrongHit(en.Number))
		if e.loseLife() {
			e.gameOver()
		}
		return
	}

	e.play(sound.Correct)
	e.events.Emit(events.CorrectHit, Hit{ID: en.ID, Number: en.Number, Prime: true, Points: gameconfig.ScoreCorrectHit})
	e.addScore(gameconfig.ScoreCorrectHit)
	hits := e.tracker.CorrectHits()
	if hits%gameconfig.EndlessLifeRestoreHits == 0 && e.ship.AddLife() {
		e.events.Emit(events.LivesChanged, e.ship.Lives())
	}
	if hits%gameconfig.EndlessHitsPerWave == 0 {
		e.events.Emit(events.WaveAdvanced, e.wave+1)
		e.wave++
		e.startSpawning()
	}
}

func (e *Endless) escapeEnemy(id int) {
	en, ok := e.enemies.Kill(id)
	if !ok {
		return
	}
	e.events.Emit(events.EnemyEscaped, Escape{ID: en.ID, Number: en.Number, Prime: en.Prime})
	if en.Prime {
		e.tracker.RecordMissedPrime(en.Number)
		if e.loseLife() {
			e.gameOver()
		}
	}
}

func (e *Endless) Update(now time.Duration) {
	e.sched.Advance(now)
}

func (e *Endless) gameOver() {
	e.tracker.EndGame(e.score, e.wave)
	e.finish(e.wave, false, map[string]int{
		"waves":       e.wave,
		"correctHits": e.tracker.CorrectHits(),
	}, nil)
}

func (e *Endless) Snapshot() Snapshot {
	s := e.baseSnapshot()
	s.Wave = e.wave
	return s
}
