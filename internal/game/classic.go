package game

import (
	"time"

	"primehunt/internal/achievements"
	"primehunt/internal/difficulty"
	"primehunt/internal/events"
	"primehunt/internal/gameconfig"
	"primehunt/internal/hints"
	"primehunt/internal/numbers"
	"primehunt/internal/powerup"
	"primehunt/internal/sound"
	"primehunt/internal/wave"
)

// Classic is the wave-based mode with power-ups, hints, combos and
// achievements.
type Classic struct {
	base
	waves        *wave.Manager
	powerups     *powerup.Manager
	hints        *hints.System
	achievements *achievements.Manager

	combo       int
	lastHit     time.Duration
	hitRecorded bool
}

func NewClassic(player string, deps Deps) *Classic {
	level := difficulty.Levels[difficulty.Normal]
	if deps.Difficulty != nil {
		level = deps.Difficulty.Config()
	}
	c := &Classic{
		base:     newBase(ModeClassic, ModeClassic, player, deps, level.Lives, deps.Lifetime),
		powerups: powerup.NewManager(deps.Rng),
		hints:    hints.New(deps.Rng),
	}
	c.waves = wave.NewManager(deps.Sched, deps.Events, c.spawnEnemy)
	c.waves.SetTuning(wave.Tuning{
		SpeedMultiplier:     level.SpeedMultiplier,
		SpawnRateMultiplier: level.SpawnRateMultiplier,
		NumberRangeMax:      level.NumberRangeMax,
	})
	if deps.Achievements != nil {
		c.achievements = achievements.NewManager(deps.Achievements, deps.Sched, deps.Events)
	}
	c.ship.OnExpire = func(k powerup.Kind) {
		c.events.Emit(events.EffectEnded, Effect{Kind: k, SpeedFactor: c.ship.SpeedFactor()})
	}
	c.events.Subscribe(events.WaveAdvanced, func(ev events.Event) {
		next, _ := ev.Data.(int)
		c.tracker.RecordWaveComplete()
		c.hints.ResetForWave(next)
	})
	return c
}

func (c *Classic) Start(now time.Duration) {
	c.sched.Advance(now)
	c.start()
	c.events.Emit(events.LivesChanged, c.ship.Lives())
	c.waves.StartWave()
}

func (c *Classic) spawnEnemy() {
	if c.over || !c.waves.CanSpawn() {
		return
	}
	p := c.waves.Profile()
	if c.enemies.ActiveCount() >= p.SimultaneousEnemies {
		return
	}
	c.spawn(numbers.RandomInt(c.rng, gameconfig.NumberRangeMin, p.NumberRangeMax), p.EnemySpeed)
	c.waves.EnemySpawned()
}

func (c *Classic) Handle(cmd Command, now time.Duration) {
	if c.over {
		return
	}
	switch cmd.Type {
	case CmdShoot:
		c.shoot(now)
	case CmdHit:
		c.hitEnemy(cmd.ID, now)
	case CmdEscape:
		c.escapeEnemy(cmd.ID)
	case CmdCollect:
		c.collect(cmd.ID)
	case CmdDrop:
		c.powerups.Discard(cmd.ID)
	case CmdHint:
		c.hint(now)
	case CmdQuit:
		c.gameOver()
	}
}

func (c *Classic) hitEnemy(id int, now time.Duration) {
	e, ok := c.enemies.Kill(id)
	if !ok {
		return
	}
	c.tracker.RecordHit(e.Number, e.Prime, now-e.SpawnedAt)

	if e.Prime {
		points := gameconfig.ScoreCorrectHit * c.ship.ScoreFactor()
		c.play(sound.Correct)
		c.events.Emit(events.CorrectHit, Hit{ID: e.ID, Number: e.Number, Prime: true, Points: points})
		c.addScore(points)
		c.updateCombo(now)

		if item, ok := c.powerups.CheckForPowerUpSpawn(c.score); ok {
			c.events.Emit(events.PowerUpSpawned, item)
		}
		if c.achievements != nil {
			c.achievements.Check(c.tracker, c.waves.CurrentWave(), c.ship.Lives(), c.score)
		}
	} else {
		c.play(sound.Wrong)
		c.events.Emit(events.WrongHit, Hit{ID: e.ID, Number: e.Number, Points: gameconfig.ScoreWrongHit})
		c.addScore(gameconfig.ScoreWrongHit)
		if c.combo != 0 {
			c.combo = 0
			c.events.Emit(events.ComboChanged, Combo{})
		}
		c.events.Emit(events.Feedback, hints.WrongHit(e.Number))
		if c.loseLife() {
			c.gameOver()
			return
		}
	}

	c.waves.EnemyDestroyed()
	c.events.Emit(events.EnemyDestroyed, Hit{ID: e.ID, Number: e.Number, Prime: e.Prime})
}

// updateCombo extends the combo when the previous correct hit was inside
// the combo window, otherwise starts a new one.
func (c *Classic) updateCombo(now time.Duration) {
	if c.hitRecorded && now-c.lastHit < gameconfig.ComboTimeout {
		c.combo++
		c.tracker.RecordCombo(c.combo)
		bonus := 0
		if c.combo >= gameconfig.ComboThreshold {
			bonus = c.combo * gameconfig.ComboBonusStep
			c.play(sound.Combo)
		}
		c.events.Emit(events.ComboChanged, Combo{Count: c.combo, Bonus: bonus})
		if bonus > 0 {
			c.addScore(bonus)
		}
	} else {
		c.combo = 1
	}
	c.lastHit = now
	c.hitRecorded = true
}

func (c *Classic) escapeEnemy(id int) {
	e, ok := c.enemies.Kill(id)
	if !ok {
		return
	}
	c.events.Emit(events.EnemyEscaped, Escape{ID: e.ID, Number: e.Number, Prime: e.Prime})
	if e.Prime {
		c.tracker.RecordMissedPrime(e.Number)
		c.events.Emit(events.Feedback, hints.MissedPrime(e.Number))
		if c.loseLife() {
			c.gameOver()
			return
		}
	}
	c.waves.EnemyDestroyed()
}

func (c *Classic) collect(id int) {
	item, ok := c.powerups.Collect(id)
	if !ok {
		return
	}
	c.ship.Activate(item.Kind)
	c.tracker.RecordPowerUpCollected()
	c.play(sound.PowerUp)
	c.events.Emit(events.PowerUpCollected, *item)

	if item.Kind == powerup.LifeRestore {
		c.events.Emit(events.LivesChanged, c.ship.Lives())
		return
	}
	c.events.Emit(events.EffectStarted, Effect{
		Kind:        item.Kind,
		Duration:    item.Kind.Info().Duration,
		SpeedFactor: c.ship.SpeedFactor(),
	})
}

func (c *Classic) hint(now time.Duration) {
	h, ok := c.hints.Request(now, c.enemies.ActiveNumbers())
	if !ok {
		return
	}
	c.tracker.RecordHintUsed()
	c.events.Emit(events.HintShown, h)
}

func (c *Classic) Update(now time.Duration) {
	c.sched.Advance(now)
	if c.over {
		return
	}
	if bonus, ok := c.waves.CheckWaveComplete(); ok {
		c.play(sound.WaveComplete)
		c.addScore(bonus)
	}
}

func (c *Classic) gameOver() {
	if c.over {
		return
	}
	c.waves.Stop()
	w := c.waves.CurrentWave()
	c.tracker.EndGame(c.score, w)
	if c.achievements != nil {
		c.achievements.CheckEndGame(c.tracker, w, c.ship.Lives(), c.score)
	}
	c.finish(w, false, map[string]int{
		"wave":        w,
		"accuracy":    c.tracker.Accuracy(),
		"correctHits": c.tracker.CorrectHits(),
	}, c.achievements)
}

func (c *Classic) Snapshot() Snapshot {
	s := c.baseSnapshot()
	s.Wave = c.waves.CurrentWave()
	s.Combo = c.combo
	s.PowerUps = c.powerups.Items()
	s.HintsRemaining = c.hints.Remaining()
	s.NextPowerUp, _ = c.powerups.Info()
	s.Effects = make(map[string]int64)
	for _, k := range powerup.Kinds {
		if rem, ok := c.ship.Remaining(k); ok {
			s.Effects[k.String()] = rem.Milliseconds()
		}
	}
	return s
}

// Waves exposes the wave state for inspection.
func (c *Classic) Waves() wave.State {
	return c.waves.State()
}
