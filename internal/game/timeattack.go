package game

import (
	"time"

	"primehunt/internal/events"
	"primehunt/internal/gameconfig"
	"primehunt/internal/numbers"
	"primehunt/internal/sound"
)

// TimeAttack runs against a clock that correct hits extend and wrong hits
// shorten.
type TimeAttack struct {
	base
	startedAt time.Duration
	remaining time.Duration
	lastShown int64
}

func NewTimeAttack(player string, deps Deps) *TimeAttack {
	t := &TimeAttack{
		base:      newBase(ModeTimeAttack, ModeTimeAttack, player, deps, gameconfig.StartingLives, nil),
		remaining: gameconfig.TimeAttackDuration,
		lastShown: -1,
	}
	t.floorScore = true
	return t
}

func (t *TimeAttack) Start(now time.Duration) {
	t.sched.Advance(now)
	t.start()
	t.startedAt = now
	t.spawnTimer = t.sched.Every(gameconfig.TimeAttackSpawnRate, t.spawnEnemy)
	t.emitTimer(true)
}

func (t *TimeAttack) spawnEnemy() {
	if t.over {
		return
	}
	t.spawn(numbers.RandomInt(t.rng, gameconfig.NumberRangeMin, gameconfig.TimeAttackNumberMax), gameconfig.TimeAttackEnemySpeed)
}

// Remaining computes the time budget left at now.
func (t *TimeAttack) Remaining(now time.Duration) time.Duration {
	return gameconfig.TimeAttackDuration - (now - t.startedAt) +
		time.Duration(t.tracker.CorrectHits())*gameconfig.TimeAttackBonus -
		time.Duration(t.tracker.WrongHits())*gameconfig.TimeAttackPenalty
}

func (t *TimeAttack) Handle(cmd Command, now time.Duration) {
	if t.over {
		return
	}
	switch cmd.Type {
	case CmdShoot:
		t.shoot(now)
	case CmdHit:
		t.hitEnemy(cmd.ID, now)
	case CmdEscape:
		if en, ok := t.enemies.Kill(cmd.ID); ok {
			t.events.Emit(events.EnemyEscaped, Escape{ID: en.ID, Number: en.Number, Prime: en.Prime})
		}
	case CmdQuit:
		t.gameOver()
	}
}

func (t *TimeAttack) hitEnemy(id int, now time.Duration) {
	en, ok := t.enemies.Kill(id)
	if !ok {
		return
	}
	t.tracker.RecordHit(en.Number, en.Prime, now-en.SpawnedAt)
	if en.Prime {
		t.play(sound.Correct)
		t.events.Emit(events.CorrectHit, Hit{ID: en.ID, Number: en.Number, Prime: true, Points: gameconfig.ScoreCorrectHit})
		t.addScore(gameconfig.ScoreCorrectHit)
	} else {
		t.play(sound.Wrong)
		t.events.Emit(events.WrongHit, Hit{ID: en.ID, Number: en.Number, Points: gameconfig.ScoreWrongHit})
		t.addScore(gameconfig.ScoreWrongHit)
	}
	t.remaining = t.Remaining(now)
	t.emitTimer(true)
}

// emitTimer publishes the budget when its whole-second display changes.
func (t *TimeAttack) emitTimer(force bool) {
	secs := int64((max(t.remaining, 0) + time.Second - 1) / time.Second)
	if !force && secs == t.lastShown {
		return
	}
	t.lastShown = secs
	t.events.Emit(events.TimerChanged, max(t.remaining, 0))
}

func (t *TimeAttack) Update(now time.Duration) {
	t.sched.Advance(now)
	if t.over {
		return
	}
	t.remaining = t.Remaining(now)
	if t.remaining <= 0 {
		t.remaining = 0
		t.emitTimer(true)
		t.gameOver()
		return
	}
	t.emitTimer(false)
}

func (t *TimeAttack) gameOver() {
	t.tracker.EndGame(t.score, 0)
	t.finish(0, false, map[string]int{
		"correctHits": t.tracker.CorrectHits(),
		"wrongHits":   t.tracker.WrongHits(),
	}, nil)
}

func (t *TimeAttack) Snapshot() Snapshot {
	s := t.baseSnapshot()
	s.TimeRemaining = max(t.remaining, 0).Milliseconds()
	return s
}
