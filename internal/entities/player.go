package entities

import (
	"time"

	"primehunt/internal/gameconfig"
	"primehunt/internal/powerup"
	"primehunt/internal/scheduler"
)

type Player struct {
	sched      *scheduler.Scheduler
	startLives int
	maxLives   int
	lives      int
	fireRate   time.Duration
	nextFire   time.Duration
	fired      bool
	shield     bool
	effects    map[powerup.Kind]scheduler.Handle

	// OnExpire runs when a timed effect ends on its own.
	OnExpire func(powerup.Kind)
}

func NewPlayer(sched *scheduler.Scheduler, lives, maxLives int) *Player {
	return &Player{
		sched:      sched,
		startLives: lives,
		maxLives:   maxLives,
		lives:      min(lives, maxLives),
		fireRate:   gameconfig.PlayerFireRate,
		effects:    make(map[powerup.Kind]scheduler.Handle),
	}
}

func (p *Player) Lives() int { return p.lives }

func (p *Player) MaxLives() int { return p.maxLives }

func (p *Player) HasShield() bool { return p.shield }

func (p *Player) FireRate() time.Duration { return p.fireRate }

func (p *Player) Active(k powerup.Kind) bool {
	_, ok := p.effects[k]
	return ok
}

// Shoot reports whether the fire-rate gate allows a shot at now.
func (p *Player) Shoot(now time.Duration) bool {
	if p.fired && now < p.nextFire {
		return false
	}
	p.fired = true
	p.nextFire = now + p.fireRate
	return true
}

// TakeDamage removes a life unless a shield absorbs the hit.
func (p *Player) TakeDamage() (lives int, blocked bool) {
	if p.shield {
		p.shield = false
		return p.lives, true
	}
	if p.lives > 0 {
		p.lives--
	}
	return p.lives, false
}

// AddLife reports false when already at the cap.
func (p *Player) AddLife() bool {
	if p.lives >= p.maxLives {
		return false
	}
	p.lives++
	return true
}

// Activate applies a power-up. Timed kinds replace any running timer of
// the same kind.
func (p *Player) Activate(k powerup.Kind) {
	switch k {
	case powerup.Shield:
		p.shield = true
		return
	case powerup.LifeRestore:
		p.AddLife()
		return
	case powerup.RapidFire:
		p.fireRate = gameconfig.PlayerFireRate / gameconfig.RapidFireDivisor
	}
	if h, ok := p.effects[k]; ok {
		p.sched.Cancel(h)
	}
	p.effects[k] = p.sched.After(k.Info().Duration, func() {
		p.Deactivate(k)
		if p.OnExpire != nil {
			p.OnExpire(k)
		}
	})
}

// Deactivate reverts a timed effect. It reports false if it was not active.
func (p *Player) Deactivate(k powerup.Kind) bool {
	h, ok := p.effects[k]
	if !ok {
		return false
	}
	p.sched.Cancel(h)
	delete(p.effects, k)
	if k == powerup.RapidFire {
		p.fireRate = gameconfig.PlayerFireRate
	}
	return true
}

// Remaining is the time left on a timed effect.
func (p *Player) Remaining(k powerup.Kind) (time.Duration, bool) {
	h, ok := p.effects[k]
	if !ok {
		return 0, false
	}
	return p.sched.Remaining(h)
}

// SpeedFactor is the enemy speed multiplier under the active effects.
func (p *Player) SpeedFactor() float64 {
	switch {
	case p.Active(powerup.Freeze):
		return 0
	case p.Active(powerup.SlowMotion):
		return gameconfig.SlowMotionSpeedFactor
	}
	return 1
}

// ScoreFactor is the multiplier for correct-hit points.
func (p *Player) ScoreFactor() int {
	if p.Active(powerup.ScoreMultiplier) {
		return gameconfig.ScoreMultiplierFactor
	}
	return 1
}

func (p *Player) Reset() {
	for k, h := range p.effects {
		p.sched.Cancel(h)
		delete(p.effects, k)
	}
	p.lives = min(p.startLives, p.maxLives)
	p.shield = false
	p.fireRate = gameconfig.PlayerFireRate
	p.fired = false
	p.nextFire = 0
}
