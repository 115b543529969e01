package entities

import (
	"testing"
	"time"

	"primehunt/internal/gameconfig"
	"primehunt/internal/powerup"
	"primehunt/internal/scheduler"
)

func TestShootFireRate(t *testing.T) {
	p := NewPlayer(scheduler.New(), 3, 5)

	if !p.Shoot(0) {
		t.Fatal("first shot should fire")
	}
	if p.Shoot(100 * time.Millisecond) {
		t.Error("shot inside fire rate should be refused")
	}
	if !p.Shoot(250 * time.Millisecond) {
		t.Error("shot at fire rate should fire")
	}
}

func TestShieldBlocksOneHit(t *testing.T) {
	p := NewPlayer(scheduler.New(), 3, 5)
	p.Activate(powerup.Shield)

	lives, blocked := p.TakeDamage()
	if !blocked || lives != 3 {
		t.Errorf("TakeDamage = %d, %v; want 3, true", lives, blocked)
	}
	lives, blocked = p.TakeDamage()
	if blocked || lives != 2 {
		t.Errorf("TakeDamage = %d, %v; want 2, false", lives, blocked)
	}
}

func TestLivesFloorAndCap(t *testing.T) {
	p := NewPlayer(scheduler.New(), 1, 2)
	p.TakeDamage()
	if lives, _ := p.TakeDamage(); lives != 0 {
		t.Errorf("lives = %d, want 0", lives)
	}
	p.Activate(powerup.LifeRestore)
	p.Activate(powerup.LifeRestore)
	p.Activate(powerup.LifeRestore)
	if p.Lives() != 2 {
		t.Errorf("lives = %d, want cap 2", p.Lives())
	}
}

func TestTimedEffectExpires(t *testing.T) {
	sched := scheduler.New()
	p := NewPlayer(sched, 3, 5)
	var expired []powerup.Kind
	p.OnExpire = func(k powerup.Kind) { expired = append(expired, k) }

	p.Activate(powerup.RapidFire)
	if p.FireRate() != gameconfig.PlayerFireRate/2 {
		t.Errorf("FireRate = %v, want %v", p.FireRate(), gameconfig.PlayerFireRate/2)
	}
	sched.Advance(gameconfig.RapidFireDuration)
	if p.Active(powerup.RapidFire) {
		t.Error("RapidFire should have expired")
	}
	if p.FireRate() != gameconfig.PlayerFireRate {
		t.Errorf("FireRate = %v, want %v", p.FireRate(), gameconfig.PlayerFireRate)
	}
	if len(expired) != 1 || expired[0] != powerup.RapidFire {
		t.Errorf("expired = %v, want [RapidFire]", expired)
	}
}

func TestReactivateReplacesTimer(t *testing.T) {
	sched := scheduler.New()
	p := NewPlayer(sched, 3, 5)

	p.Activate(powerup.Freeze)
	sched.Advance(2 * time.Second)
	p.Activate(powerup.Freeze)
	sched.Advance(4 * time.Second)
	if !p.Active(powerup.Freeze) {
		t.Fatal("Freeze should still be active after re-activation")
	}
	if f := p.SpeedFactor(); f != 0 {
		t.Errorf("SpeedFactor = %v, want 0", f)
	}
	if rem, _ := p.Remaining(powerup.Freeze); rem != time.Second {
		t.Errorf("Remaining = %v, want 1s", rem)
	}
	sched.Advance(5 * time.Second)
	if p.Active(powerup.Freeze) {
		t.Error("Freeze should have expired")
	}
}

func TestScoreFactorAndReset(t *testing.T) {
	sched := scheduler.New()
	p := NewPlayer(sched, 3, 5)
	p.Activate(powerup.ScoreMultiplier)
	p.Activate(powerup.Shield)
	p.TakeDamage()
	p.TakeDamage()
	if p.ScoreFactor() != 2 {
		t.Errorf("ScoreFactor = %d, want 2", p.ScoreFactor())
	}

	p.Reset()
	if p.ScoreFactor() != 1 || p.HasShield() || p.Lives() != 3 {
		t.Errorf("after Reset: factor %d shield %v lives %d", p.ScoreFactor(), p.HasShield(), p.Lives())
	}
	if sched.Len() != 0 {
		t.Errorf("scheduler Len = %d, want 0 after Reset", sched.Len())
	}
}
