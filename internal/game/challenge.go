package game

import (
	"fmt"
	"slices"
	"time"

	"primehunt/internal/events"
	"primehunt/internal/gameconfig"
	"primehunt/internal/hints"
	"primehunt/internal/numbers"
	"primehunt/internal/sound"
)

// Category is a themed set of target primes.
type Category struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Primes      []int  `json:"primes"`
}

// Categories lists the challenges in menu order. Targets are unique and
// ascending.
var Categories = []Category{
	{Key: "twin_primes", Name: "Twin Primes", Description: "Find pairs that differ by 2", Primes: twinPrimeTargets()},
	{Key: "mersenne_primes", Name: "Mersenne Primes", Description: "Primes of form 2^n - 1", Primes: gameconfig.MersennePrimes},
	{Key: "small_primes", Name: "Small Primes", Description: "Master primes under 20", Primes: gameconfig.SmallPrimes},
	{Key: "large_primes", Name: "Large Primes", Description: "Primes from 100-200", Primes: numbers.PrimesInRange(gameconfig.ChallengeLargePrimeMin, gameconfig.ChallengeLargePrimeMax)},
	{Key: "fibonacci_primes", Name: "Fibonacci Primes", Description: "Primes in Fibonacci sequence", Primes: gameconfig.FibonacciPrimes},
}

func twinPrimeTargets() []int {
	var out []int
	for _, pair := range gameconfig.TwinPrimes {
		out = append(out, pair[0], pair[1])
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func LookupCategory(key string) (Category, bool) {
	for _, c := range Categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// Challenge asks the player to shoot every prime of one category.
type Challenge struct {
	base
	category Category
	targets  map[int]bool
	found    map[int]bool
	playing  bool
	lo, hi   int
}

func NewChallenge(player, category string, deps Deps) (*Challenge, error) {
	cat, ok := LookupCategory(category)
	if !ok {
		return nil, fmt.Errorf("creating challenge %q: %w", category, ErrUnknownCategory)
	}
	c := &Challenge{
		base:     newBase(ModeChallenge, "challenge_"+cat.Key, player, deps, gameconfig.ChallengeLives, nil),
		category: cat,
		targets:  make(map[int]bool, len(cat.Primes)),
		found:    make(map[int]bool),
	}
	c.floorScore = true
	for _, p := range cat.Primes {
		c.targets[p] = true
	}
	c.lo = max(gameconfig.NumberRangeMin, slices.Min(cat.Primes)-gameconfig.ChallengeDecoyMargin)
	c.hi = slices.Max(cat.Primes) + gameconfig.ChallengeDecoyMargin
	return c, nil
}

func (c *Challenge) Category() Category { return c.category }

func (c *Challenge) Start(now time.Duration) {
	c.sched.Advance(now)
	c.start()
	c.playing = true
	c.events.Emit(events.LivesChanged, c.ship.Lives())
	c.spawnTimer = c.sched.Every(gameconfig.ChallengeSpawnRate, c.spawnEnemy)
	c.events.Emit(events.ChallengeProgress, c.progress(0))
}

// spawnEnemy sends a target prime most of the time and otherwise a
// composite decoy near the target range.
func (c *Challenge) spawnEnemy() {
	if !c.playing {
		return
	}
	var n int
	if c.rng.Float64() < gameconfig.ChallengeTargetChance {
		n = c.category.Primes[c.rng.Intn(len(c.category.Primes))]
	} else {
		n = c.decoy()
	}
	c.spawn(n, gameconfig.ChallengeEnemySpeed)
}

func (c *Challenge) decoy() int {
	for {
		n := numbers.RandomInt(c.rng, c.lo, c.hi)
		if !numbers.IsPrime(n) {
			return n
		}
	}
}

func (c *Challenge) Handle(cmd Command, now time.Duration) {
	if c.over {
		return
	}
	switch cmd.Type {
	case CmdShoot:
		c.shoot(now)
	case CmdHit:
		if c.playing {
			c.hitEnemy(cmd.ID, now)
		}
	case CmdEscape:
		if en, ok := c.enemies.Kill(cmd.ID); ok {
			c.events.Emit(events.EnemyEscaped, Escape{ID: en.ID, Number: en.Number, Prime: en.Prime})
		}
	case CmdQuit:
		c.gameOver(false)
	}
}

func (c *Challenge) hitEnemy(id int, now time.Duration) {
	en, ok := c.enemies.Kill(id)
	if !ok {
		return
	}
	target := c.targets[en.Number]
	c.tracker.RecordHit(en.Number, target, now-en.SpawnedAt)

	if !target {
		c.play(sound.Wrong)
		c.events.Emit(events.WrongHit, Hit{ID: en.ID, Number: en.Number, Prime: en.Prime, Points: gameconfig.ScoreWrongHit})
		c.addScore(gameconfig.ScoreWrongHit)
		c.events.Emit(events.Feedback, hints.WrongHit(en.Number))
		if c.loseLife() {
			c.gameOver(false)
		}
		return
	}

	c.found[en.Number] = true
	c.play(sound.Correct)
	c.events.Emit(events.CorrectHit, Hit{ID: en.ID, Number: en.Number, Prime: true, Points: gameconfig.ChallengeHitScore})
	c.addScore(gameconfig.ChallengeHitScore)
	if len(c.found) < len(c.targets) {
		c.events.Emit(events.ChallengeProgress, c.progress(0))
		return
	}

	c.playing = false
	c.sched.Cancel(c.spawnTimer)
	bonus := c.ship.Lives() * gameconfig.ChallengeLifeBonus
	c.addScore(bonus)
	c.play(sound.WaveComplete)
	c.events.Emit(events.ChallengeProgress, c.progress(bonus))
	c.sched.After(gameconfig.ChallengeCompleteDelay, func() { c.gameOver(true) })
}

func (c *Challenge) progress(bonus int) Progress {
	return Progress{
		Found:    len(c.found),
		Total:    len(c.targets),
		Complete: len(c.found) >= len(c.targets),
		Bonus:    bonus,
	}
}

func (c *Challenge) Update(now time.Duration) {
	c.sched.Advance(now)
}

func (c *Challenge) gameOver(completed bool) {
	c.playing = false
	c.tracker.EndGame(c.score, 0)
	c.finish(0, completed, nil, nil)
}

func (c *Challenge) Snapshot() Snapshot {
	s := c.baseSnapshot()
	p := c.progress(0)
	s.Progress = &p
	return s
}
