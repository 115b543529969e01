package hints

import (
	"fmt"
	"math/rand"
	"time"

	"primehunt/internal/gameconfig"
	"primehunt/internal/numbers"
)

// Hint is the payload of a HintShown event.
type Hint struct {
	Text      string        `json:"text"`
	Remaining int           `json:"remaining"`
	Display   time.Duration `json:"display"`
}

const (
	FeedbackWrongHit    = "wrong_hit"
	FeedbackMissedPrime = "missed_prime"
)

// Feedback is the payload of a Feedback event.
type Feedback struct {
	Kind   string `json:"kind"`
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// System tracks the per-wave hint budget and cooldown for one session.
type System struct {
	rng       *rand.Rand
	remaining int
	lastUsed  time.Duration
	used      bool
	wave      int
}

func New(rng *rand.Rand) *System {
	return &System{rng: rng, remaining: gameconfig.HintsPerWave, wave: 1}
}

func (s *System) ResetForWave(wave int) {
	s.remaining = gameconfig.HintsPerWave
	s.wave = wave
}

func (s *System) Remaining() int { return s.remaining }

func (s *System) Wave() int { return s.wave }

func (s *System) CanUse(now time.Duration) bool {
	if s.remaining <= 0 {
		return false
	}
	return !s.used || now-s.lastUsed > gameconfig.HintCooldown
}

// Request spends a hint if one is available. onScreen lists the numbers of
// active enemies in spawn order.
func (s *System) Request(now time.Duration, onScreen []int) (Hint, bool) {
	if !s.CanUse(now) {
		return Hint{}, false
	}
	s.remaining--
	s.lastUsed = now
	s.used = true
	return Hint{
		Text:      s.Generate(onScreen),
		Remaining: s.remaining,
		Display:   gameconfig.HintDisplay,
	}, true
}

func (s *System) Generate(onScreen []int) string {
	if len(onScreen) == 0 {
		return s.PrimeFact()
	}
	for _, n := range onScreen {
		if numbers.IsPrime(n) {
			return s.PrimeHint(n)
		}
	}
	return s.CompositeHint(onScreen[0])
}

func (s *System) PrimeHint(n int) string {
	switch n {
	case 2:
		return "2 is the ONLY even prime number!"
	case 3:
		return "3 is prime - it's only divisible by 1 and 3."
	}
	options := []string{
		fmt.Sprintf("%d is prime! It's only divisible by 1 and itself.", n),
		fmt.Sprintf("Shoot %d! Check: no even division by 2, 3, 5, or 7.", n),
		fmt.Sprintf("%d is prime - try dividing by small primes to verify.", n),
	}
	switch n % 10 {
	case 1, 3, 7, 9:
		options = append(options, fmt.Sprintf("%d ends in %d - could be prime! Check divisibility.", n, n%10))
	}
	return options[s.rng.Intn(len(options))]
}

func (s *System) CompositeHint(n int) string {
	f := numbers.FactorizationString(n)
	options := []string{
		fmt.Sprintf("%d is NOT prime. %s", n, f),
		fmt.Sprintf("Don't shoot %d! It's composite: %s", n, f),
		fmt.Sprintf("Skip %d - it can be factored: %s", n, f),
	}
	if n%2 == 0 {
		options = append(options, fmt.Sprintf("%d is even, so it's divisible by 2. Not prime!", n))
	}
	if n%5 == 0 && n != 5 {
		options = append(options, fmt.Sprintf("%d ends in 0 or 5, so it's divisible by 5.", n))
	}
	if digitSum(n)%3 == 0 {
		options = append(options, fmt.Sprintf("%d's digits sum to a multiple of 3, so it's divisible by 3.", n))
	}
	return options[s.rng.Intn(len(options))]
}

func (s *System) PrimeFact() string {
	return gameconfig.PrimeFacts[s.rng.Intn(len(gameconfig.PrimeFacts))]
}

func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

func WrongHit(n int) Feedback {
	return Feedback{
		Kind:   FeedbackWrongHit,
		Number: n,
		Text:   fmt.Sprintf("%d was composite! %s", n, numbers.FactorizationString(n)),
	}
}

func MissedPrime(n int) Feedback {
	return Feedback{
		Kind:   FeedbackMissedPrime,
		Number: n,
		Text:   fmt.Sprintf("Missed prime %d! Remember: only divisible by 1 and %d", n, n),
	}
}
