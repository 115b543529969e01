package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"primehunt/internal/gameconfig"
	"primehunt/internal/numbers"
)

// Range buckets used for per-range accuracy.
const (
	RangeLow     = "2-30"
	RangeMid     = "31-60"
	RangeHigh    = "61-100"
	RangeHundred = "100+"
)

var Ranges = []string{RangeLow, RangeMid, RangeHigh, RangeHundred}

type RangeCount struct {
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}

type MissedNumber struct {
	Number  int   `json:"number"`
	Count   int   `json:"count"`
	Factors []int `json:"factors"`
}

// Session is a read-only snapshot of one game's counters.
type Session struct {
	ShotsFired          int            `json:"shotsFired"`
	CorrectHits         int            `json:"correctHits"`
	WrongHits           int            `json:"wrongHits"`
	MissedPrimes        int            `json:"missedPrimes"`
	Accuracy            int            `json:"accuracy"`
	CurrentStreak       int            `json:"currentStreak"`
	MaxStreak           int            `json:"maxStreak"`
	MaxCombo            int            `json:"maxCombo"`
	HintsUsed           int            `json:"hintsUsed"`
	PowerUpsCollected   int            `json:"powerUpsCollected"`
	PerfectWaves        int            `json:"perfectWaves"`
	GameDuration        string         `json:"gameDuration"`
	AverageResponseTime int64          `json:"averageResponseTime"`
	PrimesDestroyed     []int          `json:"primesDestroyed"`
	MostMissedNumbers   []MissedNumber `json:"mostMissedNumbers"`
	RangePerformance    map[string]int `json:"rangePerformance"`
}

// Tracker accumulates the counters of one game. It is owned by a single
// session goroutine.
type Tracker struct {
	clock    func() time.Duration
	lifetime *LifetimeStore

	shotsFired        int
	correctHits       int
	wrongHits         int
	missedPrimes      int
	currentStreak     int
	maxStreak         int
	currentCombo      int
	maxCombo          int
	hintsUsed         int
	powerUpsCollected int
	perfectWaves      int
	wavePerfect       bool

	primesDestroyed []int
	compositesHit   []int
	ranges          map[string]*RangeCount
	responseTimes   []time.Duration

	startedAt time.Duration
	endedAt   time.Duration
	ended     bool
}

// NewTracker returns a tracker reading game time from clock. lifetime may be
// nil, in which case EndGame only freezes the session.
func NewTracker(clock func() time.Duration, lifetime *LifetimeStore) *Tracker {
	t := &Tracker{clock: clock, lifetime: lifetime}
	t.Reset()
	return t
}

func (t *Tracker) Reset() {
	*t = Tracker{
		clock:       t.clock,
		lifetime:    t.lifetime,
		wavePerfect: true,
		ranges:      make(map[string]*RangeCount, len(Ranges)),
	}
	for _, r := range Ranges {
		t.ranges[r] = &RangeCount{}
	}
}

func (t *Tracker) StartGame() {
	t.Reset()
	t.startedAt = t.clock()
}

// EndGame freezes the session and merges it into the lifetime aggregate.
func (t *Tracker) EndGame(finalScore, waveReached int) Lifetime {
	t.endedAt = t.clock()
	t.ended = true
	if t.lifetime == nil {
		return Lifetime{}
	}
	return t.lifetime.Merge(GameResult{
		Score:       finalScore,
		Wave:        waveReached,
		CorrectHits: t.correctHits,
		ShotsFired:  t.shotsFired,
		MaxStreak:   t.maxStreak,
		Accuracy:    t.Accuracy(),
		PlayTime:    t.Duration(),
	})
}

func (t *Tracker) RecordShot() {
	t.shotsFired++
}

// RecordHit classifies n into its range bucket and updates streaks.
// responseTime is ignored when zero.
func (t *Tracker) RecordHit(n int, isPrime bool, responseTime time.Duration) {
	bucket := t.ranges[RangeOf(n)]
	if isPrime {
		t.correctHits++
		t.currentStreak++
		t.maxStreak = max(t.maxStreak, t.currentStreak)
		t.primesDestroyed = append(t.primesDestroyed, n)
		bucket.Correct++
		if responseTime > 0 {
			t.responseTimes = append(t.responseTimes, responseTime)
		}
		return
	}
	t.wrongHits++
	t.currentStreak = 0
	t.wavePerfect = false
	t.compositesHit = append(t.compositesHit, n)
	bucket.Wrong++
}

func (t *Tracker) RecordMissedPrime(n int) {
	t.missedPrimes++
	t.currentStreak = 0
	t.wavePerfect = false
}

func (t *Tracker) RecordCombo(n int) {
	t.currentCombo = n
	t.maxCombo = max(t.maxCombo, n)
}

func (t *Tracker) RecordHintUsed() {
	t.hintsUsed++
}

func (t *Tracker) RecordPowerUpCollected() {
	t.powerUpsCollected++
}

// RecordWaveComplete counts the wave as perfect when no composite was hit and
// no prime escaped since the previous call.
func (t *Tracker) RecordWaveComplete() {
	if t.wavePerfect {
		t.perfectWaves++
	}
	t.wavePerfect = true
}

// RangeOf returns the bucket label for n.
func RangeOf(n int) string {
	switch {
	case n <= 30:
		return RangeLow
	case n <= 60:
		return RangeMid
	case n <= 100:
		return RangeHigh
	default:
		return RangeHundred
	}
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func (t *Tracker) Accuracy() int {
	return percent(t.correctHits, t.shotsFired)
}

func (t *Tracker) AverageResponseTime() time.Duration {
	if len(t.responseTimes) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range t.responseTimes {
		sum += d
	}
	return (sum / time.Duration(len(t.responseTimes))).Round(time.Millisecond)
}

// Duration is the game length so far, or the final length after EndGame.
func (t *Tracker) Duration() time.Duration {
	if t.ended {
		return t.endedAt - t.startedAt
	}
	return t.clock() - t.startedAt
}

// FormattedDuration renders Duration as m:ss.
func (t *Tracker) FormattedDuration() string {
	secs := int(t.Duration() / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// MostMissedNumbers returns up to five composites hit most often, highest
// count first. Equal counts are ordered by number.
func (t *Tracker) MostMissedNumbers() []MissedNumber {
	counts := make(map[int]int)
	for _, n := range t.compositesHit {
		counts[n]++
	}
	out := make([]MissedNumber, 0, len(counts))
	for n, c := range counts {
		out = append(out, MissedNumber{Number: n, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Number < out[j].Number
	})
	if len(out) > 5 {
		out = out[:5]
	}
	for i := range out {
		out[i].Factors = numbers.Factors(out[i].Number)
	}
	return out
}

// RangeAccuracy returns the percentage of correct hits in a bucket.
func (t *Tracker) RangeAccuracy(bucket string) int {
	rc, ok := t.ranges[bucket]
	if !ok {
		return 0
	}
	return percent(rc.Correct, rc.Correct+rc.Wrong)
}

func (t *Tracker) RangeCounts(bucket string) RangeCount {
	if rc, ok := t.ranges[bucket]; ok {
		return *rc
	}
	return RangeCount{}
}

func (t *Tracker) Session() Session {
	rp := make(map[string]int, len(Ranges))
	for _, r := range Ranges {
		rp[r] = t.RangeAccuracy(r)
	}
	primes := make([]int, len(t.primesDestroyed))
	copy(primes, t.primesDestroyed)
	return Session{
		ShotsFired:          t.shotsFired,
		CorrectHits:         t.correctHits,
		WrongHits:           t.wrongHits,
		MissedPrimes:        t.missedPrimes,
		Accuracy:            t.Accuracy(),
		CurrentStreak:       t.currentStreak,
		MaxStreak:           t.maxStreak,
		MaxCombo:            t.maxCombo,
		HintsUsed:           t.hintsUsed,
		PowerUpsCollected:   t.powerUpsCollected,
		PerfectWaves:        t.perfectWaves,
		GameDuration:        t.FormattedDuration(),
		AverageResponseTime: t.AverageResponseTime().Milliseconds(),
		PrimesDestroyed:     primes,
		MostMissedNumbers:   t.MostMissedNumbers(),
		RangePerformance:    rp,
	}
}

func (t *Tracker) ShotsFired() int    { return t.shotsFired }
func (t *Tracker) CorrectHits() int   { return t.correctHits }
func (t *Tracker) WrongHits() int     { return t.wrongHits }
func (t *Tracker) MissedPrimes() int  { return t.missedPrimes }
func (t *Tracker) CurrentStreak() int { return t.currentStreak }
func (t *Tracker) MaxStreak() int     { return t.maxStreak }
func (t *Tracker) MaxCombo() int      { return t.maxCombo }
func (t *Tracker) HintsUsed() int     { return t.hintsUsed }
func (t *Tracker) PerfectWaves() int  { return t.perfectWaves }

// SpeedDemon reports at least twenty correct hits inside the first minute.
func (t *Tracker) SpeedDemon() bool {
	return t.correctHits >= gameconfig.SpeedDemonHits && t.Duration() < gameconfig.SpeedDemonTime
}

func (t *Tracker) SurvivorWin(livesRemaining int) bool {
	return livesRemaining == 1
}
