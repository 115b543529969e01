package gameconfig

import "time"

// Player
const (
	PlayerFireRate = 250 * time.Millisecond
	StartingLives  = 3
	MaxLives       = 5
)

// Scoring
const (
	ScoreCorrectHit = 10
	ScoreWrongHit   = -5
	ComboThreshold  = 3
	ComboTimeout    = 3 * time.Second
	ComboBonusStep  = 5
)

// Waves
const (
	NumberRangeMin          = 2
	NumberRangeBaseMax      = 30
	NumberRangeStep         = 10
	NumberRangeHardCap      = 200
	EnemyBaseSpeed          = 80.0
	EnemySpeedStep          = 10.0
	EnemyBaseSpawnRate      = 2000 * time.Millisecond
	EnemySpawnRateStep      = 100 * time.Millisecond
	EnemyMinSpawnRate       = 800 * time.Millisecond
	MaxSimultaneousEnemies  = 5
	SimultaneousEnemiesCap  = 8
	EnemiesPerWaveBase      = 15
	EnemiesPerWaveIncrement = 5
	WaveClearBonus          = 50
	NextWaveDelay           = 3 * time.Second
)

// Playfield, in client pixels.
const (
	FieldWidth       = 800
	FieldHeight      = 600
	EnemyMargin      = 50
	PowerUpFallSpeed = 100.0
)

// Power-ups
const (
	PowerUpThresholdUnit    = 10
	RapidFireDivisor        = 2
	ScoreMultiplierFactor   = 2
	SlowMotionSpeedFactor   = 0.5
	SlowMotionDuration      = 5 * time.Second
	PrimeVisionDuration     = 3 * time.Second
	RapidFireDuration       = 5 * time.Second
	ScoreMultiplierDuration = 10 * time.Second
	FreezeDuration          = 3 * time.Second
)

// Hints and notifications
const (
	HintsPerWave         = 3
	HintCooldown         = 5 * time.Second
	HintDisplay          = 4 * time.Second
	AchievementToastIn   = 500 * time.Millisecond
	AchievementToastHold = 2500 * time.Millisecond
	AchievementToastOut  = 500 * time.Millisecond
)

// Time attack
const (
	TimeAttackDuration   = 60 * time.Second
	TimeAttackBonus      = 500 * time.Millisecond
	TimeAttackPenalty    = 2 * time.Second
	TimeAttackSpawnRate  = 1000 * time.Millisecond
	TimeAttackNumberMax  = 100
	TimeAttackEnemySpeed = 120.0
)

// Endless
const (
	EndlessLives           = 5
	EndlessLifeRestoreHits = 50
	EndlessHitsPerWave     = 20
	EndlessDifficultyRamp  = 0.05
)

// Challenge
const (
	ChallengeLives         = 3
	ChallengeSpawnRate     = 2000 * time.Millisecond
	ChallengeEnemySpeed    = 80.0
	ChallengeTargetChance  = 0.7
	ChallengeDecoyMargin   = 10
	ChallengeHitScore      = 20
	ChallengeLifeBonus     = 100
	ChallengeCompleteDelay = 3 * time.Second
	ChallengeLargePrimeMin = 100
	ChallengeLargePrimeMax = 200
)

// Settings
const (
	MaxLeaderboardEntries = 10
	DefaultSoundVolume    = 0.5
	DefaultMusicVolume    = 0.3
)

// Achievement thresholds
const (
	AccuracyMasterThreshold = 90
	AccuracyMasterMinShots  = 10
	SpeedDemonHits          = 20
	SpeedDemonTime          = 60 * time.Second
	PerfectionistWaves      = 3
	PrimeExpertStreak       = 10
	WaveMasterWave          = 10
	MathematicianScore      = 1000
	ComboKingCombo          = 5
	NoHintsMinWave          = 3
)

// PowerUpFibonacci drives the power-up score thresholds.
var PowerUpFibonacci = []int{1, 1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144, 233}

var TwinPrimes = [][2]int{
	{3, 5}, {5, 7}, {11, 13}, {17, 19}, {29, 31}, {41, 43}, {59, 61}, {71, 73},
	{101, 103}, {107, 109}, {137, 139}, {149, 151}, {179, 181}, {191, 193}, {197, 199},
}

var MersennePrimes = []int{3, 7, 31, 127}

var FibonacciPrimes = []int{2, 3, 5, 13, 89}

var SmallPrimes = []int{2, 3, 5, 7, 11, 13, 17, 19}

var PrimeFacts = []string{
	"2 is the only even prime number!",
	"1 is not considered a prime number.",
	"Every number greater than 1 is either prime or can be factored into primes.",
	"The largest known prime has over 24 million digits!",
	"There are infinitely many prime numbers.",
	"Twin primes are pairs like (3,5), (11,13), (17,19).",
	"A prime number has exactly two factors: 1 and itself.",
	"The number 0 and 1 are neither prime nor composite.",
	"Mersenne primes are primes of the form 2^n - 1.",
	"The prime numbers under 30 are: 2, 3, 5, 7, 11, 13, 17, 19, 23, 29.",
}

// Persisted keys.
const (
	KeyLifetimeStats = "primeHuntLifetimeStats"
	KeyAchievements  = "primeHuntAchievements"
	KeyLeaderboards  = "primeHunt_leaderboards"
	KeyDifficulty    = "primeHunt_difficulty"
	KeySoundPrefix   = "primeHunt_sound_"
)
