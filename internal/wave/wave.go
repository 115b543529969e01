package wave

import (
	"time"

	"primehunt/internal/events"
	"primehunt/internal/gameconfig"
	"primehunt/internal/scheduler"
)

// Profile is the difficulty of one wave.
type Profile struct {
	NumberRangeMax      int           `json:"numberRangeMax"`
	EnemySpeed          float64       `json:"enemySpeed"`
	SpawnRate           time.Duration `json:"spawnRate"`
	SimultaneousEnemies int           `json:"simultaneousEnemies"`
}

type State struct {
	CurrentWave      int  `json:"currentWave"`
	EnemiesSpawned   int  `json:"enemiesSpawned"`
	EnemiesDestroyed int  `json:"enemiesDestroyed"`
	EnemiesToSpawn   int  `json:"enemiesToSpawn"`
	InProgress       bool `json:"inProgress"`
	Complete         bool `json:"complete"`
}

// Info summarises the wave for display.
type Info struct {
	Wave             int     `json:"wave"`
	EnemiesRemaining int     `json:"enemiesRemaining"`
	TotalEnemies     int     `json:"totalEnemies"`
	Difficulty       Profile `json:"difficulty"`
}

// Completed is the payload of events.WaveCompleted.
type Completed struct {
	Wave  int `json:"wave"`
	Bonus int `json:"bonus"`
}

// Tuning scales the base profile. Zero fields leave the base untouched.
type Tuning struct {
	SpeedMultiplier     float64
	SpawnRateMultiplier float64
	NumberRangeMax      int
}

// Difficulty computes the base profile for wave (1-based).
func Difficulty(wave int) Profile {
	step := max(wave, 1) - 1
	return Profile{
		NumberRangeMax:      min(gameconfig.NumberRangeBaseMax+step*gameconfig.NumberRangeStep, gameconfig.NumberRangeHardCap),
		EnemySpeed:          gameconfig.EnemyBaseSpeed + float64(step)*gameconfig.EnemySpeedStep,
		SpawnRate:           max(gameconfig.EnemyBaseSpawnRate-time.Duration(step)*gameconfig.EnemySpawnRateStep, gameconfig.EnemyMinSpawnRate),
		SimultaneousEnemies: min(gameconfig.MaxSimultaneousEnemies+step/2, gameconfig.SimultaneousEnemiesCap),
	}
}

// EnemiesFor returns the spawn quota of wave.
func EnemiesFor(wave int) int {
	return gameconfig.EnemiesPerWaveBase + (max(wave, 1)-1)*gameconfig.EnemiesPerWaveIncrement
}

// Apply scales p by t.
func (t Tuning) Apply(p Profile) Profile {
	if t.SpeedMultiplier > 0 {
		p.EnemySpeed *= t.SpeedMultiplier
	}
	if t.SpawnRateMultiplier > 0 {
		p.SpawnRate = time.Duration(float64(p.SpawnRate) * t.SpawnRateMultiplier)
	}
	if t.NumberRangeMax > 0 {
		p.NumberRangeMax = min(p.NumberRangeMax, t.NumberRangeMax)
	}
	return p
}

// Manager runs the wave state machine. The spawn callback is invoked by a
// repeating scheduler task while the wave still has enemies to spawn.
type Manager struct {
	sched  *scheduler.Scheduler
	events *events.Dispatcher
	spawn  func()
	tuning Tuning

	state      State
	spawnTimer scheduler.Handle
	nextTimer  scheduler.Handle
}

func NewManager(sched *scheduler.Scheduler, d *events.Dispatcher, spawn func()) *Manager {
	return &Manager{
		sched:  sched,
		events: d,
		spawn:  spawn,
		state: State{
			CurrentWave:    1,
			EnemiesToSpawn: gameconfig.EnemiesPerWaveBase,
		},
	}
}

func (m *Manager) SetTuning(t Tuning) {
	m.tuning = t
}

// Profile returns the tuned difficulty of the current wave.
func (m *Manager) Profile() Profile {
	return m.tuning.Apply(Difficulty(m.state.CurrentWave))
}

func (m *Manager) State() State {
	return m.state
}

func (m *Manager) CurrentWave() int {
	return m.state.CurrentWave
}

// StartWave resets the per-wave counters and replaces the spawn trigger.
func (m *Manager) StartWave() {
	m.state.InProgress = true
	m.state.Complete = false
	m.state.EnemiesSpawned = 0
	m.state.EnemiesDestroyed = 0
	m.state.EnemiesToSpawn = EnemiesFor(m.state.CurrentWave)

	m.sched.Cancel(m.spawnTimer)
	m.spawnTimer = m.sched.Every(m.Profile().SpawnRate, m.spawn)

	m.events.Emit(events.WaveStarted, m.Info())
}

func (m *Manager) EnemySpawned() {
	m.state.EnemiesSpawned++
	if m.state.EnemiesSpawned >= m.state.EnemiesToSpawn {
		m.sched.Cancel(m.spawnTimer)
	}
}

// EnemyDestroyed counts a destroyed or escaped enemy. The count never
// exceeds the number spawned.
func (m *Manager) EnemyDestroyed() {
	if m.state.EnemiesDestroyed < m.state.EnemiesSpawned {
		m.state.EnemiesDestroyed++
	}
}

func (m *Manager) CanSpawn() bool {
	return m.state.InProgress && m.state.EnemiesSpawned < m.state.EnemiesToSpawn
}

// CheckWaveComplete awards the clear bonus and schedules the next wave once
// every enemy of the wave has been spawned and destroyed.
func (m *Manager) CheckWaveComplete() (int, bool) {
	if m.state.Complete || !m.state.InProgress {
		return 0, false
	}
	if m.state.EnemiesSpawned < m.state.EnemiesToSpawn || m.state.EnemiesDestroyed < m.state.EnemiesToSpawn {
		return 0, false
	}
	m.state.Complete = true
	m.state.InProgress = false
	m.events.Emit(events.WaveCompleted, Completed{Wave: m.state.CurrentWave, Bonus: gameconfig.WaveClearBonus})
	m.nextTimer = m.sched.After(gameconfig.NextWaveDelay, m.NextWave)
	return gameconfig.WaveClearBonus, true
}

// NextWave advances to the following wave and starts it.
func (m *Manager) NextWave() {
	m.sched.Cancel(m.nextTimer)
	m.events.Emit(events.WaveAdvanced, m.state.CurrentWave+1)
	m.state.CurrentWave++
	m.StartWave()
}

// Stop cancels the pending spawn and next-wave timers.
func (m *Manager) Stop() {
	m.sched.Cancel(m.spawnTimer)
	m.sched.Cancel(m.nextTimer)
	m.state.InProgress = false
}

func (m *Manager) Info() Info {
	return Info{
		Wave:             m.state.CurrentWave,
		EnemiesRemaining: m.state.EnemiesToSpawn - m.state.EnemiesDestroyed,
		TotalEnemies:     m.state.EnemiesToSpawn,
		Difficulty:       m.Profile(),
	}
}
