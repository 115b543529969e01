package sound

import (
	"log"
	"sync"

	"primehunt/internal/gameconfig"
	"primehunt/internal/kv"
)

const (
	keySoundEnabled = "soundEnabled"
	keyMusicEnabled = "musicEnabled"
	keySoundVolume  = "soundVolume"
	keyMusicVolume  = "musicVolume"
)

type Settings struct {
	SoundEnabled bool    `json:"soundEnabled"`
	MusicEnabled bool    `json:"musicEnabled"`
	SoundVolume  float64 `json:"soundVolume"`
	MusicVolume  float64 `json:"musicVolume"`
}

func DefaultSettings() Settings {
	return Settings{
		SoundEnabled: true,
		MusicEnabled: true,
		SoundVolume:  gameconfig.DefaultSoundVolume,
		MusicVolume:  gameconfig.DefaultMusicVolume,
	}
}

// Manager owns the persisted sound settings and turns game events into
// tone cues.
type Manager struct {
	mu       sync.Mutex
	store    kv.Store
	settings Settings
}

func NewManager(store kv.Store) *Manager {
	m := &Manager{store: store, settings: DefaultSettings()}
	kv.LoadJSON(store, gameconfig.KeySoundPrefix+keySoundEnabled, &m.settings.SoundEnabled)
	kv.LoadJSON(store, gameconfig.KeySoundPrefix+keyMusicEnabled, &m.settings.MusicEnabled)
	kv.LoadJSON(store, gameconfig.KeySoundPrefix+keySoundVolume, &m.settings.SoundVolume)
	kv.LoadJSON(store, gameconfig.KeySoundPrefix+keyMusicVolume, &m.settings.MusicVolume)
	m.settings.SoundVolume = clamp(m.settings.SoundVolume)
	m.settings.MusicVolume = clamp(m.settings.MusicVolume)
	return m
}

func clamp(v float64) float64 {
	return max(0, min(1, v))
}

func (m *Manager) save(key string, v any) {
	kv.SaveJSON(m.store, gameconfig.KeySoundPrefix+key, v)
}

func (m *Manager) Settings() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

func (m *Manager) SetSoundEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.SoundEnabled = enabled
	m.save(keySoundEnabled, enabled)
}

func (m *Manager) SetMusicEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.MusicEnabled = enabled
	m.save(keyMusicEnabled, enabled)
}

// Update applies every field of s.
func (m *Manager) Update(s Settings) Settings {
	m.SetSoundEnabled(s.SoundEnabled)
	m.SetMusicEnabled(s.MusicEnabled)
	m.SetSoundVolume(s.SoundVolume)
	m.SetMusicVolume(s.MusicVolume)
	return m.Settings()
}

// Reset restores defaults and removes the stored keys.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = DefaultSettings()
	for _, k := range []string{keySoundEnabled, keyMusicEnabled, keySoundVolume, keyMusicVolume} {
		if err := m.store.Delete(gameconfig.KeySoundPrefix + k); err != nil {
			log.Printf("[Store] Delete %s error: %v\n", gameconfig.KeySoundPrefix+k, err)
		}
	}
}

// Cue returns the tones for event scaled by the sound volume. It reports
// false when sound is off or the event has no cue.
func (m *Manager) Cue(event Event) (Cue, bool) {
	s := m.Settings()
	if !s.SoundEnabled {
		return Cue{}, false
	}
	c, ok := cueFor(event)
	if !ok {
		return Cue{}, false
	}
	return c.Scaled(s.SoundVolume), true
}

// Music returns the background drone scaled by the music volume. It reports
// false when music is off.
func (m *Manager) Music() (Cue, bool) {
	s := m.Settings()
	if !s.MusicEnabled {
		return Cue{}, false
	}
	return musicCue().Scaled(s.MusicVolume * musicMaster), true
}

// Channel is one session's view of the shared settings. It tracks whether
// that session's music is playing.
type Channel struct {
	m     *Manager
	music bool
}

func (m *Manager) NewChannel() *Channel {
	return &Channel{m: m}
}

func (c *Channel) Cue(event Event) (Cue, bool) {
	return c.m.Cue(event)
}

// StartMusic returns the drone unless music is off or already playing.
func (c *Channel) StartMusic() (Cue, bool) {
	if c.MusicPlaying() {
		return Cue{}, false
	}
	cue, ok := c.m.Music()
	c.music = ok
	return cue, ok
}

// StopMusic reports whether music was playing.
func (c *Channel) StopMusic() bool {
	was := c.MusicPlaying()
	c.music = false
	return was
}

// MusicPlaying is false once music is disabled in the settings.
func (c *Channel) MusicPlaying() bool {
	return c.music && c.m.Settings().MusicEnabled
}
