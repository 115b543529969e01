package sound

import "time"

type Event string

const (
	Shoot        Event = "shoot"
	Correct      Event = "correct"
	Wrong        Event = "wrong"
	PowerUp      Event = "powerup"
	Combo        Event = "combo"
	GameOver     Event = "gameover"
	WaveComplete Event = "wavecomplete"
	MusicStart   Event = "music"
	MusicStop    Event = "music_stop"
)

var Events = []Event{Shoot, Correct, Wrong, PowerUp, Combo, GameOver, WaveComplete}

type Wave int

const (
	Sine Wave = iota
	Square
	Saw
)

func (w Wave) String() string {
	switch w {
	case Square:
		return "square"
	case Saw:
		return "sawtooth"
	default:
		return "sine"
	}
}

func (w Wave) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// Tone is one oscillator voice. Frequency sweeps exponentially from StartHz
// to EndHz over Sweep (or the whole Duration when Sweep is zero); gain decays
// exponentially from Gain to a floor over Duration after an optional linear
// Attack.
type Tone struct {
	Wave         Wave          `json:"wave"`
	StartHz      float64       `json:"startHz"`
	EndHz        float64       `json:"endHz"`
	Offset       time.Duration `json:"offset"`
	Duration     time.Duration `json:"duration"`
	Sweep        time.Duration `json:"sweep,omitempty"`
	Attack       time.Duration `json:"attack,omitempty"`
	Gain         float64       `json:"gain"`
	Sustain      bool          `json:"sustain,omitempty"`
	VibratoHz    float64       `json:"vibratoHz,omitempty"`
	VibratoDepth float64       `json:"vibratoDepth,omitempty"`
}

type Cue struct {
	Event Event  `json:"event"`
	Loop  bool   `json:"loop,omitempty"`
	Tones []Tone `json:"tones"`
}

const (
	gainFloor   = 0.01
	musicMaster = 0.15
)

// Length is the time until the last tone stops.
func (c Cue) Length() time.Duration {
	var end time.Duration
	for _, t := range c.Tones {
		end = max(end, t.Offset+t.Duration)
	}
	return end
}

// Scaled returns a copy with every gain multiplied by v.
func (c Cue) Scaled(v float64) Cue {
	out := Cue{Event: c.Event, Loop: c.Loop, Tones: make([]Tone, len(c.Tones))}
	for i, t := range c.Tones {
		t.Gain *= v
		out.Tones[i] = t
	}
	return out
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func notes(wave Wave, freqs []float64, spacing, length time.Duration, gain float64, attack time.Duration) []Tone {
	tones := make([]Tone, len(freqs))
	for i, f := range freqs {
		tones[i] = Tone{Wave: wave, StartHz: f, EndHz: f, Offset: time.Duration(i) * spacing, Duration: length, Gain: gain, Attack: attack}
	}
	return tones
}

func cueFor(e Event) (Cue, bool) {
	var tones []Tone
	switch e {
	case Shoot:
		tones = []Tone{{Wave: Square, StartHz: 880, EndHz: 220, Duration: ms(100), Gain: 0.3}}
	case Correct:
		tones = []Tone{{Wave: Sine, StartHz: 440, EndHz: 880, Duration: ms(200), Sweep: ms(150), Gain: 0.4}}
	case Wrong:
		tones = []Tone{{Wave: Saw, StartHz: 300, EndHz: 100, Duration: ms(300), Gain: 0.4}}
	case PowerUp:
		tones = notes(Sine, []float64{523.25, 659.25, 783.99, 1046.50}, ms(80), ms(150), 0.3, ms(20))
	case Combo:
		tones = []Tone{
			{Wave: Sine, StartHz: 523.25, EndHz: 1046.50, Duration: ms(300), Sweep: ms(200), Gain: 0.3},
			{Wave: Sine, StartHz: 659.25, EndHz: 1318.51, Duration: ms(300), Sweep: ms(200), Gain: 0.3},
		}
	case GameOver:
		tones = notes(Sine, []float64{392, 349.23, 329.63, 261.63}, ms(250), ms(300), 0.4, 0)
	case WaveComplete:
		tones = notes(Square, []float64{523.25, 659.25, 783.99, 1046.50, 1318.51}, ms(100), ms(200), 0.2, 0)
	default:
		return Cue{}, false
	}
	return Cue{Event: e, Tones: tones}, true
}

// musicCue is one loop period of the background drone.
func musicCue() Cue {
	loop := 10 * time.Second
	return Cue{
		Event: MusicStart,
		Loop:  true,
		Tones: []Tone{
			{Wave: Sine, StartHz: 55, EndHz: 55, Duration: loop, Gain: 0.5, Sustain: true},
			{Wave: Sine, StartHz: 220, EndHz: 220, Duration: loop, Gain: 0.3, Sustain: true, VibratoHz: 0.1, VibratoDepth: 10},
			{Wave: Sine, StartHz: 880, EndHz: 880, Duration: loop, Gain: 0.1, Sustain: true},
		},
	}
}

// Lookup returns the unscaled cue for an event name, including the music
// drone.
func Lookup(name string) (Cue, bool) {
	if Event(name) == MusicStart {
		return musicCue(), true
	}
	return cueFor(Event(name))
}
