package sound

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"
)

const SampleRate = beep.SampleRate(44100)

// voice renders one Tone.
type voice struct {
	tone     Tone
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
	sweep    int
	attack   int
}

func newVoice(t Tone, rate beep.SampleRate) *voice {
	sweep := t.Sweep
	if sweep <= 0 {
		sweep = t.Duration
	}
	return &voice{
		tone:   t,
		rate:   rate,
		total:  rate.N(t.Duration),
		sweep:  max(rate.N(sweep), 1),
		attack: rate.N(t.Attack),
	}
}

func (v *voice) freq() float64 {
	t := v.tone
	f := t.StartHz
	if t.EndHz != t.StartHz && t.StartHz > 0 && t.EndHz > 0 {
		p := min(float64(v.position)/float64(v.sweep), 1)
		f = t.StartHz * math.Pow(t.EndHz/t.StartHz, p)
	}
	if t.VibratoHz > 0 {
		secs := float64(v.position) / float64(v.rate)
		f += t.VibratoDepth * math.Sin(2*math.Pi*t.VibratoHz*secs)
	}
	return f
}

func (v *voice) gain() float64 {
	t := v.tone
	if v.attack > 0 && v.position < v.attack {
		return t.Gain * float64(v.position) / float64(v.attack)
	}
	if t.Sustain || t.Gain <= gainFloor || v.total == 0 {
		return t.Gain
	}
	p := float64(v.position) / float64(v.total)
	return t.Gain * math.Pow(gainFloor/t.Gain, p)
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if v.position >= v.total {
			return i, i > 0
		}
		var val float64
		switch v.tone.Wave {
		case Square:
			if v.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case Saw:
			val = 2 * (v.phase - 0.5)
		default:
			val = math.Sin(2 * math.Pi * v.phase)
		}
		val *= v.gain()
		samples[i][0] = val
		samples[i][1] = val

		v.phase += v.freq() / float64(v.rate)
		v.phase -= math.Floor(v.phase)
		v.position++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

// Render mixes the tones of c into a single stream of c.Length().
func Render(c Cue, rate beep.SampleRate) beep.Streamer {
	voices := make([]beep.Streamer, 0, len(c.Tones))
	for _, t := range c.Tones {
		s := beep.Streamer(newVoice(t, rate))
		if t.Offset > 0 {
			s = beep.Seq(beep.Silence(rate.N(t.Offset)), s)
		}
		voices = append(voices, s)
	}
	return beep.Take(rate.N(c.Length()), beep.Mix(voices...))
}

// WithVolume scales a stream linearly. Zero or less is silent.
func WithVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// WriteWAV encodes c as 16-bit stereo PCM.
func WriteWAV(w io.WriteSeeker, c Cue, volume float64) error {
	format := beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(w, WithVolume(Render(c, SampleRate), volume), format); err != nil {
		return fmt.Errorf("encoding %s cue: %w", c.Event, err)
	}
	return nil
}

// Buffer is an in-memory io.WriteSeeker for WriteWAV.
type Buffer struct {
	data []byte
	pos  int
}

func (b *Buffer) Write(p []byte) (int, error) {
	if end := b.pos + len(p); end > len(b.data) {
		b.data = append(b.data, make([]byte, end-len(b.data))...)
	}
	n := copy(b.data[b.pos:], p)
	b.pos += n
	return n, nil
}

func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(b.pos) + offset
	case io.SeekEnd:
		abs = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("seek: invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("seek: negative position %d", abs)
	}
	b.pos = int(abs)
	return abs, nil
}

func (b *Buffer) Bytes() []byte {
	return b.data
}

// Duration of n samples at SampleRate.
func Duration(n int) time.Duration {
	return SampleRate.D(n)
}
