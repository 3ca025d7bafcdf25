package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// DefaultSampleRate is used when the configuration does not name one.
const DefaultSampleRate = 44100

// ErrUnknownCue is returned for cues the synth has no recipe for.
var ErrUnknownCue = errors.New("unknown cue")

// Synth builds sound effects from oscillators and renders them to PCM.
// Rendered cues are cached.
type Synth struct {
	rate   beep.SampleRate
	volume float64
	cache  map[Cue][]byte
}

// NewSynth returns a synth producing audio at sampleRate with the given
// master volume in [0, 1].
func NewSynth(sampleRate int, volume float64) *Synth {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Synth{
		rate:   beep.SampleRate(sampleRate),
		volume: volume,
		cache:  make(map[Cue][]byte),
	}
}

// SampleRate returns the output sample rate.
func (s *Synth) SampleRate() int {
	return int(s.rate)
}

// Streamer returns a fresh streamer for cue.
func (s *Synth) Streamer(cue Cue) (beep.Streamer, error) {
	var (
		st  beep.Streamer
		err error
	)
	switch cue {
	case CueBounce:
		st, err = s.tone(generators.SquareTone, 440, 60*time.Millisecond, 2*time.Millisecond, 40*time.Millisecond)
	case CueScore:
		var a, b beep.Streamer
		if a, err = s.sine(660, 120*time.Millisecond); err != nil {
			break
		}
		if b, err = s.sine(880, 180*time.Millisecond); err != nil {
			break
		}
		st = beep.Seq(a, b)
	case CueShoot:
		st = s.sweep(1200, 300, 120*time.Millisecond)
	case CueExplode:
		st = s.noise(300*time.Millisecond, 5*time.Millisecond, 250*time.Millisecond)
	case CueHurt:
		st, err = s.tone(generators.SawtoothTone, 110, 220*time.Millisecond, 5*time.Millisecond, 150*time.Millisecond)
	case CueJump:
		st = s.sweep(300, 700, 120*time.Millisecond)
	case CueCoin:
		var a, b beep.Streamer
		if a, err = s.tone(generators.SquareTone, 987.77, 70*time.Millisecond, 2*time.Millisecond, 30*time.Millisecond); err != nil {
			break
		}
		if b, err = s.tone(generators.SquareTone, 1318.51, 180*time.Millisecond, 2*time.Millisecond, 150*time.Millisecond); err != nil {
			break
		}
		st = beep.Seq(a, b)
	case CueSelect:
		st, err = s.sine(1040, 50*time.Millisecond)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCue, cue)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", cue, err)
	}
	return volume(st, s.volume), nil
}

// Render returns cue as 16-bit little-endian stereo PCM.
func (s *Synth) Render(cue Cue) ([]byte, error) {
	if data, ok := s.cache[cue]; ok {
		return data, nil
	}
	st, err := s.Streamer(cue)
	if err != nil {
		return nil, err
	}

	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := st.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(v)))
			}
		}
		if !ok {
			break
		}
	}
	if err := st.Err(); err != nil {
		return nil, fmt.Errorf("render %s: %w", cue, err)
	}
	s.cache[cue] = out
	return out, nil
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}

// generator builds an endless tone, as the beep generators do.
type generator func(sr beep.SampleRate, freq float64) (beep.Streamer, error)

func (s *Synth) tone(gen generator, freq float64, d, attack, release time.Duration) (beep.Streamer, error) {
	st, err := gen(s.rate, freq)
	if err != nil {
		return nil, err
	}
	return newEnvelope(beep.Take(s.rate.N(d), st), d, attack, release, s.rate), nil
}

func (s *Synth) sine(freq float64, d time.Duration) (beep.Streamer, error) {
	return s.tone(generators.SineTone, freq, d, 2*time.Millisecond, d/2)
}

func (s *Synth) noise(d, attack, release time.Duration) beep.Streamer {
	return newEnvelope(newOscillator(0, d, waveNoise, s.rate), d, attack, release, s.rate)
}

func (s *Synth) sweep(from, to float64, d time.Duration) beep.Streamer {
	osc := newOscillator(from, d, waveSquare, s.rate)
	osc.sweepTo = to
	return newEnvelope(osc, d, 2*time.Millisecond, d/2, s.rate)
}

func volume(st beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: st, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: st, Base: 2, Volume: math.Log2(v)}
}

type waveType int

const (
	waveSquare waveType = iota
	waveNoise
)

// oscillator is a fixed-length square or noise source whose pitch may
// glide linearly to sweepTo. The beep generators hold a constant pitch and
// have no noise source.
type oscillator struct {
	freq     float64
	sweepTo  float64
	phase    float64
	position int
	duration int
	wave     waveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

func newOscillator(freq float64, d time.Duration, wave waveType, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:     freq,
		sweepTo:  freq,
		duration: rate.N(d),
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewPCG(1, 2)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		var val float64
		switch o.wave {
		case waveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case waveNoise:
			val = o.noise.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.sweepTo-o.freq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(st beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: st,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; remaining < e.release {
			gain = min(gain, float64(max(remaining, 0))/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
