package audio

import (
	"math/rand"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/alert-fx/constant"
)

// Cue names a synthesized sound
type Cue string

const (
	CueNone         Cue = ""
	CueFollow       Cue = "follow"
	CueSubscription Cue = "subscription"
	CueDonation     Cue = "donation"
	CueBits         Cue = "bits"
	CueRaid         Cue = "raid"
)

// Cues lists every playable cue
var Cues = []Cue{CueFollow, CueSubscription, CueDonation, CueBits, CueRaid}

// voice is one scheduled tone or noise hit inside a cue
type voice struct {
	at    time.Duration
	dur   time.Duration
	freq  float64
	wave  WaveType
	gain  float64
	noise bool
}

func toneAt(at, dur time.Duration, freq float64, wave WaveType, gain float64) voice {
	return voice{at: at, dur: dur, freq: freq, wave: wave, gain: gain}
}

func noiseAt(at, dur time.Duration, gain float64) voice {
	return voice{at: at, dur: dur, gain: gain, noise: true}
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// score returns the voices of c; random sparkle pitches come from rng
func score(c Cue, rng *rand.Rand) []voice {
	switch c {
	case CueFollow:
		return []voice{
			toneAt(0, ms(150), 880, WaveSine, 0.3),
			toneAt(ms(100), ms(200), 1318.5, WaveSine, 0.4),
			toneAt(ms(50), ms(100), 2637, WaveSine, 0.15),
		}

	case CueSubscription:
		return []voice{
			toneAt(0, ms(300), 523.25, WaveSine, 0.35),
			toneAt(ms(80), ms(300), 659.25, WaveSine, 0.35),
			toneAt(ms(160), ms(350), 783.99, WaveSine, 0.4),
			toneAt(ms(240), ms(400), 1046.5, WaveSine, 0.45),
			toneAt(ms(200), ms(150), 2093, WaveSine, 0.12),
			toneAt(ms(250), ms(150), 2637, WaveSine, 0.1),
			toneAt(0, ms(200), 65.41, WaveSine, 0.5),
		}

	case CueDonation:
		v := []voice{
			noiseAt(0, ms(80), 0.6),
			toneAt(0, ms(300), 55, WaveSine, 0.7),
			toneAt(0, ms(250), 110, WaveSine, 0.5),
			toneAt(ms(100), ms(400), 329.63, WaveSaw, 0.25),
			toneAt(ms(100), ms(400), 415.30, WaveSaw, 0.25),
			toneAt(ms(100), ms(400), 493.88, WaveSaw, 0.25),
			toneAt(ms(200), ms(250), 659.25, WaveSine, 0.4),
			toneAt(ms(350), ms(250), 783.99, WaveSine, 0.4),
			toneAt(ms(500), ms(500), 987.77, WaveSine, 0.5),
		}
		for i := 0; i < 6; i++ {
			v = append(v, toneAt(ms(300+i*50), ms(100), 1500+rng.Float64()*2000, WaveSine, 0.08))
		}
		return append(v,
			toneAt(ms(700), ms(800), 987.77, WaveSine, 0.15),
			toneAt(ms(750), ms(700), 659.25, WaveSine, 0.1),
		)

	case CueBits:
		var v []voice
		for i, f := range []float64{2200, 2000, 1800, 2000, 2200, 2400, 2800} {
			v = append(v, toneAt(ms(i*60), ms(80), f, WaveSquare, 0.15))
		}
		v = append(v,
			toneAt(ms(200), ms(300), 1396.91, WaveSine, 0.3),
			toneAt(ms(300), ms(350), 1760, WaveSine, 0.35),
			toneAt(ms(400), ms(400), 2093, WaveSine, 0.4),
		)
		for i := 0; i < 8; i++ {
			v = append(v, toneAt(ms(200+i*40), ms(60), 2000+rng.Float64()*2500, WaveSine, 0.1))
		}
		return append(v, toneAt(ms(100), ms(150), 80, WaveSine, 0.4))

	case CueRaid:
		v := []voice{
			toneAt(0, ms(600), 146.83, WaveSaw, 0.35),
			toneAt(0, ms(600), 220, WaveSaw, 0.3),
			toneAt(ms(50), ms(550), 293.66, WaveSaw, 0.25),
			toneAt(ms(400), ms(300), 293.66, WaveSaw, 0.3),
			toneAt(ms(500), ms(300), 369.99, WaveSaw, 0.35),
			toneAt(ms(600), ms(500), 440, WaveSaw, 0.4),
			noiseAt(ms(100), ms(100), 0.5),
			toneAt(ms(100), ms(200), 60, WaveSine, 0.6),
			noiseAt(ms(350), ms(80), 0.35),
			toneAt(ms(350), ms(150), 55, WaveSine, 0.5),
		}
		for i := 0; i < 5; i++ {
			v = append(v, toneAt(ms(800+i*50), ms(100), 1200+float64(i)*200, WaveSine, 0.15))
		}
		return v
	}
	return nil
}

// Build renders cue c as one finite streamer scaled by master
// Returns nil for unknown cues
func Build(c Cue, rate beep.SampleRate, master float64, rng *rand.Rand) beep.Streamer {
	voices := score(c, rng)
	if len(voices) == 0 {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(voices))
	var total int
	for _, v := range voices {
		var s beep.Streamer
		length := v.at + v.dur
		if v.noise {
			s = noise(v.dur, v.gain, rate, rng)
		} else {
			s = tone(v.freq, v.dur, v.wave, v.gain, rate)
			length += constant.ToneTail
		}
		total = max(total, rate.N(v.at)+rate.N(length-v.at))
		if v.at > 0 {
			s = beep.Seq(beep.Silence(rate.N(v.at)), s)
		}
		parts = append(parts, s)
	}
	return newVolume(beep.Take(total, beep.Mix(parts...)), master)
}
