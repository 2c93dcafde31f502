package audio

import (
	"math"
	"math/rand"
	"time"
)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveSaw
	waveNoise
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// oscillator generates raw waveform samples
func oscillator(waveType int, freq float64, samples, rate int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	phaseInc := freq / float64(rate)

	for i := 0; i < samples; i++ {
		switch waveType {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		case waveSaw:
			buf[i] = 2.0 * (phase - 0.5)
		case waveNoise:
			buf[i] = rand.Float64()*2 - 1
		}

		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// applyEnvelope applies attack/release envelope in place
func applyEnvelope(buf floatBuffer, attack, release time.Duration, rate int) {
	total := len(buf)
	attackSamples := durationToSamples(attack, rate)
	releaseSamples := durationToSamples(release, rate)

	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// mixFloatBuffers adds b into a (in place), extending a if needed
func mixFloatBuffers(a, b floatBuffer, bScale float64) floatBuffer {
	if len(b) > len(a) {
		extended := make(floatBuffer, len(b))
		copy(extended, a)
		a = extended
	}
	for i := range b {
		a[i] += b[i] * bScale
	}
	return a
}

// concatFloatBuffers appends b to a
func concatFloatBuffers(a, b floatBuffer) floatBuffer {
	result := make(floatBuffer, len(a)+len(b))
	copy(result, a)
	copy(result[len(a):], b)
	return result
}

func durationToSamples(d time.Duration, rate int) int {
	return int(d.Seconds() * float64(rate))
}

// --- Cue generators (unity gain) ---

// Short A5 ping with an octave overtone
func generateSelect(rate int) floatBuffer {
	n := durationToSamples(90*time.Millisecond, rate)
	fund := oscillator(waveSine, 880.0, n, rate)
	applyEnvelope(fund, 2*time.Millisecond, 70*time.Millisecond, rate)

	over := oscillator(waveSine, 1760.0, n, rate)
	applyEnvelope(over, 2*time.Millisecond, 40*time.Millisecond, rate)

	return mixFloatBuffers(fund, over, 0.3/0.7)
}

// Low saw thud
func generateBump(rate int) floatBuffer {
	buf := oscillator(waveSaw, 100.0, durationToSamples(80*time.Millisecond, rate), rate)
	applyEnvelope(buf, 5*time.Millisecond, 40*time.Millisecond, rate)
	return buf
}

// Rising two-note square chirp
func generateTransition(rate int) floatBuffer {
	n1 := oscillator(waveSquare, 659.25, durationToSamples(60*time.Millisecond, rate), rate)
	applyEnvelope(n1, 2*time.Millisecond, 20*time.Millisecond, rate)

	n2 := oscillator(waveSquare, 987.77, durationToSamples(120*time.Millisecond, rate), rate)
	applyEnvelope(n2, 2*time.Millisecond, 80*time.Millisecond, rate)

	return concatFloatBuffers(n1, n2)
}

// generateCue dispatches to the cue's generator
func generateCue(c Cue, rate int) floatBuffer {
	switch c {
	case CueSelect:
		return generateSelect(rate)
	case CueBump:
		return generateBump(rate)
	case CueTransition:
		return generateTransition(rate)
	default:
		return nil
	}
}
