package design

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

const (
	// MinFrequency is the lowest design frequency in Hz.
	MinFrequency = 1.0
	// MaxFrequencyRatio bounds design frequencies to this fraction of the
	// sample rate, keeping the prewarp tan() away from its pole at Nyquist.
	MaxFrequencyRatio = 0.49
	// MinQ is the smallest quality factor handed to the designers.
	MinQ = 0.01

	defaultQ = 1 / math.Sqrt2
)

// ClampFrequency limits freq to [MinFrequency, MaxFrequencyRatio*sampleRate].
// NaN maps to MinFrequency.
func ClampFrequency(freq, sampleRate float64) float64 {
	hi := MaxFrequencyRatio * sampleRate
	if hi < MinFrequency || math.IsNaN(hi) {
		hi = MinFrequency
	}

	switch {
	case math.IsNaN(freq), freq < MinFrequency:
		return MinFrequency
	case freq > hi:
		return hi
	default:
		return freq
	}
}

// ClampQ limits q to at least MinQ. NaN and infinities map to 1/sqrt(2).
func ClampQ(q float64) float64 {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return defaultQ
	}

	return math.Max(q, MinQ)
}

// Peak designs an RBJ peaking-EQ biquad with gain in dB centred at freq.
// At freq the magnitude is exactly gainDB; far from freq it tends to 0 dB.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Identity()
	}

	if math.IsNaN(gainDB) || math.IsInf(gainDB, 0) {
		gainDB = 0
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * ClampQ(q))
	a := math.Pow(10, gainDB/40)

	return normalizeBiquad(
		1+alpha*a, -2*cw, 1-alpha*a,
		1+alpha/a, -2*cw, 1-alpha/a,
	)
}

// Lowpass designs an RBJ second-order lowpass at freq (Hz) with quality factor q.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Identity()
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * ClampQ(q))

	return normalizeBiquad(
		(1-cw)/2, 1-cw, (1-cw)/2,
		1+alpha, -2*cw, 1-alpha,
	)
}

// Highpass designs an RBJ second-order highpass at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Identity()
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * ClampQ(q))

	return normalizeBiquad(
		(1+cw)/2, -(1 + cw), (1+cw)/2,
		1+alpha, -2*cw, 1-alpha,
	)
}

// normalizedW0 clamps freq and converts it to radians per sample. It only
// fails for an unusable sample rate.
func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	return 2 * math.Pi * ClampFrequency(freq, sampleRate) / sampleRate, true
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Identity()
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
