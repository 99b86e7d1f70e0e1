// Package testutil holds deterministic test signals and assertion helpers
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine wave starting at phase zero.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// LogSweep generates an exponential sine sweep from f0 to f1 Hz over
// length samples.
func LogSweep(f0, f1, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	if length == 0 || f0 <= 0 || f1 <= 0 {
		return out
	}

	duration := float64(length) / sampleRate
	k := math.Log(f1 / f0)
	if k == 0 {
		return DeterministicSine(f0, sampleRate, amplitude, length)
	}

	l := duration / k
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = amplitude * math.Sin(2*math.Pi*f0*l*(math.Exp(t/l)-1))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at pos.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Planes returns channels planes of length samples each, all zero.
func Planes(channels, length int) [][]float64 {
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, length)
	}
	return out
}
