package response

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/maddyblue/go-dsp/window"

	"github.com/cwbudde/algo-eq/dsp/spectrum"
)

// ProcessFunc filters buf in place. Consecutive calls continue the same
// signal, so the processor should be reset before a measurement.
type ProcessFunc func(buf []float64)

// Curve is a magnitude response sampled on FFT bins from DC to Nyquist.
type Curve struct {
	FreqHz      []float64
	MagnitudeDB []float64
	SampleRate  float64
	FFTSize     int
}

// At interpolates the curve at the given frequencies.
func (c Curve) At(freqHz ...float64) ([]float64, error) {
	return spectrum.InterpolateLinear(c.FreqHz, c.MagnitudeDB, freqHz)
}

// Smooth returns the curve averaged over 1/fraction-octave bands. The DC bin
// is dropped because it has no octave neighbourhood.
func (c Curve) Smooth(fraction int) (Curve, error) {
	if len(c.FreqHz) < 2 {
		return Curve{}, fmt.Errorf("response: curve too short to smooth: %d bins", len(c.FreqHz))
	}

	mag, err := spectrum.SmoothFractionalOctave(c.FreqHz[1:], c.MagnitudeDB[1:], fraction)
	if err != nil {
		return Curve{}, err
	}

	return Curve{
		FreqHz:      append([]float64(nil), c.FreqHz[1:]...),
		MagnitudeDB: mag,
		SampleRate:  c.SampleRate,
		FFTSize:     c.FFTSize,
	}, nil
}

// Analyzer measures impulse responses with a fixed FFT size.
type Analyzer struct {
	size       int
	sampleRate float64
	plan       *algofft.Plan[complex128]

	impulse []float64
	in, out []complex128
	re, im  []float64
}

// NewAnalyzer creates an analyzer for fftSize-sample impulse responses.
// fftSize must be a power of two of at least 16.
func NewAnalyzer(fftSize int, sampleRate float64) (*Analyzer, error) {
	if fftSize < 16 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("response: fft size must be a power of two >= 16: %d", fftSize)
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("response: sample rate must be positive and finite: %v", sampleRate)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	bins := fftSize/2 + 1
	return &Analyzer{
		size:       fftSize,
		sampleRate: sampleRate,
		plan:       plan,
		impulse:    make([]float64, fftSize),
		in:         make([]complex128, fftSize),
		out:        make([]complex128, fftSize),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
	}, nil
}

// FFTSize returns the transform length.
func (a *Analyzer) FFTSize() int { return a.size }

// Measure feeds a unit impulse of FFTSize samples through process and
// returns the magnitude of its transform. Responses longer than FFTSize are
// truncated.
func (a *Analyzer) Measure(process ProcessFunc) (Curve, error) {
	for i := range a.impulse {
		a.impulse[i] = 0
	}
	a.impulse[0] = 1
	process(a.impulse)

	for i, v := range a.impulse {
		a.in[i] = complex(v, 0)
	}
	if err := a.plan.Forward(a.out, a.in); err != nil {
		return Curve{}, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	bins := len(a.re)
	curve := Curve{
		FreqHz:      make([]float64, bins),
		MagnitudeDB: make([]float64, bins),
		SampleRate:  a.sampleRate,
		FFTSize:     a.size,
	}
	for k := range bins {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
		curve.FreqHz[k] = spectrum.BinFrequency(k, a.size, a.sampleRate)
	}
	if err := spectrum.MagnitudeDB(curve.MagnitudeDB, a.re, a.im); err != nil {
		return Curve{}, err
	}

	return curve, nil
}

// ToneGainDB plays a sine of length samples at freqHz through process and
// returns output level over input level in dB. Only the second half of the
// signal is analysed so filter transients have settled; both halves are Hann
// windowed before the Goertzel evaluation.
func ToneGainDB(process ProcessFunc, freqHz, sampleRate float64, length int) (float64, error) {
	if length < 64 {
		return 0, fmt.Errorf("response: tone length must be >= 64: %d", length)
	}

	in := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range in {
		in[i] = math.Sin(step * float64(i))
	}

	out := append([]float64(nil), in...)
	process(out)

	half := length / 2
	win := window.Hann(length - half)
	x := append([]float64(nil), in[half:]...)
	y := append([]float64(nil), out[half:]...)
	vecmath.MulBlockInPlace(x, win)
	vecmath.MulBlockInPlace(y, win)

	gx, err := spectrum.NewGoertzel(freqHz, sampleRate)
	if err != nil {
		return 0, fmt.Errorf("response: %w", err)
	}
	gy, _ := spectrum.NewGoertzel(freqHz, sampleRate)
	gx.ProcessBlock(x)
	gy.ProcessBlock(y)

	if gx.Power() <= 0 {
		return 0, fmt.Errorf("response: no input energy at %v Hz", freqHz)
	}

	return gy.PowerDB() - gx.PowerDB(), nil
}
