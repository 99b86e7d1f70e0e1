package spectrum

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-vecmath"
)

// MagnitudeFloorDB is the value MagnitudeDB reports for empty bins.
const MagnitudeFloorDB = -300.0

// MagnitudeDB writes 20*log10(|X[k]|) into dst for the bins split into re
// and im. All three slices must have the same length. dst may alias re or
// im.
func MagnitudeDB(dst, re, im []float64) error {
	if len(re) != len(dst) || len(im) != len(dst) {
		return fmt.Errorf("spectrum: length mismatch: dst=%d re=%d im=%d", len(dst), len(re), len(im))
	}

	vecmath.Magnitude(dst, re, im)
	for i, m := range dst {
		if m <= 1e-15 {
			dst[i] = MagnitudeFloorDB
			continue
		}
		dst[i] = 20 * math.Log10(m)
	}

	return nil
}

// BinFrequency returns the centre frequency of bin k of an fftSize-point FFT.
func BinFrequency(k, fftSize int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(fftSize)
}

// InterpolateLinear evaluates the piecewise-linear curve through (x, y) at
// every query point. Queries outside x take the nearest end value. x must be
// strictly increasing.
func InterpolateLinear(x, y, query []float64) ([]float64, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("spectrum: interpolate needs matching non-empty x and y: %d, %d", len(x), len(y))
	}
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return nil, fmt.Errorf("spectrum: interpolate x not increasing at index %d", i)
		}
	}

	last := len(x) - 1
	out := make([]float64, len(query))
	for i, q := range query {
		switch {
		case q <= x[0]:
			out[i] = y[0]
		case q >= x[last]:
			out[i] = y[last]
		default:
			j := sort.SearchFloat64s(x, q)
			t := (q - x[j-1]) / (x[j] - x[j-1])
			out[i] = y[j-1] + t*(y[j]-y[j-1])
		}
	}

	return out, nil
}

// SmoothFractionalOctave replaces every value by the mean over the
// 1/fraction-octave band centred on its frequency. freqHz must be positive
// and strictly increasing.
func SmoothFractionalOctave(freqHz, values []float64, fraction int) ([]float64, error) {
	if len(freqHz) == 0 || len(freqHz) != len(values) {
		return nil, fmt.Errorf("spectrum: smoothing needs matching non-empty inputs: %d, %d", len(freqHz), len(values))
	}
	if fraction <= 0 {
		return nil, fmt.Errorf("spectrum: smoothing fraction must be > 0: %d", fraction)
	}
	for i, f := range freqHz {
		if f <= 0 || (i > 0 && !(f > freqHz[i-1])) {
			return nil, fmt.Errorf("spectrum: smoothing frequencies must be positive and increasing at index %d", i)
		}
	}

	half := math.Pow(2, 1/(2*float64(fraction)))
	out := make([]float64, len(values))
	for i, f := range freqHz {
		lo := sort.SearchFloat64s(freqHz, f/half)
		hi := sort.Search(len(freqHz), func(k int) bool { return freqHz[k] > f*half })

		var sum float64
		for _, v := range values[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}

	return out, nil
}
