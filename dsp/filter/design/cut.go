package design

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// Kind tags the response a set of coefficients was designed for. Sections
// never look at it; it exists for analysis and display.
type Kind uint8

const (
	KindBypass Kind = iota
	KindPeak
	KindLowpass
	KindHighpass
)

func (k Kind) String() string {
	switch k {
	case KindBypass:
		return "bypass"
	case KindPeak:
		return "peak"
	case KindLowpass:
		return "lowpass"
	case KindHighpass:
		return "highpass"
	default:
		return "unknown"
	}
}

// Stage is one designed biquad together with its kind.
type Stage struct {
	Kind         Kind
	Coefficients biquad.Coefficients
}

// ButterworthQ returns the quality factor of second-order section index of
// an order-pole Butterworth prototype:
//
//	Q = 1 / (2 sin(pi (2*index+1) / (2*order)))
func ButterworthQ(order, index int) float64 {
	if order <= 0 {
		return defaultQ
	}

	s := math.Sin(math.Pi * float64(2*index+1) / (2 * float64(order)))
	if s <= 0 {
		return defaultQ
	}

	return 1 / (2 * s)
}

// CutStages fills dst with the sections of a Butterworth lowpass or
// highpass cut filter of 2*sections poles at freq. sections is clamped to
// 1..biquad.MaxSections. Entries past the active count are set to
// KindBypass with identity coefficients. A kind other than KindLowpass or
// KindHighpass bypasses every entry. Sections run from the lowest Q to the
// highest. Returns the number of active sections.
//
// CutStages does not allocate.
func CutStages(dst *[biquad.MaxSections]Stage, kind Kind, freq float64, sections int, sampleRate float64) int {
	if kind != KindLowpass && kind != KindHighpass {
		sections = 0
	} else {
		sections = min(max(sections, 1), biquad.MaxSections)
	}

	order := 2 * sections
	for i := range dst {
		if i >= sections {
			dst[i] = Stage{Kind: KindBypass, Coefficients: biquad.Identity()}
			continue
		}

		q := ButterworthQ(order, sections-1-i)
		if kind == KindLowpass {
			dst[i] = Stage{Kind: KindLowpass, Coefficients: Lowpass(freq, q, sampleRate)}
		} else {
			dst[i] = Stage{Kind: KindHighpass, Coefficients: Highpass(freq, q, sampleRate)}
		}
	}

	return sections
}
