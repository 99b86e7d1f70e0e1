//nolint:funcorder
package biquad

import (
	"sync"

	archregistry "github.com/cwbudde/algo-eq/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// denormalThreshold is the magnitude below which delay-line state is flushed
// to zero at the end of a block.
const denormalThreshold = 1e-30

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Identity returns unity pass-through coefficients.
func Identity() Coefficients {
	return Coefficients{B0: 1}
}

// IsIdentity reports whether c is exactly the unity pass-through.
func (c Coefficients) IsIdentity() bool {
	return c == Identity()
}

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form II Transposed processing.
//
// A bypassed section skips all arithmetic; its delay line is left untouched.
type Section struct {
	Coefficients

	d0, d1 float64
	bypass bool
}

var (
	processBlockImpl     archregistry.ProcessBlockFn
	processBlockInitOnce sync.Once
)

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// SetCoefficients replaces the active coefficients without touching the
// delay line and clears the bypass flag. A coefficient jump may produce a
// short transient; state is kept so the output stays continuous.
func (s *Section) SetCoefficients(c Coefficients) {
	s.Coefficients = c
	s.bypass = false
}

// SetBypass enables or disables pass-through mode.
func (s *Section) SetBypass(bypass bool) {
	s.bypass = bypass
}

// Bypassed reports whether the section is in pass-through mode.
func (s *Section) Bypassed() bool {
	return s.bypass
}

// ProcessSample filters one input sample and returns the output. It does
// not flush denormal state; ProcessBlock and ProcessBlockTo do that at the
// end of each block.
func (s *Section) ProcessSample(x float64) float64 {
	if s.bypass {
		return x
	}

	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	if s.bypass || len(buf) == 0 {
		return
	}

	processBlockInitOnce.Do(initProcessBlockKernel)

	coeffs := archregistry.Coefficients{
		B0: s.B0,
		B1: s.B1,
		B2: s.B2,
		A1: s.A1,
		A2: s.A2,
	}

	d0, d1 := processBlockImpl(coeffs, s.d0, s.d1, buf)
	s.d0, s.d1 = flushDenormal(d0), flushDenormal(d1)
}

// PrepareKernel selects the block kernel for the running CPU. ProcessBlock
// does this lazily; callers on a real-time thread can call it up front so the
// first block does not pay for feature detection.
func PrepareKernel() {
	processBlockInitOnce.Do(initProcessBlockKernel)
}

// KernelName returns the name of the selected block kernel.
func KernelName() string {
	processBlockInitOnce.Do(initProcessBlockKernel)
	return kernelName
}

var kernelName string

func initProcessBlockKernel() {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("biquad: no ProcessBlock kernel registered (missing generic fallback?)")
	}

	if entry.ProcessBlock == nil {
		panic("biquad: selected kernel missing ProcessBlock")
	}

	processBlockImpl = entry.ProcessBlock
	kernelName = entry.Name
}

func (s *Section) processBlockScalar(buf []float64) {
	for i, x := range buf {
		y := s.B0*x + s.d0
		s.d0 = s.B1*x - s.A1*y + s.d1
		s.d1 = s.B2*x - s.A2*y
		buf[i] = y
	}
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
// Zero-alloc.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint
	if s.bypass {
		copy(dst, src)
		return
	}

	for i, x := range src {
		y := s.B0*x + s.d0
		s.d0 = s.B1*x - s.A1*y + s.d1
		s.d1 = s.B2*x - s.A2*y
		dst[i] = y
	}
	s.d0, s.d1 = flushDenormal(s.d0), flushDenormal(s.d1)
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}

func flushDenormal(x float64) float64 {
	if x > -denormalThreshold && x < denormalThreshold {
		return 0
	}
	return x
}
