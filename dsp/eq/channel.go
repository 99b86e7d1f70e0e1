package eq

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
)

// Stages lists the designed sections of a channel chain in processing order.
type Stages struct {
	LowCut  [biquad.MaxSections]design.Stage
	Peak    design.Stage
	HighCut [biquad.MaxSections]design.Stage
}

// ChannelChain is the per-channel filter path: low cut, then peak, then
// high cut. Each chain owns its filter state exclusively.
type ChannelChain struct {
	lowCut  biquad.Chain
	peak    biquad.Section
	highCut biquad.Chain

	stages  Stages
	scratch [biquad.MaxSections]biquad.Coefficients
}

// NewChannelChain returns a chain with every band bypassed.
func NewChannelChain() *ChannelChain {
	c := &ChannelChain{}
	c.init()
	return c
}

func (c *ChannelChain) init() {
	c.lowCut.Configure(0, nil)
	c.highCut.Configure(0, nil)
	c.peak = biquad.Section{Coefficients: biquad.Identity()}
	c.peak.SetBypass(true)
	c.peak.Reset()

	bypass := design.Stage{Kind: design.KindBypass, Coefficients: biquad.Identity()}
	for i := range c.stages.LowCut {
		c.stages.LowCut[i] = bypass
		c.stages.HighCut[i] = bypass
	}
	c.stages.Peak = bypass
}

// UpdateCoefficients redesigns all three bands from s at sampleRate. Filter
// state is kept, except that a section coming out of bypass starts from
// zero. It does not allocate.
func (c *ChannelChain) UpdateCoefficients(s Snapshot, sampleRate float64) {
	s = s.Clamped()

	n := design.CutStages(&c.stages.LowCut, design.KindHighpass, s.LowCutFreq, int(s.LowCutSlope), sampleRate)
	c.configureCut(&c.lowCut, &c.stages.LowCut, n)

	c.updatePeak(s, sampleRate)

	n = design.CutStages(&c.stages.HighCut, design.KindLowpass, s.HighCutFreq, int(s.HighCutSlope), sampleRate)
	c.configureCut(&c.highCut, &c.stages.HighCut, n)
}

func (c *ChannelChain) configureCut(chain *biquad.Chain, stages *[biquad.MaxSections]design.Stage, n int) {
	for i := range stages {
		c.scratch[i] = stages[i].Coefficients
	}
	chain.Configure(n, c.scratch[:])
}

// A 0 dB peak is an identity filter, so it is bypassed outright.
func (c *ChannelChain) updatePeak(s Snapshot, sampleRate float64) {
	if s.PeakGainDB == 0 {
		c.stages.Peak = design.Stage{Kind: design.KindBypass, Coefficients: biquad.Identity()}
		c.peak.SetBypass(true)
		return
	}

	coeffs := design.Peak(s.PeakFreq, s.PeakGainDB, s.PeakQ, sampleRate)
	c.stages.Peak = design.Stage{Kind: design.KindPeak, Coefficients: coeffs}
	if c.peak.Bypassed() {
		c.peak.Reset()
	}
	c.peak.SetCoefficients(coeffs)
}

// Process filters buf in place: low cut, peak, high cut.
func (c *ChannelChain) Process(buf []float64) {
	c.lowCut.ProcessBlock(buf)
	c.peak.ProcessBlock(buf)
	c.highCut.ProcessBlock(buf)
}

// Reset clears the state of every section.
func (c *ChannelChain) Reset() {
	c.lowCut.Reset()
	c.peak.Reset()
	c.highCut.Reset()
}

// Stages returns the currently designed sections.
func (c *ChannelChain) Stages() Stages {
	return c.stages
}

// LowCut returns the low-cut cascade for inspection.
func (c *ChannelChain) LowCut() *biquad.Chain { return &c.lowCut }

// Peak returns the peak section for inspection.
func (c *ChannelChain) Peak() *biquad.Section { return &c.peak }

// HighCut returns the high-cut cascade for inspection.
func (c *ChannelChain) HighCut() *biquad.Chain { return &c.highCut }

// MagnitudeDB returns the magnitude response of the whole chain at freqHz.
func (c *ChannelChain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return c.lowCut.MagnitudeDB(freqHz, sampleRate) +
		c.peak.MagnitudeDB(freqHz, sampleRate) +
		c.highCut.MagnitudeDB(freqHz, sampleRate)
}

// IsStable reports whether every active section is stable.
func (c *ChannelChain) IsStable() bool {
	return c.lowCut.IsStable() && c.highCut.IsStable() && (c.peak.Bypassed() || c.peak.IsStable())
}

// MonoChain is a ChannelChain bound to a prepared sample rate.
type MonoChain struct {
	chain        ChannelChain
	sampleRate   float64
	maxBlockSize int
}

// NewMonoChain returns an unprepared chain that passes audio through.
func NewMonoChain() *MonoChain {
	m := &MonoChain{}
	m.init()
	return m
}

func (m *MonoChain) init() {
	m.chain.init()
	m.sampleRate = 0
	m.maxBlockSize = 0
}

// Prepare validates and stores the processing settings and clears all
// filter state.
func (m *MonoChain) Prepare(sampleRate float64, maxBlockSize int) error {
	if err := validateSettings(sampleRate, maxBlockSize); err != nil {
		return err
	}

	m.sampleRate = sampleRate
	m.maxBlockSize = maxBlockSize
	m.chain.Reset()
	return nil
}

// UpdateCoefficients redesigns the filters from s at the prepared rate.
// Before Prepare it does nothing.
func (m *MonoChain) UpdateCoefficients(s Snapshot) {
	if m.sampleRate <= 0 {
		return
	}

	m.chain.UpdateCoefficients(s, m.sampleRate)
}

// Process filters buf in place.
func (m *MonoChain) Process(buf []float64) {
	m.chain.Process(buf)
}

// Reset clears the filter state.
func (m *MonoChain) Reset() {
	m.chain.Reset()
}

// SampleRate returns the prepared sample rate, or 0 before Prepare.
func (m *MonoChain) SampleRate() float64 { return m.sampleRate }

// MaxBlockSize returns the prepared maximum block size, or 0 before Prepare.
func (m *MonoChain) MaxBlockSize() int { return m.maxBlockSize }

// Chain returns the underlying channel chain.
func (m *MonoChain) Chain() *ChannelChain { return &m.chain }

func validateSettings(sampleRate float64, maxBlockSize int) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("eq sample rate must be positive and finite: %v: %w", sampleRate, ErrInvalidSampleRate)
	}
	if maxBlockSize <= 0 {
		return fmt.Errorf("eq block size must be > 0: %d: %w", maxBlockSize, ErrInvalidBlockSize)
	}

	return nil
}
