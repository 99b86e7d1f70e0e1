package biquad

// MaxSections is the fixed capacity of a Chain. Four second-order sections
// give a maximum slope of 48 dB/octave.
const MaxSections = 4

// Chain is a fixed-capacity cascade of biquad sections processed in series.
// The first Active() sections filter; the remaining ones are bypassed.
// Storage never changes size, so reconfiguring is allocation-free.
type Chain struct {
	sections [MaxSections]Section
	active   int
}

// NewChain returns a chain with all sections bypassed.
func NewChain() *Chain {
	c := &Chain{}
	c.Configure(0, nil)
	return c
}

// Configure activates the first n sections with coeffs[0:n] and bypasses the
// rest. n is clamped to [0, min(MaxSections, len(coeffs))].
//
// Sections that stay active keep their delay-line state. A section that was
// bypassed and becomes active starts from zero state, since whatever it held
// belongs to an older configuration.
func (c *Chain) Configure(n int, coeffs []Coefficients) {
	n = min(max(n, 0), MaxSections, len(coeffs))

	for i := range c.sections {
		s := &c.sections[i]
		if i >= n {
			s.SetBypass(true)
			continue
		}

		if s.Bypassed() {
			s.Reset()
		}
		s.SetCoefficients(coeffs[i])
	}

	c.active = n
}

// ProcessSample cascades input through all sections in order.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters a block in-place through the full cascade.
// Bypassed sections return immediately.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset clears all section states.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Active returns the number of active (non-bypassed) sections.
func (c *Chain) Active() int {
	return c.active
}

// Order returns the filter order of the active cascade (2 per section).
func (c *Chain) Order() int {
	return 2 * c.active
}

// Slope returns the asymptotic roll-off of the active cascade in dB/octave.
func (c *Chain) Slope() int {
	return 12 * c.active
}

// NumSections returns the section capacity, which is always MaxSections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// Section returns a pointer to the i-th section for inspection.
func (c *Chain) Section(i int) *Section {
	return &c.sections[i]
}

// State returns a snapshot of all section delay-line states.
func (c *Chain) State() [MaxSections][2]float64 {
	var states [MaxSections][2]float64
	for i := range c.sections {
		states[i] = c.sections[i].State()
	}

	return states
}

// SetState restores previously saved section states.
func (c *Chain) SetState(states [MaxSections][2]float64) {
	for i := range c.sections {
		c.sections[i].SetState(states[i])
	}
}
