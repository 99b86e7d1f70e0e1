package eq

import (
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// State is the processor lifecycle state.
type State int32

const (
	StateUnprepared State = iota
	StatePrepared
)

func (s State) String() string {
	switch s {
	case StateUnprepared:
		return "unprepared"
	case StatePrepared:
		return "prepared"
	default:
		return "unknown"
	}
}

// Processor runs the stereo equalizer. Prepare, Release and ProcessBlock
// must be called from a single goroutine; parameters may be written from
// any goroutine through Params.
type Processor struct {
	params *Params
	config core.ProcessorConfig
	state  atomic.Int32

	chains      [MaxChannels]MonoChain
	snapshot    Snapshot
	lastVersion uint64
}

// New returns an unprepared processor reading from params. A nil params
// gets a fresh default set. The options set the configuration returned by
// Config, which PrepareDefault and the streaming adapter use.
func New(params *Params, opts ...core.ProcessorOption) *Processor {
	if params == nil {
		params = NewParams()
	}

	p := &Processor{
		params: params,
		config: core.ApplyProcessorOptions(opts...),
	}
	for i := range p.chains {
		p.chains[i].init()
	}
	p.snapshot = params.Snapshot()

	return p
}

// Prepare sets the sample rate and maximum block size, clears all filter
// state and loads coefficients for the current parameters. Calling it again
// with the same settings leaves the processor in the same state.
func (p *Processor) Prepare(sampleRate float64, maxBlockSize int) error {
	if err := validateSettings(sampleRate, maxBlockSize); err != nil {
		return err
	}

	for i := range p.chains {
		if err := p.chains[i].Prepare(sampleRate, maxBlockSize); err != nil {
			return err
		}
	}
	p.config.SampleRate = sampleRate
	p.config.BlockSize = maxBlockSize
	p.refresh(true)
	p.state.Store(int32(StatePrepared))

	return nil
}

// PrepareDefault prepares with the configured sample rate and block size.
func (p *Processor) PrepareDefault() error {
	return p.Prepare(p.config.SampleRate, p.config.BlockSize)
}

// Release returns the processor to the unprepared state. Subsequent
// ProcessBlock calls leave buffers untouched until the next Prepare.
func (p *Processor) Release() {
	p.state.Store(int32(StateUnprepared))
}

// State reports the lifecycle state.
func (p *Processor) State() State {
	return State(p.state.Load())
}

// Params returns the parameter set the processor reads from.
func (p *Processor) Params() *Params {
	return p.params
}

// Config returns the processing configuration.
func (p *Processor) Config() core.ProcessorConfig {
	return p.config
}

// SampleRate returns the configured sample rate.
func (p *Processor) SampleRate() float64 {
	return p.config.SampleRate
}

// MaxBlockSize returns the configured maximum block size.
func (p *Processor) MaxBlockSize() int {
	return p.config.BlockSize
}

// ProcessBlock filters buf in place. buf[0] is the left channel and buf[1]
// the right one; numInputs is how many of the channels carry input. Channels
// from numInputs on are cleared first. Channels past the second are not
// filtered.
//
// Coefficients are recomputed only when the parameters changed since the
// previous block. ProcessBlock does not allocate, lock or fail; before
// Prepare it is a no-op.
func (p *Processor) ProcessBlock(buf [][]float64, numInputs int) {
	if State(p.state.Load()) != StatePrepared {
		return
	}

	core.ZeroChannels(buf, numInputs)
	p.refresh(false)

	n := min(len(buf), MaxChannels)
	for ch := range n {
		p.chains[ch].Process(buf[ch])
	}
}

func (p *Processor) refresh(force bool) {
	v := p.params.Version()
	if !force && v == p.lastVersion {
		return
	}

	p.snapshot = p.params.Snapshot()
	for i := range p.chains {
		p.chains[i].UpdateCoefficients(p.snapshot)
	}
	p.lastVersion = v
}

// Snapshot returns the parameter values the filters currently use. It reads
// state that ProcessBlock writes, so call it only from the audio goroutine;
// other goroutines should use Params().Snapshot().
func (p *Processor) Snapshot() Snapshot {
	return p.snapshot
}

// Chain returns the chain for channel ch (0 left, 1 right), or nil.
func (p *Processor) Chain(ch int) *ChannelChain {
	if ch < 0 || ch >= MaxChannels {
		return nil
	}

	return &p.chains[ch].chain
}

// MagnitudeDB returns the response of the equalizer at freqHz for the
// current parameters and sample rate. It designs its own filters, so it may
// run concurrently with ProcessBlock, but not with Prepare.
func (p *Processor) MagnitudeDB(freqHz float64) float64 {
	var c ChannelChain
	c.init()
	c.UpdateCoefficients(p.params.Snapshot(), p.config.SampleRate)
	return c.MagnitudeDB(freqHz, p.config.SampleRate)
}
