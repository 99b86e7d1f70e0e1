package eq

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// ParamID identifies one of the equalizer parameters.
type ParamID int

const (
	ParamLowCutFreq ParamID = iota
	ParamHighCutFreq
	ParamPeakFreq
	ParamPeakGain
	ParamPeakQ
	ParamLowCutSlope
	ParamHighCutSlope

	// NumParams is the number of parameters.
	NumParams
)

// Valid reports whether id names a parameter.
func (id ParamID) Valid() bool {
	return id >= 0 && id < NumParams
}

func (id ParamID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("ParamID(%d)", int(id))
	}

	return paramInfos[id].Name
}

// Slope is the steepness of a cut filter in units of 12 dB/octave, which is
// also the number of active biquad sections.
type Slope int

const (
	Slope12 Slope = iota + 1
	Slope24
	Slope36
	Slope48
)

// DBPerOctave returns the asymptotic roll-off in dB/octave.
func (s Slope) DBPerOctave() int {
	return 12 * int(s)
}

func (s Slope) String() string {
	return fmt.Sprintf("%d dB/oct", s.DBPerOctave())
}

func clampSlope(v float64) Slope {
	return Slope(core.ClampInt(int(math.Round(v)), int(Slope12), int(Slope48)))
}

// ParamInfo describes a parameter for hosts and user interfaces.
type ParamInfo struct {
	ID      ParamID
	Key     string
	Name    string
	Min     float64
	Max     float64
	Step    float64
	Default float64
	Unit    string
}

var paramInfos = [NumParams]ParamInfo{
	ParamLowCutFreq:   {ParamLowCutFreq, "low_cut_freq", "Low-cut freq", 20, 20000, 1, 20, "Hz"},
	ParamHighCutFreq:  {ParamHighCutFreq, "high_cut_freq", "High-cut freq", 20, 20000, 1, 20000, "Hz"},
	ParamPeakFreq:     {ParamPeakFreq, "peak_freq", "Peak freq", 20, 20000, 1, 750, "Hz"},
	ParamPeakGain:     {ParamPeakGain, "peak_gain", "Peak gain", -24, 24, 0.5, 0, "dB"},
	ParamPeakQ:        {ParamPeakQ, "peak_q", "Peak quality", 0.1, 10, 0.05, 1, ""},
	ParamLowCutSlope:  {ParamLowCutSlope, "low_cut_slope", "Low-cut slope", 1, 4, 1, 1, "dB/oct"},
	ParamHighCutSlope: {ParamHighCutSlope, "high_cut_slope", "High-cut slope", 1, 4, 1, 1, "dB/oct"},
}

// Infos returns the descriptions of all parameters in ParamID order.
func Infos() []ParamInfo {
	out := make([]ParamInfo, NumParams)
	copy(out, paramInfos[:])
	return out
}

// Info returns the description of one parameter.
func Info(id ParamID) (ParamInfo, bool) {
	if !id.Valid() {
		return ParamInfo{}, false
	}

	return paramInfos[id], true
}

// ParamByKey looks up a parameter by its Key, e.g. "peak_gain".
func ParamByKey(key string) (ParamID, bool) {
	for _, info := range paramInfos {
		if info.Key == key {
			return info.ID, true
		}
	}

	return 0, false
}

// Clamp limits v to the parameter range. Slopes are rounded to the nearest
// choice.
func (info ParamInfo) Clamp(v float64) float64 {
	if info.isChoice() {
		return float64(clampSlope(v))
	}

	return core.Clamp(v, info.Min, info.Max)
}

func (info ParamInfo) isChoice() bool {
	return info.ID == ParamLowCutSlope || info.ID == ParamHighCutSlope
}

func (info ParamInfo) isLog() bool {
	return info.Unit == "Hz" || info.ID == ParamPeakQ
}

// Normalize maps a plain value to [0, 1]. Frequencies and Q map
// logarithmically, gain linearly and slopes in equal steps.
func (info ParamInfo) Normalize(v float64) float64 {
	v = info.Clamp(v)
	if info.isLog() {
		return math.Log(v/info.Min) / math.Log(info.Max/info.Min)
	}

	return (v - info.Min) / (info.Max - info.Min)
}

// Denormalize maps n in [0, 1] back to a plain value snapped to Step.
func (info ParamInfo) Denormalize(n float64) float64 {
	n = core.Clamp(n, 0, 1)

	var v float64
	if info.isLog() {
		v = info.Min * math.Pow(info.Max/info.Min, n)
	} else {
		v = info.Min + n*(info.Max-info.Min)
	}

	if info.Step > 0 {
		v = info.Min + math.Round((v-info.Min)/info.Step)*info.Step
	}

	return info.Clamp(v)
}

// Format renders v for display, e.g. "750.0 Hz", "+3.0 dB", "Q 1.00" or
// "12 dB/oct".
func (info ParamInfo) Format(v float64) string {
	switch {
	case info.isChoice():
		return clampSlope(v).String()
	case info.ID == ParamPeakGain:
		return fmt.Sprintf("%+.1f dB", v)
	case info.ID == ParamPeakQ:
		return fmt.Sprintf("Q %.2f", v)
	default:
		return fmt.Sprintf("%.1f %s", v, info.Unit)
	}
}

// Snapshot is a plain copy of all parameter values.
type Snapshot struct {
	LowCutFreq   float64
	HighCutFreq  float64
	PeakFreq     float64
	PeakGainDB   float64
	PeakQ        float64
	LowCutSlope  Slope
	HighCutSlope Slope
}

// DefaultSnapshot returns the parameter defaults.
func DefaultSnapshot() Snapshot {
	var s Snapshot
	for id := range NumParams {
		s.set(id, paramInfos[id].Default)
	}

	return s
}

// Value returns the value of one parameter.
func (s Snapshot) Value(id ParamID) float64 {
	switch id {
	case ParamLowCutFreq:
		return s.LowCutFreq
	case ParamHighCutFreq:
		return s.HighCutFreq
	case ParamPeakFreq:
		return s.PeakFreq
	case ParamPeakGain:
		return s.PeakGainDB
	case ParamPeakQ:
		return s.PeakQ
	case ParamLowCutSlope:
		return float64(s.LowCutSlope)
	case ParamHighCutSlope:
		return float64(s.HighCutSlope)
	default:
		return math.NaN()
	}
}

func (s *Snapshot) set(id ParamID, v float64) {
	switch id {
	case ParamLowCutFreq:
		s.LowCutFreq = v
	case ParamHighCutFreq:
		s.HighCutFreq = v
	case ParamPeakFreq:
		s.PeakFreq = v
	case ParamPeakGain:
		s.PeakGainDB = v
	case ParamPeakQ:
		s.PeakQ = v
	case ParamLowCutSlope:
		s.LowCutSlope = clampSlope(v)
	case ParamHighCutSlope:
		s.HighCutSlope = clampSlope(v)
	}
}

// Clamped returns a copy with every value inside its range. NaN values are
// replaced by the parameter default.
func (s Snapshot) Clamped() Snapshot {
	out := s
	for id := range NumParams {
		v := s.Value(id)
		if math.IsNaN(v) {
			v = paramInfos[id].Default
		}
		out.set(id, paramInfos[id].Clamp(v))
	}

	return out
}

// Params is the shared parameter set. Each value is an atomic cell holding
// float64 bits, so any goroutine may read or write while the audio thread
// processes. Every write bumps a version counter that the processor uses to
// skip coefficient updates when nothing changed.
//
// Use NewParams; the zero value holds zeros rather than defaults.
type Params struct {
	cells   [NumParams]atomic.Uint64
	version atomic.Uint64
}

// NewParams returns a parameter set initialised to the defaults.
func NewParams() *Params {
	p := &Params{}
	p.Restore(DefaultSnapshot())
	return p
}

// Get returns the current value of id, or NaN for an unknown id.
func (p *Params) Get(id ParamID) float64 {
	if !id.Valid() {
		return math.NaN()
	}

	return math.Float64frombits(p.cells[id].Load())
}

// Set clamps v into range and stores it. NaN and unknown ids are ignored.
func (p *Params) Set(id ParamID, v float64) {
	if !id.Valid() || math.IsNaN(v) {
		return
	}

	p.cells[id].Store(math.Float64bits(paramInfos[id].Clamp(v)))
	p.version.Add(1)
}

// Version returns a counter that changes after every write.
func (p *Params) Version() uint64 {
	return p.version.Load()
}

// Normalized returns the value of id mapped to [0, 1].
func (p *Params) Normalized(id ParamID) float64 {
	if !id.Valid() {
		return 0
	}

	return paramInfos[id].Normalize(p.Get(id))
}

// SetNormalized sets id from a [0, 1] value.
func (p *Params) SetNormalized(id ParamID, n float64) {
	if !id.Valid() || math.IsNaN(n) {
		return
	}

	p.Set(id, paramInfos[id].Denormalize(n))
}

// Format renders the current value of id for display.
func (p *Params) Format(id ParamID) string {
	if !id.Valid() {
		return ""
	}

	return paramInfos[id].Format(p.Get(id))
}

// Snapshot reads every cell. Writes racing with the read may land in this
// snapshot or the next one.
func (p *Params) Snapshot() Snapshot {
	var s Snapshot
	for id := range NumParams {
		s.set(id, p.Get(id))
	}

	return s
}

// Restore writes every value of s, clamped, and bumps the version once.
func (p *Params) Restore(s Snapshot) {
	s = s.Clamped()
	for id := range NumParams {
		p.cells[id].Store(math.Float64bits(s.Value(id)))
	}
	p.version.Add(1)
}

// Reset restores the defaults.
func (p *Params) Reset() {
	p.Restore(DefaultSnapshot())
}
