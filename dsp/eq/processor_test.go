package eq

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/internal/testutil"
	"github.com/cwbudde/algo-eq/measure/response"
)

func preparedProcessor(t *testing.T, sr float64, block int, s Snapshot) *Processor {
	t.Helper()
	params := NewParams()
	params.Restore(s)
	p := New(params)
	if err := p.Prepare(sr, block); err != nil {
		t.Fatalf("Prepare(%v, %d): %v", sr, block, err)
	}
	return p
}

// monoFunc runs the left channel of p over whole buffers.
func monoFunc(p *Processor) response.ProcessFunc {
	planes := make([][]float64, 1)
	return func(buf []float64) {
		planes[0] = buf
		p.ProcessBlock(planes, 1)
	}
}

func TestNew_Defaults(t *testing.T) {
	p := New(nil, core.WithSampleRate(44100), core.WithBlockSize(128))
	if p.Params() == nil {
		t.Fatal("nil params should get a default set")
	}
	if p.State() != StateUnprepared {
		t.Fatalf("new processor state %v", p.State())
	}
	if p.SampleRate() != 44100 || p.MaxBlockSize() != 128 {
		t.Fatalf("config: %+v", p.Config())
	}
	if err := p.PrepareDefault(); err != nil {
		t.Fatalf("PrepareDefault: %v", err)
	}
	if p.State() != StatePrepared || p.State().String() != "prepared" {
		t.Fatalf("state after prepare: %v", p.State())
	}
}

func TestProcessor_PrepareErrors(t *testing.T) {
	p := New(nil)
	if err := p.Prepare(math.NaN(), 64); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("NaN rate: %v", err)
	}
	if err := p.Prepare(48000, 0); !errors.Is(err, ErrInvalidBlockSize) {
		t.Fatalf("zero block: %v", err)
	}
	if p.State() != StateUnprepared {
		t.Fatal("failed Prepare must not change state")
	}
}

func TestProcessor_UnpreparedIsNoop(t *testing.T) {
	p := New(nil)
	p.Params().Set(ParamPeakGain, 12)

	in := testutil.DeterministicNoise(5, 1, 64)
	buf := [][]float64{append([]float64(nil), in...), append([]float64(nil), in...), {7, 7}}
	p.ProcessBlock(buf, 1)

	for ch := range 2 {
		for i := range in {
			if buf[ch][i] != in[i] {
				t.Fatalf("unprepared processor modified ch %d sample %d", ch, i)
			}
		}
	}
	if buf[2][0] != 7 {
		t.Fatal("unprepared processor cleared channels")
	}

	if err := p.Prepare(48000, 64); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	p.Release()
	if p.State() != StateUnprepared {
		t.Fatal("Release did not return to unprepared")
	}
	p.ProcessBlock(buf, 1)
	if buf[1][0] != in[0] {
		t.Fatal("released processor should be a no-op")
	}
}

func TestProcessor_ClearsChannelsBeyondInputs(t *testing.T) {
	p := preparedProcessor(t, 48000, 32, DefaultSnapshot())

	buf := [][]float64{
		testutil.DC(0.25, 32),
		testutil.DC(0.5, 32),
		testutil.DC(0.75, 32),
	}
	p.ProcessBlock(buf, 1)

	testutil.RequireZero(t, buf[1])
	testutil.RequireZero(t, buf[2])
	if buf[0][0] == 0 {
		t.Fatal("input channel should carry signal")
	}
}

func TestProcessor_ExtraInputChannelsUntouched(t *testing.T) {
	s := DefaultSnapshot()
	s.PeakGainDB = 12
	p := preparedProcessor(t, 48000, 64, s)

	in := testutil.DeterministicNoise(6, 1, 64)
	buf := testutil.Planes(3, 64)
	copy(buf[2], in)
	p.ProcessBlock(buf, 3)

	for i := range in {
		if buf[2][i] != in[i] {
			t.Fatalf("third channel sample %d changed", i)
		}
	}
}

func TestProcessor_Stability(t *testing.T) {
	seconds := 10
	if testing.Short() {
		seconds = 1
	}

	type combo struct {
		cutLow, cutHigh, peakFreq, gain, q float64
		slope                              Slope
	}
	combos := []combo{
		{20, 20000, 750, 0, 1, Slope12},
		{20, 20000, 20, 24, 10, Slope48},
		{20, 20000, 20000, -24, 10, Slope48},
		{20000, 20, 1000, 24, 0.1, Slope48},
		{500, 2000, 1000, 24, 10, Slope24},
		{20, 20000, 20, -24, 0.1, Slope36},
		{1000, 1000, 1000, 24, 5, Slope48},
		{20, 200, 20000, 24, 10, Slope12},
	}
	if testing.Short() {
		combos = combos[:3]
	}

	const block = 512
	for _, sr := range []float64{44100, 48000} {
		n := seconds * int(sr)
		sweep := testutil.LogSweep(20, 20000, sr, 1, n)

		for _, c := range combos {
			s := Snapshot{
				LowCutFreq: c.cutLow, HighCutFreq: c.cutHigh, PeakFreq: c.peakFreq,
				PeakGainDB: c.gain, PeakQ: c.q, LowCutSlope: c.slope, HighCutSlope: c.slope,
			}
			name := fmt.Sprintf("sr=%v/%+v", sr, c)

			t.Run(name+"/impulse", func(t *testing.T) {
				p := preparedProcessor(t, sr, block, s)
				buf := testutil.Planes(2, block)
				buf[0][0], buf[1][0] = 1, 1

				for off := 0; off < n; off += block {
					if off > 0 {
						core.Zero(buf[0])
						core.Zero(buf[1])
					}
					p.ProcessBlock(buf, 2)
					testutil.RequireBounded(t, buf[0], 100)
				}
				testutil.RequireFinite(t, buf[1])
			})

			t.Run(name+"/sweep", func(t *testing.T) {
				p := preparedProcessor(t, sr, block, s)
				buf := testutil.Planes(2, block)

				for off := 0; off+block <= n; off += block {
					copy(buf[0], sweep[off:off+block])
					copy(buf[1], sweep[off:off+block])
					p.ProcessBlock(buf, 2)
					testutil.RequireBounded(t, buf[0], 100)
					testutil.RequireBounded(t, buf[1], 100)
				}
			})
		}
	}
}

func TestProcessor_BypassIsFlat(t *testing.T) {
	for _, sr := range []float64{44100, 48000} {
		p := preparedProcessor(t, sr, 512, DefaultSnapshot())

		for _, f := range []float64{200, 500, 1000, 2000, 5000} {
			if db := p.MagnitudeDB(f); math.Abs(db) > 0.01 {
				t.Errorf("sr=%v %v Hz: analytic deviation %v dB", sr, f, db)
			}

			p.Chain(0).Reset()
			gain, err := response.ToneGainDB(monoFunc(p), f, sr, 16384)
			if err != nil {
				t.Fatalf("ToneGainDB: %v", err)
			}
			if math.Abs(gain) > 0.01 {
				t.Errorf("sr=%v %v Hz: measured deviation %v dB", sr, f, gain)
			}
		}
	}
}

func TestProcessor_HighCutSlope(t *testing.T) {
	const sr = 44100.0
	s := DefaultSnapshot()
	s.HighCutFreq = 1000
	s.HighCutSlope = Slope24
	p := preparedProcessor(t, sr, 512, s)

	diff := p.MagnitudeDB(500) - p.MagnitudeDB(4000)
	if math.Abs(diff-48) > 2 {
		t.Fatalf("analytic attenuation 4 kHz vs 500 Hz: %v dB, want 48 +/- 2", diff)
	}

	measure := func(f float64) float64 {
		p.Chain(0).Reset()
		g, err := response.ToneGainDB(monoFunc(p), f, sr, 16384)
		if err != nil {
			t.Fatalf("ToneGainDB: %v", err)
		}
		return g
	}
	if diff := measure(500) - measure(4000); math.Abs(diff-48) > 2 {
		t.Fatalf("measured attenuation 4 kHz vs 500 Hz: %v dB, want 48 +/- 2", diff)
	}
}

func TestProcessor_PeakGain(t *testing.T) {
	for _, sr := range []float64{44100, 48000} {
		s := DefaultSnapshot()
		s.PeakFreq = 1000
		s.PeakGainDB = 12
		s.PeakQ = 1
		p := preparedProcessor(t, sr, 512, s)

		tests := []struct {
			freq, want, tol float64
		}{
			{1000, 12, 0.5},
			{50, 0, 0.5},
			{15000, 0, 0.5},
		}
		for _, tt := range tests {
			p.Chain(0).Reset()
			gain, err := response.ToneGainDB(monoFunc(p), tt.freq, sr, 32768)
			if err != nil {
				t.Fatalf("ToneGainDB: %v", err)
			}
			if math.Abs(gain-tt.want) > tt.tol {
				t.Errorf("sr=%v %v Hz: measured %v dB, want %v +/- %v", sr, tt.freq, gain, tt.want, tt.tol)
			}
			if db := p.MagnitudeDB(tt.freq); math.Abs(db-tt.want) > tt.tol {
				t.Errorf("sr=%v %v Hz: analytic %v dB, want %v", sr, tt.freq, db, tt.want)
			}
		}
	}
}

func TestProcessor_ChannelIndependence(t *testing.T) {
	s := Snapshot{
		LowCutFreq: 200, HighCutFreq: 5000, PeakFreq: 1000, PeakGainDB: 24, PeakQ: 10,
		LowCutSlope: Slope48, HighCutSlope: Slope48,
	}
	p := preparedProcessor(t, 48000, 256, s)

	buf := testutil.Planes(2, 256)
	for block := range 20 {
		if block == 0 {
			buf[0][0] = 1
		} else {
			copy(buf[0], testutil.DeterministicNoise(int64(block), 1, 256))
		}
		core.Zero(buf[1])
		p.ProcessBlock(buf, 2)
		testutil.RequireZero(t, buf[1])
	}
}

func TestProcessor_IdempotentPrepare(t *testing.T) {
	s := DefaultSnapshot()
	s.PeakGainDB = -9
	s.LowCutFreq = 120
	s.LowCutSlope = Slope36

	once := preparedProcessor(t, 48000, 128, s)
	twice := preparedProcessor(t, 48000, 128, s)

	warm := testutil.Planes(2, 128)
	copy(warm[0], testutil.DeterministicNoise(7, 1, 128))
	copy(warm[1], testutil.DeterministicNoise(8, 1, 128))
	twice.ProcessBlock(warm, 2)
	if err := twice.Prepare(48000, 128); err != nil {
		t.Fatalf("second Prepare: %v", err)
	}

	for block := range 8 {
		a := testutil.Planes(2, 128)
		copy(a[0], testutil.DeterministicNoise(int64(100+block), 1, 128))
		copy(a[1], testutil.DeterministicNoise(int64(200+block), 1, 128))
		b := [][]float64{append([]float64(nil), a[0]...), append([]float64(nil), a[1]...)}

		once.ProcessBlock(a, 2)
		twice.ProcessBlock(b, 2)
		for ch := range a {
			for i := range a[ch] {
				if a[ch][i] != b[ch][i] {
					t.Fatalf("block %d ch %d sample %d: %v vs %v", block, ch, i, a[ch][i], b[ch][i])
				}
			}
		}
	}
}

func TestProcessor_RecomputesOnlyOnChange(t *testing.T) {
	p := preparedProcessor(t, 48000, 64, DefaultSnapshot())
	buf := testutil.Planes(2, 64)

	// Tamper with the designed coefficients; an unchanged parameter set
	// must not trigger a redesign that would overwrite them.
	marker := p.chains[0].chain.lowCut.Section(0)
	marker.Coefficients.B0 = 0.5
	p.ProcessBlock(buf, 2)
	if marker.Coefficients.B0 != 0.5 {
		t.Fatal("coefficients were recomputed without a parameter change")
	}

	p.Params().Set(ParamLowCutFreq, 40)
	p.ProcessBlock(buf, 2)
	if marker.Coefficients.B0 == 0.5 {
		t.Fatal("parameter change was not picked up")
	}
	if p.Snapshot().LowCutFreq != 40 {
		t.Fatalf("snapshot low cut %v", p.Snapshot().LowCutFreq)
	}
}

func TestProcessor_SlopeChangeKeepsTopology(t *testing.T) {
	p := preparedProcessor(t, 48000, 64, DefaultSnapshot())
	buf := testutil.Planes(2, 64)

	for _, slope := range []Slope{Slope48, Slope12, Slope36, Slope24} {
		p.Params().Set(ParamHighCutSlope, float64(slope))
		p.ProcessBlock(buf, 2)
		for ch := range MaxChannels {
			hc := p.Chain(ch).HighCut()
			if hc.NumSections() != 4 || hc.Active() != int(slope) {
				t.Fatalf("slope %v ch %d: %d of %d active", slope, ch, hc.Active(), hc.NumSections())
			}
		}
	}
	if p.Chain(2) != nil || p.Chain(-1) != nil {
		t.Fatal("Chain out of range should be nil")
	}
}

func TestProcessor_ProcessBlockZeroAlloc(t *testing.T) {
	p := preparedProcessor(t, 48000, 256, DefaultSnapshot())
	buf := testutil.Planes(2, 256)
	copy(buf[0], testutil.DeterministicNoise(9, 1, 256))
	copy(buf[1], testutil.DeterministicNoise(10, 1, 256))

	gain := 0.0
	allocs := testing.AllocsPerRun(200, func() {
		gain = -gain + 3
		p.Params().Set(ParamPeakGain, gain)
		p.ProcessBlock(buf, 2)
		p.ProcessBlock(buf, 1)
	})
	if allocs != 0 {
		t.Fatalf("ProcessBlock allocated %.1f times per run", allocs)
	}
}

func TestState_String(t *testing.T) {
	if StateUnprepared.String() != "unprepared" || State(9).String() != "unknown" {
		t.Fatal("unexpected State strings")
	}
}
