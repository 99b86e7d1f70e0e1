package eq

import (
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"
)

// StateVersion is the layout version written by MarshalState.
const StateVersion = 1

type cutState struct {
	Freq  float64 `toml:"freq"`
	Slope int     `toml:"slope_db_per_oct"`
}

type peakState struct {
	Freq   float64 `toml:"freq"`
	GainDB float64 `toml:"gain_db"`
	Q      float64 `toml:"q"`
}

type stateDocument struct {
	Version int       `toml:"version"`
	LowCut  cutState  `toml:"low_cut"`
	Peak    peakState `toml:"peak"`
	HighCut cutState  `toml:"high_cut"`
}

func documentFromSnapshot(s Snapshot) stateDocument {
	return stateDocument{
		Version: StateVersion,
		LowCut:  cutState{Freq: s.LowCutFreq, Slope: s.LowCutSlope.DBPerOctave()},
		Peak:    peakState{Freq: s.PeakFreq, GainDB: s.PeakGainDB, Q: s.PeakQ},
		HighCut: cutState{Freq: s.HighCutFreq, Slope: s.HighCutSlope.DBPerOctave()},
	}
}

func (d stateDocument) snapshot() Snapshot {
	return Snapshot{
		LowCutFreq:   d.LowCut.Freq,
		HighCutFreq:  d.HighCut.Freq,
		PeakFreq:     d.Peak.Freq,
		PeakGainDB:   d.Peak.GainDB,
		PeakQ:        d.Peak.Q,
		LowCutSlope:  clampSlope(float64(d.LowCut.Slope) / 12),
		HighCutSlope: clampSlope(float64(d.HighCut.Slope) / 12),
	}.Clamped()
}

// MarshalState encodes s as a TOML document.
func MarshalState(s Snapshot) ([]byte, error) {
	data, err := toml.Marshal(documentFromSnapshot(s.Clamped()))
	if err != nil {
		return nil, fmt.Errorf("eq state: encode: %w", err)
	}

	return data, nil
}

// UnmarshalState decodes a document written by MarshalState. Missing keys
// keep their defaults, unknown keys are ignored and values are clamped.
// Documents from a newer layout version are rejected.
func UnmarshalState(data []byte) (Snapshot, error) {
	doc := documentFromSnapshot(DefaultSnapshot())
	doc.Version = 0

	if _, err := toml.Decode(string(data), &doc); err != nil {
		return Snapshot{}, fmt.Errorf("eq state: decode: %w", err)
	}
	if doc.Version > StateVersion {
		return Snapshot{}, fmt.Errorf("eq state: unsupported version %d (max %d)", doc.Version, StateVersion)
	}
	for _, v := range []float64{doc.LowCut.Freq, doc.HighCut.Freq, doc.Peak.Freq, doc.Peak.GainDB, doc.Peak.Q} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return Snapshot{}, fmt.Errorf("eq state: non-finite value %v", v)
		}
	}

	return doc.snapshot(), nil
}

// LoadPreset reads a state document from path.
func LoadPreset(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("eq preset: %w", err)
	}

	return UnmarshalState(data)
}

// SavePreset writes s to path as a state document.
func SavePreset(path string, s Snapshot) error {
	data, err := MarshalState(s)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("eq preset: %w", err)
	}

	return nil
}
