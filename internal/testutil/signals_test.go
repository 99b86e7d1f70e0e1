package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	// First sample of a sine at phase 0 should be 0.
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	// All values in [-1, 1].
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestDeterministicSineReproducible(t *testing.T) {
	a := DeterministicSine(440, 44100, 0.5, 100)
	b := DeterministicSine(440, 44100, 0.5, 100)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}
}

func TestDeterministicNoiseDifferentSeeds(t *testing.T) {
	a := DeterministicNoise(1, 1.0, 16)
	b := DeterministicNoise(2, 1.0, 16)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse(8, 3)
	if len(imp) != 8 {
		t.Fatalf("len = %d, want 8", len(imp))
	}
	for i, v := range imp {
		if i == 3 {
			if v != 1 {
				t.Fatalf("imp[3] = %v, want 1", v)
			}
		} else if v != 0 {
			t.Fatalf("imp[%d] = %v, want 0", i, v)
		}
	}
}

func TestImpulseOutOfBounds(t *testing.T) {
	imp := Impulse(4, 10)
	for i, v := range imp {
		if v != 0 {
			t.Fatalf("imp[%d] = %v, want all zeros for out-of-bounds pos", i, v)
		}
	}
}

func TestDC(t *testing.T) {
	d := DC(0.5, 4)
	for i, v := range d {
		if v != 0.5 {
			t.Fatalf("DC[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestPlanes(t *testing.T) {
	p := Planes(2, 16)
	if len(p) != 2 || len(p[0]) != 16 || len(p[1]) != 16 {
		t.Fatalf("unexpected shape: %d channels", len(p))
	}
	p[0][0] = 1
	if p[1][0] != 0 {
		t.Fatal("planes share storage")
	}
}

func TestLogSweep(t *testing.T) {
	const sr = 48000.0
	s := LogSweep(20, 20000, sr, 0.5, 48000)
	if len(s) != 48000 {
		t.Fatalf("len = %d", len(s))
	}
	if s[0] != 0 {
		t.Fatalf("sweep should start at zero phase, got %v", s[0])
	}
	if p := PeakAbs(s); p > 0.5+1e-12 || p < 0.49 {
		t.Fatalf("peak %v, want about 0.5", p)
	}

	// Early samples cross zero far less often than late ones.
	crossings := func(x []float64) int {
		n := 0
		for i := 1; i < len(x); i++ {
			if (x[i-1] < 0) != (x[i] < 0) {
				n++
			}
		}
		return n
	}
	if early, late := crossings(s[:4800]), crossings(s[len(s)-4800:]); early*10 > late {
		t.Fatalf("sweep not rising: %d early vs %d late crossings", early, late)
	}
}

func TestLogSweepDegenerate(t *testing.T) {
	if s := LogSweep(0, 1000, 48000, 1, 8); PeakAbs(s) != 0 {
		t.Fatal("invalid start frequency should yield silence")
	}
	RequireSliceNearlyEqual(t, LogSweep(1000, 1000, 48000, 1, 64), DeterministicSine(1000, 48000, 1, 64), 1e-12)
}
