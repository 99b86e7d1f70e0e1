//go:build amd64 && !purego

// Package avx2 registers the biquad block kernel preferred on AVX2 CPUs.
package avx2

import (
	"github.com/cwbudde/algo-eq/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:         "avx2",
		SIMDLevel:    cpu.SIMDAVX2,
		Priority:     20,
		ProcessBlock: processBlock,
	})
}

// processBlock runs four samples per iteration. The feed-forward products of
// the four inputs are independent of the recursion and are computed first so
// the wide out-of-order core can overlap them with the feedback chain.
// TODO: replace with an AVX2 asm kernel that runs both stereo channels in one register.
func processBlock(c registry.Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	n := len(buf)
	i := 0
	for ; i+3 < n; i += 4 {
		blk := buf[i : i+4 : i+4]
		x0, x1, x2, x3 := blk[0], blk[1], blk[2], blk[3]

		ff0, ff1, ff2, ff3 := b0*x0, b0*x1, b0*x2, b0*x3
		m0, m1, m2, m3 := b1*x0, b1*x1, b1*x2, b1*x3
		n0, n1, n2, n3 := b2*x0, b2*x1, b2*x2, b2*x3

		y0 := ff0 + d0
		d0 = m0 - a1*y0 + d1
		d1 = n0 - a2*y0

		y1 := ff1 + d0
		d0 = m1 - a1*y1 + d1
		d1 = n1 - a2*y1

		y2 := ff2 + d0
		d0 = m2 - a1*y2 + d1
		d1 = n2 - a2*y2

		y3 := ff3 + d0
		d0 = m3 - a1*y3 + d1
		d1 = n3 - a2*y3

		blk[0], blk[1], blk[2], blk[3] = y0, y1, y2, y3
	}

	for ; i < n; i++ {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	return d0, d1
}
