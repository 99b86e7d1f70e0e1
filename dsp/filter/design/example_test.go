package design_test

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
)

func ExampleCutStages() {
	var stages [biquad.MaxSections]design.Stage
	n := design.CutStages(&stages, design.KindLowpass, 1000, 2, 48000)

	var coeffs [biquad.MaxSections]biquad.Coefficients
	for i := range stages {
		coeffs[i] = stages[i].Coefficients
	}
	chain := biquad.NewChain()
	chain.Configure(n, coeffs[:])

	fmt.Printf("sections=%d order=%d slope=%d dB/oct\n", chain.Active(), chain.Order(), chain.Slope())
	fmt.Printf("100 Hz:   %.2f dB\n", chain.MagnitudeDB(100, 48000))
	fmt.Printf("1000 Hz:  %.2f dB\n", chain.MagnitudeDB(1000, 48000))
	fmt.Printf("10000 Hz: %.2f dB\n", chain.MagnitudeDB(10000, 48000))
	// Output:
	// sections=2 order=4 slope=24 dB/oct
	// 100 Hz:   -0.00 dB
	// 1000 Hz:  -3.01 dB
	// 10000 Hz: -85.48 dB
}

func ExamplePeak() {
	c := design.Peak(1000, 12, 1, 44100)
	fmt.Printf("%.2f dB at 1 kHz\n", c.MagnitudeDB(1000, 44100))
	// Output:
	// 12.00 dB at 1 kHz
}
