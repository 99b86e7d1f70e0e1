package eq_test

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

func ExampleProcessor() {
	params := eq.NewParams()
	params.Set(eq.ParamPeakFreq, 1000)
	params.Set(eq.ParamPeakGain, 12)

	p := eq.New(params)
	if err := p.Prepare(48000, 256); err != nil {
		panic(err)
	}

	left := make([]float64, 256)
	right := make([]float64, 256)
	left[0], right[0] = 1, 1
	p.ProcessBlock([][]float64{left, right}, 2)

	fmt.Printf("%.2f dB at 1 kHz\n", p.MagnitudeDB(1000))
	// Output: 12.00 dB at 1 kHz
}

func ExampleParams_Set() {
	params := eq.NewParams()
	params.Set(eq.ParamLowCutFreq, 100)
	params.Set(eq.ParamLowCutSlope, float64(eq.Slope24))
	params.Set(eq.ParamHighCutFreq, 5000)

	p := eq.New(params)
	if err := p.Prepare(48000, 512); err != nil {
		panic(err)
	}

	for _, f := range []float64{50, 100, 10000} {
		fmt.Printf("%5.0f Hz: %6.2f dB\n", f, p.MagnitudeDB(f))
	}
	fmt.Println(params.Format(eq.ParamLowCutSlope))
	// Output:
	//    50 Hz: -24.10 dB
	//   100 Hz:  -3.01 dB
	// 10000 Hz: -14.33 dB
	// 24 dB/oct
}

func ExampleMarshalState() {
	s := eq.DefaultSnapshot()
	s.PeakGainDB = -3

	data, err := eq.MarshalState(s)
	if err != nil {
		panic(err)
	}

	back, err := eq.UnmarshalState(data)
	if err != nil {
		panic(err)
	}
	fmt.Println(back.PeakGainDB, back.HighCutSlope)
	// Output: -3 12 dB/oct
}
