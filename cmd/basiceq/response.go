package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/cli"
	"github.com/cwbudde/algo-eq/measure/response"
)

type responseCmd struct {
	EQ         eqFlags   `embed:""`
	SampleRate float64   `default:"48000" help:"Sample rate in Hz."`
	Freqs      []float64 `default:"20,50,100,200,500,1000,2000,5000,10000,20000" help:"Frequencies to report in Hz."`
	Measure    bool      `help:"Also measure the response of the running filters from an impulse."`
	FFTSize    int       `name:"fft-size" default:"16384" help:"FFT size used by --measure."`
}

func (c *responseCmd) Run(logger *slog.Logger) error {
	params, err := c.EQ.params()
	if err != nil {
		return err
	}

	rows, err := responseRows(params, c.SampleRate, c.Freqs, c.Measure, c.FFTSize)
	if err != nil {
		return err
	}
	logger.Debug("response computed", "points", len(rows), "measured", c.Measure)

	s := params.Snapshot()
	fmt.Println(cli.TitleStyle.Render("Frequency response"))
	for id := range eq.NumParams {
		info, _ := eq.Info(id)
		cli.PrintKeyValue(os.Stdout, info.Name, info.Format(s.Value(id)))
	}
	fmt.Println()

	tbl := cli.ResponseTable{Rows: rows}
	fmt.Print(tbl.String())
	return nil
}

// responseRows evaluates the equalizer at freqs. With measure set, the
// prepared processor is also driven with an impulse and its FFT read back.
func responseRows(params *eq.Params, sampleRate float64, freqs []float64, measure bool, fftSize int) ([]cli.ResponseRow, error) {
	proc := eq.New(params)
	if err := proc.Prepare(sampleRate, fftSize); err != nil {
		return nil, err
	}

	rows := make([]cli.ResponseRow, len(freqs))
	for i, f := range freqs {
		rows[i] = cli.ResponseRow{FreqHz: f, Model: proc.MagnitudeDB(f), Measured: math.NaN()}
	}
	if !measure {
		return rows, nil
	}

	analyzer, err := response.NewAnalyzer(fftSize, sampleRate)
	if err != nil {
		return nil, err
	}
	curve, err := analyzer.Measure(func(buf []float64) {
		proc.ProcessBlock([][]float64{buf}, 1)
	})
	if err != nil {
		return nil, err
	}
	measured, err := curve.At(freqs...)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Measured = measured[i]
	}

	return rows, nil
}
