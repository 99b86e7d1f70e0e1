package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
)

type renderCmd struct {
	EQ        eqFlags `embed:""`
	BlockSize int     `default:"512" help:"Processing block size in frames."`

	Input  string `arg:"" type:"existingfile" help:"Input WAV file."`
	Output string `arg:"" type:"path" help:"Output WAV file."`
}

func (c *renderCmd) Run(logger *slog.Logger) error {
	params, err := c.EQ.params()
	if err != nil {
		return err
	}

	in, err := os.Open(c.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	src, format, err := openWAV(in)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Input, err)
	}
	defer src.Close()

	proc := eq.New(params,
		core.WithSampleRate(float64(format.SampleRate)),
		core.WithBlockSize(c.BlockSize))
	st, err := eq.NewStreamer(src, proc)
	if err != nil {
		return err
	}

	logger.Debug("rendering", "input", c.Input, "output", c.Output,
		"sample_rate", int(format.SampleRate), "channels", format.NumChannels, "block_size", c.BlockSize)

	out, err := os.Create(c.Output)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := wav.Encode(out, st, format); err != nil {
		out.Close()
		return fmt.Errorf("%s: %w", c.Output, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	logger.Info("rendered", "output", c.Output,
		"duration", format.SampleRate.D(src.Len()).Round(time.Millisecond),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// openWAV decodes a WAV stream and checks that its channel layout can be
// processed.
func openWAV(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	src, format, err := wav.Decode(f)
	if err != nil {
		return nil, beep.Format{}, err
	}
	if !eq.SupportsLayout(format.NumChannels, format.NumChannels) {
		src.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported channel count %d", format.NumChannels)
	}

	return src, format, nil
}
