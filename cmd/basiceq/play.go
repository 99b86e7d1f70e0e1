package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/presetwatch"
)

type playCmd struct {
	EQ        eqFlags       `embed:""`
	Watch     bool          `short:"w" help:"Reload --preset whenever it changes."`
	Buffer    time.Duration `default:"100ms" help:"Speaker buffer length."`
	BlockSize int           `default:"512" help:"Processing block size in frames."`

	Input string `arg:"" type:"existingfile" help:"WAV file to play."`
}

func (c *playCmd) Run(logger *slog.Logger) error {
	if c.Watch && c.EQ.Preset == "" {
		return errors.New("--watch needs --preset")
	}

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
		return err
	}
	defer src.Close()

	proc := eq.New(params,
		core.WithSampleRate(float64(format.SampleRate)),
		core.WithBlockSize(c.BlockSize))
	st, err := eq.NewStreamer(src, proc)
	if err != nil {
		return err
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(c.Buffer)); err != nil {
		return err
	}
	defer speaker.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if c.Watch {
		go func() {
			if err := presetwatch.Watch(ctx, c.EQ.Preset, params, logger); err != nil {
				logger.Error("preset watch stopped", "err", err)
			}
		}()
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(st, beep.Callback(func() {
		close(done)
	})))
	logger.Info("playing", "file", c.Input, "duration", format.SampleRate.D(src.Len()).Round(time.Second))

	select {
	case <-done:
	case <-ctx.Done():
		speaker.Clear()
	}

	return st.Err()
}
