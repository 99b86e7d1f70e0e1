package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

type presetCmd struct {
	EQ    eqFlags `embed:""`
	Force bool    `short:"f" help:"Overwrite an existing file."`

	Output string `arg:"" type:"path" help:"Preset file to write."`
}

func (c *presetCmd) Run(logger *slog.Logger) error {
	params, err := c.EQ.params()
	if err != nil {
		return err
	}

	if !c.Force {
		if _, err := os.Stat(c.Output); err == nil {
			return fmt.Errorf("%s exists, use --force to overwrite", c.Output)
		}
	}

	if err := eq.SavePreset(c.Output, params.Snapshot()); err != nil {
		return err
	}

	logger.Info("preset written", "path", c.Output)
	return nil
}
