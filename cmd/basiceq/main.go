// Command basiceq applies the three-band equalizer to WAV files, prints
// its frequency response and plays audio through it.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/cli"
)

var version = "0.1.0"

type versionFlag bool

func (versionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	cli.PrintVersion(app.Stdout, vars["version"])
	app.Exit(0)
	return nil
}

// eqFlags selects the equalizer settings: an optional preset, then
// individual overrides by parameter key.
type eqFlags struct {
	Preset string             `short:"p" type:"existingfile" help:"TOML preset to start from."`
	Set    map[string]float64 `short:"s" help:"Override a parameter, e.g. --set peak_gain=6 (keys: low_cut_freq, high_cut_freq, peak_freq, peak_gain, peak_q, low_cut_slope, high_cut_slope)."`
}

// params builds the parameter set from the preset and overrides.
func (f *eqFlags) params() (*eq.Params, error) {
	s := eq.DefaultSnapshot()
	if f.Preset != "" {
		var err error
		if s, err = eq.LoadPreset(f.Preset); err != nil {
			return nil, err
		}
	}

	p := eq.NewParams()
	p.Restore(s)

	for key, v := range f.Set {
		id, ok := eq.ParamByKey(key)
		if !ok {
			return nil, fmt.Errorf("unknown parameter %q", key)
		}
		// Slopes are given in dB/octave on the command line.
		if id == eq.ParamLowCutSlope || id == eq.ParamHighCutSlope {
			v /= 12
		}
		p.Set(id, v)
	}

	return p, nil
}

// CLI defines the command-line interface.
type CLI struct {
	Version versionFlag `short:"v" help:"Show version information."`
	Verbose bool        `help:"Enable debug logging."`

	Render   renderCmd   `cmd:"" help:"Equalize a WAV file."`
	Response responseCmd `cmd:"" help:"Print the frequency response."`
	Play     playCmd     `cmd:"" help:"Play a WAV file through the equalizer."`
	Preset   presetCmd   `cmd:"" help:"Write a preset file."`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("basiceq"),
		kong.Description("Three-band stereo parametric equalizer"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	level := slog.LevelInfo
	if cliArgs.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := ctx.Run(logger); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}
