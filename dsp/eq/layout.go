package eq

const (
	// TailLengthSeconds is how long output continues after input stops.
	// The IIR tails are treated as negligible.
	TailLengthSeconds = 0.0
	// AcceptsMIDI reports whether the equalizer consumes MIDI input.
	AcceptsMIDI = false
	// ProducesMIDI reports whether the equalizer emits MIDI output.
	ProducesMIDI = false
	// MaxChannels is the number of channels that get processed.
	MaxChannels = 2
)

// SupportsLayout reports whether a bus layout with the given input and
// output channel counts can be processed: mono or stereo, with matching
// input and output.
func SupportsLayout(inputs, outputs int) bool {
	if outputs != 1 && outputs != 2 {
		return false
	}

	return inputs == outputs
}
