package eq

import (
	"github.com/gopxl/beep"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// Streamer runs a beep.Streamer through a Processor. Stereo frames are
// split into planes and processed in chunks of the processor's maximum
// block size; the scratch planes are allocated once, in NewStreamer.
type Streamer struct {
	src  beep.Streamer
	proc *Processor

	left, right []float64
	planes      [][]float64
}

// NewStreamer wraps src. An unprepared proc is prepared with its
// configured settings.
func NewStreamer(src beep.Streamer, proc *Processor) (*Streamer, error) {
	if proc.State() != StatePrepared {
		if err := proc.PrepareDefault(); err != nil {
			return nil, err
		}
	}

	block := proc.MaxBlockSize()
	return &Streamer{
		src:    src,
		proc:   proc,
		left:   make([]float64, block),
		right:  make([]float64, block),
		planes: make([][]float64, MaxChannels),
	}, nil
}

// Stream implements beep.Streamer.
func (s *Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = s.src.Stream(samples)

	block := len(s.left)
	for off := 0; off < n; off += block {
		frames := samples[off:min(off+block, n)]
		m := core.Deinterleave(s.left, s.right, frames)
		s.planes[0], s.planes[1] = s.left[:m], s.right[:m]
		s.proc.ProcessBlock(s.planes, MaxChannels)
		core.Interleave(frames, s.left[:m], s.right[:m])
	}

	return n, ok
}

// Err implements beep.Streamer.
func (s *Streamer) Err() error {
	return s.src.Err()
}

// Processor returns the wrapped processor.
func (s *Streamer) Processor() *Processor {
	return s.proc
}
