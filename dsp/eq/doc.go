// Package eq implements a three-band stereo parametric equalizer: a low
// cut with selectable slope, a peak (bell) band and a high cut with
// selectable slope, applied to the left and right channels independently.
//
// Parameters live in a [Params] set of atomic cells that any goroutine may
// write. A [Processor] owned by the audio thread snapshots them at the start
// of a block, recomputes filter coefficients only when something changed and
// then runs each channel through its own [ChannelChain]. Once prepared, the
// block path neither allocates nor locks.
//
// Cut filters are Butterworth cascades of up to four biquad sections. The
// section storage is fixed; changing the slope only changes how many
// sections are active. Sections that stay active keep their state; a section
// switched on by a slope increase starts from zero.
package eq
