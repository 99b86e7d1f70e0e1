// Package response measures the frequency response of a block processor.
//
// Analyzer drives an impulse through the processor and transforms the
// captured impulse response with algo-fft. ToneGainDB measures the
// steady-state gain at one frequency with a Hann-windowed Goertzel, which is
// how the equalizer tests check band gains against the analytic response.
package response
