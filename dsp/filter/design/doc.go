// Package design computes biquad coefficients for the equalizer bands.
//
// Peak, Lowpass and Highpass are the RBJ cookbook designs (bilinear
// transform with frequency prewarping). CutStages distributes the poles of
// a Butterworth prototype over up to four cascaded sections, giving low and
// high cut filters of 12, 24, 36 or 48 dB/octave.
//
// Every designer clamps frequency and Q before doing arithmetic, so any
// finite or non-finite input yields finite coefficients. The functions are
// pure and do not allocate.
package design
