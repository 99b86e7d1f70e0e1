// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. A section can be bypassed,
// in which case it passes samples through without touching them.
//
// [Chain] is a fixed-capacity cascade of [MaxSections] sections. Its active
// order selects how many leading sections filter; the remaining sections stay
// allocated but bypassed, so changing the order never reallocates.
//
// This package provides the processing runtime only. Coefficient design
// (Butterworth cut sections, peaking EQ) lives in dsp/filter/design.
package biquad
