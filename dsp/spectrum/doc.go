// Package spectrum holds the frequency-domain helpers used to measure the
// equalizer: a single-bin Goertzel analyzer for steady-state tone levels and
// utilities that turn FFT bins into magnitude curves.
//
// FFTs themselves come from algo-fft; this package only post-processes bins.
package spectrum
