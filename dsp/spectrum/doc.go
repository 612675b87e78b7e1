// Package spectrum provides stateless spectral measurement utilities built
// on the transform engine: frequency response by reference division,
// minimum-phase reconstruction via the complex cepstrum, out-of-band gain
// adjustment, magnitude/power/phase/real/imaginary views, interpolation and
// fractional-octave smoothing of sampled responses.
//
// Magnitude and power extraction use SIMD-optimized kernels when available.
package spectrum
