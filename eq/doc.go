// Package eq models equalization correction curves.
//
// A Curve is an ordered set of (frequency, gain) control points interpreted
// as a piecewise linear function of log frequency. Curves can be sampled
// for display, applied to a complex spectrum, rendered into a causal
// minimum-phase convolution kernel, derived from a smoothed measurement
// against a target tonal curve, or parsed from calibration text files.
package eq
