// Package conv provides linear convolution for applying correction
// kernels.
//
// Direct is the plain time-domain form; FFT uses zero-padded transforms
// and is preferred for long kernels. FIR wraps a kernel as an in-place
// filter so it can be driven through the measurement session.
package conv
