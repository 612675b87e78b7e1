// Package fft provides an in-place radix-2 discrete Fourier transform bound
// to a fixed power-of-two length.
//
// A [Plan] precomputes the twiddle tables and scratch buffers for one
// length. The transform itself is an iterative, self-sorting Stockham
// decimation: each pass doubles the butterfly group size while halving the
// group count, alternating between the caller's buffer and the plan's
// scratch buffer so no bit-reversal permutation is needed.
//
// The inverse transform uses conjugated twiddles and normalizes by 1/n at
// the public entry point; [Plan.InverseRaw] skips the normalization for
// pipelines that fold it into later processing.
//
// For real-valued signals, [Plan.RealMagnitude] halves the work by packing
// even/odd samples into a half-length complex transform and untangling the
// result.
//
// # Usage
//
//	plan, _ := fft.NewPlan(1024)
//	buf := make([]complex128, 1024)
//	// ... fill buf ...
//	plan.Forward(buf)
//	// ... process spectrum ...
//	plan.Inverse(buf)
//
// A Plan owns mutable scratch memory: it is safe to reuse sequentially but
// not for two transforms running concurrently.
package fft
