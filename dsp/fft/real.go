package fft

import (
	"math"
	"math/cmplx"
)

// RealMagnitude computes, in place, the magnitude spectrum of a real-valued
// buffer of the plan's length. Bins 0..n/2 receive |X[k]| and the upper half
// is mirrored (|X[n-k]| = |X[k]|), matching the zero-imaginary complex
// embedding within floating-point tolerance.
//
// The work is halved by packing even samples into the real and odd samples
// into the imaginary component of a half-length complex transform, then
// untangling the two interleaved spectra.
func (p *Plan) RealMagnitude(buf []float64) error {
	if len(buf) != p.n {
		return ErrLengthMismatch
	}

	if p.n&1 == 1 {
		return ErrOddRealLength
	}

	if p.n == 1 {
		buf[0] = math.Abs(buf[0])
		return nil
	}

	m := p.n / 2
	for j := 0; j < m; j++ {
		p.even[j] = complex(buf[2*j], buf[2*j+1])
	}

	// Half-length transform reuses the full-length twiddle tables at
	// stride 2 (W_{n/2}^k = W_n^{2k}).
	p.transformHalf(p.even)

	// Untangle: Z[k] interleaves the spectra of the even and odd sample
	// streams. With Zc = conj(Z[(m-k) mod m]):
	//
	//	Fe[k] = (Z[k] + Zc) / 2
	//	Fo[k] = -i * (Z[k] - Zc) / 2
	//	X[k]  = Fe[k] + W_n^k * Fo[k]
	z0 := p.even[0]
	nyquist := real(z0) - imag(z0)

	for k := 0; k < m; k++ {
		zk := p.even[k]

		var zc complex128
		if k == 0 {
			zc = cmplx.Conj(p.even[0])
		} else {
			zc = cmplx.Conj(p.even[m-k])
		}

		fe := complex(
			(real(zk)+real(zc))/2,
			(imag(zk)+imag(zc))/2,
		)
		fo := complex(
			(imag(zk)-imag(zc))/2,
			(real(zc)-real(zk))/2,
		)

		wr := p.cos[k]
		wi := -p.sin[k]
		wfo := complex(real(fo)*wr-imag(fo)*wi, real(fo)*wi+imag(fo)*wr)

		x := fe + wfo
		buf[k] = math.Hypot(real(x), imag(x))
	}

	buf[m] = math.Abs(nyquist)

	for k := 1; k < m; k++ {
		buf[p.n-k] = buf[k]
	}

	return nil
}

// transformHalf runs a forward transform of length n/2 over buf using the
// plan's tables at twiddle stride 2, with the odd buffer as scratch.
func (p *Plan) transformHalf(buf []complex128) {
	transformInitOnce.Do(initTransformKernel)
	transformImpl(buf, p.odd, p.cos, p.sin, 2, false)
}
