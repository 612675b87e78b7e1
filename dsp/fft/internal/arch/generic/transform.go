// Package generic provides the portable pure-Go transform kernel.
package generic

// Transform performs an iterative Stockham radix-2 transform of buf in
// place. Each pass halves the butterfly group count and doubles the group
// size, ping-ponging between buf and scratch; the self-sorting data flow
// needs no bit-reversal permutation. If the pass count is odd the result
// lands in scratch and is copied back.
//
// cos/sin hold cos(2*pi*i/N) and sin(2*pi*i/N) for the plan length N;
// tstride scales twiddle indices so a transform of length N/tstride can
// share the same tables. conjugate selects the inverse (un-normalized)
// direction.
func Transform(buf, scratch []complex128, cos, sin []float64, tstride int, conjugate bool) {
	n := len(buf)
	if n <= 1 {
		return
	}

	x := buf
	y := scratch[:n]
	passes := 0

	for half, s := n/2, 1; half >= 1; half, s = half/2, s*2 {
		for p := 0; p < half; p++ {
			wr := cos[p*s*tstride]
			wi := -sin[p*s*tstride]

			if conjugate {
				wi = -wi
			}

			base := s * p
			mid := s * (p + half)
			out0 := s * 2 * p
			out1 := s * (2*p + 1)

			for q := 0; q < s; q++ {
				a := x[base+q]
				b := x[mid+q]
				y[out0+q] = a + b

				d := a - b
				y[out1+q] = complex(real(d)*wr-imag(d)*wi, real(d)*wi+imag(d)*wr)
			}
		}

		x, y = y, x
		passes++
	}

	if passes&1 == 1 {
		copy(buf, scratch[:n])
	}
}
