package conv

import (
	"errors"

	"github.com/cwbudde/algo-roomeq/dsp/fft"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput  = errors.New("conv: empty input")
	ErrEmptyKernel = errors.New("conv: empty kernel")
)

// Direct performs time-domain linear convolution of signal and kernel and
// returns a new slice of length len(signal)+len(kernel)-1.
//
// Cost is O(n*m); prefer FFT for kernels beyond a few dozen taps.
func Direct(signal, kernel []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}

	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	out := make([]float64, len(signal)+len(kernel)-1)
	for i, s := range signal {
		for j, k := range kernel {
			out[i+j] += s * k
		}
	}

	return out, nil
}

// FFT performs linear convolution via zero-padded transforms. The result
// equals Direct within floating-point tolerance.
func FFT(signal, kernel []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}

	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	outLen := len(signal) + len(kernel) - 1

	n := 1
	for n < outLen {
		n <<= 1
	}

	plan, err := fft.NewPlan(n)
	if err != nil {
		return nil, err
	}

	a := make([]complex128, n)
	for i, v := range signal {
		a[i] = complex(v, 0)
	}

	b := make([]complex128, n)
	for i, v := range kernel {
		b[i] = complex(v, 0)
	}

	if err := plan.Forward(a); err != nil {
		return nil, err
	}

	if err := plan.Forward(b); err != nil {
		return nil, err
	}

	for i := range a {
		a[i] *= b[i]
	}

	if err := plan.Inverse(a); err != nil {
		return nil, err
	}

	out := make([]float64, outLen)
	for i := range out {
		out[i] = real(a[i])
	}

	return out, nil
}
