package conv

// FIR applies a fixed kernel to sample buffers in place: the convolution
// result truncated to the buffer length. It satisfies the filter contract
// of the measurement session, so synthesized correction kernels can be
// measured like any other filter.
type FIR struct {
	kernel []float64
}

// NewFIR wraps a convolution kernel.
func NewFIR(kernel []float64) (*FIR, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	k := make([]float64, len(kernel))
	copy(k, kernel)

	return &FIR{kernel: k}, nil
}

// Process convolves the buffer with the kernel in place, keeping the first
// len(buf) samples of the result.
func (f *FIR) Process(buf []float64) {
	if len(buf) == 0 {
		return
	}

	out, err := FFT(buf, f.kernel)
	if err != nil {
		return
	}

	copy(buf, out[:len(buf)])
}
