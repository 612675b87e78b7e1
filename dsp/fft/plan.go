package fft

import (
	"errors"
	"fmt"
	"math"
	"sync"

	archregistry "github.com/cwbudde/algo-roomeq/dsp/fft/internal/arch/registry"
	"github.com/cwbudde/algo-roomeq/dsp/core"
	"github.com/cwbudde/algo-roomeq/internal/cpu"
)

// Errors returned by transform functions.
var (
	ErrNotPowerOfTwo = errors.New("fft: length must be a power of two")
	ErrLengthMismatch = errors.New("fft: buffer length does not match plan length")
	ErrOddRealLength  = errors.New("fft: real buffer length must be even")
)

var (
	transformImpl     archregistry.TransformFn
	transformInitOnce sync.Once
)

// Plan precomputes twiddle tables and scratch buffers for transforms of one
// fixed power-of-two length. A Plan may be shared read-only across many
// transforms of that length, but its scratch buffers are mutated during a
// transform, so it must not be used by two transforms in flight at once.
// Changing the length means creating a new Plan.
type Plan struct {
	n int

	// twiddle tables, length n/2: cos(2*pi*i/n) and sin(2*pi*i/n)
	cos []float64
	sin []float64

	// ping-pong partner for the in-place transform, length n
	temp []complex128

	// working buffers for the real-input split, length n/2
	even []complex128
	odd  []complex128
}

// NewPlan creates a plan for transforms of length n.
// n must be a power of two >= 1.
func NewPlan(n int) (*Plan, error) {
	if !core.IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	}

	p := &Plan{
		n:    n,
		cos:  make([]float64, n/2),
		sin:  make([]float64, n/2),
		temp: make([]complex128, n),
		even: make([]complex128, n/2),
		odd:  make([]complex128, n/2),
	}

	for i := range p.cos {
		phi := 2 * math.Pi * float64(i) / float64(n)
		p.cos[i] = math.Cos(phi)
		p.sin[i] = math.Sin(phi)
	}

	return p, nil
}

// Len returns the transform length the plan is bound to.
func (p *Plan) Len() int {
	return p.n
}

// Forward computes the discrete Fourier transform of buf in place.
// len(buf) must equal the plan length. Length 1 is a no-op.
func (p *Plan) Forward(buf []complex128) error {
	if len(buf) != p.n {
		return fmt.Errorf("%w: got %d, plan %d", ErrLengthMismatch, len(buf), p.n)
	}

	p.transform(buf, false)

	return nil
}

// Inverse computes the inverse discrete Fourier transform of buf in place,
// including the 1/n normalization. len(buf) must equal the plan length.
func (p *Plan) Inverse(buf []complex128) error {
	if len(buf) != p.n {
		return fmt.Errorf("%w: got %d, plan %d", ErrLengthMismatch, len(buf), p.n)
	}

	p.transform(buf, true)

	scale := 1 / float64(p.n)
	for i := range buf {
		buf[i] = complex(real(buf[i])*scale, imag(buf[i])*scale)
	}

	return nil
}

// InverseRaw computes the inverse transform without the 1/n normalization.
// It exists so multi-transform pipelines (e.g. minimum-phase reconstruction)
// can fold the scaling into their own processing instead of paying it twice.
// The public Inverse applies the normalization exactly once.
func (p *Plan) InverseRaw(buf []complex128) error {
	if len(buf) != p.n {
		return fmt.Errorf("%w: got %d, plan %d", ErrLengthMismatch, len(buf), p.n)
	}

	p.transform(buf, true)

	return nil
}

// transform is the single dispatch point for the kernel selected at first
// use. A native kernel registered with a higher priority replaces the
// portable one transparently; both must produce equivalent results.
func (p *Plan) transform(buf []complex128, conjugate bool) {
	transformInitOnce.Do(initTransformKernel)
	transformImpl(buf, p.temp, p.cos, p.sin, 1, conjugate)
}

func initTransformKernel() {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("fft: no transform kernel registered (missing generic fallback?)")
	}

	if entry.Transform == nil {
		panic("fft: selected kernel missing Transform")
	}

	transformImpl = entry.Transform
}
