package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-roomeq/dsp/fft"
)

// MinimumPhase reconstructs, in place, the minimum-phase equivalent of a
// magnitude-only spectrum via the complex cepstrum method. The imaginary
// parts of the input are discarded; every real part must be strictly
// positive (callers threshold the spectrum first - the log of zero is
// undefined).
//
// The steps are: log of each bin's magnitude, inverse transform to the
// cepstrum, fold of the anti-causal half onto the causal half, forward
// transform, complex exponential per bin. The fold doubles bins 1..n/2-1
// by conjugate-adding their mirror, zeroes the anti-causal half, and
// conjugates the Nyquist bin; the 1/n inverse normalization is folded into
// the same pass, so the raw (unscaled) inverse transform is used.
func MinimumPhase(plan *fft.Plan, spectrum []complex128) error {
	n := plan.Len()
	if len(spectrum) != n {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(spectrum), n)
	}

	for i := range spectrum {
		mag := real(spectrum[i])
		if mag <= 0 {
			return fmt.Errorf("%w: bin %d = %g", ErrNonPositiveMagnitude, i, mag)
		}

		spectrum[i] = complex(math.Log(mag), 0)
	}

	if err := plan.InverseRaw(spectrum); err != nil {
		return err
	}

	inv := 1 / float64(n)
	half := n / 2

	spectrum[0] = complex(real(spectrum[0])*inv, imag(spectrum[0])*inv)

	for i := 1; i < half; i++ {
		a := spectrum[i]
		b := spectrum[n-i]
		spectrum[i] = complex((real(a)+real(b))*inv, (imag(a)-imag(b))*inv)
		spectrum[n-i] = 0
	}

	if half >= 1 {
		ny := spectrum[half]
		spectrum[half] = complex(real(ny)*inv, -imag(ny)*inv)
	}

	if err := plan.Forward(spectrum); err != nil {
		return err
	}

	for i := range spectrum {
		mag := math.Exp(real(spectrum[i]))
		phase := imag(spectrum[i])
		spectrum[i] = complex(mag*math.Cos(phase), mag*math.Sin(phase))
	}

	return nil
}
