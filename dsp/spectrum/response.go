package spectrum

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-roomeq/dsp/core"
)

// Errors returned by spectral measurement functions.
var (
	ErrLengthMismatch       = errors.New("spectrum: spectra must have equal length")
	ErrNonPositiveMagnitude = errors.New("spectrum: minimum phase requires positive magnitudes")
	ErrInvalidSampleRate    = errors.New("spectrum: sample rate must be positive")
)

// FrequencyResponse divides the measured spectrum by the reference spectrum,
// index-aligned, and returns the result. A zero reference bin yields a zero
// result bin, following the complex-division-by-zero convention; no error is
// raised for it.
func FrequencyResponse(reference, measured []complex128) ([]complex128, error) {
	if len(reference) != len(measured) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(reference), len(measured))
	}

	out := make([]complex128, len(measured))

	for i := range measured {
		r := reference[i]

		denom := real(r)*real(r) + imag(r)*imag(r)
		if denom == 0 {
			continue
		}

		m := measured[i]
		out[i] = complex(
			(real(m)*real(r)+imag(m)*imag(r))/denom,
			(imag(m)*real(r)-real(m)*imag(r))/denom,
		)
	}

	return out, nil
}

// OffbandGain scales every bin outside [startFreq, endFreq] by gainDB,
// leaving the protected band untouched. Frequencies map to bin indices as
// bin = n*freq/sampleRate; the scaling is mirrored into the
// negative-frequency half so the spectrum stays conjugate-symmetric.
func OffbandGain(spectrum []complex128, startFreq, endFreq, sampleRate, gainDB float64) error {
	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	n := len(spectrum)
	if n == 0 {
		return nil
	}

	startBin := int(float64(n) * startFreq / sampleRate)
	endBin := int(float64(n) * endFreq / sampleRate)
	gain := complex(core.DBToLinear(gainDB), 0)

	for k := 0; k <= n/2; k++ {
		if k >= startBin && k <= endBin {
			continue
		}

		spectrum[k] *= gain

		if k > 0 && k < n-k {
			spectrum[n-k] *= gain
		}
	}

	return nil
}

// InterpolateLinear performs piecewise-linear interpolation at queryX.
//
// x must be strictly increasing and have the same length as y. Queries
// outside the range of x clamp to the endpoint values.
func InterpolateLinear(x, y, queryX []float64) ([]float64, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, fmt.Errorf("spectrum: interpolate requires non-empty x and y")
	}

	if len(x) != len(y) {
		return nil, fmt.Errorf("spectrum: interpolate x/y length mismatch: %d != %d", len(x), len(y))
	}

	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return nil, fmt.Errorf("spectrum: interpolate x must be strictly increasing at index %d", i)
		}
	}

	out := make([]float64, len(queryX))

	for i, q := range queryX {
		if q <= x[0] {
			out[i] = y[0]
			continue
		}

		if q >= x[len(x)-1] {
			out[i] = y[len(y)-1]
			continue
		}

		j := sort.SearchFloat64s(x, q)
		x0, x1 := x[j-1], x[j]
		t := (q - x0) / (x1 - x0)
		out[i] = y[j-1] + t*(y[j]-y[j-1])
	}

	return out, nil
}

// SmoothFractionalOctave applies 1/N-octave smoothing using the arithmetic
// mean over each fractional-octave band.
//
// freqHz and values must have equal length; freqHz must be strictly
// increasing and positive.
func SmoothFractionalOctave(freqHz, values []float64, fraction int) ([]float64, error) {
	if len(freqHz) == 0 || len(values) == 0 {
		return nil, fmt.Errorf("spectrum: fractional-octave smoothing requires non-empty inputs")
	}

	if len(freqHz) != len(values) {
		return nil, fmt.Errorf("spectrum: fractional-octave input length mismatch: %d != %d", len(freqHz), len(values))
	}

	if fraction <= 0 {
		return nil, fmt.Errorf("spectrum: fractional-octave fraction must be > 0: %d", fraction)
	}

	for i := range freqHz {
		if freqHz[i] <= 0 {
			return nil, fmt.Errorf("spectrum: fractional-octave frequencies must be > 0 at index %d", i)
		}

		if i > 0 && !(freqHz[i] > freqHz[i-1]) {
			return nil, fmt.Errorf("spectrum: fractional-octave frequencies must be strictly increasing at index %d", i)
		}
	}

	out := make([]float64, len(values))
	halfBand := math.Pow(2, 1/(2*float64(fraction)))

	for i, f := range freqHz {
		fLo := f / halfBand
		fHi := f * halfBand

		i0 := sort.Search(len(freqHz), func(k int) bool { return freqHz[k] >= fLo })
		i1 := sort.Search(len(freqHz), func(k int) bool { return freqHz[k] > fHi })

		if i0 >= i1 {
			out[i] = values[i]
			continue
		}

		sum := 0.0
		for j := i0; j < i1; j++ {
			sum += values[j]
		}

		out[i] = sum / float64(i1-i0)
	}

	return out, nil
}
