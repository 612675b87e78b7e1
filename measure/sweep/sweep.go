package sweep

import (
	"errors"
	"math"
)

// Errors returned by sweep functions.
var (
	ErrInvalidFrequency  = errors.New("sweep: frequency must be positive")
	ErrInvalidSampleRate = errors.New("sweep: sample rate must be positive")
	ErrInvalidLength     = errors.New("sweep: length must be positive")
	ErrFrequencyOrder    = errors.New("sweep: start frequency must be less than end frequency")
)

// ExpSweep generates an exponential (logarithmic) sine sweep of a fixed
// sample count, the excitation signal for frequency-response measurement.
//
// The instantaneous frequency rises exponentially from StartFreq to
// EndFreq, so each octave is excited for the same amount of time.
type ExpSweep struct {
	StartFreq  float64 // start frequency in Hz
	EndFreq    float64 // end frequency in Hz
	SampleRate float64 // sample rate in Hz
	Length     int     // sweep length in samples
}

// Validate checks that the sweep parameters are valid.
func (s *ExpSweep) Validate() error {
	if s.StartFreq <= 0 || s.EndFreq <= 0 {
		return ErrInvalidFrequency
	}

	if s.StartFreq >= s.EndFreq {
		return ErrFrequencyOrder
	}

	if s.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	if s.Length <= 0 {
		return ErrInvalidLength
	}

	return nil
}

// Generate creates the exponential sine sweep signal.
//
// With T = Length/SampleRate and r = EndFreq/StartFreq, the instantaneous
// frequency is
//
//	f(t) = f1 * exp(t/T * ln(r))
//
// and integrating the phase gives
//
//	x(t) = sin(2*pi * f1 * T / ln(r) * (exp(t/T * ln(r)) - 1))
func (s *ExpSweep) Generate() ([]float64, error) {
	err := s.Validate()
	if err != nil {
		return nil, err
	}

	out := make([]float64, s.Length)

	T := float64(s.Length) / s.SampleRate
	lnRatio := math.Log(s.EndFreq / s.StartFreq)
	k := 2 * math.Pi * s.StartFreq * T / lnRatio

	for i := range out {
		t := float64(i) / s.SampleRate
		out[i] = math.Sin(k * (math.Exp(t/T*lnRatio) - 1))
	}

	return out, nil
}
