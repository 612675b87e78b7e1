package probe

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-roomeq/dsp/core"
	"github.com/cwbudde/algo-roomeq/dsp/fft"
	"github.com/cwbudde/algo-roomeq/dsp/spectrum"
	"github.com/cwbudde/algo-roomeq/measure/ir"
	"github.com/cwbudde/algo-roomeq/measure/sweep"
)

// SweepLength is the excitation length in samples for every measurement.
const SweepLength = 65536

// Errors returned by measurement sessions.
var (
	ErrNilFilter         = errors.New("probe: filter must not be nil")
	ErrInvalidSampleRate = errors.New("probe: sample rate must be positive")
)

// Filter is the contract a measurable component satisfies: an in-place
// transformation of a sample buffer. The session calls Process exactly once
// per fresh excitation signal per measurement, since many filters carry
// internal state or history.
type Filter interface {
	Process(buf []float64)
}

// Session measures one filter at one sample rate by driving it with an
// exponential sweep from 1 Hz to Nyquist and comparing the output spectrum
// against the unprocessed reference. All derived quantities are computed at
// most once and cached for the session's lifetime.
//
// A Session is not reusable across a filter state change; construct a new
// one, or call Reset with the new filter configuration.
type Session struct {
	filter     Filter
	sampleRate float64
	plan       *fft.Plan

	response []complex128
	spec     []float64
	gain     float64
	gainSet  bool
	impulse  *ir.Response
}

// NewSession binds a filter and a sample rate for measurement.
func NewSession(filter Filter, sampleRate float64) (*Session, error) {
	if filter == nil {
		return nil, ErrNilFilter
	}

	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	plan, err := fft.NewPlan(SweepLength)
	if err != nil {
		return nil, fmt.Errorf("probe: %w", err)
	}

	return &Session{
		filter:     filter,
		sampleRate: sampleRate,
		plan:       plan,
	}, nil
}

// Reset discards all cached measurements and re-arms the session with a
// new filter configuration.
func (s *Session) Reset(filter Filter) error {
	if filter == nil {
		return ErrNilFilter
	}

	s.filter = filter
	s.response = nil
	s.spec = nil
	s.gain = 0
	s.gainSet = false
	s.impulse = nil

	return nil
}

// SampleRate returns the sample rate the session measures at.
func (s *Session) SampleRate() float64 {
	return s.sampleRate
}

// FrequencyResponse returns the complex frequency response of the filter,
// measured output spectrum divided by reference spectrum. The returned
// slice is owned by the session and must not be modified.
func (s *Session) FrequencyResponse() ([]complex128, error) {
	if err := s.measure(); err != nil {
		return nil, err
	}

	return s.response, nil
}

// Spectrum returns the magnitude of the causal half of the frequency
// response, bins 0..SweepLength/2. The returned slice is owned by the
// session and must not be modified.
func (s *Session) Spectrum() ([]float64, error) {
	if s.spec != nil {
		return s.spec, nil
	}

	if err := s.measure(); err != nil {
		return nil, err
	}

	s.spec = spectrum.Magnitude(s.response[:SweepLength/2+1])

	return s.spec, nil
}

// Gain returns the maximum of the magnitude spectrum as linear amplitude.
func (s *Session) Gain() (float64, error) {
	if s.gainSet {
		return s.gain, nil
	}

	spec, err := s.Spectrum()
	if err != nil {
		return 0, err
	}

	maxGain := 0.0
	for _, v := range spec {
		if v > maxGain {
			maxGain = v
		}
	}

	s.gain = maxGain
	s.gainSet = true

	return s.gain, nil
}

// GainDB returns the maximum of the magnitude spectrum in dB.
func (s *Session) GainDB() (float64, error) {
	gain, err := s.Gain()
	if err != nil {
		return 0, err
	}

	return core.LinearToDB(gain), nil
}

// ImpulseResponse returns the impulse response analyzer for the measured
// frequency response.
func (s *Session) ImpulseResponse() (*ir.Response, error) {
	if s.impulse != nil {
		return s.impulse, nil
	}

	if err := s.measure(); err != nil {
		return nil, err
	}

	buf := make([]complex128, len(s.response))
	copy(buf, s.response)

	impulse, err := ir.New(buf)
	if err != nil {
		return nil, err
	}

	s.impulse = impulse

	return s.impulse, nil
}

// Delay returns the dominant peak position of the impulse response in
// samples.
func (s *Session) Delay() (int, error) {
	impulse, err := s.ImpulseResponse()
	if err != nil {
		return 0, err
	}

	return impulse.Delay(), nil
}

// Polarity reports the sign of the impulse response at its dominant peak.
func (s *Session) Polarity() (bool, error) {
	impulse, err := s.ImpulseResponse()
	if err != nil {
		return false, err
	}

	return impulse.Polarity(), nil
}

// measure runs the actual measurement once: generate the sweep, keep a
// pristine reference, run the filter over the clone exactly once, and
// divide the spectra.
func (s *Session) measure() error {
	if s.response != nil {
		return nil
	}

	sw := &sweep.ExpSweep{
		StartFreq:  1,
		EndFreq:    s.sampleRate / 2,
		SampleRate: s.sampleRate,
		Length:     SweepLength,
	}

	reference, err := sw.Generate()
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}

	measured := make([]float64, len(reference))
	copy(measured, reference)
	s.filter.Process(measured)

	refSpec := make([]complex128, SweepLength)
	for i, v := range reference {
		refSpec[i] = complex(v, 0)
	}

	measSpec := make([]complex128, SweepLength)
	for i, v := range measured {
		measSpec[i] = complex(v, 0)
	}

	if err := s.plan.Forward(refSpec); err != nil {
		return err
	}

	if err := s.plan.Forward(measSpec); err != nil {
		return err
	}

	response, err := spectrum.FrequencyResponse(refSpec, measSpec)
	if err != nil {
		return err
	}

	s.response = response

	return nil
}
