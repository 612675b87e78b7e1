package fit

import "errors"

// Errors returned by configuration validation and the fitting strategies.
var (
	ErrInvalidSampleRate    = errors.New("fit: sample rate must be positive")
	ErrInvalidFrequencySpan = errors.New("fit: frequency range must be positive and ascending")
	ErrInvalidGainRange     = errors.New("fit: gain range must be ascending")
	ErrInvalidGainPrecision = errors.New("fit: gain precision must be positive")
	ErrInvalidQRange        = errors.New("fit: Q range must be positive and ascending")
	ErrInvalidIterations    = errors.New("fit: iteration count must be at least 1")
	ErrInvalidGridPoints    = errors.New("fit: grid must hold at least 2 points")
	ErrNilCurve             = errors.New("fit: target curve must not be nil")
	ErrInvalidBandCount     = errors.New("fit: band count must be at least 1")
	ErrInvalidBandSpacing   = errors.New("fit: bands per octave must be positive")
)

// Config bounds the search space of the band fitter.
type Config struct {
	// SampleRate is the rate trial bands are designed and measured at.
	SampleRate float64

	// MinFrequency and MaxFrequency bound the correction range; the
	// residual grid spans exactly this range.
	MinFrequency float64
	MaxFrequency float64

	// MinGain and MaxGain clamp band gains in dB; GainPrecision is the
	// snapping step applied to every returned gain.
	MinGain       float64
	MaxGain       float64
	GainPrecision float64

	// MinQ and MaxQ clamp band selectivity.
	MinQ float64
	MaxQ float64

	// Iterations bounds each parameter refinement. Every iteration
	// evaluates two candidates and halves the search range.
	Iterations int

	// InitialGain/InitialQ are the refinement starting points;
	// GainHalfRange/QHalfRange the initial search half-ranges.
	InitialGain   float64
	GainHalfRange float64
	InitialQ      float64
	QHalfRange    float64

	// GridPoints is the size of the log-spaced residual grid.
	GridPoints int
}

// DefaultConfig returns the fitter defaults for full-range room correction.
func DefaultConfig() Config {
	return Config{
		SampleRate:    44100,
		MinFrequency:  20,
		MaxFrequency:  20000,
		MinGain:       -12,
		MaxGain:       12,
		GainPrecision: 0.1,
		MinQ:          0.2,
		MaxQ:          16,
		Iterations:    8,
		InitialGain:   0,
		GainHalfRange: 12,
		InitialQ:      2,
		QHalfRange:    1.8,
		GridPoints:    256,
	}
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	if c.MinFrequency <= 0 || c.MaxFrequency <= c.MinFrequency {
		return ErrInvalidFrequencySpan
	}

	if c.MaxFrequency > c.SampleRate/2 {
		return ErrInvalidFrequencySpan
	}

	if c.MinGain >= c.MaxGain {
		return ErrInvalidGainRange
	}

	if c.GainPrecision <= 0 {
		return ErrInvalidGainPrecision
	}

	if c.MinQ <= 0 || c.MaxQ <= c.MinQ {
		return ErrInvalidQRange
	}

	if c.Iterations < 1 {
		return ErrInvalidIterations
	}

	if c.GridPoints < 2 {
		return ErrInvalidGridPoints
	}

	return nil
}
