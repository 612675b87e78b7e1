package eq

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-roomeq/dsp/core"
	"github.com/cwbudde/algo-roomeq/dsp/fft"
	"github.com/cwbudde/algo-roomeq/dsp/spectrum"
)

// DefaultSubsonicRolloff is the gain reduction in dB applied to the
// synthetic subsonic band relative to the lowest user band.
const DefaultSubsonicRolloff = 12.0

// Errors returned by curve operations.
var (
	ErrInvalidFrequency  = errors.New("eq: band frequency must be positive")
	ErrInvalidRange      = errors.New("eq: frequency range must be positive and ascending")
	ErrInvalidPointCount = errors.New("eq: point count must be at least 2")
	ErrInvalidLength     = errors.New("eq: kernel length must be a positive power of two")
	ErrInvalidGain       = errors.New("eq: gain must be positive")
	ErrInvalidSampleRate = errors.New("eq: sample rate must be positive")
	ErrShortSpectrum     = errors.New("eq: spectrum must hold at least two bins of even count")
)

// Band is one control point of a correction curve: a center frequency in Hz
// and a gain in dB. Immutable once constructed.
type Band struct {
	Frequency float64
	Gain      float64
}

// Curve is an ordered, mutable set of bands defining a piecewise linear
// gain-versus-log-frequency correction curve. Bands stay sorted ascending by
// frequency at all times. When the subsonic filter is enabled, a synthetic
// band at half the lowest band's frequency, with its gain reduced by the
// rolloff, is prepended transparently; it tracks the lowest user band and is
// never visible to AddBand or RemoveBand.
type Curve struct {
	bands           []Band
	subsonic        bool
	subsonicRolloff float64
	peakGain        float64
	peakGainValid   bool
}

// NewCurve returns an empty curve with the default subsonic rolloff.
func NewCurve() *Curve {
	return &Curve{
		subsonicRolloff: DefaultSubsonicRolloff,
		peakGainValid:   true,
	}
}

// AddBand inserts a band, keeping the list sorted ascending by frequency.
func (c *Curve) AddBand(band Band) error {
	if band.Frequency <= 0 {
		return ErrInvalidFrequency
	}

	i := sort.Search(len(c.bands), func(i int) bool {
		return c.bands[i].Frequency >= band.Frequency
	})

	c.bands = append(c.bands, Band{})
	copy(c.bands[i+1:], c.bands[i:])
	c.bands[i] = band

	if c.peakGainValid && (len(c.bands) == 1 || band.Gain > c.peakGain) {
		c.peakGain = band.Gain
	}

	return nil
}

// RemoveBand removes the first band with the given frequency and reports
// whether one was found. The peak gain is recomputed lazily afterwards.
func (c *Curve) RemoveBand(frequency float64) bool {
	for i, band := range c.bands {
		if band.Frequency == frequency {
			c.bands = append(c.bands[:i], c.bands[i+1:]...)
			c.peakGainValid = false

			return true
		}
	}

	return false
}

// ClearBands removes all bands.
func (c *Curve) ClearBands() {
	c.bands = c.bands[:0]
	c.peakGain = 0
	c.peakGainValid = true
}

// SetSubsonicFilter toggles the synthetic subsonic band.
func (c *Curve) SetSubsonicFilter(enabled bool) {
	c.subsonic = enabled
}

// SetSubsonicRolloff sets the gain reduction in dB of the subsonic band
// relative to the lowest user band.
func (c *Curve) SetSubsonicRolloff(rolloffDB float64) {
	c.subsonicRolloff = rolloffDB
}

// Len returns the number of user bands, excluding the subsonic band.
func (c *Curve) Len() int {
	return len(c.bands)
}

// Bands returns a copy of the effective band list in ascending frequency
// order, including the subsonic band when enabled.
func (c *Curve) Bands() []Band {
	src := c.effectiveBands()
	out := make([]Band, len(src))
	copy(out, src)

	return out
}

// PeakGain returns the maximum gain across the user bands, zero for an
// empty curve.
func (c *Curve) PeakGain() float64 {
	if !c.peakGainValid {
		c.peakGain = 0
		for i, band := range c.bands {
			if i == 0 || band.Gain > c.peakGain {
				c.peakGain = band.Gain
			}
		}

		c.peakGainValid = true
	}

	return c.peakGain
}

// GainAt evaluates the curve at a frequency: piecewise linear in log
// frequency between bracketing bands, flat at the outermost band's gain
// beyond the ends, zero for an empty curve.
func (c *Curve) GainAt(freq float64) float64 {
	bands := c.effectiveBands()
	if len(bands) == 0 {
		return 0
	}

	if freq <= bands[0].Frequency {
		return bands[0].Gain
	}

	if freq >= bands[len(bands)-1].Frequency {
		return bands[len(bands)-1].Gain
	}

	i := sort.Search(len(bands), func(i int) bool {
		return bands[i].Frequency >= freq
	})

	lo, hi := bands[i-1], bands[i]
	t := (math.Log(freq) - math.Log(lo.Frequency)) /
		(math.Log(hi.Frequency) - math.Log(lo.Frequency))

	return lo.Gain + t*(hi.Gain-lo.Gain)
}

// Visualize samples the curve at pointCount log-spaced frequencies between
// startFreq and endFreq inclusive and returns the gains in dB.
func (c *Curve) Visualize(startFreq, endFreq float64, pointCount int) ([]float64, error) {
	if startFreq <= 0 || endFreq <= startFreq {
		return nil, ErrInvalidRange
	}

	if pointCount < 2 {
		return nil, ErrInvalidPointCount
	}

	grid := floats.LogSpan(make([]float64, pointCount), startFreq, endFreq)

	out := make([]float64, pointCount)
	for i, freq := range grid {
		out[i] = c.GainAt(freq)
	}

	return out, nil
}

// ApplyTo multiplies the causal half of the spectrum, including Nyquist, by
// the curve's linear gain per bin, then mirrors the result conjugate
// symmetrically into the anti-causal half so the curve, viewed as a filter,
// keeps a real-valued impulse response.
func (c *Curve) ApplyTo(spec []complex128, sampleRate float64) error {
	n := len(spec)
	if n < 2 || n&1 == 1 {
		return ErrShortSpectrum
	}

	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	for k := 0; k <= n/2; k++ {
		freq := float64(k) * sampleRate / float64(n)
		spec[k] *= complex(core.DBToLinear(c.GainAt(freq)), 0)
	}

	for k := 1; k < n/2; k++ {
		spec[n-k] = complex(real(spec[k]), -imag(spec[k]))
	}

	return nil
}

// SynthesizeConvolution renders the curve as a causal minimum-phase FIR
// kernel of the given length. It builds a flat spectrum of 2*length scaled
// by the linear gain, applies the curve, reconstructs minimum phase, and
// returns the first length real samples of the inverse transform.
func (c *Curve) SynthesizeConvolution(sampleRate float64, length int, gain float64) ([]float64, error) {
	if length <= 0 || !core.IsPowerOfTwo(length) {
		return nil, ErrInvalidLength
	}

	if gain <= 0 {
		return nil, ErrInvalidGain
	}

	n := 2 * length

	spec := make([]complex128, n)
	for i := range spec {
		spec[i] = complex(gain, 0)
	}

	if err := c.ApplyTo(spec, sampleRate); err != nil {
		return nil, err
	}

	plan, err := fft.NewPlan(n)
	if err != nil {
		return nil, err
	}

	if err := spectrum.MinimumPhase(plan, spec); err != nil {
		return nil, err
	}

	if err := plan.Inverse(spec); err != nil {
		return nil, err
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = real(spec[i])
	}

	return out, nil
}

// effectiveBands returns the band list with the subsonic band prepended
// when it applies. The subsonic band is derived fresh from the lowest user
// band so it always tracks it.
func (c *Curve) effectiveBands() []Band {
	if !c.subsonic || len(c.bands) == 0 {
		return c.bands
	}

	out := make([]Band, 0, len(c.bands)+1)
	out = append(out, Band{
		Frequency: c.bands[0].Frequency / 2,
		Gain:      c.bands[0].Gain - c.subsonicRolloff,
	})

	return append(out, c.bands...)
}
