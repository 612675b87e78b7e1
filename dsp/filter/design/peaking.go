package design

import "github.com/cwbudde/algo-roomeq/dsp/filter/biquad"

// PeakingBand is one parametric equalizer band: a peaking biquad described
// by its sample rate, center frequency, quality factor and gain. It is the
// atomic output unit of the band-fitting optimizer, which constructs,
// evaluates and discards candidate bands freely.
//
// Bands are comparable by their four fields, which the optimizer's cleanup
// step relies on.
type PeakingBand struct {
	SampleRate float64
	Frequency  float64
	Q          float64
	GainDB     float64
}

// NewPeakingBand constructs a band from its defining parameters.
func NewPeakingBand(sampleRate, frequency, q, gainDB float64) PeakingBand {
	return PeakingBand{
		SampleRate: sampleRate,
		Frequency:  frequency,
		Q:          q,
		GainDB:     gainDB,
	}
}

// Section returns a fresh biquad section realizing the band, with zero
// filter state.
func (b PeakingBand) Section() *biquad.Section {
	return biquad.NewSection(Peak(b.Frequency, b.GainDB, b.Q, b.SampleRate))
}

// Process filters buf in place through the band, starting from zero filter
// state. It satisfies the filter contract the measurement session consumes.
func (b PeakingBand) Process(buf []float64) {
	b.Section().ProcessBlock(buf)
}
