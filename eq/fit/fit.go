package fit

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-roomeq/dsp/core"
	"github.com/cwbudde/algo-roomeq/dsp/filter/design"
	"github.com/cwbudde/algo-roomeq/dsp/spectrum"
	"github.com/cwbudde/algo-roomeq/eq"
	"github.com/cwbudde/algo-roomeq/eq/fit/internal/arch/registry"
	"github.com/cwbudde/algo-roomeq/internal/cpu"
	"github.com/cwbudde/algo-roomeq/measure/probe"
)

// Fitter searches for small sets of peaking bands approximating a target
// correction curve. All search state lives in the fitter; it is not safe
// for concurrent use.
type Fitter struct {
	cfg      Config
	grid     []float64
	binFreqs []float64
	residual []float64
	scratch  []float64
}

var (
	mixNormOnce sync.Once
	mixNormFn   registry.MixNormFn
)

func mixNorm(dst, residual, band []float64) float64 {
	mixNormOnce.Do(func() {
		entry := registry.Global.Lookup(cpu.DetectFeatures())
		mixNormFn = entry.MixNorm
	})

	return mixNormFn(dst, residual, band)
}

// New builds a fitter for the given configuration.
func New(cfg Config) (*Fitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f := &Fitter{
		cfg:      cfg,
		grid:     floats.LogSpan(make([]float64, cfg.GridPoints), cfg.MinFrequency, cfg.MaxFrequency),
		residual: make([]float64, cfg.GridPoints),
		scratch:  make([]float64, cfg.GridPoints),
	}

	f.binFreqs = make([]float64, probe.SweepLength/2+1)
	for k := range f.binFreqs {
		f.binFreqs[k] = float64(k) * cfg.SampleRate / float64(probe.SweepLength)
	}

	return f, nil
}

// FitAuto repeatedly places a band at the worst remaining deviation,
// refines its gain and then its Q, and folds its effect into the residual.
// It stops when maxBands bands are produced or when a slot yields no
// improvement; a shorter result is valid output, not a failure.
func (f *Fitter) FitAuto(target *eq.Curve, maxBands int) ([]design.PeakingBand, error) {
	if target == nil {
		return nil, ErrNilCurve
	}

	if maxBands < 1 {
		return nil, ErrInvalidBandCount
	}

	f.loadResidual(target)

	var bands []design.PeakingBand

	for len(bands) < maxBands {
		freq := f.grid[f.worstIndex()]

		gain, gainImproved, err := f.refine(
			f.cfg.InitialGain, f.cfg.GainHalfRange, f.cfg.MinGain, f.cfg.MaxGain,
			func(g float64) (float64, error) {
				return f.evalCandidate(freq, f.cfg.InitialQ, g)
			})
		if err != nil {
			return nil, err
		}

		q, qImproved, err := f.refine(
			f.cfg.InitialQ, f.cfg.QHalfRange, f.cfg.MinQ, f.cfg.MaxQ,
			func(q float64) (float64, error) {
				return f.evalCandidate(freq, q, gain)
			})
		if err != nil {
			return nil, err
		}

		if !gainImproved && !qImproved {
			break
		}

		band := design.PeakingBand{
			SampleRate: f.cfg.SampleRate,
			Frequency:  freq,
			Q:          q,
			GainDB:     f.snapGain(gain),
		}

		if err := f.commit(band); err != nil {
			return nil, err
		}

		bands = append(bands, band)
	}

	return cleanup(bands), nil
}

// FitPerPoint produces one band per control point of the target curve. The
// gain is fixed to the sign-inverted point gain, since peaking bands cancel
// the deviation rather than copy it; only Q is refined. A point whose
// refinement never improves the residual is dropped unless alwaysValid is
// set.
func (f *Fitter) FitPerPoint(target *eq.Curve, alwaysValid bool) ([]design.PeakingBand, error) {
	if target == nil {
		return nil, ErrNilCurve
	}

	f.loadResidual(target)

	var bands []design.PeakingBand

	for _, point := range target.Bands() {
		gain := f.snapGain(-point.Gain)

		q, improved, err := f.refine(
			f.cfg.InitialQ, f.cfg.QHalfRange, f.cfg.MinQ, f.cfg.MaxQ,
			func(q float64) (float64, error) {
				return f.evalCandidate(point.Frequency, q, gain)
			})
		if err != nil {
			return nil, err
		}

		if !improved && !alwaysValid {
			continue
		}

		band := design.PeakingBand{
			SampleRate: f.cfg.SampleRate,
			Frequency:  point.Frequency,
			Q:          q,
			GainDB:     gain,
		}

		if err := f.commit(band); err != nil {
			return nil, err
		}

		bands = append(bands, band)
	}

	return cleanup(bands), nil
}

// ConstantBandwidthOptions parameterize the fixed-grid strategy.
type ConstantBandwidthOptions struct {
	// FirstFrequency is the center of the lowest band; band i sits at
	// FirstFrequency * 2^(i/BandsPerOctave).
	FirstFrequency float64
	BandCount      int
	BandsPerOctave float64

	// RoundFrequencies rounds each center to two significant digits, the
	// convention of most hardware equalizers.
	RoundFrequencies bool

	// FrequencyOverrides remaps computed centers to the exact frequencies
	// a device exposes. Applied after rounding.
	FrequencyOverrides map[float64]float64
}

// FitConstantBandwidth places bands on a fixed logarithmic grid with the Q
// implied by the band spacing and refines only the gains.
func (f *Fitter) FitConstantBandwidth(target *eq.Curve, opts ConstantBandwidthOptions) ([]design.PeakingBand, error) {
	if target == nil {
		return nil, ErrNilCurve
	}

	if opts.FirstFrequency <= 0 {
		return nil, ErrInvalidFrequencySpan
	}

	if opts.BandCount < 1 {
		return nil, ErrInvalidBandCount
	}

	if opts.BandsPerOctave <= 0 {
		return nil, ErrInvalidBandSpacing
	}

	f.loadResidual(target)

	ratio := math.Pow(2, 1/opts.BandsPerOctave)
	q := math.Sqrt(ratio) / (ratio - 1)

	var bands []design.PeakingBand

	for i := 0; i < opts.BandCount; i++ {
		freq := opts.FirstFrequency * math.Pow(2, float64(i)/opts.BandsPerOctave)
		if opts.RoundFrequencies {
			freq = roundTwoSignificant(freq)
		}

		if override, ok := opts.FrequencyOverrides[freq]; ok {
			freq = override
		}

		gain, _, err := f.refine(
			f.cfg.InitialGain, f.cfg.GainHalfRange, f.cfg.MinGain, f.cfg.MaxGain,
			func(g float64) (float64, error) {
				return f.evalCandidate(freq, q, g)
			})
		if err != nil {
			return nil, err
		}

		band := design.PeakingBand{
			SampleRate: f.cfg.SampleRate,
			Frequency:  freq,
			Q:          q,
			GainDB:     f.snapGain(gain),
		}

		if err := f.commit(band); err != nil {
			return nil, err
		}

		bands = append(bands, band)
	}

	return cleanup(bands), nil
}

// refine performs a binary-search-like local search of one parameter. Each
// iteration evaluates the lower candidate first; the upper candidate must
// beat the running best strictly. The asymmetry is deliberate and keeps the
// optimizer output reproducible.
func (f *Fitter) refine(initial, halfRange, min, max float64, eval func(float64) (float64, error)) (float64, bool, error) {
	value := core.Clamp(initial, min, max)

	best, err := eval(value)
	if err != nil {
		return 0, false, err
	}

	improved := false
	half := halfRange

	for i := 0; i < f.cfg.Iterations; i++ {
		lower := core.Clamp(value-half, min, max)
		if score, err := eval(lower); err != nil {
			return 0, false, err
		} else if score < best {
			best, value, improved = score, lower, true
		}

		upper := core.Clamp(value+half, min, max)
		if score, err := eval(upper); err != nil {
			return 0, false, err
		} else if score < best {
			best, value, improved = score, upper, true
		}

		half /= 2
	}

	return value, improved, nil
}

// evalCandidate measures a trial band and scores the residual with its
// response mixed in.
func (f *Fitter) evalCandidate(freq, q, gain float64) (float64, error) {
	response, err := f.bandResponse(design.PeakingBand{
		SampleRate: f.cfg.SampleRate,
		Frequency:  freq,
		Q:          q,
		GainDB:     gain,
	})
	if err != nil {
		return 0, err
	}

	return mixNorm(f.scratch, f.residual, response), nil
}

// bandResponse measures a band's magnitude response and resamples it in dB
// onto the fitter's log-frequency grid.
func (f *Fitter) bandResponse(band design.PeakingBand) ([]float64, error) {
	session, err := probe.NewSession(band, band.SampleRate)
	if err != nil {
		return nil, err
	}

	spec, err := session.Spectrum()
	if err != nil {
		return nil, err
	}

	mags, err := spectrum.InterpolateLinear(f.binFreqs, spec, f.grid)
	if err != nil {
		return nil, err
	}

	for i, mag := range mags {
		mags[i] = core.LinearToDB(mag)
	}

	return mags, nil
}

// commit folds a chosen band's response into the residual.
func (f *Fitter) commit(band design.PeakingBand) error {
	response, err := f.bandResponse(band)
	if err != nil {
		return err
	}

	floats.Add(f.residual, response)

	return nil
}

func (f *Fitter) loadResidual(target *eq.Curve) {
	for i, freq := range f.grid {
		f.residual[i] = target.GainAt(freq)
	}
}

func (f *Fitter) worstIndex() int {
	idx, worst := 0, 0.0
	for i, v := range f.residual {
		if a := math.Abs(v); a > worst {
			worst, idx = a, i
		}
	}

	return idx
}

func (f *Fitter) snapGain(gain float64) float64 {
	return core.Snap(gain, f.cfg.MinGain, f.cfg.MaxGain, f.cfg.GainPrecision)
}

// roundTwoSignificant rounds a positive frequency to two significant
// digits, e.g. 31.5 to 32 and 1247 to 1200.
func roundTwoSignificant(v float64) float64 {
	if v <= 0 {
		return v
	}

	scale := math.Pow(10, math.Floor(math.Log10(v))-1)

	return math.Round(v/scale) * scale
}

// cleanup truncates a trailing run of numerically identical bands to its
// first element. A generator that has run dry repeats its final band; the
// repeats carry no information.
func cleanup(bands []design.PeakingBand) []design.PeakingBand {
	n := len(bands)
	for n >= 2 && bands[n-1] == bands[n-2] {
		n--
	}

	return bands[:n]
}
