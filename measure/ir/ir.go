package ir

import (
	"errors"
	"math"
	"sort"

	"github.com/cwbudde/algo-roomeq/dsp/fft"
)

// Errors returned by impulse response analysis.
var ErrEmptyResponse = errors.New("ir: frequency response is empty")

// Peak describes one local extremum of the impulse response.
type Peak struct {
	Position int     // sample index
	Size     float64 // absolute amplitude
}

// NoPeak is returned by [Response.Peak] when fewer peaks exist than asked for.
var NoPeak = Peak{Position: -1}

// Response wraps a complex frequency response and lazily derives its
// time-domain impulse response together with the dominant peak (delay,
// polarity) and all local peaks sorted by prominence.
//
// A Response is immutable after construction; a new measurement requires a
// new Response. The derived values are computed once on first access.
type Response struct {
	freq []complex128
	plan *fft.Plan

	time     []float64
	delay    int
	polarity bool
	scanned  bool

	peaks       []Peak
	peaksSorted bool
}

// New wraps a frequency response, taking ownership of the slice. The length
// must be a power of two.
func New(freqResponse []complex128) (*Response, error) {
	if len(freqResponse) == 0 {
		return nil, ErrEmptyResponse
	}

	plan, err := fft.NewPlan(len(freqResponse))
	if err != nil {
		return nil, err
	}

	return &Response{freq: freqResponse, plan: plan}, nil
}

// TimeDomain returns the impulse response derived from the frequency
// response. The returned slice is owned by the Response and must not be
// modified.
func (r *Response) TimeDomain() []float64 {
	r.ensureTime()
	return r.time
}

// Delay returns the sample index of the globally largest absolute sample.
// Ties are broken by the first occurrence in scan order.
func (r *Response) Delay() int {
	r.ensureScan()
	return r.delay
}

// Polarity reports the sign of the impulse response at its dominant peak:
// true for non-negative, false for negative.
func (r *Response) Polarity() bool {
	r.ensureScan()
	return r.polarity
}

// Peaks returns all local extrema of the impulse response, sorted
// descending by absolute amplitude. The returned slice is owned by the
// Response and must not be modified.
func (r *Response) Peaks() []Peak {
	r.ensurePeaks()
	return r.peaks
}

// Peak returns the k-th largest local extremum, or [NoPeak] when fewer
// than k+1 peaks exist.
func (r *Response) Peak(k int) Peak {
	r.ensurePeaks()

	if k < 0 || k >= len(r.peaks) {
		return NoPeak
	}

	return r.peaks[k]
}

func (r *Response) ensureTime() {
	if r.time != nil {
		return
	}

	buf := make([]complex128, len(r.freq))
	copy(buf, r.freq)

	// Length was validated at construction, the inverse cannot fail.
	_ = r.plan.Inverse(buf)

	r.time = make([]float64, len(buf))
	for i, c := range buf {
		r.time[i] = real(c)
	}
}

func (r *Response) ensureScan() {
	if r.scanned {
		return
	}

	r.ensureTime()

	peakIdx := 0
	peakVal := 0.0

	for i, v := range r.time {
		av := math.Abs(v)
		if av > peakVal {
			peakVal = av
			peakIdx = i
		}
	}

	r.delay = peakIdx
	r.polarity = r.time[peakIdx] >= 0
	r.scanned = true
}

func (r *Response) ensurePeaks() {
	if r.peaksSorted {
		return
	}

	r.ensureTime()

	peaks := make([]Peak, 0)

	for pos := 2; pos < len(r.time); pos++ {
		candidate := math.Abs(r.time[pos-1])
		if candidate > math.Abs(r.time[pos-2]) && candidate > math.Abs(r.time[pos]) {
			peaks = append(peaks, Peak{Position: pos - 1, Size: candidate})
		}
	}

	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].Size > peaks[j].Size
	})

	r.peaks = peaks
	r.peaksSorted = true
}
