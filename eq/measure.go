package eq

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrShortGraph is returned when a measurement graph holds too few samples
// to derive bands from.
var ErrShortGraph = errors.New("eq: measurement graph too short")

// FromMeasurement derives a correction curve from a smoothed magnitude
// graph sampled log-spaced over [startFreq, endFreq]. The log-frequency
// axis is split into windows of resolutionOctaves width, walked from the
// top down; each window becomes one band at its center frequency with
// gain = target(freq) + targetGainDB - windowAverage. The target curve may
// be nil, meaning flat at zero.
func FromMeasurement(graph []float64, startFreq, endFreq float64, target *Curve, targetGainDB, resolutionOctaves float64) (*Curve, error) {
	if err := checkGraph(graph, startFreq, endFreq, 2); err != nil {
		return nil, err
	}

	if resolutionOctaves <= 0 {
		return nil, ErrInvalidRange
	}

	totalOctaves := math.Log2(endFreq / startFreq)
	samplesPerOctave := float64(len(graph)-1) / totalOctaves

	window := int(math.Round(resolutionOctaves * samplesPerOctave))
	if window < 1 {
		window = 1
	}

	// Windows are collected top-down, then added in reverse so the curve
	// ascends in frequency.
	var bands []Band

	for end := len(graph); end > 0; end -= window {
		start := end - window
		if start < 0 {
			start = 0
		}

		avg := stat.Mean(graph[start:end], nil)
		freq := graphFrequency(float64(start+end-1)/2, len(graph), startFreq, endFreq)

		bands = append(bands, Band{
			Frequency: freq,
			Gain:      targetGain(target, freq) + targetGainDB - avg,
		})
	}

	curve := NewCurve()
	for i := len(bands) - 1; i >= 0; i-- {
		if err := curve.AddBand(bands[i]); err != nil {
			return nil, err
		}
	}

	return curve, nil
}

// FromMeasurementAuto derives a correction curve by placing one band at
// every local extremum of the smoothed graph. A band is rejected only when
// the required correction exceeds maxGainDB of boost; cuts of any depth are
// kept.
func FromMeasurementAuto(graph []float64, startFreq, endFreq float64, target *Curve, targetGainDB, maxGainDB float64) (*Curve, error) {
	if err := checkGraph(graph, startFreq, endFreq, 3); err != nil {
		return nil, err
	}

	curve := NewCurve()

	for i := 1; i < len(graph)-1; i++ {
		peak := graph[i] > graph[i-1] && graph[i] > graph[i+1]
		dip := graph[i] < graph[i-1] && graph[i] < graph[i+1]

		if !peak && !dip {
			continue
		}

		freq := graphFrequency(float64(i), len(graph), startFreq, endFreq)

		gain := targetGain(target, freq) + targetGainDB - graph[i]
		if gain > maxGainDB {
			continue
		}

		if err := curve.AddBand(Band{Frequency: freq, Gain: gain}); err != nil {
			return nil, err
		}
	}

	return curve, nil
}

func checkGraph(graph []float64, startFreq, endFreq float64, minLen int) error {
	if len(graph) < minLen {
		return ErrShortGraph
	}

	if startFreq <= 0 || endFreq <= startFreq {
		return ErrInvalidRange
	}

	return nil
}

// graphFrequency maps a fractional sample index of a log-spaced graph back
// to its frequency.
func graphFrequency(index float64, count int, startFreq, endFreq float64) float64 {
	return startFreq * math.Pow(endFreq/startFreq, index/float64(count-1))
}

func targetGain(target *Curve, freq float64) float64 {
	if target == nil {
		return 0
	}

	return target.GainAt(freq)
}
