package design

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-roomeq/dsp/filter/biquad"
)

// responseAt evaluates a biquad's transfer function magnitude at freq.
func responseAt(c biquad.Coefficients, freq, sampleRate float64) float64 {
	w := 2 * math.Pi * freq / sampleRate
	z := cmplx.Exp(complex(0, -w))
	num := complex(c.B0, 0) + complex(c.B1, 0)*z + complex(c.B2, 0)*z*z
	den := 1 + complex(c.A1, 0)*z + complex(c.A2, 0)*z*z

	return cmplx.Abs(num / den)
}

func TestPeakGainAtCenter(t *testing.T) {
	tests := []struct {
		name           string
		freq, gain, q  float64
	}{
		{"boost", 1000, 6, 1.4},
		{"cut", 250, -9, 2},
		{"narrow boost", 4000, 3, 8},
	}

	const sampleRate = 48000

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Peak(tt.freq, tt.gain, tt.q, sampleRate)

			got := 20 * math.Log10(responseAt(c, tt.freq, sampleRate))
			if math.Abs(got-tt.gain) > 0.01 {
				t.Errorf("gain at center = %.3f dB, want %.3f dB", got, tt.gain)
			}

			// Far away from the center, the band should be nearly flat.
			far := 20 * math.Log10(responseAt(c, tt.freq/32, sampleRate))
			if math.Abs(far) > 0.5 {
				t.Errorf("gain two+ octaves below center = %.3f dB, want ~0 dB", far)
			}
		})
	}
}

func TestPeakZeroGainIsUnity(t *testing.T) {
	c := Peak(1000, 0, 1.4, 48000)

	for _, f := range []float64{100, 1000, 10000} {
		if g := responseAt(c, f, 48000); math.Abs(g-1) > 1e-9 {
			t.Errorf("|H(%v)| = %v, want 1", f, g)
		}
	}
}

func TestPeakInvalidFrequencyIsIdentity(t *testing.T) {
	for _, f := range []float64{0, -100, 24000, 48000} {
		c := Peak(f, 6, 1.4, 48000)
		if c != (biquad.Coefficients{B0: 1}) {
			t.Errorf("Peak(freq=%v) = %+v, want identity", f, c)
		}
	}
}

func TestPeakingBandProcessIsStateless(t *testing.T) {
	band := NewPeakingBand(48000, 1000, 1.4, 6)

	impulse := func() []float64 {
		buf := make([]float64, 128)
		buf[0] = 1
		return buf
	}

	first := impulse()
	band.Process(first)

	second := impulse()
	band.Process(second)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("repeated Process differs at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestPeakingBandComparable(t *testing.T) {
	a := NewPeakingBand(48000, 1000, 1.4, 6)
	b := NewPeakingBand(48000, 1000, 1.4, 6)
	c := NewPeakingBand(48000, 1000, 1.4, 5.9)

	if a != b {
		t.Error("identical bands should compare equal")
	}

	if a == c {
		t.Error("bands differing in gain should not compare equal")
	}
}
