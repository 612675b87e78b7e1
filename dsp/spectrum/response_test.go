package spectrum

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func TestFrequencyResponseIdentity(t *testing.T) {
	reference := []complex128{1, complex(0.5, 0.5), complex(0, -2), complex(-3, 1)}

	measured := make([]complex128, len(reference))
	copy(measured, reference)

	response, err := FrequencyResponse(reference, measured)
	if err != nil {
		t.Fatal(err)
	}

	for i, h := range response {
		if cmplx.Abs(h-1) > 1e-12 {
			t.Errorf("bin %d = %v, want 1+0i", i, h)
		}
	}
}

func TestFrequencyResponseDivision(t *testing.T) {
	reference := []complex128{2, complex(0, 1), complex(1, 1)}
	measured := []complex128{4, complex(0, 2), complex(2, 2)}

	response, err := FrequencyResponse(reference, measured)
	if err != nil {
		t.Fatal(err)
	}

	for i, h := range response {
		if cmplx.Abs(h-2) > 1e-12 {
			t.Errorf("bin %d = %v, want 2+0i", i, h)
		}
	}
}

func TestFrequencyResponseZeroReferenceBin(t *testing.T) {
	reference := []complex128{1, 0, 1}
	measured := []complex128{1, complex(5, 5), 1}

	response, err := FrequencyResponse(reference, measured)
	if err != nil {
		t.Fatal(err)
	}

	if response[1] != 0 {
		t.Errorf("zero reference bin produced %v, want 0", response[1])
	}
}

func TestFrequencyResponseLengthMismatch(t *testing.T) {
	_, err := FrequencyResponse(make([]complex128, 4), make([]complex128, 8))
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("error = %v, want ErrLengthMismatch", err)
	}
}

func TestOffbandGain(t *testing.T) {
	const (
		n          = 16
		sampleRate = 16000
	)

	spec := make([]complex128, n)
	for i := range spec {
		spec[i] = 1
	}

	// Protect 2 kHz..4 kHz, i.e. bins 2..4 (and mirrored 12..14); cut
	// everything else by 20 dB.
	if err := OffbandGain(spec, 2000, 4000, sampleRate, -20); err != nil {
		t.Fatal(err)
	}

	want := func(k int) float64 {
		mirrored := k
		if k > n/2 {
			mirrored = n - k
		}

		if mirrored >= 2 && mirrored <= 4 {
			return 1
		}

		return 0.1
	}

	for k := range spec {
		if math.Abs(real(spec[k])-want(k)) > 1e-12 || imag(spec[k]) != 0 {
			t.Errorf("bin %d = %v, want %v", k, spec[k], want(k))
		}
	}
}

func TestOffbandGainInvalidSampleRate(t *testing.T) {
	err := OffbandGain(make([]complex128, 4), 20, 20000, 0, -10)
	if !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("error = %v, want ErrInvalidSampleRate", err)
	}
}

func TestMagnitudePhaseViews(t *testing.T) {
	in := []complex128{complex(3, 4), complex(0, -1), complex(-2, 0)}

	mags := Magnitude(in)
	wantMags := []float64{5, 1, 2}

	for i := range wantMags {
		if math.Abs(mags[i]-wantMags[i]) > 1e-12 {
			t.Errorf("magnitude[%d] = %v, want %v", i, mags[i], wantMags[i])
		}
	}

	phases := Phase(in)

	if math.Abs(phases[1]-(-math.Pi/2)) > 1e-12 {
		t.Errorf("phase[1] = %v, want -pi/2", phases[1])
	}

	if math.Abs(phases[2]-math.Pi) > 1e-12 {
		t.Errorf("phase[2] = %v, want pi", phases[2])
	}

	re := RealPart(in)
	im := ImagPart(in)

	for i, c := range in {
		if re[i] != real(c) || im[i] != imag(c) {
			t.Errorf("part views mismatch at %d: (%v, %v) vs %v", i, re[i], im[i], c)
		}
	}
}

func TestInterpolateLinear(t *testing.T) {
	x := []float64{1, 2, 4}
	y := []float64{0, 10, 20}

	out, err := InterpolateLinear(x, y, []float64{0.5, 1, 1.5, 3, 4, 5})
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{0, 0, 5, 15, 20, 20}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestSmoothFractionalOctaveFlat(t *testing.T) {
	freqs := make([]float64, 64)
	values := make([]float64, 64)

	for i := range freqs {
		freqs[i] = 20 * math.Pow(2, float64(i)/8)
		values[i] = 3
	}

	out, err := SmoothFractionalOctave(freqs, values, 3)
	if err != nil {
		t.Fatal(err)
	}

	for i, v := range out {
		if math.Abs(v-3) > 1e-12 {
			t.Errorf("smoothed[%d] = %v, want 3", i, v)
		}
	}
}
