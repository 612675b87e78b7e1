package spectrum

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-roomeq/dsp/fft"
)

func TestMinimumPhaseFlatSpectrum(t *testing.T) {
	const n = 64

	plan, err := fft.NewPlan(n)
	if err != nil {
		t.Fatal(err)
	}

	spec := make([]complex128, n)
	for i := range spec {
		spec[i] = 2
	}

	if err := MinimumPhase(plan, spec); err != nil {
		t.Fatal(err)
	}

	// A flat magnitude has a flat, zero-phase minimum-phase equivalent.
	for i, c := range spec {
		if math.Abs(real(c)-2) > 1e-9 || math.Abs(imag(c)) > 1e-9 {
			t.Errorf("bin %d = %v, want 2+0i", i, c)
		}
	}
}

func TestMinimumPhasePreservesMagnitude(t *testing.T) {
	const n = 256

	plan, err := fft.NewPlan(n)
	if err != nil {
		t.Fatal(err)
	}

	// Smooth symmetric magnitude profile.
	spec := make([]complex128, n)
	for i := range spec {
		k := i
		if k > n/2 {
			k = n - k
		}

		spec[i] = complex(1+0.5*math.Cos(2*math.Pi*float64(k)/float64(n)), 0)
	}

	want := make([]float64, n)
	for i := range spec {
		want[i] = real(spec[i])
	}

	if err := MinimumPhase(plan, spec); err != nil {
		t.Fatal(err)
	}

	for i := range spec {
		if math.Abs(cmplx.Abs(spec[i])-want[i]) > 1e-6 {
			t.Errorf("bin %d magnitude = %v, want %v", i, cmplx.Abs(spec[i]), want[i])
		}
	}
}

func TestMinimumPhaseImpulseIsCausal(t *testing.T) {
	const n = 512

	plan, err := fft.NewPlan(n)
	if err != nil {
		t.Fatal(err)
	}

	spec := make([]complex128, n)
	for i := range spec {
		k := i
		if k > n/2 {
			k = n - k
		}

		spec[i] = complex(math.Exp(-0.5*float64(k)/float64(n)), 0)
	}

	if err := MinimumPhase(plan, spec); err != nil {
		t.Fatal(err)
	}

	if err := plan.Inverse(spec); err != nil {
		t.Fatal(err)
	}

	// Energy should concentrate at the start of the impulse response.
	var early, late float64

	for i := range spec {
		e := real(spec[i]) * real(spec[i])
		if i < n/8 {
			early += e
		} else {
			late += e
		}
	}

	if early < late*100 {
		t.Errorf("minimum-phase IR not front-loaded: early %g, late %g", early, late)
	}
}

func TestMinimumPhaseRejectsZeroMagnitude(t *testing.T) {
	plan, err := fft.NewPlan(8)
	if err != nil {
		t.Fatal(err)
	}

	spec := make([]complex128, 8)
	for i := range spec {
		spec[i] = 1
	}

	spec[3] = 0

	if err := MinimumPhase(plan, spec); !errors.Is(err, ErrNonPositiveMagnitude) {
		t.Errorf("error = %v, want ErrNonPositiveMagnitude", err)
	}
}

func TestMinimumPhaseLengthMismatch(t *testing.T) {
	plan, err := fft.NewPlan(8)
	if err != nil {
		t.Fatal(err)
	}

	if err := MinimumPhase(plan, make([]complex128, 4)); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("error = %v, want ErrLengthMismatch", err)
	}
}
