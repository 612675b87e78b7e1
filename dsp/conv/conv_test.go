package conv

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestDirectKnownValues(t *testing.T) {
	got, err := Direct([]float64{1, 2, 3}, []float64{1, 1})
	if err != nil {
		t.Fatalf("Direct: %v", err)
	}

	want := []float64{1, 3, 5, 3}
	if len(got) != len(want) {
		t.Fatalf("length: got %d, want %d", len(got), len(want))
	}

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("sample %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDirectValidation(t *testing.T) {
	if _, err := Direct(nil, []float64{1}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty signal: got %v, want ErrEmptyInput", err)
	}

	if _, err := Direct([]float64{1}, nil); !errors.Is(err, ErrEmptyKernel) {
		t.Errorf("empty kernel: got %v, want ErrEmptyKernel", err)
	}
}

func TestFFTMatchesDirect(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	signal := make([]float64, 300)
	for i := range signal {
		signal[i] = rng.Float64()*2 - 1
	}

	kernel := make([]float64, 45)
	for i := range kernel {
		kernel[i] = rng.Float64()*2 - 1
	}

	want, err := Direct(signal, kernel)
	if err != nil {
		t.Fatalf("Direct: %v", err)
	}

	got, err := FFT(signal, kernel)
	if err != nil {
		t.Fatalf("FFT: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("length: got %d, want %d", len(got), len(want))
	}

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("sample %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFIRDeltaKernelIsIdentity(t *testing.T) {
	fir, err := NewFIR([]float64{1})
	if err != nil {
		t.Fatalf("NewFIR: %v", err)
	}

	buf := []float64{0.5, -0.25, 1, 0}
	want := []float64{0.5, -0.25, 1, 0}

	fir.Process(buf)

	for i := range want {
		if math.Abs(buf[i]-want[i]) > 1e-12 {
			t.Errorf("sample %d: got %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestFIRShiftKernelDelays(t *testing.T) {
	fir, err := NewFIR([]float64{0, 0, 1})
	if err != nil {
		t.Fatalf("NewFIR: %v", err)
	}

	buf := []float64{1, 2, 3, 4}

	fir.Process(buf)

	want := []float64{0, 0, 1, 2}
	for i := range want {
		if math.Abs(buf[i]-want[i]) > 1e-9 {
			t.Errorf("sample %d: got %v, want %v", i, buf[i], want[i])
		}
	}
}
