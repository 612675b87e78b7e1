package biquad

import (
	"math"
	"testing"
)

func TestPassthroughSection(t *testing.T) {
	s := NewSection(Coefficients{B0: 1})

	for _, x := range []float64{1, -0.5, 0.25, 0} {
		if y := s.ProcessSample(x); y != x {
			t.Errorf("ProcessSample(%v) = %v, want passthrough", x, y)
		}
	}
}

func TestProcessBlockMatchesPerSample(t *testing.T) {
	c := Coefficients{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.3, A2: 0.1}

	input := make([]float64, 64)
	input[0] = 1
	input[17] = -0.5

	perSample := NewSection(c)

	want := make([]float64, len(input))
	for i, x := range input {
		want[i] = perSample.ProcessSample(x)
	}

	block := NewSection(c)

	got := make([]float64, len(input))
	copy(got, input)
	block.ProcessBlock(got)

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-15 {
			t.Errorf("sample %d: block %v, per-sample %v", i, got[i], want[i])
		}
	}
}

func TestReset(t *testing.T) {
	s := NewSection(Coefficients{B0: 0.5, B1: 0.5, A1: -0.9})

	s.ProcessSample(1)
	s.Reset()

	if y := s.ProcessSample(0); y != 0 {
		t.Errorf("after Reset, ProcessSample(0) = %v, want 0", y)
	}
}
