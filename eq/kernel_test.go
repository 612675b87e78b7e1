package eq_test

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-roomeq/dsp/conv"
	"github.com/cwbudde/algo-roomeq/eq"
	"github.com/cwbudde/algo-roomeq/measure/probe"
)

// TestSynthesizedKernelMeasuredResponse closes the loop: a kernel rendered
// from a curve, wrapped as an FIR filter and measured through a session,
// must reproduce the curve's gain.
func TestSynthesizedKernelMeasuredResponse(t *testing.T) {
	curve := eq.NewCurve()
	curve.AddBand(eq.Band{Frequency: 1000, Gain: -6})

	// A single-band curve is flat at its gain everywhere, so the kernel
	// must attenuate uniformly by 6 dB.
	kernel, err := curve.SynthesizeConvolution(44100, 1024, 1)
	if err != nil {
		t.Fatalf("SynthesizeConvolution: %v", err)
	}

	fir, err := conv.NewFIR(kernel)
	if err != nil {
		t.Fatalf("NewFIR: %v", err)
	}

	session, err := probe.NewSession(fir, 44100)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	gainDB, err := session.GainDB()
	if err != nil {
		t.Fatalf("GainDB: %v", err)
	}

	if math.Abs(gainDB-(-6)) > 0.1 {
		t.Errorf("measured kernel gain: got %v dB, want -6 dB", gainDB)
	}

	spec, err := session.Spectrum()
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}

	// Spot-check mid-band bins away from the edges.
	wantMag := math.Pow(10, -6.0/20)
	for _, k := range []int{1024, 4096, 8192, 16384} {
		if math.Abs(spec[k]-wantMag) > 0.01 {
			t.Errorf("bin %d magnitude: got %v, want %v", k, spec[k], wantMag)
		}
	}
}
