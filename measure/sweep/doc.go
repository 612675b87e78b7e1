// Package sweep generates exponential sine sweep excitation signals.
//
// An exponential sweep spends equal time in every octave, which gives
// uniform signal-to-noise ratio across frequency and makes it the preferred
// excitation for measuring the frequency response of filters and rooms.
//
// # Usage
//
//	s := &sweep.ExpSweep{
//	    StartFreq: 1, EndFreq: 24000,
//	    SampleRate: 48000, Length: 65536,
//	}
//	excitation, _ := s.Generate()
//	// ... run the system under test over a copy of excitation ...
package sweep
