// Package probe measures the frequency response of arbitrary in-place
// sample processors.
//
// A Session drives the filter under test with an exponential sine sweep
// covering 1 Hz to Nyquist, transforms both the pristine reference and the
// processed output, and divides the spectra. From the resulting complex
// frequency response it derives magnitude spectra, peak gain, and impulse
// response properties such as delay and polarity. Everything is computed
// lazily and cached; the filter runs exactly once per measurement.
package probe
