// Package cpu detects SIMD capabilities for numeric kernel selection.
//
// The transform engine and the band-fitting search select their inner
// kernels once, at first use, based on the features reported here. Tests
// can pin the selection with SetForcedFeatures.
package cpu

import "sync"

// SIMDLevel identifies an instruction-set extension a kernel requires.
type SIMDLevel int

const (
	// SIMDNone marks a portable pure-Go kernel.
	SIMDNone SIMDLevel = iota

	// SIMDSSE2 marks an x86-64 SSE2 kernel (amd64 baseline).
	SIMDSSE2

	// SIMDAVX2 marks an x86-64 AVX2 kernel.
	SIMDAVX2

	// SIMDNEON marks an ARM Advanced SIMD (NEON) kernel.
	SIMDNEON
)

// String returns a human-readable name for the SIMD level.
func (s SIMDLevel) String() string {
	switch s {
	case SIMDNone:
		return "None"
	case SIMDSSE2:
		return "SSE2"
	case SIMDAVX2:
		return "AVX2"
	case SIMDNEON:
		return "NEON"
	default:
		return "Unknown"
	}
}

// Features describes the capabilities relevant to kernel selection.
type Features struct {
	HasSSE2 bool
	HasAVX2 bool
	HasNEON bool

	// ForceGeneric disables all accelerated kernels regardless of hardware.
	ForceGeneric bool

	// Architecture is runtime.GOARCH at detection time.
	Architecture string
}

var (
	detected   Features
	detectOnce sync.Once

	forcedMu sync.RWMutex
	forced   *Features
)

// DetectFeatures returns the capabilities of the current processor.
// Detection runs once and is cached; the function is safe for concurrent use.
func DetectFeatures() Features {
	forcedMu.RLock()
	f := forced
	forcedMu.RUnlock()

	if f != nil {
		return *f
	}

	detectOnce.Do(func() {
		detected = detectFeaturesImpl()
	})

	return detected
}

// SetForcedFeatures overrides hardware detection. Intended for tests.
func SetForcedFeatures(f Features) {
	forcedMu.Lock()
	defer forcedMu.Unlock()

	copied := f
	forced = &copied
}

// ResetDetection clears any forced features. Intended for tests.
func ResetDetection() {
	forcedMu.Lock()
	defer forcedMu.Unlock()

	forced = nil
}

// Supports reports whether features satisfy the requirements of level.
func Supports(features Features, level SIMDLevel) bool {
	if features.ForceGeneric {
		return level == SIMDNone
	}

	switch level {
	case SIMDNone:
		return true
	case SIMDSSE2:
		return features.HasSSE2
	case SIMDAVX2:
		return features.HasAVX2
	case SIMDNEON:
		return features.HasNEON
	default:
		return false
	}
}
