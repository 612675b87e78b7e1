//go:build amd64

package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// detectFeaturesImpl probes x86-64 capabilities via portable CPUID access.
// SSE2 is part of the x86-64 baseline and is always available.
func detectFeaturesImpl() Features {
	return Features{
		HasSSE2:      cpu.X86.HasSSE2,
		HasAVX2:      cpu.X86.HasAVX2,
		Architecture: runtime.GOARCH,
	}
}
