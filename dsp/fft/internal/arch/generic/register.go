package generic

import (
	"github.com/cwbudde/algo-roomeq/dsp/fft/internal/arch/registry"
	"github.com/cwbudde/algo-roomeq/internal/cpu"
)

// init registers the portable kernel as the baseline fallback.
//
// Priority: 0 (lowest - used only when no accelerated alternative is available)
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		Transform: Transform,
	})
}
