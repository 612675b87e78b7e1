package fft

// This file imports kernel implementation packages to trigger their init()
// registration with the transform registry. A native accelerated kernel
// would be added here behind its build tags.

import (
	_ "github.com/cwbudde/algo-roomeq/dsp/fft/internal/arch/generic" // register portable fallback
)
