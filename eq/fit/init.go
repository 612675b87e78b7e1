package fit

// This file imports kernel implementation packages to trigger their init()
// registration with the evaluation registry. A native accelerated kernel
// would be added here behind its build tags.

import (
	_ "github.com/cwbudde/algo-roomeq/eq/fit/internal/arch/generic" // register portable fallback
)
