package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-roomeq/dsp/spectrum"
)

func ExampleFrequencyResponse() {
	reference := []complex128{1, 2, 4, 2}
	measured := []complex128{2, 2, 2, 0}

	response, _ := spectrum.FrequencyResponse(reference, measured)
	for _, bin := range response {
		fmt.Printf("%.1f\n", real(bin))
	}

	// Output:
	// 2.0
	// 1.0
	// 0.5
	// 0.0
}
