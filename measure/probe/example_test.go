package probe_test

import (
	"fmt"

	"github.com/cwbudde/algo-roomeq/measure/probe"
)

type doubler struct{}

func (doubler) Process(buf []float64) {
	for i := range buf {
		buf[i] *= 2
	}
}

func ExampleSession() {
	session, err := probe.NewSession(doubler{}, 48000)
	if err != nil {
		fmt.Println(err)
		return
	}

	gainDB, err := session.GainDB()
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%.2f dB\n", gainDB)

	// Output:
	// 6.02 dB
}
