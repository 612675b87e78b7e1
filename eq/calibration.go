package eq

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ParseCalibration reads a line-oriented calibration text: each line is
// whitespace or tab delimited, the first token is a frequency in Hz and the
// last token a gain in dB. Decimal separators may be periods or commas.
// Lines that fail to parse are skipped silently; the input is assumed to be
// sorted ascending by frequency and its order is preserved as-is.
func ParseCalibration(r io.Reader) (*Curve, error) {
	curve := NewCurve()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		freq, err := parseDecimal(fields[0])
		if err != nil || freq <= 0 {
			continue
		}

		gain, err := parseDecimal(fields[len(fields)-1])
		if err != nil {
			continue
		}

		// Append directly, no sorted insert: file order is authoritative.
		curve.bands = append(curve.bands, Band{Frequency: freq, Gain: gain})
		curve.peakGainValid = false
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return curve, nil
}

func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}
