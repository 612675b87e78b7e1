// Package ir analyzes impulse responses derived from complex frequency
// responses: dominant peak location (delay), peak sign (polarity), and all
// local peaks ordered by prominence.
package ir
