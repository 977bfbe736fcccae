// Package testutil provides assertion helpers shared by blocksim test packages.
package testutil

import (
	"math"
	"testing"
	"time"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertDurationWithin checks that got lies in [want, want+slack].
// Measured waits may overshoot but must never undershoot.
func AssertDurationWithin(t *testing.T, name string, want, got, slack time.Duration) {
	t.Helper()
	if got < want {
		t.Errorf("%s: waited %v, shorter than %v", name, got, want)
	}
	if got > want+slack {
		t.Errorf("%s: waited %v, more than %v over %v", name, got, slack, want)
	}
}
