// Package delay provides the compute-delay model used by SimCompute.
//
// The model maps a batch of N elements to a wall-clock delay:
//
//	delay_seconds = (N / N_r)^k * (N_r / R)
//
// where N_r is the reference work size, R the target throughput in samples
// per second at N_r, and k the complexity order (1 = linear, 2 = quadratic).
// With k = 1 the delay is N/R for every N, i.e. a constant throughput R.
//
// Edge policy: an empty batch (N = 0) costs nothing for every k, including
// k = 0. Zero reference size, non-positive or non-finite throughput, and
// negative or non-finite order are rejected by Validate. Delays beyond the
// time.Duration range saturate at the maximum duration.
package delay

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Model holds the delay-model parameters.
type Model struct {
	TargetThroughput  float64 // samples per second at ReferenceWorkSize (> 0)
	ReferenceWorkSize uint64  // N_r in samples (> 0)
	ComplexityOrder   float64 // k (>= 0)
}

// DefaultModel is a linear model limiting throughput to 100 MS/s.
func DefaultModel() Model {
	return Model{TargetThroughput: 100e6, ReferenceWorkSize: 1024, ComplexityOrder: 1}
}

// NewModel validates the parameters and returns the model.
func NewModel(throughput float64, referenceWorkSize uint64, order float64) (Model, error) {
	m := Model{TargetThroughput: throughput, ReferenceWorkSize: referenceWorkSize, ComplexityOrder: order}
	if err := m.Validate(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// invalidPositiveFloat returns true if v is not a valid positive float64.
func invalidPositiveFloat(v float64) bool {
	return v <= 0 || math.IsNaN(v) || math.IsInf(v, 0)
}

// Validate returns an error listing every invalid field, or nil.
func (m Model) Validate() error {
	var problems []string
	if invalidPositiveFloat(m.TargetThroughput) {
		problems = append(problems, fmt.Sprintf("target_throughput must be a valid positive number, got %v", m.TargetThroughput))
	}
	if m.ReferenceWorkSize == 0 {
		problems = append(problems, "reference_work_size must be > 0")
	}
	if m.ComplexityOrder < 0 || math.IsNaN(m.ComplexityOrder) || math.IsInf(m.ComplexityOrder, 0) {
		problems = append(problems, fmt.Sprintf("complexity_order must be >= 0 and finite, got %v", m.ComplexityOrder))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid delay model: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Seconds returns the modelled delay for a batch of n elements.
// It returns 0 for n <= 0 and for a model that fails Validate, so callers
// never see NaN or negative delays.
func (m Model) Seconds(n int) float64 {
	if n <= 0 || m.Validate() != nil {
		return 0
	}
	nr := float64(m.ReferenceWorkSize)
	return math.Pow(float64(n)/nr, m.ComplexityOrder) * (nr / m.TargetThroughput)
}

// Delay is Seconds rounded to the nearest nanosecond, saturating on overflow.
func (m Model) Delay(n int) time.Duration {
	return toDuration(m.Seconds(n))
}

func toDuration(seconds float64) time.Duration {
	ns := math.Round(seconds * float64(time.Second))
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	if ns <= 0 {
		return 0
	}
	return time.Duration(ns)
}
