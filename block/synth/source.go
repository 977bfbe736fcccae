package synth

import (
	"time"

	"github.com/inference-sim/blocksim/block"
)

// NullSource emits the zero value of T forever.
type NullSource[T any] struct {
	block.Base
}

func NewNullSource[T any]() *NullSource[T] { return &NullSource[T]{} }

func (s *NullSource[T]) Description() string {
	return "Emits the zero value of the element type continuously; a low-overhead, predictable source for tests and benchmarks."
}

func (s *NullSource[T]) Ports() []block.Port { return []block.Port{block.PortOut[T]("out")} }

func (s *NullSource[T]) ProcessOne() T {
	var zero T
	return zero
}

// ConstantSource emits default_value for every sample and stops after
// n_samples_max samples when the bound is non-zero.
type ConstantSource[T any] struct {
	block.Base
	DefaultValue block.Annotated[T]
	bound
}

func NewConstantSource[T any]() *ConstantSource[T] {
	var zero T
	return &ConstantSource[T]{DefaultValue: defaultValue(zero), bound: newBound()}
}

func (s *ConstantSource[T]) Description() string {
	return "Emits a constant default value for each sample, counting samples and optionally halting after n_samples_max."
}

func (s *ConstantSource[T]) Ports() []block.Port { return []block.Port{block.PortOut[T]("out")} }

func (s *ConstantSource[T]) Parameters() []block.Parameter {
	return append([]block.Parameter{&s.DefaultValue}, s.parameters()...)
}

func (s *ConstantSource[T]) Reset() { s.reset() }

func (s *ConstantSource[T]) ProcessOne() T {
	s.tick(&s.Base)
	return s.DefaultValue.Value
}

// CountingSource emits default_value + count, where count is the 1-based
// index of the sample. Integer types wrap on overflow.
type CountingSource[T block.Number] struct {
	block.Base
	DefaultValue block.Annotated[T]
	bound
}

func NewCountingSource[T block.Number]() *CountingSource[T] {
	return &CountingSource[T]{DefaultValue: defaultValue[T](0), bound: newBound()}
}

func (s *CountingSource[T]) Description() string {
	return "Emits an increasing sequence starting after default_value, optionally halting after n_samples_max samples."
}

func (s *CountingSource[T]) Ports() []block.Port { return []block.Port{block.PortOut[T]("out")} }

func (s *CountingSource[T]) Parameters() []block.Parameter {
	return append([]block.Parameter{&s.DefaultValue}, s.parameters()...)
}

func (s *CountingSource[T]) Reset() { s.reset() }

func (s *CountingSource[T]) ProcessOne() T {
	s.tick(&s.Base)
	return s.DefaultValue.Value + block.FromCount[T](s.Count.Value)
}

// SlowSource emits default_value at most once every delay milliseconds.
// Calls that fall inside the delay window publish nothing and return OK.
type SlowSource[T any] struct {
	block.Base
	DefaultValue block.Annotated[T]
	DelayMs      block.Annotated[uint64]

	lastEmit time.Time
	emitted  bool
	now      func() time.Time
}

func NewSlowSource[T any]() *SlowSource[T] {
	var zero T
	return &SlowSource[T]{
		DefaultValue: defaultValue(zero),
		DelayMs: block.Annotated[uint64]{Value: 100, Meta: block.Descriptor{
			Name:    "delay",
			Display: "delay",
			Unit:    "ms",
			Doc:     "how many milliseconds between each value",
		}},
		now: time.Now,
	}
}

func (s *SlowSource[T]) Description() string {
	return "Emits a constant default value every delay milliseconds."
}

func (s *SlowSource[T]) Ports() []block.Port { return []block.Port{block.PortOut[T]("out")} }

func (s *SlowSource[T]) Parameters() []block.Parameter {
	return []block.Parameter{&s.DefaultValue, &s.DelayMs}
}

// Reset forgets the last emission so the next call emits immediately.
func (s *SlowSource[T]) Reset() { s.emitted = false }

func (s *SlowSource[T]) ProcessBulk(out *block.Output[T]) block.WorkStatus {
	if out.Cap() == 0 {
		out.Publish(0)
		return block.WorkOK
	}
	now := s.now()
	if s.emitted && now.Sub(s.lastEmit) <= time.Duration(s.DelayMs.Value)*time.Millisecond {
		out.Publish(0)
		return block.WorkOK
	}
	s.lastEmit = now
	s.emitted = true
	out.Set(0, s.DefaultValue.Value)
	out.Publish(1)
	return block.WorkOK
}
