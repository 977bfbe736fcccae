package synth

import "github.com/inference-sim/blocksim/block"

// NullSink discards every input element and never stops on its own.
type NullSink[T any] struct {
	block.Base
}

func NewNullSink[T any]() *NullSink[T] { return &NullSink[T]{} }

func (s *NullSink[T]) Description() string {
	return "Consumes and discards all input samples without producing output."
}

func (s *NullSink[T]) Ports() []block.Port { return []block.Port{block.PortIn[T]("in")} }

func (s *NullSink[T]) ProcessOne(T) {}

// CountingSink discards input, counting it, and stops once n_samples_max
// samples have been consumed when the bound is non-zero.
type CountingSink[T any] struct {
	block.Base
	bound
}

func NewCountingSink[T any]() *CountingSink[T] { return &CountingSink[T]{bound: newBound()} }

func (s *CountingSink[T]) Description() string {
	return "Consumes and discards a fixed number of input samples, then signals the flow graph to halt."
}

func (s *CountingSink[T]) Ports() []block.Port { return []block.Port{block.PortIn[T]("in")} }

func (s *CountingSink[T]) Parameters() []block.Parameter { return s.parameters() }

func (s *CountingSink[T]) Reset() { s.reset() }

func (s *CountingSink[T]) ProcessOne(T) { s.tick(&s.Base) }
