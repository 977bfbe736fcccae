package synth

import "github.com/inference-sim/blocksim/block"

// Copy forwards its input unchanged.
type Copy[T any] struct {
	block.Base
}

func NewCopy[T any]() *Copy[T] { return &Copy[T]{} }

func (c *Copy[T]) Description() string {
	return "Passes input samples to the output without modification."
}

func (c *Copy[T]) Ports() []block.Port {
	return []block.Port{block.PortIn[T]("in"), block.PortOut[T]("out")}
}

func (c *Copy[T]) ProcessOne(in T) T { return in }

// HeadBlock forwards the first n_samples_max elements and stops on the call
// that forwards the last of them. With n_samples_max = 0 it never stops.
type HeadBlock[T any] struct {
	block.Base
	bound
}

func NewHeadBlock[T any]() *HeadBlock[T] { return &HeadBlock[T]{bound: newBound()} }

func (h *HeadBlock[T]) Description() string {
	return "Copies the first n_samples_max items from input to output, then signals completion."
}

func (h *HeadBlock[T]) Ports() []block.Port {
	return []block.Port{block.PortIn[T]("in"), block.PortOut[T]("out")}
}

func (h *HeadBlock[T]) Parameters() []block.Parameter { return h.parameters() }

func (h *HeadBlock[T]) Reset() { h.reset() }

func (h *HeadBlock[T]) ProcessOne(in T) T {
	h.tick(&h.Base)
	return in
}
