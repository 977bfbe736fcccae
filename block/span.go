package block

import "fmt"

// Input is a read-only view over the elements available to a block for one
// call. Unless the block calls Consume, the whole view counts as consumed.
type Input[T any] struct {
	data     []T
	consumed int
	explicit bool
}

// NewInput wraps buf as an input view. The slice is not copied.
func NewInput[T any](buf []T) *Input[T] {
	return &Input[T]{data: buf}
}

// Len returns the number of readable elements.
func (in *Input[T]) Len() int { return len(in.data) }

// At returns the i-th readable element.
func (in *Input[T]) At(i int) T { return in.data[i] }

// Slice exposes the readable elements. Callers must not retain it.
func (in *Input[T]) Slice() []T { return in.data }

// Consume marks the first n elements as consumed. It returns false, leaving
// the previous value untouched, when n is outside [0, Len()].
func (in *Input[T]) Consume(n int) bool {
	if n < 0 || n > len(in.data) {
		return false
	}
	in.consumed = n
	in.explicit = true
	return true
}

// Consumed returns the number of elements the block took from the buffer.
func (in *Input[T]) Consumed() int {
	if !in.explicit {
		return len(in.data)
	}
	return in.consumed
}

// Output is a writable view with a fixed capacity. Nothing written to it is
// visible downstream until Publish is called.
type Output[T any] struct {
	data      []T
	published int
	err       error
}

// NewOutput wraps buf as an output view of capacity len(buf).
func NewOutput[T any](buf []T) *Output[T] {
	return &Output[T]{data: buf}
}

// Cap returns the number of writable elements.
func (out *Output[T]) Cap() int { return len(out.data) }

// Set writes v at index i.
func (out *Output[T]) Set(i int, v T) { out.data[i] = v }

// Slice exposes the writable elements. Callers must not retain it.
func (out *Output[T]) Slice() []T { return out.data }

// Publish makes the first n written elements visible downstream. Publishing
// more than Cap (or a negative count) publishes nothing and is recorded as a
// contract violation, readable through Err.
func (out *Output[T]) Publish(n int) {
	if n < 0 || n > len(out.data) {
		if out.err == nil {
			out.err = fmt.Errorf("publish %d exceeds output capacity %d", n, len(out.data))
		}
		out.published = 0
		return
	}
	out.published = n
}

// Published returns the count made visible by the last Publish.
func (out *Output[T]) Published() int { return out.published }

// Err returns the first publishing contract violation, if any.
func (out *Output[T]) Err() error { return out.err }
