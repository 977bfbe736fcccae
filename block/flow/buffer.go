package flow

// buffer is a contiguous FIFO. Readable and writable regions are always
// single slices so they can be handed out as spans.
type buffer[T any] struct {
	data []T
	r, w int
}

func newBuffer[T any](size int) *buffer[T] {
	return &buffer[T]{data: make([]T, size)}
}

func (b *buffer[T]) len() int { return b.w - b.r }

func (b *buffer[T]) readable() []T { return b.data[b.r:b.w] }

// writable compacts pending elements to the front and returns the free tail.
func (b *buffer[T]) writable() []T {
	if b.r > 0 {
		n := copy(b.data, b.data[b.r:b.w])
		b.r, b.w = 0, n
	}
	return b.data[b.w:]
}

func (b *buffer[T]) commit(n int) { b.w += n }

func (b *buffer[T]) consume(n int) {
	b.r += n
	if b.r == b.w {
		b.r, b.w = 0, 0
	}
}

// clear drops every pending element.
func (b *buffer[T]) clear() { b.r, b.w = 0, 0 }
