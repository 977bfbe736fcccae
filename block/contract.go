package block

// Block is the type-independent view of a block instance used by registries,
// schedulers and settings. Concrete blocks get most of it from Base.
type Block interface {
	Name() string
	SetName(name string)
	Description() string
	Ports() []Port
	Parameters() []Parameter
	Reset()
	State() State
	StopRequested() bool
	RequestStop() bool
	OnStop(fn func())
}

// Validator is implemented by blocks whose settings can be invalid.
// Validate is called after construction and after every settings change.
type Validator interface {
	Validate() error
}

// Single-item mode: called once per element.

// Generator produces one element per call and takes no input.
type Generator[T any] interface {
	Block
	ProcessOne() T
}

// Transformer maps one input element to one output element.
type Transformer[T any] interface {
	Block
	ProcessOne(in T) T
}

// Consumer absorbs one input element.
type Consumer[T any] interface {
	Block
	ProcessOne(in T)
}

// Bulk mode: called once per available batch.

// BulkSource fills an output view.
type BulkSource[T any] interface {
	Block
	ProcessBulk(out *Output[T]) WorkStatus
}

// BulkProcessor reads an input view and fills an output view.
type BulkProcessor[T any] interface {
	Block
	ProcessBulk(in *Input[T], out *Output[T]) WorkStatus
}

// BulkSink reads an input view.
type BulkSink[T any] interface {
	Block
	ProcessBulk(in *Input[T]) WorkStatus
}

func statusOf(b Block) WorkStatus {
	if b.StopRequested() {
		return WorkDone
	}
	return WorkOK
}

// GenerateBulk runs a single-item generator over out. It stops filling right
// after the element during which the block requested stop, so a bounded
// source never emits past its bound. A block that is already stopped
// publishes nothing.
func GenerateBulk[T any](g Generator[T], out *Output[T]) WorkStatus {
	if g.StopRequested() {
		out.Publish(0)
		return WorkDone
	}
	n := 0
	for n < out.Cap() {
		out.Set(n, g.ProcessOne())
		n++
		if g.StopRequested() {
			break
		}
	}
	out.Publish(n)
	return statusOf(g)
}

// TransformBulk runs a single-item transformer element-for-element, limited
// by both the input length and the output capacity. Elements after the one
// that triggered a stop are neither consumed nor forwarded.
func TransformBulk[T any](t Transformer[T], in *Input[T], out *Output[T]) WorkStatus {
	if t.StopRequested() {
		in.Consume(0)
		out.Publish(0)
		return WorkDone
	}
	limit := min(in.Len(), out.Cap())
	n := 0
	for n < limit {
		out.Set(n, t.ProcessOne(in.At(n)))
		n++
		if t.StopRequested() {
			break
		}
	}
	in.Consume(n)
	out.Publish(n)
	return statusOf(t)
}

// ConsumeBulk feeds every input element to a single-item consumer until it
// requests stop.
func ConsumeBulk[T any](c Consumer[T], in *Input[T]) WorkStatus {
	if c.StopRequested() {
		in.Consume(0)
		return WorkDone
	}
	n := 0
	for n < in.Len() {
		c.ProcessOne(in.At(n))
		n++
		if c.StopRequested() {
			break
		}
	}
	in.Consume(n)
	return statusOf(c)
}
