package synth

import (
	"github.com/inference-sim/blocksim/block"
)

// Block kinds as registered with block.Register.
const (
	KindNullSource     = "NullSource"
	KindConstantSource = "ConstantSource"
	KindCountingSource = "CountingSource"
	KindSlowSource     = "SlowSource"
	KindNullSink       = "NullSink"
	KindCountingSink   = "CountingSink"
	KindCopy           = "Copy"
	KindHeadBlock      = "HeadBlock"
	KindSimCompute     = "SimCompute"
)

func init() {
	registerNumeric[uint8]()
	registerNumeric[uint16]()
	registerNumeric[uint32]()
	registerNumeric[uint64]()
	registerNumeric[int8]()
	registerNumeric[int16]()
	registerNumeric[int32]()
	registerNumeric[int64]()
	registerNumeric[float32]()
	registerNumeric[float64]()
	registerNumeric[complex64]()
	registerNumeric[complex128]()
	registerAll[string]()
}

// registerAll registers every block that works for any element type.
func registerAll[T any]() {
	elem := block.TypeName[T]()
	block.Register(KindNullSource, elem, func() block.Block { return NewNullSource[T]() })
	block.Register(KindConstantSource, elem, func() block.Block { return NewConstantSource[T]() })
	block.Register(KindSlowSource, elem, func() block.Block { return NewSlowSource[T]() })
	block.Register(KindNullSink, elem, func() block.Block { return NewNullSink[T]() })
	block.Register(KindCountingSink, elem, func() block.Block { return NewCountingSink[T]() })
	block.Register(KindCopy, elem, func() block.Block { return NewCopy[T]() })
	block.Register(KindHeadBlock, elem, func() block.Block { return NewHeadBlock[T]() })
	block.Register(KindSimCompute, elem, func() block.Block { return NewSimCompute[T]() })
}

func registerNumeric[T block.Number]() {
	registerAll[T]()
	block.Register(KindCountingSource, block.TypeName[T](), func() block.Block { return NewCountingSource[T]() })
}
