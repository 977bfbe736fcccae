package synth

import (
	"time"

	"github.com/inference-sim/blocksim/block"
	"github.com/inference-sim/blocksim/block/delay"
)

// SimCompute copies its input to its output and then holds the calling
// goroutine for the delay the model assigns to the batch size.
type SimCompute[T any] struct {
	block.Base
	TargetThroughput  block.Annotated[float64]
	ReferenceWorkSize block.Annotated[uint64]
	ComplexityOrder   block.Annotated[float64]
	BusyWait          block.Annotated[bool]

	onDelay func(n int, d time.Duration)
}

func NewSimCompute[T any]() *SimCompute[T] {
	m := delay.DefaultModel()
	return &SimCompute[T]{
		TargetThroughput: block.Annotated[float64]{Value: m.TargetThroughput, Meta: block.Descriptor{
			Name: "target_throughput", Display: "target_throughput", Unit: "S/s",
			Doc: "Target throughput in samples per second at reference_work_size.",
		}},
		ReferenceWorkSize: block.Annotated[uint64]{Value: m.ReferenceWorkSize, Meta: block.Descriptor{
			Name: "reference_work_size", Display: "reference_work_size", Unit: "[N]",
			Doc: "Reference work size N_r (samples) for which target_throughput applies.",
		}},
		ComplexityOrder: block.Annotated[float64]{Value: m.ComplexityOrder, Meta: block.Descriptor{
			Name: "complexity_order", Display: "complexity_order",
			Doc: "compute complexity: 1.0 = linear, 2.0 = quadratic, 3.0 = cubic.",
		}},
		BusyWait: block.Annotated[bool]{Value: true, Meta: block.Descriptor{
			Name: "busy_wait", Display: "busy_wait",
			Doc: "true: busy loop (CPU burn), false: sleep loop (lower power, less accurate).",
		}},
	}
}

func (s *SimCompute[T]) Description() string {
	return "Simulates compute delay for a given complexity order: " +
		"delay_seconds = (N / reference_work_size)^complexity_order * (reference_work_size / target_throughput). " +
		"Default: linear delay limiting processing to 100 MS/s."
}

func (s *SimCompute[T]) Ports() []block.Port {
	return []block.Port{block.PortIn[T]("in"), block.PortOut[T]("out")}
}

func (s *SimCompute[T]) Parameters() []block.Parameter {
	return []block.Parameter{&s.TargetThroughput, &s.ReferenceWorkSize, &s.ComplexityOrder, &s.BusyWait}
}

// Model returns the delay model described by the current settings.
func (s *SimCompute[T]) Model() delay.Model {
	return delay.Model{
		TargetThroughput:  s.TargetThroughput.Value,
		ReferenceWorkSize: s.ReferenceWorkSize.Value,
		ComplexityOrder:   s.ComplexityOrder.Value,
	}
}

func (s *SimCompute[T]) Validate() error { return s.Model().Validate() }

// SetOnDelay installs fn to receive the batch size and computed delay of
// every call, before the wait starts.
func (s *SimCompute[T]) SetOnDelay(fn func(n int, d time.Duration)) { s.onDelay = fn }

// ComputeDelay returns the simulated cost of a batch of n elements.
func (s *SimCompute[T]) ComputeDelay(n int) time.Duration { return s.Model().Delay(n) }

func (s *SimCompute[T]) ProcessBulk(in *block.Input[T], out *block.Output[T]) block.WorkStatus {
	start := time.Now()

	n := copy(out.Slice(), in.Slice())
	in.Consume(n)
	out.Publish(n)

	d := s.ComputeDelay(n)
	if s.onDelay != nil {
		s.onDelay(n, d)
	}
	delay.Wait(start, d, delay.StrategyFor(s.BusyWait.Value))
	return block.WorkOK
}
