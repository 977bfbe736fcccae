package flow_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/blocksim/block"
	"github.com/inference-sim/blocksim/block/flow"
	"github.com/inference-sim/blocksim/block/synth"
	"github.com/inference-sim/blocksim/block/trace"
)

// collectSink keeps every element it consumes.
type collectSink[T any] struct {
	block.Base
	got []T
}

func (c *collectSink[T]) Description() string { return "collects input" }

func (c *collectSink[T]) ProcessOne(in T) { c.got = append(c.got, in) }

// overflowSource publishes more than its output capacity.
type overflowSource struct {
	block.Base
}

func (o *overflowSource) Description() string { return "broken" }

func (o *overflowSource) ProcessBulk(out *block.Output[int32]) block.WorkStatus {
	out.Publish(out.Cap() + 1)
	return block.WorkOK
}

func named(b block.Block, name string) block.Block {
	b.SetName(name)
	return b
}

func TestChain_BoundedSourceDrainsToSink(t *testing.T) {
	// GIVEN ConstantSource(n=100) -> Copy -> collect, buffer 16
	src := synth.NewConstantSource[int32]()
	src.DefaultValue.Value = 7
	src.MaxSamples.Value = 100
	sink := &collectSink[int32]{}

	c, err := flow.NewChain[int32](flow.Options{BufferSize: 16},
		named(src, "src"), []block.Block{named(synth.NewCopy[int32](), "copy")}, named(sink, "sink"))
	require.NoError(t, err)

	// WHEN run
	r, err := c.Run(context.Background())
	require.NoError(t, err)

	// THEN the sink saw all 100 samples and the run ended on the source
	assert.Equal(t, flow.ReasonSourceDone, r.Reason)
	assert.Equal(t, "src", r.StoppedBy)
	require.Len(t, sink.got, 100)
	for _, v := range sink.got {
		require.Equal(t, int32(7), v)
	}
	assert.Equal(t, int64(100), r.Blocks[2].Consumed)
	assert.Equal(t, block.Stopped, r.Blocks[0].State)
	assert.Equal(t, block.Running, r.Blocks[2].State)
}

func TestChain_HeadStopsChain(t *testing.T) {
	// GIVEN CountingSource(d=10) -> HeadBlock(5) -> collect
	src := synth.NewCountingSource[int64]()
	src.DefaultValue.Value = 10
	head := synth.NewHeadBlock[int64]()
	head.MaxSamples.Value = 5
	sink := &collectSink[int64]{}

	c, err := flow.NewChain[int64](flow.Options{BufferSize: 3},
		named(src, "src"), []block.Block{named(head, "head")}, named(sink, "sink"))
	require.NoError(t, err)

	r, err := c.Run(context.Background())
	require.NoError(t, err)

	// THEN exactly the first five counted values reach the sink
	assert.Equal(t, flow.ReasonBlockStopped, r.Reason)
	assert.Equal(t, "head", r.StoppedBy)
	assert.Equal(t, []int64{11, 12, 13, 14, 15}, sink.got)
}

func TestChain_CountingSinkStopsChain(t *testing.T) {
	sink := synth.NewCountingSink[float32]()
	sink.MaxSamples.Value = 1000

	c, err := flow.NewChain[float32](flow.Options{BufferSize: 64},
		named(synth.NewNullSource[float32](), "src"), nil, named(sink, "sink"))
	require.NoError(t, err)

	r, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sink", r.StoppedBy)
	assert.Equal(t, uint64(1000), sink.Count.Value)
	assert.Equal(t, int64(1000), r.Blocks[1].Consumed)
}

func TestChain_UnboundedRunsUntilCancelled(t *testing.T) {
	c, err := flow.NewChain[uint8](flow.Options{},
		named(synth.NewNullSource[uint8](), "src"), nil, named(synth.NewNullSink[uint8](), "sink"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	r, err := c.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, flow.ReasonCancelled, r.Reason)
	assert.Positive(t, r.Blocks[1].Consumed)
	assert.Positive(t, r.Throughput())
}

func TestChain_SimComputeLimitsThroughput(t *testing.T) {
	// GIVEN 4096 samples through SimCompute at 10 MS/s
	src := synth.NewConstantSource[float32]()
	src.MaxSamples.Value = 4096
	sim := synth.NewSimCompute[float32]()
	sim.TargetThroughput.Value = 1e7

	c, err := flow.NewChain[float32](flow.Options{BufferSize: 1024},
		named(src, "src"), []block.Block{named(sim, "sim")}, named(synth.NewNullSink[float32](), "sink"))
	require.NoError(t, err)

	r, err := c.Run(context.Background())
	require.NoError(t, err)

	// THEN the run takes at least N/R
	assert.GreaterOrEqual(t, r.Elapsed, 409600*time.Nanosecond)
	assert.Equal(t, int64(4096), r.Blocks[2].Consumed)
}

func TestChain_ResetsBlocksBeforeRun(t *testing.T) {
	src := synth.NewConstantSource[int32]()
	src.MaxSamples.Value = 3
	src.Count.Value = 2 // stale diagnostics from an earlier run
	sink := &collectSink[int32]{}

	c, err := flow.NewChain[int32](flow.Options{}, named(src, "src"), nil, named(sink, "sink"))
	require.NoError(t, err)
	_, err = c.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, sink.got, 3)
}

func TestChain_RejectsInvalidSettingsAtRun(t *testing.T) {
	sim := synth.NewSimCompute[int32]()
	sim.ReferenceWorkSize.Value = 0

	c, err := flow.NewChain[int32](flow.Options{},
		named(synth.NewNullSource[int32](), "src"), []block.Block{named(sim, "sim")}, named(synth.NewNullSink[int32](), "sink"))
	require.NoError(t, err)

	_, err = c.Run(context.Background())
	assert.ErrorContains(t, err, "reference_work_size")
}

func TestNewChain_IncompatibleBlocks(t *testing.T) {
	_, err := flow.NewChain[int32](flow.Options{},
		named(synth.NewNullSink[int32](), "sink-as-source"), nil, named(synth.NewNullSink[int32](), "sink"))
	assert.True(t, errors.Is(err, flow.ErrIncompatibleBlock))

	// element type mismatch
	_, err = flow.NewChain[int32](flow.Options{},
		named(synth.NewNullSource[float32](), "src"), nil, named(synth.NewNullSink[int32](), "sink"))
	assert.True(t, errors.Is(err, flow.ErrIncompatibleBlock))
}

func TestChain_ContractViolationIsAnError(t *testing.T) {
	c, err := flow.NewChain[int32](flow.Options{},
		named(&overflowSource{}, "bad"), nil, named(synth.NewNullSink[int32](), "sink"))
	require.NoError(t, err)

	_, err = c.Run(context.Background())
	assert.True(t, errors.Is(err, flow.ErrContractViolation))
}

// delayCounter counts delay events.
type delayCounter struct {
	n     int
	total time.Duration
}

func (d *delayCounter) OnWork(flow.WorkEvent) {}

func (d *delayCounter) OnStop(flow.StopEvent) {}

func (d *delayCounter) OnDelay(e flow.DelayEvent) {
	d.n++
	d.total += e.Delay
}

func TestChain_ObserversSeeWorkStopsAndDelays(t *testing.T) {
	src := synth.NewConstantSource[float64]()
	src.MaxSamples.Value = 10
	tr := trace.NewFlowTrace(trace.TraceConfig{Level: trace.TraceLevelCalls})
	obs := flow.NewTraceObserver(tr)
	delays := &delayCounter{}

	c, err := flow.NewChain[float64](flow.Options{RunID: "run-1", BufferSize: 4, Observers: []flow.Observer{obs, delays}},
		named(src, "src"), []block.Block{named(synth.NewSimCompute[float64](), "sim")}, named(synth.NewNullSink[float64](), "sink"))
	require.NoError(t, err)

	_, err = c.Run(context.Background())
	require.NoError(t, err)

	summary := trace.Summarize(obs.Trace())
	assert.Equal(t, []string{"src"}, summary.StopOrder)
	assert.Equal(t, int64(10), summary.Blocks["src"].Produced)
	assert.Equal(t, int64(10), summary.Blocks["sink"].Consumed)
	for _, w := range obs.Trace().Works {
		assert.Equal(t, "run-1", w.RunID)
	}
	assert.Positive(t, delays.n)
	assert.Equal(t, 100*time.Nanosecond, delays.total) // 10 samples at 100 MS/s
}

func TestChain_RunAfterStopIsAnError(t *testing.T) {
	// GIVEN ConstantSource(n=5) -> CountingSink that has already run to completion
	src := synth.NewConstantSource[int32]()
	src.MaxSamples.Value = 5
	sink := synth.NewCountingSink[int32]()
	c, err := flow.NewChain[int32](flow.Options{}, named(src, "src"), nil, named(sink, "sink"))
	require.NoError(t, err)

	r, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), r.Blocks[1].Consumed)

	// WHEN it is run again
	r, err = c.Run(context.Background())

	// THEN the stopped source is reported instead of replaying the old totals
	assert.Nil(t, r)
	assert.True(t, errors.Is(err, flow.ErrContractViolation))
	assert.ErrorContains(t, err, `"src" already stopped`)
}

func TestChain_RerunAfterCancelStartsFromZero(t *testing.T) {
	c, err := flow.NewChain[int16](flow.Options{BufferSize: 8},
		named(synth.NewNullSource[int16](), "src"), nil, named(synth.NewNullSink[int16](), "sink"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, err := c.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, flow.ReasonCancelled, r.Reason)
	assert.Zero(t, r.Blocks[0].Calls)

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel2()
	first, err := c.Run(ctx2)
	require.NoError(t, err)
	require.Positive(t, first.Blocks[0].Calls)

	ctx3, cancel3 := context.WithCancel(context.Background())
	cancel3()
	second, err := c.Run(ctx3)
	require.NoError(t, err)
	assert.Zero(t, second.Blocks[0].Calls)
	assert.Zero(t, second.Blocks[1].Consumed)
}

func TestChain_HooksReportOnlyWhileOwningChainRuns(t *testing.T) {
	// GIVEN the same blocks wired into two chains with separate observers
	src := synth.NewConstantSource[float32]()
	src.MaxSamples.Value = 8
	compute := synth.NewSimCompute[float32]()
	sink := synth.NewNullSink[float32]()
	named(src, "src")
	named(compute, "compute")
	named(sink, "sink")

	stale := &delayCounter{}
	stops := flow.NewTraceObserver(trace.NewFlowTrace(trace.TraceConfig{Level: trace.TraceLevelCalls}))
	_, err := flow.NewChain[float32](flow.Options{Observers: []flow.Observer{stale, stops}},
		src, []block.Block{compute}, sink)
	require.NoError(t, err)

	current := &delayCounter{}
	second, err := flow.NewChain[float32](flow.Options{Observers: []flow.Observer{current}},
		src, []block.Block{compute}, sink)
	require.NoError(t, err)

	// WHEN only the second chain runs
	_, err = second.Run(context.Background())
	require.NoError(t, err)

	// THEN the first chain's observers see none of its events
	assert.Zero(t, stale.n)
	assert.Empty(t, stops.Trace().Stops)
	assert.Equal(t, 1, current.n)
}
