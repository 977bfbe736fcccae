package flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/blocksim/block"
)

// DefaultBufferSize is the per-edge buffer capacity when none is configured.
const DefaultBufferSize = 4096

// idleBackoff is how long a sweep that made no progress sleeps before the
// next one, so rate-limited sources do not spin the scheduler.
const idleBackoff = 50 * time.Microsecond

var (
	// ErrContractViolation is returned when a block breaks the processing contract.
	ErrContractViolation = errors.New("block contract violation")
	// ErrIncompatibleBlock is returned when a block cannot fill its position in a chain.
	ErrIncompatibleBlock = errors.New("incompatible block")
)

// StopReason explains why a chain run ended.
type StopReason string

const (
	ReasonSourceDone   StopReason = "source-done"
	ReasonBlockStopped StopReason = "block-stopped"
	ReasonCancelled    StopReason = "cancelled"
)

// Options configure a Chain.
type Options struct {
	RunID      string
	BufferSize int // per-edge capacity; 0 = DefaultBufferSize
	Observers  []Observer
}

type node[T any] struct {
	b        block.Block
	calls    int64
	consumed int64
	produced int64

	source func(out *block.Output[T]) block.WorkStatus
	proc   func(in *block.Input[T], out *block.Output[T]) block.WorkStatus
	sink   func(in *block.Input[T]) block.WorkStatus
}

// Chain is a linear source → stages → sink graph over element type T.
type Chain[T any] struct {
	opts    Options
	nodes   []*node[T] // source, stages..., sink
	buffers []*buffer[T]
	log     *logrus.Entry
	running bool
}

// NewChain wires the given blocks. The source must be a Generator or
// BulkSource, every stage a Transformer or BulkProcessor, and the sink a
// Consumer or BulkSink, all over T.
//
// The chain takes ownership of its blocks: it installs stop and delay hooks
// on them, and those hooks only report events while this chain is running.
// Wiring the same instances into another chain is not supported.
func NewChain[T any](opts Options, source block.Block, stages []block.Block, sink block.Block) (*Chain[T], error) {
	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultBufferSize
	}
	c := &Chain[T]{
		opts: opts,
		log:  logrus.WithField("run", opts.RunID),
	}

	src, err := sourceNode[T](source)
	if err != nil {
		return nil, err
	}
	c.nodes = append(c.nodes, src)
	for _, s := range stages {
		n, err := stageNode[T](s)
		if err != nil {
			return nil, err
		}
		c.nodes = append(c.nodes, n)
	}
	snk, err := sinkNode[T](sink)
	if err != nil {
		return nil, err
	}
	c.nodes = append(c.nodes, snk)

	for i := 0; i < len(c.nodes)-1; i++ {
		c.buffers = append(c.buffers, newBuffer[T](opts.BufferSize))
	}
	for _, n := range c.nodes {
		c.hook(n)
	}
	return c, nil
}

func sourceNode[T any](b block.Block) (*node[T], error) {
	switch v := b.(type) {
	case block.BulkSource[T]:
		return &node[T]{b: b, source: v.ProcessBulk}, nil
	case block.Generator[T]:
		return &node[T]{b: b, source: func(out *block.Output[T]) block.WorkStatus {
			return block.GenerateBulk[T](v, out)
		}}, nil
	}
	return nil, fmt.Errorf("%w: %q cannot act as a %s source", ErrIncompatibleBlock, b.Name(), block.TypeName[T]())
}

func stageNode[T any](b block.Block) (*node[T], error) {
	switch v := b.(type) {
	case block.BulkProcessor[T]:
		return &node[T]{b: b, proc: v.ProcessBulk}, nil
	case block.Transformer[T]:
		return &node[T]{b: b, proc: func(in *block.Input[T], out *block.Output[T]) block.WorkStatus {
			return block.TransformBulk[T](v, in, out)
		}}, nil
	}
	return nil, fmt.Errorf("%w: %q cannot act as a %s stage", ErrIncompatibleBlock, b.Name(), block.TypeName[T]())
}

func sinkNode[T any](b block.Block) (*node[T], error) {
	switch v := b.(type) {
	case block.BulkSink[T]:
		return &node[T]{b: b, sink: v.ProcessBulk}, nil
	case block.Consumer[T]:
		return &node[T]{b: b, sink: func(in *block.Input[T]) block.WorkStatus {
			return block.ConsumeBulk[T](v, in)
		}}, nil
	}
	return nil, fmt.Errorf("%w: %q cannot act as a %s sink", ErrIncompatibleBlock, b.Name(), block.TypeName[T]())
}

type delayReporter interface {
	SetOnDelay(fn func(n int, d time.Duration))
}

// hook subscribes the chain's observers to the block's stop transition and,
// for compute simulators, to their delays.
func (c *Chain[T]) hook(n *node[T]) {
	name := n.b.Name()
	n.b.OnStop(func() {
		if !c.running {
			return
		}
		c.log.Debugf("block %s stopped on call %d", name, n.calls)
		e := StopEvent{RunID: c.opts.RunID, Block: name, Call: n.calls}
		for _, o := range c.opts.Observers {
			o.OnStop(e)
		}
	})

	var delayObs []DelayObserver
	for _, o := range c.opts.Observers {
		if d, ok := o.(DelayObserver); ok {
			delayObs = append(delayObs, d)
		}
	}
	if dr, ok := n.b.(delayReporter); ok && len(delayObs) > 0 {
		dr.SetOnDelay(func(size int, d time.Duration) {
			if !c.running {
				return
			}
			e := DelayEvent{RunID: c.opts.RunID, Block: name, N: size, Delay: d}
			for _, o := range delayObs {
				o.OnDelay(e)
			}
		})
	}
}

// BlockStats are per-block totals of one run.
type BlockStats struct {
	Name     string
	Calls    int64
	Consumed int64
	Produced int64
	State    block.State
}

// Report summarises one chain run.
type Report struct {
	RunID     string
	Reason    StopReason
	StoppedBy string // block whose stop ended the run, if any
	Elapsed   time.Duration
	Blocks    []BlockStats // chain order: source, stages..., sink
}

// Throughput is the sink's consumption rate in elements per second.
func (r *Report) Throughput() float64 {
	if len(r.Blocks) == 0 || r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Blocks[len(r.Blocks)-1].Consumed) / r.Elapsed.Seconds()
}

// Run resets every block, validates their settings and schedules them until
// the chain ends. Cancellation is not an error: the report says so.
// A stopped block never runs again, so a chain can be run only until one of
// its blocks has stopped; later calls return ErrContractViolation.
func (c *Chain[T]) Run(ctx context.Context) (*Report, error) {
	for _, n := range c.nodes {
		if n.b.StopRequested() {
			return nil, fmt.Errorf("%w: block %q already stopped", ErrContractViolation, n.b.Name())
		}
	}
	for _, b := range c.buffers {
		b.clear()
	}
	for _, n := range c.nodes {
		n.calls, n.consumed, n.produced = 0, 0, 0
		n.b.Reset()
		if v, ok := n.b.(block.Validator); ok {
			if err := v.Validate(); err != nil {
				return nil, fmt.Errorf("block %q: %w", n.b.Name(), err)
			}
		}
	}

	c.log.Infof("chain started: %d blocks, buffer size %d", len(c.nodes), c.opts.BufferSize)
	start := time.Now()
	report := &Report{RunID: c.opts.RunID}
	c.running = true
	defer func() { c.running = false }()

	for {
		if ctx.Err() != nil {
			report.Reason = ReasonCancelled
			break
		}
		progress, err := c.sweep()
		if err != nil {
			return nil, err
		}
		if by := c.stoppedDownstream(); by != "" {
			report.Reason, report.StoppedBy = ReasonBlockStopped, by
			break
		}
		if c.nodes[0].b.StopRequested() && c.drained() {
			report.Reason, report.StoppedBy = ReasonSourceDone, c.nodes[0].b.Name()
			break
		}
		if !progress {
			time.Sleep(idleBackoff)
		}
	}

	report.Elapsed = time.Since(start)
	for _, n := range c.nodes {
		report.Blocks = append(report.Blocks, BlockStats{
			Name:     n.b.Name(),
			Calls:    n.calls,
			Consumed: n.consumed,
			Produced: n.produced,
			State:    n.b.State(),
		})
	}
	c.log.Infof("chain finished: %s after %v", report.Reason, report.Elapsed)
	return report, nil
}

// sweep invokes each block once, source first, skipping blocks with no
// input or no output space. It reports whether any element moved.
func (c *Chain[T]) sweep() (bool, error) {
	progress := false
	last := len(c.nodes) - 1
	for i, n := range c.nodes {
		if n.b.StopRequested() {
			continue
		}
		var in *block.Input[T]
		var out *block.Output[T]
		if i > 0 {
			if c.buffers[i-1].len() == 0 {
				continue
			}
			in = block.NewInput(c.buffers[i-1].readable())
		}
		if i < last {
			w := c.buffers[i].writable()
			if len(w) == 0 {
				continue
			}
			out = block.NewOutput(w)
		}

		n.calls++
		t0 := time.Now()
		var status block.WorkStatus
		switch {
		case n.source != nil:
			status = n.source(out)
		case n.proc != nil:
			status = n.proc(in, out)
		default:
			status = n.sink(in)
		}
		elapsed := time.Since(t0)

		consumed, produced := 0, 0
		if in != nil {
			consumed = in.Consumed()
			c.buffers[i-1].consume(consumed)
		}
		if out != nil {
			if err := out.Err(); err != nil {
				return false, fmt.Errorf("%w: block %q: %v", ErrContractViolation, n.b.Name(), err)
			}
			produced = out.Published()
			c.buffers[i].commit(produced)
		}
		n.consumed += int64(consumed)
		n.produced += int64(produced)
		if consumed > 0 || produced > 0 {
			progress = true
		}

		e := WorkEvent{
			RunID: c.opts.RunID, Block: n.b.Name(), Call: n.calls,
			Consumed: consumed, Produced: produced, Status: status, Elapsed: elapsed,
		}
		for _, o := range c.opts.Observers {
			o.OnWork(e)
		}
	}
	return progress, nil
}

// stoppedDownstream returns the name of the first stopped stage or sink.
func (c *Chain[T]) stoppedDownstream() string {
	for _, n := range c.nodes[1:] {
		if n.b.StopRequested() {
			return n.b.Name()
		}
	}
	return ""
}

func (c *Chain[T]) drained() bool {
	for _, b := range c.buffers {
		if b.len() > 0 {
			return false
		}
	}
	return true
}
