package flow

import (
	"sync"
	"time"

	"github.com/inference-sim/blocksim/block"
	"github.com/inference-sim/blocksim/block/trace"
)

// WorkEvent describes one block invocation.
type WorkEvent struct {
	RunID    string
	Block    string
	Call     int64
	Consumed int
	Produced int
	Status   block.WorkStatus
	Elapsed  time.Duration
}

// StopEvent describes a block's Running → Stopped transition.
type StopEvent struct {
	RunID string
	Block string
	Call  int64
}

// DelayEvent describes a simulated compute delay.
type DelayEvent struct {
	RunID string
	Block string
	N     int
	Delay time.Duration
}

// Observer receives chain events. An observer shared by parallel chains
// must be safe for concurrent use.
type Observer interface {
	OnWork(e WorkEvent)
	OnStop(e StopEvent)
}

// DelayObserver is optionally implemented by observers interested in
// simulated compute delays.
type DelayObserver interface {
	OnDelay(e DelayEvent)
}

// TraceObserver records events into a trace.FlowTrace.
type TraceObserver struct {
	mu    sync.Mutex
	trace *trace.FlowTrace
}

// NewTraceObserver wraps ft. A nil or disabled trace records nothing.
func NewTraceObserver(ft *trace.FlowTrace) *TraceObserver {
	return &TraceObserver{trace: ft}
}

func (o *TraceObserver) OnWork(e WorkEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.trace.RecordWork(trace.WorkRecord{
		RunID:    e.RunID,
		Block:    e.Block,
		Call:     e.Call,
		Consumed: e.Consumed,
		Produced: e.Produced,
		Status:   e.Status.String(),
		Elapsed:  e.Elapsed,
	})
}

func (o *TraceObserver) OnStop(e StopEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.trace.RecordStop(trace.StopRecord{RunID: e.RunID, Block: e.Block, Call: e.Call})
}

// Trace returns the underlying trace. Read it only after all runs finished.
func (o *TraceObserver) Trace() *trace.FlowTrace { return o.trace }
