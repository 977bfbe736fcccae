// Package trace provides per-call work recording for flow runs.
// It has no dependencies on block or block/flow and stores plain data types.
package trace

// TraceLevel controls the verbosity of work tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelCalls captures every block invocation and stop transition.
	TraceLevelCalls TraceLevel = "calls"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelCalls: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level      TraceLevel
	MaxRecords int // cap on stored work records; 0 = unlimited
}

// FlowTrace collects work records during one or more chain runs.
type FlowTrace struct {
	Config  TraceConfig
	Works   []WorkRecord
	Stops   []StopRecord
	Dropped int // work records discarded after MaxRecords was reached
}

// NewFlowTrace creates a FlowTrace ready for recording.
func NewFlowTrace(config TraceConfig) *FlowTrace {
	return &FlowTrace{
		Config: config,
		Works:  make([]WorkRecord, 0),
		Stops:  make([]StopRecord, 0),
	}
}

// Enabled reports whether records are kept at all.
func (ft *FlowTrace) Enabled() bool {
	return ft != nil && ft.Config.Level == TraceLevelCalls
}

// RecordWork appends a work record, honoring MaxRecords.
func (ft *FlowTrace) RecordWork(record WorkRecord) {
	if !ft.Enabled() {
		return
	}
	if ft.Config.MaxRecords > 0 && len(ft.Works) >= ft.Config.MaxRecords {
		ft.Dropped++
		return
	}
	ft.Works = append(ft.Works, record)
}

// RecordStop appends a stop transition record. Stops are never capped.
func (ft *FlowTrace) RecordStop(record StopRecord) {
	if !ft.Enabled() {
		return
	}
	ft.Stops = append(ft.Stops, record)
}
