package trace

import "time"

// BlockSummary aggregates the work records of one block.
type BlockSummary struct {
	Calls     int
	IdleCalls int
	Consumed  int64
	Produced  int64
	Busy      time.Duration
}

// TraceSummary aggregates statistics from a FlowTrace.
type TraceSummary struct {
	TotalCalls int
	IdleCalls  int
	Blocks     map[string]BlockSummary // block name → totals
	StopOrder  []string                // block names in stop order
}

// Summarize computes aggregate statistics from a FlowTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(ft *FlowTrace) *TraceSummary {
	summary := &TraceSummary{
		Blocks: make(map[string]BlockSummary),
	}
	if ft == nil {
		return summary
	}

	summary.TotalCalls = len(ft.Works)
	for _, w := range ft.Works {
		bs := summary.Blocks[w.Block]
		bs.Calls++
		if w.Idle() {
			bs.IdleCalls++
			summary.IdleCalls++
		}
		bs.Consumed += int64(w.Consumed)
		bs.Produced += int64(w.Produced)
		bs.Busy += w.Elapsed
		summary.Blocks[w.Block] = bs
	}

	for _, s := range ft.Stops {
		summary.StopOrder = append(summary.StopOrder, s.Block)
	}
	return summary
}
