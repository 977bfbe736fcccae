package trace

import "time"

// WorkRecord captures a single block invocation.
type WorkRecord struct {
	RunID    string
	Block    string
	Call     int64 // 1-based invocation index within the block
	Consumed int
	Produced int
	Status   string // "OK" or "DONE"
	Elapsed  time.Duration
}

// Idle reports whether the call made no progress.
func (r WorkRecord) Idle() bool {
	return r.Consumed == 0 && r.Produced == 0
}

// StopRecord captures a block's Running → Stopped transition.
type StopRecord struct {
	RunID string
	Block string
	Call  int64 // invocation during which the block stopped
}
