package block

// WorkStatus is the per-invocation outcome reported to the scheduler.
type WorkStatus int

const (
	// WorkOK means the call made progress (possibly zero elements); keep scheduling.
	WorkOK WorkStatus = iota
	// WorkDone means the block has reached its terminal state.
	WorkDone
)

func (s WorkStatus) String() string {
	switch s {
	case WorkOK:
		return "OK"
	case WorkDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}
