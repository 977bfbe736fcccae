package block

// State is the lifecycle flag of a block instance.
type State int

const (
	// Running is the initial state.
	Running State = iota
	// Stopped is terminal: the scheduler must not invoke the block for new work.
	Stopped
)

func (s State) String() string {
	if s == Stopped {
		return "STOPPED"
	}
	return "RUNNING"
}

// Base carries the identity and lifecycle flag common to all blocks.
// Embed it by value; the zero value is a running, unnamed block.
// Base does no locking: a block is owned by one caller at a time.
type Base struct {
	name   string
	state  State
	onStop []func()
}

// Name returns the instance name assigned by the scheduler.
func (b *Base) Name() string { return b.name }

// SetName assigns the instance name.
func (b *Base) SetName(name string) { b.name = name }

// State returns the current lifecycle state.
func (b *Base) State() State { return b.state }

// StopRequested reports whether the block has transitioned to Stopped.
func (b *Base) StopRequested() bool { return b.state == Stopped }

// RequestStop moves the block to Stopped. It returns true only on the call
// that performs the transition; later calls are no-ops. Stop hooks run once,
// in registration order, during that transition.
func (b *Base) RequestStop() bool {
	if b.state == Stopped {
		return false
	}
	b.state = Stopped
	for _, fn := range b.onStop {
		fn()
	}
	return true
}

// OnStop registers fn to run when the block transitions to Stopped.
// Registering on an already stopped block has no effect.
func (b *Base) OnStop(fn func()) {
	if fn == nil || b.state == Stopped {
		return
	}
	b.onStop = append(b.onStop, fn)
}

// Reset is a no-op for stateless blocks; counting blocks override it.
// It never touches the lifecycle flag.
func (b *Base) Reset() {}

// Ports of a block with no declared ports.
func (b *Base) Ports() []Port { return nil }

// Parameters of a block with no settings.
func (b *Base) Parameters() []Parameter { return nil }
