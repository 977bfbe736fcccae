package delay

import "time"

// SleepQuantum is the pause between clock checks in yield-sleep mode.
const SleepQuantum = 10 * time.Microsecond

// Strategy selects how Wait passes time.
//
// Spin polls the monotonic clock in a tight loop: the most accurate option,
// at the cost of a fully busy core for the whole delay. YieldSleep polls the
// same clock but sleeps SleepQuantum between checks: far lower CPU usage,
// with overshoot bounded by the scheduler's sleep granularity.
type Strategy int

const (
	Spin Strategy = iota
	YieldSleep
)

func (s Strategy) String() string {
	if s == YieldSleep {
		return "yield-sleep"
	}
	return "spin"
}

// StrategyFor maps the busy_wait setting to a Strategy.
func StrategyFor(busyWait bool) Strategy {
	if busyWait {
		return Spin
	}
	return YieldSleep
}

// Wait blocks the calling goroutine until at least d has elapsed since start.
// There is no cancellation: once started, it runs to completion.
func Wait(start time.Time, d time.Duration, s Strategy) {
	for time.Since(start) < d {
		if s == YieldSleep {
			time.Sleep(SleepQuantum)
		}
	}
}
