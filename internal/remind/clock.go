package remind

import "time"

// Clock supplies "now" to the reminder computations.
//
// All reminder results are pure functions of (collection snapshot, now,
// rng). Injecting the clock keeps every computation re-derivable in
// tests: the same snapshot and the same instant always produce the same
// ordered output.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock used by real invocations.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }
