// Package testutil provides deterministic time and randomness for tests.
package testutil

import (
	"math/rand"
	"time"
)

// FixedClock always reports the same instant.
//
// Reminder computations are pure functions of (snapshot, now, rng), so
// pinning "now" makes every assertion exact.
type FixedClock struct {
	T time.Time
}

// Now returns the pinned instant.
func (c FixedClock) Now() time.Time { return c.T }

// At builds a FixedClock from a date string, panicking on bad input.
// Accepts "2006-01-02" and "2006-01-02 15:04".
func At(stamp string) FixedClock {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, stamp); err == nil {
			return FixedClock{T: t}
		}
	}
	panic("testutil: bad stamp " + stamp)
}

// Rand returns a seeded rand.Rand for reproducible random pulls.
func Rand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
