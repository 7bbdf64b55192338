// Package remind computes which contacts are due for a check-in.
//
// Everything here is a pure function over a collection snapshot plus an
// explicit clock and randomness source. No I/O, no hidden state.
package remind

import (
	"math/rand"
	"sort"
	"time"

	"github.com/tmarlow/kith/internal/contact"
)

// Entry is one overdue contact with its reminder arithmetic.
type Entry struct {
	Contact *contact.Contact

	// LastContact is the most recent update timestamp; the zero value
	// for a contact that has never been touched.
	LastContact time.Time

	// Due is LastContact plus the contact's frequency.
	Due time.Time

	// OverdueBy is now minus Due.
	OverdueBy time.Duration

	// Never marks a contact with a frequency but no updates at all.
	// Such contacts are immediately overdue and sort first.
	Never bool
}

// Suggestion is a randomly surfaced contact that is not overdue.
type Suggestion struct {
	Contact *contact.Contact

	// Since is the time since the last update.
	Since time.Duration
}

// Overdue returns every contact whose last contact plus frequency is at
// or before now. Contacts without a frequency are never overdue;
// contacts with a frequency but no updates are overdue immediately,
// baselined at the zero time so they rank as most overdue.
//
// The result is ordered most-overdue-first, ties broken by name
// ascending, so repeated calls over the same snapshot and instant are
// identical.
func Overdue(col *contact.Collection, now time.Time) []Entry {
	var out []Entry
	for _, ct := range col.All() {
		if ct.Frequency.IsZero() {
			continue
		}
		last, touched := ct.LastContact()
		due := last.Add(ct.Frequency.Duration())
		if due.After(now) {
			continue
		}
		out = append(out, Entry{
			Contact:     ct,
			LastContact: last,
			Due:         due,
			OverdueBy:   now.Sub(due),
			Never:       !touched,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OverdueBy != out[j].OverdueBy {
			return out[i].OverdueBy > out[j].OverdueBy
		}
		return out[i].Contact.Name < out[j].Contact.Name
	})
	return out
}

// Pick selects one contact uniformly at random from the full set,
// independent of overdue status. ok is false for an empty collection.
func Pick(col *contact.Collection, rng *rand.Rand) (ct *contact.Contact, ok bool) {
	all := col.All()
	if len(all) == 0 {
		return nil, false
	}
	return all[rng.Intn(len(all))], true
}

// Suggestions flips a weighted coin for each contact that is current
// (has a frequency, has updates, and is not overdue) and surfaces the
// winners. fraction is the per-contact probability; 0 disables, 1
// suggests everyone eligible. Iteration follows collection order, so a
// seeded rng makes the result deterministic.
func Suggestions(col *contact.Collection, now time.Time, rng *rand.Rand, fraction float64) []Suggestion {
	var out []Suggestion
	for _, ct := range col.All() {
		if ct.Frequency.IsZero() {
			continue
		}
		last, touched := ct.LastContact()
		if !touched {
			continue
		}
		if !last.Add(ct.Frequency.Duration()).After(now) {
			continue // overdue, reported by Overdue instead
		}
		if rng.Float64() < fraction {
			out = append(out, Suggestion{Contact: ct, Since: now.Sub(last)})
		}
	}
	return out
}
