package contact

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Field selects which contact field a substring filter matches against.
type Field string

const (
	FieldName    Field = "name"
	FieldAddress Field = "address"
)

// Filter returns the contacts whose selected field contains query as a
// case-insensitive substring, preserving collection order. An empty
// query matches everything. No fuzzy matching, no ranking.
func Filter(c *Collection, query string, field Field) []*Contact {
	query = strings.ToLower(query)
	var out []*Contact
	for _, ct := range c.All() {
		var subject string
		switch field {
		case FieldAddress:
			subject = ct.Address
		default:
			subject = ct.Name
		}
		if query == "" || strings.Contains(strings.ToLower(subject), query) {
			out = append(out, ct)
		}
	}
	return out
}

// BestMatch resolves a partial name to the single closest contact by
// minimum edit distance against each whitespace-separated part of each
// contact's name, case-folded. Errors on an empty collection.
func BestMatch(c *Collection, partial string) (*Contact, error) {
	if c.Len() == 0 {
		return nil, fmt.Errorf("no contacts available")
	}
	partial = strings.ToLower(strings.TrimSpace(partial))

	var best *Contact
	bestDist := -1
	for _, ct := range c.All() {
		for _, part := range strings.Fields(ct.Name) {
			d := levenshtein.ComputeDistance(partial, strings.ToLower(part))
			if bestDist < 0 || d < bestDist {
				bestDist = d
				best = ct
			}
		}
	}
	return best, nil
}
