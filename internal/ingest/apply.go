package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/tmarlow/kith/internal/contact"
)

// Options controls how parsed records are validated and applied.
type Options struct {
	// Now stamps updates whose block carried no date: line.
	Now time.Time

	// CreateMissing permits blocks naming contacts that do not exist
	// yet; they are created and appended to the collection order. When
	// false, an unknown name is a validation error.
	CreateMissing bool
}

// Validate checks every record against the collection before anything
// mutates. It enforces the all-or-nothing contract: similar names
// (likely typos) and, with CreateMissing disabled, unknown names reject
// the whole file. source is used in error messages only.
func Validate(records []Record, col *contact.Collection, source string, opts Options) error {
	for i, rec := range records {
		_, known := col.Lookup(rec.Name)
		if !known && !opts.CreateMissing {
			return &ParseError{
				Code:    ErrCodeUnknownContact,
				File:    source,
				Block:   i + 1,
				Line:    rec.Line,
				Message: fmt.Sprintf("unknown contact %q and creation is disabled", rec.Name),
			}
		}
		if known {
			continue
		}
		// New name: reject anything within a couple of edits of an
		// existing contact. If it really is a different person, fix the
		// store by hand first.
		for _, existing := range col.Names() {
			d := levenshtein.ComputeDistance(rec.Name, existing)
			if d >= 1 && d <= 2 {
				return &ParseError{
					Code:    ErrCodeSimilarName,
					File:    source,
					Block:   i + 1,
					Line:    rec.Line,
					Message: fmt.Sprintf("name %q is similar to existing %q (distance %d); likely a typo", rec.Name, existing, d),
				}
			}
		}
	}
	return nil
}

// Apply merges validated records into the collection. Each record
// appends exactly one update; address and frequency replace, while tags,
// characteristics and urls merge.
//
// Apply assumes Validate has passed; with CreateMissing disabled an
// unknown name here is a programming error, not user input.
func Apply(col *contact.Collection, records []Record, opts Options) error {
	for _, rec := range records {
		ct, ok := col.Lookup(rec.Name)
		if !ok {
			if !opts.CreateMissing {
				return fmt.Errorf("apply: unknown contact %q", rec.Name)
			}
			ct = contact.New(strings.TrimSpace(rec.Name))
			if err := col.Add(ct); err != nil {
				return fmt.Errorf("apply: %w", err)
			}
		}

		if rec.HasAddress {
			ct.Address = rec.Address
		}
		if rec.HasFrequency {
			ct.Frequency = rec.Frequency
		}
		ct.MergeTags(rec.Tags...)
		ct.MergeCharacteristics(rec.Characteristics...)
		ct.AddURLs(rec.URLs...)

		when := rec.Time
		if when.IsZero() {
			when = opts.Now
		}
		ct.AppendUpdate(contact.Update{Time: when, Body: rec.Body})
	}
	return nil
}
