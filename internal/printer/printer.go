// Package printer renders contact listings for the terminal.
//
// All views take an explicit "now" so output is reproducible; styling
// can be disabled wholesale for machine-diffed output.
package printer

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tmarlow/kith/internal/contact"
)

// Options configures a Printer.
type Options struct {
	// Now anchors every "time since last contact" marker.
	Now time.Time

	// NoColor disables ANSI styling (golden tests, JSON pipelines).
	NoColor bool
}

// Printer writes the contact views to a single destination.
type Printer struct {
	w      io.Writer
	now    time.Time
	styles styles
	coll   *collate.Collator
}

// New creates a Printer writing to w.
func New(w io.Writer, opts Options) *Printer {
	return &Printer{
		w:      w,
		now:    opts.Now,
		styles: newStyles(opts.NoColor),
		coll:   collate.New(language.English, collate.Loose),
	}
}

// People prints names ordered by last name, each with a time-since-last-
// contact marker. Overdue markers are styled.
func (p *Printer) People(contacts []*contact.Contact) {
	for _, ct := range p.byLastName(contacts) {
		fmt.Fprintf(p.w, "%s%s\n", ct.Name, p.marker(ct))
	}
}

// Places groups contacts by address. Addresses sort collated; people
// within a place sort by last name. Contacts without an address are
// omitted.
func (p *Printer) Places(contacts []*contact.Contact) {
	byPlace := make(map[string][]*contact.Contact)
	for _, ct := range contacts {
		if ct.Address != "" {
			byPlace[ct.Address] = append(byPlace[ct.Address], ct)
		}
	}

	places := make([]string, 0, len(byPlace))
	for place := range byPlace {
		places = append(places, place)
	}
	sort.Slice(places, func(i, j int) bool {
		return p.coll.CompareString(places[i], places[j]) < 0
	})

	for _, place := range places {
		fmt.Fprintf(p.w, "\n%s\n", strings.ToUpper(place))
		for _, ct := range p.byLastName(byPlace[place]) {
			fmt.Fprintf(p.w, "\t%s%s\n", ct.Name, p.marker(ct))
		}
	}
}

// Person prints a summary of one contact: name, address, all updates in
// ascending order.
func (p *Printer) Person(ct *contact.Contact) {
	fmt.Fprintf(p.w, "\nName: %s%s\n", ct.Name, p.marker(ct))
	if ct.Address != "" {
		fmt.Fprintf(p.w, "Address: %s\n", ct.Address)
	}
	if len(ct.Updates) > 0 {
		fmt.Fprintln(p.w, "Updates:")
		for _, u := range ct.Updates {
			fmt.Fprintf(p.w, "\t%s: %s\n", contact.FormatStamp(u.Time), u.Body)
		}
	}
}

// All prints everything stored on one contact.
func (p *Printer) All(ct *contact.Contact) {
	fmt.Fprintf(p.w, "\nName: %s%s\n", ct.Name, p.marker(ct))
	if ct.Address != "" {
		fmt.Fprintf(p.w, "\nAddress: %s\n", ct.Address)
	}
	if !ct.Frequency.IsZero() {
		fmt.Fprintf(p.w, "\nFrequency: %s\n", ct.Frequency)
	}
	if len(ct.Updates) > 0 {
		fmt.Fprintln(p.w, "\nUpdates:")
		for _, u := range ct.Updates {
			fmt.Fprintf(p.w, "\t%s: %s\n", contact.FormatStamp(u.Time), u.Body)
		}
	}
	p.sortedSection("Characteristics", ct.Characteristics)
	p.sortedSection("Tags", ct.Tags)
	p.sortedSection("URLs", ct.URLs)
}

func (p *Printer) sortedSection(title string, values []string) {
	if len(values) == 0 {
		return
	}
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Strings(sorted)
	fmt.Fprintf(p.w, "\n%s:\n", title)
	for _, v := range sorted {
		fmt.Fprintf(p.w, "\t%s\n", v)
	}
}

// Missing prints one row per contact flagging empty or issue-marked
// fields: names needing attention are highlighted, empty address/update
// fields styled as errors, other empty fields as warnings.
func (p *Printer) Missing(contacts []*contact.Contact) {
	for _, ct := range p.byLastName(contacts) {
		name := ct.Name
		if hasIssues(name) || strings.Contains(name, "?") {
			name = p.styles.flagged(strings.ToUpper(name))
		}
		fmt.Fprintf(p.w, "%-25s", name)
		fmt.Fprintf(p.w, "%s    ", p.fieldStatus("address", ct.Address == "", hasIssues(ct.Address), true))
		fmt.Fprintf(p.w, "%s    ", p.fieldStatus("updates", len(ct.Updates) == 0, anyUpdateIssues(ct.Updates), true))
		fmt.Fprintf(p.w, "%s    ", p.fieldStatus("frequency", ct.Frequency.IsZero(), false, false))
		fmt.Fprintf(p.w, "%s    ", p.fieldStatus("tags", len(ct.Tags) == 0, anyIssues(ct.Tags), false))
		fmt.Fprintf(p.w, "%s    ", p.fieldStatus("characteristics", len(ct.Characteristics) == 0, anyIssues(ct.Characteristics), false))
		fmt.Fprintf(p.w, "%s\n", p.fieldStatus("urls", len(ct.URLs) == 0, anyIssues(ct.URLs), false))
	}
}

func (p *Printer) fieldStatus(name string, empty, issues, required bool) string {
	switch {
	case issues:
		return p.styles.flagged(strings.ToUpper(name))
	case empty && required:
		return p.styles.missing(name)
	case empty:
		return p.styles.warn(name)
	default:
		return p.styles.dim(name)
	}
}

func hasIssues(text string) bool {
	return strings.Contains(text, "TODO")
}

func anyIssues(values []string) bool {
	for _, v := range values {
		if hasIssues(v) {
			return true
		}
	}
	return false
}

func anyUpdateIssues(updates []contact.Update) bool {
	for _, u := range updates {
		if hasIssues(u.Body) {
			return true
		}
	}
	return false
}

// marker renders " (3w)" style time-since-last-contact, styled when the
// gap exceeds the contact's frequency. Empty for untouched contacts.
func (p *Printer) marker(ct *contact.Contact) string {
	last, ok := ct.LastContact()
	if !ok {
		return ""
	}
	delta := p.now.Sub(last)
	s := FormatDelta(delta)
	if !ct.Frequency.IsZero() && delta > ct.Frequency.Duration() {
		s = p.styles.overdue(s)
	}
	return " (" + s + ")"
}

// byLastName returns contacts sorted by last name (collated,
// case-insensitive), full name as tiebreak. The input is not modified.
func (p *Printer) byLastName(contacts []*contact.Contact) []*contact.Contact {
	sorted := make([]*contact.Contact, len(contacts))
	copy(sorted, contacts)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := lastName(sorted[i].Name), lastName(sorted[j].Name)
		if cmp := p.coll.CompareString(a, b); cmp != 0 {
			return cmp < 0
		}
		return p.coll.CompareString(sorted[i].Name, sorted[j].Name) < 0
	})
	return sorted
}

func lastName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[len(fields)-1]
}

// FormatDelta renders a duration the way a human reads a contact gap:
// days under a week, then weeks, months, years. Negative deltas come
// from future-dated updates.
func FormatDelta(d time.Duration) string {
	days := int(d.Hours() / 24)
	switch {
	case d < 0:
		return "future"
	case days < 7:
		return fmt.Sprintf("%dd", days)
	case days < 30:
		return fmt.Sprintf("%dw", days/7)
	case days < 365:
		return fmt.Sprintf("%dm", days/30)
	default:
		return fmt.Sprintf("%dy", days/365)
	}
}
