package contact

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Timestamp layouts accepted for updates. Dates serialize back to the
// short form, datetimes keep their minute precision.
const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// Update is one timestamped free-text log entry against a Contact.
type Update struct {
	Time time.Time
	Body string
}

// ParseStamp parses an update timestamp in either the date or the
// datetime layout.
func ParseStamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateTimeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: want %s or %s", s, dateLayout, dateTimeLayout)
	}
	return t, nil
}

// FormatStamp renders a timestamp in the shortest layout that loses
// nothing: dates stay dates, anything with a time of day keeps it.
func FormatStamp(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format(dateLayout)
	}
	return t.Format(dateTimeLayout)
}

type updateDoc struct {
	Date string `yaml:"date" json:"date"`
	Body string `yaml:"body,omitempty" json:"body,omitempty"`
}

// MarshalYAML implements yaml.Marshaler.
func (u Update) MarshalYAML() (interface{}, error) {
	return updateDoc{Date: FormatStamp(u.Time), Body: u.Body}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (u *Update) UnmarshalYAML(value *yaml.Node) error {
	var doc updateDoc
	if err := value.Decode(&doc); err != nil {
		return err
	}
	t, err := ParseStamp(doc.Date)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	u.Time = t
	u.Body = doc.Body
	return nil
}

// MarshalJSON implements json.Marshaler for the CLI's JSON output.
func (u Update) MarshalJSON() ([]byte, error) {
	return json.Marshal(updateDoc{Date: FormatStamp(u.Time), Body: u.Body})
}

// Contact is a stored person record: identity, contact metadata, and an
// append-only update history. The name lives in the enclosing collection
// (it is the store file's mapping key), not in the YAML body.
type Contact struct {
	Name            string    `yaml:"-" json:"name"`
	Address         string    `yaml:"address,omitempty" json:"address,omitempty"`
	Frequency       Frequency `yaml:"frequency,omitempty" json:"frequency,omitempty"`
	Characteristics []string  `yaml:"characteristics,omitempty,flow" json:"characteristics,omitempty"`
	Tags            []string  `yaml:"tags,omitempty,flow" json:"tags,omitempty"`
	URLs            []string  `yaml:"urls,omitempty" json:"urls,omitempty"`
	Updates         []Update  `yaml:"updates,omitempty" json:"updates,omitempty"`
}

// New creates an empty contact with the given name.
func New(name string) *Contact {
	return &Contact{Name: name}
}

// LastContact returns the timestamp of the most recent update.
// The second return is false for a contact that has never been touched.
func (c *Contact) LastContact() (time.Time, bool) {
	if len(c.Updates) == 0 {
		return time.Time{}, false
	}
	// Updates are kept sorted; the last one is the most recent.
	return c.Updates[len(c.Updates)-1].Time, true
}

// AppendUpdate adds an update, keeping Updates in non-decreasing
// timestamp order. Equal timestamps preserve insertion order.
func (c *Contact) AppendUpdate(u Update) {
	c.Updates = append(c.Updates, u)
	c.SortUpdates()
}

// SortUpdates restores the non-decreasing timestamp invariant. The sort
// is stable so same-day updates keep their relative order.
func (c *Contact) SortUpdates() {
	sort.SliceStable(c.Updates, func(i, j int) bool {
		return c.Updates[i].Time.Before(c.Updates[j].Time)
	})
}

// MergeTags unions values into Tags, preserving first-seen order.
func (c *Contact) MergeTags(values ...string) {
	c.Tags = mergeSet(c.Tags, values)
}

// MergeCharacteristics unions values into Characteristics.
func (c *Contact) MergeCharacteristics(values ...string) {
	c.Characteristics = mergeSet(c.Characteristics, values)
}

// AddURLs appends urls not already present, preserving order.
func (c *Contact) AddURLs(values ...string) {
	c.URLs = mergeSet(c.URLs, values)
}

func mergeSet(dst []string, values []string) []string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		seen := false
		for _, have := range dst {
			if have == v {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, v)
		}
	}
	return dst
}
