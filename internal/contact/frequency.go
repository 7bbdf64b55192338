package contact

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Frequency is the desired maximum interval between updates for a
// contact, written compactly as <count><unit>: "30d", "6w", "2m", "1y".
// Months are approximated as 30 days and years as 365 days. The zero
// Frequency means "no reminder cadence".
type Frequency struct {
	count int
	unit  byte
}

// FrequencyError reports a frequency string that does not parse.
type FrequencyError struct {
	Input string
}

func (e *FrequencyError) Error() string {
	return fmt.Sprintf("invalid frequency %q: want <count><unit> with unit d, w, m or y, e.g. 30d", e.Input)
}

// ParseFrequency parses the compact frequency form. The count must be a
// positive integer.
func ParseFrequency(s string) (Frequency, error) {
	if len(s) < 2 {
		return Frequency{}, &FrequencyError{Input: s}
	}
	unit := s[len(s)-1]
	switch unit {
	case 'd', 'w', 'm', 'y':
	default:
		return Frequency{}, &FrequencyError{Input: s}
	}
	count, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || count <= 0 {
		return Frequency{}, &FrequencyError{Input: s}
	}
	return Frequency{count: count, unit: unit}, nil
}

// IsZero reports whether no frequency is set. yaml.v3 consults this for
// omitempty.
func (f Frequency) IsZero() bool {
	return f.count == 0
}

// Duration converts the frequency to a time.Duration.
func (f Frequency) Duration() time.Duration {
	day := 24 * time.Hour
	switch f.unit {
	case 'd':
		return time.Duration(f.count) * day
	case 'w':
		return time.Duration(f.count) * 7 * day
	case 'm':
		return time.Duration(f.count) * 30 * day
	case 'y':
		return time.Duration(f.count) * 365 * day
	default:
		return 0
	}
}

// String renders the compact form, or "" for the zero Frequency.
func (f Frequency) String() string {
	if f.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d%c", f.count, f.unit)
}

// MarshalYAML implements yaml.Marshaler.
func (f Frequency) MarshalYAML() (interface{}, error) {
	return f.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *Frequency) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*f = Frequency{}
		return nil
	}
	parsed, err := ParseFrequency(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f Frequency) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(f.String())), nil
}
