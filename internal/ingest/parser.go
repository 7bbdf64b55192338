package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tmarlow/kith/internal/contact"
)

// Record is one parsed block: a contact name plus the field changes and
// the single update the block produces. Every block yields exactly one
// update, even an empty one, so ingestion always records a touch.
type Record struct {
	// Name is the block's first line, trimmed.
	Name string

	// Line is the name line's 1-based line number.
	Line int

	// Time is the explicit update timestamp from a date:/timestamp:
	// line; the zero value means "use the ingestion run's now".
	Time time.Time

	// Body is the update's free text, lines joined with newlines.
	Body string

	// Address, if HasAddress, replaces the contact's address.
	Address    string
	HasAddress bool

	// Frequency, if HasFrequency, replaces the contact's frequency.
	Frequency    contact.Frequency
	HasFrequency bool

	// Tags, Characteristics and URLs merge into the contact (set
	// union), never replace.
	Tags            []string
	Characteristics []string
	URLs            []string
}

// Parse reads blank-line-separated blocks from r. source is used in
// error messages only.
//
// Within a block, the first line is the contact name and must not parse
// as a key: value field. Later lines with a colon are fields; recognized
// keys map onto Record fields, unrecognized keys join the update body as
// literal text. Lines without a colon are body text. Bad values for
// recognized keys (date, frequency) are ParseErrors.
func Parse(r io.Reader, source string) ([]Record, error) {
	scanner := bufio.NewScanner(r)

	var records []Record
	var cur *Record
	block := 0
	lineNum := 0

	var bodyLines []string
	flush := func() {
		if cur == nil {
			return
		}
		cur.Body = strings.Join(bodyLines, "\n")
		records = append(records, *cur)
		cur = nil
		bodyLines = nil
	}

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}

		if cur == nil {
			// Name line opens a block.
			block++
			if key, _, ok := splitField(line); ok {
				return nil, &ParseError{
					Code:    ErrCodeNoName,
					File:    source,
					Block:   block,
					Line:    lineNum,
					Message: fmt.Sprintf("block starts with field %q instead of a contact name", key),
				}
			}
			cur = &Record{Name: line, Line: lineNum}
			continue
		}

		key, value, ok := splitField(line)
		if !ok {
			// Bare line: free-text body content.
			bodyLines = append(bodyLines, line)
			continue
		}

		switch key {
		case "date", "timestamp":
			t, err := contact.ParseStamp(value)
			if err != nil {
				return nil, &ParseError{
					Code:    ErrCodeBadDate,
					File:    source,
					Block:   block,
					Line:    lineNum,
					Message: err.Error(),
				}
			}
			cur.Time = t
		case "address":
			cur.Address = value
			cur.HasAddress = true
		case "frequency":
			f, err := contact.ParseFrequency(value)
			if err != nil {
				return nil, &ParseError{
					Code:    ErrCodeBadFrequency,
					File:    source,
					Block:   block,
					Line:    lineNum,
					Message: err.Error(),
				}
			}
			cur.Frequency = f
			cur.HasFrequency = true
		case "tag", "tags":
			cur.Tags = append(cur.Tags, splitList(value)...)
		case "characteristic", "characteristics":
			cur.Characteristics = append(cur.Characteristics, splitList(value)...)
		case "url", "urls":
			cur.URLs = append(cur.URLs, splitList(value)...)
		default:
			// Unrecognized key: the whole line is body content.
			bodyLines = append(bodyLines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	flush()

	return records, nil
}

// splitField splits "key: value" around the first colon. ok is false for
// lines without a colon.
func splitField(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	key = strings.ToLower(strings.TrimSpace(line[:idx]))
	value = strings.TrimSpace(line[idx+1:])
	return key, value, true
}

// splitList splits a comma-separated value, trimming each element.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
