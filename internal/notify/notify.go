// Package notify hands reminder results to the desktop.
//
// This is a thin collaborator: build a message, call the OS notification
// facility, report success or failure. Nothing here is interesting
// enough to retry.
package notify

import (
	"fmt"
	"strings"

	"github.com/gen2brain/beeep"

	"github.com/tmarlow/kith/internal/contact"
	"github.com/tmarlow/kith/internal/printer"
	"github.com/tmarlow/kith/internal/remind"
)

// Title is the notification title for reminder check runs.
const Title = "Contact Reminders"

// Notifier delivers a message to the user.
type Notifier interface {
	Notify(title, message string) error
}

// Desktop sends OS desktop notifications.
type Desktop struct{}

// Notify implements Notifier via the platform notification facility.
func (Desktop) Notify(title, message string) error {
	if err := beeep.Notify(title, message, ""); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}

// CheckMessage formats overdue entries, suggestions and an optional
// random pick into the notification body. Empty when there is nothing
// to say.
func CheckMessage(overdue []remind.Entry, suggestions []remind.Suggestion, pick *contact.Contact) string {
	var b strings.Builder

	if len(overdue) > 0 {
		b.WriteString("You are overdue:\n")
		for _, e := range overdue {
			if e.Never {
				fmt.Fprintf(&b, "\t%s (never contacted, every %s)\n", e.Contact.Name, e.Contact.Frequency)
				continue
			}
			since := e.OverdueBy + e.Contact.Frequency.Duration()
			fmt.Fprintf(&b, "\t%s (%s > %s)\n", e.Contact.Name, printer.FormatDelta(since), e.Contact.Frequency)
		}
	}

	if len(suggestions) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("How about getting in contact?\n")
		for _, s := range suggestions {
			fmt.Fprintf(&b, "\t%s (%s)\n", s.Contact.Name, printer.FormatDelta(s.Since))
		}
	}

	if pick != nil {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Random pick: %s\n", pick.Name)
	}

	return strings.TrimRight(b.String(), "\n")
}
