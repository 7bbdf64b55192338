package contact

import (
	"fmt"
	"strings"
)

// Collection holds all contacts keyed by name while preserving the store
// file's document order. New contacts append at the end, so a saved file
// stays recognizable to the human who edits it.
type Collection struct {
	order  []string
	byName map[string]*Contact
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{byName: make(map[string]*Contact)}
}

// Add appends a contact. The name must not already exist.
func (c *Collection) Add(ct *Contact) error {
	if _, ok := c.byName[ct.Name]; ok {
		return fmt.Errorf("contact %q already exists", ct.Name)
	}
	c.order = append(c.order, ct.Name)
	c.byName[ct.Name] = ct
	return nil
}

// Get returns the contact with exactly this name.
func (c *Collection) Get(name string) (*Contact, bool) {
	ct, ok := c.byName[name]
	return ct, ok
}

// Lookup matches a name case-insensitively after trimming, the way
// ingestion resolves block names against existing contacts.
func (c *Collection) Lookup(name string) (*Contact, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, n := range c.order {
		if strings.ToLower(n) == want {
			return c.byName[n], true
		}
	}
	return nil, false
}

// Len returns the number of contacts.
func (c *Collection) Len() int {
	return len(c.order)
}

// Names returns contact names in collection order.
func (c *Collection) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// All returns contacts in collection order.
func (c *Collection) All() []*Contact {
	out := make([]*Contact, 0, len(c.order))
	for _, n := range c.order {
		out = append(out, c.byName[n])
	}
	return out
}
