package domain

import (
	"fmt"
	"strings"
)

type Collection string

const (
	Hotels    Collection = "hotels"
	Cities    Collection = "cities"
	Countries Collection = "countries"
)

// Collections lists every collection in seed order.
func Collections() []Collection { return []Collection{Countries, Cities, Hotels} }

func ParseCollection(s string) (Collection, error) {
	switch c := Collection(strings.ToLower(strings.TrimSpace(s))); c {
	case Hotels, Cities, Countries:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCollection, s)
}

func (c Collection) String() string { return string(c) }

// IDField is the identifier key every adapter fills with the hex form of the
// store identifier.
const IDField = "_id"

// Document is a schema-less record as stored. Extra fields are kept as-is.
type Document map[string]any

func (d Document) ID() string {
	if d == nil {
		return ""
	}
	s, _ := d[IDField].(string)
	return s
}

// String returns the field value when it is a string, "" otherwise.
func (d Document) String(field string) string {
	if d == nil {
		return ""
	}
	s, _ := d[field].(string)
	return s
}

// Filter selects documents whose Fields match Pattern case-insensitively.
// An empty Pattern matches everything.
type Filter struct {
	Fields  []string
	Pattern string
}

func (f Filter) MatchAll() bool { return f.Pattern == "" || len(f.Fields) == 0 }
