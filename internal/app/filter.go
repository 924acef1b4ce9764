package app

import (
	"fmt"
	"regexp"

	"hotel_finder/internal/domain"
)

// searchFields are the document fields a free-text query is matched against.
var searchFields = map[domain.Collection][]string{
	domain.Hotels:    {"hotel_name", "chain_name", "city", "country"},
	domain.Cities:    {"name"},
	domain.Countries: {"country"},
}

// SearchFields returns the fields searched for c, or nil for an unknown collection.
func SearchFields(c domain.Collection) []string {
	fs := searchFields[c]
	if fs == nil {
		return nil
	}
	out := make([]string, len(fs))
	copy(out, fs)
	return out
}

// BuildFilter turns the raw search text into a store filter for c.
// Without regex mode the text is matched literally; with it the text is used
// as a pattern and must compile as RE2, the dialect both stores can run, so
// PCRE-only syntax such as lookaheads is rejected.
func BuildFilter(c domain.Collection, raw string, regex bool) (domain.Filter, error) {
	fields := SearchFields(c)
	if fields == nil {
		return domain.Filter{}, fmt.Errorf("%w: %q", domain.ErrUnknownCollection, c)
	}
	if raw == "" {
		return domain.Filter{Fields: fields}, nil
	}
	if !regex {
		return domain.Filter{Fields: fields, Pattern: regexp.QuoteMeta(raw)}, nil
	}
	if _, err := regexp.Compile("(?i)" + raw); err != nil {
		return domain.Filter{}, fmt.Errorf("%w: %v", domain.ErrInvalidPattern, err)
	}
	return domain.Filter{Fields: fields, Pattern: raw}, nil
}
