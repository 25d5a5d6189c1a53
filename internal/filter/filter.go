// Package filter narrows dashboard lists by a search box and a tab selector.
package filter

import "strings"

// All is the tab value that disables the category filter.
const All = "all"

// Record is a list row that can be searched and tab-filtered.
// SearchFields must only return stable fields; randomly generated display values
// never take part in filtering.
type Record interface {
	SearchFields() []string
	Category() string
}

// Matches reports whether r passes both the search query and the category tab.
// The query is a case-insensitive substring test over r's search fields; an empty query
// matches everything. The category is a case-insensitive equality test; "all" or ""
// matches everything.
func Matches(r Record, query, category string) bool {
	return matchesCategory(r.Category(), category) && matchesQuery(r.SearchFields(), query)
}

// Apply returns the records that match, in their original order.
func Apply[T Record](records []T, query, category string) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if Matches(r, query, category) {
			out = append(out, r)
		}
	}
	return out
}

func matchesQuery(fields []string, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func matchesCategory(value, category string) bool {
	c := strings.TrimSpace(category)
	if c == "" || strings.EqualFold(c, All) {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(value), c)
}
