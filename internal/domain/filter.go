package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the entries whose Original or Translation contains query,
// ignoring case. Order is preserved. An empty query returns every entry.
//
// The result is a new slice; entries are copied by value.
func Filter(entries []WordEntry, query string) []WordEntry {
	out := make([]WordEntry, 0, len(entries))
	if query == "" {
		return append(out, entries...)
	}

	// A Caser keeps state between calls and must not be shared across goroutines.
	fold := cases.Fold()
	needle := fold.String(query)

	for _, e := range entries {
		if containsFolded(fold, e.Original, needle) || containsFolded(fold, e.Translation, needle) {
			out = append(out, e)
		}
	}
	return out
}

func containsFolded(fold cases.Caser, haystack, foldedNeedle string) bool {
	return strings.Contains(fold.String(haystack), foldedNeedle)
}
