package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []WordEntry {
	return []WordEntry{
		NewWordEntry("cat", "кот"),
		NewWordEntry("dog", "пес"),
		NewWordEntry("Obviously", "Очевидно"),
	}
}

func TestFilter(t *testing.T) {
	entries := sampleEntries()

	tests := []struct {
		name     string
		query    string
		expected []string // originals, in order
	}{
		{
			name:     "empty query returns all",
			query:    "",
			expected: []string{"cat", "dog", "Obviously"},
		},
		{
			name:     "prefix of original",
			query:    "ca",
			expected: []string{"cat"},
		},
		{
			name:     "substring not prefix",
			query:    "viou",
			expected: []string{"Obviously"},
		},
		{
			name:     "case insensitive original",
			query:    "OBVIOUS",
			expected: []string{"Obviously"},
		},
		{
			name:     "matches translation",
			query:    "пес",
			expected: []string{"dog"},
		},
		{
			name:     "case insensitive cyrillic",
			query:    "ОЧЕВ",
			expected: []string{"Obviously"},
		},
		{
			name:     "shared letter keeps order",
			query:    "o",
			expected: []string{"dog", "Obviously"},
		},
		{
			name:     "no match",
			query:    "xyz",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(entries, tt.query)
			originals := make([]string, 0, len(got))
			for _, e := range got {
				originals = append(originals, e.Original)
			}
			assert.Equal(t, tt.expected, originals)
		})
	}
}

func TestFilterIsPure(t *testing.T) {
	entries := sampleEntries()
	entries[1].IsOriginalDisplayed = false

	first := Filter(entries, "o")
	second := Filter(entries, "o")

	require.Equal(t, first, second)

	// Mutating the result must not touch the input.
	first[0].IsOriginalDisplayed = true
	assert.False(t, entries[1].IsOriginalDisplayed, "Filter() result aliases input entries")
}

func TestFilterEmptyQueryReturnsCopy(t *testing.T) {
	entries := sampleEntries()
	got := Filter(entries, "")
	got[0].IsOriginalDisplayed = false

	assert.True(t, entries[0].IsOriginalDisplayed, "Filter(\"\") should return a copy of the entries")
}
