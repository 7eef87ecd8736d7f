package domain

import "github.com/google/uuid"

// WordEntry is one original/translation pair of the word list.
//
// Original and Translation never change after construction. Only the
// display side flips while the entry lives in memory.
type WordEntry struct {
	// ─────────────────────────────
	// Identity (in-memory only)
	// ─────────────────────────────

	// ID is generated on every construction, including each decode of the
	// same remote list. It never travels over the wire.
	ID uuid.UUID

	// ─────────────────────────────
	// Content (immutable)
	// ─────────────────────────────

	// Original is the source-language text. Example: obviously
	Original string

	// Translation is the target-language text. Example: очевидно
	Translation string

	// ─────────────────────────────
	// Display state (never persisted)
	// ─────────────────────────────

	// IsOriginalDisplayed is true when the original side is shown.
	IsOriginalDisplayed bool
}

// NewWordEntry builds an entry with a fresh ID, showing the original side.
func NewWordEntry(original, translation string) WordEntry {
	return WordEntry{
		ID:                  uuid.New(),
		Original:            original,
		Translation:         translation,
		IsOriginalDisplayed: true,
	}
}

// DisplayText returns the side currently shown.
func (e WordEntry) DisplayText() string {
	if e.IsOriginalDisplayed {
		return e.Original
	}
	return e.Translation
}

// CanSpeak reports whether pronunciation is allowed right now.
// Translations are never spoken.
func (e WordEntry) CanSpeak() bool {
	return e.IsOriginalDisplayed
}
