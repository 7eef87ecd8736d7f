package index

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/learnwords/internal/domain"
)

// WordIndex holds the current word list in arrival order with O(1) lookup by ID.
// Entries are stored by value; callers always receive copies.
type WordIndex struct {
	mu         sync.RWMutex
	entries    []domain.WordEntry
	positions  map[uuid.UUID]int // ID -> position in entries
	lastReload time.Time         // Timestamp of last successful replace
}

// NewWordIndex creates an empty index
func NewWordIndex() *WordIndex {
	return &WordIndex{
		positions: make(map[uuid.UUID]int),
	}
}

// Replace swaps the whole list. There is no incremental merge.
func (idx *WordIndex) Replace(entries []domain.WordEntry) {
	fresh := make([]domain.WordEntry, len(entries))
	copy(fresh, entries)

	positions := make(map[uuid.UUID]int, len(fresh))
	for i, e := range fresh {
		positions[e.ID] = i
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.entries = fresh
	idx.positions = positions
	idx.lastReload = time.Now()
}

// All returns a snapshot of every entry in order
func (idx *WordIndex) All() []domain.WordEntry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]domain.WordEntry, len(idx.entries))
	copy(out, idx.entries)
	return out
}

// Get retrieves an entry by ID
func (idx *WordIndex) Get(id uuid.UUID) (domain.WordEntry, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	pos, ok := idx.positions[id]
	if !ok {
		return domain.WordEntry{}, false
	}
	return idx.entries[pos], true
}

// Toggle flips the displayed side of an entry and returns the updated copy.
// Unknown IDs are ignored.
func (idx *WordIndex) Toggle(id uuid.UUID) (domain.WordEntry, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	pos, ok := idx.positions[id]
	if !ok {
		return domain.WordEntry{}, false
	}
	idx.entries[pos].IsOriginalDisplayed = !idx.entries[pos].IsOriginalDisplayed
	return idx.entries[pos], true
}

// Count returns the number of entries
func (idx *WordIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.entries)
}

// LastReload returns when the list was last replaced (zero if never)
func (idx *WordIndex) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
