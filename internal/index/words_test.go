package index

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/learnwords/internal/domain"
)

func TestNewWordIndex(t *testing.T) {
	idx := NewWordIndex()
	require.NotNil(t, idx)
	assert.Zero(t, idx.Count())
	assert.True(t, idx.LastReload().IsZero(), "LastReload() should be zero before any replace")
}

func TestReplaceKeepsOrder(t *testing.T) {
	idx := NewWordIndex()

	entries := []domain.WordEntry{
		domain.NewWordEntry("cat", "кот"),
		domain.NewWordEntry("dog", "пес"),
		domain.NewWordEntry("bird", "птица"),
	}
	idx.Replace(entries)

	got := idx.All()
	require.Len(t, got, 3)
	for i := range entries {
		assert.Equal(t, entries[i].ID, got[i].ID, "All()[%d]", i)
	}
	assert.False(t, idx.LastReload().IsZero(), "LastReload() should be set after Replace()")
}

func TestReplaceOverwrites(t *testing.T) {
	idx := NewWordIndex()

	first := []domain.WordEntry{domain.NewWordEntry("cat", "кот")}
	idx.Replace(first)

	second := []domain.WordEntry{
		domain.NewWordEntry("dog", "пес"),
		domain.NewWordEntry("bird", "птица"),
	}
	idx.Replace(second)

	assert.Equal(t, 2, idx.Count())
	_, ok := idx.Get(first[0].ID)
	assert.False(t, ok, "entries from a previous list should be gone")
}

func TestReplaceCopiesInput(t *testing.T) {
	idx := NewWordIndex()
	entries := []domain.WordEntry{domain.NewWordEntry("cat", "кот")}
	idx.Replace(entries)

	entries[0].IsOriginalDisplayed = false

	got, ok := idx.Get(entries[0].ID)
	require.True(t, ok)
	assert.True(t, got.IsOriginalDisplayed, "mutating the input slice should not reach the index")
}

func TestToggle(t *testing.T) {
	idx := NewWordIndex()
	e := domain.NewWordEntry("cat", "кот")
	idx.Replace([]domain.WordEntry{e})

	updated, ok := idx.Toggle(e.ID)
	require.True(t, ok)
	assert.False(t, updated.IsOriginalDisplayed)

	updated, _ = idx.Toggle(e.ID)
	assert.True(t, updated.IsOriginalDisplayed)
}

func TestToggleUnknown(t *testing.T) {
	idx := NewWordIndex()
	e := domain.NewWordEntry("cat", "кот")
	idx.Replace([]domain.WordEntry{e})

	_, ok := idx.Toggle(uuid.New())
	assert.False(t, ok)

	got, _ := idx.Get(e.ID)
	assert.True(t, got.IsOriginalDisplayed)
}

func TestAllReturnsSnapshot(t *testing.T) {
	idx := NewWordIndex()
	e := domain.NewWordEntry("cat", "кот")
	idx.Replace([]domain.WordEntry{e})

	snapshot := idx.All()
	idx.Toggle(e.ID)

	assert.True(t, snapshot[0].IsOriginalDisplayed, "All() should return values detached from later toggles")
}

func TestConcurrentAccess(t *testing.T) {
	idx := NewWordIndex()
	e := domain.NewWordEntry("cat", "кот")
	idx.Replace([]domain.WordEntry{e, domain.NewWordEntry("dog", "пес")})

	var wg sync.WaitGroup

	// Concurrent reads
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = idx.All()
		}()
	}

	// Concurrent toggles
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			idx.Toggle(e.ID)
		}()
	}

	wg.Wait()

	// An even number of flips lands back on the original side
	got, _ := idx.Get(e.ID)
	assert.True(t, got.IsOriginalDisplayed)
}
