package wordlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/learnwords/internal/domain"
)

func TestDecode(t *testing.T) {
	body := []byte(`[
		{"original": "obviously", "translation": "очевидно"},
		{"original": "cat", "translation": "кот", "note": "ignored"}
	]`)

	entries, err := Decode(body)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	want := [][2]string{{"obviously", "очевидно"}, {"cat", "кот"}}
	for i, e := range entries {
		assert.Equal(t, want[i], [2]string{e.Original, e.Translation}, "entry %d", i)
		assert.True(t, e.IsOriginalDisplayed, "entry %d should show the original side", i)
	}
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestDecodeEmptyArray(t *testing.T) {
	entries, err := Decode([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDecodeFreshIDsEachTime(t *testing.T) {
	body := []byte(`[{"original": "cat", "translation": "кот"}]`)
	a, err := Decode(body)
	require.NoError(t, err)
	b, err := Decode(body)
	require.NoError(t, err)
	assert.NotEqual(t, a[0].ID, b[0].ID, "each decode should assign new IDs")
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKind error
	}{
		{name: "empty body", body: "", wantKind: domain.ErrNetwork},
		{name: "whitespace body", body: "  \n\t", wantKind: domain.ErrNetwork},
		{name: "malformed json", body: `[{"original": "cat"`, wantKind: domain.ErrParse},
		{name: "null", body: `null`, wantKind: domain.ErrParse},
		{name: "object top level", body: `{"original": "cat", "translation": "кот"}`, wantKind: domain.ErrParse},
		{name: "string top level", body: `"cat"`, wantKind: domain.ErrParse},
		{name: "missing translation", body: `[{"original": "cat"}]`, wantKind: domain.ErrParse},
		{name: "missing original", body: `[{"translation": "кот"}]`, wantKind: domain.ErrParse},
		{name: "null field", body: `[{"original": null, "translation": "кот"}]`, wantKind: domain.ErrParse},
		{name: "non string field", body: `[{"original": 1, "translation": "кот"}]`, wantKind: domain.ErrParse},
		{name: "empty original", body: `[{"original": "", "translation": "кот"}]`, wantKind: domain.ErrParse},
		{name: "null element", body: `[null]`, wantKind: domain.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Decode([]byte(tt.body))
			require.Error(t, err, "Decode(%q) = %d entries", tt.body, len(entries))
			assert.ErrorIs(t, err, tt.wantKind)
		})
	}
}
