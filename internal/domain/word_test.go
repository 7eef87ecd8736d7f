package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWordEntry(t *testing.T) {
	e := NewWordEntry("cat", "кот")

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.True(t, e.IsOriginalDisplayed, "new entries show the original side")
	assert.Equal(t, "cat", e.DisplayText())
	assert.True(t, e.CanSpeak())

	e.IsOriginalDisplayed = false
	assert.Equal(t, "кот", e.DisplayText())
	assert.False(t, e.CanSpeak(), "translation side is not spoken")
}

func TestNewWordEntryFreshIDs(t *testing.T) {
	a := NewWordEntry("cat", "кот")
	b := NewWordEntry("cat", "кот")
	assert.NotEqual(t, a.ID, b.ID, "identical content should still get distinct IDs")
}

func TestParseSourceURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "https", raw: "https://example.com/words.json"},
		{name: "http with port", raw: "http://localhost:8080/words.json"},
		{name: "query string", raw: "https://example.com/w.json?lang=ru"},
		{name: "surrounding spaces", raw: "  https://example.com/w.json ", wantErr: true},
		{name: "trailing newline", raw: "https://example.com/w.json\n", wantErr: true},
		{name: "inner space", raw: "https://example.com/my words.json", wantErr: true},
		{name: "only spaces", raw: "   ", wantErr: true},
		{name: "not a url", raw: "not a url", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "relative path", raw: "/words.json", wantErr: true},
		{name: "no host", raw: "https://", wantErr: true},
		{name: "unsupported scheme", raw: "ftp://example.com/w.json", wantErr: true},
		{name: "bad escape", raw: "https://example.com/%zz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := ParseSourceURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err, "ParseSourceURL(%q) = %v", tt.raw, u)
				assert.ErrorIs(t, err, ErrInvalidURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, u.String())
		})
	}
}
