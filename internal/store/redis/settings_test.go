package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*SettingsStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSettingsStore(client), mr
}

func TestSettingsStore_GetMissing(t *testing.T) {
	s, _ := newTestStore(t)

	v, found, err := s.Get(context.Background(), "dataURL")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, v)
}

func TestSettingsStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	require.NoError(t, s.Set(ctx, "dataURL", "https://example.test/words.json"))

	v, found, err := s.Get(ctx, "dataURL")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "https://example.test/words.json", v)

	raw, err := mr.Get("learnwords:settings:dataURL")
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/words.json", raw)
	assert.Zero(t, mr.TTL("learnwords:settings:dataURL"))
	assert.Equal(t, []string{"learnwords:settings:dataURL"}, mr.Keys())
}

func TestSettingsStore_EmptyValueIsFound(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Set(ctx, "dataURL", ""))
	v, found, err := s.Get(ctx, "dataURL")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, v)
}

func TestSettingsStore_BackendDown(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)
	mr.Close()

	_, _, err := s.Get(ctx, "dataURL")
	assert.Error(t, err)
	assert.Error(t, s.Set(ctx, "dataURL", "x"))
	assert.Error(t, s.Ping(ctx))
}
