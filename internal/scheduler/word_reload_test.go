package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/learnwords/internal/logger"
	"github.com/MrSnakeDoc/learnwords/internal/settings"
	"github.com/MrSnakeDoc/learnwords/internal/store/memory"
)

type fixedURL string

func (f fixedURL) Get(context.Context) string { return string(f) }

type recordingLoader struct {
	mu      sync.Mutex
	sync    []string
	async   []string
	asyncCh chan string
	err     error
}

func newRecordingLoader() *recordingLoader {
	return &recordingLoader{asyncCh: make(chan string, 16)}
}

func (l *recordingLoader) Load(_ context.Context, rawURL string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sync = append(l.sync, rawURL)
	return l.err
}

func (l *recordingLoader) LoadAsync(_ context.Context, rawURL string) <-chan error {
	l.mu.Lock()
	l.async = append(l.async, rawURL)
	l.mu.Unlock()
	l.asyncCh <- rawURL

	done := make(chan error, 1)
	done <- nil
	close(done)
	return done
}

func (l *recordingLoader) syncCalls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.sync...)
}

func waitAsync(t *testing.T, l *recordingLoader) string {
	t.Helper()
	select {
	case u := <-l.asyncCh:
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("no async reload")
		return ""
	}
}

func TestWordReloader_InitialLoadAndManualTrigger(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader := newRecordingLoader()
	trigger := make(chan struct{}, 1)
	wr := NewWordReloader(fixedURL("https://example.test/a.json"), loader, logger.NewNop(), 0, trigger)

	wr.Start(ctx)
	defer wr.Stop()

	assert.Equal(t, []string{"https://example.test/a.json"}, loader.syncCalls())

	require.True(t, Trigger(trigger))
	assert.Equal(t, "https://example.test/a.json", waitAsync(t, loader))
}

func TestWordReloader_TriggerUsesURLSavedAfterStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	saved := settings.NewStore(memory.NewKV(), "https://example.test/default.json", logger.NewNop())
	loader := newRecordingLoader()
	trigger := make(chan struct{}, 1)
	wr := NewWordReloader(saved, loader, logger.NewNop(), 0, trigger)

	wr.Start(ctx)
	defer wr.Stop()

	assert.Equal(t, []string{"https://example.test/default.json"}, loader.syncCalls())

	require.NoError(t, saved.Set(ctx, "https://example.test/b.json"))
	require.True(t, Trigger(trigger))
	assert.Equal(t, "https://example.test/b.json", waitAsync(t, loader))

	require.NoError(t, saved.Set(ctx, "https://example.test/c.json"))
	require.True(t, Trigger(trigger))
	assert.Equal(t, "https://example.test/c.json", waitAsync(t, loader))
}

func TestWordReloader_InitialFailureIsNotFatal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader := newRecordingLoader()
	loader.err = errors.New("network error")
	trigger := make(chan struct{}, 1)
	wr := NewWordReloader(fixedURL("https://example.test/a.json"), loader, logger.NewNop(), 0, trigger)

	wr.Start(ctx)
	defer wr.Stop()

	require.True(t, Trigger(trigger))
	waitAsync(t, loader)
}

func TestWordReloader_Periodic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader := newRecordingLoader()
	wr := NewWordReloader(fixedURL("https://example.test/a.json"), loader, logger.NewNop(), 20*time.Millisecond, make(chan struct{}, 1))

	wr.Start(ctx)
	defer wr.Stop()

	waitAsync(t, loader)
	waitAsync(t, loader)
}

func TestWordReloader_StopIsIdempotent(t *testing.T) {
	wr := NewWordReloader(fixedURL("x"), newRecordingLoader(), logger.NewNop(), 0, make(chan struct{}, 1))
	wr.Start(context.Background())
	wr.Stop()
	wr.Stop()
}

func TestTriggerCoalesces(t *testing.T) {
	ch := make(chan struct{}, 1)
	assert.True(t, Trigger(ch))
	assert.False(t, Trigger(ch))
	<-ch
	assert.True(t, Trigger(ch))
}
