package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/learnwords/internal/logger"
)

// SourceURL returns the URL to load the word list from.
type SourceURL interface {
	Get(ctx context.Context) string
}

// WordLoader applies a word list load.
type WordLoader interface {
	Load(ctx context.Context, rawURL string) error
	LoadAsync(ctx context.Context, rawURL string) <-chan error
}

// WordReloader loads the word list on start, on manual trigger and optionally
// on a fixed interval.
type WordReloader struct {
	settings      SourceURL
	words         WordLoader
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
}

// NewWordReloader creates a new word list reloader.
// An interval of 0 disables periodic reloads.
func NewWordReloader(
	settings SourceURL,
	words WordLoader,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *WordReloader {
	return &WordReloader{
		settings:      settings,
		words:         words,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads once, then runs the reload loop in the background.
// A failed initial load is logged and shows up in the store status.
func (wr *WordReloader) Start(ctx context.Context) {
	if err := wr.Reload(ctx); err != nil {
		wr.logger.Warn("initial word list load failed",
			logger.Error(err))
	}

	var tick <-chan time.Time
	var ticker *time.Ticker
	if wr.interval > 0 {
		ticker = time.NewTicker(wr.interval)
		tick = ticker.C
	}

	go func() {
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick:
				wr.logger.Debug("periodic reload")
				wr.reloadAsync(ctx)
			case <-wr.manualTrigger:
				wr.logger.Info("manual reload triggered")
				wr.reloadAsync(ctx)
			case <-wr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the reloader. Safe to call more than once.
func (wr *WordReloader) Stop() {
	wr.stopOnce.Do(func() { close(wr.stopCh) })
}

// Reload loads the word list from the saved URL and waits for the result.
func (wr *WordReloader) Reload(ctx context.Context) error {
	return wr.words.Load(ctx, wr.settings.Get(ctx))
}

func (wr *WordReloader) reloadAsync(ctx context.Context) {
	wr.words.LoadAsync(ctx, wr.settings.Get(ctx))
}

// Trigger requests a reload without blocking. Requests made while one is
// already pending are coalesced.
func Trigger(ch chan<- struct{}) bool {
	select {
	case ch <- struct{}{}:
		return true
	default:
		return false
	}
}
