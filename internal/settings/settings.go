package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/learnwords/internal/logger"
)

// DefaultSourceURL is the word list used until the user saves another one.
const DefaultSourceURL = "https://raw.githubusercontent.com/andriigordiienko/learnwords/refs/heads/main/learnwords.json"

// KeyDataURL is the KV key holding the word list URL.
const KeyDataURL = "dataURL"

// KV is a persistent string key/value backend.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Store persists the word list URL.
type Store struct {
	kv       KV
	fallback string
	logger   logger.Logger
}

// NewStore creates a settings store. An empty fallback means DefaultSourceURL.
func NewStore(kv KV, fallback string, log logger.Logger) *Store {
	if strings.TrimSpace(fallback) == "" {
		fallback = DefaultSourceURL
	}
	return &Store{kv: kv, fallback: fallback, logger: log}
}

// Get returns the saved URL, or the fallback when nothing is saved or the
// backend fails. It never fails.
func (s *Store) Get(ctx context.Context) string {
	v, found, err := s.kv.Get(ctx, KeyDataURL)
	if err != nil {
		s.logger.Warn("failed to read source url, using fallback",
			logger.String("fallback", s.fallback),
			logger.Error(err))
		return s.fallback
	}
	if !found {
		return s.fallback
	}
	return v
}

// Set saves url verbatim. Validation happens at load time.
func (s *Store) Set(ctx context.Context, url string) error {
	if err := s.kv.Set(ctx, KeyDataURL, url); err != nil {
		return fmt.Errorf("failed to save source url: %w", err)
	}
	s.logger.Info("source url saved", logger.String("url", url))
	return nil
}

// Fallback returns the URL used when nothing is saved.
func (s *Store) Fallback() string {
	return s.fallback
}
