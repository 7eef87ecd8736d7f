package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SettingsStore handles Redis operations for user settings.
// Keys carry no TTL: settings live as long as the Redis data does.
type SettingsStore struct {
	client *redis.Client
}

// NewSettingsStore creates a new Redis settings store
func NewSettingsStore(client *redis.Client) *SettingsStore {
	return &SettingsStore{
		client: client,
	}
}

// Get retrieves a setting. found is false when the key does not exist.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, SettingsKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores a setting without expiry
func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, SettingsKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}

// Ping checks the connection
func (s *SettingsStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Backend names the implementation for /infra
func (s *SettingsStore) Backend() string { return "redis" }
