package memory

import (
	"context"
	"sync"
)

// KV is a process-local key/value store. Values are lost on restart.
type KV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKV creates an empty store
func NewKV() *KV {
	return &KV{data: make(map[string]string)}
}

func (kv *KV) Get(_ context.Context, key string) (string, bool, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()
	v, ok := kv.data[key]
	return v, ok, nil
}

func (kv *KV) Set(_ context.Context, key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.data[key] = value
	return nil
}

// Ping always succeeds
func (kv *KV) Ping(context.Context) error { return nil }

// Backend names the implementation for /infra
func (kv *KV) Backend() string { return "memory" }
