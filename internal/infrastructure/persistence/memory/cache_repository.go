// Package memory provides the in-memory cache repository used when no Redis
// host is configured. Entries are process-local and lost on restart, which
// is fine for the demo deployment.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when a key is missing or expired.
var ErrNotFound = errors.New("cache: key not found")

type cacheItem struct {
	value     []byte
	expiresAt time.Time
}

// CacheRepository is a mutex-guarded map with TTL expiry.
type CacheRepository struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
	done  chan struct{}
}

// NewCacheRepository creates an in-memory cache and starts its janitor.
func NewCacheRepository() *CacheRepository {
	repo := &CacheRepository{
		data: make(map[string]cacheItem),
		done: make(chan struct{}),
	}

	go repo.janitor()

	return repo
}

// Get retrieves a value. Missing and expired keys both return ErrNotFound.
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mutex.RLock()
	item, exists := r.data[key]
	r.mutex.RUnlock()

	if !exists || time.Now().After(item.expiresAt) {
		return nil, ErrNotFound
	}
	return item.value, nil
}

// Set stores a value with a TTL. A zero TTL defaults to 24 hours.
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.data[key] = cacheItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a key.
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.data, key)
	return nil
}

// Exists reports whether a live entry is present for the key.
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	r.mutex.RLock()
	item, exists := r.data[key]
	r.mutex.RUnlock()

	return exists && time.Now().Before(item.expiresAt), nil
}

// Close stops the janitor goroutine.
func (r *CacheRepository) Close() {
	close(r.done)
}

// janitor periodically evicts expired entries.
func (r *CacheRepository) janitor() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			now := time.Now()
			r.mutex.Lock()
			for key, item := range r.data {
				if now.After(item.expiresAt) {
					delete(r.data, key)
				}
			}
			r.mutex.Unlock()
		}
	}
}
