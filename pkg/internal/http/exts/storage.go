package exts

import (
	"context"
	"time"

	"github.com/eko/gocache/lib/v4/store"
	"github.com/gofiber/fiber/v2"
	localCache "github.com/miniblog-app/miniblog/pkg/internal/cache"
)

// cacheStorage adapts the shared local cache into fiber's session
// storage contract.
type cacheStorage struct{}

func NewCacheStorage() fiber.Storage {
	return cacheStorage{}
}

func (cacheStorage) Get(key string) ([]byte, error) {
	raw, err := localCache.S.Get(context.Background(), key)
	if err != nil {
		// The session middleware treats a nil payload as an absent
		// session; expired and evicted entries end up here.
		return nil, nil
	}
	if data, ok := raw.([]byte); ok {
		return data, nil
	}
	return nil, nil
}

func (cacheStorage) Set(key string, val []byte, exp time.Duration) error {
	// Fiber reuses the buffer after this call returns.
	data := make([]byte, len(val))
	copy(data, val)

	opts := []store.Option{store.WithCost(int64(len(data)))}
	if exp > 0 {
		opts = append(opts, store.WithExpiration(exp))
	}
	if err := localCache.S.Set(context.Background(), key, data, opts...); err != nil {
		return err
	}

	// Ristretto applies writes asynchronously; the session must be
	// readable by the very next request.
	localCache.R.Wait()
	return nil
}

func (cacheStorage) Delete(key string) error {
	return localCache.S.Delete(context.Background(), key)
}

func (cacheStorage) Reset() error {
	return localCache.S.Clear(context.Background())
}

func (cacheStorage) Close() error {
	localCache.R.Close()
	return nil
}
