package storage

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerStorage wraps another Storage with a circuit breaker. Persistence is
// best-effort: when the backend keeps failing, the breaker opens and calls
// fail fast instead of holding every transition hostage to a dead backend.
type BreakerStorage struct {
	inner Storage
	cb    *gobreaker.CircuitBreaker[[]byte]
}

func NewBreakerStorage(inner Storage) *BreakerStorage {
	settings := gobreaker.Settings{
		Name:    "storefront-storage",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A missing key is an answer, not a backend failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
	}
	return &BreakerStorage{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

func (b *BreakerStorage) Load(ctx context.Context, key string) ([]byte, error) {
	return b.cb.Execute(func() ([]byte, error) {
		return b.inner.Load(ctx, key)
	})
}

func (b *BreakerStorage) Save(ctx context.Context, key string, value []byte) error {
	_, err := b.cb.Execute(func() ([]byte, error) {
		return nil, b.inner.Save(ctx, key, value)
	})
	return err
}

func (b *BreakerStorage) Delete(ctx context.Context, key string) error {
	_, err := b.cb.Execute(func() ([]byte, error) {
		return nil, b.inner.Delete(ctx, key)
	})
	return err
}
