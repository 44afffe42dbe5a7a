// Package persistence mirrors the in-memory store into durable storage and
// restores it at boot. Durability is best-effort: a failed write is logged
// and swallowed, the in-memory state stays the source of truth for the
// running session.
package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/datodvp/next-commerce/internal/domain"
	"github.com/datodvp/next-commerce/internal/storage"
	"github.com/datodvp/next-commerce/internal/store"
)

// Storage keys. Each one is owned exclusively by the bridge; nothing else in
// the process writes them.
const (
	CartKey       = "next-commerce-cart"
	FavouritesKey = "next-commerce-favourites"
)

const saveTimeout = time.Second

type Bridge struct {
	storage storage.Storage
	logger  *zap.Logger
}

func NewBridge(st storage.Storage, logger *zap.Logger) *Bridge {
	return &Bridge{storage: st, logger: logger}
}

// Hook returns the post-transition hook that writes both aggregates back to
// storage. Set (rehydration) transitions are skipped: they carry data that
// was just read, and writing it back again would be wasteful and could race
// with an in-flight load.
func (b *Bridge) Hook() store.Hook {
	return func(kind store.Kind, cart domain.CartState, favourites domain.FavouritesState) {
		if !store.ShouldPersist(kind) {
			return
		}
		b.save(CartKey, normalizeCart(cart))
		b.save(FavouritesKey, normalizeFavourites(favourites))
	}
}

func (b *Bridge) save(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		b.logger.Warn("failed to marshal state", zap.String("key", key), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := b.storage.Save(ctx, key, data); err != nil {
		b.logger.Warn("failed to persist state", zap.String("key", key), zap.Error(err))
	}
}

// Rehydrate reads both storage keys and replays whatever parses into the
// store, exactly once per key. It must run at boot, before any user-facing
// transition. A missing or malformed blob means "no prior session": the
// aggregate stays empty and nothing is surfaced to the shopper.
func (b *Bridge) Rehydrate(ctx context.Context, s *store.Store) {
	if cart, ok := b.loadCart(ctx); ok {
		s.ReplaceCart(cart)
	}
	if products, ok := b.loadFavourites(ctx); ok {
		s.ReplaceFavourites(products)
	}
}

func (b *Bridge) loadCart(ctx context.Context) (domain.CartState, bool) {
	data, ok := b.load(ctx, CartKey)
	if !ok {
		return domain.CartState{}, false
	}

	var cart domain.CartState
	if err := json.Unmarshal(data, &cart); err != nil {
		b.logger.Warn("ignoring malformed cart blob", zap.String("key", CartKey), zap.Error(err))
		return domain.CartState{}, false
	}
	return cart, true
}

func (b *Bridge) loadFavourites(ctx context.Context) ([]domain.Product, bool) {
	data, ok := b.load(ctx, FavouritesKey)
	if !ok {
		return nil, false
	}

	products, err := decodeFavourites(data)
	if err != nil {
		b.logger.Warn("ignoring malformed favourites blob", zap.String("key", FavouritesKey), zap.Error(err))
		return nil, false
	}
	return products, true
}

func (b *Bridge) load(ctx context.Context, key string) ([]byte, bool) {
	data, err := b.storage.Load(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		b.logger.Debug("no saved state", zap.String("key", key))
		return nil, false
	}
	if err != nil {
		b.logger.Warn("failed to load state, starting empty", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return data, true
}

// decodeFavourites accepts both the canonical {"products":[...]} object and
// the legacy bare-array blob older sessions wrote, normalizing to one shape.
func decodeFavourites(data []byte) ([]domain.Product, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var products []domain.Product
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, fmt.Errorf("failed to decode favourites array: %w", err)
		}
		return products, nil
	}

	var state domain.FavouritesState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode favourites object: %w", err)
	}
	return state.Products, nil
}

// normalizeCart guarantees the canonical blob always carries a products
// array, never null.
func normalizeCart(cart domain.CartState) domain.CartState {
	if cart.Products == nil {
		cart.Products = []domain.CartItem{}
	}
	return cart
}

func normalizeFavourites(favourites domain.FavouritesState) domain.FavouritesState {
	if favourites.Products == nil {
		favourites.Products = []domain.Product{}
	}
	return favourites
}
