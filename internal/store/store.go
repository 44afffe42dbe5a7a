// Package store holds the in-memory cart and favourites aggregates and the
// transitions that mutate them. The store is an explicit handle passed to
// whoever needs it; there is no package-level singleton. A mutex serializes
// transitions, so each one is atomic and they apply in dispatch order.
package store

import (
	"sync"

	"github.com/datodvp/next-commerce/internal/domain"
)

// Hook runs after a transition has been applied, still inside the dispatch
// critical section, with the transition kind and deep copies of both
// aggregates. Hooks must not dispatch back into the store.
type Hook func(kind Kind, cart domain.CartState, favourites domain.FavouritesState)

type Store struct {
	mu         sync.Mutex
	cart       domain.CartState
	favourites domain.FavouritesState
	hooks      []Hook
}

// New returns a store with both aggregates empty.
func New() *Store {
	return &Store{}
}

// Subscribe registers a post-transition hook. Register hooks during wiring,
// before any transition is dispatched.
func (s *Store) Subscribe(h Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, h)
}

func (s *Store) dispatch(kind Kind, mutate func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate()

	if len(s.hooks) == 0 {
		return
	}
	cart := s.cart.Clone()
	favourites := s.favourites.Clone()
	for _, h := range s.hooks {
		h(kind, cart, favourites)
	}
}

// Cart returns a deep copy of the cart aggregate.
func (s *Store) Cart() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// Favourites returns a deep copy of the favourites aggregate.
func (s *Store) Favourites() domain.FavouritesState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favourites.Clone()
}

// CartQuantity returns how many units of the given product are in the cart,
// 0 when the product is not there at all.
func (s *Store) CartQuantity(productID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.cart.Products {
		if item.ID == productID {
			return item.Quantity
		}
	}
	return 0
}

// IsFavourite reports whether the product is on the wishlist.
func (s *Store) IsFavourite(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.favourites.Products {
		if p.ID == productID {
			return true
		}
	}
	return false
}
