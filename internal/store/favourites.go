package store

import "github.com/datodvp/next-commerce/internal/domain"

// AddToFavourites appends the product to the wishlist unless an entry with
// the same id already exists. Uniqueness is enforced here, at insertion, and
// nowhere else.
func (s *Store) AddToFavourites(p domain.Product) {
	s.dispatch(KindAddToFavourites, func() {
		for _, existing := range s.favourites.Products {
			if existing.ID == p.ID {
				return
			}
		}
		s.favourites.Products = append(s.favourites.Products, p.Clone())
	})
}

// RemoveFromFavourites drops any entry with a matching id; no-op if absent.
func (s *Store) RemoveFromFavourites(p domain.Product) {
	s.dispatch(KindRemoveFromFavourites, func() {
		for i := range s.favourites.Products {
			if s.favourites.Products[i].ID == p.ID {
				s.favourites.Products = append(s.favourites.Products[:i], s.favourites.Products[i+1:]...)
				return
			}
		}
	})
}

// ClearFavourites resets the wishlist to empty.
func (s *Store) ClearFavourites() {
	s.dispatch(KindClearFavourites, func() {
		s.favourites = domain.FavouritesState{}
	})
}

// ReplaceFavourites overwrites the wishlist with a previously persisted list.
// Boot rehydration only; not written back to storage.
func (s *Store) ReplaceFavourites(products []domain.Product) {
	s.dispatch(KindSetFavourites, func() {
		state := domain.FavouritesState{Products: products}
		s.favourites = state.Clone()
	})
}
