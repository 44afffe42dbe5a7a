package store

import "github.com/datodvp/next-commerce/internal/domain"

// AddProduct puts one unit of the product into the cart: an existing line
// item has its quantity incremented, otherwise a new line item with quantity 1
// is appended. Totals grow by one unit and one effective price. Always
// succeeds.
func (s *Store) AddProduct(p domain.Product) {
	s.dispatch(KindAddProduct, func() {
		s.cart.TotalProducts++
		s.cart.TotalPrice = max(0, s.cart.TotalPrice+p.EffectivePrice())

		for i := range s.cart.Products {
			if s.cart.Products[i].ID == p.ID {
				s.cart.Products[i].Quantity++
				return
			}
		}
		s.cart.Products = append(s.cart.Products, domain.CartItem{
			Product:  p.Clone(),
			Quantity: 1,
		})
	})
}

// RemoveProduct takes one unit of the product out of the cart. Only the id of
// the argument is consulted; the price removed from the total is the stored
// line item's effective price. A line item at quantity 1 is deleted outright.
// Removing a product that is not in the cart is a silent no-op, which
// tolerates double-clicks and stale references. Totals are clamped at 0 to
// absorb floating-point drift.
func (s *Store) RemoveProduct(p domain.Product) {
	s.dispatch(KindRemoveProduct, func() {
		for i := range s.cart.Products {
			if s.cart.Products[i].ID != p.ID {
				continue
			}

			s.cart.TotalProducts = max(0, s.cart.TotalProducts-1)
			s.cart.TotalPrice = max(0, s.cart.TotalPrice-s.cart.Products[i].EffectivePrice())

			if s.cart.Products[i].Quantity > 1 {
				s.cart.Products[i].Quantity--
			} else {
				s.cart.Products = append(s.cart.Products[:i], s.cart.Products[i+1:]...)
			}
			return
		}
	})
}

// ClearCart resets the cart to its empty initial state.
func (s *Store) ClearCart() {
	s.dispatch(KindClearCart, func() {
		s.cart = domain.CartState{}
	})
}

// ReplaceCart overwrites the whole aggregate with a previously persisted
// snapshot. Used only during boot rehydration; hooks observing it must not
// write it back to storage (see ShouldPersist).
func (s *Store) ReplaceCart(state domain.CartState) {
	s.dispatch(KindSetCart, func() {
		s.cart = state.Clone()
	})
}
