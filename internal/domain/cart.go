package domain

// CartItem pairs a product snapshot with how many units of it sit in the
// cart. Quantity is always >= 1; an item that would drop to 0 is removed from
// the cart instead of being kept around.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// CartState is the cart aggregate. TotalProducts counts units (sum of
// quantities, not distinct products) and TotalPrice sums
// quantity * effective price over all line items. Every mutation keeps both
// totals consistent with Products.
type CartState struct {
	Products      []CartItem `json:"products"`
	TotalProducts int        `json:"totalProducts"`
	TotalPrice    float64    `json:"totalPrice"`
}

// FavouritesState is the wishlist aggregate: distinct product snapshots in
// insertion order, never two entries with the same id.
type FavouritesState struct {
	Products []Product `json:"products"`
}

// Clone deep-copies the aggregate.
func (s CartState) Clone() CartState {
	out := s
	if s.Products != nil {
		out.Products = make([]CartItem, len(s.Products))
		for i, it := range s.Products {
			out.Products[i] = CartItem{Product: it.Product.Clone(), Quantity: it.Quantity}
		}
	}
	return out
}

// Clone deep-copies the aggregate.
func (s FavouritesState) Clone() FavouritesState {
	out := s
	if s.Products != nil {
		out.Products = make([]Product, len(s.Products))
		for i, p := range s.Products {
			out.Products[i] = p.Clone()
		}
	}
	return out
}
