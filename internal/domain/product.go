package domain

// Product is an immutable catalog snapshot. Cart and favourites embed it by
// value at the moment the shopper acts; later catalog edits do not reach
// already-captured snapshots.
type Product struct {
	ID              int64    `json:"id"`
	SKU             string   `json:"sku,omitempty"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Price           float64  `json:"price"`
	DiscountedPrice *float64 `json:"discountedPrice,omitempty"`
	Description     string   `json:"description,omitempty"`
	Stock           int      `json:"stock,omitempty"`
	Category        Category `json:"category"`
	Images          []Image  `json:"images"`
	Flags           []Flag   `json:"flags,omitempty"`
}

type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Image        string `json:"image"`
	Order        int    `json:"order,omitempty"`
	ProductCount int    `json:"productCount,omitempty"`
}

type Image struct {
	ID    int64  `json:"id"`
	URL   string `json:"url"`
	Order int    `json:"order,omitempty"`
}

type Flag struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	DiscountPercentage float64 `json:"discountPercentage"`
	ProductCount       int     `json:"productCount,omitempty"`
}

// EffectivePrice returns the price a unit of p actually sells for: the
// discounted price when one is set and undercuts the list price, the list
// price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.DiscountedPrice != nil && *p.DiscountedPrice < p.Price {
		return *p.DiscountedPrice
	}
	return p.Price
}

// Clone returns a deep copy of the snapshot, so callers holding the copy can
// never reach store-internal state.
func (p Product) Clone() Product {
	out := p
	if p.DiscountedPrice != nil {
		dp := *p.DiscountedPrice
		out.DiscountedPrice = &dp
	}
	if p.Images != nil {
		out.Images = make([]Image, len(p.Images))
		copy(out.Images, p.Images)
	}
	if p.Flags != nil {
		out.Flags = make([]Flag, len(p.Flags))
		copy(out.Flags, p.Flags)
	}
	return out
}
