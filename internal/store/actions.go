package store

// Kind identifies a state transition. Hooks receive it so cross-cutting
// concerns can decide per transition what to do.
type Kind string

const (
	KindAddProduct    Kind = "cart/addProduct"
	KindRemoveProduct Kind = "cart/removeProduct"
	KindClearCart     Kind = "cart/clearCart"
	KindSetCart       Kind = "cart/setCart"

	KindAddToFavourites      Kind = "favourites/addToFavourites"
	KindRemoveFromFavourites Kind = "favourites/removeFromFavourites"
	KindClearFavourites      Kind = "favourites/clearFavourites"
	KindSetFavourites        Kind = "favourites/setFavourites"
)

// ShouldPersist reports whether a transition of the given kind must be
// mirrored to durable storage. The two set (rehydration) kinds are excluded:
// writing back data that was just read would be redundant and could race with
// an in-flight load.
func ShouldPersist(k Kind) bool {
	switch k {
	case KindSetCart, KindSetFavourites:
		return false
	}
	return true
}
