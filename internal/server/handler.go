package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/datodvp/next-commerce/internal/domain"
	"github.com/datodvp/next-commerce/internal/store"
)

// StoreHandler exposes the cart and favourites aggregates to the storefront
// UI. Reads return deep copies; writes go through the store's transitions, so
// the persistence hook fires on every mutation.
type StoreHandler struct {
	store  *store.Store
	logger *zap.Logger
}

func NewStoreHandler(st *store.Store, logger *zap.Logger) *StoreHandler {
	return &StoreHandler{store: st, logger: logger}
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type cartItemStatusResponse struct {
	InCart   bool `json:"inCart"`
	Quantity int  `json:"quantity"`
}

func (h *StoreHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.store.Cart())
}

func (h *StoreHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	h.store.AddProduct(product)
	h.respondJSON(w, http.StatusCreated, h.store.Cart())
}

func (h *StoreHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productIDParam(w, r)
	if !ok {
		return
	}

	// Removal consults only the id; totals come from the stored line item.
	h.store.RemoveProduct(domain.Product{ID: productID})
	h.respondJSON(w, http.StatusOK, h.store.Cart())
}

func (h *StoreHandler) GetCartItemStatus(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productIDParam(w, r)
	if !ok {
		return
	}

	quantity := h.store.CartQuantity(productID)
	h.respondJSON(w, http.StatusOK, cartItemStatusResponse{
		InCart:   quantity > 0,
		Quantity: quantity,
	})
}

func (h *StoreHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.store.ClearCart()
	h.respondJSON(w, http.StatusOK, h.store.Cart())
}

func (h *StoreHandler) GetFavourites(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.store.Favourites())
}

func (h *StoreHandler) AddToFavourites(w http.ResponseWriter, r *http.Request) {
	product, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	h.store.AddToFavourites(product)
	h.respondJSON(w, http.StatusCreated, h.store.Favourites())
}

func (h *StoreHandler) RemoveFromFavourites(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productIDParam(w, r)
	if !ok {
		return
	}

	h.store.RemoveFromFavourites(domain.Product{ID: productID})
	h.respondJSON(w, http.StatusOK, h.store.Favourites())
}

func (h *StoreHandler) ClearFavourites(w http.ResponseWriter, r *http.Request) {
	h.store.ClearFavourites()
	h.respondJSON(w, http.StatusOK, h.store.Favourites())
}

func (h *StoreHandler) decodeProduct(w http.ResponseWriter, r *http.Request) (domain.Product, bool) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return domain.Product{}, false
	}
	if product.ID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be positive")
		return domain.Product{}, false
	}
	return product, true
}

func (h *StoreHandler) productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productIDStr := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return productID, true
}

func (h *StoreHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (h *StoreHandler) respondError(w http.ResponseWriter, status int, code, message string) {
	h.respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
