// Package server wires the store into the storefront's HTTP surface.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/datodvp/next-commerce/internal/store"
)

// NewRouter assembles the chi router for the storefront state API.
func NewRouter(st *store.Store, logger *zap.Logger, requestTimeout time.Duration) chi.Router {
	handler := NewStoreHandler(st, logger)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		handler.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", handler.GetCart)
			r.Delete("/", handler.ClearCart)
			r.Post("/items", handler.AddProduct)
			r.Get("/items/{product_id}", handler.GetCartItemStatus)
			r.Delete("/items/{product_id}", handler.RemoveProduct)
		})
		r.Route("/favourites", func(r chi.Router) {
			r.Get("/", handler.GetFavourites)
			r.Delete("/", handler.ClearFavourites)
			r.Post("/", handler.AddToFavourites)
			r.Delete("/{product_id}", handler.RemoveFromFavourites)
		})
	})

	return r
}
