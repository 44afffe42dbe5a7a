package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/datodvp/next-commerce/internal/domain"
	"github.com/datodvp/next-commerce/internal/store"
)

func testRouter(t *testing.T) (*store.Store, http.Handler) {
	t.Helper()
	st := store.New()
	return st, NewRouter(st, zap.NewNop(), 5*time.Second)
}

func productBody(t *testing.T, id int64, price float64) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(domain.Product{
		ID:       id,
		Title:    "Test product",
		Slug:     "test-product",
		Price:    price,
		Category: domain.Category{ID: 1, Name: "Toys", Slug: "toys"},
		Images:   []domain.Image{{ID: 1, URL: "https://cdn.example.com/1.jpg"}},
	})
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) domain.CartState {
	t.Helper()
	var cart domain.CartState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	return cart
}

func TestAddProduct_ReturnsUpdatedCart(t *testing.T) {
	_, router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", productBody(t, 1, 10))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	cart := decodeCart(t, rec)
	require.Len(t, cart.Products, 1)
	assert.Equal(t, 1, cart.TotalProducts)
	assert.InDelta(t, 10.0, cart.TotalPrice, 1e-9)
}

func TestAddProduct_InvalidBody(t *testing.T) {
	_, router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddProduct_RejectsNonPositiveID(t *testing.T) {
	_, router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", productBody(t, 0, 10))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveProduct(t *testing.T) {
	st, router := testRouter(t)
	st.AddProduct(domain.Product{ID: 1, Price: 10})
	st.AddProduct(domain.Product{ID: 1, Price: 10})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, rec)
	require.Len(t, cart.Products, 1)
	assert.Equal(t, 1, cart.Products[0].Quantity)
}

func TestRemoveProduct_InvalidID(t *testing.T) {
	_, router := testRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveProduct_AbsentIDStillOK(t *testing.T) {
	_, router := testRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, rec)
	assert.Empty(t, cart.Products)
}

func TestClearCart(t *testing.T) {
	st, router := testRouter(t)
	st.AddProduct(domain.Product{ID: 1, Price: 10})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, rec)
	assert.Empty(t, cart.Products)
	assert.Equal(t, 0, cart.TotalProducts)
}

func TestGetCartItemStatus(t *testing.T) {
	st, router := testRouter(t)
	st.AddProduct(domain.Product{ID: 1, Price: 10})
	st.AddProduct(domain.Product{ID: 1, Price: 10})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/items/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var status cartItemStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.InCart)
	assert.Equal(t, 2, status.Quantity)
}

func TestFavouritesFlow(t *testing.T) {
	_, router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/favourites", productBody(t, 1, 10))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate add stays a single entry.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/favourites", productBody(t, 1, 10))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var favourites domain.FavouritesState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &favourites))
	assert.Len(t, favourites.Products, 1)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/favourites/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &favourites))
	assert.Empty(t, favourites.Products)
}

func TestHealth(t *testing.T) {
	_, router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	_, router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDHeaderIsPropagated(t *testing.T) {
	_, router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}
