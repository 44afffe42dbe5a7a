package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datodvp/next-commerce/internal/domain"
)

func TestAddToFavourites_Appends(t *testing.T) {
	s := New()

	s.AddToFavourites(testProduct(1, 10))
	s.AddToFavourites(testProduct(2, 20))

	favourites := s.Favourites()
	require.Len(t, favourites.Products, 2)
	assert.Equal(t, int64(1), favourites.Products[0].ID)
	assert.Equal(t, int64(2), favourites.Products[1].ID)
}

func TestAddToFavourites_DuplicateIsNoOp(t *testing.T) {
	s := New()
	p := testProduct(1, 10)

	s.AddToFavourites(p)
	s.AddToFavourites(p)

	assert.Len(t, s.Favourites().Products, 1)
}

func TestRemoveFromFavourites(t *testing.T) {
	s := New()
	s.AddToFavourites(testProduct(1, 10))
	s.AddToFavourites(testProduct(2, 20))

	s.RemoveFromFavourites(testProduct(1, 10))

	favourites := s.Favourites()
	require.Len(t, favourites.Products, 1)
	assert.Equal(t, int64(2), favourites.Products[0].ID)
}

func TestRemoveFromFavourites_AbsentIsNoOp(t *testing.T) {
	s := New()
	s.AddToFavourites(testProduct(1, 10))

	s.RemoveFromFavourites(testProduct(99, 5))

	assert.Len(t, s.Favourites().Products, 1)
}

func TestClearFavourites(t *testing.T) {
	s := New()
	s.AddToFavourites(testProduct(1, 10))
	s.AddToFavourites(testProduct(2, 20))

	s.ClearFavourites()

	assert.Empty(t, s.Favourites().Products)
}

func TestReplaceFavourites_OverwritesWholesale(t *testing.T) {
	s := New()
	s.AddToFavourites(testProduct(1, 10))

	s.ReplaceFavourites([]domain.Product{testProduct(5, 3), testProduct(6, 4)})

	favourites := s.Favourites()
	require.Len(t, favourites.Products, 2)
	assert.Equal(t, int64(5), favourites.Products[0].ID)
	assert.Equal(t, int64(6), favourites.Products[1].ID)
}

func TestIsFavourite(t *testing.T) {
	s := New()
	s.AddToFavourites(testProduct(1, 10))

	assert.True(t, s.IsFavourite(1))
	assert.False(t, s.IsFavourite(2))
}
