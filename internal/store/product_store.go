// internal/store/product_store.go
package store

import (
	"sync"

	"github.com/shopline/shopline-backend/internal/models"
)

// ProductStore holds the in-memory mirror of the remote catalog together
// with the only mutable quantity of record: per-product stock. The catalog
// is loaded at most once per process lifetime so that stock decremented in
// this session is not overwritten by a later fetch.
type ProductStore struct {
	mtx        sync.RWMutex
	items      []models.Product
	hasFetched bool
}

func NewProductStore() *ProductStore {
	return &ProductStore{}
}

// Load replaces the catalog exactly once. Subsequent calls are no-ops and
// report false, leaving the first load (and any stock decrements since)
// intact.
func (s *ProductStore) Load(products []models.Product) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.hasFetched {
		return false
	}

	s.items = make([]models.Product, len(products))
	copy(s.items, products)
	s.hasFetched = true
	return true
}

// Loaded reports whether the load-once latch is set.
func (s *ProductStore) Loaded() bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.hasFetched
}

// Products returns a copy of the catalog in load order.
func (s *ProductStore) Products() []models.Product {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	items := make([]models.Product, len(s.items))
	copy(items, s.items)
	return items
}

// Get returns a copy of one product, if present.
func (s *ProductStore) Get(id int) (models.Product, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for i := range s.items {
		if s.items[i].ID == id {
			return s.items[i], true
		}
	}
	return models.Product{}, false
}

// DecrementStock subtracts quantity from the product's stock. When the
// product is missing or stock would go negative the stock is left unchanged
// and a typed error is returned; stock never drops below zero.
func (s *ProductStore) DecrementStock(id, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if s.items[i].Stock < quantity {
			return &InsufficientStockError{
				ProductID: id,
				Requested: quantity,
				Available: s.items[i].Stock,
			}
		}
		s.items[i].Stock -= quantity
		return nil
	}

	return ErrProductNotFound
}
