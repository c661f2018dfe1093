// internal/store/cart_store.go
package store

import (
	"sync"

	"github.com/shopline/shopline-backend/internal/models"
)

// CartStore owns the cart aggregate. Every mutation maintains the totals
// incrementally in the same step, so total quantity and total price always
// equal the sums over the lines. Stock validation is deliberately not done
// here; it belongs to the caller, before the mutation.
type CartStore struct {
	mtx             sync.Mutex
	items           []models.CartLine
	totalQuantity   int
	totalPriceCents int64
}

func NewCartStore() *CartStore {
	return &CartStore{}
}

// AddLine merges quantity into an existing line for the product or appends a
// new line with the given display snapshot.
func (s *CartStore) AddLine(id int, title string, priceCents int64, image string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if idx := s.indexOf(id); idx >= 0 {
		// Merging keeps the add-time snapshot; totals follow the snapshot
		// price so they stay equal to the sum over the lines.
		s.items[idx].Quantity += quantity
		priceCents = s.items[idx].PriceCents
	} else {
		s.items = append(s.items, models.CartLine{
			ID:         id,
			Title:      title,
			PriceCents: priceCents,
			Image:      image,
			Quantity:   quantity,
		})
	}

	s.totalQuantity += quantity
	s.totalPriceCents += priceCents * int64(quantity)
	return nil
}

// UpdateQuantity sets a line's quantity, clamping to a minimum of 1. Absent
// lines are a no-op. The stock ceiling is not enforced here; callers clamp
// against available stock before calling.
func (s *CartStore) UpdateQuantity(id, newQuantity int) {
	if newQuantity < 1 {
		newQuantity = 1
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return
	}

	line := &s.items[idx]
	diff := newQuantity - line.Quantity
	line.Quantity = newQuantity
	s.totalQuantity += diff
	s.totalPriceCents += int64(diff) * line.PriceCents
}

// RemoveLine deletes a line and subtracts its contribution from the totals.
// Absent lines are a no-op.
func (s *CartStore) RemoveLine(id int) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return
	}

	line := s.items[idx]
	s.totalQuantity -= line.Quantity
	s.totalPriceCents -= line.PriceCents * int64(line.Quantity)
	s.items = append(s.items[:idx], s.items[idx+1:]...)
}

// Clear resets the cart to empty. Unconditional and idempotent.
func (s *CartStore) Clear() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.items = nil
	s.totalQuantity = 0
	s.totalPriceCents = 0
}

// Line returns a copy of the line for the product, if present.
func (s *CartStore) Line(id int) (models.CartLine, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if idx := s.indexOf(id); idx >= 0 {
		return s.items[idx], true
	}
	return models.CartLine{}, false
}

// Quantity returns the quantity already in the cart for the product, zero
// when absent.
func (s *CartStore) Quantity(id int) int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if idx := s.indexOf(id); idx >= 0 {
		return s.items[idx].Quantity
	}
	return 0
}

// Snapshot returns a consistent copy of the aggregate.
func (s *CartStore) Snapshot() models.Cart {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	items := make([]models.CartLine, len(s.items))
	copy(items, s.items)

	return models.Cart{
		Items:           items,
		TotalQuantity:   s.totalQuantity,
		TotalPriceCents: s.totalPriceCents,
	}
}

// indexOf must be called with the mutex held.
func (s *CartStore) indexOf(id int) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
