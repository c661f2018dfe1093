// internal/services/checkout_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/shopline/shopline-backend/internal/store"
)

// CheckoutService is the one place the cart store and the product store
// interact.
type CheckoutService struct {
	cart          *store.CartStore
	products      *store.ProductStore
	notifications *NotificationService
}

type CheckoutSummary struct {
	PurchasedLines  int   `json:"purchased_lines"`
	SkippedLines    int   `json:"skipped_lines"`
	TotalQuantity   int   `json:"total_quantity"`
	TotalPriceCents int64 `json:"total_price_cents"`
}

func NewCheckoutService(cart *store.CartStore, products *store.ProductStore, notifications *NotificationService) *CheckoutService {
	return &CheckoutService{
		cart:          cart,
		products:      products,
		notifications: notifications,
	}
}

// CheckoutAll decrements stock for every cart line it can cover and removes
// those lines; lines whose quantity exceeds current stock are skipped with
// a warning. The cart is cleared unconditionally afterwards — skipped lines
// are dropped, not retained for retry.
func (s *CheckoutService) CheckoutAll() CheckoutSummary {
	summary := CheckoutSummary{}

	for _, line := range s.cart.Snapshot().Items {
		err := s.products.DecrementStock(line.ID, line.Quantity)
		if err != nil {
			summary.SkippedLines++
			var stockErr *store.InsufficientStockError
			if errors.As(err, &stockErr) {
				s.notifications.Push(NotificationLevelWarning,
					fmt.Sprintf("Not enough stock for %q: %d requested, %d available — removed from cart",
						line.Title, stockErr.Requested, stockErr.Available))
			} else {
				// Line outlived its product; dropping it silently is the
				// expected defensive behavior for stale cart lines.
				s.notifications.Push(NotificationLevelWarning,
					fmt.Sprintf("%q is no longer available — removed from cart", line.Title))
			}
			continue
		}

		s.cart.RemoveLine(line.ID)
		summary.PurchasedLines++
		summary.TotalQuantity += line.Quantity
		summary.TotalPriceCents += line.PriceCents * int64(line.Quantity)
	}

	s.cart.Clear()
	s.notifications.Push(NotificationLevelSuccess, "Checkout successfully!")
	return summary
}

// PurchaseOne is the buy-now path: it validates the quantity against the
// stock headroom left after what is already in the cart, then decrements
// stock directly. The cart is never touched.
func (s *CheckoutService) PurchaseOne(id, quantity int) error {
	if quantity < 1 {
		return store.ErrInvalidQuantity
	}

	product, ok := s.products.Get(id)
	if !ok {
		return store.ErrProductNotFound
	}

	inCart := s.cart.Quantity(id)
	available := product.Stock - inCart
	if available < 0 {
		available = 0
	}

	if quantity > available {
		return &store.InsufficientStockError{
			ProductID: id,
			Requested: quantity,
			Available: available,
		}
	}

	if err := s.products.DecrementStock(id, quantity); err != nil {
		return err
	}

	s.notifications.Push(NotificationLevelSuccess,
		fmt.Sprintf("You have successfully purchased %d pcs of %q", quantity, product.Title))
	return nil
}
