// internal/models/cart.go
package models

// CartLine is one product's entry in the cart. Title, price and image are
// denormalized snapshots taken at add time and are not re-synced if the
// product record changes later.
type CartLine struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	PriceCents int64  `json:"price_cents"`
	Image      string `json:"image"`
	Quantity   int    `json:"quantity"`
}

// Cart is the aggregate view of the cart store. Totals always equal the sum
// over the lines; they are maintained incrementally by every mutation.
type Cart struct {
	Items           []CartLine `json:"items"`
	TotalQuantity   int        `json:"total_quantity"`
	TotalPriceCents int64      `json:"total_price_cents"`
}
