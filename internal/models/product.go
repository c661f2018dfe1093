// internal/models/product.go
package models

// Rating mirrors the catalog API's nested rating object.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is an in-memory mirror of a remote catalog entry. Stock is owned
// by this process only: it starts at a configured default on load and is
// never reconciled with the catalog API.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PriceCents  int64   `json:"price_cents"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      *Rating `json:"rating,omitempty"`
	Stock       int     `json:"stock"`
}
