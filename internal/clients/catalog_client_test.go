// internal/clients/catalog_client_test.go
package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{
				"id":       1,
				"title":    "Fjallraven Backpack",
				"price":    109.95,
				"category": "men's clothing",
				"image":    "https://example.com/1.jpg",
				"rating":   map[string]interface{}{"rate": 3.9, "count": 120},
			},
			{
				"id":       2,
				"title":    "Mens Casual T-Shirt",
				"price":    22.3,
				"category": "men's clothing",
				"image":    "https://example.com/2.jpg",
			},
		})
	})
	mux.HandleFunc("/products/1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    1,
			"title": "Fjallraven Backpack",
			"price": 109.95,
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFetchProductsConvertsPricesToCents(t *testing.T) {
	server := newCatalogServer(t)
	client := NewCatalogClient(server.URL, 5*time.Second, 20)

	products, err := client.FetchProducts(context.Background())
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, int64(10995), products[0].PriceCents)
	assert.Equal(t, 20, products[0].Stock)
	assert.NotNil(t, products[0].Rating)
	assert.Equal(t, 120, products[0].Rating.Count)

	// 22.3 must not truncate to 2229 through float arithmetic.
	assert.Equal(t, int64(2230), products[1].PriceCents)
	assert.Nil(t, products[1].Rating)
}

func TestFetchProduct(t *testing.T) {
	server := newCatalogServer(t)
	client := NewCatalogClient(server.URL, 5*time.Second, 20)

	product, err := client.FetchProduct(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, product.ID)
	assert.Equal(t, int64(10995), product.PriceCents)
	assert.Equal(t, 20, product.Stock)
}

func TestFetchProductNotFound(t *testing.T) {
	server := newCatalogServer(t)
	client := NewCatalogClient(server.URL, 5*time.Second, 20)

	_, err := client.FetchProduct(context.Background(), 99)
	assert.Error(t, err)
}

func TestFetchProductsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, 5*time.Second, 20)
	_, err := client.FetchProducts(context.Background())
	assert.Error(t, err)
}

func TestFetchProductsRespectsContextCancellation(t *testing.T) {
	server := newCatalogServer(t)
	client := NewCatalogClient(server.URL, 5*time.Second, 20)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchProducts(ctx)
	assert.Error(t, err)
}
