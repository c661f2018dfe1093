// internal/clients/catalog_client.go
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/shopline/shopline-backend/internal/models"
)

// catalogProduct is the catalog API's wire shape. Prices arrive as floating
// point; they are converted to integer cents exactly once, here.
type catalogProduct struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Price       float64        `json:"price"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Image       string         `json:"image"`
	Rating      *models.Rating `json:"rating,omitempty"`
}

func (p catalogProduct) toProduct(defaultStock int) models.Product {
	return models.Product{
		ID:          p.ID,
		Title:       p.Title,
		PriceCents:  int64(math.Round(p.Price * 100)),
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Rating:      p.Rating,
		Stock:       defaultStock,
	}
}

// CatalogClient reads products from the remote catalog API. The catalog
// knows nothing about stock; every fetched product starts at the configured
// default.
type CatalogClient struct {
	baseURL      string
	defaultStock int
	httpClient   *http.Client
}

func NewCatalogClient(baseURL string, timeout time.Duration, defaultStock int) *CatalogClient {
	return &CatalogClient{
		baseURL:      baseURL,
		defaultStock: defaultStock,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// FetchProducts retrieves the full product list.
func (c *CatalogClient) FetchProducts(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build products request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d for product list", resp.StatusCode)
	}

	var raw []catalogProduct
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode product list: %w", err)
	}

	products := make([]models.Product, 0, len(raw))
	for _, p := range raw {
		products = append(products, p.toProduct(c.defaultStock))
	}
	return products, nil
}

// FetchProduct retrieves a single product by id.
func (c *CatalogClient) FetchProduct(ctx context.Context, id int) (models.Product, error) {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to build product request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to fetch product %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Product{}, fmt.Errorf("catalog returned status %d for product %d", resp.StatusCode, id)
	}

	var raw catalogProduct
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.Product{}, fmt.Errorf("failed to decode product %d: %w", id, err)
	}

	return raw.toProduct(c.defaultStock), nil
}
