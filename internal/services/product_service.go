// internal/services/product_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopline/shopline-backend/internal/clients"
	"github.com/shopline/shopline-backend/internal/models"
	"github.com/shopline/shopline-backend/internal/store"
	"github.com/shopline/shopline-backend/internal/utils"
)

type ProductService struct {
	products *store.ProductStore
	catalog  *clients.CatalogClient
}

type ProductSearchParams struct {
	utils.PaginationParams
}

func NewProductService(products *store.ProductStore, catalog *clients.CatalogClient) *ProductService {
	return &ProductService{
		products: products,
		catalog:  catalog,
	}
}

// EnsureLoaded fetches the catalog unless the load-once latch is already
// set. Concurrent first requests may both fetch, but the store accepts only
// one load, so stock decremented in this session is never overwritten.
func (s *ProductService) EnsureLoaded(ctx context.Context) error {
	if s.products.Loaded() {
		return nil
	}

	products, err := s.catalog.FetchProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	s.products.Load(products)
	return nil
}

// SearchProducts filters the in-memory catalog by title substring and
// category, then slices out one page. Order is catalog order.
func (s *ProductService) SearchProducts(ctx context.Context, params ProductSearchParams) ([]models.Product, int64, error) {
	if err := s.EnsureLoaded(ctx); err != nil {
		return nil, 0, err
	}

	all := s.products.Products()

	filtered := make([]models.Product, 0, len(all))
	search := strings.ToLower(params.Search)
	for _, p := range all {
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		if params.Category != "" && p.Category != params.Category {
			continue
		}
		filtered = append(filtered, p)
	}

	page := utils.Paginate(filtered, params.PaginationParams)
	return page, int64(len(filtered)), nil
}

// GetProduct serves a product from the store, falling back to a remote
// fetch when the id is not mirrored locally (direct deep link before the
// list was ever loaded, or a product the list endpoint does not carry). The
// fallback product gets the default stock since no local stock exists.
func (s *ProductService) GetProduct(ctx context.Context, id int) (models.Product, error) {
	if err := s.EnsureLoaded(ctx); err != nil {
		return models.Product{}, err
	}

	if product, ok := s.products.Get(id); ok {
		return product, nil
	}

	product, err := s.catalog.FetchProduct(ctx, id)
	if err != nil {
		return models.Product{}, store.ErrProductNotFound
	}
	return product, nil
}
