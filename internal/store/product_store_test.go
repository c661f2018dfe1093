// internal/store/product_store_test.go
package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/shopline/shopline-backend/internal/models"
)

type ProductStoreTestSuite struct {
	suite.Suite
	products *ProductStore
}

func (suite *ProductStoreTestSuite) SetupTest() {
	suite.products = NewProductStore()
}

func catalog(stock int) []models.Product {
	return []models.Product{
		{ID: 1, Title: "Backpack", PriceCents: 10995, Stock: stock},
		{ID: 2, Title: "T-Shirt", PriceCents: 2295, Stock: stock},
	}
}

func (suite *ProductStoreTestSuite) TestLoadOnceLatch() {
	assert.False(suite.T(), suite.products.Loaded())
	assert.True(suite.T(), suite.products.Load(catalog(20)))
	assert.True(suite.T(), suite.products.Loaded())

	// Decrement some stock, then attempt a second load with different data.
	assert.NoError(suite.T(), suite.products.DecrementStock(1, 5))

	second := []models.Product{{ID: 9, Title: "Other", PriceCents: 100, Stock: 99}}
	assert.False(suite.T(), suite.products.Load(second))

	// The collection still equals the result of the first load, with the
	// local decrement intact.
	items := suite.products.Products()
	assert.Len(suite.T(), items, 2)
	assert.Equal(suite.T(), 1, items[0].ID)
	assert.Equal(suite.T(), 15, items[0].Stock)
}

func (suite *ProductStoreTestSuite) TestDecrementStockExact() {
	suite.products.Load(catalog(5))

	assert.NoError(suite.T(), suite.products.DecrementStock(1, 3))
	product, ok := suite.products.Get(1)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), 2, product.Stock)

	// Down to exactly zero is allowed.
	assert.NoError(suite.T(), suite.products.DecrementStock(1, 2))
	product, _ = suite.products.Get(1)
	assert.Equal(suite.T(), 0, product.Stock)
}

func (suite *ProductStoreTestSuite) TestDecrementStockInsufficientLeavesStockUnchanged() {
	suite.products.Load(catalog(4))

	err := suite.products.DecrementStock(1, 10)
	assert.Error(suite.T(), err)

	var stockErr *InsufficientStockError
	assert.ErrorAs(suite.T(), err, &stockErr)
	assert.Equal(suite.T(), 1, stockErr.ProductID)
	assert.Equal(suite.T(), 10, stockErr.Requested)
	assert.Equal(suite.T(), 4, stockErr.Available)

	product, _ := suite.products.Get(1)
	assert.Equal(suite.T(), 4, product.Stock)
}

func (suite *ProductStoreTestSuite) TestDecrementStockUnknownProduct() {
	suite.products.Load(catalog(4))
	assert.ErrorIs(suite.T(), suite.products.DecrementStock(42, 1), ErrProductNotFound)
}

func (suite *ProductStoreTestSuite) TestDecrementStockRejectsNegativeQuantity() {
	suite.products.Load(catalog(4))
	assert.ErrorIs(suite.T(), suite.products.DecrementStock(1, -1), ErrInvalidQuantity)

	product, _ := suite.products.Get(1)
	assert.Equal(suite.T(), 4, product.Stock)
}

func (suite *ProductStoreTestSuite) TestDecrementStockZeroIsNoop() {
	suite.products.Load(catalog(4))
	assert.NoError(suite.T(), suite.products.DecrementStock(1, 0))

	product, _ := suite.products.Get(1)
	assert.Equal(suite.T(), 4, product.Stock)
}

func (suite *ProductStoreTestSuite) TestGetReturnsCopy() {
	suite.products.Load(catalog(4))

	product, ok := suite.products.Get(2)
	assert.True(suite.T(), ok)
	product.Stock = 0

	fresh, _ := suite.products.Get(2)
	assert.Equal(suite.T(), 4, fresh.Stock)
}

func TestProductStoreSuite(t *testing.T) {
	suite.Run(t, new(ProductStoreTestSuite))
}
