// internal/store/cart_store_test.go
package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type CartStoreTestSuite struct {
	suite.Suite
	cart *CartStore
}

func (suite *CartStoreTestSuite) SetupTest() {
	suite.cart = NewCartStore()
}

// assertTotals recomputes the sums from scratch and checks they match the
// incrementally maintained aggregates.
func (suite *CartStoreTestSuite) assertTotals() {
	snap := suite.cart.Snapshot()

	quantity := 0
	var price int64
	for _, line := range snap.Items {
		quantity += line.Quantity
		price += line.PriceCents * int64(line.Quantity)
	}

	assert.Equal(suite.T(), quantity, snap.TotalQuantity)
	assert.Equal(suite.T(), price, snap.TotalPriceCents)
}

func (suite *CartStoreTestSuite) TestAddLineAppendsAndMerges() {
	err := suite.cart.AddLine(1, "Backpack", 10995, "img-1", 2)
	assert.NoError(suite.T(), err)
	suite.assertTotals()

	err = suite.cart.AddLine(2, "T-Shirt", 2295, "img-2", 1)
	assert.NoError(suite.T(), err)
	suite.assertTotals()

	// Same product merges into the existing line
	err = suite.cart.AddLine(1, "Backpack", 10995, "img-1", 3)
	assert.NoError(suite.T(), err)

	snap := suite.cart.Snapshot()
	assert.Len(suite.T(), snap.Items, 2)
	assert.Equal(suite.T(), 5, snap.Items[0].Quantity)
	assert.Equal(suite.T(), 6, snap.TotalQuantity)
	assert.Equal(suite.T(), int64(5*10995+2295), snap.TotalPriceCents)
	suite.assertTotals()
}

func (suite *CartStoreTestSuite) TestAddLineRejectsNonPositiveQuantity() {
	assert.ErrorIs(suite.T(), suite.cart.AddLine(1, "Backpack", 10995, "img-1", 0), ErrInvalidQuantity)
	assert.ErrorIs(suite.T(), suite.cart.AddLine(1, "Backpack", 10995, "img-1", -3), ErrInvalidQuantity)
	assert.Empty(suite.T(), suite.cart.Snapshot().Items)
}

func (suite *CartStoreTestSuite) TestUpdateQuantityClampsToOne() {
	suite.cart.AddLine(1, "Backpack", 10995, "img-1", 4)

	suite.cart.UpdateQuantity(1, 0)
	line, _ := suite.cart.Line(1)
	assert.Equal(suite.T(), 1, line.Quantity)
	suite.assertTotals()

	suite.cart.UpdateQuantity(1, -7)
	line, _ = suite.cart.Line(1)
	assert.Equal(suite.T(), 1, line.Quantity)
	suite.assertTotals()
}

func (suite *CartStoreTestSuite) TestUpdateQuantityAbsentLineIsNoop() {
	suite.cart.AddLine(1, "Backpack", 10995, "img-1", 2)
	suite.cart.UpdateQuantity(99, 5)

	snap := suite.cart.Snapshot()
	assert.Len(suite.T(), snap.Items, 1)
	assert.Equal(suite.T(), 2, snap.TotalQuantity)
	suite.assertTotals()
}

func (suite *CartStoreTestSuite) TestRemoveLine() {
	suite.cart.AddLine(1, "Backpack", 10995, "img-1", 2)
	suite.cart.AddLine(2, "T-Shirt", 2295, "img-2", 3)

	suite.cart.RemoveLine(1)
	snap := suite.cart.Snapshot()
	assert.Len(suite.T(), snap.Items, 1)
	assert.Equal(suite.T(), 2, snap.Items[0].ID)
	suite.assertTotals()

	// Absent id is a no-op
	suite.cart.RemoveLine(1)
	assert.Len(suite.T(), suite.cart.Snapshot().Items, 1)
	suite.assertTotals()
}

func (suite *CartStoreTestSuite) TestClearIsIdempotent() {
	suite.cart.AddLine(1, "Backpack", 10995, "img-1", 2)

	suite.cart.Clear()
	snap := suite.cart.Snapshot()
	assert.Empty(suite.T(), snap.Items)
	assert.Zero(suite.T(), snap.TotalQuantity)
	assert.Zero(suite.T(), snap.TotalPriceCents)

	suite.cart.Clear()
	snap = suite.cart.Snapshot()
	assert.Empty(suite.T(), snap.Items)
	assert.Zero(suite.T(), snap.TotalQuantity)
	assert.Zero(suite.T(), snap.TotalPriceCents)
}

func (suite *CartStoreTestSuite) TestTotalsSurviveMutationSequence() {
	suite.cart.AddLine(1, "Backpack", 10995, "img-1", 2)
	suite.assertTotals()
	suite.cart.AddLine(2, "T-Shirt", 2295, "img-2", 1)
	suite.assertTotals()
	suite.cart.UpdateQuantity(1, 7)
	suite.assertTotals()
	suite.cart.UpdateQuantity(2, 0)
	suite.assertTotals()
	suite.cart.RemoveLine(1)
	suite.assertTotals()
	suite.cart.AddLine(3, "Monitor", 59999, "img-3", 4)
	suite.assertTotals()
	suite.cart.RemoveLine(2)
	suite.assertTotals()
	suite.cart.Clear()
	suite.assertTotals()
}

// Full lifecycle: add, caller-side stock clamp, remove.
func (suite *CartStoreTestSuite) TestAddUpdateRemoveScenario() {
	err := suite.cart.AddLine(1, "Backpack", 1000, "img-1", 2)
	assert.NoError(suite.T(), err)

	snap := suite.cart.Snapshot()
	assert.Equal(suite.T(), 2, snap.TotalQuantity)
	assert.Equal(suite.T(), int64(2000), snap.TotalPriceCents)

	// Requested 5 but product stock is 3: the caller clamps before the
	// store is touched.
	stock := 3
	requested := 5
	if requested > stock {
		requested = stock
	}
	suite.cart.UpdateQuantity(1, requested)

	snap = suite.cart.Snapshot()
	assert.Equal(suite.T(), 3, snap.TotalQuantity)
	assert.Equal(suite.T(), int64(3000), snap.TotalPriceCents)

	suite.cart.RemoveLine(1)
	snap = suite.cart.Snapshot()
	assert.Empty(suite.T(), snap.Items)
	assert.Zero(suite.T(), snap.TotalQuantity)
	assert.Zero(suite.T(), snap.TotalPriceCents)
}

func TestCartStoreSuite(t *testing.T) {
	suite.Run(t, new(CartStoreTestSuite))
}
