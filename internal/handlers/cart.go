// internal/handlers/cart.go
package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopline/shopline-backend/internal/services"
	"github.com/shopline/shopline-backend/internal/store"
	"github.com/shopline/shopline-backend/internal/utils"
)

type CartHandler struct {
	cart            *store.CartStore
	productService  *services.ProductService
	checkoutService *services.CheckoutService
	notifications   *services.NotificationService
}

func NewCartHandler(cart *store.CartStore, productService *services.ProductService, checkoutService *services.CheckoutService, notifications *services.NotificationService) *CartHandler {
	return &CartHandler{
		cart:            cart,
		productService:  productService,
		checkoutService: checkoutService,
		notifications:   notifications,
	}
}

type AddCartItemRequest struct {
	ProductID int `json:"product_id" validate:"required,min=1"`
	Quantity  int `json:"quantity" validate:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"cart": h.cart.Snapshot(),
	})
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			utils.NotFoundResponse(c, "Product not found")
			return
		}
		utils.BadGatewayResponse(c, "Failed to load product details. Please try again.")
		return
	}

	// Stock validation belongs here, not in the cart store: the request is
	// dropped (never partially applied) when cart plus requested quantity
	// would exceed stock.
	existing := h.cart.Quantity(req.ProductID)
	if existing+req.Quantity > product.Stock {
		h.notifications.Push(services.NotificationLevelWarning,
			"Check your cart. The remaining available stock has been added to your cart")
		utils.ConflictResponse(c, "Quantity exceeds available stock", gin.H{
			"in_cart":   existing,
			"available": product.Stock,
		})
		return
	}

	if err := h.cart.AddLine(product.ID, product.Title, product.PriceCents, product.Image, req.Quantity); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	h.notifications.Push(services.NotificationLevelSuccess, "Product successfully added to cart!")
	utils.SuccessResponse(c, gin.H{
		"cart": h.cart.Snapshot(),
	})
}

// PUT /cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if _, exists := h.cart.Line(id); !exists {
		utils.NotFoundResponse(c, "Cart line not found")
		return
	}

	// The store clamps the lower bound (minimum 1); the stock ceiling is
	// this caller's responsibility.
	quantity := req.Quantity
	if product, err := h.productService.GetProduct(c.Request.Context(), id); err == nil && quantity > product.Stock {
		quantity = product.Stock
		h.notifications.Push(services.NotificationLevelWarning, "Quantity exceeds available stock!")
	}

	h.cart.UpdateQuantity(id, quantity)
	utils.SuccessResponse(c, gin.H{
		"cart": h.cart.Snapshot(),
	})
}

// DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	h.cart.RemoveLine(id)
	utils.SuccessResponse(c, gin.H{
		"cart": h.cart.Snapshot(),
	})
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	h.cart.Clear()
	utils.SuccessResponse(c, gin.H{
		"cart": h.cart.Snapshot(),
	})
}

// POST /cart/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	summary := h.checkoutService.CheckoutAll()

	message := "Checkout successfully!"
	if summary.SkippedLines > 0 {
		message = fmt.Sprintf("Checkout completed; %d item(s) were skipped for insufficient stock", summary.SkippedLines)
	}

	utils.SuccessResponse(c, gin.H{
		"message": message,
		"summary": summary,
		"cart":    h.cart.Snapshot(),
	})
}
