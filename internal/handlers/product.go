// internal/handlers/product.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopline/shopline-backend/internal/services"
	"github.com/shopline/shopline-backend/internal/store"
	"github.com/shopline/shopline-backend/internal/utils"
)

type ProductHandler struct {
	productService  *services.ProductService
	checkoutService *services.CheckoutService
}

func NewProductHandler(productService *services.ProductService, checkoutService *services.CheckoutService) *ProductHandler {
	return &ProductHandler{
		productService:  productService,
		checkoutService: checkoutService,
	}
}

type PurchaseRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := services.ProductSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	products, total, err := h.productService.SearchProducts(c.Request.Context(), params)
	if err != nil {
		utils.BadGatewayResponse(c, "Failed to load products. Please try again.")
		return
	}

	result := utils.CreatePaginationResult(products, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			utils.NotFoundResponse(c, "Product not found")
			return
		}
		utils.BadGatewayResponse(c, "Failed to load product details. Please try again.")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// POST /products/:id/purchase
func (h *ProductHandler) PurchaseProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.checkoutService.PurchaseOne(id, req.Quantity); err != nil {
		var stockErr *store.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			utils.ConflictResponse(c, "There is not enough stock for the quantity you selected", gin.H{
				"available": stockErr.Available,
			})
		case errors.Is(err, store.ErrProductNotFound):
			utils.NotFoundResponse(c, "Product not found")
		case errors.Is(err, store.ErrInvalidQuantity):
			utils.BadRequestResponse(c, "Quantity must be at least 1", nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Purchase completed",
	})
}
