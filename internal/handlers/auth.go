// internal/handlers/auth.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shopline/shopline-backend/internal/services"
	"github.com/shopline/shopline-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.UnauthorizedResponse(c, "Invalid username or password")
			return
		}
		utils.BadGatewayResponse(c, "An error occurred during login. Please try again.")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "You are successfully logged in!",
		"token":   token,
	})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		utils.InternalErrorResponse(c, "Failed to destroy session")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "You are successfully logged out",
	})
}

// GET /auth/session
func (h *AuthHandler) GetSession(c *gin.Context) {
	status, err := h.authService.Status(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to read session state")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"session": status,
	})
}
