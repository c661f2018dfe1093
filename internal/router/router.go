// internal/router/router.go
package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/shopline/shopline-backend/internal/clients"
	"github.com/shopline/shopline-backend/internal/config"
	"github.com/shopline/shopline-backend/internal/handlers"
	"github.com/shopline/shopline-backend/internal/middleware"
	"github.com/shopline/shopline-backend/internal/services"
	"github.com/shopline/shopline-backend/internal/store"
)

// Initialize wires the stores, clients, services and handlers and returns
// the configured engine. The stores are constructed exactly once here and
// passed down as handles; nothing reaches them as an ambient global.
func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, store.SessionStore, error) {
	requestTimeout := time.Duration(cfg.Catalog.RequestTimeout) * time.Second

	// Stores and external clients
	cartStore := store.NewCartStore()
	productStore := store.NewProductStore()
	catalogClient := clients.NewCatalogClient(cfg.Catalog.BaseURL, requestTimeout, cfg.Catalog.DefaultStock)
	authClient := clients.NewAuthClient(cfg.Catalog.BaseURL, requestTimeout)

	sessions, err := newSessionStore(db, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Services
	notificationService := services.NewNotificationService(100)
	productService := services.NewProductService(productStore, catalogClient)
	authService := services.NewAuthService(authClient, sessions)
	checkoutService := services.NewCheckoutService(cartStore, productStore, notificationService)

	// Every open view of the app observes session changes, including those
	// made by other instances sharing the substrate.
	watchSession(sessions, notificationService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, checkoutService)
	cartHandler := handlers.NewCartHandler(cartStore, productService, checkoutService, notificationService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/session", authHandler.GetSession)
		}

		// Product routes (public)
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("/:id/purchase",
				middleware.SessionRequired(sessions),
				middleware.CheckoutRateLimit(),
				productHandler.PurchaseProduct)
		}

		// Cart routes (session-gated)
		cart := v1.Group("/cart")
		cart.Use(middleware.SessionRequired(sessions))
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:id", cartHandler.UpdateItem)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/checkout", middleware.CheckoutRateLimit(), cartHandler.Checkout)
		}

		// Notification feed
		v1.GET("/notifications", notificationHandler.GetNotifications)
	}

	return r, sessions, nil
}

func newSessionStore(db *gorm.DB, cfg *config.Config) (store.SessionStore, error) {
	if cfg.Session.Backend == "memory" {
		return store.NewMemorySessionStore(), nil
	}
	return store.NewPostgresSessionStore(db, cfg.Database.DSN(), cfg.Session.Channel)
}

// watchSession turns session change events into user-facing notifications,
// matching the login/logout toasts of every open view.
func watchSession(sessions store.SessionStore, notifications *services.NotificationService) {
	events, _ := sessions.Subscribe()
	go func() {
		for ev := range events {
			if ev.LoggedIn {
				notifications.Push(services.NotificationLevelSuccess, "You are successfully logged in!")
			} else {
				notifications.Push(services.NotificationLevelSuccess, "You are successfully logged out")
			}
		}
	}()
}
