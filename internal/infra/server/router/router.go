// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/cardwise/backend/internal/integration/entrypoint/controller"
	"github.com/cardwise/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                   *gin.Engine
	healthController         *controller.HealthController
	authController           *controller.AuthController
	userController           *controller.UserController
	catalogueController      *controller.CatalogueController
	walletController         *controller.WalletController
	transactionController    *controller.TransactionController
	recommendationController *controller.RecommendationController
	loginRateLimiter         *middleware.RateLimiter
	authMiddleware           *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	catalogueController *controller.CatalogueController,
	walletController *controller.WalletController,
	transactionController *controller.TransactionController,
	recommendationController *controller.RecommendationController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:         healthController,
		authController:           authController,
		userController:           userController,
		catalogueController:      catalogueController,
		walletController:         walletController,
		transactionController:    transactionController,
		recommendationController: recommendationController,
		loginRateLimiter:         loginRateLimiter,
		authMiddleware:           authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
				auth.POST("/forgot-password", r.authController.ForgotPassword)
				auth.POST("/reset-password", r.authController.ResetPassword)
			}
		}

		// Catalogue card routes (require authentication)
		if r.catalogueController != nil && r.authMiddleware != nil {
			cards := v1.Group("/cards")
			cards.Use(r.authMiddleware.Authenticate())
			{
				cards.GET("", r.catalogueController.List)
				cards.POST("", r.catalogueController.Create)
				cards.GET("/:id", r.catalogueController.Get)
				cards.PUT("/:id", r.catalogueController.Update)
				cards.DELETE("/:id", r.catalogueController.Delete)
			}
		}

		// Wallet routes (require authentication)
		if r.walletController != nil && r.authMiddleware != nil {
			wallet := v1.Group("/wallet")
			wallet.Use(r.authMiddleware.Authenticate())
			{
				wallet.GET("", r.walletController.List)
				wallet.POST("", r.walletController.Add)
				wallet.PATCH("/:id/status", r.walletController.UpdateStatus)
				wallet.DELETE("/:id", r.walletController.Remove)
			}
		}

		// Transaction routes (require authentication)
		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		// Recommendation routes (require authentication)
		if r.recommendationController != nil && r.authMiddleware != nil {
			recommendations := v1.Group("/recommendations")
			recommendations.Use(r.authMiddleware.Authenticate())
			{
				recommendations.POST("", r.recommendationController.Recommend)
				recommendations.POST("/evaluate", r.recommendationController.Evaluate)
				recommendations.POST("/explain", r.recommendationController.Explain)
			}
		}

		// User routes (require authentication)
		if r.userController != nil && r.authMiddleware != nil {
			users := v1.Group("/users")
			users.Use(r.authMiddleware.Authenticate())
			{
				users.GET("/me", r.userController.GetProfile)
				users.PATCH("/me", r.userController.UpdateProfile)
				users.DELETE("/me", r.userController.DeleteAccount)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
