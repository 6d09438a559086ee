// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/javajoker/mvshop-backend/internal/config"
	"github.com/javajoker/mvshop-backend/internal/events"
	"github.com/javajoker/mvshop-backend/internal/handlers"
	"github.com/javajoker/mvshop-backend/internal/middleware"
	"github.com/javajoker/mvshop-backend/internal/repository"
	"github.com/javajoker/mvshop-backend/internal/services"
	"github.com/javajoker/mvshop-backend/internal/utils"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Config    *config.Config
	Store     *repository.Store
	Publisher events.Publisher
	Uploader  services.ImageUploader
	Limiters  *middleware.RateLimiters
}

func Initialize(deps Deps) *gin.Engine {
	cfg := deps.Config
	store := deps.Store

	jwt := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL)
	limiters := deps.Limiters
	if limiters == nil {
		limiters = middleware.NewRateLimiters(cfg.RateLimit)
	}

	// Initialize services
	categoryService := services.NewCategoryService(store.Categories, store.Products)
	productService := services.NewProductService(store.Products, categoryService, deps.Publisher)
	reviewService := services.NewReviewService(store.Products, deps.Publisher)
	sellerService := services.NewSellerService(store, productService, reviewService, deps.Publisher)
	adminService := services.NewAdminService(store, productService, deps.Publisher)
	authService := services.NewAuthService(store.Accounts, jwt)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	sellerHandler := handlers.NewSellerHandler(sellerService, deps.Uploader)
	adminHandler := handlers.NewAdminHandler(adminService, deps.Uploader)

	authRequired := middleware.AuthRequired(jwt)
	adminOnly := []gin.HandlerFunc{authRequired, middleware.AdminRequired()}

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(limiters.General.Middleware())
	r.Use(middleware.AuditLogMiddleware(store.Audit))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.Storage.LocalDir != "" {
		r.Static("/uploads", cfg.Storage.LocalDir)
	}

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.Use(limiters.Auth.Middleware())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", authRequired, authHandler.Me)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.GET("/:id", categoryHandler.Get)

			admin := categories.Group("", adminOnly...)
			{
				admin.POST("", categoryHandler.Create)
				admin.PUT("/:id", categoryHandler.Update)
				admin.DELETE("/:id", categoryHandler.Delete)
			}
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/featured", productHandler.GetFeatured)
			products.GET("/search", productHandler.Search)
			products.GET("/category/:categoryId", productHandler.GetByCategory)
			products.GET("/vendor/:vendorId/reviews", reviewHandler.VendorReviews)
			products.GET("/:id", productHandler.GetProduct)
			products.GET("/:id/reviews", reviewHandler.ListReviews)

			reviews := products.Group("/:id/reviews", authRequired)
			{
				reviews.POST("", reviewHandler.AddReview)
				reviews.PATCH("", reviewHandler.UpdateReview)
				reviews.DELETE("", reviewHandler.DeleteReview)
			}

			admin := products.Group("", adminOnly...)
			{
				admin.PUT("/:id", adminHandler.UpdateProduct)
				admin.DELETE("/:id", adminHandler.DeleteProduct)
				admin.PUT("/:id/approve", adminHandler.ApproveProduct)
				admin.PUT("/:id/reject", adminHandler.RejectProduct)
			}
		}

		admin := api.Group("/admin", adminOnly...)
		{
			admin.POST("/products", adminHandler.CreateProduct)
			admin.GET("/products/pending", adminHandler.PendingProducts)
			admin.GET("/sellers/pending", adminHandler.PendingSellers)
			admin.PUT("/sellers/:id/approve", adminHandler.ApproveSeller)
		}

		seller := api.Group("/seller")
		{
			seller.POST("/register", limiters.Auth.Middleware(), sellerHandler.Register)

			approved := seller.Group("", authRequired, middleware.ApprovedSeller(sellerService))
			{
				approved.GET("/products", sellerHandler.ListProducts)
				approved.POST("/products", sellerHandler.CreateProduct)
				approved.GET("/products/export", sellerHandler.ExportProducts)
				approved.PUT("/products/:id", sellerHandler.UpdateProduct)
				approved.DELETE("/products/:id", sellerHandler.DeleteProduct)
				approved.GET("/stats", sellerHandler.Stats)
				approved.GET("/reviews", sellerHandler.Reviews)
			}
		}
	}

	return r
}
