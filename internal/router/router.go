// internal/router/router.go
package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/krowne/catalog-backend/internal/config"
	"github.com/krowne/catalog-backend/internal/handlers"
	"github.com/krowne/catalog-backend/internal/middleware"
	"github.com/krowne/catalog-backend/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	productService := services.NewProductService(db, cfg.Admin.DeletePassword)
	scrapeService := services.NewScrapeService(cfg.Vendor)
	extractService, err := services.NewExtractService(context.Background(), cfg.Gemini)
	if err != nil {
		return nil, err
	}
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService, storageService)
	extractHandler := handlers.NewExtractHandler(scrapeService, extractService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check with a DB ping
	r.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK

		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":  status,
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.POST("", productHandler.CreateProduct)
			products.DELETE("", productHandler.DeleteAllProducts)
			products.GET("/options", productHandler.GetProductOptions)
			products.POST("/upload-images", middleware.UploadRateLimit(), productHandler.UploadProductImages)
			products.GET("/:id", productHandler.GetProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		extract := v1.Group("/extract")
		extract.Use(middleware.ExtractRateLimit())
		{
			extract.GET("/vendor-page", extractHandler.ScrapeVendorPage)
			extract.POST("/spec-sheet", extractHandler.ExtractSpecSheet)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r, nil
}
