// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"consignkeep/internal/domain/catalogs/client"
	"consignkeep/internal/domain/catalogs/product"
	"consignkeep/internal/domain/invoice"
	"consignkeep/internal/domain/visits"
	"consignkeep/internal/infrastructure/http/v1/handlers"
	"consignkeep/internal/infrastructure/http/v1/middleware"
	"consignkeep/internal/infrastructure/storage/postgres"
	"consignkeep/pkg/logger"
)

// RouterConfig holds everything the router wires together.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks).
	Pool *postgres.Pool

	// Logger for request logging.
	Logger *logger.Logger

	ClientService  *client.Service
	ProductService *product.Service
	VisitService   *visits.Service

	// InvoiceRenderer turns invoice documents into downloadable files.
	InvoiceRenderer invoice.Renderer
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	base := handlers.NewBaseHandler()
	clientHandler := handlers.NewClientHandler(base, cfg.ClientService)
	productHandler := handlers.NewProductHandler(base, cfg.ProductService)
	visitHandler := handlers.NewVisitHandler(base, cfg.VisitService, cfg.InvoiceRenderer)

	api := router.Group("/api/v1")
	{
		clients := api.Group("/clients")
		{
			clients.GET("", clientHandler.List)
			clients.POST("", clientHandler.Create)
			clients.GET("/addresses", clientHandler.Addresses)
			clients.GET("/:id", clientHandler.Get)
			clients.PUT("/:id", clientHandler.Update)
			clients.DELETE("/:id", clientHandler.Archive)

			// Visit flow is client-scoped: the session, its save, and
			// history all hang off the client.
			clients.GET("/:id/visit-session", visitHandler.OpenSession)
			clients.GET("/:id/visits", visitHandler.History)
			clients.POST("/:id/visits", visitHandler.Save)
			clients.POST("/:id/visits/invoice", visitHandler.SaveWithInvoice)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.List)
			products.POST("", productHandler.Create)
			products.GET("/:id", productHandler.Get)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
			products.POST("/:id/stock", productHandler.AdjustStock)
		}

		visitGroup := api.Group("/visits")
		{
			visitGroup.GET("/:id/items", visitHandler.Items)
		}
	}

	return router
}
