// Package router wires the HTTP handlers into a gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tiendafacil/backend/internal/infrastructure/logger"
	"github.com/tiendafacil/backend/internal/interfaces/http/handler"
	"github.com/tiendafacil/backend/internal/interfaces/http/middleware"
)

// Handlers groups the route handlers. Advisor and Session are optional:
// a nil handler leaves its routes unregistered.
type Handlers struct {
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Sales     *handler.SalesHandler
	Dashboard *handler.DashboardHandler
	Advisor   *handler.AdvisorHandler
	Session   *handler.SessionHandler
}

// New builds the gin engine with middleware and all routes
func New(handlers Handlers, log *zap.Logger, production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.RecoveryMiddleware(log),
		middleware.CORS(),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	{
		products := api.Group("/products")
		{
			products.POST("", handlers.Product.Create)
			products.GET("", handlers.Product.List)
			products.GET("/low-stock", handlers.Product.LowStock)
			products.GET("/:id", handlers.Product.GetByID)
			products.PATCH("/:id", handlers.Product.Update)
			products.DELETE("/:id", handlers.Product.Delete)
		}

		customers := api.Group("/customers")
		{
			customers.POST("", handlers.Customer.Create)
			customers.GET("", handlers.Customer.List)
			customers.GET("/debt/total", handlers.Customer.TotalDebt)
			customers.GET("/:id", handlers.Customer.GetByID)
			customers.POST("/:id/transactions", handlers.Customer.PostTransaction)
		}

		api.POST("/checkout", handlers.Sales.Checkout)
		sales := api.Group("/sales")
		{
			sales.GET("", handlers.Sales.List)
			sales.GET("/recent", handlers.Sales.Recent)
		}

		api.GET("/dashboard", handlers.Dashboard.Stats)

		if handlers.Advisor != nil {
			api.POST("/advisor", handlers.Advisor.Advise)
		}
		if handlers.Session != nil {
			session := api.Group("/session")
			{
				session.POST("/save", handlers.Session.Save)
				session.POST("/restore", handlers.Session.Restore)
			}
		}
	}

	return engine
}
