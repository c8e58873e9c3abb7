package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BisonV07/order-management-system/internal/api/handlers"
	"github.com/BisonV07/order-management-system/internal/api/middleware"
	"github.com/BisonV07/order-management-system/internal/config"
	"github.com/BisonV07/order-management-system/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, view *service.OrdersView, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(loggingMiddleware(logger))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Orders View",
			"endpoints": []string{
				"GET /health",
				"GET /v1/orders",
				"GET /v1/orders/:id/history",
				"GET /v1/orders/:id/transitions",
				"POST /v1/orders/:id/transitions/validate",
				"PATCH /v1/orders/:id",
				"GET /v1/catalog/search",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware(logger))
	{
		v1.GET("/orders", handlers.HandleListOrders(view, logger))
		v1.GET("/orders/:id/history", handlers.HandleGetOrderHistory(view, logger))
		v1.GET("/orders/:id/transitions", handlers.HandleGetTransitions(view, logger))
		v1.POST("/orders/:id/transitions/validate", handlers.HandleValidateTransition(view, logger))
		v1.PATCH("/orders/:id", handlers.HandleUpdateOrderStatus(view, logger))
		v1.GET("/catalog/search", handlers.HandleSearchCatalog(view, logger))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.String("request_id", c.Writer.Header().Get(middleware.RequestIDHeader)),
		)
	}
}
