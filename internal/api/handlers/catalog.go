package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BisonV07/order-management-system/internal/service"
)

// HandleSearchCatalog handles GET /v1/catalog/search?q=
// Returns the ids of products whose name or SKU starts with q.
func HandleSearchCatalog(view *service.OrdersView, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}

		q := strings.TrimSpace(c.Query("q"))
		productIDs, err := view.SearchCatalog(c.Request.Context(), caller, q)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"query":       q,
			"product_ids": productIDs,
		})
	}
}
