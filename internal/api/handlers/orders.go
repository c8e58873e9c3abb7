package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BisonV07/order-management-system/internal/api/middleware"
	"github.com/BisonV07/order-management-system/internal/domain"
	"github.com/BisonV07/order-management-system/internal/service"
	"github.com/BisonV07/order-management-system/pkg/errors"
)

// UpdateOrderStatusRequest matches the order backend's PATCH body
type UpdateOrderStatusRequest struct {
	CurrentStatus string `json:"current_status" binding:"required"`
}

// ValidateTransitionRequest asks whether a status change would be accepted
type ValidateTransitionRequest struct {
	TargetStatus string `json:"target_status" binding:"required"`
}

func parseTarget(field, raw string) (domain.OrderStatus, error) {
	status, ok := domain.ParseOrderStatus(raw)
	if !ok {
		return "", &errors.ErrValidation{
			Message: "unknown order status: " + raw,
			Fields:  map[string]string{field: "must be one of ORDERED, SHIPPED, DELIVERED, CANCELLED"},
		}
	}
	return status, nil
}

func requireCaller(c *gin.Context) (service.Caller, bool) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return caller, ok
}

// HandleListOrders handles GET /v1/orders?status=&q=
func HandleListOrders(view *service.OrdersView, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}

		statusFilter, ok := domain.ParseStatusFilter(c.Query("status"))
		if !ok {
			writeError(c, logger, &errors.ErrValidation{
				Message: "unknown status filter: " + c.Query("status"),
				Fields:  map[string]string{"status": "must be ALL or an order status"},
			})
			return
		}

		orders, err := view.ListOrders(c.Request.Context(), caller, statusFilter, c.Query("q"))
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orders,
			"count":  len(orders),
			"status": statusFilter,
			"query":  strings.TrimSpace(c.Query("q")),
		})
	}
}

// HandleGetOrderHistory handles GET /v1/orders/:id/history
func HandleGetOrderHistory(view *service.OrdersView, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}

		history, err := view.History(c.Request.Context(), caller, c.Param("id"))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		if history == nil {
			history = []domain.OrderHistoryEntry{}
		}
		c.JSON(http.StatusOK, history)
	}
}

// HandleGetTransitions handles GET /v1/orders/:id/transitions
func HandleGetTransitions(view *service.OrdersView, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}

		transitions, err := view.Transitions(c.Request.Context(), caller, c.Param("id"))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, transitions)
	}
}

// HandleValidateTransition handles POST /v1/orders/:id/transitions/validate.
// A rejected transition is a normal 200 answer with allowed=false.
func HandleValidateTransition(view *service.OrdersView, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}

		var req ValidateTransitionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}
		target, err := parseTarget("target_status", req.TargetStatus)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		verdict, err := view.Check(c.Request.Context(), caller, c.Param("id"), target)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, verdict)
	}
}

// HandleUpdateOrderStatus handles PATCH /v1/orders/:id
func HandleUpdateOrderStatus(view *service.OrdersView, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}
		target, err := parseTarget("current_status", req.CurrentStatus)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		update, err := view.SubmitStatusChange(c.Request.Context(), caller, c.Param("id"), target)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, update)
	}
}
