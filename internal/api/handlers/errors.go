package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BisonV07/order-management-system/internal/orderapi"
	"github.com/BisonV07/order-management-system/pkg/errors"
)

// writeError maps service errors to HTTP responses. Backend errors keep the
// backend's status code and message.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		apiErr     *orderapi.APIError
		rejected   *errors.ErrTransitionRejected
		notFound   *errors.ErrNotFound
		conflict   *errors.ErrConflict
		validation *errors.ErrValidation
		unauth     *errors.ErrUnauthorized
	)

	switch {
	case stderrors.As(err, &apiErr):
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Code, "message": apiErr.Message})
	case stderrors.As(err, &rejected):
		status := http.StatusUnprocessableEntity
		if rejected.Reason == errors.ReasonRoleForbidden {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": string(rejected.Reason), "message": rejected.Reason.Message()})
	case stderrors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": notFound.Error()})
	case stderrors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": conflict.Error()})
	case stderrors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": validation.Error(), "fields": validation.Fields})
	case stderrors.As(err, &unauth):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": unauth.Error()})
	default:
		logger.Error("Order backend unavailable", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "bad_gateway", "message": err.Error()})
	}
}
