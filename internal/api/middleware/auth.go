package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BisonV07/order-management-system/internal/domain"
	"github.com/BisonV07/order-management-system/internal/service"
)

const (
	CallerContextKey = "caller"
	RoleHeader       = "X-User-Role"
)

// AuthMiddleware identifies the caller. The bearer token is not checked here;
// it is forwarded to the order backend, which authenticates it. The role
// header is the role string issued at login.
func AuthMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(parts[1])
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		caller := service.Caller{
			Token: token,
			Role:  domain.ParseRole(c.GetHeader(RoleHeader)),
		}
		logger.Debug("Caller identified", zap.String("role", string(caller.Role)))

		c.Set(CallerContextKey, caller)
		c.Next()
	}
}

// GetCallerFromContext retrieves the caller from the Gin context
func GetCallerFromContext(c *gin.Context) (service.Caller, bool) {
	caller, exists := c.Get(CallerContextKey)
	if !exists {
		return service.Caller{}, false
	}

	cl, ok := caller.(service.Caller)
	return cl, ok
}
