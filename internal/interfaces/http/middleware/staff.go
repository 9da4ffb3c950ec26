package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// StaffConfig holds configuration for the staff-only middleware
type StaffConfig struct {
	Logger *zap.Logger
}

// RequireStaff rejects requests whose token does not carry is_staff.
// It must run after JWTAuthMiddleware.
func RequireStaff() gin.HandlerFunc {
	return RequireStaffWithConfig(StaffConfig{})
}

// RequireStaffWithConfig is RequireStaff with custom config
func RequireStaffWithConfig(cfg StaffConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Authentication required", c.GetString(RequestIDKey)))
			return
		}
		if !claims.IsStaff {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Staff access denied",
					zap.String("user_id", claims.UserID),
					zap.String("path", c.Request.URL.Path),
				)
			}
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Staff access required", c.GetString(RequestIDKey)))
			return
		}
		c.Next()
	}
}
