package middleware

import (
	"net/http"
	"strings"

	"github.com/costview/backend/internal/domain/identity"
	"github.com/costview/backend/internal/infrastructure/auth"
	"github.com/costview/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

const (
	// AuthHeaderKey is the header carrying the bearer token
	AuthHeaderKey = "Authorization"
	// BearerPrefix is the expected token scheme
	BearerPrefix = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token verification
	JWTService *auth.JWTService
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
}

// DefaultJWTConfig returns default JWT middleware configuration
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/ready",
			"/api/v1/auth/login",
		},
	}
}

// JWTAuth creates JWT authentication middleware. On success the principal is
// attached to the request context so downstream services can read it.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthWithConfig creates JWT authentication middleware with custom config
func JWTAuthWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		header := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		principal, err := cfg.JWTService.VerifyToken(strings.TrimPrefix(header, BearerPrefix))
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}

		c.Request = c.Request.WithContext(identity.WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

// RequireAdmin rejects requests whose principal lacks the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := identity.PrincipalFrom(c.Request.Context())
		if !ok {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		if !principal.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("FORBIDDEN", "admin role required"))
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse("UNAUTHORIZED", message))
}
