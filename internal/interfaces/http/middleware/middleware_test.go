package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/costview/backend/internal/domain/identity"
	"github.com/costview/backend/internal/infrastructure/auth"
	"github.com/costview/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-test-secret-test-secret",
		TokenExpiration: time.Hour,
		Issuer:          "costview-test",
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/probe", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDHeader))
	})

	t.Run("generated when absent", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/probe", nil))
		id := recorder.Header().Get(RequestIDHeader)
		require.NotEmpty(t, id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, recorder.Body.String())
	})

	t.Run("caller-supplied id is kept", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/probe", nil)
		request.Header.Set(RequestIDHeader, "given-id")
		engine.ServeHTTP(recorder, request)
		assert.Equal(t, "given-id", recorder.Header().Get(RequestIDHeader))
	})
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID(), RequestLogger(zap.NewNop()))
	engine.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestJWTAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := newJWTService()

	engine := gin.New()
	engine.Use(JWTAuthWithConfig(JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths:  []string{"/open"},
	}))
	engine.GET("/open", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/closed", func(c *gin.Context) {
		principal, ok := identity.PrincipalFrom(c.Request.Context())
		require.True(t, ok)
		c.String(http.StatusOK, principal.Username)
	})

	t.Run("skip path needs no token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/open", nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("missing token is 401", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/closed", nil))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/closed", nil)
		request.Header.Set(AuthHeaderKey, BearerPrefix+"garbage")
		engine.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("valid token reaches handler with principal", func(t *testing.T) {
		token, err := jwtService.IssueToken(identity.Principal{
			UserID: uuid.New(), Username: "alice", Role: identity.RoleAdmin,
		})
		require.NoError(t, err)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/closed", nil)
		request.Header.Set(AuthHeaderKey, BearerPrefix+token)
		engine.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "alice", recorder.Body.String())
	})
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := newJWTService()

	engine := gin.New()
	engine.Use(JWTAuth(jwtService))
	admin := engine.Group("/admin", RequireAdmin())
	admin.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	issue := func(role identity.Role) string {
		token, err := jwtService.IssueToken(identity.Principal{
			UserID: uuid.New(), Username: "u", Role: role,
		})
		require.NoError(t, err)
		return token
	}

	t.Run("admin passes", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/admin/probe", nil)
		request.Header.Set(AuthHeaderKey, BearerPrefix+issue(identity.RoleAdmin))
		engine.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("viewer is 403", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/admin/probe", nil)
		request.Header.Set(AuthHeaderKey, BearerPrefix+issue(identity.RoleViewer))
		engine.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}
