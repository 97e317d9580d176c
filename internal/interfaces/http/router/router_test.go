package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type probeRegistrar struct {
	path string
}

func (r probeRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET(r.path, func(c *gin.Context) { c.Status(http.StatusOK) })
}

func TestRouterSetup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	NewRouter(engine).
		Register(probeRegistrar{path: "/a"}).
		Register(probeRegistrar{path: "/b"}).
		Setup()

	for _, path := range []string{"/api/v1/a", "/api/v1/b"} {
		recorder := httptest.NewRecorder()
		engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, recorder.Code, path)
	}
}

func TestRouterVersionOption(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	NewRouter(engine, WithAPIVersion("v2")).
		Register(probeRegistrar{path: "/a"}).
		Setup()

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v2/a", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/a", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
