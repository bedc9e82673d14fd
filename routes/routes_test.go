package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/locality-resolver/helpers/utils"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), ZapLogger(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestRequestID_Generated(t *testing.T) {
	w := httptest.NewRecorder()
	newTestEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, utils.ValidRequestID(w.Header().Get(utils.RequestIDHeader)))
}

func TestRequestID_Echoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(utils.RequestIDHeader, "caller-123")
	w := httptest.NewRecorder()
	newTestEngine().ServeHTTP(w, req)

	assert.Equal(t, "caller-123", w.Header().Get(utils.RequestIDHeader))
}

func TestRequestID_ReplacesUnsafeValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(utils.RequestIDHeader, "bad id with spaces")
	w := httptest.NewRecorder()
	newTestEngine().ServeHTTP(w, req)

	assert.NotEqual(t, "bad id with spaces", w.Header().Get(utils.RequestIDHeader))
}

func TestSetupWebAndMetricsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupWebRoutes(r)
	SetupMetricsRoutes(r)

	for _, path := range []string{"/", "/docs", "/metrics"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
