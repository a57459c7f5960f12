package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := perform(engine, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	w = perform(engine, req)
	assert.Equal(t, "upstream-id", w.Header().Get(RequestIDHeader))
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	reg := prometheus.NewRegistry()
	counter, err := NewRequestCounter(reg)
	require.NoError(t, err)
	again, err := NewRequestCounter(reg)
	require.NoError(t, err)
	assert.Same(t, counter, again)

	engine := gin.New()
	engine.Use(RequestID(), AccessLog(logrus.NewEntry(log), counter))
	engine.GET("/blog", func(c *gin.Context) { c.Status(http.StatusOK) })

	perform(engine, httptest.NewRequest(http.MethodGet, "/blog", nil))
	perform(engine, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("/blog", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("unmatched", "404")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "/blog", first["path"])
	assert.Equal(t, "info", first["level"])
	assert.NotEmpty(t, first["request_id"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "warning", second["level"])
}

func TestRateLimit(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)
	engine := gin.New()
	engine.Use(RateLimit(limiter))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := func(ip string) int {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		return perform(engine, r).Code
	}

	assert.Equal(t, http.StatusOK, req("1.1.1.1"))
	assert.Equal(t, http.StatusOK, req("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, req("1.1.1.1"))
	// 其他 IP 不受影响
	assert.Equal(t, http.StatusOK, req("2.2.2.2"))
}

func TestIPRateLimiter_Sweep(t *testing.T) {
	limiter := NewIPRateLimiter(60, 1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("a"))
	now = now.Add(staleAfter / 2)
	assert.True(t, limiter.Allow("b"))
	assert.Equal(t, 2, limiter.Sweep())

	now = now.Add(staleAfter/2 + time.Second)
	assert.Equal(t, 1, limiter.Sweep())
}

func TestCors(t *testing.T) {
	engine := gin.New()
	engine.Use(Cors())
	engine.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/health", nil)
	req.Header.Set("Origin", "https://example.com")
	w := perform(engine, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = perform(engine, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
