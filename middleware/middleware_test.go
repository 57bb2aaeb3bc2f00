package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/seo-boostpro/backend/stats"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(router http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.7:5555"
	router.ServeHTTP(w, req)
	return w
}

func TestErrorHandler(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler(zerolog.Nop()))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := perform(router, http.MethodGet, "/panic")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"An unexpected error occurred"}`, w.Body.String())
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS())
	router.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(router, http.MethodOptions, "/api/health")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = perform(router, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 2)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "buckets are per client")

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	router := gin.New()
	router.Use(rl.RateLimit())
	router.GET("/api/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(router, http.MethodGet, "/api/x").Code)

	w := perform(router, http.MethodGet, "/api/x")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(5 * time.Minute)
	rl.Allow("recent")
	now = now.Add(6 * time.Minute)

	assert.Equal(t, 1, rl.Cleanup())
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "recent")
}

type eventRecorder struct {
	mu     sync.Mutex
	events []stats.Event
}

func (r *eventRecorder) Record(e stats.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func TestStatsMiddleware(t *testing.T) {
	recorder := &eventRecorder{}
	router := gin.New()
	router.Use(StatsMiddleware(recorder))
	router.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	router.GET("/api/fail", func(c *gin.Context) { c.Status(http.StatusBadGateway) })
	router.GET("/other", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/health", "/api/ok", "/api/bad", "/api/fail", "/other"} {
		perform(router, http.MethodGet, path)
	}

	assert.Equal(t, []stats.Event{
		stats.EventRequest,
		stats.EventRequest,
		stats.EventRequest,
		stats.EventRequestError,
	}, recorder.events)
}
