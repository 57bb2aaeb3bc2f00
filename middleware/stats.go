package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/seo-boostpro/backend/stats"
)

// Recorder receives request events
type Recorder interface {
	Record(event stats.Event)
}

// StatsMiddleware counts API requests and the ones that ended with a server error
func StatsMiddleware(recorder Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.URL.Path == "/api/health" {
			return
		}

		recorder.Record(stats.EventRequest)
		if c.Writer.Status() >= 500 {
			recorder.Record(stats.EventRequestError)
		}
	}
}
