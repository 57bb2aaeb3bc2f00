package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/seo-boostpro/backend/logging"
	"github.com/seo-boostpro/backend/middleware"
)

type RouterConfig struct {
	Handler     *Handler
	Logger      zerolog.Logger
	RateLimiter *middleware.RateLimiter
	Recorder    middleware.Recorder
}

// NewRouter builds the gin engine with recovery, logging, CORS, rate limiting and stats middleware
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()

	r.Use(middleware.ErrorHandler(cfg.Logger))
	r.Use(logging.RequestLogger(cfg.Logger))
	r.Use(middleware.CORS())
	if cfg.Recorder != nil {
		r.Use(middleware.StatsMiddleware(cfg.Recorder))
	}

	h := cfg.Handler
	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/statistics", h.Statistics)
		api.GET("/content/regenerate/:id", h.RegenerationStatus)

		limited := api.Group("")
		if cfg.RateLimiter != nil {
			limited.Use(cfg.RateLimiter.RateLimit())
		}
		limited.POST("/content/analyze", h.AnalyzeContent)
		limited.POST("/content/metadata", h.Metadata)
		limited.POST("/content/regenerate", h.StartRegeneration)
		limited.POST("/technical/score", h.ScoreTechnical)
		limited.POST("/audit", h.Audit)
		limited.POST("/audit/url", h.AuditURL)
		limited.POST("/swot", h.Swot)
		limited.POST("/alt-tags", h.AltTags)
		limited.POST("/competitors/compare", h.Compare)
	}

	return r
}
