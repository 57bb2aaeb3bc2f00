// Package api exposes the optimizer over HTTP.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/seo-boostpro/backend/analyzer"
	"github.com/seo-boostpro/backend/jobs"
	"github.com/seo-boostpro/backend/optimizer"
	"github.com/seo-boostpro/backend/stats"
)

// Optimizer is the service surface the handlers need
type Optimizer interface {
	AIEnabled() bool
	AnalyzeContent(content string, keywords []string) analyzer.ContentAnalysis
	ScoreTechnical(facts analyzer.TechnicalFacts) analyzer.TechnicalResult
	Metadata(content string, keywords []string) analyzer.Metadata
	AltTags(images []analyzer.ImageInput, altCtx analyzer.AltContext) []analyzer.AltSuggestion
	Audit(ctx context.Context, in optimizer.AuditInput) *optimizer.Report
	AuditURL(ctx context.Context, url string, keywords []string) (*optimizer.Report, error)
	Swot(ctx context.Context, audit analyzer.Audit) analyzer.SwotAnalysis
	StartRegeneration(ctx context.Context, req optimizer.RegenerationRequest) (string, error)
	Job(ctx context.Context, id string) (jobs.Job, bool, error)
	Compare(ctx context.Context, targets []optimizer.CompareTarget, keywords []string) (*optimizer.Comparison, error)
}

type StatsProvider interface {
	GetCurrentStats() stats.MonthlyStats
	GetAllMonths() []string
}

type Handler struct {
	service Optimizer
	stats   StatsProvider
	devMode bool
	logger  zerolog.Logger
}

func NewHandler(service Optimizer, statsProvider StatsProvider, devMode bool, logger zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		stats:   statsProvider,
		devMode: devMode,
		logger:  logger,
	}
}

type contentRequest struct {
	Content  string   `json:"content" binding:"required,max=10000"`
	Keywords []string `json:"keywords" binding:"required,min=1,max=5,dive,min=1,max=50"`
	Title    string   `json:"title,omitempty"`
}

type regenerateRequest struct {
	contentRequest
	Tone string `json:"tone,omitempty" binding:"omitempty,max=30"`
}

type auditURLRequest struct {
	URL      string   `json:"url" binding:"required,url"`
	Keywords []string `json:"keywords" binding:"max=5,dive,min=1,max=50"`
}

type altTagsRequest struct {
	Images         []analyzer.ImageInput `json:"images" binding:"required,min=1,max=100"`
	PageTitle      string                `json:"pageTitle"`
	PrimaryKeyword string                `json:"primaryKeyword"`
}

// auditRequest mirrors optimizer.AuditInput with the same content limits as contentRequest
type auditRequest struct {
	URL       string                  `json:"url"`
	Facts     analyzer.TechnicalFacts `json:"facts"`
	PageSpeed analyzer.PageSpeedData  `json:"pageSpeed"`
	Content   string                  `json:"content" binding:"max=10000"`
	Keywords  []string                `json:"keywords" binding:"max=5,dive,min=1,max=50"`
}

type compareTarget struct {
	Name    string `json:"name" binding:"max=200"`
	URL     string `json:"url" binding:"omitempty,url"`
	Content string `json:"content" binding:"max=10000"`
}

type compareRequest struct {
	Targets  []compareTarget `json:"targets" binding:"required,min=1,max=10,dive"`
	Keywords []string        `json:"keywords" binding:"required,min=1,max=5,dive,min=1,max=50"`
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// bindContent binds and validates a content request; blank content or keywords are rejected
func bindContent(c *gin.Context, req *contentRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, "Invalid request: content (max 10000 characters) and 1-5 keywords (1-50 characters each) are required")
		return false
	}
	return validContent(c, req)
}

func validContent(c *gin.Context, req *contentRequest) bool {
	if strings.TrimSpace(req.Content) == "" {
		badRequest(c, "Content must not be blank")
		return false
	}
	return validKeywords(c, req.Keywords)
}

// validKeywords trims keywords in place and rejects blank ones
func validKeywords(c *gin.Context, keywords []string) bool {
	for i, kw := range keywords {
		keywords[i] = strings.TrimSpace(kw)
		if keywords[i] == "" {
			badRequest(c, "Keywords must not be blank")
			return false
		}
	}
	return true
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"ai":     h.service.AIEnabled(),
	})
}

func (h *Handler) AnalyzeContent(c *gin.Context) {
	var req contentRequest
	if !bindContent(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.service.AnalyzeContent(req.Content, req.Keywords))
}

func (h *Handler) Metadata(c *gin.Context) {
	var req contentRequest
	if !bindContent(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.service.Metadata(req.Content, req.Keywords))
}

func (h *Handler) StartRegeneration(c *gin.Context) {
	var req regenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: content (max 10000 characters) and 1-5 keywords (1-50 characters each) are required")
		return
	}
	if !validContent(c, &req.contentRequest) {
		return
	}

	id, err := h.service.StartRegeneration(c.Request.Context(), optimizer.RegenerationRequest{
		Content:  req.Content,
		Keywords: req.Keywords,
		Tone:     req.Tone,
	})
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start regeneration"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"jobId": id})
}

func (h *Handler) RegenerationStatus(c *gin.Context) {
	id := c.Param("id")
	job, found, err := h.service.Job(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read job"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) ScoreTechnical(c *gin.Context) {
	var facts analyzer.TechnicalFacts
	if err := c.ShouldBindJSON(&facts); err != nil {
		badRequest(c, "Invalid technical facts")
		return
	}
	c.JSON(http.StatusOK, h.service.ScoreTechnical(facts))
}

func (h *Handler) Audit(c *gin.Context) {
	var req auditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid audit input: content (max 10000 characters) and up to 5 keywords (1-50 characters each)")
		return
	}
	if !validKeywords(c, req.Keywords) {
		return
	}
	c.JSON(http.StatusOK, h.service.Audit(c.Request.Context(), optimizer.AuditInput{
		URL:       req.URL,
		Facts:     req.Facts,
		PageSpeed: req.PageSpeed,
		Content:   req.Content,
		Keywords:  req.Keywords,
	}))
}

func (h *Handler) AuditURL(c *gin.Context) {
	var req auditURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid URL provided")
		return
	}
	if !validKeywords(c, req.Keywords) {
		return
	}

	report, err := h.service.AuditURL(c.Request.Context(), req.URL, req.Keywords)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to audit URL: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) Swot(c *gin.Context) {
	var audit analyzer.Audit
	if err := c.ShouldBindJSON(&audit); err != nil {
		badRequest(c, "Invalid audit")
		return
	}
	c.JSON(http.StatusOK, h.service.Swot(c.Request.Context(), audit))
}

func (h *Handler) AltTags(c *gin.Context) {
	var req altTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: 1-100 images are required")
		return
	}
	suggestions := h.service.AltTags(req.Images, analyzer.AltContext{
		PageTitle:      req.PageTitle,
		PrimaryKeyword: req.PrimaryKeyword,
	})
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *Handler) Compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: 1-10 targets (content max 10000 characters) and 1-5 keywords are required")
		return
	}
	if !validKeywords(c, req.Keywords) {
		return
	}

	targets := make([]optimizer.CompareTarget, len(req.Targets))
	for i, t := range req.Targets {
		targets[i] = optimizer.CompareTarget{Name: t.Name, URL: t.URL, Content: t.Content}
	}

	comparison, err := h.service.Compare(c.Request.Context(), targets, req.Keywords)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Comparison failed"})
		return
	}
	c.JSON(http.StatusOK, comparison)
}

// Statistics returns the current month's counters. Dev mode adds the month list and top URLs.
func (h *Handler) Statistics(c *gin.Context) {
	current := h.stats.GetCurrentStats()

	body := gin.H{
		"contentAnalyses": current.ContentAnalyses,
		"technicalScores": current.TechnicalScores,
		"audits":          current.Audits,
		"swotAi":          current.SwotAI,
		"swotRules":       current.SwotRules,
		"regenerations":   current.Regenerations,
		"totalRequests":   current.Requests,
		"errorRate":       current.ErrorRate(),
	}
	if h.devMode {
		body["months"] = h.stats.GetAllMonths()
		body["popularUrls"] = current.TopURLs(5)
		body["linkCacheHits"] = current.LinkCacheHits
		body["linkCacheMisses"] = current.LinkCacheMisses
	}
	c.JSON(http.StatusOK, body)
}
