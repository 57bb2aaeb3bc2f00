package optimizer

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/seo-boostpro/backend/analyzer"
	"github.com/seo-boostpro/backend/llm"
	"github.com/seo-boostpro/backend/pagespeed"
	"github.com/seo-boostpro/backend/stats"
)

// AuditInput carries pre-collected facts for an audit. Content is analysed only when
// Keywords are given as well.
type AuditInput struct {
	URL       string                  `json:"url"`
	Facts     analyzer.TechnicalFacts `json:"facts"`
	PageSpeed analyzer.PageSpeedData  `json:"pageSpeed"`
	Content   string                  `json:"content,omitempty"`
	Keywords  []string                `json:"keywords,omitempty"`
}

// Report is an audit together with its SWOT analysis
type Report struct {
	analyzer.Audit
	Swot analyzer.SwotAnalysis `json:"swot"`
}

// BuildAudit assembles the audit record without SWOT or side effects
func BuildAudit(in AuditInput) analyzer.Audit {
	technical := analyzer.ScoreTechnicalSEO(in.Facts)

	audit := analyzer.Audit{
		URL:             in.URL,
		OverallScore:    analyzer.OverallScore(in.PageSpeed.Desktop.Score, in.PageSpeed.Mobile.Score, technical.Score),
		PageSpeedData:   in.PageSpeed,
		TechnicalSEO:    in.Facts,
		TechnicalScore:  technical.Score,
		SEOIssues:       technical.Issues,
		Recommendations: analyzer.GenerateRecommendations(in.PageSpeed, in.Facts),
	}

	if strings.TrimSpace(in.Content) != "" && len(in.Keywords) > 0 {
		content := analyzer.AnalyzeContent(in.Content, in.Keywords)
		audit.Content = &content
	}
	return audit
}

// Audit scores the supplied facts and attaches a SWOT analysis
func (s *Service) Audit(ctx context.Context, in AuditInput) *Report {
	audit := BuildAudit(in)

	s.recorder.Record(stats.EventAudit)
	if in.URL != "" {
		s.recorder.TrackURL(in.URL)
	}

	return &Report{
		Audit: audit,
		Swot:  s.Swot(ctx, audit),
	}
}

// AuditURL fetches the page and both PageSpeed strategies in parallel, then audits the result.
// A PageSpeed failure scores that strategy 0; a fetch failure fails the audit.
func (s *Service) AuditURL(ctx context.Context, url string, keywords []string) (*Report, error) {
	if s.fetcher == nil {
		return nil, ErrNoFetcher
	}

	var (
		in      = AuditInput{URL: url, Keywords: keywords}
		desktop int
		mobile  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := s.fetcher.Fetch(gctx, url)
		if err != nil {
			return fmt.Errorf("failed to extract page: %w", err)
		}
		in.Facts = page.Facts
		in.Content = page.Text
		return nil
	})
	g.Go(func() error {
		desktop = s.performanceScore(gctx, url, pagespeed.Desktop)
		return nil
	})
	g.Go(func() error {
		mobile = s.performanceScore(gctx, url, pagespeed.Mobile)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	in.PageSpeed = analyzer.PageSpeedData{
		Desktop: analyzer.PageSpeedResult{Score: desktop},
		Mobile:  analyzer.PageSpeedResult{Score: mobile},
	}
	return s.Audit(ctx, in), nil
}

func (s *Service) performanceScore(ctx context.Context, url string, strategy pagespeed.Strategy) int {
	if s.pageSpeed == nil {
		return 0
	}
	score, err := s.pageSpeed.Score(ctx, url, strategy)
	if err != nil {
		s.logger.Warn().Err(err).Str("url", url).Str("strategy", string(strategy)).Msg("pagespeed unavailable, scoring 0")
		return 0
	}
	return score
}

// Swot asks the generator first and falls back to the rule engine on any failure
func (s *Service) Swot(ctx context.Context, audit analyzer.Audit) analyzer.SwotAnalysis {
	if s.generator != nil {
		swot, err := s.swotWithAI(ctx, audit)
		if err == nil {
			s.recorder.Record(stats.EventSwotAI)
			return swot
		}
		s.logger.Warn().Err(err).Str("url", audit.URL).Msg("ai swot failed, using rules")
	}

	s.recorder.Record(stats.EventSwotRules)
	return analyzer.GenerateSwotWithRules(audit)
}

func (s *Service) swotWithAI(ctx context.Context, audit analyzer.Audit) (analyzer.SwotAnalysis, error) {
	response, err := s.generator.Generate(ctx, llm.BuildSwotPrompt(audit))
	if err != nil {
		return analyzer.SwotAnalysis{}, err
	}

	var swot analyzer.SwotAnalysis
	if err := llm.DecodeJSON(response, &swot); err != nil {
		return analyzer.SwotAnalysis{}, err
	}

	swot.Strengths = compact(swot.Strengths)
	swot.Weaknesses = compact(swot.Weaknesses)
	swot.Opportunities = compact(swot.Opportunities)
	swot.Threats = compact(swot.Threats)
	if len(swot.Strengths) == 0 || len(swot.Weaknesses) == 0 ||
		len(swot.Opportunities) == 0 || len(swot.Threats) == 0 {
		return analyzer.SwotAnalysis{}, ErrInvalidSwot
	}

	swot.GeneratedBy = analyzer.GeneratedByAI
	return swot, nil
}

// compact trims entries and drops blank ones
func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
