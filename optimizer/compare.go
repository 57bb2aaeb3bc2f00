package optimizer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/seo-boostpro/backend/analyzer"
)

// CompareTarget is one page to compare. Content wins over URL when both are set.
type CompareTarget struct {
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	Content string `json:"content,omitempty"`
}

// CompareResult is the analysis of one target. Rank starts at 1 for the best SEO score;
// failed targets keep Rank 0 and carry Error.
type CompareResult struct {
	Name     string                    `json:"name"`
	URL      string                    `json:"url,omitempty"`
	Analysis *analyzer.ContentAnalysis `json:"analysis,omitempty"`
	Rank     int                       `json:"rank"`
	Error    string                    `json:"error,omitempty"`
}

type Comparison struct {
	Keywords []string        `json:"keywords"`
	Results  []CompareResult `json:"results"`
	Best     string          `json:"best,omitempty"`
}

// Compare analyses every target against the same keywords with bounded concurrency.
// Results keep the input order. A failing target does not fail the comparison.
func (s *Service) Compare(ctx context.Context, targets []CompareTarget, keywords []string) (*Comparison, error) {
	results := make([]CompareResult, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.compareLimit)

	for i, target := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res := CompareResult{Name: target.Name, URL: target.URL}
			content, err := s.targetContent(gctx, target)
			if err != nil {
				res.Error = err.Error()
			} else {
				analysis := analyzer.AnalyzeContent(content, keywords)
				res.Analysis = &analysis
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	comparison := &Comparison{Keywords: keywords, Results: results}
	rankResults(comparison)
	return comparison, nil
}

func (s *Service) targetContent(ctx context.Context, target CompareTarget) (string, error) {
	if strings.TrimSpace(target.Content) != "" {
		return target.Content, nil
	}
	if target.URL == "" {
		return "", fmt.Errorf("target %q has neither content nor url", target.Name)
	}
	if s.fetcher == nil {
		return "", ErrNoFetcher
	}

	page, err := s.fetcher.Fetch(ctx, target.URL)
	if err != nil {
		return "", err
	}
	return page.Text, nil
}

// rankResults assigns ranks by descending SEO score; ties keep input order
func rankResults(c *Comparison) {
	order := make([]int, 0, len(c.Results))
	for i, r := range c.Results {
		if r.Analysis != nil {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return c.Results[order[a]].Analysis.SEOScore > c.Results[order[b]].Analysis.SEOScore
	})
	for rank, idx := range order {
		c.Results[idx].Rank = rank + 1
	}
	if len(order) > 0 {
		c.Best = c.Results[order[0]].Name
	}
}
