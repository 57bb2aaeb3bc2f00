// Package pagespeed fetches Lighthouse performance scores from the PageSpeed Insights API.
package pagespeed

import (
	"context"
	"fmt"
	"math"
	"time"

	"google.golang.org/api/option"
	pagespeedonline "google.golang.org/api/pagespeedonline/v5"
)

type Strategy string

const (
	Desktop Strategy = "desktop"
	Mobile  Strategy = "mobile"
)

type Client struct {
	service *pagespeedonline.Service
	timeout time.Duration
}

// New creates a PageSpeed client. timeout bounds each run; zero leaves it to ctx.
// Extra options (endpoint, HTTP client) are passed through.
func New(ctx context.Context, apiKey string, timeout time.Duration, opts ...option.ClientOption) (*Client, error) {
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	} else {
		opts = append(opts, option.WithoutAuthentication())
	}
	svc, err := pagespeedonline.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pagespeed service: %w", err)
	}
	return &Client{service: svc, timeout: timeout}, nil
}

// Score runs a performance audit of url and returns the Lighthouse performance score as 0-100
func (c *Client) Score(ctx context.Context, url string, strategy Strategy) (int, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.service.Pagespeedapi.Runpagespeed(url).
		Strategy(string(strategy)).
		Category("performance").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("pagespeed %s run for %s failed: %w", strategy, url, err)
	}

	if resp.LighthouseResult == nil || resp.LighthouseResult.Categories == nil ||
		resp.LighthouseResult.Categories.Performance == nil {
		return 0, fmt.Errorf("pagespeed %s result for %s has no performance category", strategy, url)
	}

	score, ok := resp.LighthouseResult.Categories.Performance.Score.(float64)
	if !ok {
		return 0, fmt.Errorf("pagespeed %s result for %s has no performance score", strategy, url)
	}
	return int(math.Round(score * 100)), nil
}
