package extractor

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

const (
	defaultUserAgent        = "SEOBoostPro/1.0"
	defaultTimeout          = 15 * time.Second
	defaultLinkCheckTimeout = 5 * time.Second
	defaultLinkCacheTTL     = 10 * time.Minute
	defaultMaxLinkCacheSize = 10000
	defaultMaxLinkChecks    = 10
	defaultCleanupInterval  = 5 * time.Minute
	maxBodySize             = 10 << 20
)

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// CacheRecorder is notified of link-status cache lookups
type CacheRecorder interface {
	RecordLinkCache(hit bool)
}

type linkCacheEntry struct {
	accessible bool
	timestamp  time.Time
}

// Fetcher downloads pages, extracts their facts and counts broken links
type Fetcher struct {
	client           *http.Client
	userAgent        string
	linkCheckTimeout time.Duration
	maxLinkChecks    int
	checkLinks       bool

	linkCache        map[string]linkCacheEntry
	linkCacheMutex   sync.RWMutex
	linkCacheTTL     time.Duration
	maxLinkCacheSize int
	cleanupInterval  time.Duration
	lastCleanup      time.Time

	recorder CacheRecorder
	logger   zerolog.Logger
}

type Option func(*Fetcher)

func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithMaxLinkChecks bounds the number of concurrent HEAD requests per page
func WithMaxLinkChecks(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxLinkChecks = n
		}
	}
}

// WithLinkChecking toggles broken-link detection. Disabled checks leave Links.Broken at 0.
func WithLinkChecking(enabled bool) Option {
	return func(f *Fetcher) {
		f.checkLinks = enabled
	}
}

func WithLinkCacheTTL(ttl time.Duration) Option {
	return func(f *Fetcher) {
		f.linkCacheTTL = ttl
	}
}

func WithMaxLinkCacheSize(n int) Option {
	return func(f *Fetcher) {
		f.maxLinkCacheSize = n
	}
}

func WithCacheRecorder(r CacheRecorder) Option {
	return func(f *Fetcher) {
		f.recorder = r
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// NewFetcher creates a Fetcher backed by a pooled keep-alive transport
func NewFetcher(opts ...Option) *Fetcher {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	f := &Fetcher{
		client: &http.Client{
			Timeout:   defaultTimeout,
			Transport: transport,
		},
		userAgent:        defaultUserAgent,
		linkCheckTimeout: defaultLinkCheckTimeout,
		maxLinkChecks:    defaultMaxLinkChecks,
		checkLinks:       true,
		linkCache:        make(map[string]linkCacheEntry),
		linkCacheTTL:     defaultLinkCacheTTL,
		maxLinkCacheSize: defaultMaxLinkCacheSize,
		cleanupInterval:  defaultCleanupInterval,
		lastCleanup:      time.Now(),
		logger:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads pageURL and extracts its technical facts, including the broken link count
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	start := time.Now()
	f.maybeCleanup()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid page url %q: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch %s: status %d", pageURL, resp.StatusCode)
	}

	pageSize := 0
	if contentLength := resp.Header.Get("Content-Length"); contentLength != "" {
		if size, err := strconv.Atoi(contentLength); err == nil {
			pageSize = size
		}
	}

	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	if _, err := io.Copy(buf, io.LimitReader(resp.Body, maxBodySize)); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", pageURL, err)
	}
	if pageSize == 0 {
		pageSize = buf.Len()
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", pageURL, err)
	}
	loadTime := time.Since(start)

	page := Extract(doc, pageURL)
	page.PageSize = pageSize
	page.LoadTime = loadTime.Milliseconds()

	if f.checkLinks {
		page.Facts.Links.Broken = f.countBrokenLinks(ctx, page.links)
	}

	f.logger.Debug().
		Str("url", pageURL).
		Int("size", pageSize).
		Dur("load_time", loadTime).
		Int("links", len(page.links)).
		Int("broken", page.Facts.Links.Broken).
		Msg("page extracted")

	return page, nil
}

// countBrokenLinks checks every target with at most maxLinkChecks requests in flight.
// A cancelled ctx returns the count gathered so far.
func (f *Fetcher) countBrokenLinks(ctx context.Context, targets []string) int {
	if len(targets) == 0 {
		return 0
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		broken int
	)
	semaphore := make(chan struct{}, f.maxLinkChecks)

	linkCtx, cancel := context.WithTimeout(ctx, f.client.Timeout)
	defer cancel()

	for _, target := range targets {
		select {
		case <-ctx.Done():
			return broken
		default:
		}

		wg.Add(1)
		go func(target string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if !f.isLinkAccessible(linkCtx, target) {
				mu.Lock()
				broken++
				mu.Unlock()
			}
		}(target)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}

	mu.Lock()
	defer mu.Unlock()
	return broken
}

func (f *Fetcher) isLinkAccessible(ctx context.Context, target string) bool {
	key := cacheKey(target)

	f.linkCacheMutex.RLock()
	entry, found := f.linkCache[key]
	f.linkCacheMutex.RUnlock()
	if found && time.Since(entry.timestamp) < f.linkCacheTTL {
		f.record(true)
		return entry.accessible
	}
	f.record(false)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return f.cacheLinkStatus(key, false)
	}
	req.Header.Set("User-Agent", f.userAgent)

	client := &http.Client{
		Timeout:   f.linkCheckTimeout,
		Transport: f.client.Transport,
	}
	resp, err := client.Do(req)
	if err != nil {
		// cancellation says nothing about the link itself
		if ctx.Err() != nil {
			return true
		}
		return f.cacheLinkStatus(key, false)
	}
	defer resp.Body.Close()

	return f.cacheLinkStatus(key, resp.StatusCode >= 200 && resp.StatusCode < 400)
}

func (f *Fetcher) cacheLinkStatus(key string, accessible bool) bool {
	f.linkCacheMutex.Lock()
	defer f.linkCacheMutex.Unlock()

	f.linkCache[key] = linkCacheEntry{
		accessible: accessible,
		timestamp:  time.Now(),
	}
	return accessible
}

func (f *Fetcher) record(hit bool) {
	if f.recorder != nil {
		f.recorder.RecordLinkCache(hit)
	}
}

func (f *Fetcher) maybeCleanup() {
	f.linkCacheMutex.RLock()
	due := time.Since(f.lastCleanup) > f.cleanupInterval
	f.linkCacheMutex.RUnlock()
	if due {
		f.Cleanup()
	}
}

// Cleanup drops expired link statuses, then evicts the oldest entries above the size limit.
// It returns the number of entries removed.
func (f *Fetcher) Cleanup() int {
	f.linkCacheMutex.Lock()
	defer f.linkCacheMutex.Unlock()

	now := time.Now()
	f.lastCleanup = now
	removed := 0

	for key, entry := range f.linkCache {
		if now.Sub(entry.timestamp) > f.linkCacheTTL {
			delete(f.linkCache, key)
			removed++
		}
	}

	if f.maxLinkCacheSize > 0 && len(f.linkCache) > f.maxLinkCacheSize {
		type keyed struct {
			key       string
			timestamp time.Time
		}
		entries := make([]keyed, 0, len(f.linkCache))
		for key, entry := range f.linkCache {
			entries = append(entries, keyed{key, entry.timestamp})
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].timestamp.Before(entries[j].timestamp)
		})
		for i := 0; i < len(entries)-f.maxLinkCacheSize; i++ {
			delete(f.linkCache, entries[i].key)
			removed++
		}
	}

	if removed > 0 {
		f.logger.Debug().Int("removed", removed).Int("remaining", len(f.linkCache)).Msg("link cache cleaned")
	}
	return removed
}

// LinkCacheSize returns the number of cached link statuses
func (f *Fetcher) LinkCacheSize() int {
	f.linkCacheMutex.RLock()
	defer f.linkCacheMutex.RUnlock()
	return len(f.linkCache)
}

func cacheKey(url string) string {
	hash := md5.Sum([]byte(url))
	return hex.EncodeToString(hash[:])
}
