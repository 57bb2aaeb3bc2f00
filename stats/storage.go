package stats

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const monthLayout = "2006-01"

// Event identifies a countable occurrence
type Event int

const (
	EventContentAnalysis Event = iota + 1
	EventTechnicalScore
	EventAudit
	EventSwotAI
	EventSwotRules
	EventRegeneration
	EventRequest
	EventRequestError
)

func (e Event) String() string {
	switch e {
	case EventContentAnalysis:
		return "content_analysis"
	case EventTechnicalScore:
		return "technical_score"
	case EventAudit:
		return "audit"
	case EventSwotAI:
		return "swot_ai"
	case EventSwotRules:
		return "swot_rules"
	case EventRegeneration:
		return "regeneration"
	case EventRequest:
		return "request"
	case EventRequestError:
		return "request_error"
	default:
		return "unknown"
	}
}

// MonthlyStats represents statistics for a specific month
type MonthlyStats struct {
	ContentAnalyses int            `json:"content_analyses"`
	TechnicalScores int            `json:"technical_scores"`
	Audits          int            `json:"audits"`
	SwotAI          int            `json:"swot_ai"`
	SwotRules       int            `json:"swot_rules"`
	Regenerations   int            `json:"regenerations"`
	Requests        int            `json:"requests"`
	RequestErrors   int            `json:"request_errors"`
	LinkCacheHits   int            `json:"link_hits"`
	LinkCacheMisses int            `json:"link_misses"`
	PopularURLs     map[string]int `json:"popular_urls,omitempty"`
	LastUpdated     time.Time      `json:"last_updated"`
}

// ErrorRate returns request errors as a percentage of requests
func (m MonthlyStats) ErrorRate() float64 {
	if m.Requests == 0 {
		return 0
	}
	return float64(m.RequestErrors) / float64(m.Requests) * 100
}

// TopURLs returns up to n audited URLs, most frequent first
func (m MonthlyStats) TopURLs(n int) []URLCount {
	out := make([]URLCount, 0, len(m.PopularURLs))
	for u, c := range m.PopularURLs {
		out = append(out, URLCount{URL: u, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].URL < out[j].URL
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

type URLCount struct {
	URL   string `json:"url"`
	Count int    `json:"count"`
}

func (m *MonthlyStats) add(event Event, n int) {
	switch event {
	case EventContentAnalysis:
		m.ContentAnalyses += n
	case EventTechnicalScore:
		m.TechnicalScores += n
	case EventAudit:
		m.Audits += n
	case EventSwotAI:
		m.SwotAI += n
	case EventSwotRules:
		m.SwotRules += n
	case EventRegeneration:
		m.Regenerations += n
	case EventRequest:
		m.Requests += n
	case EventRequestError:
		m.RequestErrors += n
	}
}

func (m MonthlyStats) clone() MonthlyStats {
	if m.PopularURLs != nil {
		urls := make(map[string]int, len(m.PopularURLs))
		for k, v := range m.PopularURLs {
			urls[k] = v
		}
		m.PopularURLs = urls
	}
	return m
}

// Storage handles persistent storage of statistics
type Storage struct {
	mutex       sync.RWMutex
	saveMutex   sync.Mutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
	stopped     chan struct{}
	shutdown    sync.Once

	flushInterval time.Duration
	now           func() time.Time
	logger        zerolog.Logger
}

type Option func(*Storage)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Storage) {
		s.logger = l
	}
}

// WithFlushInterval sets the period of the background writer
func WithFlushInterval(d time.Duration) Option {
	return func(s *Storage) {
		if d > 0 {
			s.flushInterval = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		s.now = now
	}
}

// NewStorage loads dataDir/stats.json if present and starts the background writer
func NewStorage(dataDir string, opts ...Option) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{
		stats:         make(map[string]*MonthlyStats),
		filePath:      filepath.Join(dataDir, "stats.json"),
		writeBuffer:   make(chan struct{}, 1),
		done:          make(chan struct{}),
		stopped:       make(chan struct{}),
		flushInterval: 5 * time.Minute,
		now:           time.Now,
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	go s.backgroundWriter()

	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.stats)
}

// save writes to a temporary file and renames it over stats.json
func (s *Storage) save() error {
	s.saveMutex.Lock()
	defer s.saveMutex.Unlock()

	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

func (s *Storage) saveAndLog() {
	if err := s.save(); err != nil {
		s.logger.Error().Err(err).Str("path", s.filePath).Msg("failed to persist statistics")
	}
}

func (s *Storage) backgroundWriter() {
	defer close(s.stopped)

	ticker := time.NewTicker(s.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			s.saveAndLog()
		case <-ticker.C:
			s.saveAndLog()
		case <-s.done:
			return
		}
	}
}

func (s *Storage) currentMonth() string {
	return s.now().Format(monthLayout)
}

// requestWrite signals that a write to disk is needed
func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
		// write already pending
	}
}

// month returns the current month's record. Callers hold the write lock.
func (s *Storage) month() *MonthlyStats {
	key := s.currentMonth()
	stats, exists := s.stats[key]
	if !exists {
		stats = &MonthlyStats{}
		s.stats[key] = stats
	}
	return stats
}

func (s *Storage) touch(stats *MonthlyStats) {
	now := s.now()
	stats.LastUpdated = now
	if now.Sub(s.lastWrite) > time.Minute {
		s.requestWrite()
		s.lastWrite = now
	}
}

// Record increments the counter for event in the current month
func (s *Storage) Record(event Event) {
	s.Add(event, 1)
}

// Add increments the counter for event by n
func (s *Storage) Add(event Event, n int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats := s.month()
	stats.add(event, n)
	s.touch(stats)
}

// RecordLinkCache counts a link-status cache lookup
func (s *Storage) RecordLinkCache(hit bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats := s.month()
	if hit {
		stats.LinkCacheHits++
	} else {
		stats.LinkCacheMisses++
	}
	s.touch(stats)
}

// TrackURL counts an audited URL. Local and API addresses are ignored.
func (s *Storage) TrackURL(rawURL string) {
	cleaned := cleanURL(rawURL)
	if cleaned == "" {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats := s.month()
	if stats.PopularURLs == nil {
		stats.PopularURLs = make(map[string]int)
	}
	stats.PopularURLs[cleaned]++
	s.touch(stats)
}

// cleanURL reduces a URL to scheme, host and path
func cleanURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	if host == "localhost" || host == "127.0.0.1" || host == "::1" ||
		strings.Contains(strings.ToLower(u.Path), "/api/") {
		return ""
	}

	cleaned := u.Scheme + "://" + u.Host
	if u.Path != "" && u.Path != "/" {
		cleaned += u.Path
	}
	return strings.TrimSuffix(cleaned, "/")
}

// GetCurrentStats returns statistics for the current month
func (s *Storage) GetCurrentStats() MonthlyStats {
	month := s.currentMonth()

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[month]; exists {
		return stats.clone()
	}
	return MonthlyStats{}
}

// Cleanup removes months older than retainMonths before the current one and returns how
// many were dropped. Cleanup(0) keeps only the current month.
func (s *Storage) Cleanup(retainMonths int) int {
	if retainMonths < 0 {
		retainMonths = 0
	}
	now := s.now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	oldest := firstOfMonth.AddDate(0, -retainMonths, 0).Format(monthLayout)

	s.mutex.Lock()
	removed := 0
	for key := range s.stats {
		if key < oldest {
			delete(s.stats, key)
			removed++
		}
	}
	s.mutex.Unlock()

	if removed > 0 {
		s.requestWrite()
	}
	s.logger.Info().Int("removed", removed).Str("oldest_kept", oldest).Msg("statistics cleaned up")
	return removed
}

// GetMonthlyStats returns statistics for a specific month
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[yearMonth]; exists {
		return stats.clone(), true
	}
	return MonthlyStats{}, false
}

// GetAllMonths returns all months that have statistics, newest first
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	return months
}

// Shutdown stops the background writer and flushes to disk. Safe to call more than once.
func (s *Storage) Shutdown() error {
	var err error
	s.shutdown.Do(func() {
		close(s.done)
		<-s.stopped
		err = s.save()
	})
	return err
}
