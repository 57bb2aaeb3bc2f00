// Package optimizer wires the scoring core to its collaborators: page extraction,
// PageSpeed, the AI generator, the job store and usage statistics.
package optimizer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/seo-boostpro/backend/analyzer"
	"github.com/seo-boostpro/backend/extractor"
	"github.com/seo-boostpro/backend/jobs"
	"github.com/seo-boostpro/backend/pagespeed"
	"github.com/seo-boostpro/backend/stats"
)

var (
	ErrInvalidSwot       = errors.New("ai swot response is missing a category")
	ErrEmptyRegeneration = errors.New("ai regeneration returned no content")
	ErrNoFetcher         = errors.New("page fetcher not configured")
)

// Consumer-side interfaces
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*extractor.Page, error)
}

type PageSpeedScorer interface {
	Score(ctx context.Context, url string, strategy pagespeed.Strategy) (int, error)
}

type Recorder interface {
	Record(event stats.Event)
	TrackURL(url string)
}

type nopRecorder struct{}

func (nopRecorder) Record(stats.Event) {}
func (nopRecorder) TrackURL(string)    {}

type Service struct {
	generator    Generator
	fetcher      PageFetcher
	pageSpeed    PageSpeedScorer
	store        jobs.Store
	recorder     Recorder
	logger       zerolog.Logger
	picker       analyzer.Picker
	newID        func() string
	now          func() time.Time
	compareLimit int
	jobTimeout   time.Duration

	jobsWG sync.WaitGroup
}

// Functional Options Pattern
type Option func(*Service)

// WithGenerator enables the AI paths. A nil generator keeps the rule-based ones.
func WithGenerator(g Generator) Option {
	return func(s *Service) { s.generator = g }
}

func WithFetcher(f PageFetcher) Option {
	return func(s *Service) { s.fetcher = f }
}

func WithPageSpeed(p PageSpeedScorer) Option {
	return func(s *Service) { s.pageSpeed = p }
}

func WithJobStore(store jobs.Store) Option {
	return func(s *Service) { s.store = store }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithPicker fixes the title template choice in metadata generation
func WithPicker(p analyzer.Picker) Option {
	return func(s *Service) { s.picker = p }
}

func WithIDGenerator(f func() string) Option {
	return func(s *Service) { s.newID = f }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithCompareLimit bounds concurrent work in Compare
func WithCompareLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.compareLimit = n
		}
	}
}

// WithJobTimeout bounds a single background regeneration
func WithJobTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.jobTimeout = d
		}
	}
}

func New(opts ...Option) *Service {
	s := &Service{
		recorder:     nopRecorder{},
		logger:       zerolog.Nop(),
		picker:       analyzer.RandomPicker,
		newID:        uuid.NewString,
		now:          time.Now,
		compareLimit: 4,
		jobTimeout:   2 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = jobs.NewMemoryStore(24 * time.Hour)
	}
	return s
}

// AIEnabled reports whether a generator is configured
func (s *Service) AIEnabled() bool {
	return s.generator != nil
}

func (s *Service) AnalyzeContent(content string, keywords []string) analyzer.ContentAnalysis {
	s.recorder.Record(stats.EventContentAnalysis)
	return analyzer.AnalyzeContent(content, keywords)
}

func (s *Service) ScoreTechnical(facts analyzer.TechnicalFacts) analyzer.TechnicalResult {
	s.recorder.Record(stats.EventTechnicalScore)
	return analyzer.ScoreTechnicalSEO(facts)
}

func (s *Service) Metadata(content string, keywords []string) analyzer.Metadata {
	return analyzer.GenerateMetadata(content, keywords, s.picker)
}

func (s *Service) AltTags(images []analyzer.ImageInput, altCtx analyzer.AltContext) []analyzer.AltSuggestion {
	return analyzer.GenerateAltTagsWithRules(images, altCtx)
}

// Wait blocks until every background regeneration has finished
func (s *Service) Wait() {
	s.jobsWG.Wait()
}
