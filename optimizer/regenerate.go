package optimizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/seo-boostpro/backend/analyzer"
	"github.com/seo-boostpro/backend/jobs"
	"github.com/seo-boostpro/backend/llm"
	"github.com/seo-boostpro/backend/stats"
)

const finishTimeout = 10 * time.Second

type RegenerationRequest struct {
	Content  string   `json:"content"`
	Keywords []string `json:"keywords"`
	Tone     string   `json:"tone,omitempty"`
}

// StartRegeneration stores a processing job and rewrites the content in the background.
// The returned id can be polled with Job.
func (s *Service) StartRegeneration(ctx context.Context, req RegenerationRequest) (string, error) {
	id := s.newID()
	now := s.now()

	job := jobs.Job{
		ID:        id,
		Status:    jobs.StatusProcessing,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(ctx, id, job); err != nil {
		return "", fmt.Errorf("failed to store job: %w", err)
	}
	s.recorder.Record(stats.EventRegeneration)

	// the job outlives the request that started it
	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.jobTimeout)

	s.jobsWG.Add(1)
	go func() {
		defer s.jobsWG.Done()
		defer cancel()
		s.runRegeneration(jobCtx, job, req)
	}()

	return id, nil
}

func (s *Service) runRegeneration(ctx context.Context, job jobs.Job, req RegenerationRequest) {
	logger := s.logger.With().Str("job_id", job.ID).Logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("regeneration job panicked")
			s.finish(ctx, job, nil, fmt.Errorf("regeneration panicked: %v", r))
		}
	}()

	result := s.Regenerate(ctx, req)
	s.finish(ctx, job, &result, nil)
}

func (s *Service) finish(ctx context.Context, job jobs.Job, result *analyzer.Regeneration, jobErr error) {
	job.UpdatedAt = s.now()
	if jobErr != nil {
		job.Status = jobs.StatusFailed
		job.Error = jobErr.Error()
	} else {
		job.Status = jobs.StatusCompleted
		job.Result = result
	}

	// the job deadline may already have passed; the final state must still be written
	putCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finishTimeout)
	defer cancel()

	if err := s.store.Put(putCtx, job.ID, job); err != nil {
		s.logger.Error().Err(err).Str("job_id", job.ID).Str("status", job.Status.String()).Msg("failed to store job result")
		return
	}
	s.logger.Info().Str("job_id", job.ID).Str("status", job.Status.String()).Msg("regeneration job finished")
}

// Regenerate rewrites content with the generator when available, else with the rules
func (s *Service) Regenerate(ctx context.Context, req RegenerationRequest) analyzer.Regeneration {
	if s.generator != nil {
		result, err := s.regenerateWithAI(ctx, req)
		if err == nil {
			return result
		}
		s.logger.Warn().Err(err).Msg("ai regeneration failed, using rules")
	}
	return analyzer.RegenerateContentWithRules(req.Content, req.Keywords)
}

func (s *Service) regenerateWithAI(ctx context.Context, req RegenerationRequest) (analyzer.Regeneration, error) {
	response, err := s.generator.Generate(ctx, llm.BuildRegenerationPrompt(req.Content, req.Keywords, req.Tone))
	if err != nil {
		return analyzer.Regeneration{}, err
	}

	rewritten := strings.TrimSpace(llm.StripCodeFence(response))
	if rewritten == "" {
		return analyzer.Regeneration{}, ErrEmptyRegeneration
	}

	return analyzer.Regeneration{
		Content:     rewritten,
		Before:      analyzer.AnalyzeContent(req.Content, req.Keywords),
		After:       analyzer.AnalyzeContent(rewritten, req.Keywords),
		GeneratedBy: analyzer.GeneratedByAI,
	}, nil
}

// Job returns the stored state of a regeneration job
func (s *Service) Job(ctx context.Context, id string) (jobs.Job, bool, error) {
	return s.store.Get(ctx, id)
}
