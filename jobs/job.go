// Package jobs tracks asynchronous content regeneration jobs behind a pluggable store.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/seo-boostpro/backend/analyzer"
)

// Status is the lifecycle state of a job: processing, then completed or failed
type Status int

const (
	StatusProcessing Status = iota + 1
	StatusCompleted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusProcessing:
		return "processing"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Terminal reports whether no further transitions are expected
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case StatusProcessing, StatusCompleted, StatusFailed:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("invalid job status %d", int(s))
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "processing":
		*s = StatusProcessing
	case "completed":
		*s = StatusCompleted
	case "failed":
		*s = StatusFailed
	default:
		return fmt.Errorf("invalid job status %q", text)
	}
	return nil
}

// Job is the stored state of one regeneration request. Result is set only when completed,
// Error only when failed.
type Job struct {
	ID        string                 `json:"id"`
	Status    Status                 `json:"status"`
	Result    *analyzer.Regeneration `json:"result,omitempty"`
	Error     string                 `json:"error,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// Store persists job state. Get reports found=false for unknown or expired jobs.
type Store interface {
	Put(ctx context.Context, id string, job Job) error
	Get(ctx context.Context, id string) (Job, bool, error)
}
