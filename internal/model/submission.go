package model

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus tracks the lifecycle of a processing run
type SubmissionStatus string

const (
	StatusPending    SubmissionStatus = "pending"
	StatusProcessing SubmissionStatus = "processing"
	StatusCompleted  SubmissionStatus = "completed"
	StatusFailed     SubmissionStatus = "failed"
)

// Submission is a source document moving through the pipeline. The original
// text is never mutated after creation; every fragment offset points into it.
type Submission struct {
	ID                    string           `json:"submission_id"`
	OriginalText          string           `json:"original_text"`
	Status                SubmissionStatus `json:"status"`
	ErrorMessage          string           `json:"error_message,omitempty"`
	CreatedAt             time.Time        `json:"created_at"`
	ProcessingStartedAt   *time.Time       `json:"processing_started_at,omitempty"`
	ProcessingCompletedAt *time.Time       `json:"processing_completed_at,omitempty"`
}

// NewSubmission creates a pending submission for the given source text
func NewSubmission(text string) *Submission {
	return &Submission{
		ID:           uuid.NewString(),
		OriginalText: text,
		Status:       StatusPending,
		CreatedAt:    time.Now().UTC(),
	}
}

// StartProcessing marks the submission as processing
func (s *Submission) StartProcessing() {
	now := time.Now().UTC()
	s.Status = StatusProcessing
	s.ProcessingStartedAt = &now
}

// MarkCompleted marks the submission as completed
func (s *Submission) MarkCompleted() {
	now := time.Now().UTC()
	s.Status = StatusCompleted
	s.ProcessingCompletedAt = &now
}

// MarkFailed marks the submission as failed with an error message
func (s *Submission) MarkFailed(msg string) {
	now := time.Now().UTC()
	s.Status = StatusFailed
	s.ErrorMessage = msg
	s.ProcessingCompletedAt = &now
}
