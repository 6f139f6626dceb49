package generation

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const maxErrorMessageRunes = 500

// JobStatus can be one of:
//   - pending
//   - processing
//   - completed
//   - failed
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// pending may also fail directly, when the reaper or the worker cannot even start it
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusPending:    {JobStatusProcessing, JobStatusFailed},
	JobStatusProcessing: {JobStatusCompleted, JobStatusFailed},
	JobStatusCompleted:  {},
	JobStatusFailed:     {},
}

func (s JobStatus) IsValid() bool {
	_, ok := jobTransitions[s]
	return ok
}

func (s JobStatus) CanTransition(to JobStatus) bool {
	return slices.Contains(jobTransitions[s], to)
}

func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

type Job struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	GoalID       uuid.UUID       `json:"goalId"`
	Status       JobStatus       `json:"status"`
	Request      json.RawMessage `json:"request,omitempty"`
	PlanID       *uuid.UUID      `json:"planId,omitempty"`
	ErrorMessage *string         `json:"errorMessage,omitempty"`
	Attempts     int             `json:"attempts"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	StartedAt    *time.Time      `json:"startedAt,omitempty"`
	FinishedAt   *time.Time      `json:"finishedAt,omitempty"`
}

// JobStatusView is what clients poll.
type JobStatusView struct {
	JobID        uuid.UUID  `json:"jobId"`
	Status       JobStatus  `json:"status"`
	PlanID       *uuid.UUID `json:"planId,omitempty"`
	ErrorMessage *string    `json:"errorMessage,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	FinishedAt   *time.Time `json:"finishedAt,omitempty"`
}

func (j *Job) StatusView() *JobStatusView {
	return &JobStatusView{
		JobID:        j.ID,
		Status:       j.Status,
		PlanID:       j.PlanID,
		ErrorMessage: j.ErrorMessage,
		CreatedAt:    j.CreatedAt,
		FinishedAt:   j.FinishedAt,
	}
}

// TruncateErrorMessage makes an error fit for display on a job: one line,
// at most 500 runes.
func TruncateErrorMessage(msg string) string {
	msg = strings.Join(strings.Fields(msg), " ")
	if utf8.RuneCountInString(msg) <= maxErrorMessageRunes {
		return msg
	}
	runes := []rune(msg)
	return string(runes[:maxErrorMessageRunes-3]) + "..."
}
