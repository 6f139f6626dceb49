package plans

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// PlanStatus can be one of:
//   - draft
//   - active
//   - completed
//   - archived
type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "draft"
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusArchived  PlanStatus = "archived"
)

// completed and archived are terminal
var planTransitions = map[PlanStatus][]PlanStatus{
	PlanStatusDraft:     {PlanStatusActive, PlanStatusArchived},
	PlanStatusActive:    {PlanStatusCompleted, PlanStatusArchived},
	PlanStatusCompleted: {},
	PlanStatusArchived:  {},
}

func (s PlanStatus) IsValid() bool {
	_, ok := planTransitions[s]
	return ok
}

func (s PlanStatus) CanTransition(to PlanStatus) bool {
	return slices.Contains(planTransitions[s], to)
}

// IsOpen reports whether the plan still counts against the one open plan per goal rule.
func (s PlanStatus) IsOpen() bool {
	return s == PlanStatusDraft || s == PlanStatusActive
}

type Plan struct {
	ID                  uuid.UUID  `json:"id"`
	UserID              uuid.UUID  `json:"userId"`
	GoalID              uuid.UUID  `json:"goalId"`
	Name                string     `json:"name"`
	Description         string     `json:"description,omitempty"`
	WeeksDuration       int        `json:"weeksDuration"`
	WorkoutsPerWeek     int        `json:"workoutsPerWeek"`
	AvgWorkoutDuration  int        `json:"avgWorkoutDuration"`
	Status              PlanStatus `json:"status"`
	StartedAt           *time.Time `json:"startedAt,omitempty"`
	CompletedAt         *time.Time `json:"completedAt,omitempty"`
	Rationale           string     `json:"rationale,omitempty"`
	ProgressionStrategy string     `json:"progressionStrategy,omitempty"`
	KeyConsiderations   []string   `json:"keyConsiderations,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

type PlanWithSessions struct {
	*Plan
	CurrentWeek int       `json:"currentWeek"`
	Sessions    []Session `json:"sessions"`
}

// PlanPatch holds the user editable plan fields; nil fields are left unchanged.
type PlanPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
