package generation

import (
	"context"

	"github.com/2beens/fitplan/internal/planner/goals"
	"github.com/2beens/fitplan/internal/planner/history"
)

//go:generate mockgen -source=$GOFILE -destination=proposer_mocks_test.go -package=generation_test

const (
	defaultWorkoutType = "General"
	defaultSets        = 3
	defaultReps        = 10
)

// Proposer produces the exercise content of a plan. The generator owns the
// day grid and everything persisted, the proposal is only raw material.
type Proposer interface {
	ProposeSessions(ctx context.Context, req ProposalRequest) (*Proposal, error)
}

type ProposalRequest struct {
	Goal        *goals.Goal
	Constraints Constraints
	Stats       map[string]history.ExerciseStat
	// Slots are the weekdays holding a workout, the same for every week.
	Slots []int
}

type Proposal struct {
	WeeklySchedule      []ProposedSession `json:"weeklySchedule"`
	Rationale           string            `json:"rationale"`
	ProgressionStrategy string            `json:"progressionStrategy"`
	KeyConsiderations   []string          `json:"keyConsiderations"`
}

type ProposedSession struct {
	Week        int                `json:"week"`
	Day         int                `json:"day"`
	DayName     string             `json:"dayName,omitempty"`
	Name        string             `json:"name,omitempty"`
	WorkoutType string             `json:"workoutType"`
	Exercises   []ProposedExercise `json:"exercises"`
	Duration    int                `json:"duration"`
	Intensity   string             `json:"intensity"`
	Notes       string             `json:"notes,omitempty"`
}

type ProposedExercise struct {
	Name        string   `json:"name"`
	Sets        int      `json:"sets"`
	Reps        int      `json:"reps"`
	Weight      *float64 `json:"weight,omitempty"`
	WeightUnit  string   `json:"weightUnit,omitempty"`
	RestSeconds *int     `json:"restSeconds,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}
