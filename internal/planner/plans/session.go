package plans

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const RestWorkoutType = "rest"

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusSkipped   SessionStatus = "skipped"
)

var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionStatusScheduled: {SessionStatusCompleted, SessionStatusSkipped},
	SessionStatusCompleted: {},
	SessionStatusSkipped:   {},
}

func (s SessionStatus) IsValid() bool {
	_, ok := sessionTransitions[s]
	return ok
}

func (s SessionStatus) CanTransition(to SessionStatus) bool {
	return slices.Contains(sessionTransitions[s], to)
}

type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// ParseIntensity falls back to medium for anything unknown.
func ParseIntensity(s string) Intensity {
	switch Intensity(strings.ToLower(strings.TrimSpace(s))) {
	case IntensityLow:
		return IntensityLow
	case IntensityHigh:
		return IntensityHigh
	default:
		return IntensityMedium
	}
}

// Exercise is one prescribed exercise of a session.
type Exercise struct {
	Name        string   `json:"name"`
	Sets        int      `json:"sets"`
	Reps        int      `json:"reps"`
	Weight      *float64 `json:"weight,omitempty"`
	WeightUnit  string   `json:"weightUnit,omitempty"`
	RestSeconds *int     `json:"restSeconds,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

type Session struct {
	ID                 uuid.UUID     `json:"id"`
	PlanID             uuid.UUID     `json:"planId"`
	WeekNumber         int           `json:"weekNumber"`
	DayOfWeek          int           `json:"dayOfWeek"`
	DayName            string        `json:"dayName"`
	SessionOrder       int           `json:"sessionOrder"`
	WorkoutName        string        `json:"workoutName"`
	WorkoutType        string        `json:"workoutType"`
	Exercises          []Exercise    `json:"exercises"`
	EstimatedDuration  int           `json:"estimatedDuration"`
	Intensity          Intensity     `json:"intensity"`
	Status             SessionStatus `json:"status"`
	CompletedAt        *time.Time    `json:"completedAt,omitempty"`
	CompletedWorkoutID *uuid.UUID    `json:"completedWorkoutId,omitempty"`
	Notes              string        `json:"notes,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

func (s *Session) IsRest() bool {
	return strings.EqualFold(strings.TrimSpace(s.WorkoutType), RestWorkoutType)
}

// SessionPatch is a reschedule/edit of a scheduled session; nil fields are left unchanged.
type SessionPatch struct {
	WeekNumber  *int    `json:"weekNumber"`
	DayOfWeek   *int    `json:"dayOfWeek"`
	WorkoutName *string `json:"workoutName"`
	Notes       *string `json:"notes"`
}

func (p SessionPatch) IsEmpty() bool {
	return p.WeekNumber == nil && p.DayOfWeek == nil && p.WorkoutName == nil && p.Notes == nil
}

// DayName returns the english name of a 0=Sunday based weekday.
func DayName(dayOfWeek int) string {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return ""
	}
	return time.Weekday(dayOfWeek).String()
}
