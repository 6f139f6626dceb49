package history

import (
	"time"

	"github.com/google/uuid"
)

// Workout is a logged workout, as read from the workout log tables.
type Workout struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"userId"`
	Name            string     `json:"name"`
	Date            time.Time  `json:"date"`
	DurationMinutes int        `json:"durationMinutes"`
	Exercises       []Exercise `json:"exercises"`
}

type Exercise struct {
	Name       string   `json:"name"`
	Sets       *int     `json:"sets,omitempty"`
	Reps       *int     `json:"reps,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`
	WeightUnit string   `json:"weightUnit,omitempty"`
}

// Totals are the aggregate counters used by the goal sync strategies.
type Totals struct {
	Workouts   int `json:"workouts"`
	UniqueDays int `json:"uniqueDays"`
	Minutes    int `json:"minutes"`
}
