package goals

import (
	"time"

	"github.com/google/uuid"
)

type Direction int

const (
	DirectionIncreasing Direction = iota
	DirectionDecreasing
)

func (d Direction) String() string {
	if d == DirectionDecreasing {
		return "decreasing"
	}
	return "increasing"
}

// Status can be one of:
//   - active
//   - behind (target date passed, goal not achieved)
//   - completed
type Status string

const (
	StatusActive    Status = "active"
	StatusBehind    Status = "behind"
	StatusCompleted Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusBehind, StatusCompleted:
		return true
	default:
		return false
	}
}

type Goal struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"userId"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Unit         string     `json:"unit"`
	InitialValue float64    `json:"initialValue"`
	CurrentValue float64    `json:"currentValue"`
	TargetValue  float64    `json:"targetValue"`
	TargetDate   *time.Time `json:"targetDate,omitempty"`
	Achieved     bool       `json:"achieved"`
	Status       Status     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (g *Goal) Direction() Direction {
	return GoalDirection(g.InitialValue, g.TargetValue)
}

func (g *Goal) Progress() float64 {
	return CalculateProgress(g.InitialValue, g.CurrentValue, g.TargetValue)
}

// WithProgress is the API representation of a goal.
type WithProgress struct {
	*Goal
	Progress  float64 `json:"progress"`
	Direction string  `json:"direction"`
}

func NewWithProgress(g *Goal) WithProgress {
	return WithProgress{
		Goal:      g,
		Progress:  g.Progress(),
		Direction: g.Direction().String(),
	}
}
