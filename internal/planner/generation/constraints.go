package generation

import (
	"slices"
	"strings"
	"time"

	"github.com/2beens/fitplan/internal/planner/perrors"

	"github.com/google/uuid"
)

const (
	MinWeeks           = 1
	MaxWeeks           = 12
	MinWorkoutsPerWeek = 3
	MaxWorkoutsPerWeek = 7
	MinAvgDuration     = 15
	MaxAvgDuration     = 180

	maxNameLength        = 200
	maxDescriptionLength = 2000
)

type Preferences struct {
	FitnessLevel string   `json:"fitnessLevel,omitempty"`
	FocusAreas   []string `json:"focusAreas,omitempty"`
	Equipment    []string `json:"equipment,omitempty"`
	GymAccess    *bool    `json:"gymAccess,omitempty"`
	// Constraints are free-form injuries or limitations.
	Constraints   string `json:"constraints,omitempty"`
	PreferredDays []int  `json:"preferredDays,omitempty"`
}

// Constraints is the plan generation request, stored verbatim on the job.
type Constraints struct {
	GoalID          uuid.UUID   `json:"goalId"`
	Name            string      `json:"name"`
	Description     string      `json:"description,omitempty"`
	WeeksCount      int         `json:"weeksCount"`
	WorkoutsPerWeek int         `json:"workoutsPerWeek"`
	AvgDuration     int         `json:"avgDuration"`
	Preferences     Preferences `json:"preferences"`
	StartDate       *time.Time  `json:"startDate,omitempty"`
	IncludeRestDays bool        `json:"includeRestDays,omitempty"`
}

// Validate checks every field and reports all violations at once.
// The start date may be today or later, compared by calendar day in its own location.
func (c *Constraints) Validate(now time.Time) error {
	verr := perrors.NewValidationError()

	if c.GoalID == uuid.Nil {
		verr.Add("goalId", "is required")
	}

	name := strings.TrimSpace(c.Name)
	switch {
	case name == "":
		verr.Add("name", "is required")
	case len(name) > maxNameLength:
		verr.Add("name", "must be at most 200 characters")
	}
	if len(c.Description) > maxDescriptionLength {
		verr.Add("description", "must be at most 2000 characters")
	}

	if c.WeeksCount < MinWeeks || c.WeeksCount > MaxWeeks {
		verr.Add("weeksCount", "must be between 1 and 12")
	}
	if c.WorkoutsPerWeek < MinWorkoutsPerWeek || c.WorkoutsPerWeek > MaxWorkoutsPerWeek {
		verr.Add("workoutsPerWeek", "must be between 3 and 7")
	}
	if c.AvgDuration < MinAvgDuration || c.AvgDuration > MaxAvgDuration {
		verr.Add("avgDuration", "must be between 15 and 180 minutes")
	}

	for _, d := range c.Preferences.PreferredDays {
		if d < 0 || d > 6 {
			verr.Add("preferences.preferredDays", "days must be between 0 (Sunday) and 6 (Saturday)")
			break
		}
	}

	if c.StartDate != nil {
		start := c.StartDate
		today := now.In(start.Location())
		startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		todayDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, start.Location())
		if startDay.Before(todayDay) {
			verr.Add("startDate", "must not be in the past")
		}
	}

	return verr.OrNil()
}

// Normalize trims the free text fields and dedupes preferred days. Days
// outside 0..6 are dropped, so call it after Validate.
func (c *Constraints) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	c.Preferences.FitnessLevel = strings.ToLower(strings.TrimSpace(c.Preferences.FitnessLevel))

	var days []int
	for _, d := range c.Preferences.PreferredDays {
		if d >= 0 && d <= 6 && !slices.Contains(days, d) {
			days = append(days, d)
		}
	}
	c.Preferences.PreferredDays = days
}
