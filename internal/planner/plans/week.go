package plans

import "time"

const day = 24 * time.Hour

// ResolveWeek maps now onto the 1-based week of a plan started at startedAt,
// clamped to [1, weeksDuration]. A plan that has not started is in week 1.
func ResolveWeek(startedAt *time.Time, weeksDuration int, now time.Time) int {
	if weeksDuration < 1 {
		weeksDuration = 1
	}
	if startedAt == nil || now.Before(*startedAt) {
		return 1
	}

	daysSinceStart := int(now.Sub(*startedAt) / day)
	week := daysSinceStart/7 + 1

	return max(1, min(week, weeksDuration))
}
