package goals

import (
	"math"
	"time"
)

// GoalDirection derives the goal direction from its initial and target values.
// A goal with target == initial is treated as increasing.
func GoalDirection(initial, target float64) Direction {
	if target < initial {
		return DirectionDecreasing
	}
	return DirectionIncreasing
}

// CalculateProgress returns the goal completion percentage in [0, 100].
// Moving away from the target (regression) yields 0.
func CalculateProgress(initial, current, target float64) float64 {
	if current == target || initial == target {
		return 100
	}

	var progress float64
	if GoalDirection(initial, target) == DirectionIncreasing {
		if current < initial {
			return 0
		}
		progress = (current - initial) / (target - initial) * 100
	} else {
		if current > initial {
			return 0
		}
		progress = (initial - current) / (initial - target) * 100
	}

	return math.Min(100, progress)
}

func IsAchieved(initial, current, target float64) bool {
	if GoalDirection(initial, target) == DirectionIncreasing {
		return current >= target
	}
	return current <= target
}

// CalculateStatus mirrors the goal list badges: completed when achieved,
// behind when the target date is already gone, active otherwise.
func CalculateStatus(initial, current, target float64, targetDate *time.Time, now time.Time) Status {
	if IsAchieved(initial, current, target) {
		return StatusCompleted
	}
	if targetDate != nil && now.After(*targetDate) {
		return StatusBehind
	}
	return StatusActive
}
