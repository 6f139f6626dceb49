package generation

import (
	"slices"
)

const daysInWeek = 7

// AllocateDays picks the weekdays (0=Sunday..6=Saturday) that hold a workout,
// returned sorted. Valid preferred days are taken first, in the given order;
// the rest come from an even spread that starts on Monday:
//
//	slot_i = (1 + floor(i*7/n)) % 7
//
// For n <= 3 the spread never puts two workouts on consecutive days.
func AllocateDays(workoutsPerWeek int, preferredDays []int) []int {
	n := max(1, min(workoutsPerWeek, daysInWeek))

	slots := make([]int, 0, n)
	add := func(d int) {
		if len(slots) < n && d >= 0 && d < daysInWeek && !slices.Contains(slots, d) {
			slots = append(slots, d)
		}
	}

	for _, d := range preferredDays {
		add(d)
	}
	for i := 0; i < n; i++ {
		add((1 + i*daysInWeek/n) % daysInWeek)
	}
	// spread days taken by preferences leave gaps, fill from Monday on
	for i := 0; i < daysInWeek; i++ {
		add((1 + i) % daysInWeek)
	}

	slices.Sort(slots)
	return slots
}

// RestDays returns the weekdays not in slots, sorted.
func RestDays(slots []int) []int {
	var rest []int
	for d := 0; d < daysInWeek; d++ {
		if !slices.Contains(slots, d) {
			rest = append(rest, d)
		}
	}
	return rest
}
