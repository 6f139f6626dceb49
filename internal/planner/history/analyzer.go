package history

import (
	"strings"
)

const DefaultWeightUnit = "kg"

// ExerciseStat holds the per-exercise performance numbers used for plan personalization.
type ExerciseStat struct {
	Name       string  `json:"name"`
	MaxWeight  float64 `json:"maxWeight"`
	AvgWeight  float64 `json:"avgWeight"`
	WeightUnit string  `json:"weightUnit"`
	TotalSets  int     `json:"totalSets"`
	// MixedUnits is set when entries were logged in more than one unit.
	// Weights are aggregated as logged, so the numbers are unreliable then.
	MixedUnits bool `json:"mixedUnits,omitempty"`

	entries int
	sum     float64
}

// NormalizeName gives the key exercises are grouped under.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Analyze aggregates the given workouts into per-exercise stats, keyed by normalized name.
// Only entries with a strictly positive weight contribute; the unit recorded for an exercise
// is the one of its first contributing entry.
func Analyze(workouts []Workout) map[string]ExerciseStat {
	stats := make(map[string]*ExerciseStat)
	for _, w := range workouts {
		for _, ex := range w.Exercises {
			name := NormalizeName(ex.Name)
			if name == "" || ex.Weight == nil || *ex.Weight <= 0 {
				continue
			}

			unit := strings.ToLower(strings.TrimSpace(ex.WeightUnit))
			if unit == "" {
				unit = DefaultWeightUnit
			}

			sets := 1
			if ex.Sets != nil && *ex.Sets > 0 {
				sets = *ex.Sets
			}

			stat, ok := stats[name]
			if !ok {
				stat = &ExerciseStat{
					Name:       name,
					WeightUnit: unit,
				}
				stats[name] = stat
			}

			if unit != stat.WeightUnit {
				stat.MixedUnits = true
			}
			if *ex.Weight > stat.MaxWeight {
				stat.MaxWeight = *ex.Weight
			}
			stat.sum += *ex.Weight
			stat.entries++
			stat.TotalSets += sets
		}
	}

	result := make(map[string]ExerciseStat, len(stats))
	for name, stat := range stats {
		stat.AvgWeight = stat.sum / float64(stat.entries)
		result[name] = *stat
	}
	return result
}
