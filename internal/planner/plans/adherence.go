package plans

import "math"

// AdherenceStats counts sessions by status. The status counters include rest
// sessions, the rate does not:
//
//	AdherenceRate = CompletedWorkouts / (TotalSessions - RestSessions) * 100
//
// so CompletedSessions may exceed CompletedWorkouts when rest days were marked done.
type AdherenceStats struct {
	TotalSessions     int     `json:"totalSessions"`
	CompletedSessions int     `json:"completedSessions"`
	CompletedWorkouts int     `json:"completedWorkouts"`
	SkippedSessions   int     `json:"skippedSessions"`
	ScheduledSessions int     `json:"scheduledSessions"`
	RestSessions      int     `json:"restSessions"`
	AdherenceRate     float64 `json:"adherenceRate"`
	CurrentWeek       int     `json:"currentWeek,omitempty"`
}

// CalculateAdherence derives plan stats from its non-deleted sessions.
// Rest sessions count in the totals but not in the adherence rate, on either side
// of the fraction, so the rate never exceeds 100.
func CalculateAdherence(sessions []Session) AdherenceStats {
	var stats AdherenceStats
	for i := range sessions {
		stats.TotalSessions++
		if sessions[i].IsRest() {
			stats.RestSessions++
		} else if sessions[i].Status == SessionStatusCompleted {
			stats.CompletedWorkouts++
		}
		switch sessions[i].Status {
		case SessionStatusCompleted:
			stats.CompletedSessions++
		case SessionStatusSkipped:
			stats.SkippedSessions++
		case SessionStatusScheduled:
			stats.ScheduledSessions++
		}
	}

	denominator := stats.TotalSessions - stats.RestSessions
	if denominator <= 0 {
		return stats
	}

	rate := float64(stats.CompletedWorkouts) / float64(denominator) * 100
	stats.AdherenceRate = math.Round(rate*10) / 10
	return stats
}
