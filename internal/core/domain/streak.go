package domain

import "time"

// StreakStats holds the metrics derived from one habit's completion series.
type StreakStats struct {
	CurrentStreak      int
	LongestStreak      int
	CompletionRate     float64
	TotalDaysCompleted int
	TotalActiveDays    int
}

// isActiveDate reports whether the date falls on one of the habit's active
// weekdays. A nil or empty set means every day is active; a date that does
// not parse under the layout is counted as active rather than dropped.
func isActiveDate(date, layout string, activeDays map[int]bool) bool {
	if len(activeDays) == 0 {
		return true
	}
	t, err := time.Parse(layout, date)
	if err != nil {
		return true
	}
	return activeDays[int(t.Weekday())]
}

// CalculateStreakStats reduces a chronological (oldest-first) completion
// series into streaks, totals and a completion rate. Inactive days are
// skipped entirely: they neither extend nor break a streak and are excluded
// from the rate denominator.
func CalculateStreakStats(completions []HabitCompletion, activeDays map[int]bool, layout string) StreakStats {
	var stats StreakStats
	if len(completions) == 0 {
		return stats
	}

	active := func(i int) bool {
		return isActiveDate(completions[i].Date, layout, activeDays)
	}

	// Longest streak: scan from the most recent day backward, resetting on
	// every incomplete active day.
	run := 0
	for i := len(completions) - 1; i >= 0; i-- {
		if !active(i) {
			continue
		}
		if !completions[i].Completed {
			run = 0
			continue
		}
		run++
		if run > stats.LongestStreak {
			stats.LongestStreak = run
		}
	}

	// Current streak with a one-day grace window: an unfinished most recent
	// active day is skipped once, so an incomplete "today" does not zero an
	// ongoing streak. A single-day series gets no grace.
	i := len(completions) - 1
	for i >= 0 && !active(i) {
		i--
	}
	if i >= 0 && !completions[i].Completed {
		if len(completions) == 1 {
			i = -1
		} else {
			i--
		}
	}
	for ; i >= 0; i-- {
		if !active(i) {
			continue
		}
		if !completions[i].Completed {
			break
		}
		stats.CurrentStreak++
	}

	for idx, c := range completions {
		if !active(idx) {
			continue
		}
		stats.TotalActiveDays++
		if c.Completed {
			stats.TotalDaysCompleted++
		}
	}
	if stats.TotalActiveDays > 0 {
		stats.CompletionRate = float64(stats.TotalDaysCompleted) / float64(stats.TotalActiveDays) * 100
	}

	return stats
}
