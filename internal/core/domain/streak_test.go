package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/habitnotes/habitnotes/internal/core/domain"
)

// series builds a chronological completion slice ending at end, one element
// per pattern rune: 'x' completed, '_' incomplete.
func series(end time.Time, pattern string) []domain.HabitCompletion {
	completions := make([]domain.HabitCompletion, 0, len(pattern))
	start := end.AddDate(0, 0, -(len(pattern) - 1))
	for i, r := range pattern {
		completions = append(completions, domain.HabitCompletion{
			Date:      start.AddDate(0, 0, i).Format(domain.DefaultDateFormat),
			Completed: r == 'x',
		})
	}
	return completions
}

func weekdaySet(days ...int) map[int]bool {
	set := make(map[int]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}

func TestCalculateStreakStats(t *testing.T) {
	// 2024-01-07 is a Sunday.
	sunday := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	weekdays := weekdaySet(1, 2, 3, 4, 5)

	tests := []struct {
		name        string
		pattern     string
		end         time.Time
		activeDays  map[int]bool
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "Empty series",
			pattern:     "",
			end:         sunday,
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name:        "Strict run with a gap, all days active",
			pattern:     "xx_xxx",
			end:         sunday,
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "Grace: incomplete today does not zero the streak",
			pattern:     "xxx_",
			end:         sunday,
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "Grace is only one day deep",
			pattern:     "xx__",
			end:         sunday,
			wantCurrent: 0,
			wantLongest: 2,
		},
		{
			name:        "Single incomplete day gets no grace",
			pattern:     "_",
			end:         sunday,
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name:        "Single completed day",
			pattern:     "x",
			end:         sunday,
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "All completed",
			pattern:     "xxxxx",
			end:         sunday,
			wantCurrent: 5,
			wantLongest: 5,
		},
		{
			// Mon..Fri completed, Sat+Sun incomplete but inactive: the
			// weekend neither breaks nor extends the weekday streak.
			name:        "Inactive weekend days are skipped, not broken on",
			pattern:     "xxxxx__",
			end:         sunday,
			activeDays:  weekdays,
			wantCurrent: 5,
			wantLongest: 5,
		},
		{
			// Fri incomplete, weekend inactive: the grace window skips the
			// unfinished Friday and the streak survives at Mon..Thu.
			name:        "Grace applies to the most recent active day across an inactive tail",
			pattern:     "xxxx___",
			end:         sunday,
			activeDays:  weekdays,
			wantCurrent: 4,
			wantLongest: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := domain.CalculateStreakStats(series(tt.end, tt.pattern), tt.activeDays, domain.DefaultDateFormat)

			assert.Equal(t, tt.wantCurrent, stats.CurrentStreak, "current streak")
			assert.Equal(t, tt.wantLongest, stats.LongestStreak, "longest streak")
		})
	}
}

func TestCalculateStreakStats_RateAndTotals(t *testing.T) {
	sunday := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

	t.Run("Active-day filtering over a 30-day window", func(t *testing.T) {
		completions := series(sunday, strings.Repeat("x", 30))
		weekdays := weekdaySet(1, 2, 3, 4, 5)

		stats := domain.CalculateStreakStats(completions, weekdays, domain.DefaultDateFormat)

		// 2023-12-09 through 2024-01-07 contains five full weekends, so 20
		// of the 30 days are weekdays.
		assert.Equal(t, 20, stats.TotalActiveDays)
		assert.Equal(t, 20, stats.TotalDaysCompleted)
		assert.Equal(t, 100.0, stats.CompletionRate)
	})

	t.Run("Rate ignores incomplete inactive days", func(t *testing.T) {
		// Mon..Fri completed, weekend untouched.
		completions := series(sunday, "xxxxx__")
		weekdays := weekdaySet(1, 2, 3, 4, 5)

		stats := domain.CalculateStreakStats(completions, weekdays, domain.DefaultDateFormat)

		assert.Equal(t, 5, stats.TotalActiveDays)
		assert.Equal(t, 5, stats.TotalDaysCompleted)
		assert.Equal(t, 100.0, stats.CompletionRate)
	})

	t.Run("Edge Case: zero active days yields rate 0, not NaN", func(t *testing.T) {
		// Saturday-only habit over a Monday..Friday window.
		friday := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
		completions := series(friday, "xxxxx")
		saturdayOnly := weekdaySet(6)

		stats := domain.CalculateStreakStats(completions, saturdayOnly, domain.DefaultDateFormat)

		assert.Equal(t, 0, stats.TotalActiveDays)
		assert.Equal(t, 0, stats.TotalDaysCompleted)
		assert.Equal(t, 0.0, stats.CompletionRate)
		assert.Equal(t, 0, stats.CurrentStreak)
		assert.Equal(t, 0, stats.LongestStreak)
	})

	t.Run("Empty active set means every day is active", func(t *testing.T) {
		completions := series(sunday, "x_x")

		stats := domain.CalculateStreakStats(completions, nil, domain.DefaultDateFormat)

		assert.Equal(t, 3, stats.TotalActiveDays)
		assert.Equal(t, 2, stats.TotalDaysCompleted)
		assert.InDelta(t, 66.66, stats.CompletionRate, 0.1)
	})
}
