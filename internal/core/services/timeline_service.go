package services

import (
	"context"
	"time"

	"github.com/habitnotes/habitnotes/internal/core/domain"
)

// TimelineService assembles per-habit completion timelines over a fixed
// 30-day window and reduces them into streak and rate metrics. Snapshots
// are rebuilt from the note text on every call and never cached.
type TimelineService struct {
	records   *RecordService
	discovery *DiscoveryService
	cfg       domain.TrackerConfig
}

func NewTimelineService(records *RecordService, discovery *DiscoveryService, cfg domain.TrackerConfig) *TimelineService {
	return &TimelineService{
		records:   records,
		discovery: discovery,
		cfg:       cfg,
	}
}

// effectiveHabits resolves the habit-name list: the explicit configured
// list, or discovery over the window ending at baseDate when auto-detect is
// on. Empty names are filtered either way.
func (s *TimelineService) effectiveHabits(ctx context.Context, baseDate time.Time) ([]string, error) {
	if s.cfg.AutoDetectHabits {
		return s.discovery.AutoDetectHabits(ctx, domain.TimelineWindowDays, baseDate)
	}
	return domain.FilterHabitNames(s.cfg.Habits), nil
}

// EnsureHabitsForDate makes sure the date's note carries a checkbox line for
// every known habit, so the checklist is complete before first interaction.
func (s *TimelineService) EnsureHabitsForDate(ctx context.Context, date time.Time) error {
	names, err := s.effectiveHabits(ctx, date)
	if err != nil {
		return err
	}
	return s.records.EnsureRecords(ctx, names, s.cfg.FormatDate(date))
}

// GetAllHabitData builds a fresh snapshot for baseDate: one timeline per
// habit covering baseDate and the 29 days before it, oldest first. The only
// write performed is the single ensure call for baseDate; the per-day reads
// never mutate storage. Costs up to 30 x |habits| document reads, so callers
// should not invoke it in tight loops.
func (s *TimelineService) GetAllHabitData(ctx context.Context, baseDate time.Time) ([]*domain.HabitTimeline, error) {
	names, err := s.effectiveHabits(ctx, baseDate)
	if err != nil {
		return nil, err
	}

	if err := s.records.EnsureRecords(ctx, names, s.cfg.FormatDate(baseDate)); err != nil {
		return nil, err
	}

	// streakMode "lenient" is accepted in configuration but currently
	// produces the same results as "strict".
	timelines := make([]*domain.HabitTimeline, 0, len(names))
	for _, name := range names {
		completions := make([]domain.HabitCompletion, 0, domain.TimelineWindowDays)
		for i := domain.TimelineWindowDays - 1; i >= 0; i-- {
			date := s.cfg.FormatDate(baseDate.AddDate(0, 0, -i))
			rec, err := s.records.GetHabitStatus(ctx, name, date)
			if err != nil {
				return nil, err
			}
			completions = append(completions, rec)
		}

		stats := domain.CalculateStreakStats(completions, s.cfg.ActiveDays(name), s.cfg.Layout())

		timelines = append(timelines, &domain.HabitTimeline{
			Name:               name,
			Completions:        completions,
			CurrentStreak:      stats.CurrentStreak,
			LongestStreak:      stats.LongestStreak,
			CompletionRate:     stats.CompletionRate,
			TotalDaysCompleted: stats.TotalDaysCompleted,
			TotalActiveDays:    stats.TotalActiveDays,
			IsValueBased:       s.cfg.IsValueBased(name),
		})
	}

	return timelines, nil
}
