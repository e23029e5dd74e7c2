package domain

import (
	"strings"
	"time"
)

const (
	StreakModeStrict = "strict"
	// StreakModeLenient is accepted but currently behaves exactly like
	// strict. Kept as a switch so existing configurations keep loading.
	StreakModeLenient = "lenient"

	DefaultDateFormat  = "2006-01-02"
	TimelineWindowDays = 30
)

// TrackerConfig is supplied by the caller and treated as an immutable
// snapshot for the duration of one engine operation. Habit names in the
// maps and lists are matched case-insensitively.
type TrackerConfig struct {
	DailyNotesFolder string
	DateFormat       string
	Habits           []string
	AutoDetectHabits bool
	HabitsWithValues []string
	// HabitActiveDays maps a habit name to the weekday indices
	// (0=Sunday..6=Saturday) on which it is tracked. A missing or empty
	// entry means the habit is active every day.
	HabitActiveDays map[string][]int
	StreakMode      string
}

func (c TrackerConfig) Layout() string {
	if c.DateFormat == "" {
		return DefaultDateFormat
	}
	return c.DateFormat
}

// NotePath resolves the document path for a formatted date.
func (c TrackerConfig) NotePath(date string) string {
	if c.DailyNotesFolder == "" {
		return date + ".md"
	}
	return strings.TrimSuffix(c.DailyNotesFolder, "/") + "/" + date + ".md"
}

func (c TrackerConfig) FormatDate(t time.Time) string {
	return t.Format(c.Layout())
}

func (c TrackerConfig) ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(c.Layout(), s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func (c TrackerConfig) IsValueBased(name string) bool {
	for _, n := range c.HabitsWithValues {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// ActiveDays returns the weekday set for a habit, or nil when the habit is
// active every day. An empty configured list also means every day.
func (c TrackerConfig) ActiveDays(name string) map[int]bool {
	for key, days := range c.HabitActiveDays {
		if !strings.EqualFold(key, name) {
			continue
		}
		if len(days) == 0 {
			return nil
		}
		set := make(map[int]bool, len(days))
		for _, d := range days {
			set[d] = true
		}
		return set
	}
	return nil
}
