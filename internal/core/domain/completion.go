package domain

import (
	"errors"
	"strings"
)

var (
	ErrHabitNameEmpty  = errors.New("habit name cannot be empty")
	ErrHabitNameExists = errors.New("a habit with that name already exists")
	ErrInvalidDate     = errors.New("date does not match the configured format")
)

// HabitCompletion is one habit's record for one calendar date. Value is the
// raw annotation text; empty means no annotation was present. The storage
// format cannot distinguish "never recorded" from "explicitly unchecked",
// both read back as not completed.
type HabitCompletion struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Value     string `json:"value,omitempty"`
}

// HabitTimeline is the derived per-habit view over a fixed date window.
// It is rebuilt from the note text on every request and never persisted.
type HabitTimeline struct {
	Name               string            `json:"name"`
	Completions        []HabitCompletion `json:"completions"`
	CurrentStreak      int               `json:"current_streak"`
	LongestStreak      int               `json:"longest_streak"`
	CompletionRate     float64           `json:"completion_rate"`
	TotalDaysCompleted int               `json:"total_days_completed"`
	TotalActiveDays    int               `json:"total_active_days"`
	IsValueBased       bool              `json:"is_value_based"`
}

// FilterHabitNames drops empty and whitespace-only names, preserving order.
func FilterHabitNames(names []string) []string {
	filtered := make([]string, 0, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		filtered = append(filtered, n)
	}
	return filtered
}
