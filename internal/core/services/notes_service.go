package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/habitnotes/habitnotes/internal/core/domain"
)

// NotesService covers the note-wide utilities: bulk habit rename and the
// list of existing daily-note dates.
type NotesService struct {
	store     domain.DocumentStore
	discovery *DiscoveryService
	cfg       domain.TrackerConfig
}

func NewNotesService(store domain.DocumentStore, discovery *DiscoveryService, cfg domain.TrackerConfig) *NotesService {
	return &NotesService{
		store:     store,
		discovery: discovery,
		cfg:       cfg,
	}
}

// knownHabits mirrors the timeline's habit-list resolution so the rename
// duplicate check runs against the same set of names the UI shows.
func (s *NotesService) knownHabits(ctx context.Context) ([]string, error) {
	if s.cfg.AutoDetectHabits {
		return s.discovery.AutoDetectHabits(ctx, domain.TimelineWindowDays, time.Now())
	}
	return domain.FilterHabitNames(s.cfg.Habits), nil
}

// RenameHabit rewrites oldName to newName in every daily note that carries a
// line for it, preserving checked state and value annotations verbatim, and
// returns the number of documents modified. A duplicate target name is
// rejected before any write.
func (s *NotesService) RenameHabit(ctx context.Context, oldName, newName string) (int, error) {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if oldName == "" || newName == "" {
		return 0, domain.ErrHabitNameEmpty
	}

	known, err := s.knownHabits(ctx)
	if err != nil {
		return 0, err
	}
	for _, name := range known {
		if strings.EqualFold(name, newName) && !strings.EqualFold(name, oldName) {
			return 0, domain.ErrHabitNameExists
		}
	}

	files, err := s.store.ListAllFiles(ctx)
	if err != nil {
		return 0, fmt.Errorf("notes service: listing notes: %w", err)
	}

	modified := 0
	for _, f := range files {
		if _, err := s.cfg.ParseDate(f.Basename); err != nil {
			continue
		}

		text, err := s.store.Read(ctx, f.Path)
		if err != nil {
			return modified, fmt.Errorf("notes service: reading note %s: %w", f.Path, err)
		}

		updated, changed := domain.ReplaceRecordName(text, oldName, newName)
		if !changed {
			continue
		}

		if err := s.store.Modify(ctx, f.Path, updated); err != nil {
			return modified, fmt.Errorf("notes service: writing note %s: %w", f.Path, err)
		}
		modified++
	}

	return modified, nil
}

// GetExistingDailyNoteDates returns every stored date whose note basename
// parses under the configured format, most recent first. Files with
// malformed names are silently excluded.
func (s *NotesService) GetExistingDailyNoteDates(ctx context.Context) ([]string, error) {
	files, err := s.store.ListAllFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("notes service: listing notes: %w", err)
	}

	type noteDate struct {
		raw string
		t   time.Time
	}

	var dates []noteDate
	for _, f := range files {
		t, err := s.cfg.ParseDate(f.Basename)
		if err != nil {
			continue
		}
		dates = append(dates, noteDate{raw: f.Basename, t: t})
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].t.After(dates[j].t)
	})

	result := make([]string, 0, len(dates))
	for _, d := range dates {
		result = append(result, d.raw)
	}
	return result, nil
}
