package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/habitnotes/habitnotes/internal/core/domain"
)

// RecordService reads and writes single habit records inside daily notes.
type RecordService struct {
	store domain.DocumentStore
	cfg   domain.TrackerConfig
}

func NewRecordService(store domain.DocumentStore, cfg domain.TrackerConfig) *RecordService {
	return &RecordService{
		store: store,
		cfg:   cfg,
	}
}

// GetHabitStatus returns the completion record for one habit on one date.
// A missing document or a missing line both read as not completed.
func (s *RecordService) GetHabitStatus(ctx context.Context, name, date string) (domain.HabitCompletion, error) {
	rec := domain.HabitCompletion{Date: date}

	path := s.cfg.NotePath(date)
	exists, err := s.store.Exists(ctx, path)
	if err != nil {
		return rec, fmt.Errorf("record service: checking note %s: %w", path, err)
	}
	if !exists {
		return rec, nil
	}

	text, err := s.store.Read(ctx, path)
	if err != nil {
		return rec, fmt.Errorf("record service: reading note %s: %w", path, err)
	}

	rec, _ = domain.GetRecord(text, name, date)
	rec.Date = date
	return rec, nil
}

// SetHabitStatus writes one habit's state for a date, creating the note and
// its folder when needed. An existing line is replaced in place; the value
// annotation is written only for a non-empty value.
func (s *RecordService) SetHabitStatus(ctx context.Context, name string, completed bool, date, value string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrHabitNameEmpty
	}

	path := s.cfg.NotePath(date)
	text, err := s.ensureNote(ctx, path)
	if err != nil {
		return err
	}

	updated := domain.UpsertRecordLine(text, name, completed, value)
	if updated == text {
		return nil
	}

	if err := s.store.Modify(ctx, path, updated); err != nil {
		return fmt.Errorf("record service: writing note %s: %w", path, err)
	}
	return nil
}

// EnsureRecords inserts an unchecked line for every listed habit that is
// missing from the date's section, creating note and section as needed.
// Calling it twice with the same list leaves the note byte-identical.
func (s *RecordService) EnsureRecords(ctx context.Context, names []string, date string) error {
	names = domain.FilterHabitNames(names)
	if len(names) == 0 {
		return nil
	}

	path := s.cfg.NotePath(date)
	text, err := s.ensureNote(ctx, path)
	if err != nil {
		return err
	}

	updated, changed := domain.EnsureRecordLines(text, names)
	if !changed {
		return nil
	}

	if err := s.store.Modify(ctx, path, updated); err != nil {
		return fmt.Errorf("record service: writing note %s: %w", path, err)
	}
	return nil
}

// ensureNote returns the note's current content, creating an empty note
// (and the notes folder) when it does not exist yet.
func (s *RecordService) ensureNote(ctx context.Context, path string) (string, error) {
	exists, err := s.store.Exists(ctx, path)
	if err != nil {
		return "", fmt.Errorf("record service: checking note %s: %w", path, err)
	}
	if exists {
		text, err := s.store.Read(ctx, path)
		if err != nil {
			return "", fmt.Errorf("record service: reading note %s: %w", path, err)
		}
		return text, nil
	}

	if s.cfg.DailyNotesFolder != "" {
		if err := s.store.CreateFolder(ctx, s.cfg.DailyNotesFolder); err != nil {
			return "", fmt.Errorf("record service: creating notes folder: %w", err)
		}
	}
	if err := s.store.Create(ctx, path, ""); err != nil {
		return "", fmt.Errorf("record service: creating note %s: %w", path, err)
	}
	return "", nil
}
