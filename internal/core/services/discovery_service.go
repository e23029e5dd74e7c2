package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/habitnotes/habitnotes/internal/core/domain"
)

// DiscoveryService extracts the set of habit names ever recorded inside a
// window of daily notes.
type DiscoveryService struct {
	store domain.DocumentStore
	cfg   domain.TrackerConfig
}

func NewDiscoveryService(store domain.DocumentStore, cfg domain.TrackerConfig) *DiscoveryService {
	return &DiscoveryService{
		store: store,
		cfg:   cfg,
	}
}

// AutoDetectHabits walks windowDays calendar days ending at baseDate
// (inclusive, most recent first) and collects every checkbox line's name in
// first-seen order. Names are deduplicated by exact string equality, so the
// same habit spelled differently across notes counts as two habits.
func (s *DiscoveryService) AutoDetectHabits(ctx context.Context, windowDays int, baseDate time.Time) ([]string, error) {
	if windowDays <= 0 {
		windowDays = domain.TimelineWindowDays
	}

	seen := make(map[string]bool)
	var names []string

	for i := 0; i < windowDays; i++ {
		date := s.cfg.FormatDate(baseDate.AddDate(0, 0, -i))
		path := s.cfg.NotePath(date)

		exists, err := s.store.Exists(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("discovery service: checking note %s: %w", path, err)
		}
		if !exists {
			continue
		}

		text, err := s.store.Read(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("discovery service: reading note %s: %w", path, err)
		}

		for _, name := range domain.SectionNames(text) {
			if strings.TrimSpace(name) == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}

	return names, nil
}
