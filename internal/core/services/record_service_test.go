package services_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitnotes/habitnotes/internal/core/domain"
	"github.com/habitnotes/habitnotes/internal/core/services"
)

// mockDocStore is an in-memory DocumentStore with error injection, shared
// by the service tests.
type mockDocStore struct {
	docs          map[string]string
	folders       []string
	simulateError error
	modifyCalls   int
}

func newMockDocStore() *mockDocStore {
	return &mockDocStore{docs: make(map[string]string)}
}

func (m *mockDocStore) Exists(ctx context.Context, path string) (bool, error) {
	if m.simulateError != nil {
		return false, m.simulateError
	}
	_, ok := m.docs[path]
	return ok, nil
}

func (m *mockDocStore) Read(ctx context.Context, path string) (string, error) {
	if m.simulateError != nil {
		return "", m.simulateError
	}
	content, ok := m.docs[path]
	if !ok {
		return "", domain.ErrDocumentNotFound
	}
	return content, nil
}

func (m *mockDocStore) Create(ctx context.Context, path, content string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.docs[path]; ok {
		return domain.ErrDocumentExists
	}
	m.docs[path] = content
	return nil
}

func (m *mockDocStore) Modify(ctx context.Context, path, content string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.docs[path]; !ok {
		return domain.ErrDocumentNotFound
	}
	m.docs[path] = content
	m.modifyCalls++
	return nil
}

func (m *mockDocStore) CreateFolder(ctx context.Context, path string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.folders = append(m.folders, path)
	return nil
}

func (m *mockDocStore) ListAllFiles(ctx context.Context) ([]domain.NoteFile, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var files []domain.NoteFile
	for path := range m.docs {
		name := path
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		files = append(files, domain.NoteFile{
			Path:     path,
			Basename: strings.TrimSuffix(name, ".md"),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func TestRecordService_GetHabitStatus(t *testing.T) {
	ctx := context.Background()
	cfg := domain.TrackerConfig{}

	t.Run("Success: reads checked state and value", func(t *testing.T) {
		store := newMockDocStore()
		store.docs["2024-01-07.md"] = "## Habits\n- [x] Run (value: 5k)\n"
		svc := services.NewRecordService(store, cfg)

		rec, err := svc.GetHabitStatus(ctx, "Run", "2024-01-07")

		require.NoError(t, err)
		assert.True(t, rec.Completed)
		assert.Equal(t, "5k", rec.Value)
		assert.Equal(t, "2024-01-07", rec.Date)
	})

	t.Run("Edge Case: missing document reads as not completed", func(t *testing.T) {
		svc := services.NewRecordService(newMockDocStore(), cfg)

		rec, err := svc.GetHabitStatus(ctx, "Run", "2024-01-07")

		require.NoError(t, err)
		assert.False(t, rec.Completed)
		assert.Empty(t, rec.Value)
	})

	t.Run("Edge Case: missing line reads as not completed", func(t *testing.T) {
		store := newMockDocStore()
		store.docs["2024-01-07.md"] = "## Habits\n- [ ] Read\n"
		svc := services.NewRecordService(store, cfg)

		rec, err := svc.GetHabitStatus(ctx, "Run", "2024-01-07")

		require.NoError(t, err)
		assert.False(t, rec.Completed)
	})

	t.Run("Fail: store error propagates", func(t *testing.T) {
		store := newMockDocStore()
		store.simulateError = errors.New("disk detached")
		svc := services.NewRecordService(store, cfg)

		_, err := svc.GetHabitStatus(ctx, "Run", "2024-01-07")

		assert.ErrorIs(t, err, store.simulateError)
	})
}

func TestRecordService_SetHabitStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: round-trips through a fresh note", func(t *testing.T) {
		store := newMockDocStore()
		svc := services.NewRecordService(store, domain.TrackerConfig{})

		require.NoError(t, svc.SetHabitStatus(ctx, "Run", true, "2024-01-07", "5k"))

		rec, err := svc.GetHabitStatus(ctx, "Run", "2024-01-07")
		require.NoError(t, err)
		assert.True(t, rec.Completed)
		assert.Equal(t, "5k", rec.Value)
	})

	t.Run("Success: creates the notes folder when configured", func(t *testing.T) {
		store := newMockDocStore()
		svc := services.NewRecordService(store, domain.TrackerConfig{DailyNotesFolder: "daily"})

		require.NoError(t, svc.SetHabitStatus(ctx, "Run", false, "2024-01-07", ""))

		assert.Contains(t, store.folders, "daily")
		assert.Contains(t, store.docs, "daily/2024-01-07.md")
	})

	t.Run("Success: clearing the value removes the annotation", func(t *testing.T) {
		store := newMockDocStore()
		store.docs["2024-01-07.md"] = "## Habits\n- [x] Weigh (value: 80)\n"
		svc := services.NewRecordService(store, domain.TrackerConfig{})

		require.NoError(t, svc.SetHabitStatus(ctx, "Weigh", true, "2024-01-07", ""))

		assert.Equal(t, "## Habits\n- [x] Weigh\n", store.docs["2024-01-07.md"])
	})

	t.Run("Success: replaces in place, preserving position", func(t *testing.T) {
		store := newMockDocStore()
		store.docs["2024-01-07.md"] = "## Habits\n- [ ] Read\n- [ ] Run\n- [ ] Meditate\n"
		svc := services.NewRecordService(store, domain.TrackerConfig{})

		require.NoError(t, svc.SetHabitStatus(ctx, "Run", true, "2024-01-07", ""))

		assert.Equal(t, "## Habits\n- [ ] Read\n- [x] Run\n- [ ] Meditate\n", store.docs["2024-01-07.md"])
	})

	t.Run("Fail: empty habit name", func(t *testing.T) {
		svc := services.NewRecordService(newMockDocStore(), domain.TrackerConfig{})

		err := svc.SetHabitStatus(ctx, "   ", true, "2024-01-07", "")

		assert.ErrorIs(t, err, domain.ErrHabitNameEmpty)
	})

	t.Run("Fail: store failure propagates with no retry", func(t *testing.T) {
		store := newMockDocStore()
		store.simulateError = errors.New("create rejected")
		svc := services.NewRecordService(store, domain.TrackerConfig{})

		err := svc.SetHabitStatus(ctx, "Run", true, "2024-01-07", "")

		assert.ErrorIs(t, err, store.simulateError)
	})
}

func TestRecordService_EnsureRecords(t *testing.T) {
	ctx := context.Background()
	habits := []string{"A", "B"}

	t.Run("Success: creates note with all lines", func(t *testing.T) {
		store := newMockDocStore()
		svc := services.NewRecordService(store, domain.TrackerConfig{})

		require.NoError(t, svc.EnsureRecords(ctx, habits, "2024-01-07"))

		assert.Equal(t, "## Habits\n- [ ] A\n- [ ] B\n", store.docs["2024-01-07.md"])
	})

	t.Run("Success: idempotent, second call does not write", func(t *testing.T) {
		store := newMockDocStore()
		svc := services.NewRecordService(store, domain.TrackerConfig{})

		require.NoError(t, svc.EnsureRecords(ctx, habits, "2024-01-07"))
		afterFirst := store.docs["2024-01-07.md"]
		writesAfterFirst := store.modifyCalls

		require.NoError(t, svc.EnsureRecords(ctx, habits, "2024-01-07"))

		assert.Equal(t, afterFirst, store.docs["2024-01-07.md"])
		assert.Equal(t, writesAfterFirst, store.modifyCalls)
	})

	t.Run("Success: no duplicate insertion, existing state untouched", func(t *testing.T) {
		store := newMockDocStore()
		store.docs["2024-01-07.md"] = "## Habits\n- [x] A (value: 3)\n"
		svc := services.NewRecordService(store, domain.TrackerConfig{})

		require.NoError(t, svc.EnsureRecords(ctx, habits, "2024-01-07"))

		assert.Equal(t, "## Habits\n- [ ] B\n- [x] A (value: 3)\n", store.docs["2024-01-07.md"])
	})

	t.Run("Edge Case: empty list is a no-op", func(t *testing.T) {
		store := newMockDocStore()
		svc := services.NewRecordService(store, domain.TrackerConfig{})

		require.NoError(t, svc.EnsureRecords(ctx, []string{" ", ""}, "2024-01-07"))

		assert.Empty(t, store.docs)
	})
}
