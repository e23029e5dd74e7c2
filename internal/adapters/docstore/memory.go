package docstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/habitnotes/habitnotes/internal/core/domain"
)

var _ domain.DocumentStore = (*InMemoryStore)(nil)

// InMemoryStore keeps documents in a map. Used in tests and as the
// reference implementation of the store contract.
type InMemoryStore struct {
	docs map[string]string

	mu sync.RWMutex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		docs: make(map[string]string),
	}
}

func (s *InMemoryStore) Exists(ctx context.Context, path string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.docs[path]
	return ok, nil
}

func (s *InMemoryStore) Read(ctx context.Context, path string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.docs[path]
	if !ok {
		return "", domain.ErrDocumentNotFound
	}
	return content, nil
}

func (s *InMemoryStore) Create(ctx context.Context, path, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[path]; ok {
		return domain.ErrDocumentExists
	}
	s.docs[path] = content
	return nil
}

func (s *InMemoryStore) Modify(ctx context.Context, path, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[path]; !ok {
		return domain.ErrDocumentNotFound
	}
	s.docs[path] = content
	return nil
}

func (s *InMemoryStore) CreateFolder(ctx context.Context, path string) error {
	return nil
}

func (s *InMemoryStore) ListAllFiles(ctx context.Context) ([]domain.NoteFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files := make([]domain.NoteFile, 0, len(s.docs))
	for path := range s.docs {
		files = append(files, domain.NoteFile{
			Path:     path,
			Basename: basename(path),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}

func basename(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	return strings.TrimSuffix(path, ".md")
}
