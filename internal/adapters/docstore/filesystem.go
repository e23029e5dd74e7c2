package docstore

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/habitnotes/habitnotes/internal/core/domain"
)

var _ domain.DocumentStore = (*FilesystemStore)(nil)

// FilesystemStore keeps each daily note as a markdown file under a root
// directory. Document paths are slash-separated and relative to the root.
type FilesystemStore struct {
	root string
}

func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("docstore: creating root %s: %w", root, err)
	}
	return &FilesystemStore{root: root}, nil
}

func (s *FilesystemStore) fullPath(path string) string {
	return filepath.Join(s.root, filepath.FromSlash(path))
}

func (s *FilesystemStore) Exists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(s.fullPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("docstore: stat %s: %w", path, err)
	}
	return !info.IsDir(), nil
}

func (s *FilesystemStore) Read(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(s.fullPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrDocumentNotFound
		}
		return "", fmt.Errorf("docstore: read %s: %w", path, err)
	}
	return string(data), nil
}

func (s *FilesystemStore) Create(ctx context.Context, path, content string) error {
	full := s.fullPath(path)

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return domain.ErrDocumentExists
		}
		return fmt.Errorf("docstore: create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("docstore: create %s: %w", path, err)
	}
	return nil
}

// Modify replaces the full file content. The write goes through a temp file
// and a rename so readers never observe a partially written note.
func (s *FilesystemStore) Modify(ctx context.Context, path, content string) error {
	full := s.fullPath(path)

	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrDocumentNotFound
		}
		return fmt.Errorf("docstore: stat %s: %w", path, err)
	}

	tmp := full + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return fmt.Errorf("docstore: write %s: %w", path, err)
	}
	if err := os.Rename(tmp, full); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("docstore: replace %s: %w", path, err)
	}
	return nil
}

func (s *FilesystemStore) CreateFolder(ctx context.Context, path string) error {
	if err := os.MkdirAll(s.fullPath(path), 0o755); err != nil {
		return fmt.Errorf("docstore: create folder %s: %w", path, err)
	}
	return nil
}

func (s *FilesystemStore) ListAllFiles(ctx context.Context) ([]domain.NoteFile, error) {
	var files []domain.NoteFile

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("docstore: walking %s: %w", path, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			// Hidden directories (.obsidian and friends) hold host
			// configuration, never notes.
			if strings.HasPrefix(d.Name(), ".") && path != s.root {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(path) != ".md" {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return fmt.Errorf("docstore: relative path for %s: %w", path, err)
		}

		files = append(files, domain.NoteFile{
			Path:     filepath.ToSlash(rel),
			Basename: strings.TrimSuffix(d.Name(), ".md"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
