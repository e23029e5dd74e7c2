package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/habitnotes/habitnotes/internal/core/domain"
)

var _ domain.DocumentStore = (*PostgresStore)(nil)

// PostgresStore keeps each daily note as a row in the documents table, for
// deployments without a shared filesystem. Folders do not exist as rows;
// they are just path prefixes, so CreateFolder is a no-op.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Exists(ctx context.Context, path string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM documents WHERE path = $1)`, path)
	if err != nil {
		return false, fmt.Errorf("docstore: checking document %s: %w", path, err)
	}
	return exists, nil
}

func (s *PostgresStore) Read(ctx context.Context, path string) (string, error) {
	var content string
	err := s.db.GetContext(ctx, &content,
		`SELECT content FROM documents WHERE path = $1`, path)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrDocumentNotFound
		}
		return "", fmt.Errorf("docstore: reading document %s: %w", path, err)
	}
	return content, nil
}

func (s *PostgresStore) Create(ctx context.Context, path, content string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (path, content, created_at, updated_at)
         VALUES ($1, $2, now(), now())`, path, content)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDocumentExists
		}
		return fmt.Errorf("docstore: creating document %s: %w", path, err)
	}
	return nil
}

func (s *PostgresStore) Modify(ctx context.Context, path, content string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET content = $2, updated_at = now() WHERE path = $1`,
		path, content)
	if err != nil {
		return fmt.Errorf("docstore: updating document %s: %w", path, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("docstore: updating document %s: %w", path, err)
	}
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (s *PostgresStore) CreateFolder(ctx context.Context, path string) error {
	return nil
}

func (s *PostgresStore) ListAllFiles(ctx context.Context) ([]domain.NoteFile, error) {
	var paths []string
	err := s.db.SelectContext(ctx, &paths,
		`SELECT path FROM documents ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("docstore: listing documents: %w", err)
	}

	files := make([]domain.NoteFile, 0, len(paths))
	for _, p := range paths {
		name := p
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		files = append(files, domain.NoteFile{
			Path:     p,
			Basename: strings.TrimSuffix(name, ".md"),
		})
	}
	return files, nil
}
