package domain

import (
	"context"
	"errors"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentExists   = errors.New("document already exists")
)

// NoteFile identifies one stored document. Basename is the file name
// without its extension, the part matched against the configured date
// format.
type NoteFile struct {
	Path     string
	Basename string
}

// DocumentStore is the host storage contract the engine runs against.
// Modify replaces the full document content atomically; the engine assumes
// exclusive access to a document for the duration of one read-modify-write
// sequence and performs no retries.
type DocumentStore interface {
	Exists(ctx context.Context, path string) (bool, error)
	Read(ctx context.Context, path string) (string, error)
	Create(ctx context.Context, path, content string) error
	Modify(ctx context.Context, path, content string) error
	CreateFolder(ctx context.Context, path string) error
	ListAllFiles(ctx context.Context) ([]NoteFile, error)
}
