package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks rustbible/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// DocumentStore defines the interface for build manifest operations.
type DocumentStore interface {
	// GetByPath gets a document by its relative path.
	// Returns nil and ErrNotFound if not found.
	GetByPath(ctx context.Context, relPath string) (*DocumentRecord, error)
	// Upsert inserts a new document or updates an existing one.
	Upsert(ctx context.Context, doc *DocumentRecord) error
	// DeleteExcept removes documents whose path is not in keep and returns
	// how many were removed.
	DeleteExcept(ctx context.Context, keep []string) (int, error)
}

// DocumentRepo provides methods for build manifest operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// GetByPath gets a document by its relative path.
func (r *DocumentRepo) GetByPath(ctx context.Context, relPath string) (*DocumentRecord, error) {
	var (
		doc       DocumentRecord
		buildID   sql.NullString
		updatedAt string
	)

	err := r.db.QueryRowContext(ctx,
		"SELECT id, rel_path, kind, hash, build_id, updated_at FROM documents WHERE rel_path = ?",
		relPath,
	).Scan(&doc.ID, &doc.RelPath, &doc.Kind, &doc.Hash, &buildID, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	doc.BuildID = buildID.String
	doc.UpdatedAt, err = parseTimestamp(updatedAt)
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// Upsert inserts a new document or updates an existing one.
// New documents get a UUID; existing documents keep theirs.
func (r *DocumentRepo) Upsert(ctx context.Context, doc *DocumentRecord) error {
	existing, err := r.GetByPath(ctx, doc.RelPath)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to check existing document: %w", err)
	}

	if existing != nil {
		doc.ID = existing.ID
	} else if doc.ID == "" {
		doc.ID = uuid.New().String()
	}

	var buildID any
	if doc.BuildID != "" {
		buildID = doc.BuildID
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO documents (id, rel_path, kind, hash, build_id, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (rel_path) DO UPDATE SET
		 kind = excluded.kind, hash = excluded.hash, build_id = excluded.build_id, updated_at = CURRENT_TIMESTAMP`,
		doc.ID, doc.RelPath, doc.Kind, doc.Hash, buildID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}

	return nil
}

// DeleteExcept removes documents whose path is not in keep.
func (r *DocumentRepo) DeleteExcept(ctx context.Context, keep []string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	rows, err := tx.QueryContext(ctx, "SELECT rel_path FROM documents")
	if err != nil {
		return 0, fmt.Errorf("failed to list documents: %w", err)
	}

	kept := make(map[string]struct{}, len(keep))
	for _, p := range keep {
		kept[p] = struct{}{}
	}

	var stale []string
	for rows.Next() {
		var relPath string
		if err := rows.Scan(&relPath); err != nil {
			_ = rows.Close()
			return 0, err
		}
		if _, ok := kept[relPath]; !ok {
			stale = append(stale, relPath)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, err
	}
	_ = rows.Close()

	for _, relPath := range stale {
		if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE rel_path = ?", relPath); err != nil {
			return 0, fmt.Errorf("failed to delete document %s: %w", relPath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(stale), nil
}
