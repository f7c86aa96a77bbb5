package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_build_store.go -package=mocks rustbible/internal/storage BuildStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BuildStore defines the interface for build history operations.
type BuildStore interface {
	// Create records a build. An empty ID is replaced with a new UUID.
	Create(ctx context.Context, build *BuildRecord) error
	// Latest returns the most recent build.
	// Returns nil and ErrNotFound if no build was recorded.
	Latest(ctx context.Context) (*BuildRecord, error)
}

// BuildRepo provides methods for build history operations.
// It implements the BuildStore interface.
type BuildRepo struct {
	db *sql.DB
}

// NewBuildRepo creates a new BuildRepo.
func NewBuildRepo(db *sql.DB) *BuildRepo {
	return &BuildRepo{db: db}
}

// Create records a build.
func (r *BuildRepo) Create(ctx context.Context, build *BuildRecord) error {
	if build.ID == "" {
		build.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO builds (id, started_at, duration_ms, entries, changed) VALUES (?, ?, ?, ?, ?)",
		build.ID, build.StartedAt.UTC().Format(timestampLayout), build.Duration.Milliseconds(), build.Entries, build.Changed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert build: %w", err)
	}
	return nil
}

// Latest returns the most recent build.
func (r *BuildRepo) Latest(ctx context.Context) (*BuildRecord, error) {
	var (
		build      BuildRecord
		startedAt  string
		durationMS int64
	)

	err := r.db.QueryRowContext(ctx,
		"SELECT id, started_at, duration_ms, entries, changed FROM builds ORDER BY started_at DESC LIMIT 1",
	).Scan(&build.ID, &startedAt, &durationMS, &build.Entries, &build.Changed)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest build: %w", err)
	}

	build.StartedAt, err = parseTimestamp(startedAt)
	if err != nil {
		return nil, err
	}
	build.Duration = time.Duration(durationMS) * time.Millisecond

	return &build, nil
}
