package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_state_store.go -package=mocks rustbible/internal/storage StateStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// StateStore defines the interface for client state storage operations.
type StateStore interface {
	// Get returns the stored value of key for a client.
	// Returns "" and ErrNotFound if not found.
	Get(ctx context.Context, clientID, key string) (string, error)
	// Put inserts or replaces the value of key for a client.
	Put(ctx context.Context, clientID, key, value string) error
}

// StateRepo provides methods for client state operations.
// It implements the StateStore interface.
type StateRepo struct {
	db *sql.DB
}

// NewStateRepo creates a new StateRepo.
func NewStateRepo(db *sql.DB) *StateRepo {
	return &StateRepo{db: db}
}

// Get returns the stored value of key for a client.
func (r *StateRepo) Get(ctx context.Context, clientID, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM client_state WHERE client_id = ? AND key = ?",
		clientID, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query client state: %w", err)
	}
	return value, nil
}

// Put inserts or replaces the value of key for a client. Last write wins.
func (r *StateRepo) Put(ctx context.Context, clientID, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO client_state (client_id, key, value, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (client_id, key) DO UPDATE SET
		 value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		clientID, key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to store client state: %w", err)
	}
	return nil
}
