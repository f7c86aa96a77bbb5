package storage

import "time"

// StateRecord is one key of a client's persisted preview state.
type StateRecord struct {
	ClientID  string
	Key       string // progress.SessionsKey or progress.DarkModeKey
	Value     string // Raw stored value, JSON for session lists
	UpdatedAt time.Time
}

// BuildRecord summarizes one artifact build.
type BuildRecord struct {
	ID        string // UUID
	StartedAt time.Time
	Duration  time.Duration
	Entries   int // Search entries written
	Changed   int // Documents whose hash changed since the previous build
}

// DocumentRecord is the manifest entry of one markdown document.
type DocumentRecord struct {
	ID        string // UUID, stable across builds
	RelPath   string // Relative to the public directory
	Kind      string // "book" or "section"
	Hash      string // SHA256 hex string of file content
	BuildID   string // Build that last changed the document
	UpdatedAt time.Time
}
