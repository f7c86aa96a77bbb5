package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_site_service.go -package=mocks -mock_names=SiteService=MockSiteService rustbible/internal/service SiteService

import (
	"context"
	"errors"
	"strings"
	"time"

	"rustbible/internal/content"
	"rustbible/internal/contextutil"
	"rustbible/internal/metrics"
	"rustbible/internal/navigation"
	"rustbible/internal/progress"
	"rustbible/internal/resolve"
	"rustbible/internal/search"
	"rustbible/internal/storage"
	"rustbible/internal/store"
	"rustbible/internal/verses"
)

// VerseMode selects how a verse is picked.
type VerseMode string

const (
	VerseRandom VerseMode = "random"
	VerseDaily  VerseMode = "daily"
)

// ProgressUpdate is the outcome of recording a reading session.
type ProgressUpdate struct {
	Sessions []progress.Session `json:"sessions"`
	// Recorded is false when the update was throttled.
	Recorded bool `json:"recorded"`
}

// SiteService provides the preview server's read and reading-state
// operations. Content is rebuilt from the store on every call.
type SiteService interface {
	// Navigation builds the navigation index.
	Navigation(ctx context.Context) (*navigation.Index, error)
	// Search filters the search index by query. limit <= 0 uses the configured default.
	Search(ctx context.Context, query string, limit int) ([]search.Entry, error)
	// Resolve maps a site URL to its page.
	Resolve(ctx context.Context, rawURL string) (*resolve.Page, error)
	// Verse picks a verse across all books.
	Verse(ctx context.Context, mode VerseMode) (verses.Verse, error)
	// Progress returns the reading sessions of a client.
	Progress(ctx context.Context, clientID string) ([]progress.Session, error)
	// RecordProgress upserts one reading session of a client.
	RecordProgress(ctx context.Context, clientID string, s progress.Session) (ProgressUpdate, error)
	// DarkMode returns the dark-mode preference of a client.
	DarkMode(ctx context.Context, clientID string) (bool, error)
	// SetDarkMode stores the dark-mode preference of a client.
	SetDarkMode(ctx context.Context, clientID string, on bool) error
}

// SiteConfig holds the tunables of a SiteService.
type SiteConfig struct {
	VersePolicy content.VersePolicy
	SearchLimit int
}

// siteService implements SiteService.
type siteService struct {
	store   *store.Store
	state   storage.StateStore
	metrics *metrics.Metrics // Optional
	cfg     SiteConfig
	now     func() time.Time
}

// NewSiteService creates a new SiteService. m may be nil.
func NewSiteService(st *store.Store, state storage.StateStore, m *metrics.Metrics, cfg SiteConfig) SiteService {
	if cfg.SearchLimit <= 0 || cfg.SearchLimit > search.DefaultLimit {
		cfg.SearchLimit = search.DefaultLimit
	}
	if cfg.VersePolicy == "" {
		cfg.VersePolicy = content.VerseNumbered
	}
	return &siteService{
		store:   st,
		state:   state,
		metrics: m,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *siteService) Navigation(ctx context.Context) (*navigation.Index, error) {
	ix, err := navigation.Build(ctx, s.store)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to build navigation", "error", err)
		return nil, WrapError(err, "failed to build navigation")
	}
	return ix, nil
}

func (s *siteService) Search(ctx context.Context, query string, limit int) ([]search.Entry, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(query) == "" {
		logger.WarnContext(ctx, "empty search query")
		return nil, &ValidationError{Field: "q", Message: "cannot be empty"}
	}
	if limit <= 0 || limit > s.cfg.SearchLimit {
		limit = s.cfg.SearchLimit
	}

	entries, err := search.Build(ctx, s.store)
	if err != nil {
		logger.ErrorContext(ctx, "failed to build search index", "error", err)
		return nil, WrapError(err, "failed to build search index")
	}

	results := search.Filter(entries, query, limit)
	s.metrics.ObserveSearch(len(results))
	logger.InfoContext(ctx, "search processed", "query_length", len(query), "results", len(results))
	return results, nil
}

func (s *siteService) Resolve(ctx context.Context, rawURL string) (*resolve.Page, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, &ValidationError{Field: "url", Message: "cannot be empty"}
	}

	ix, err := s.Navigation(ctx)
	if err != nil {
		return nil, err
	}

	page, err := resolve.New(s.store, ix).Resolve(ctx, rawURL)
	if err != nil {
		if errors.Is(err, resolve.ErrNotFound) {
			return nil, WrapError(ErrNotFound, rawURL)
		}
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to resolve url", "url", rawURL, "error", err)
		return nil, WrapError(err, "failed to resolve url")
	}
	return page, nil
}

func (s *siteService) Verse(ctx context.Context, mode VerseMode) (verses.Verse, error) {
	all, err := verses.All(ctx, s.store, s.cfg.VersePolicy)
	if err != nil {
		return verses.Verse{}, WrapError(err, "failed to collect verses")
	}

	var (
		v  verses.Verse
		ok bool
	)
	switch mode {
	case VerseDaily:
		v, ok = verses.ForDay(all, s.now())
	case VerseRandom, "":
		v, ok = verses.Random(all, nil)
	default:
		return verses.Verse{}, &ValidationError{Field: "mode", Message: "must be random or daily"}
	}
	if !ok {
		return verses.Verse{}, WrapError(ErrNotFound, "no verses")
	}
	return v, nil
}

func (s *siteService) Progress(ctx context.Context, clientID string) ([]progress.Session, error) {
	if clientID == "" {
		return nil, &ValidationError{Field: "client_id", Message: "cannot be empty"}
	}
	return s.loadSessions(ctx, clientID)
}

// RecordProgress stamps sessions without a timestamp with the current time.
// An update to a known URL within progress.UpdateInterval of the stored one
// is dropped and reported with Recorded false.
func (s *siteService) RecordProgress(ctx context.Context, clientID string, session progress.Session) (ProgressUpdate, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if clientID == "" {
		return ProgressUpdate{}, &ValidationError{Field: "client_id", Message: "cannot be empty"}
	}
	if err := session.Validate(); err != nil {
		return ProgressUpdate{}, &ValidationError{Field: "url", Message: "cannot be empty"}
	}
	if session.Timestamp == 0 {
		session.Timestamp = s.now().UnixMilli()
	}

	sessions, err := s.loadSessions(ctx, clientID)
	if err != nil {
		return ProgressUpdate{}, err
	}

	for _, existing := range sessions {
		if existing.URL != session.URL {
			continue
		}
		if !progress.ShouldUpdate(time.UnixMilli(existing.Timestamp), time.UnixMilli(session.Timestamp)) {
			logger.DebugContext(ctx, "reading session update throttled", "url", session.URL)
			return ProgressUpdate{Sessions: sessions, Recorded: false}, nil
		}
		break
	}

	sessions = progress.Record(sessions, session)
	data, err := progress.Encode(sessions)
	if err != nil {
		return ProgressUpdate{}, WrapError(err, "failed to encode reading sessions")
	}
	if err := s.state.Put(ctx, clientID, progress.SessionsKey, string(data)); err != nil {
		logger.ErrorContext(ctx, "failed to store reading sessions", "client_id", clientID, "error", err)
		return ProgressUpdate{}, storageError(err, "failed to store reading sessions")
	}

	return ProgressUpdate{Sessions: sessions, Recorded: true}, nil
}

func (s *siteService) DarkMode(ctx context.Context, clientID string) (bool, error) {
	if clientID == "" {
		return false, &ValidationError{Field: "client_id", Message: "cannot be empty"}
	}
	value, err := s.state.Get(ctx, clientID, progress.DarkModeKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, storageError(err, "failed to load dark mode")
	}
	return progress.ParseDarkMode(value), nil
}

func (s *siteService) SetDarkMode(ctx context.Context, clientID string, on bool) error {
	if clientID == "" {
		return &ValidationError{Field: "client_id", Message: "cannot be empty"}
	}
	if err := s.state.Put(ctx, clientID, progress.DarkModeKey, progress.FormatDarkMode(on)); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to store dark mode", "client_id", clientID, "error", err)
		return storageError(err, "failed to store dark mode")
	}
	return nil
}

// loadSessions reads the stored session list. A missing list is empty.
func (s *siteService) loadSessions(ctx context.Context, clientID string) ([]progress.Session, error) {
	value, err := s.state.Get(ctx, clientID, progress.SessionsKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []progress.Session{}, nil
		}
		return nil, storageError(err, "failed to load reading sessions")
	}
	return progress.Decode(ctx, []byte(value)), nil
}
