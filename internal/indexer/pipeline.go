// Package indexer runs the artifact build: navigation, search index, sitemap
// and the build manifest.
package indexer

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"rustbible/internal/contextutil"
	"rustbible/internal/metrics"
	"rustbible/internal/navigation"
	"rustbible/internal/search"
	"rustbible/internal/sitemap"
	"rustbible/internal/storage"
	"rustbible/internal/store"
)

const (
	// SearchIndexFile is the search artifact name inside the output directory.
	SearchIndexFile = "search-index.json"
	// SitemapFile is the sitemap artifact name inside the output directory.
	SitemapFile = "sitemap.xml"
)

// Pipeline builds the static artifacts from the markdown store.
type Pipeline struct {
	store     *store.Store
	documents storage.DocumentStore // Optional build manifest
	builds    storage.BuildStore    // Optional build history
	metrics   *metrics.Metrics      // Optional
	baseURL   string
	outputDir string
	now       func() time.Time
}

// NewPipeline creates a build pipeline writing artifacts into the store's
// public directory. documents, builds and m may be nil.
func NewPipeline(
	st *store.Store,
	documents storage.DocumentStore,
	builds storage.BuildStore,
	m *metrics.Metrics,
	baseURL string,
) *Pipeline {
	return &Pipeline{
		store:     st,
		documents: documents,
		builds:    builds,
		metrics:   m,
		baseURL:   baseURL,
		outputDir: st.Root(),
		now:       time.Now,
	}
}

// Result describes one completed build.
type Result struct {
	BuildID         string
	Index           *navigation.Index
	Entries         []search.Entry
	Sitemap         *sitemap.URLSet
	SearchIndexPath string
	SitemapPath     string
	Changed         []string // Documents whose content hash changed
	Removed         int      // Manifest entries for documents that disappeared
	Stats           Stats
	Duration        time.Duration
}

// Build scans the store from scratch and writes search-index.json and
// sitemap.xml. Manifest failures are logged and do not fail the build.
func (p *Pipeline) Build(ctx context.Context) (*Result, error) {
	logger := contextutil.LoggerFromContext(ctx)
	start := p.now()

	res, err := p.build(ctx, start)
	duration := p.now().Sub(start)

	if p.metrics != nil {
		p.metrics.BuildDurationSeconds.Observe(duration.Seconds())
		result := "success"
		if err != nil {
			result = "error"
		}
		p.metrics.BuildsTotal.WithLabelValues(result).Inc()
	}

	if err != nil {
		logger.ErrorContext(ctx, "build failed", "error", err, "duration", duration)
		return nil, err
	}

	res.Duration = duration
	p.recordBuild(ctx, res, start)
	p.observe(res)

	logger.InfoContext(ctx, "build completed",
		"build_id", res.BuildID,
		"books", res.Stats.Books,
		"chapters", res.Stats.Chapters,
		"lessons", res.Stats.Lessons,
		"sections", res.Stats.Sections,
		"entries", len(res.Entries),
		"changed", len(res.Changed),
		"duration", duration,
	)
	return res, nil
}

func (p *Pipeline) build(ctx context.Context, start time.Time) (*Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	ix, err := navigation.Build(ctx, p.store)
	if err != nil {
		return nil, err
	}

	entries := search.FromIndex(ix)
	if err := search.Validate(entries); err != nil {
		return nil, err
	}

	res := &Result{
		BuildID:         uuid.New().String(),
		Index:           ix,
		Entries:         entries,
		Sitemap:         sitemap.Build(p.baseURL, ix, start),
		SearchIndexPath: filepath.Join(p.outputDir, SearchIndexFile),
		SitemapPath:     filepath.Join(p.outputDir, SitemapFile),
		Stats:           ComputeStats(ix, entries),
	}

	if err := search.WriteFile(res.SearchIndexPath, entries); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "wrote search index", "path", res.SearchIndexPath, "entries", len(entries))

	if err := sitemap.WriteFile(res.SitemapPath, res.Sitemap); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "wrote sitemap", "path", res.SitemapPath, "urls", len(res.Sitemap.URLs))

	if err := p.updateManifest(ctx, res); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		logger.WarnContext(ctx, "build manifest incomplete", "error", err)
	}

	return res, nil
}

// manifestDocument is one markdown file tracked by the build manifest.
type manifestDocument struct {
	relPath string
	kind    string
}

func manifestDocuments(ix *navigation.Index) []manifestDocument {
	var docs []manifestDocument
	for _, b := range ix.Books {
		docs = append(docs, manifestDocument{relPath: b.Path, kind: string(search.KindBook)})
	}
	for _, l := range ix.Lessons {
		for _, s := range l.Sections {
			docs = append(docs, manifestDocument{relPath: s.Path, kind: string(search.KindSection)})
		}
	}
	return docs
}

// updateManifest hashes every document, records changed hashes and removes
// entries for documents that no longer exist. Errors for individual documents
// are logged and counted.
func (p *Pipeline) updateManifest(ctx context.Context, res *Result) error {
	if p.documents == nil {
		return nil
	}
	logger := contextutil.LoggerFromContext(ctx)

	docs := manifestDocuments(res.Index)
	keep := make([]string, 0, len(docs))
	var errorCount int

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		keep = append(keep, doc.relPath)
		changed, err := p.recordDocument(ctx, doc, res.BuildID)
		if err != nil {
			errorCount++
			logger.ErrorContext(ctx, "failed to record document", "rel_path", doc.relPath, "error", err)
			continue
		}
		if changed {
			res.Changed = append(res.Changed, doc.relPath)
		}
	}

	removed, err := p.documents.DeleteExcept(ctx, keep)
	if err != nil {
		return fmt.Errorf("failed to prune manifest: %w", err)
	}
	res.Removed = removed

	if errorCount > 0 {
		return fmt.Errorf("manifest completed with %d errors", errorCount)
	}
	return nil
}

// recordDocument reports whether the document's hash differs from the
// manifest and stores the new hash when it does.
func (p *Pipeline) recordDocument(ctx context.Context, doc manifestDocument, buildID string) (bool, error) {
	raw, err := p.store.ReadFile(store.File{
		RelPath: doc.relPath,
		AbsPath: filepath.Join(p.store.Root(), filepath.FromSlash(doc.relPath)),
	})
	if err != nil {
		return false, err
	}

	hashHex := fmt.Sprintf("%x", sha256.Sum256(raw))

	existing, err := p.documents.GetByPath(ctx, doc.relPath)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return false, fmt.Errorf("failed to check existing document: %w", err)
	}
	if existing != nil && existing.Hash == hashHex {
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "document unchanged", "rel_path", doc.relPath, "hash", hashHex)
		return false, nil
	}

	record := &storage.DocumentRecord{
		RelPath: doc.relPath,
		Kind:    doc.kind,
		Hash:    hashHex,
		BuildID: buildID,
	}
	if err := p.documents.Upsert(ctx, record); err != nil {
		return false, fmt.Errorf("failed to upsert document: %w", err)
	}
	return true, nil
}

func (p *Pipeline) recordBuild(ctx context.Context, res *Result, start time.Time) {
	if p.builds == nil {
		return
	}
	record := &storage.BuildRecord{
		ID:        res.BuildID,
		StartedAt: start,
		Duration:  res.Duration,
		Entries:   len(res.Entries),
		Changed:   len(res.Changed),
	}
	if err := p.builds.Create(ctx, record); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to record build", "build_id", res.BuildID, "error", err)
	}
}

func (p *Pipeline) observe(res *Result) {
	if p.metrics == nil {
		return
	}
	p.metrics.DocumentsScannedTotal.WithLabelValues(string(search.KindBook)).Add(float64(res.Stats.Books))
	p.metrics.DocumentsScannedTotal.WithLabelValues(string(search.KindSection)).Add(float64(res.Stats.Sections))
	p.metrics.DocumentsChangedTotal.Add(float64(len(res.Changed)))
	for _, kind := range search.Kinds() {
		p.metrics.SearchEntries.WithLabelValues(string(kind)).Set(float64(res.Stats.EntriesByKind[kind]))
	}
	p.metrics.ChaptersPerBookMaximum.Set(float64(res.Stats.ChaptersPerBook.Max))
}
