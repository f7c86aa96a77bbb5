// Package search flattens the navigation index into search entries and
// filters them by substring.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rustbible/internal/navigation"
	"rustbible/internal/store"
)

// DefaultLimit caps the number of results returned by Filter.
const DefaultLimit = 10

// Kind is the type of page an entry points at.
type Kind string

const (
	KindBook    Kind = "book"
	KindChapter Kind = "chapter"
	KindLesson  Kind = "lesson"
	KindSection Kind = "section"
)

// Kinds lists every entry kind in index order.
func Kinds() []Kind {
	return []Kind{KindBook, KindChapter, KindLesson, KindSection}
}

// Entry is one record of search-index.json.
type Entry struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Kind      Kind   `json:"type"`
	URL       string `json:"url"`
	Content   string `json:"content"`
	Testament string `json:"testament,omitempty"`
	Lesson    string `json:"lesson,omitempty"`
}

// FromIndex emits one entry per book, chapter, lesson and section in
// navigation order. An id is the kind followed by the owning slugs and the
// item slug joined with "/", a character no slug contains.
func FromIndex(ix *navigation.Index) []Entry {
	entries := []Entry{}

	for _, b := range ix.Books {
		t := b.Testament.Slug()
		entries = append(entries, Entry{
			ID:        entryID(KindBook, t, b.Slug),
			Title:     b.Name,
			Kind:      KindBook,
			URL:       navigation.BookURL(t, b.Slug),
			Content:   b.Name,
			Testament: string(b.Testament),
		})

		for _, c := range b.Chapters {
			entries = append(entries, Entry{
				ID:        entryID(KindChapter, t, b.Slug, c.Slug),
				Title:     b.Name + " - " + c.Name,
				Kind:      KindChapter,
				URL:       navigation.ChapterURL(t, b.Slug, c.Slug),
				Content:   c.Name,
				Testament: string(b.Testament),
			})
		}
	}

	for _, l := range ix.Lessons {
		entries = append(entries, Entry{
			ID:      entryID(KindLesson, l.Slug),
			Title:   l.Name,
			Kind:    KindLesson,
			URL:     navigation.LessonURL(l.Slug),
			Content: l.Name,
		})

		for _, s := range l.Sections {
			entries = append(entries, Entry{
				ID:      entryID(KindSection, l.Slug, s.Slug),
				Title:   l.Name + " - " + s.Name,
				Kind:    KindSection,
				URL:     navigation.SectionURL(l.Slug, s.Slug),
				Content: s.Name,
				Lesson:  l.Name,
			})
		}
	}

	return entries
}

func entryID(kind Kind, slugs ...string) string {
	return string(kind) + "-" + strings.Join(slugs, "/")
}

// Build scans the store and returns its search entries.
func Build(ctx context.Context, st *store.Store) ([]Entry, error) {
	ix, err := navigation.Build(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("build search index: %w", err)
	}
	return FromIndex(ix), nil
}

// Validate reports the first duplicated entry id.
func Validate(entries []Entry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("duplicate search entry id: %s", e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}

// Filter returns up to limit entries whose title or content contains query,
// ignoring case. Results keep index order. An empty query matches nothing.
// limit is clamped to DefaultLimit; a non-positive limit means DefaultLimit.
func Filter(entries []Entry, query string, limit int) []Entry {
	results := []Entry{}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return results
	}
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}

	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Content), q) {
			results = append(results, e)
			if len(results) == limit {
				break
			}
		}
	}
	return results
}

// WriteFile writes entries as a JSON array indented with two spaces.
func WriteFile(path string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal search index: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write search index %s: %w", path, err)
	}
	return nil
}

// ReadFile loads a previously written search index.
func ReadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read search index %s: %w", path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse search index %s: %w", path, err)
	}
	return entries, nil
}
