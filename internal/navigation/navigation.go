// Package navigation builds the book and lesson index the site is navigated by.
package navigation

import (
	"context"
	"fmt"

	"rustbible/internal/content"
	"rustbible/internal/contextutil"
	"rustbible/internal/slug"
	"rustbible/internal/store"
)

// Book is one markdown document under a testament directory.
type Book struct {
	Name      string            `json:"name"`     // Display name, ordering prefix removed
	FileName  string            `json:"fileName"` // File name without .md, prefix kept
	Order     string            `json:"order,omitempty"`
	Slug      string            `json:"slug"`
	Testament store.Testament   `json:"testament"`
	Chapters  []content.Chapter `json:"chapters"`
	Path      string            `json:"path"` // Relative to the public directory
}

// Section is one markdown file inside a lesson folder.
type Section struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Path string `json:"path"`
}

// Lesson is a folder of sections.
type Lesson struct {
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	Path     string    `json:"path"`
	Sections []Section `json:"sections"`
}

// Index holds every book and lesson in display order.
type Index struct {
	Books   []Book   `json:"books"`
	Lessons []Lesson `json:"lessons"`
}

// Build scans the store and derives the navigation index. Missing directories
// produce empty slices and unreadable files are logged and skipped. Malformed
// front matter fails the build.
//
// Book slugs are unique within a testament, lesson slugs across lessons and
// section slugs within a lesson: a name that normalizes to a slug already
// taken gets "-1", "-2", ... appended in display order.
func Build(ctx context.Context, st *store.Store) (*Index, error) {
	logger := contextutil.LoggerFromContext(ctx)

	ix := &Index{Books: []Book{}, Lessons: []Lesson{}}

	for _, testament := range store.Testaments() {
		bookSlugs := slug.NewRegistry()
		for _, f := range st.Books(ctx, testament) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			doc, ok, err := readDocument(ctx, st, f)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}

			ix.Books = append(ix.Books, Book{
				Name:      f.DisplayName(),
				FileName:  f.Name,
				Order:     f.Order(),
				Slug:      uniqueSlug(ctx, bookSlugs, f.Name, f.RelPath),
				Testament: testament,
				Chapters:  doc.Chapters(),
				Path:      f.RelPath,
			})
		}
	}

	lessonSlugs := slug.NewRegistry()
	for _, dir := range st.Lessons(ctx) {
		lesson := Lesson{
			Name:     dir.Name,
			Path:     dir.RelPath,
			Sections: []Section{},
		}
		sectionSlugs := slug.NewRegistry()

		for _, f := range dir.Sections {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			_, ok, err := readDocument(ctx, st, f)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}

			lesson.Sections = append(lesson.Sections, Section{
				Name: f.Name,
				Slug: uniqueSlug(ctx, sectionSlugs, f.Name, f.RelPath),
				Path: f.RelPath,
			})
		}

		if len(lesson.Sections) == 0 {
			continue
		}
		lesson.Slug = uniqueSlug(ctx, lessonSlugs, dir.Name, dir.RelPath)
		ix.Lessons = append(ix.Lessons, lesson)
	}

	logger.DebugContext(ctx, "navigation built", "books", len(ix.Books), "lessons", len(ix.Lessons))
	return ix, nil
}

// uniqueSlug registers the file slug of name and logs when it had to be
// suffixed.
func uniqueSlug(ctx context.Context, ids *slug.Registry, name, relPath string) string {
	base := slug.File(name, true)
	id := ids.Unique(base)
	if id != base {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "slug collision", "path", relPath, "slug", base, "assigned", id)
	}
	return id
}

// readDocument reads and parses f. ok is false when the file could not be
// read; err is set only for malformed front matter.
func readDocument(ctx context.Context, st *store.Store, f store.File) (*content.Document, bool, error) {
	raw, err := st.ReadFile(f)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to read document", "path", f.RelPath, "error", err)
		return nil, false, nil
	}

	doc, err := content.Parse(f.RelPath, raw)
	if err != nil {
		return nil, false, fmt.Errorf("build navigation: %w", err)
	}
	return doc, true, nil
}
