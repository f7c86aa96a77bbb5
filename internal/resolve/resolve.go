// Package resolve maps site URLs back to the documents they render.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"rustbible/internal/content"
	"rustbible/internal/navigation"
	"rustbible/internal/store"
)

// ErrNotFound is returned when a URL does not match any page or anchor.
var ErrNotFound = errors.New("page not found")

// Kind is the page template a URL resolves to.
type Kind string

const (
	KindHome    Kind = "home"
	KindLessons Kind = "lessons"
	KindBook    Kind = "book"
	KindLesson  Kind = "lesson"
	KindSection Kind = "section"
)

// Page is a resolved URL.
type Page struct {
	Kind     Kind                `json:"kind"`
	URL      string              `json:"url"`
	Anchor   string              `json:"anchor,omitempty"`
	Book     *navigation.Book    `json:"book,omitempty"`
	Lesson   *navigation.Lesson  `json:"lesson,omitempty"`
	Section  *navigation.Section `json:"section,omitempty"`
	Previous string              `json:"previous,omitempty"`
	Next     string              `json:"next,omitempty"`
	Headings []content.Heading   `json:"headings,omitempty"`
	Tree     []content.Node      `json:"tree,omitempty"`

	// Document is nil for the home and lessons index pages.
	Document *content.Document `json:"-"`
}

// Resolver resolves URLs against one navigation index.
type Resolver struct {
	store *store.Store
	index *navigation.Index
}

// New creates a Resolver. The index should have been built from st.
func New(st *store.Store, ix *navigation.Index) *Resolver {
	return &Resolver{store: st, index: ix}
}

// Resolve parses rawURL (absolute or path-only) and returns the page it
// addresses. A lesson URL renders its first section. A fragment must match a
// heading id of the rendered document.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, rawURL)
	}

	segments := splitPath(u.Path)
	page := &Page{URL: u.Path, Anchor: u.Fragment}

	switch {
	case len(segments) == 0:
		page.Kind = KindHome
		return pageOrErr(page, r.checkIndexAnchor(page))

	case segments[0] == "book" && len(segments) == 3:
		book, ok := r.index.Book(segments[1], segments[2])
		if !ok {
			return nil, fmt.Errorf("%w: book %s/%s", ErrNotFound, segments[1], segments[2])
		}
		page.Kind = KindBook
		page.Book = &book
		if prev, ok := r.index.PreviousBook(segments[1], book.Slug); ok {
			page.Previous = prev.URL()
		}
		if next, ok := r.index.NextBook(segments[1], book.Slug); ok {
			page.Next = next.URL()
		}
		return pageOrErr(page, r.load(ctx, page, book.Path))

	case segments[0] == "sunday-school" && len(segments) == 1:
		page.Kind = KindLessons
		return pageOrErr(page, r.checkIndexAnchor(page))

	case segments[0] == "sunday-school" && len(segments) == 2:
		lesson, ok := r.index.Lesson(segments[1])
		if !ok || len(lesson.Sections) == 0 {
			return nil, fmt.Errorf("%w: lesson %s", ErrNotFound, segments[1])
		}
		page.Kind = KindLesson
		page.Lesson = &lesson
		first := lesson.Sections[0]
		page.Section = &first
		if prev, ok := r.index.PreviousLesson(lesson.Slug); ok {
			page.Previous = prev.URL()
		}
		if next, ok := r.index.NextLesson(lesson.Slug); ok {
			page.Next = next.URL()
		}
		return pageOrErr(page, r.load(ctx, page, first.Path))

	case segments[0] == "sunday-school" && len(segments) == 3:
		lesson, ok := r.index.Lesson(segments[1])
		if !ok {
			return nil, fmt.Errorf("%w: lesson %s", ErrNotFound, segments[1])
		}
		section, ok := lesson.Section(segments[2])
		if !ok {
			return nil, fmt.Errorf("%w: section %s/%s", ErrNotFound, segments[1], segments[2])
		}
		page.Kind = KindSection
		page.Lesson = &lesson
		page.Section = &section
		if prev, ok := lesson.PreviousSection(section.Slug); ok {
			page.Previous = navigation.SectionURL(lesson.Slug, prev.Slug)
		}
		if next, ok := lesson.NextSection(section.Slug); ok {
			page.Next = navigation.SectionURL(lesson.Slug, next.Slug)
		}
		return pageOrErr(page, r.load(ctx, page, section.Path))
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, u.Path)
}

// load reads the document at relPath into page and checks the anchor.
func (r *Resolver) load(ctx context.Context, page *Page, relPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := r.store.ReadFile(store.File{
		RelPath: relPath,
		AbsPath: filepath.Join(r.store.Root(), filepath.FromSlash(relPath)),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	doc, err := content.Parse(relPath, raw)
	if err != nil {
		return err
	}

	page.Document = doc
	page.Headings = doc.Headings()
	page.Tree = doc.Tree()

	if page.Anchor == "" {
		return nil
	}
	for _, h := range page.Headings {
		if h.ID == page.Anchor {
			return nil
		}
	}
	return fmt.Errorf("%w: anchor #%s in %s", ErrNotFound, page.Anchor, relPath)
}

func (r *Resolver) checkIndexAnchor(page *Page) error {
	if page.Anchor != "" {
		return fmt.Errorf("%w: anchor #%s on %s", ErrNotFound, page.Anchor, page.URL)
	}
	return nil
}

func splitPath(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func pageOrErr(page *Page, err error) (*Page, error) {
	if err != nil {
		return nil, err
	}
	return page, nil
}
