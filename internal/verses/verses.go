// Package verses collects verse lines from every book and picks a verse of
// the day.
package verses

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"time"

	"rustbible/internal/content"
	"rustbible/internal/contextutil"
	"rustbible/internal/navigation"
	"rustbible/internal/slug"
	"rustbible/internal/store"
)

// Verse is a content.Verse annotated with the book it came from.
type Verse struct {
	content.Verse
	Book      string `json:"book"`
	BookSlug  string `json:"bookSlug"`
	Testament string `json:"testament"`
}

// URL returns the anchored chapter path of the verse, or the book path when
// the verse precedes the first chapter.
func (v Verse) URL() string {
	t := slug.Testament(v.Testament)
	if v.ChapterSlug == "" {
		return navigation.BookURL(t, v.BookSlug)
	}
	return navigation.ChapterURL(t, v.BookSlug, v.ChapterSlug)
}

// All reads every book of the navigation index and returns their verses in
// book order. Unreadable books are logged and skipped.
func All(ctx context.Context, st *store.Store, policy content.VersePolicy) ([]Verse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	ix, err := navigation.Build(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("collect verses: %w", err)
	}

	var all []Verse
	for _, b := range ix.Books {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := st.ReadFile(store.File{
			Name:    b.FileName,
			RelPath: b.Path,
			AbsPath: filepath.Join(st.Root(), filepath.FromSlash(b.Path)),
		})
		if err != nil {
			logger.ErrorContext(ctx, "failed to read book", "path", b.Path, "error", err)
			continue
		}
		doc, err := content.Parse(b.Path, raw)
		if err != nil {
			return nil, fmt.Errorf("collect verses: %w", err)
		}

		for _, v := range doc.Verses(policy) {
			all = append(all, Verse{
				Verse:     v,
				Book:      b.Name,
				BookSlug:  b.Slug,
				Testament: string(b.Testament),
			})
		}
	}
	return all, nil
}

// Random picks a verse using r, or the global source when r is nil.
func Random(verses []Verse, r *rand.Rand) (Verse, bool) {
	if len(verses) == 0 {
		return Verse{}, false
	}
	if r == nil {
		return verses[rand.IntN(len(verses))], true
	}
	return verses[r.IntN(len(verses))], true
}

// ForDay picks the same verse for every call on the same UTC calendar day.
func ForDay(verses []Verse, day time.Time) (Verse, bool) {
	if len(verses) == 0 {
		return Verse{}, false
	}
	y, m, d := day.UTC().Date()
	days := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	i := days % int64(len(verses))
	if i < 0 {
		i += int64(len(verses))
	}
	return verses[i], true
}
