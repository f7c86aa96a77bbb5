package resolve

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"rustbible/internal/navigation"
	"rustbible/internal/search"
	"rustbible/internal/store"
)

func setupResolver(t *testing.T) (*Resolver, *navigation.Index) {
	t.Helper()
	tmpDir := t.TempDir()
	files := map[string]string{
		"Books/Old Testament/1.0 Genesis.md":         "# Genesis\n\n## Intro\n\n## The Fall\n\n## Intro\n",
		"Books/Old Testament/2.0 Exodus.md":          "# Exodus\n",
		"Books/New Testament/1.0 Matthew.md":         "## Chapter 1\n",
		"Lessons/Ownership Basics/Intro.md":          "# Intro\n\n## Why Ownership\n",
		"Lessons/Ownership Basics/Borrowing.md":      "# Borrowing\n",
		"Lessons/Ownership Basics/Move Semantics.md": "# Moves\n",
	}
	for rel, body := range files {
		path := filepath.Join(tmpDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
	}

	st := store.New(tmpDir)
	ix, err := navigation.Build(context.Background(), st)
	if err != nil {
		t.Fatalf("navigation.Build() error = %v", err)
	}
	return New(st, ix), ix
}

func TestResolve(t *testing.T) {
	r, _ := setupResolver(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		url      string
		wantKind Kind
		wantPath string
		wantPrev string
		wantNext string
	}{
		{name: "home", url: "/", wantKind: KindHome},
		{name: "lessons index", url: "/sunday-school/", wantKind: KindLessons},
		{
			name: "book", url: "/book/old-testament/1.0-genesis/", wantKind: KindBook,
			wantPath: "Books/Old Testament/1.0 Genesis.md", wantNext: "/book/old-testament/2.0-exodus/",
		},
		{
			name: "book without trailing slash", url: "/book/old-testament/2.0-exodus", wantKind: KindBook,
			wantPath: "Books/Old Testament/2.0 Exodus.md", wantPrev: "/book/old-testament/1.0-genesis/",
		},
		{
			name: "chapter anchor", url: "/book/old-testament/1.0-genesis/#the-fall", wantKind: KindBook,
			wantPath: "Books/Old Testament/1.0 Genesis.md", wantNext: "/book/old-testament/2.0-exodus/",
		},
		{
			name: "deduplicated anchor", url: "/book/old-testament/1.0-genesis/#intro-1", wantKind: KindBook,
			wantPath: "Books/Old Testament/1.0 Genesis.md", wantNext: "/book/old-testament/2.0-exodus/",
		},
		{
			name: "absolute url", url: "https://the-rust-bible.github.io/sunday-school/ownership-basics/intro/#why-ownership",
			wantKind: KindSection, wantPath: "Lessons/Ownership Basics/Intro.md",
			wantPrev: "/sunday-school/ownership-basics/borrowing/", wantNext: "/sunday-school/ownership-basics/move-semantics/",
		},
		{
			name: "lesson renders first section", url: "/sunday-school/ownership-basics/", wantKind: KindLesson,
			wantPath: "Lessons/Ownership Basics/Borrowing.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := r.Resolve(ctx, tt.url)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.url, err)
			}
			if page.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", page.Kind, tt.wantKind)
			}
			gotPath := ""
			if page.Document != nil {
				gotPath = page.Document.Path
			}
			if gotPath != tt.wantPath {
				t.Errorf("Document.Path = %q, want %q", gotPath, tt.wantPath)
			}
			if page.Previous != tt.wantPrev || page.Next != tt.wantNext {
				t.Errorf("Previous/Next = %q/%q, want %q/%q", page.Previous, page.Next, tt.wantPrev, tt.wantNext)
			}
			if page.Document != nil && len(page.Tree) == 0 {
				t.Error("Tree should be populated for document pages")
			}
		})
	}
}

func TestResolve_NotFound(t *testing.T) {
	r, _ := setupResolver(t)

	urls := []string{
		"/book/old-testament/tobit/",
		"/book/apocrypha/1.0-genesis/",
		"/book/old-testament/1.0-genesis/#missing",
		"/sunday-school/unknown/",
		"/sunday-school/ownership-basics/unknown/",
		"/sunday-school/#anchor",
		"/about/",
		"/book/old-testament/",
		"%zz",
	}

	for _, u := range urls {
		page, err := r.Resolve(context.Background(), u)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Resolve(%q) error = %v, want ErrNotFound", u, err)
		}
		if page != nil {
			t.Errorf("Resolve(%q) returned page %+v alongside error", u, page)
		}
	}
}

func TestResolve_SearchURLsRoundTrip(t *testing.T) {
	r, ix := setupResolver(t)

	for _, entry := range search.FromIndex(ix) {
		page, err := r.Resolve(context.Background(), entry.URL)
		if err != nil {
			t.Errorf("Resolve(%q) for %s error = %v", entry.URL, entry.ID, err)
			continue
		}
		if page.Document == nil {
			t.Errorf("Resolve(%q) for %s has no document", entry.URL, entry.ID)
			continue
		}

		switch entry.Kind {
		case search.KindBook, search.KindChapter:
			if page.Book == nil || page.Document.Path != page.Book.Path {
				t.Errorf("%s resolved to %q, want its book document", entry.ID, page.Document.Path)
			}
		case search.KindSection:
			if page.Section == nil || page.Document.Path != page.Section.Path {
				t.Errorf("%s resolved to %q, want its section document", entry.ID, page.Document.Path)
			}
		case search.KindLesson:
			if page.Lesson == nil || page.Document.Path != page.Lesson.Sections[0].Path {
				t.Errorf("%s resolved to %q, want the lesson's first section", entry.ID, page.Document.Path)
			}
		}
	}
}

func TestResolve_CollidingLessonsAreReachable(t *testing.T) {
	tmpDir := t.TempDir()
	for rel, body := range map[string]string{
		"Lessons/Ownership Basics/Intro.md": "# Upper\n",
		"Lessons/ownership basics/Intro.md": "# Lower\n",
	} {
		path := filepath.Join(tmpDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
	}

	st := store.New(tmpDir)
	ix, err := navigation.Build(context.Background(), st)
	if err != nil {
		t.Fatalf("navigation.Build() error = %v", err)
	}
	r := New(st, ix)

	paths := map[string]bool{}
	for _, entry := range search.FromIndex(ix) {
		page, err := r.Resolve(context.Background(), entry.URL)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", entry.URL, err)
		}
		paths[page.Document.Path] = true
	}
	for _, want := range []string{"Lessons/Ownership Basics/Intro.md", "Lessons/ownership basics/Intro.md"} {
		if !paths[want] {
			t.Errorf("no search URL resolves to %s", want)
		}
	}
}
