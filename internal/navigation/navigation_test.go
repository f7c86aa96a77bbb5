package navigation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"rustbible/internal/store"
)

// writeFiles creates each relative path under root with the given content.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		fullPath := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
	}
}

func TestBuild(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"Books/Old Testament/1.0 Genesis.md":    "---\ntitle: Genesis\n---\n# Genesis\n\n## Intro\n\ntext\n\n## The Fall\n\nmore\n",
		"Books/Old Testament/2.0 Exodus.md":     "# Exodus\n",
		"Books/New Testament/1.0 Matthew.md":    "## Chapter 1\n",
		"Lessons/Ownership Basics/Intro.md":     "# Intro\n",
		"Lessons/Ownership Basics/Borrowing.md": "# Borrowing\n",
		"Lessons/Empty/notes.txt":               "nothing",
	})

	ix, err := Build(context.Background(), store.New(tmpDir))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(ix.Books) != 3 {
		t.Fatalf("Build() books = %d, want 3", len(ix.Books))
	}

	genesis := ix.Books[0]
	if genesis.Name != "Genesis" || genesis.FileName != "1.0 Genesis" || genesis.Order != "1.0" {
		t.Errorf("Books[0] = %+v", genesis)
	}
	if genesis.Slug != "1.0-genesis" || genesis.Testament != store.OldTestament {
		t.Errorf("Books[0] slug/testament = %q/%q", genesis.Slug, genesis.Testament)
	}
	if genesis.Path != "Books/Old Testament/1.0 Genesis.md" {
		t.Errorf("Books[0].Path = %q", genesis.Path)
	}
	if len(genesis.Chapters) != 2 || genesis.Chapters[0].Slug != "intro" || genesis.Chapters[1].Slug != "the-fall" {
		t.Errorf("Books[0].Chapters = %+v, want [intro the-fall]", genesis.Chapters)
	}
	if ix.Books[1].Name != "Exodus" || len(ix.Books[1].Chapters) != 0 {
		t.Errorf("Books[1] = %+v", ix.Books[1])
	}
	if ix.Books[2].Testament != store.NewTestament {
		t.Errorf("Books[2].Testament = %q, want New Testament", ix.Books[2].Testament)
	}

	if len(ix.Lessons) != 1 {
		t.Fatalf("Build() lessons = %d, want 1", len(ix.Lessons))
	}
	lesson := ix.Lessons[0]
	if lesson.Slug != "ownership-basics" {
		t.Errorf("Lessons[0].Slug = %q, want ownership-basics", lesson.Slug)
	}
	if len(lesson.Sections) != 2 || lesson.Sections[0].Slug != "borrowing" || lesson.Sections[1].Slug != "intro" {
		t.Errorf("Lessons[0].Sections = %+v", lesson.Sections)
	}
}

func TestBuild_SlugCollisions(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"Books/Old Testament/Genesis.md":        "# Genesis\n",
		"Books/Old Testament/genesis.md":        "# genesis\n",
		"Books/New Testament/Genesis.md":        "# Genesis\n",
		"Lessons/Ownership Basics/Intro.md":     "# Intro\n",
		"Lessons/Ownership Basics/intro.md":     "# intro\n",
		"Lessons/ownership basics/Borrowing.md": "# Borrowing\n",
	})

	ix, err := Build(context.Background(), store.New(tmpDir))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var books []string
	for _, b := range ix.Books {
		books = append(books, b.Testament.Slug()+"/"+b.Slug)
	}
	wantBooks := []string{"old-testament/genesis", "old-testament/genesis-1", "new-testament/genesis"}
	if len(books) != len(wantBooks) {
		t.Fatalf("book slugs = %v, want %v", books, wantBooks)
	}
	for i := range wantBooks {
		if books[i] != wantBooks[i] {
			t.Errorf("book slug[%d] = %q, want %q", i, books[i], wantBooks[i])
		}
	}

	if len(ix.Lessons) != 2 {
		t.Fatalf("Build() lessons = %d, want 2", len(ix.Lessons))
	}
	if ix.Lessons[0].Slug != "ownership-basics" || ix.Lessons[1].Slug != "ownership-basics-1" {
		t.Errorf("lesson slugs = %q, %q, want ownership-basics and ownership-basics-1", ix.Lessons[0].Slug, ix.Lessons[1].Slug)
	}
	if ix.Lessons[1].Name != "ownership basics" {
		t.Errorf("Lessons[1].Name = %q, want ownership basics", ix.Lessons[1].Name)
	}
	sections := ix.Lessons[0].Sections
	if len(sections) != 2 || sections[0].Slug != "intro" || sections[1].Slug != "intro-1" {
		t.Errorf("Lessons[0].Sections = %+v, want intro and intro-1", sections)
	}
}

func TestBuild_MissingRoot(t *testing.T) {
	ix, err := Build(context.Background(), store.New(filepath.Join(t.TempDir(), "nope")))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if ix.Books == nil || ix.Lessons == nil {
		t.Error("Build() should return empty, non-nil slices")
	}
	if len(ix.Books) != 0 || len(ix.Lessons) != 0 {
		t.Errorf("Build() = %+v, want empty index", ix)
	}
}

func TestBuild_MalformedFrontMatter(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"Books/Old Testament/1.0 Genesis.md": "---\ntitle: [broken\n---\n## Intro\n",
	})

	if _, err := Build(context.Background(), store.New(tmpDir)); err == nil {
		t.Error("Build() with malformed front matter should return error")
	}
}

func TestBuild_Canceled(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"Books/Old Testament/1.0 Genesis.md": "## Intro\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, store.New(tmpDir))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Build() error = %v, want context.Canceled", err)
	}
}
