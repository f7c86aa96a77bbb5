package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rustbible/internal/content"
	"rustbible/internal/navigation"
	"rustbible/internal/search"
	"rustbible/internal/verses"
)

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	printResults(&buf, []search.Entry{
		{Title: "Genesis - Intro", Kind: search.KindChapter, URL: "/book/old-testament/1.0-genesis/#intro"},
	})

	out := buf.String()
	for _, want := range []string{"[chapter]", "Genesis - Intro", "/book/old-testament/1.0-genesis/#intro"} {
		if !strings.Contains(out, want) {
			t.Errorf("printResults() output %q missing %q", out, want)
		}
	}

	buf.Reset()
	printResults(&buf, nil)
	if !strings.Contains(buf.String(), "No results") {
		t.Errorf("printResults(nil) = %q", buf.String())
	}
}

func TestPrintVerse(t *testing.T) {
	var buf bytes.Buffer
	printVerse(&buf, verses.Verse{
		Verse:     content.Verse{Text: "In the beginning", Number: 1, Chapter: "Chapter 1", ChapterSlug: "chapter-1", ChapterNumber: 1},
		Book:      "Genesis",
		BookSlug:  "1.0-genesis",
		Testament: "Old Testament",
	})

	out := buf.String()
	for _, want := range []string{"In the beginning", "Genesis 1:1", "/book/old-testament/1.0-genesis/#chapter-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("printVerse() output %q missing %q", out, want)
		}
	}
}

func TestPrintRoutes(t *testing.T) {
	var buf bytes.Buffer
	printRoutes(&buf, &navigation.Index{Books: []navigation.Book{}, Lessons: []navigation.Lesson{}})

	if got := strings.TrimSpace(buf.String()); !strings.Contains(got, "/sunday-school/") || !strings.HasPrefix(got, "/") {
		t.Errorf("printRoutes() = %q", got)
	}
}

func TestBuildCommand(t *testing.T) {
	publicDir := t.TempDir()
	bookPath := filepath.Join(publicDir, "Books", "Old Testament", "1.0 Genesis.md")
	if err := os.MkdirAll(filepath.Dir(bookPath), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(bookPath, []byte("# Genesis\n\n## Intro\n"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	t.Setenv("PUBLIC_DIR", publicDir)
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"build"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("build error = %v", err)
	}

	for _, name := range []string{"search-index.json", "sitemap.xml"} {
		if _, err := os.Stat(filepath.Join(publicDir, name)); err != nil {
			t.Errorf("build should write %s: %v", name, err)
		}
	}
	if !strings.Contains(out.String(), "1 books, 1 chapters") {
		t.Errorf("build output = %q", out.String())
	}
}

func TestBuildCommand_NoManifestSkipsDatabase(t *testing.T) {
	publicDir := t.TempDir()
	dbPath := filepath.Join(t.TempDir(), "nested", "data", "test.db")

	t.Setenv("PUBLIC_DIR", publicDir)
	t.Setenv("DB_PATH", dbPath)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"build", "--no-manifest"})
	defer func() {
		rootCmd.SetArgs(nil)
		_ = buildCmd.Flags().Set("no-manifest", "false")
	}()

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("build error = %v", err)
	}

	if _, err := os.Stat(filepath.Dir(dbPath)); !os.IsNotExist(err) {
		t.Errorf("build --no-manifest created %s", filepath.Dir(dbPath))
	}
	if strings.Contains(out.String(), "manifest:") {
		t.Errorf("build output = %q, want no manifest line", out.String())
	}
}

func TestOpenDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "data", "test.db")

	db, err := openDatabase(dbPath)
	if err != nil {
		t.Fatalf("openDatabase() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='builds'").Scan(&count); err != nil {
		t.Fatalf("query schema: %v", err)
	}
	if count != 1 {
		t.Error("openDatabase() should run migrations")
	}
}
