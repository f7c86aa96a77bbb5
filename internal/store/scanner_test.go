package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
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

func TestStore_Books(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"Books/Old Testament/10.1 Malachi.md": "# Malachi",
		"Books/Old Testament/2.0 Exodus.md":   "# Exodus",
		"Books/Old Testament/1.0 Genesis.md":  "# Genesis",
		"Books/Old Testament/Appendix.md":     "# Appendix",
		"Books/Old Testament/notes.txt":       "not markdown",
		"Books/New Testament/1.0 Matthew.md":  "# Matthew",
	})

	s := New(tmpDir)
	files := s.Books(context.Background(), OldTestament)

	want := []string{"1.0 Genesis", "2.0 Exodus", "10.1 Malachi", "Appendix"}
	if len(files) != len(want) {
		t.Fatalf("Books() found %d files, want %d", len(files), len(want))
	}
	for i, name := range want {
		if files[i].Name != name {
			t.Errorf("Books()[%d].Name = %q, want %q", i, files[i].Name, name)
		}
	}

	if files[0].RelPath != "Books/Old Testament/1.0 Genesis.md" {
		t.Errorf("Books()[0].RelPath = %q", files[0].RelPath)
	}
	if files[0].AbsPath != filepath.Join(tmpDir, "Books", "Old Testament", "1.0 Genesis.md") {
		t.Errorf("Books()[0].AbsPath = %q", files[0].AbsPath)
	}
}

func TestStore_Books_MissingRoot(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist"))

	for _, testament := range Testaments() {
		if files := s.Books(context.Background(), testament); len(files) != 0 {
			t.Errorf("Books(%s) on missing root = %d files, want 0", testament, len(files))
		}
	}
	if lessons := s.Lessons(context.Background()); len(lessons) != 0 {
		t.Errorf("Lessons() on missing root = %d, want 0", len(lessons))
	}
}

func TestStore_Lessons(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"Lessons/Ownership Basics/Intro.md":     "# Intro",
		"Lessons/Ownership Basics/Borrowing.md": "# Borrowing",
		"Lessons/Empty Lesson/readme.txt":       "no markdown here",
		"Lessons/stray.md":                      "# not a lesson",
	})
	if err := os.MkdirAll(filepath.Join(tmpDir, "Lessons", "Bare"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	s := New(tmpDir)
	lessons := s.Lessons(context.Background())

	if len(lessons) != 1 {
		t.Fatalf("Lessons() found %d lessons, want 1", len(lessons))
	}

	lesson := lessons[0]
	if lesson.Name != "Ownership Basics" {
		t.Errorf("Lessons()[0].Name = %q, want Ownership Basics", lesson.Name)
	}
	if len(lesson.Sections) != 2 {
		t.Fatalf("Lessons()[0].Sections = %d, want 2", len(lesson.Sections))
	}
	if lesson.Sections[0].Name != "Borrowing" || lesson.Sections[1].Name != "Intro" {
		t.Errorf("Sections order = [%s %s], want [Borrowing Intro]", lesson.Sections[0].Name, lesson.Sections[1].Name)
	}
	if lesson.RelPath != "Lessons/Ownership Basics" {
		t.Errorf("Lessons()[0].RelPath = %q", lesson.RelPath)
	}
}

func TestSplitOrder(t *testing.T) {
	tests := []struct {
		in        string
		wantOrder string
		wantName  string
	}{
		{in: "1.0 Genesis", wantOrder: "1.0", wantName: "Genesis"},
		{in: "10.1 Song of Songs", wantOrder: "10.1", wantName: "Song of Songs"},
		{in: "3 John", wantOrder: "3", wantName: "John"},
		{in: "Genesis", wantOrder: "", wantName: "Genesis"},
		{in: "1.0Genesis", wantOrder: "", wantName: "1.0Genesis"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := SplitOrder(tt.in)
			if got.Order != tt.wantOrder || got.Name != tt.wantName {
				t.Errorf("SplitOrder(%q) = %+v, want {%s %s}", tt.in, got, tt.wantOrder, tt.wantName)
			}
		})
	}
}

func TestCompareOrder(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{a: "1.0", b: "2.0", want: -1},
		{a: "2.0", b: "10.1", want: -1},
		{a: "1.10", b: "1.9", want: 1},
		{a: "1", b: "1.0", want: -1},
		{a: "3.2", b: "3.2", want: 0},
	}

	for _, tt := range tests {
		if got := compareOrder(tt.a, tt.b); got != tt.want {
			t.Errorf("compareOrder(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTestamentBySlug(t *testing.T) {
	got, err := TestamentBySlug("new-testament")
	if err != nil || got != NewTestament {
		t.Errorf("TestamentBySlug(new-testament) = %q, %v", got, err)
	}
	if _, err := TestamentBySlug("apocrypha"); err == nil {
		t.Error("TestamentBySlug(apocrypha) should return error")
	}
}
