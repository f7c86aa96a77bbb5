package store

import (
	"fmt"
	"os"
	"path/filepath"

	"rustbible/internal/slug"
)

// Testament is one of the two fixed groupings of books.
type Testament string

const (
	OldTestament Testament = "Old Testament"
	NewTestament Testament = "New Testament"
)

// Testaments returns the fixed testament set in display order.
func Testaments() []Testament {
	return []Testament{OldTestament, NewTestament}
}

// Slug returns the URL segment for the testament.
func (t Testament) Slug() string {
	return slug.Testament(string(t))
}

// TestamentBySlug finds the testament whose slug matches s.
func TestamentBySlug(s string) (Testament, error) {
	for _, t := range Testaments() {
		if t.Slug() == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("testament not found: %s", s)
}

// Store resolves the on-disk layout of the books and lessons collections.
type Store struct {
	root       string
	booksDir   string
	lessonsDir string
}

// New creates a Store rooted at the site's public directory.
// Missing directories are not an error: they scan as empty.
func New(publicDir string) *Store {
	return &Store{
		root:       publicDir,
		booksDir:   filepath.Join(publicDir, "Books"),
		lessonsDir: filepath.Join(publicDir, "Lessons"),
	}
}

// Root returns the public directory the store was created with.
func (s *Store) Root() string {
	return s.root
}

// BooksDir returns the directory holding one subdirectory per testament.
func (s *Store) BooksDir() string {
	return s.booksDir
}

// LessonsDir returns the directory holding one subdirectory per lesson.
func (s *Store) LessonsDir() string {
	return s.lessonsDir
}

// TestamentDir returns the directory for a testament's books.
func (s *Store) TestamentDir(t Testament) string {
	return filepath.Join(s.booksDir, string(t))
}

// ReadFile reads a scanned file's raw bytes.
func (s *Store) ReadFile(f File) ([]byte, error) {
	content, err := os.ReadFile(f.AbsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", f.RelPath, err)
	}
	return content, nil
}
