package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"rustbible/internal/contextutil"
)

const markdownExt = ".md"

// orderPrefix matches a leading ordering prefix such as "1.0 ", "10.1 " or "3 ".
var orderPrefix = regexp.MustCompile(`^(\d+(?:\.\d+)*)\s+`)

// File represents a markdown file found in the store.
type File struct {
	Name    string // File name without the .md extension, ordering prefix included
	RelPath string // Path relative to the public directory, forward slashes
	AbsPath string // Path on disk
}

// LessonDir represents a lesson folder and the section files inside it.
type LessonDir struct {
	Name     string // Folder name
	RelPath  string
	AbsPath  string
	Sections []File
}

// Order returns the ordering prefix of the file name ("1.0" for "1.0 Genesis"),
// or "" when the name has none.
func (f File) Order() string {
	return SplitOrder(f.Name).Order
}

// DisplayName returns the file name with its ordering prefix removed.
func (f File) DisplayName() string {
	return SplitOrder(f.Name).Name
}

// Ordered is a name split into its ordering prefix and the remainder.
type Ordered struct {
	Order string
	Name  string
}

// SplitOrder separates a leading ordering prefix from name.
func SplitOrder(name string) Ordered {
	m := orderPrefix.FindStringSubmatchIndex(name)
	if m == nil {
		return Ordered{Name: name}
	}
	return Ordered{Order: name[m[2]:m[3]], Name: name[m[1]:]}
}

// Books lists the markdown files of one testament sorted by ordering prefix.
// A missing or unreadable directory yields no files; read errors are logged.
func (s *Store) Books(ctx context.Context, t Testament) []File {
	dir := s.TestamentDir(t)
	files := s.markdownFiles(ctx, dir)
	sortFiles(files)
	return files
}

// Lessons lists lesson folders that contain at least one markdown file.
// Folders and sections are sorted by ordering prefix, then by name.
func (s *Store) Lessons(ctx context.Context) []LessonDir {
	logger := contextutil.LoggerFromContext(ctx)

	entries, err := os.ReadDir(s.lessonsDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.ErrorContext(ctx, "failed to read lessons directory", "dir", s.lessonsDir, "error", err)
		}
		return nil
	}

	var lessons []LessonDir
	for _, entry := range entries {
		absPath := filepath.Join(s.lessonsDir, entry.Name())

		// Stat follows symlinks so linked lesson folders are scanned too.
		info, err := os.Stat(absPath)
		if err != nil {
			logger.WarnContext(ctx, "failed to stat lesson entry", "path", absPath, "error", err)
			continue
		}
		if !info.IsDir() {
			continue
		}

		sections := s.markdownFiles(ctx, absPath)
		if len(sections) == 0 {
			continue
		}
		sortFiles(sections)

		lessons = append(lessons, LessonDir{
			Name:     entry.Name(),
			RelPath:  s.relPath(absPath),
			AbsPath:  absPath,
			Sections: sections,
		})
	}

	sort.SliceStable(lessons, func(i, j int) bool {
		return lessOrdered(lessons[i].Name, lessons[j].Name)
	})
	return lessons
}

// markdownFiles lists the .md files directly inside dir.
func (s *Store) markdownFiles(ctx context.Context, dir string) []File {
	logger := contextutil.LoggerFromContext(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.ErrorContext(ctx, "failed to read directory", "dir", dir, "error", err)
		}
		return nil
	}

	var files []File
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, markdownExt) {
			continue
		}

		absPath := filepath.Join(dir, name)
		files = append(files, File{
			Name:    strings.TrimSuffix(name, markdownExt),
			RelPath: s.relPath(absPath),
			AbsPath: absPath,
		})
	}
	return files
}

// relPath computes a forward-slash path relative to the store root.
func (s *Store) relPath(absPath string) string {
	rel, err := filepath.Rel(s.root, absPath)
	if err != nil {
		return filepath.ToSlash(absPath)
	}
	return filepath.ToSlash(rel)
}

func sortFiles(files []File) {
	sort.SliceStable(files, func(i, j int) bool {
		return lessOrdered(files[i].Name, files[j].Name)
	})
}

// lessOrdered orders prefixed names numerically ("2.0" < "10.1"), places
// prefixed names before unprefixed ones and falls back to the plain name.
func lessOrdered(a, b string) bool {
	oa, ob := SplitOrder(a), SplitOrder(b)
	switch {
	case oa.Order != "" && ob.Order == "":
		return true
	case oa.Order == "" && ob.Order != "":
		return false
	case oa.Order != "" && ob.Order != "":
		if c := compareOrder(oa.Order, ob.Order); c != 0 {
			return c < 0
		}
	}
	return a < b
}

// compareOrder compares dotted numeric prefixes component by component.
func compareOrder(a, b string) int {
	pa, pb := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		na, _ := strconv.Atoi(pa[i])
		nb, _ := strconv.Atoi(pb[i])
		if na != nb {
			if na < nb {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	}
	return 0
}
