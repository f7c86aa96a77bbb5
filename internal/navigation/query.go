package navigation

import (
	"rustbible/internal/content"
)

// BooksIn returns the books of the testament with the given slug.
func (ix *Index) BooksIn(testamentSlug string) []Book {
	var books []Book
	for _, b := range ix.Books {
		if b.Testament.Slug() == testamentSlug {
			books = append(books, b)
		}
	}
	return books
}

// Book finds a book by testament and book slug.
func (ix *Index) Book(testamentSlug, bookSlug string) (Book, bool) {
	books := ix.BooksIn(testamentSlug)
	if i, ok := ix.BookIndex(testamentSlug, bookSlug); ok {
		return books[i], true
	}
	return Book{}, false
}

// BookIndex returns the position of a book within its testament.
func (ix *Index) BookIndex(testamentSlug, bookSlug string) (int, bool) {
	for i, b := range ix.BooksIn(testamentSlug) {
		if b.Slug == bookSlug {
			return i, true
		}
	}
	return -1, false
}

// PreviousBook returns the book before bookSlug in the same testament.
func (ix *Index) PreviousBook(testamentSlug, bookSlug string) (Book, bool) {
	return ix.bookAt(testamentSlug, bookSlug, -1)
}

// NextBook returns the book after bookSlug in the same testament.
func (ix *Index) NextBook(testamentSlug, bookSlug string) (Book, bool) {
	return ix.bookAt(testamentSlug, bookSlug, 1)
}

func (ix *Index) bookAt(testamentSlug, bookSlug string, offset int) (Book, bool) {
	i, ok := ix.BookIndex(testamentSlug, bookSlug)
	if !ok {
		return Book{}, false
	}
	books := ix.BooksIn(testamentSlug)
	j := i + offset
	if j < 0 || j >= len(books) {
		return Book{}, false
	}
	return books[j], true
}

// Lesson finds a lesson by slug.
func (ix *Index) Lesson(lessonSlug string) (Lesson, bool) {
	if i, ok := ix.LessonIndex(lessonSlug); ok {
		return ix.Lessons[i], true
	}
	return Lesson{}, false
}

// LessonIndex returns the position of a lesson.
func (ix *Index) LessonIndex(lessonSlug string) (int, bool) {
	for i, l := range ix.Lessons {
		if l.Slug == lessonSlug {
			return i, true
		}
	}
	return -1, false
}

// PreviousLesson returns the lesson before lessonSlug.
func (ix *Index) PreviousLesson(lessonSlug string) (Lesson, bool) {
	return ix.lessonAt(lessonSlug, -1)
}

// NextLesson returns the lesson after lessonSlug.
func (ix *Index) NextLesson(lessonSlug string) (Lesson, bool) {
	return ix.lessonAt(lessonSlug, 1)
}

func (ix *Index) lessonAt(lessonSlug string, offset int) (Lesson, bool) {
	i, ok := ix.LessonIndex(lessonSlug)
	if !ok {
		return Lesson{}, false
	}
	j := i + offset
	if j < 0 || j >= len(ix.Lessons) {
		return Lesson{}, false
	}
	return ix.Lessons[j], true
}

// ChapterIndex returns the position of a chapter within the book.
func (b Book) ChapterIndex(chapterSlug string) (int, bool) {
	for i, c := range b.Chapters {
		if c.Slug == chapterSlug {
			return i, true
		}
	}
	return -1, false
}

// PreviousChapter returns the chapter before chapterSlug.
func (b Book) PreviousChapter(chapterSlug string) (content.Chapter, bool) {
	return b.chapterAt(chapterSlug, -1)
}

// NextChapter returns the chapter after chapterSlug.
func (b Book) NextChapter(chapterSlug string) (content.Chapter, bool) {
	return b.chapterAt(chapterSlug, 1)
}

func (b Book) chapterAt(chapterSlug string, offset int) (content.Chapter, bool) {
	i, ok := b.ChapterIndex(chapterSlug)
	if !ok {
		return content.Chapter{}, false
	}
	j := i + offset
	if j < 0 || j >= len(b.Chapters) {
		return content.Chapter{}, false
	}
	return b.Chapters[j], true
}

// Section finds a section by slug.
func (l Lesson) Section(sectionSlug string) (Section, bool) {
	if i, ok := l.SectionIndex(sectionSlug); ok {
		return l.Sections[i], true
	}
	return Section{}, false
}

// SectionIndex returns the position of a section within the lesson.
func (l Lesson) SectionIndex(sectionSlug string) (int, bool) {
	for i, s := range l.Sections {
		if s.Slug == sectionSlug {
			return i, true
		}
	}
	return -1, false
}

// PreviousSection returns the section before sectionSlug.
func (l Lesson) PreviousSection(sectionSlug string) (Section, bool) {
	return l.sectionAt(sectionSlug, -1)
}

// NextSection returns the section after sectionSlug.
func (l Lesson) NextSection(sectionSlug string) (Section, bool) {
	return l.sectionAt(sectionSlug, 1)
}

func (l Lesson) sectionAt(sectionSlug string, offset int) (Section, bool) {
	i, ok := l.SectionIndex(sectionSlug)
	if !ok {
		return Section{}, false
	}
	j := i + offset
	if j < 0 || j >= len(l.Sections) {
		return Section{}, false
	}
	return l.Sections[j], true
}
