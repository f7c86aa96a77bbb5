package navigation

const (
	// HomePath is the site root.
	HomePath = "/"
	// LessonsPath is the lessons index page.
	LessonsPath = "/sunday-school/"
)

// BookURL returns the page path of a book.
func BookURL(testamentSlug, bookSlug string) string {
	return "/book/" + testamentSlug + "/" + bookSlug + "/"
}

// ChapterURL returns the anchored page path of a chapter.
func ChapterURL(testamentSlug, bookSlug, chapterSlug string) string {
	return BookURL(testamentSlug, bookSlug) + "#" + chapterSlug
}

// LessonURL returns the page path of a lesson.
func LessonURL(lessonSlug string) string {
	return LessonsPath + lessonSlug + "/"
}

// SectionURL returns the page path of a lesson section.
func SectionURL(lessonSlug, sectionSlug string) string {
	return LessonURL(lessonSlug) + sectionSlug + "/"
}

// URL returns the book's page path.
func (b Book) URL() string {
	return BookURL(b.Testament.Slug(), b.Slug)
}

// URL returns the lesson's page path.
func (l Lesson) URL() string {
	return LessonURL(l.Slug)
}

// Routes lists every static page path: home, each book, the lessons index,
// each lesson and each section.
func (ix *Index) Routes() []string {
	routes := []string{HomePath}
	for _, b := range ix.Books {
		routes = append(routes, b.URL())
	}
	routes = append(routes, LessonsPath)
	for _, l := range ix.Lessons {
		routes = append(routes, l.URL())
		for _, s := range l.Sections {
			routes = append(routes, SectionURL(l.Slug, s.Slug))
		}
	}
	return routes
}
