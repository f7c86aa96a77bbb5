package content

import (
	"regexp"
	"strings"

	"rustbible/internal/slug"
)

var (
	lineBreak       = regexp.MustCompile(`\r?\n`)
	headingRegex    = regexp.MustCompile(`^(#{1,3})\s+(.+)$`)
	closingSequence = regexp.MustCompile(`(^|\s+)#+$`)
	fenceRegex      = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")
)

// Heading is one entry of a document's in-page table of contents.
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Chapter is a level-2 heading inside a book.
type Chapter struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// splitLines splits body on "\n" and "\r\n".
func splitLines(body string) []string {
	return lineBreak.Split(body, -1)
}

// proseLines returns the lines of body outside fenced code blocks. Fence
// delimiter lines are dropped too. An unclosed fence runs to the end of body.
func proseLines(body string) []string {
	var (
		out   []string
		fence string
	)
	for _, line := range splitLines(body) {
		if fence != "" {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, fence) && strings.Trim(trimmed, fence[:1]) == "" {
				fence = ""
			}
			continue
		}
		if m := fenceRegex.FindStringSubmatch(line); m != nil {
			fence = m[1]
			continue
		}
		out = append(out, line)
	}
	return out
}

// matchHeading reports the level and text of an ATX heading line. Up to
// three leading spaces are allowed; a closing run of "#" is dropped.
func matchHeading(line string) (level int, text string, ok bool) {
	rest := strings.TrimLeft(line, " ")
	if len(line)-len(rest) > 3 || strings.HasPrefix(rest, "\t") {
		return 0, "", false
	}
	m := headingRegex.FindStringSubmatch(strings.TrimSpace(rest))
	if m == nil {
		return 0, "", false
	}
	text = strings.TrimSpace(closingSequence.ReplaceAllString(m[2], ""))
	if text == "" {
		return 0, "", false
	}
	return len(m[1]), text, true
}

// Headings scans body line by line for level 1-3 headings, skipping fenced
// code. Ids come from slug.Text and are made unique within the document, so a
// repeated heading gets "-1", "-2", ... appended.
func Headings(body string) []Heading {
	headings := []Heading{}
	ids := slug.NewRegistry()

	for _, line := range proseLines(body) {
		level, text, ok := matchHeading(line)
		if !ok {
			continue
		}
		headings = append(headings, Heading{
			ID:    ids.Unique(slug.Text(text)),
			Text:  text,
			Level: level,
		})
	}
	return headings
}

// Chapters returns the level-2 headings of body. Chapter slugs are the
// heading ids, so they always match the page anchors.
func Chapters(body string) []Chapter {
	chapters := []Chapter{}
	for _, h := range Headings(body) {
		if h.Level != 2 {
			continue
		}
		chapters = append(chapters, Chapter{Name: h.Text, Slug: h.ID})
	}
	return chapters
}
