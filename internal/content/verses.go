package content

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"rustbible/internal/slug"
)

// VersePolicy selects how verse numbers are assigned.
type VersePolicy string

const (
	// VerseSequential numbers every candidate line 1, 2, 3, ... restarting at
	// each chapter; the verse text is the whole trimmed line.
	VerseSequential VersePolicy = "sequential"
	// VerseNumbered takes the number from a leading integer token and strips it
	// from the text; lines without one are skipped.
	VerseNumbered VersePolicy = "numbered"
)

var (
	numberedLine  = regexp.MustCompile(`^(\d+)\s+(.+)$`)
	chapterNumber = regexp.MustCompile(`(?i)chapter\s+(\d+)`)
)

// ParseVersePolicy validates a policy name.
func ParseVersePolicy(s string) (VersePolicy, error) {
	switch p := VersePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case VerseSequential, VerseNumbered:
		return p, nil
	default:
		return "", fmt.Errorf("unknown verse policy %q (want %q or %q)", s, VerseSequential, VerseNumbered)
	}
}

// Verse is one numbered paragraph line scoped to the chapter it appears in.
type Verse struct {
	Text          string `json:"text"`
	Number        int    `json:"verseNumber"`
	Chapter       string `json:"chapter"`
	ChapterSlug   string `json:"chapterSlug"`
	ChapterNumber int    `json:"chapterNumber"`
}

// Verses scans body for verse lines. The current chapter is the most recent
// level-2 heading; lines before the first chapter carry an empty chapter.
// A candidate is a trimmed, non-empty line outside fenced code that does not
// start with "#", "- " or "> ". An unknown policy yields no verses.
func Verses(body string, policy VersePolicy) []Verse {
	if policy != VerseSequential && policy != VerseNumbered {
		return []Verse{}
	}

	var (
		verses     []Verse
		ids        = slug.NewRegistry()
		current    Verse
		ordinal    int
		seqCounter int
	)

	for _, line := range proseLines(body) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if level, text, ok := matchHeading(line); ok {
			id := ids.Unique(slug.Text(text))
			if level == 2 {
				ordinal++
				current = Verse{
					Chapter:       text,
					ChapterSlug:   id,
					ChapterNumber: chapterNumberOf(text, ordinal),
				}
				seqCounter = 0
			}
			continue
		}

		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "> ") {
			continue
		}

		verse := current
		switch policy {
		case VerseNumbered:
			m := numberedLine.FindStringSubmatch(trimmed)
			if m == nil {
				continue
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			verse.Number = n
			verse.Text = m[2]
		case VerseSequential:
			seqCounter++
			verse.Number = seqCounter
			verse.Text = trimmed
		}
		verses = append(verses, verse)
	}

	return verses
}

// chapterNumberOf reads "Chapter N" from a heading, falling back to the
// chapter's 1-based position in the book.
func chapterNumberOf(heading string, ordinal int) int {
	if m := chapterNumber.FindStringSubmatch(heading); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return ordinal
}
