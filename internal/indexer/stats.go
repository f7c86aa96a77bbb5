package indexer

import (
	"math"
	"sort"

	"rustbible/internal/navigation"
	"rustbible/internal/search"
)

// Stats summarizes the content of one build.
type Stats struct {
	Books    int `json:"books"`
	Chapters int `json:"chapters"`
	Lessons  int `json:"lessons"`
	Sections int `json:"sections"`
	// BooksWithoutChapters counts books with no level-2 heading.
	BooksWithoutChapters int `json:"books_without_chapters"`
	// EntriesByKind counts search entries per type.
	EntriesByKind map[search.Kind]int `json:"entries_by_type"`
	// ChaptersPerBook describes the distribution of chapter counts.
	ChaptersPerBook CountStats `json:"chapters_per_book"`
	// SectionsPerLesson describes the distribution of section counts.
	SectionsPerLesson CountStats `json:"sections_per_lesson"`
}

// CountStats contains summary statistics over a list of counts.
type CountStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

// ComputeStats derives build statistics from the index and its entries.
func ComputeStats(ix *navigation.Index, entries []search.Entry) Stats {
	stats := Stats{
		Books:         len(ix.Books),
		Lessons:       len(ix.Lessons),
		EntriesByKind: make(map[search.Kind]int, len(search.Kinds())),
	}

	chapterCounts := make([]int, 0, len(ix.Books))
	for _, b := range ix.Books {
		stats.Chapters += len(b.Chapters)
		if len(b.Chapters) == 0 {
			stats.BooksWithoutChapters++
		}
		chapterCounts = append(chapterCounts, len(b.Chapters))
	}

	sectionCounts := make([]int, 0, len(ix.Lessons))
	for _, l := range ix.Lessons {
		stats.Sections += len(l.Sections)
		sectionCounts = append(sectionCounts, len(l.Sections))
	}

	for _, e := range entries {
		stats.EntriesByKind[e.Kind]++
	}

	stats.ChaptersPerBook = computeCountStats(chapterCounts)
	stats.SectionsPerLesson = computeCountStats(sectionCounts)
	return stats
}

// computeCountStats computes min, max, mean, and p95 from counts.
func computeCountStats(counts []int) CountStats {
	if len(counts) == 0 {
		return CountStats{}
	}

	// Sort for percentile calculation
	sorted := make([]int, len(counts))
	copy(sorted, counts)
	sort.Ints(sorted)

	sum := 0
	for _, c := range counts {
		sum += c
	}
	mean := float64(sum) / float64(len(counts))

	p95Index := int(math.Ceil(float64(len(sorted))*0.95)) - 1
	if p95Index < 0 {
		p95Index = 0
	}

	return CountStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*100) / 100, // Round to 2 decimal places
		P95:  sorted[p95Index],
	}
}
