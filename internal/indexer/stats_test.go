package indexer

import (
	"testing"

	"rustbible/internal/content"
	"rustbible/internal/navigation"
	"rustbible/internal/search"
)

func TestComputeCountStats(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   CountStats
	}{
		{
			name:   "empty",
			counts: nil,
			want:   CountStats{},
		},
		{
			name:   "single",
			counts: []int{4},
			want:   CountStats{Min: 4, Max: 4, Mean: 4, P95: 4},
		},
		{
			name:   "unsorted",
			counts: []int{3, 0, 1},
			want:   CountStats{Min: 0, Max: 3, Mean: 1.33, P95: 3},
		},
		{
			name:   "twenty values",
			counts: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
			want:   CountStats{Min: 1, Max: 20, Mean: 10.5, P95: 19},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeCountStats(tt.counts)
			if got != tt.want {
				t.Errorf("computeCountStats(%v) = %+v, want %+v", tt.counts, got, tt.want)
			}
		})
	}
}

func TestComputeCountStats_DoesNotReorderInput(t *testing.T) {
	counts := []int{5, 1, 3}
	_ = computeCountStats(counts)
	if counts[0] != 5 || counts[1] != 1 || counts[2] != 3 {
		t.Errorf("computeCountStats() modified input: %v", counts)
	}
}

func TestComputeStats(t *testing.T) {
	ix := &navigation.Index{
		Books: []navigation.Book{
			{Name: "Genesis", Chapters: []content.Chapter{{Name: "Intro", Slug: "intro"}, {Name: "Fall", Slug: "fall"}}},
			{Name: "Exodus", Chapters: []content.Chapter{}},
		},
		Lessons: []navigation.Lesson{
			{Name: "Ownership", Sections: []navigation.Section{{Name: "Intro"}, {Name: "Moves"}, {Name: "Borrowing"}}},
		},
	}
	entries := search.FromIndex(ix)

	stats := ComputeStats(ix, entries)

	if stats.Books != 2 || stats.Chapters != 2 || stats.Lessons != 1 || stats.Sections != 3 {
		t.Errorf("ComputeStats() counts = %+v", stats)
	}
	if stats.BooksWithoutChapters != 1 {
		t.Errorf("BooksWithoutChapters = %d, want 1", stats.BooksWithoutChapters)
	}

	wantKinds := map[search.Kind]int{
		search.KindBook:    2,
		search.KindChapter: 2,
		search.KindLesson:  1,
		search.KindSection: 3,
	}
	for kind, want := range wantKinds {
		if got := stats.EntriesByKind[kind]; got != want {
			t.Errorf("EntriesByKind[%s] = %d, want %d", kind, got, want)
		}
	}

	if stats.ChaptersPerBook.Max != 2 || stats.ChaptersPerBook.Min != 0 {
		t.Errorf("ChaptersPerBook = %+v", stats.ChaptersPerBook)
	}
	if stats.SectionsPerLesson.Mean != 3 {
		t.Errorf("SectionsPerLesson.Mean = %v, want 3", stats.SectionsPerLesson.Mean)
	}
}
