package handlers

import (
	"net/http"
	"strconv"

	"rustbible/internal/navigation"
	"rustbible/internal/search"
	"rustbible/internal/service"
	"rustbible/internal/verses"
)

// SearchHandler handles GET /api/search?q=&limit=.
type SearchHandler struct {
	siteService service.SiteService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(siteService service.SiteService) *SearchHandler {
	return &SearchHandler{siteService: siteService}
}

// SearchResponse represents the HTTP response payload for search.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []search.Entry `json:"results"`
}

// ServeHTTP handles HTTP requests for search.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method != http.MethodGet {
		methodNotAllowed(ctx, w, r)
		return
	}

	query := r.URL.Query().Get("q")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	results, err := h.siteService.Search(ctx, query, limit)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to search")
		return
	}
	if results == nil {
		results = []search.Entry{}
	}

	writeJSON(ctx, w, http.StatusOK, SearchResponse{Query: query, Results: results})
}

// NavigationHandler handles GET /api/navigation.
type NavigationHandler struct {
	siteService service.SiteService
}

// NewNavigationHandler creates a new NavigationHandler.
func NewNavigationHandler(siteService service.SiteService) *NavigationHandler {
	return &NavigationHandler{siteService: siteService}
}

// ServeHTTP responds with the navigation index.
func (h *NavigationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method != http.MethodGet {
		methodNotAllowed(ctx, w, r)
		return
	}

	ix, err := h.siteService.Navigation(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to build navigation")
		return
	}
	if ix == nil {
		ix = &navigation.Index{Books: []navigation.Book{}, Lessons: []navigation.Lesson{}}
	}

	writeJSON(ctx, w, http.StatusOK, ix)
}

// ResolveHandler handles GET /api/resolve?url=.
type ResolveHandler struct {
	siteService service.SiteService
}

// NewResolveHandler creates a new ResolveHandler.
func NewResolveHandler(siteService service.SiteService) *ResolveHandler {
	return &ResolveHandler{siteService: siteService}
}

// ServeHTTP responds with the resolved page, or 404 when nothing matches.
func (h *ResolveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method != http.MethodGet {
		methodNotAllowed(ctx, w, r)
		return
	}

	page, err := h.siteService.Resolve(ctx, r.URL.Query().Get("url"))
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to resolve url")
		return
	}

	writeJSON(ctx, w, http.StatusOK, page)
}

// VerseHandler handles GET /api/verse?mode=random|daily.
type VerseHandler struct {
	siteService service.SiteService
}

// NewVerseHandler creates a new VerseHandler.
func NewVerseHandler(siteService service.SiteService) *VerseHandler {
	return &VerseHandler{siteService: siteService}
}

// VerseResponse is a verse with the URL of its chapter.
type VerseResponse struct {
	verses.Verse
	URL string `json:"url"`
}

// ServeHTTP responds with one verse.
func (h *VerseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method != http.MethodGet {
		methodNotAllowed(ctx, w, r)
		return
	}

	v, err := h.siteService.Verse(ctx, service.VerseMode(r.URL.Query().Get("mode")))
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to pick a verse")
		return
	}

	writeJSON(ctx, w, http.StatusOK, VerseResponse{Verse: v, URL: v.URL()})
}
