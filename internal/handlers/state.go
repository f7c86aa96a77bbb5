package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"rustbible/internal/contextutil"
	"rustbible/internal/progress"
	"rustbible/internal/service"
)

const (
	// ClientIDHeader carries the reading-state owner of a request.
	ClientIDHeader = "X-Client-ID"
	// ClientIDCookie is used when the header is absent.
	ClientIDCookie = "rustbible_client"

	clientCookieMaxAge = 365 * 24 * 60 * 60
)

// clientID returns the caller's id from the header or cookie. A new id is
// issued as a cookie when neither is present.
func clientID(w http.ResponseWriter, r *http.Request) string {
	if id := r.Header.Get(ClientIDHeader); id != "" {
		return id
	}
	if c, err := r.Cookie(ClientIDCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     ClientIDCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   clientCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set(ClientIDHeader, id)
	return id
}

// ProgressHandler handles GET and POST /api/progress.
type ProgressHandler struct {
	siteService service.SiteService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(siteService service.SiteService) *ProgressHandler {
	return &ProgressHandler{siteService: siteService}
}

// ProgressResponse represents the reading sessions of a client.
type ProgressResponse struct {
	Sessions []progress.Session `json:"sessions"`
	Recorded *bool              `json:"recorded,omitempty"`
}

// ServeHTTP lists (GET) or records (POST) reading sessions.
func (h *ProgressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	switch r.Method {
	case http.MethodGet:
		sessions, err := h.siteService.Progress(ctx, clientID(w, r))
		if err != nil {
			handleServiceError(ctx, w, err, "Failed to load reading sessions")
			return
		}
		if sessions == nil {
			sessions = []progress.Session{}
		}
		writeJSON(ctx, w, http.StatusOK, ProgressResponse{Sessions: sessions})

	case http.MethodPost:
		var session progress.Session
		if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
			logger.WarnContext(ctx, "invalid request body", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		update, err := h.siteService.RecordProgress(ctx, clientID(w, r), session)
		if err != nil {
			handleServiceError(ctx, w, err, "Failed to record reading session")
			return
		}
		if update.Sessions == nil {
			update.Sessions = []progress.Session{}
		}
		recorded := update.Recorded
		writeJSON(ctx, w, http.StatusOK, ProgressResponse{Sessions: update.Sessions, Recorded: &recorded})

	default:
		methodNotAllowed(ctx, w, r)
	}
}

// DarkModeHandler handles GET and PUT /api/preferences/dark-mode.
type DarkModeHandler struct {
	siteService service.SiteService
}

// NewDarkModeHandler creates a new DarkModeHandler.
func NewDarkModeHandler(siteService service.SiteService) *DarkModeHandler {
	return &DarkModeHandler{siteService: siteService}
}

// DarkModePayload is the request and response body of the dark-mode endpoint.
type DarkModePayload struct {
	Enabled bool `json:"enabled"`
}

// ServeHTTP reads (GET) or stores (PUT) the dark-mode preference.
func (h *DarkModeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	switch r.Method {
	case http.MethodGet:
		on, err := h.siteService.DarkMode(ctx, clientID(w, r))
		if err != nil {
			handleServiceError(ctx, w, err, "Failed to load preference")
			return
		}
		writeJSON(ctx, w, http.StatusOK, DarkModePayload{Enabled: on})

	case http.MethodPut:
		var req DarkModePayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WarnContext(ctx, "invalid request body", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := h.siteService.SetDarkMode(ctx, clientID(w, r), req.Enabled); err != nil {
			handleServiceError(ctx, w, err, "Failed to store preference")
			return
		}
		writeJSON(ctx, w, http.StatusOK, req)

	default:
		methodNotAllowed(ctx, w, r)
	}
}
