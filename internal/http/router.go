package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"rustbible/internal/handlers"
	"rustbible/internal/metrics"
	"rustbible/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	SiteService service.SiteService
	Metrics     *metrics.Metrics // Optional; /metrics is not mounted when nil
	DB          handlers.Pinger  // Optional
	PublicDir   string           // Served as static files
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Use(CORS)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(func(next http.Handler) http.Handler {
		return InstrumentHandler(next, deps.Metrics)
	})

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.PublicDir, deps.DB))
		r.Method(http.MethodGet, "/search", handlers.NewSearchHandler(deps.SiteService))
		r.Method(http.MethodGet, "/navigation", handlers.NewNavigationHandler(deps.SiteService))
		r.Method(http.MethodGet, "/resolve", handlers.NewResolveHandler(deps.SiteService))
		r.Method(http.MethodGet, "/verse", handlers.NewVerseHandler(deps.SiteService))

		progress := handlers.NewProgressHandler(deps.SiteService)
		r.Method(http.MethodGet, "/progress", progress)
		r.Method(http.MethodPost, "/progress", progress)

		darkMode := handlers.NewDarkModeHandler(deps.SiteService)
		r.Method(http.MethodGet, "/preferences/dark-mode", darkMode)
		r.Method(http.MethodPut, "/preferences/dark-mode", darkMode)
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	if deps.PublicDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(deps.PublicDir)))
	}

	return r
}
