// Package router sets up all HTTP routes and middleware chains for the
// blog subsystem. It organizes routes into the locale-scoped public blog
// group and the demo host's auth endpoints.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"smartblog/internal/handlers"
	"smartblog/internal/middleware"
	"smartblog/internal/session"
	"smartblog/internal/store"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, languages *store.LanguageStore, reader *handlers.Reader, comments *handlers.Comments, auth *handlers.Auth) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no language resolution.
	r.Get("/health", healthHandler)

	// Demo host auth. The blog only consumes the resulting session.
	r.Post("/login", auth.Login)
	r.Post("/logout", auth.Logout)

	// Public blog, scoped by locale. Search sits outside the {locale}
	// segment and runs in the default language.
	r.Route("/blog", func(r chi.Router) {
		r.With(middleware.DetectLanguage(languages)).Get("/search", reader.Search)

		r.Route("/{locale}", func(r chi.Router) {
			r.Use(middleware.DetectLanguage(languages))

			r.Get("/", reader.Index)
			r.Get("/category/{categorySlug}", reader.Category)
			r.Get("/category/*", reader.CategoryHierarchy)
			r.Post("/comments/{slug}", comments.Add)
			r.Get("/{slug}", reader.Show)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
