// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"smartblog/internal/models"
	"smartblog/internal/store"
)

const (
	// LanguageKey is the context key for the resolved request language.
	LanguageKey contextKey = "language"
)

// DetectLanguage resolves the active language for a request from its
// {locale} URL segment and stores it in the request context. An unknown
// or missing locale falls back to the site default language, so public
// pages never 404 on the locale segment alone.
func DetectLanguage(languages *store.LanguageStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var lang *models.Language
			if code := chi.URLParam(r, "locale"); code != "" {
				found, err := languages.FindByCode(ctx, code)
				if err == nil {
					lang = found
				}
			}

			if lang == nil {
				def, err := languages.Default(ctx)
				if err != nil {
					slog.Error("no default language configured", "error", err)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				lang = def
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, LanguageKey, lang)))
		})
	}
}

// LanguageFromCtx extracts the resolved language from the request context.
// Returns nil outside of routes wrapped with DetectLanguage.
func LanguageFromCtx(ctx context.Context) *models.Language {
	lang, _ := ctx.Value(LanguageKey).(*models.Language)
	return lang
}
