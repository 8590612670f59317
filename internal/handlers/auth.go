// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"smartblog/internal/session"
	"smartblog/internal/store"
)

// Auth handles login and logout for the demo host application. The blog
// itself has no account system; sessions exist so editors can preview
// unpublished posts.
type Auth struct {
	users    *store.UserStore
	sessions *session.Store
}

// NewAuth creates an Auth handler group.
func NewAuth(users *store.UserStore, sessions *session.Store) *Auth {
	return &Auth{users: users, sessions: sessions}
}

// Login authenticates email/password form credentials and establishes a
// Valkey-backed session.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		render.Render(w, r, errValidation("malformed form submission"))
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		render.Render(w, r, errValidation("Email and password are required."))
		return
	}

	user, err := h.users.Authenticate(ctx, email, password)
	if errors.Is(err, store.ErrNotFound) {
		render.Render(w, r, errUnauthorized())
		return
	}
	if err != nil {
		slog.Error("authenticate failed", "error", err)
		render.Render(w, r, errStorage())
		return
	}

	if _, err := h.sessions.Create(ctx, w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	}); err != nil {
		slog.Error("create session failed", "error", err)
		render.Render(w, r, errStorage())
		return
	}

	slog.Info("user logged in", "email", user.Email, "role", user.Role)
	writeJSON(w, http.StatusOK, map[string]string{
		"status":       "ok",
		"display_name": user.DisplayName,
		"role":         string(user.Role),
	})
}

// Logout destroys the current session, if any.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("destroy session failed", "error", err)
		render.Render(w, r, errStorage())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
