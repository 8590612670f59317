// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/render"
)

// ErrResponse is the JSON error envelope for every handler failure.
// It implements render.Renderer so handlers can `render.Render(w, r, ...)`.
type ErrResponse struct {
	HTTPStatusCode int    `json:"-"`
	StatusText     string `json:"status"`
	ErrorText      string `json:"error,omitempty"`
}

// Render implements render.Renderer.
func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// errNotFound is the terminal miss response for slug/category/post lookups.
func errNotFound() render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     "not found",
	}
}

// errValidation surfaces a retryable submission problem (bad fields,
// captcha rejection) to the submitter.
func errValidation(msg string) render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusUnprocessableEntity,
		StatusText:     "validation failed",
		ErrorText:      msg,
	}
}

// errFeatureDisabled signals a fatal configuration mismatch. It is not
// retryable; the deployment has the feature switched off.
func errFeatureDisabled(msg string) render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "feature disabled",
		ErrorText:      msg,
	}
}

// errStorage propagates a storage failure as an opaque 500.
func errStorage() render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "internal error",
	}
}

// errUnauthorized rejects a login attempt.
func errUnauthorized() render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusUnauthorized,
		StatusText:     "unauthorized",
	}
}
