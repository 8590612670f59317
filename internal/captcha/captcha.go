// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package captcha defines the contract a captcha provider plugs into the
// comment pipeline with. Providers live in the host application; this
// package deliberately ships no implementation. A nil Captcha means no
// captcha is configured and both hooks are skipped.
package captcha

import (
	"net/http"

	"smartblog/internal/models"
)

// Captcha is an optional capability over two hooks: a check that runs
// before a comment is accepted, and a preparation hook that runs before
// a post (and its comment form) is shown.
type Captcha interface {
	// VerifyComment runs before a submitted comment is persisted. A
	// non-nil error rejects the submission; it surfaces to the submitter
	// as a validation failure, so the message should be user-readable.
	VerifyComment(r *http.Request, post *models.Post) error

	// PrepareForDisplay runs before a single-post view is rendered, so
	// providers can mint whatever challenge state the comment form needs.
	PrepareForDisplay(r *http.Request, post *models.Post)
}
