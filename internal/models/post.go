// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is the language-independent core of a blog post. Everything a
// reader sees (title, body, slug) lives on its PostTranslation rows;
// the post itself carries only publishing state and ownership.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	PostedAt    *time.Time `json:"posted_at,omitempty"` // future value hides the post from public listings
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// VisibleAt reports whether the post passes the public visibility
// predicate at the given instant: published, with a posted_at strictly
// in the past. Callers holding the manage-posts capability skip this
// check entirely (see store.Viewer).
func (p *Post) VisibleAt(now time.Time) bool {
	if !p.IsPublished {
		return false
	}
	if p.PostedAt == nil {
		return false
	}
	return p.PostedAt.Before(now)
}
