// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostTranslation is a language-specific rendering of a Post: the slug,
// title and body a reader in that language sees. Slugs are unique per
// language, so every slug lookup is scoped to a language.
type PostTranslation struct {
	ID              uuid.UUID `json:"id"`
	PostID          uuid.UUID `json:"post_id"`
	LangID          uuid.UUID `json:"lang_id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Subtitle        *string   `json:"subtitle,omitempty"`
	Body            string    `json:"body"`
	MetaDescription *string   `json:"meta_description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Post is the owning post, populated by store lookups that join it in
	// (the visibility predicate needs it).
	Post *Post `json:"post,omitempty"`
}
