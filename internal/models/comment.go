// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reader-submitted comment on a post. Which optional fields
// get populated is decided by configuration at submission time: IP is
// captured only when COMMENTS_SAVE_IP_ADDRESS is on, author email and
// website only when COMMENTS_ASK_FOR_AUTHOR_WEBSITE is on, and the user
// reference only for authenticated submitters when COMMENTS_SAVE_USER_ID
// is on. Comments are append-only: they are never edited or deleted by
// this subsystem.
type Comment struct {
	ID            uuid.UUID  `json:"id"`
	PostID        uuid.UUID  `json:"post_id"`
	UserID        *uuid.UUID `json:"user_id,omitempty"`
	AuthorName    string     `json:"author_name"`
	AuthorEmail   *string    `json:"author_email,omitempty"`
	AuthorWebsite *string    `json:"author_website,omitempty"`
	IP            *string    `json:"-"` // never serialized to readers
	Body          string     `json:"body"`
	Approved      bool       `json:"approved"`
	CreatedAt     time.Time  `json:"created_at"`

	// User is the submitting user, populated by store lookups that join it in.
	User *User `json:"user,omitempty"`
}
