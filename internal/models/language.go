// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Language represents a locale that post translations can be written in.
// Exactly one language is flagged as the site default; requests with an
// unknown locale segment fall back to it.
type Language struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"` // BCP 47-ish locale code, e.g. "en", "pt-br"
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}
