// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides one store type per entity over database/sql.
// Public-facing queries thread an explicit Viewer through so the post
// visibility predicate stays visible at every call site instead of
// being hidden in a global query scope.
package store

import "errors"

// ErrNotFound is returned when a lookup by id or slug matches nothing,
// or when the matched post is invisible to the viewer. Handlers map it
// to a 404.
var ErrNotFound = errors.New("not found")

// Viewer describes the caller of a public-facing query. A viewer holding
// the manage-posts capability sees unpublished and future-dated posts;
// everyone else gets the visibility predicate applied.
type Viewer struct {
	CanManagePosts bool
}

// visibilityClause returns a SQL fragment (including the leading AND)
// restricting a query aliased with posts p to publicly visible posts,
// or an empty string when the viewer bypasses filtering.
func visibilityClause(v Viewer) string {
	if v.CanManagePosts {
		return ""
	}
	return " AND p.is_published AND p.posted_at IS NOT NULL AND p.posted_at < NOW()"
}
