// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package search defines the full-text search collaborator the blog
// delegates term matching to, plus a Postgres-backed default. The blog
// treats the result ordering as opaque — ranking is the engine's business.
package search

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"smartblog/internal/models"
	"smartblog/internal/store"
)

// Searcher matches a free-text query against post translations in one
// language, returning results in engine-defined order.
type Searcher interface {
	Search(ctx context.Context, query string, langID uuid.UUID, viewer store.Viewer) ([]models.PostTranslation, error)
}

// PostgresSearcher is the default Searcher, running websearch-style
// full-text queries against title, subtitle, and body.
type PostgresSearcher struct {
	db    *sql.DB
	limit int
}

// NewPostgresSearcher returns a searcher capped at limit results.
func NewPostgresSearcher(db *sql.DB, limit int) *PostgresSearcher {
	if limit <= 0 {
		limit = 50
	}
	return &PostgresSearcher{db: db, limit: limit}
}

// Search implements Searcher. Visibility filtering applies the same way
// it does to listings: invisible posts never show up in results for
// unprivileged viewers.
func (s *PostgresSearcher) Search(ctx context.Context, query string, langID uuid.UUID, viewer store.Viewer) ([]models.PostTranslation, error) {
	visibility := ""
	if !viewer.CanManagePosts {
		visibility = " AND p.is_published AND p.posted_at IS NOT NULL AND p.posted_at < NOW()"
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.post_id, t.lang_id, t.slug, t.title, t.subtitle, t.body,
		       t.meta_description, t.created_at, t.updated_at,
		       p.id, p.user_id, p.posted_at, p.is_published, p.created_at, p.updated_at
		FROM post_translations t
		JOIN posts p ON p.id = t.post_id,
		     websearch_to_tsquery('simple', $1) q
		WHERE t.lang_id = $2
		  AND to_tsvector('simple', t.title || ' ' || COALESCE(t.subtitle, '') || ' ' || t.body) @@ q`+visibility+`
		ORDER BY ts_rank(to_tsvector('simple', t.title || ' ' || COALESCE(t.subtitle, '') || ' ' || t.body), q) DESC
		LIMIT $3`,
		query, langID, s.limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search translations: %w", err)
	}
	defer rows.Close()

	var items []models.PostTranslation
	for rows.Next() {
		var t models.PostTranslation
		var p models.Post
		err := rows.Scan(
			&t.ID, &t.PostID, &t.LangID, &t.Slug, &t.Title, &t.Subtitle, &t.Body,
			&t.MetaDescription, &t.CreatedAt, &t.UpdatedAt,
			&p.ID, &p.UserID, &p.PostedAt, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		t.Post = &p
		items = append(items, t)
	}
	return items, rows.Err()
}
