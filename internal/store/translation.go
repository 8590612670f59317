// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"smartblog/internal/models"
	"smartblog/internal/slug"
)

// TranslationStore manages per-language post translations. Every lookup
// is scoped to a language, since slugs are only unique within one.
type TranslationStore struct {
	db *sql.DB
}

// NewTranslationStore returns a new TranslationStore.
func NewTranslationStore(db *sql.DB) *TranslationStore {
	return &TranslationStore{db: db}
}

// translationSelect joins the owning post in so the visibility predicate
// can be applied and the Post field populated in one round trip.
const translationSelect = `
	SELECT t.id, t.post_id, t.lang_id, t.slug, t.title, t.subtitle, t.body,
	       t.meta_description, t.created_at, t.updated_at,
	       p.id, p.user_id, p.posted_at, p.is_published, p.created_at, p.updated_at
	FROM post_translations t
	JOIN posts p ON p.id = t.post_id`

func scanTranslation(scanner interface{ Scan(...any) error }) (*models.PostTranslation, error) {
	var t models.PostTranslation
	var p models.Post
	err := scanner.Scan(
		&t.ID, &t.PostID, &t.LangID, &t.Slug, &t.Title, &t.Subtitle, &t.Body,
		&t.MetaDescription, &t.CreatedAt, &t.UpdatedAt,
		&p.ID, &p.UserID, &p.PostedAt, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Post = &p
	return &t, nil
}

// TranslationPage is one page of a translation listing plus the totals
// the presentation layer needs to build pagination links.
type TranslationPage struct {
	Items   []models.PostTranslation `json:"items"`
	Total   int                      `json:"total"`
	Page    int                      `json:"page"`
	PerPage int                      `json:"per_page"`
}

// TotalPages returns the number of pages in the full result set.
func (p *TranslationPage) TotalPages() int {
	if p.PerPage == 0 {
		return 0
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// FindBySlug retrieves a translation by slug within a language. Returns
// ErrNotFound if no row matches, or if the owning post fails the
// visibility predicate for the viewer.
func (s *TranslationStore) FindBySlug(ctx context.Context, slugParam string, langID uuid.UUID, viewer Viewer) (*models.PostTranslation, error) {
	row := s.db.QueryRowContext(ctx,
		translationSelect+` WHERE t.slug = $1 AND t.lang_id = $2`+visibilityClause(viewer),
		slugParam, langID,
	)
	t, err := scanTranslation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find translation by slug: %w", err)
	}
	return t, nil
}

// List returns one page of translations in a language, ordered by the
// owning post's posted_at descending. Posts invisible to the viewer are
// excluded, and Total counts only what the viewer can see.
func (s *TranslationStore) List(ctx context.Context, langID uuid.UUID, viewer Viewer, page, perPage int) (*TranslationPage, error) {
	if page < 1 {
		page = 1
	}

	var total int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM post_translations t
		JOIN posts p ON p.id = t.post_id
		WHERE t.lang_id = $1`+visibilityClause(viewer),
		langID,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count translations: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		translationSelect+`
		WHERE t.lang_id = $1`+visibilityClause(viewer)+`
		ORDER BY p.posted_at DESC NULLS LAST
		LIMIT $2 OFFSET $3`,
		langID, perPage, (page-1)*perPage,
	)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	defer rows.Close()

	result := &TranslationPage{Total: total, Page: page, PerPage: perPage}
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		result.Items = append(result.Items, *t)
	}
	return result, rows.Err()
}

// ListInCategory is List additionally filtered to posts linked to the
// given category through the join table. The category's existence is the
// caller's concern (a missing category is a 404, not an empty page).
func (s *TranslationStore) ListInCategory(ctx context.Context, langID, categoryID uuid.UUID, viewer Viewer, page, perPage int) (*TranslationPage, error) {
	if page < 1 {
		page = 1
	}

	var total int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM post_translations t
		JOIN posts p ON p.id = t.post_id
		JOIN post_categories pc ON pc.post_id = p.id
		WHERE t.lang_id = $1 AND pc.category_id = $2`+visibilityClause(viewer),
		langID, categoryID,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count translations in category: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		translationSelect+`
		JOIN post_categories pc ON pc.post_id = p.id
		WHERE t.lang_id = $1 AND pc.category_id = $2`+visibilityClause(viewer)+`
		ORDER BY p.posted_at DESC NULLS LAST
		LIMIT $3 OFFSET $4`,
		langID, categoryID, perPage, (page-1)*perPage,
	)
	if err != nil {
		return nil, fmt.Errorf("list translations in category: %w", err)
	}
	defer rows.Close()

	result := &TranslationPage{Total: total, Page: page, PerPage: perPage}
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		result.Items = append(result.Items, *t)
	}
	return result, rows.Err()
}

// Create inserts a new translation and returns it. An empty slug is
// generated from the title.
func (s *TranslationStore) Create(ctx context.Context, t *models.PostTranslation) (*models.PostTranslation, error) {
	if t.Slug == "" {
		t.Slug = slug.Generate(t.Title)
	}

	var out models.PostTranslation
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO post_translations (post_id, lang_id, slug, title, subtitle, body, meta_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, post_id, lang_id, slug, title, subtitle, body,
		          meta_description, created_at, updated_at`,
		t.PostID, t.LangID, t.Slug, t.Title, t.Subtitle, t.Body, t.MetaDescription,
	).Scan(
		&out.ID, &out.PostID, &out.LangID, &out.Slug, &out.Title, &out.Subtitle,
		&out.Body, &out.MetaDescription, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create translation: %w", err)
	}
	return &out, nil
}
