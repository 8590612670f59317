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
)

// PostStore manages the language-independent post records.
type PostStore struct {
	db *sql.DB
}

// NewPostStore returns a new PostStore.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, user_id, posted_at, is_published, created_at, updated_at`

func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.UserID, &p.PostedAt, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByID retrieves a post by id, applying the visibility predicate for
// the given viewer. Returns ErrNotFound if the post does not exist or is
// invisible to the viewer.
func (s *PostStore) FindByID(ctx context.Context, id uuid.UUID, viewer Viewer) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT p.id, p.user_id, p.posted_at, p.is_published, p.created_at, p.updated_at
		FROM posts p
		WHERE p.id = $1`+visibilityClause(viewer),
		id,
	)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it.
func (s *PostStore) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (user_id, posted_at, is_published)
		VALUES ($1, $2, $3)
		RETURNING `+postColumns,
		p.UserID, p.PostedAt, p.IsPublished,
	)
	result, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// AssignCategory links a post to a category through the join table.
// Assigning the same pair twice is a no-op.
func (s *PostStore) AssignCategory(ctx context.Context, postID, categoryID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO post_categories (post_id, category_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, category_id) DO NOTHING
	`, postID, categoryID)
	if err != nil {
		return fmt.Errorf("assign category: %w", err)
	}
	return nil
}

// Delete removes a post. Translations, comments, and category links go
// with it via the cascade constraints.
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
