// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"smartblog/internal/models"
)

// CommentStore manages reader comments. Comments are append-only: there
// is no update or delete path in this subsystem.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore returns a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `id, post_id, user_id, author_name, author_email,
	author_website, ip, body, approved, created_at`

// Create persists a new comment under its post and returns it.
func (s *CommentStore) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	var out models.Comment
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO comments (post_id, user_id, author_name, author_email,
		                      author_website, ip, body, approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+commentColumns,
		c.PostID, c.UserID, c.AuthorName, c.AuthorEmail,
		c.AuthorWebsite, c.IP, c.Body, c.Approved,
	).Scan(
		&out.ID, &out.PostID, &out.UserID, &out.AuthorName, &out.AuthorEmail,
		&out.AuthorWebsite, &out.IP, &out.Body, &out.Approved, &out.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &out, nil
}

// ListApprovedForPost returns a post's approved comments in insertion
// order, with each comment's submitting user joined in (one round trip,
// not a lookup per comment).
func (s *CommentStore) ListApprovedForPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.post_id, c.user_id, c.author_name, c.author_email,
		       c.author_website, c.ip, c.body, c.approved, c.created_at,
		       u.id, u.email, u.display_name, u.role
		FROM comments c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1 AND c.approved
		ORDER BY c.created_at, c.id
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		var c models.Comment
		var uid *uuid.UUID
		var email, name, role sql.NullString
		err := rows.Scan(
			&c.ID, &c.PostID, &c.UserID, &c.AuthorName, &c.AuthorEmail,
			&c.AuthorWebsite, &c.IP, &c.Body, &c.Approved, &c.CreatedAt,
			&uid, &email, &name, &role,
		)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		if uid != nil {
			c.User = &models.User{
				ID:          *uid,
				Email:       email.String,
				DisplayName: name.String,
				Role:        models.Role(role.String),
			}
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// CountForPost returns the number of comments on a post, approved or not.
func (s *CommentStore) CountForPost(ctx context.Context, postID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}
