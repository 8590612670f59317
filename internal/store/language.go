// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"smartblog/internal/models"
)

// LanguageStore manages the locales translations can be written in.
type LanguageStore struct {
	db *sql.DB
}

// NewLanguageStore returns a new LanguageStore.
func NewLanguageStore(db *sql.DB) *LanguageStore {
	return &LanguageStore{db: db}
}

const languageColumns = `id, code, name, is_default, created_at`

// List returns all languages ordered by code.
func (s *LanguageStore) List(ctx context.Context) ([]models.Language, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+languageColumns+` FROM languages ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	defer rows.Close()

	var items []models.Language
	for rows.Next() {
		var l models.Language
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.IsDefault, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan language: %w", err)
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// FindByCode retrieves a language by its locale code.
func (s *LanguageStore) FindByCode(ctx context.Context, code string) (*models.Language, error) {
	var l models.Language
	err := s.db.QueryRowContext(ctx, `SELECT `+languageColumns+` FROM languages WHERE code = $1`, code).
		Scan(&l.ID, &l.Code, &l.Name, &l.IsDefault, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find language by code: %w", err)
	}
	return &l, nil
}

// Default retrieves the language flagged as the site default.
func (s *LanguageStore) Default(ctx context.Context) (*models.Language, error) {
	var l models.Language
	err := s.db.QueryRowContext(ctx, `SELECT `+languageColumns+` FROM languages WHERE is_default LIMIT 1`).
		Scan(&l.ID, &l.Code, &l.Name, &l.IsDefault, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find default language: %w", err)
	}
	return &l, nil
}

// Create inserts a new language and returns it.
func (s *LanguageStore) Create(ctx context.Context, l *models.Language) (*models.Language, error) {
	var out models.Language
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO languages (code, name, is_default)
		VALUES ($1, $2, $3)
		RETURNING `+languageColumns,
		l.Code, l.Name, l.IsDefault,
	).Scan(&out.ID, &out.Code, &out.Name, &out.IsDefault, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create language: %w", err)
	}
	return &out, nil
}
