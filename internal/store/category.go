// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"smartblog/internal/models"
)

// CategoryStore manages the category tree in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, description, parent_id, sort_order, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description,
		&c.ParentID, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by sort_order then name, with the
// number of posts associated to each.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.slug, c.description, c.parent_id, c.sort_order,
		       c.created_at, c.updated_at,
		       COUNT(pc.id) AS post_count
		FROM categories c
		LEFT JOIN post_categories pc ON pc.category_id = c.id
		GROUP BY c.id
		ORDER BY c.sort_order, c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.Description,
			&c.ParentID, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
			&c.PostCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Roots returns the categories with no parent, ordered by sort_order then name.
func (s *CategoryStore) Roots(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE parent_id IS NULL
		ORDER BY sort_order, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list root categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// AttachChildren fills the Children field for every category in cats with
// a single batched query, so rendering a whole tree level does not issue
// one lookup per node.
func (s *CategoryStore) AttachChildren(ctx context.Context, cats []models.Category) error {
	if len(cats) == 0 {
		return nil
	}

	placeholders := make([]string, len(cats))
	args := make([]any, len(cats))
	for i, c := range cats {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = c.ID
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE parent_id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY sort_order, name
	`, args...)
	if err != nil {
		return fmt.Errorf("attach children: %w", err)
	}
	defer rows.Close()

	byParent := make(map[uuid.UUID][]models.Category)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return fmt.Errorf("scan category: %w", err)
		}
		byParent[*c.ParentID] = append(byParent[*c.ParentID], *c)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range cats {
		cats[i].Children = byParent[cats[i].ID]
	}
	return nil
}

// AncestorsAndSelf returns the chain from the root ancestor down to the
// category with the given id, inclusive. Used for breadcrumb rendering.
// Returns ErrNotFound if the id does not exist.
func (s *CategoryStore) AncestorsAndSelf(ctx context.Context, id uuid.UUID) ([]models.Category, error) {
	flat, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	// Index the flat snapshot by id rather than chasing parent rows with
	// per-node queries.
	arena := make(map[uuid.UUID]models.Category, len(flat))
	for _, c := range flat {
		arena[c.ID] = c
	}

	cur, ok := arena[id]
	if !ok {
		return nil, ErrNotFound
	}

	chain := []models.Category{cur}
	seen := map[uuid.UUID]bool{cur.ID: true}
	for cur.ParentID != nil {
		parent, ok := arena[*cur.ParentID]
		if !ok || seen[parent.ID] {
			// Dangling parent or a cycle: stop at what we have. The schema
			// forbids cycles, this guard keeps a corrupt row from hanging us.
			break
		}
		seen[parent.ID] = true
		chain = append(chain, parent)
		cur = parent
	}

	// Reverse so the root comes first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// FindBySlug retrieves a category by slug. Returns ErrNotFound on a miss:
// viewing an unknown category is a terminal 404, not an empty listing.
func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// FindByID retrieves a category by id. Returns ErrNotFound on a miss.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug, description, parent_id, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description, c.ParentID, c.SortOrder,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Delete removes a category by id. Children are re-parented to the root
// level (ON DELETE SET NULL) and join rows are removed by cascade.
func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
