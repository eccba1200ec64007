package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
)

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, slug, description FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description); err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	return s.getCategory(ctx, `id = ?`, id)
}

func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.getCategory(ctx, `slug = ?`, slug)
}

func (s *Store) getCategory(ctx context.Context, where string, arg any) (*models.Category, error) {
	var c models.Category
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, name, slug, description FROM categories WHERE `+where, arg).
		Scan(&c.ID, &c.Name, &c.Slug, &c.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	res, err := s.DB.ExecContext(ctx,
		`INSERT INTO categories (name, slug, description) VALUES (?, ?, ?)`,
		category.Name, category.Slug, category.Description)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return s.GetCategory(ctx, int(id))
}

func (s *Store) UpdateCategory(ctx context.Context, id int, patch models.CategoryPatch) (*models.Category, error) {
	var sets []string
	var args []any
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Slug != nil {
		sets = append(sets, "slug = ?")
		args = append(args, *patch.Slug)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if len(sets) == 0 {
		return s.GetCategory(ctx, id)
	}

	args = append(args, id)
	if _, err := s.DB.ExecContext(ctx,
		`UPDATE categories SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return s.GetCategory(ctx, id)
}

// DeleteCategory does not check for dependent products; the foreign key on
// products.category_id rejects the delete if any still point here.
func (s *Store) DeleteCategory(ctx context.Context, id int) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return n > 0, nil
}
