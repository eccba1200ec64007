package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
)

const productColumns = `id, name, slug, description, price, category_id, images, features, fabric, work_details, in_stock, featured, created_at`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	var categoryID sql.NullInt64
	var images, features string
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &categoryID,
		&images, &features, &p.Fabric, &p.WorkDetails, &p.InStock, &p.Featured, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		id := int(categoryID.Int64)
		p.CategoryID = &id
	}
	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		return nil, fmt.Errorf("decode product images: %w", err)
	}
	if err := json.Unmarshal([]byte(features), &p.Features); err != nil {
		return nil, fmt.Errorf("decode product features: %w", err)
	}
	return &p, nil
}

func unmarshalStringList(data string, dst *[]string) error {
	return json.Unmarshal([]byte(data), dst)
}

func marshalList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ListProducts returns products matching every predicate in filter. A nil
// filter (or an empty one) returns everything. An unknown category slug is
// skipped rather than turned into an empty result.
func (s *Store) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var where []string
	var args []any

	if filter != nil {
		if filter.CategoryID != nil {
			where = append(where, "category_id = ?")
			args = append(args, *filter.CategoryID)
		}
		if filter.CategorySlug != nil {
			category, err := s.GetCategoryBySlug(ctx, *filter.CategorySlug)
			if err != nil {
				return nil, err
			}
			if category != nil {
				where = append(where, "category_id = ?")
				args = append(args, category.ID)
			}
		}
		if filter.Featured != nil {
			where = append(where, "featured = ?")
			args = append(args, *filter.Featured)
		}
		if filter.MinPrice != nil {
			where = append(where, "price >= ?")
			args = append(args, *filter.MinPrice)
		}
		if filter.MaxPrice != nil {
			where = append(where, "price <= ?")
			args = append(args, *filter.MaxPrice)
		}
		if filter.Search != nil {
			where = append(where, "name LIKE ?")
			args = append(args, "%"+*filter.Search+"%")
		}
		if filter.Fabric != nil {
			where = append(where, "fabric LIKE ?")
			args = append(args, "%"+*filter.Fabric+"%")
		}
		if filter.WorkDetails != nil {
			where = append(where, "work_details LIKE ?")
			args = append(args, "%"+*filter.WorkDetails+"%")
		}
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *Store) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return s.getProduct(ctx, `id = ?`, id)
}

func (s *Store) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return s.getProduct(ctx, `slug = ?`, slug)
}

func (s *Store) getProduct(ctx context.Context, where string, arg any) (*models.Product, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE `+where, arg)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *Store) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	images, err := marshalList(product.Images)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	features, err := marshalList(product.Features)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	var categoryID any
	if product.CategoryID != nil {
		categoryID = *product.CategoryID
	}

	res, err := s.DB.ExecContext(ctx,
		`INSERT INTO products (name, slug, description, price, category_id, images, features, fabric, work_details, in_stock, featured)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.Name, product.Slug, product.Description, product.Price, categoryID,
		images, features, product.Fabric, product.WorkDetails, product.InStock, product.Featured)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return s.GetProduct(ctx, int(id))
}

func (s *Store) UpdateProduct(ctx context.Context, id int, patch models.ProductPatch) (*models.Product, error) {
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
	if patch.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *patch.Price)
	}
	if patch.ClearCategory {
		sets = append(sets, "category_id = NULL")
	} else if patch.CategoryID != nil {
		sets = append(sets, "category_id = ?")
		args = append(args, *patch.CategoryID)
	}
	if patch.Images != nil {
		images, err := marshalList(*patch.Images)
		if err != nil {
			return nil, fmt.Errorf("update product: %w", err)
		}
		sets = append(sets, "images = ?")
		args = append(args, images)
	}
	if patch.Features != nil {
		features, err := marshalList(*patch.Features)
		if err != nil {
			return nil, fmt.Errorf("update product: %w", err)
		}
		sets = append(sets, "features = ?")
		args = append(args, features)
	}
	if patch.Fabric != nil {
		sets = append(sets, "fabric = ?")
		args = append(args, *patch.Fabric)
	}
	if patch.WorkDetails != nil {
		sets = append(sets, "work_details = ?")
		args = append(args, *patch.WorkDetails)
	}
	if patch.InStock != nil {
		sets = append(sets, "in_stock = ?")
		args = append(args, *patch.InStock)
	}
	if patch.Featured != nil {
		sets = append(sets, "featured = ?")
		args = append(args, *patch.Featured)
	}
	if len(sets) == 0 {
		return s.GetProduct(ctx, id)
	}

	args = append(args, id)
	if _, err := s.DB.ExecContext(ctx,
		`UPDATE products SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return s.GetProduct(ctx, id)
}

// DeleteProduct removes the product; its reviews go with it via the cascade
// on reviews.product_id. Cart or order rows still pointing at it make the
// foreign key reject the delete.
func (s *Store) DeleteProduct(ctx context.Context, id int) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return n > 0, nil
}
