package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
)

// ListCartItems returns the user's cart, each row joined with its product.
// A cart item whose product row is missing is a data fault and surfaces as
// ErrIntegrity instead of being dropped from the result.
func (s *Store) ListCartItems(ctx context.Context, userID int) ([]models.CartItemWithProduct, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.created_at,
		       p.id, p.name, p.slug, p.description, p.price, p.category_id,
		       p.images, p.features, p.fabric, p.work_details, p.in_stock, p.featured, p.created_at
		FROM cart_items ci
		LEFT JOIN products p ON ci.product_id = p.id
		WHERE ci.user_id = ?
		ORDER BY ci.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var items []models.CartItemWithProduct
	for rows.Next() {
		var item models.CartItemWithProduct
		var productID sql.NullInt64
		var name, slug, description, images, features, fabric, workDetails sql.NullString
		var price sql.NullFloat64
		var categoryID sql.NullInt64
		var inStock, featured sql.NullBool
		var createdAt sql.NullTime
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt,
			&productID, &name, &slug, &description, &price, &categoryID,
			&images, &features, &fabric, &workDetails, &inStock, &featured, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("list cart items: %w", err)
		}
		if !productID.Valid {
			return nil, fmt.Errorf("cart item %d references missing product %d: %w",
				item.ID, item.ProductID, ErrIntegrity)
		}

		p := models.Product{
			ID:          int(productID.Int64),
			Name:        name.String,
			Slug:        slug.String,
			Description: description.String,
			Price:       price.Float64,
			Fabric:      fabric.String,
			WorkDetails: workDetails.String,
			InStock:     inStock.Bool,
			Featured:    featured.Bool,
			CreatedAt:   createdAt.Time,
		}
		if categoryID.Valid {
			id := int(categoryID.Int64)
			p.CategoryID = &id
		}
		if err := json.Unmarshal([]byte(images.String), &p.Images); err != nil {
			return nil, fmt.Errorf("decode product images: %w", err)
		}
		if err := json.Unmarshal([]byte(features.String), &p.Features); err != nil {
			return nil, fmt.Errorf("decode product features: %w", err)
		}
		item.Product = p
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) GetCartItem(ctx context.Context, id int) (*models.CartItem, error) {
	var item models.CartItem
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, user_id, product_id, quantity, created_at FROM cart_items WHERE id = ?`, id).
		Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return &item, nil
}

// AddCartItem upserts by the (user, product) pair: a second add for the same
// product bumps the existing row's quantity in a single statement, so
// concurrent adds never lose an increment or duplicate the row.
func (s *Store) AddCartItem(ctx context.Context, item models.CartItem) (*models.CartItem, error) {
	quantity := item.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity) VALUES (?, ?, ?)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = quantity + excluded.quantity`,
		item.UserID, item.ProductID, quantity)
	if err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}

	var stored models.CartItem
	err = s.DB.QueryRowContext(ctx,
		`SELECT id, user_id, product_id, quantity, created_at FROM cart_items WHERE user_id = ? AND product_id = ?`,
		item.UserID, item.ProductID).
		Scan(&stored.ID, &stored.UserID, &stored.ProductID, &stored.Quantity, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}
	return &stored, nil
}

func (s *Store) UpdateCartItem(ctx context.Context, id int, patch models.CartItemPatch) (*models.CartItem, error) {
	if patch.Quantity != nil {
		if _, err := s.DB.ExecContext(ctx,
			`UPDATE cart_items SET quantity = ? WHERE id = ?`, *patch.Quantity, id); err != nil {
			return nil, fmt.Errorf("update cart item: %w", err)
		}
	}
	return s.GetCartItem(ctx, id)
}

func (s *Store) DeleteCartItem(ctx context.Context, id int) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete cart item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete cart item: %w", err)
	}
	return n > 0, nil
}

func (s *Store) ClearCart(ctx context.Context, userID int) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
