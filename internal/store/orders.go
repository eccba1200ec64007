package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
)

const orderColumns = `id, user_id, status, total, shipping_address, payment_method, created_at`

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	var o models.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.ShippingAddress, &o.PaymentMethod, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.listOrders(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (s *Store) ListUserOrders(ctx context.Context, userID int) ([]models.Order, error) {
	return s.listOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

func (s *Store) listOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// GetOrder returns the order with its line items, each paired with the
// referenced product. Line-item prices are the purchase-time snapshot, not
// the product's current price.
func (s *Store) GetOrder(ctx context.Context, id int) (*models.OrderWithItems, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	o, err := scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
		       p.id, p.name, p.slug, p.description, p.price, p.category_id,
		       p.images, p.features, p.fabric, p.work_details, p.in_stock, p.featured, p.created_at
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = ?
		ORDER BY oi.id`, id)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	order := &models.OrderWithItems{Order: *o}
	for rows.Next() {
		var item models.OrderItemWithProduct
		var images, features string
		var categoryID sql.NullInt64
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price,
			&item.Product.ID, &item.Product.Name, &item.Product.Slug, &item.Product.Description,
			&item.Product.Price, &categoryID, &images, &features,
			&item.Product.Fabric, &item.Product.WorkDetails,
			&item.Product.InStock, &item.Product.Featured, &item.Product.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("get order items: %w", err)
		}
		if categoryID.Valid {
			cid := int(categoryID.Int64)
			item.Product.CategoryID = &cid
		}
		if err := unmarshalStringList(images, &item.Product.Images); err != nil {
			return nil, fmt.Errorf("get order items: %w", err)
		}
		if err := unmarshalStringList(features, &item.Product.Features); err != nil {
			return nil, fmt.Errorf("get order items: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	return order, rows.Err()
}

// PlaceOrder atomically inserts the order header and its items and empties
// the user's cart. Any failure rolls everything back: no order row, no
// items, cart untouched.
func (s *Store) PlaceOrder(ctx context.Context, order models.Order, items []models.OrderItem) (*models.OrderWithItems, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("place order: order must have at least one item")
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("place order: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (user_id, status, total, shipping_address, payment_method) VALUES (?, ?, ?, ?, ?)`,
		order.UserID, order.Status, order.Total, order.ShippingAddress, order.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("place order: insert order: %w", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	for _, item := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?)`,
			orderID, item.ProductID, item.Quantity, item.Price); err != nil {
			return nil, fmt.Errorf("place order: insert item (product %d): %w", item.ProductID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, order.UserID); err != nil {
		return nil, fmt.Errorf("place order: clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("place order: commit: %w", err)
	}

	return s.GetOrder(ctx, int(orderID))
}

// UpdateOrderStatus sets the status and returns the updated order, or
// (nil, nil) if the id is unknown. The status set is open: admins supply
// values like "shipped" or "cancelled" beyond the built-in ones.
func (s *Store) UpdateOrderStatus(ctx context.Context, id int, status models.OrderStatus) (*models.Order, error) {
	res, err := s.DB.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	o, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return o, nil
}
