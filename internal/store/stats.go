package store

import (
	"context"
	"database/sql"
	"fmt"
)

type DashboardStats struct {
	TotalProducts   int
	TotalOrders     int
	TotalUsers      int
	PendingRequests int
	OrdersByStatus  map[string]int
	TopProducts     []ProductOrderCount
}

type ProductOrderCount struct {
	ProductID  int
	Name       string
	OrderCount int
}

// GetDashboardStats aggregates the counters shown on the admin dashboard.
func (s *Store) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		OrdersByStatus: make(map[string]int),
	}

	err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&stats.TotalProducts)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	err = s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders").Scan(&stats.TotalOrders)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	err = s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&stats.TotalUsers)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	err = s.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM custom_requests WHERE status = 'new'").Scan(&stats.PendingRequests)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, "SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("dashboard stats: %w", err)
		}
		stats.OrdersByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	productRows, err := s.DB.QueryContext(ctx, `
		SELECT p.id, p.name, COUNT(oi.id) as order_count
		FROM products p
		LEFT JOIN order_items oi ON p.id = oi.product_id
		GROUP BY p.id
		ORDER BY order_count DESC
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	defer productRows.Close()
	for productRows.Next() {
		var poc ProductOrderCount
		if err := productRows.Scan(&poc.ProductID, &poc.Name, &poc.OrderCount); err != nil {
			return nil, fmt.Errorf("dashboard stats: %w", err)
		}
		stats.TopProducts = append(stats.TopProducts, poc)
	}
	return stats, productRows.Err()
}
