package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
)

const requestColumns = `id, user_id, name, email, phone, requirements, budget, status, created_at`

func scanCustomRequest(row interface{ Scan(...any) error }) (*models.CustomRequest, error) {
	var r models.CustomRequest
	var userID sql.NullInt64
	if err := row.Scan(&r.ID, &userID, &r.Name, &r.Email, &r.Phone, &r.Requirements, &r.Budget, &r.Status, &r.CreatedAt); err != nil {
		return nil, err
	}
	if userID.Valid {
		id := int(userID.Int64)
		r.UserID = &id
	}
	return &r, nil
}

func (s *Store) ListCustomRequests(ctx context.Context) ([]models.CustomRequest, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+requestColumns+` FROM custom_requests ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list custom requests: %w", err)
	}
	defer rows.Close()

	var requests []models.CustomRequest
	for rows.Next() {
		r, err := scanCustomRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("list custom requests: %w", err)
		}
		requests = append(requests, *r)
	}
	return requests, rows.Err()
}

func (s *Store) GetCustomRequest(ctx context.Context, id int) (*models.CustomRequest, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM custom_requests WHERE id = ?`, id)
	r, err := scanCustomRequest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get custom request: %w", err)
	}
	return r, nil
}

// CreateCustomRequest stores a request with status forced to "new". UserID
// stays nil for anonymous submissions.
func (s *Store) CreateCustomRequest(ctx context.Context, req models.CustomRequest) (*models.CustomRequest, error) {
	var userID any
	if req.UserID != nil {
		userID = *req.UserID
	}
	res, err := s.DB.ExecContext(ctx,
		`INSERT INTO custom_requests (user_id, name, email, phone, requirements, budget, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, req.Name, req.Email, req.Phone, req.Requirements, req.Budget, models.RequestStatusNew)
	if err != nil {
		return nil, fmt.Errorf("create custom request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create custom request: %w", err)
	}
	return s.GetCustomRequest(ctx, int(id))
}

func (s *Store) UpdateCustomRequestStatus(ctx context.Context, id int, status models.RequestStatus) (*models.CustomRequest, error) {
	res, err := s.DB.ExecContext(ctx, `UPDATE custom_requests SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return nil, fmt.Errorf("update custom request status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update custom request status: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.GetCustomRequest(ctx, id)
}
