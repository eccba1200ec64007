package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
)

const userColumns = `id, username, password, name, email, is_admin, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Name, &u.Email, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUser(ctx context.Context, id int) (*models.User, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// CreateUser inserts a user and returns the stored row. A duplicate username
// surfaces as a unique-constraint error; callers check for absence first if
// they want a friendlier failure.
func (s *Store) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	res, err := s.DB.ExecContext(ctx,
		`INSERT INTO users (username, password, name, email, is_admin) VALUES (?, ?, ?, ?, ?)`,
		user.Username, user.Password, user.Name, user.Email, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.GetUser(ctx, int(id))
}

func (s *Store) UpdateUser(ctx context.Context, id int, patch models.UserPatch) (*models.User, error) {
	var sets []string
	var args []any
	if patch.Username != nil {
		sets = append(sets, "username = ?")
		args = append(args, *patch.Username)
	}
	if patch.Password != nil {
		sets = append(sets, "password = ?")
		args = append(args, *patch.Password)
	}
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *patch.Email)
	}
	if patch.IsAdmin != nil {
		sets = append(sets, "is_admin = ?")
		args = append(args, *patch.IsAdmin)
	}
	if len(sets) == 0 {
		return s.GetUser(ctx, id)
	}

	args = append(args, id)
	if _, err := s.DB.ExecContext(ctx,
		`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.GetUser(ctx, id)
}
