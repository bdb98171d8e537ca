package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/ottshare/internal/models"
)

// CreateUser inserts a new user into the database.
func (q *queries) CreateUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	res, err := q.db.ExecContext(ctx,
		"INSERT INTO users (username, display_name, created_at) VALUES (?, ?, ?)",
		user.Username, user.DisplayName, user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", models.ErrUserExists, user.Username)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetUserByUsername retrieves a user by their username.
func (q *queries) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return q.getUser(ctx, "username = ?", username)
}

// GetUserByID retrieves a user by their ID.
func (q *queries) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return q.getUser(ctx, "id = ?", id)
}

func (q *queries) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
	query := `
		SELECT id, username, display_name, created_at
		FROM users
		WHERE ` + where

	user := &models.User{}
	err := q.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.DisplayName,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %v", models.ErrUserNotFound, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
