package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

func (d *Database) InsertUser(ctx context.Context, user UserCreate) (*User, error) {
	query := `
		INSERT INTO users (email, password_hash, name, birthday, category_id, city_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *
	`

	var created User
	err := d.db.GetContext(ctx, &created, query,
		user.Email, user.PasswordHash, user.Name, user.Birthday, user.CategoryID, user.CityID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user with email %q: %w", user.Email, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &created, nil
}

func (d *Database) GetUser(ctx context.Context, userID int64) (*User, error) {
	var user User
	err := d.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1 AND deleted_at IS NULL", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (d *Database) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := d.db.GetContext(ctx, &user, "SELECT * FROM users WHERE email = $1 AND deleted_at IS NULL", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %q: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (d *Database) UpdateUser(ctx context.Context, userID int64, update UserUpdate) (*User, error) {
	query := `
		UPDATE users
		SET email    = COALESCE($2, email),
		    name     = COALESCE($3, name),
		    birthday = COALESCE($4, birthday),
		    city_id  = COALESCE($5, city_id)
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING *
	`

	var updated User
	err := d.db.GetContext(ctx, &updated, query,
		userID, update.Email, update.Name, update.Birthday, update.CityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user email: %w", ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &updated, nil
}

func (d *Database) UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) error {
	res, err := d.db.ExecContext(ctx, "UPDATE users SET password_hash = $2 WHERE id = $1 AND deleted_at IS NULL", userID, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update user password: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}

	return nil
}

// SoftDeleteUser marks the user deleted. Memberships stay in place but
// stop counting towards club and event occupancy.
func (d *Database) SoftDeleteUser(ctx context.Context, userID int64, now time.Time) error {
	res, err := d.db.ExecContext(ctx, "UPDATE users SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL", userID, now)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}

	return nil
}
