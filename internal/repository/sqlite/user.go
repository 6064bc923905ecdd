package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/devhub/internal/apperror"
	"github.com/sakif/devhub/internal/model"
	"github.com/sakif/devhub/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new user row.
//
// The UNIQUE constraints on auth_id and email turn a concurrent duplicate
// provisioning attempt into ErrConflict, which the service layer treats as
// "user already exists" and resolves with a re-fetch — never a fatal error.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, auth_id, email, name, github_username, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.AuthID, user.Email, user.Name, user.GitHubUsername, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user already exists")
		}
		return fmt.Errorf("sqlite: inserting user (authID=%s): %w", user.AuthID, err)
	}

	return nil
}

// GetUserByID retrieves a user by their internal ID.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return db.getUser(ctx, `id`, id)
}

// GetUserByAuthID retrieves a user by the identity provider's user ID.
func (db *DB) GetUserByAuthID(ctx context.Context, authID string) (*model.User, error) {
	return db.getUser(ctx, `auth_id`, authID)
}

func (db *DB) getUser(ctx context.Context, column, value string) (*model.User, error) {
	var u model.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, auth_id, email, name, github_username, created_at
		 FROM users WHERE `+column+` = ?`,
		value,
	).Scan(&u.ID, &u.AuthID, &u.Email, &u.Name, &u.GitHubUsername, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", value)
		}
		return nil, fmt.Errorf("sqlite: getting user by %s %s: %w", column, value, err)
	}

	return &u, nil
}

// UpdateUserProfile syncs the provider-supplied fields of an existing user.
// Returns ErrNotFound if the row is gone.
func (db *DB) UpdateUserProfile(ctx context.Context, user *model.User) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, github_username = ? WHERE id = ?`,
		user.Name, user.Email, user.GitHubUsername, user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("email already in use")
		}
		return fmt.Errorf("sqlite: updating user %s: %w", user.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("user", user.ID)
	}

	return nil
}
