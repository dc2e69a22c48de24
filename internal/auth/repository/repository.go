package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"campground_backend/platform/apperr"
)

const uniqueViolationCode = "23505"

// User is a registered account. The username doubles as the author display
// name embedded into campgrounds.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
}

// Repo implements user persistence with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new users repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// CreateUser inserts a new user; duplicate usernames or emails surface as a
// conflict error.
func (r *Repo) CreateUser(ctx context.Context, username, email, passwordHash string) (User, error) {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, password_hash`

	var u User
	err := r.pool.QueryRow(ctx, query, username, email, passwordHash).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return User{}, apperr.Conflict("username or email already taken")
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	return u, nil
}

// GetUserByUsername retrieves a user by username.
func (r *Repo) GetUserByUsername(ctx context.Context, username string) (User, error) {
	query := `
		SELECT id, username, email, password_hash
		FROM users
		WHERE username = $1`

	var u User
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound("user not found")
		}
		return User{}, fmt.Errorf("get user by username: %w", err)
	}

	return u, nil
}
