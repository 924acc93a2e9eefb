// Copyright (c) 2026 IronLog. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironlog-app/ironlog/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates the PostgreSQL implementation of [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new account record.

Parameters:
  - ctx: context.Context
  - user: *User (Entity to persist; timestamps are initialized here)

Returns:
  - error: dberr-mapped conflict on duplicate email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO account (
			id, email, name, password_hash, weight_unit, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.WeightUnit,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "An account with this email already exists")
	}

	return nil
}

/*
FindByEmail retrieves an account by its unique (normalized) email.

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT id, email, name, password_hash, weight_unit, created_at, updated_at
		FROM account
		WHERE email = $1`

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.WeightUnit,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return user, nil
}

/*
FindByID retrieves an account by its UUID.

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	const query = `
		SELECT id, email, name, password_hash, weight_unit, created_at, updated_at
		FROM account
		WHERE id = $1`

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.WeightUnit,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return user, nil
}

// # Login Attempt Repository

// PostgresAttemptRepository implements [AttemptRepository] using pgx.
//
// The login_attempt table is keyed by normalized email, so all operations
// here are single-row statements.
type PostgresAttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates the PostgreSQL implementation of [AttemptRepository].
func NewAttemptRepository(pool *pgxpool.Pool) *PostgresAttemptRepository {
	return &PostgresAttemptRepository{pool: pool}
}

/*
Find retrieves the failure record for an email.

Returns:
  - *LoginAttempt: Current failure state
  - error: dberr.ErrNotFound when no failures are on file
*/
func (repository *PostgresAttemptRepository) Find(ctx context.Context, email string) (*LoginAttempt, error) {
	const query = `
		SELECT email, attempts, locked_at, updated_at
		FROM login_attempt
		WHERE email = $1`

	record := &LoginAttempt{}
	err := repository.pool.QueryRow(ctx, query, email).Scan(
		&record.Email,
		&record.Attempts,
		&record.LockedAt,
		&record.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return record, nil
}

/*
UpsertIncrement records one failure for the email and returns the new state.

Description: A single INSERT ... ON CONFLICT DO UPDATE statement, so
concurrent failures for the same email serialize on the row and no count is
lost.

Returns:
  - *LoginAttempt: Post-increment state
  - error: Database errors
*/
func (repository *PostgresAttemptRepository) UpsertIncrement(ctx context.Context, email string) (*LoginAttempt, error) {
	const query = `
		INSERT INTO login_attempt (email, attempts, updated_at)
		VALUES ($1, 1, now())
		ON CONFLICT (email) DO UPDATE
		SET attempts = login_attempt.attempts + 1, updated_at = now()
		RETURNING email, attempts, locked_at, updated_at`

	record := &LoginAttempt{}
	err := repository.pool.QueryRow(ctx, query, email).Scan(
		&record.Email,
		&record.Attempts,
		&record.LockedAt,
		&record.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("postgres_attempt_repo_upsert_failed: %w", err)
	}

	return record, nil
}

/*
SetLocked stamps the lockout instant on the email's failure record.

Parameters:
  - ctx: context.Context
  - email: string
  - lockedAt: time.Time (lockout episode start)
*/
func (repository *PostgresAttemptRepository) SetLocked(ctx context.Context, email string, lockedAt time.Time) error {
	const query = `
		UPDATE login_attempt
		SET locked_at = $2, updated_at = now()
		WHERE email = $1`

	if _, err := repository.pool.Exec(ctx, query, email, lockedAt); err != nil {
		return fmt.Errorf("postgres_attempt_repo_lock_failed: %w", err)
	}

	return nil
}

/*
Delete removes the failure record for an email. Deleting an absent record is
not an error.
*/
func (repository *PostgresAttemptRepository) Delete(ctx context.Context, email string) error {
	const query = `DELETE FROM login_attempt WHERE email = $1`

	if _, err := repository.pool.Exec(ctx, query, email); err != nil {
		return fmt.Errorf("postgres_attempt_repo_delete_failed: %w", err)
	}

	return nil
}
