// Copyright (c) 2026 IronLog. All rights reserved.

package account

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironlog-app/ironlog/internal/platform/dberr"
	"github.com/ironlog-app/ironlog/internal/users/auth"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates the PostgreSQL implementation of [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
FindByID retrieves the full account entity by UUID.

Returns:
  - *auth.User: Hydrated account entity
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresRepository) FindByID(ctx context.Context, userID string) (*auth.User, error) {
	const query = `
		SELECT id, email, name, password_hash, weight_unit, created_at, updated_at
		FROM account
		WHERE id = $1`

	user := &auth.User{}
	err := repository.pool.QueryRow(ctx, query, userID).Scan(
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
UpdateName changes the display name and returns the updated entity.

Returns:
  - *auth.User: Post-update account entity
  - error: dberr.ErrNotFound when the account no longer exists
*/
func (repository *PostgresRepository) UpdateName(ctx context.Context, userID, name string) (*auth.User, error) {
	const query = `
		UPDATE account
		SET name = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, email, name, password_hash, weight_unit, created_at, updated_at`

	user := &auth.User{}
	err := repository.pool.QueryRow(ctx, query, userID, name).Scan(
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
