// Copyright (c) 2026 IronLog. All rights reserved.

package movement

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironlog-app/ironlog/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates the PostgreSQL implementation of [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create persists a new movement.
func (repository *PostgresRepository) Create(ctx context.Context, entity *Movement) error {
	const query = `
		INSERT INTO movement (id, user_id, name, is_body_weight, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if entity.CreatedAt.IsZero() {
		entity.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(ctx, query,
		entity.ID,
		entity.UserID,
		entity.Name,
		entity.IsBodyWeight,
		entity.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_movement_repo_create_failed: %w", err)
	}

	return nil
}

// FindByID retrieves a movement owned by the user.
func (repository *PostgresRepository) FindByID(ctx context.Context, userID, id string) (*Movement, error) {
	const query = `
		SELECT id, user_id, name, is_body_weight, created_at
		FROM movement
		WHERE id = $1 AND user_id = $2`

	entity := &Movement{}
	err := repository.pool.QueryRow(ctx, query, id, userID).Scan(
		&entity.ID,
		&entity.UserID,
		&entity.Name,
		&entity.IsBodyWeight,
		&entity.CreatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return entity, nil
}

// ListByUser returns the user's catalog ordered by name.
func (repository *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Movement, error) {
	const query = `
		SELECT id, user_id, name, is_body_weight, created_at
		FROM movement
		WHERE user_id = $1
		ORDER BY name ASC`

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_movement_repo_list_failed: %w", err)
	}
	defer rows.Close()

	movements := make([]Movement, 0)
	for rows.Next() {
		var entity Movement
		if err := rows.Scan(
			&entity.ID,
			&entity.UserID,
			&entity.Name,
			&entity.IsBodyWeight,
			&entity.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_movement_repo_scan_failed: %w", err)
		}
		movements = append(movements, entity)
	}

	return movements, rows.Err()
}

/*
Update applies the non-nil fields of input to a movement the user owns.

Description: COALESCE keeps the stored value for fields the caller left nil,
so partial updates are a single statement.
*/
func (repository *PostgresRepository) Update(ctx context.Context, userID, id string, input UpdateInput) (*Movement, error) {
	const query = `
		UPDATE movement
		SET name = COALESCE($3, name),
		    is_body_weight = COALESCE($4, is_body_weight)
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name, is_body_weight, created_at`

	// pgx binds nil pointers as NULL, which COALESCE resolves to the stored value.
	entity := &Movement{}
	err := repository.pool.QueryRow(ctx, query, id, userID,
		input.Name,
		input.IsBodyWeight,
	).Scan(
		&entity.ID,
		&entity.UserID,
		&entity.Name,
		&entity.IsBodyWeight,
		&entity.CreatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return entity, nil
}

// CountSets reports how many workout sets reference the movement.
func (repository *PostgresRepository) CountSets(ctx context.Context, id string) (int, error) {
	const query = `SELECT COUNT(*) FROM workout_set WHERE movement_id = $1`

	var count int
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_movement_repo_count_sets_failed: %w", err)
	}

	return count, nil
}

// Delete removes a movement owned by the user.
func (repository *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM movement WHERE id = $1 AND user_id = $2`

	tag, err := repository.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("postgres_movement_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
