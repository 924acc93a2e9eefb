// Copyright (c) 2026 IronLog. All rights reserved.

package nutrition

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
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

const entryColumns = `id, user_id, meal_type, calories, protein, carbs, fat, note, logged_at`

// Create persists a new food entry.
func (repository *PostgresRepository) Create(ctx context.Context, entity *FoodEntry) error {
	const query = `
		INSERT INTO food_entry (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := repository.pool.Exec(ctx, query,
		entity.ID,
		entity.UserID,
		entity.MealType,
		entity.Calories,
		entity.Protein,
		entity.Carbs,
		entity.Fat,
		entity.Note,
		entity.LoggedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_nutrition_repo_create_failed: %w", err)
	}

	return nil
}

// ListByUser returns the user's entries, newest first.
func (repository *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]FoodEntry, error) {
	const query = `
		SELECT ` + entryColumns + `
		FROM food_entry
		WHERE user_id = $1
		ORDER BY logged_at DESC`

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_nutrition_repo_list_failed: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// FindByID retrieves an entry owned by the user.
func (repository *PostgresRepository) FindByID(ctx context.Context, userID, entryID string) (*FoodEntry, error) {
	const query = `
		SELECT ` + entryColumns + `
		FROM food_entry
		WHERE id = $1 AND user_id = $2`

	entity := &FoodEntry{}
	err := repository.pool.QueryRow(ctx, query, entryID, userID).Scan(
		&entity.ID,
		&entity.UserID,
		&entity.MealType,
		&entity.Calories,
		&entity.Protein,
		&entity.Carbs,
		&entity.Fat,
		&entity.Note,
		&entity.LoggedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return entity, nil
}

// ListByDay returns the entries logged within [from, to), oldest first.
func (repository *PostgresRepository) ListByDay(ctx context.Context, userID string, from, to time.Time) ([]FoodEntry, error) {
	const query = `
		SELECT ` + entryColumns + `
		FROM food_entry
		WHERE user_id = $1 AND logged_at >= $2 AND logged_at < $3
		ORDER BY logged_at ASC`

	rows, err := repository.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres_nutrition_repo_list_by_day_failed: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Delete removes an entry owned by the user.
func (repository *PostgresRepository) Delete(ctx context.Context, userID, entryID string) error {
	const query = `DELETE FROM food_entry WHERE id = $1 AND user_id = $2`

	tag, err := repository.pool.Exec(ctx, query, entryID, userID)
	if err != nil {
		return fmt.Errorf("postgres_nutrition_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// scanEntries drains a food_entry cursor.
func scanEntries(rows pgx.Rows) ([]FoodEntry, error) {
	entries := make([]FoodEntry, 0)
	for rows.Next() {
		var entity FoodEntry
		if err := rows.Scan(
			&entity.ID,
			&entity.UserID,
			&entity.MealType,
			&entity.Calories,
			&entity.Protein,
			&entity.Carbs,
			&entity.Fat,
			&entity.Note,
			&entity.LoggedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_nutrition_repo_scan_failed: %w", err)
		}
		entries = append(entries, entity)
	}

	return entries, rows.Err()
}
