// Copyright (c) 2026 IronLog. All rights reserved.

package weight

import (
	"context"
	"fmt"

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

// Create persists a new weight entry.
func (repository *PostgresRepository) Create(ctx context.Context, entity *Entry) error {
	const query = `
		INSERT INTO weight_entry (id, user_id, weight, unit, recorded_at, note)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := repository.pool.Exec(ctx, query,
		entity.ID,
		entity.UserID,
		entity.Weight,
		entity.Unit,
		entity.RecordedAt,
		entity.Note,
	)

	if err != nil {
		return fmt.Errorf("postgres_weight_repo_create_failed: %w", err)
	}

	return nil
}

// ListByUser returns the user's entries, newest first.
func (repository *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Entry, error) {
	const query = `
		SELECT id, user_id, weight, unit, recorded_at, note
		FROM weight_entry
		WHERE user_id = $1
		ORDER BY recorded_at DESC`

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_weight_repo_list_failed: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var entity Entry
		if err := rows.Scan(
			&entity.ID,
			&entity.UserID,
			&entity.Weight,
			&entity.Unit,
			&entity.RecordedAt,
			&entity.Note,
		); err != nil {
			return nil, fmt.Errorf("postgres_weight_repo_scan_failed: %w", err)
		}
		entries = append(entries, entity)
	}

	return entries, rows.Err()
}

// Delete removes an entry owned by the user.
func (repository *PostgresRepository) Delete(ctx context.Context, userID, entryID string) error {
	const query = `DELETE FROM weight_entry WHERE id = $1 AND user_id = $2`

	tag, err := repository.pool.Exec(ctx, query, entryID, userID)
	if err != nil {
		return fmt.Errorf("postgres_weight_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// # Preference Store

// PostgresPreferenceStore implements [PreferenceStore] over the account table.
type PostgresPreferenceStore struct {
	pool *pgxpool.Pool
}

// NewPreferenceStore creates the PostgreSQL implementation of [PreferenceStore].
func NewPreferenceStore(pool *pgxpool.Pool) *PostgresPreferenceStore {
	return &PostgresPreferenceStore{pool: pool}
}

// GetUnit returns the user's preferred weight unit.
func (store *PostgresPreferenceStore) GetUnit(ctx context.Context, userID string) (string, error) {
	const query = `SELECT weight_unit FROM account WHERE id = $1`

	var unit string
	if err := store.pool.QueryRow(ctx, query, userID).Scan(&unit); err != nil {
		return "", dberr.Wrap(err, "")
	}

	return unit, nil
}

// SetUnit changes the user's preferred weight unit.
func (store *PostgresPreferenceStore) SetUnit(ctx context.Context, userID, unit string) error {
	const query = `UPDATE account SET weight_unit = $2, updated_at = now() WHERE id = $1`

	if _, err := store.pool.Exec(ctx, query, userID, unit); err != nil {
		return fmt.Errorf("postgres_weight_pref_set_unit_failed: %w", err)
	}

	return nil
}
