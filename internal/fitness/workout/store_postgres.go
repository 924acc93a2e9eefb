// Copyright (c) 2026 IronLog. All rights reserved.

package workout

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironlog-app/ironlog/internal/fitness/movement"
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

// Create persists a new workout.
func (repository *PostgresRepository) Create(ctx context.Context, entity *Workout) error {
	const query = `
		INSERT INTO workout (id, user_id, created_at)
		VALUES ($1, $2, $3)`

	if entity.CreatedAt.IsZero() {
		entity.CreatedAt = time.Now()
	}

	if _, err := repository.pool.Exec(ctx, query, entity.ID, entity.UserID, entity.CreatedAt); err != nil {
		return fmt.Errorf("postgres_workout_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindActive returns the user's in-progress workout with its sets hydrated.

Description: The newest incomplete workout wins if the row constraint ever
admits more than one.
*/
func (repository *PostgresRepository) FindActive(ctx context.Context, userID string) (*Workout, error) {
	const query = `
		SELECT id, user_id, created_at, completed_at
		FROM workout
		WHERE user_id = $1 AND completed_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1`

	entity := &Workout{}
	err := repository.pool.QueryRow(ctx, query, userID).Scan(
		&entity.ID,
		&entity.UserID,
		&entity.CreatedAt,
		&entity.CompletedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	sets, err := repository.setsForWorkouts(ctx, []string{entity.ID})
	if err != nil {
		return nil, err
	}
	entity.Sets = sets[entity.ID]
	if entity.Sets == nil {
		entity.Sets = []Set{}
	}

	return entity, nil
}

// Complete stamps the completion time on a workout.
func (repository *PostgresRepository) Complete(ctx context.Context, workoutID string, completedAt time.Time) error {
	const query = `UPDATE workout SET completed_at = $2 WHERE id = $1`

	if _, err := repository.pool.Exec(ctx, query, workoutID, completedAt); err != nil {
		return fmt.Errorf("postgres_workout_repo_complete_failed: %w", err)
	}

	return nil
}

/*
History returns one page of the user's completed workouts, newest first,
with sets hydrated, plus the total count.
*/
func (repository *PostgresRepository) History(ctx context.Context, userID string, limit, offset int) ([]Workout, int, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM workout
		WHERE user_id = $1 AND completed_at IS NOT NULL`

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_workout_repo_history_count_failed: %w", err)
	}

	const query = `
		SELECT id, user_id, created_at, completed_at
		FROM workout
		WHERE user_id = $1 AND completed_at IS NOT NULL
		ORDER BY completed_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_workout_repo_history_failed: %w", err)
	}
	defer rows.Close()

	workouts := make([]Workout, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var entity Workout
		if err := rows.Scan(&entity.ID, &entity.UserID, &entity.CreatedAt, &entity.CompletedAt); err != nil {
			return nil, 0, fmt.Errorf("postgres_workout_repo_history_scan_failed: %w", err)
		}
		entity.Sets = []Set{}
		workouts = append(workouts, entity)
		ids = append(ids, entity.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) > 0 {
		sets, err := repository.setsForWorkouts(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range workouts {
			if hydrated, ok := sets[workouts[i].ID]; ok {
				workouts[i].Sets = hydrated
			}
		}
	}

	return workouts, total, nil
}

// DeleteMany removes the given workouts owned by the user. Sets cascade.
func (repository *PostgresRepository) DeleteMany(ctx context.Context, userID string, ids []string) error {
	const query = `DELETE FROM workout WHERE user_id = $1 AND id = ANY($2)`

	if _, err := repository.pool.Exec(ctx, query, userID, ids); err != nil {
		return fmt.Errorf("postgres_workout_repo_delete_many_failed: %w", err)
	}

	return nil
}

/*
AddSet persists a set against a workout inside a transaction that re-checks
the parent is still active, so a concurrent completion cannot gain sets.
*/
func (repository *PostgresRepository) AddSet(ctx context.Context, entity *Set) error {
	if entity.CreatedAt.IsZero() {
		entity.CreatedAt = time.Now()
	}

	return pgx.BeginFunc(ctx, repository.pool, func(tx pgx.Tx) error {
		const guard = `
			SELECT 1 FROM workout
			WHERE id = $1 AND completed_at IS NULL
			FOR UPDATE`

		var one int
		if err := tx.QueryRow(ctx, guard, entity.WorkoutID).Scan(&one); err != nil {
			return dberr.Wrap(err, "")
		}

		const insert = `
			INSERT INTO workout_set (id, workout_id, movement_id, reps, weight, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`

		if _, err := tx.Exec(ctx, insert,
			entity.ID,
			entity.WorkoutID,
			entity.MovementID,
			entity.Reps,
			entity.Weight,
			entity.CreatedAt,
		); err != nil {
			return fmt.Errorf("postgres_workout_repo_add_set_failed: %w", err)
		}

		return nil
	})
}

// DeleteSet removes a set whose parent workout is active and owned by the user.
func (repository *PostgresRepository) DeleteSet(ctx context.Context, userID, setID string) error {
	const query = `
		DELETE FROM workout_set s
		USING workout w
		WHERE s.id = $1
		  AND w.id = s.workout_id
		  AND w.user_id = $2
		  AND w.completed_at IS NULL`

	tag, err := repository.pool.Exec(ctx, query, setID, userID)
	if err != nil {
		return fmt.Errorf("postgres_workout_repo_delete_set_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// setsForWorkouts loads the sets of the given workouts with their movements,
// grouped by workout ID and ordered by creation time.
func (repository *PostgresRepository) setsForWorkouts(ctx context.Context, workoutIDs []string) (map[string][]Set, error) {
	const query = `
		SELECT s.id, s.workout_id, s.movement_id, s.reps, s.weight, s.created_at,
		       m.id, m.user_id, m.name, m.is_body_weight, m.created_at
		FROM workout_set s
		JOIN movement m ON m.id = s.movement_id
		WHERE s.workout_id = ANY($1)
		ORDER BY s.created_at ASC`

	rows, err := repository.pool.Query(ctx, query, workoutIDs)
	if err != nil {
		return nil, fmt.Errorf("postgres_workout_repo_sets_failed: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]Set)
	for rows.Next() {
		var entity Set
		catalogEntry := &movement.Movement{}
		if err := rows.Scan(
			&entity.ID,
			&entity.WorkoutID,
			&entity.MovementID,
			&entity.Reps,
			&entity.Weight,
			&entity.CreatedAt,
			&catalogEntry.ID,
			&catalogEntry.UserID,
			&catalogEntry.Name,
			&catalogEntry.IsBodyWeight,
			&catalogEntry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_workout_repo_sets_scan_failed: %w", err)
		}
		entity.Movement = catalogEntry
		grouped[entity.WorkoutID] = append(grouped[entity.WorkoutID], entity)
	}

	return grouped, rows.Err()
}
