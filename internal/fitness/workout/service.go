// Copyright (c) 2026 IronLog. All rights reserved.

package workout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ironlog-app/ironlog/internal/platform/apperr"
	"github.com/ironlog-app/ironlog/internal/platform/dberr"
	"github.com/ironlog-app/ironlog/pkg/pagination"
	"github.com/ironlog-app/ironlog/pkg/uuid"
)

// # Service Layer

// Service orchestrates the workout lifecycle.
type Service struct {
	workouts  Repository
	movements MovementCatalog
	now       func() time.Time
}

// NewService constructs a new [Service].
func NewService(workouts Repository, movements MovementCatalog) *Service {
	return &Service{
		workouts:  workouts,
		movements: movements,
		now:       time.Now,
	}
}

/*
Start opens a new training session for the user.

Returns:
  - *Workout: The created workout with an empty set list
  - error: Storage failures
*/
func (service *Service) Start(ctx context.Context, userID string) (*Workout, error) {
	entity := &Workout{
		ID:     uuid.New(),
		UserID: userID,
		Sets:   []Set{},
	}

	if err := service.workouts.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("workout_service_start_failed: %w", err)
	}

	return entity, nil
}

/*
Current returns the user's in-progress workout with its sets.

Returns:
  - *Workout: The active workout
  - error: apperr.NotFound when no workout is in progress
*/
func (service *Service) Current(ctx context.Context, userID string) (*Workout, error) {
	entity, err := service.workouts.FindActive(ctx, userID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Active workout")
		}
		return nil, fmt.Errorf("workout_service_current_failed: %w", err)
	}
	return entity, nil
}

/*
Complete finishes the user's active workout.

Description: An empty workout cannot be completed; it would pollute history
with zero-content sessions.

Returns:
  - error: apperr.Conflict when no workout is active,
    apperr.Unprocessable when the workout has no sets
*/
func (service *Service) Complete(ctx context.Context, userID string) error {
	entity, err := service.workouts.FindActive(ctx, userID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.Conflict("No active workout to complete")
		}
		return fmt.Errorf("workout_service_complete_lookup_failed: %w", err)
	}

	if len(entity.Sets) == 0 {
		return apperr.Unprocessable("Cannot complete a workout with no sets")
	}

	if err := service.workouts.Complete(ctx, entity.ID, service.now()); err != nil {
		return fmt.Errorf("workout_service_complete_failed: %w", err)
	}

	return nil
}

/*
AddSet logs a set against the user's active workout.

Description: The movement must exist in the user's own catalog; a foreign
movement ID reads as missing.

Parameters:
  - ctx: context.Context
  - userID: string
  - movementID: string
  - reps: int (>= 1, enforced by the HTTP layer)
  - weight: float64 (>= 0)

Returns:
  - *Set: The created set with its movement hydrated
  - error: apperr.Conflict when no workout is active, apperr.NotFound when
    the movement is missing
*/
func (service *Service) AddSet(ctx context.Context, userID, movementID string, reps int, weight float64) (*Set, error) {
	active, err := service.workouts.FindActive(ctx, userID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.Conflict("No active workout")
		}
		return nil, fmt.Errorf("workout_service_add_set_lookup_failed: %w", err)
	}

	catalogEntry, err := service.movements.FindByID(ctx, userID, movementID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Movement")
		}
		return nil, fmt.Errorf("workout_service_add_set_movement_failed: %w", err)
	}

	entity := &Set{
		ID:         uuid.New(),
		WorkoutID:  active.ID,
		MovementID: movementID,
		Reps:       reps,
		Weight:     weight,
		Movement:   catalogEntry,
	}

	if err := service.workouts.AddSet(ctx, entity); err != nil {
		return nil, fmt.Errorf("workout_service_add_set_failed: %w", err)
	}

	return entity, nil
}

/*
DeleteSet removes a set from the user's active workout.

Completed workouts are immutable, so sets belonging to them read as missing.

Returns:
  - error: apperr.NotFound for unknown, foreign, or frozen sets
*/
func (service *Service) DeleteSet(ctx context.Context, userID, setID string) error {
	if err := service.workouts.DeleteSet(ctx, userID, setID); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("Set")
		}
		return fmt.Errorf("workout_service_delete_set_failed: %w", err)
	}
	return nil
}

/*
History returns the user's completed workouts, newest first.

Returns:
  - []Workout: One page of history with sets hydrated
  - pagination.Meta: Page metadata
  - error: Storage failures
*/
func (service *Service) History(ctx context.Context, userID string, params pagination.Params) ([]Workout, pagination.Meta, error) {
	workouts, total, err := service.workouts.History(ctx, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("workout_service_history_failed: %w", err)
	}

	return workouts, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
Delete removes the given workouts and their sets from history.

Unknown and foreign IDs are ignored rather than reported, matching bulk
delete semantics.
*/
func (service *Service) Delete(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := service.workouts.DeleteMany(ctx, userID, ids); err != nil {
		return fmt.Errorf("workout_service_delete_failed: %w", err)
	}
	return nil
}
