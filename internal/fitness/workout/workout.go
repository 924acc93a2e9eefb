// Copyright (c) 2026 IronLog. All rights reserved.

/*
Package workout implements the training session lifecycle.

A user has at most one workout in progress at a time (the "active" workout,
identified by a null completed_at). Sets are logged against the active
workout and reference movements from the user's catalog. Completing the
workout freezes it into history.
*/
package workout

import (
	"context"
	"time"

	"github.com/ironlog-app/ironlog/internal/fitness/movement"
)

// # Domain Entities

// Workout is one training session.
type Workout struct {
	ID          string     `json:"id"`
	UserID      string     `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	// Sets is hydrated on reads, ordered by creation time.
	Sets []Set `json:"sets"`
}

// Active reports whether the workout is still in progress.
func (w *Workout) Active() bool { return w.CompletedAt == nil }

// Set is one logged exercise set within a workout.
type Set struct {
	ID         string    `json:"id"`
	WorkoutID  string    `json:"workout_id"`
	MovementID string    `json:"movement_id"`
	Reps       int       `json:"reps"`
	Weight     float64   `json:"weight"`
	CreatedAt  time.Time `json:"created_at"`
	// Movement is the referenced catalog entry, hydrated on reads.
	Movement *movement.Movement `json:"movement,omitempty"`
}

// # Repository Contracts

// Repository defines the persistence operations for workouts and sets.
type Repository interface {
	// Create persists a new workout.
	Create(ctx context.Context, entity *Workout) error

	// FindActive returns the user's in-progress workout with its sets
	// hydrated, or dberr.ErrNotFound when none exists.
	FindActive(ctx context.Context, userID string) (*Workout, error)

	// Complete stamps the completion time on a workout.
	Complete(ctx context.Context, workoutID string, completedAt time.Time) error

	// History returns the user's completed workouts, newest first, with sets
	// hydrated, plus the total count for pagination.
	History(ctx context.Context, userID string, limit, offset int) ([]Workout, int, error)

	// DeleteMany removes the given workouts owned by the user. Their sets go
	// with them. Unknown or foreign IDs are ignored.
	DeleteMany(ctx context.Context, userID string, ids []string) error

	// AddSet persists a set against a workout.
	AddSet(ctx context.Context, entity *Set) error

	// DeleteSet removes a set whose parent workout is active and owned by the
	// user, returning dberr.ErrNotFound otherwise.
	DeleteSet(ctx context.Context, userID, setID string) error
}

// MovementCatalog is the slice of the movement package this package needs:
// ownership-scoped lookups when attaching sets.
type MovementCatalog interface {
	FindByID(ctx context.Context, userID, id string) (*movement.Movement, error)
}

// Field identifiers for validation errors.
const (
	FieldMovementID = "movement_id"
	FieldReps       = "reps"
	FieldWeight     = "weight"
	FieldWorkoutIDs = "workout_ids"
)
