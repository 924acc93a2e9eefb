// Copyright (c) 2026 IronLog. All rights reserved.

/*
Package movement manages the user's exercise catalog.

Movements are per-user: each account curates its own list (e.g. "Bench
Press", "Pull Up") and workout sets reference them. A movement that any set
references cannot be deleted, so workout history stays resolvable.
*/
package movement

import (
	"context"
	"time"
)

// Movement is one exercise in a user's catalog.
type Movement struct {
	ID     string `json:"id"`
	UserID string `json:"-"`
	Name   string `json:"name"`
	// IsBodyWeight marks exercises where the logged weight is added load on
	// top of body weight (pull ups, dips) rather than the full load.
	IsBodyWeight bool      `json:"is_body_weight"`
	CreatedAt    time.Time `json:"created_at"`
}

// UpdateInput carries the mutable movement fields. Nil means unchanged.
type UpdateInput struct {
	Name         *string
	IsBodyWeight *bool
}

// Repository defines the persistence operations for movements.
type Repository interface {
	// Create persists a new movement.
	Create(ctx context.Context, entity *Movement) error

	// FindByID retrieves a movement owned by the user.
	FindByID(ctx context.Context, userID, id string) (*Movement, error)

	// ListByUser returns the user's catalog ordered by name.
	ListByUser(ctx context.Context, userID string) ([]Movement, error)

	// Update applies the non-nil fields and returns the updated entity.
	Update(ctx context.Context, userID, id string, input UpdateInput) (*Movement, error)

	// CountSets reports how many workout sets reference the movement.
	CountSets(ctx context.Context, id string) (int, error)

	// Delete removes a movement owned by the user.
	Delete(ctx context.Context, userID, id string) error
}

// Field identifiers for validation errors.
const (
	FieldName = "name"
	FieldID   = "id"
)
