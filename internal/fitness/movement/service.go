// Copyright (c) 2026 IronLog. All rights reserved.

package movement

import (
	"context"
	"fmt"
	"strings"

	"github.com/ironlog-app/ironlog/internal/platform/apperr"
	"github.com/ironlog-app/ironlog/pkg/uuid"
)

// # Service Layer

// Service orchestrates catalog operations. Every operation is scoped to the
// owning user; a movement ID belonging to another account behaves exactly
// like a missing one.
type Service struct {
	movements Repository
}

// NewService constructs a new [Service].
func NewService(movements Repository) *Service {
	return &Service{movements: movements}
}

/*
Create adds a movement to the user's catalog.

Parameters:
  - ctx: context.Context
  - userID: string
  - name: string (trimmed here)
  - isBodyWeight: bool

Returns:
  - *Movement: The created movement
  - error: Storage failures
*/
func (service *Service) Create(ctx context.Context, userID, name string, isBodyWeight bool) (*Movement, error) {
	entity := &Movement{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         strings.TrimSpace(name),
		IsBodyWeight: isBodyWeight,
	}

	if err := service.movements.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("movement_service_create_failed: %w", err)
	}

	return entity, nil
}

// List returns the user's catalog ordered by name.
func (service *Service) List(ctx context.Context, userID string) ([]Movement, error) {
	return service.movements.ListByUser(ctx, userID)
}

/*
Update applies a partial change to a movement the user owns.

Returns:
  - *Movement: The updated movement
  - error: apperr.NotFound when the movement is missing or owned by another
    user, or storage failures
*/
func (service *Service) Update(ctx context.Context, userID, id string, input UpdateInput) (*Movement, error) {
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
	}

	entity, err := service.movements.Update(ctx, userID, id, input)
	if err != nil {
		return nil, err
	}

	return entity, nil
}

/*
Delete removes a movement from the catalog.

Description: Refused while any workout set references the movement, so
history rows never lose their exercise name.

Returns:
  - error: apperr.Conflict when sets reference the movement,
    apperr.NotFound when it does not exist, or storage failures
*/
func (service *Service) Delete(ctx context.Context, userID, id string) error {
	// Ownership check before the reference count so a foreign ID reads as 404.
	if _, err := service.movements.FindByID(ctx, userID, id); err != nil {
		return err
	}

	count, err := service.movements.CountSets(ctx, id)
	if err != nil {
		return fmt.Errorf("movement_service_count_sets_failed: %w", err)
	}
	if count > 0 {
		return apperr.Conflict("Cannot delete movement with existing sets")
	}

	return service.movements.Delete(ctx, userID, id)
}
