// Copyright (c) 2026 IronLog. All rights reserved.

package weight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ironlog-app/ironlog/internal/platform/apperr"
	"github.com/ironlog-app/ironlog/internal/platform/dberr"
	"github.com/ironlog-app/ironlog/pkg/uuid"
)

// # Service Layer

// Service orchestrates body-weight tracking.
type Service struct {
	entries     Repository
	preferences PreferenceStore
	now         func() time.Time
}

// NewService constructs a new [Service].
func NewService(entries Repository, preferences PreferenceStore) *Service {
	return &Service{
		entries:     entries,
		preferences: preferences,
		now:         time.Now,
	}
}

/*
Record logs a body-weight measurement.

Description: The entry freezes the user's current preferred unit. A nil
recordedAt means "now".

Parameters:
  - ctx: context.Context
  - userID: string
  - weightValue: float64 (> 0, enforced by the HTTP layer)
  - recordedAt: *time.Time (optional backdating)
  - note: string

Returns:
  - *Entry: The created entry
  - error: Storage failures
*/
func (service *Service) Record(ctx context.Context, userID string, weightValue float64, recordedAt *time.Time, note string) (*Entry, error) {
	unit, err := service.preferences.GetUnit(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("weight_service_unit_lookup_failed: %w", err)
	}

	entity := &Entry{
		ID:         uuid.New(),
		UserID:     userID,
		Weight:     weightValue,
		Unit:       unit,
		RecordedAt: service.now(),
		Note:       note,
	}
	if recordedAt != nil {
		entity.RecordedAt = *recordedAt
	}

	if err := service.entries.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("weight_service_record_failed: %w", err)
	}

	return entity, nil
}

// History returns the user's measurements, newest first.
func (service *Service) History(ctx context.Context, userID string) ([]Entry, error) {
	return service.entries.ListByUser(ctx, userID)
}

/*
Delete removes a measurement the user owns.

Returns:
  - error: apperr.NotFound for unknown or foreign entries
*/
func (service *Service) Delete(ctx context.Context, userID, entryID string) error {
	if err := service.entries.Delete(ctx, userID, entryID); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("Entry")
		}
		return fmt.Errorf("weight_service_delete_failed: %w", err)
	}
	return nil
}

// Unit returns the user's preferred weight unit.
func (service *Service) Unit(ctx context.Context, userID string) (string, error) {
	return service.preferences.GetUnit(ctx, userID)
}

/*
SetUnit changes the user's preferred weight unit.

Existing entries keep the unit they were recorded in; only future entries
pick up the new preference.
*/
func (service *Service) SetUnit(ctx context.Context, userID, unit string) error {
	if err := service.preferences.SetUnit(ctx, userID, unit); err != nil {
		return fmt.Errorf("weight_service_set_unit_failed: %w", err)
	}
	return nil
}
