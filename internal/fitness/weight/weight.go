// Copyright (c) 2026 IronLog. All rights reserved.

/*
Package weight implements body-weight tracking.

Entries capture the unit they were recorded in, so a later change of the
user's preferred unit never rewrites history.
*/
package weight

import (
	"context"
	"time"
)

// Valid weight units.
const (
	UnitLbs = "lbs"
	UnitKg  = "kg"
)

// Entry is one body-weight measurement.
type Entry struct {
	ID     string  `json:"id"`
	UserID string  `json:"-"`
	Weight float64 `json:"weight"`
	// Unit is frozen at recording time from the user's preference.
	Unit       string    `json:"unit"`
	RecordedAt time.Time `json:"recorded_at"`
	Note       string    `json:"note,omitempty"`
}

// Repository defines the persistence operations for weight entries.
type Repository interface {
	// Create persists a new entry.
	Create(ctx context.Context, entity *Entry) error

	// ListByUser returns the user's entries, newest first.
	ListByUser(ctx context.Context, userID string) ([]Entry, error)

	// Delete removes an entry owned by the user.
	Delete(ctx context.Context, userID, entryID string) error
}

// PreferenceStore reads and writes the user's preferred weight unit, which
// lives on the account record.
type PreferenceStore interface {
	GetUnit(ctx context.Context, userID string) (string, error)
	SetUnit(ctx context.Context, userID, unit string) error
}

// Field identifiers for validation errors.
const (
	FieldWeight = "weight"
	FieldUnit   = "unit"
	FieldNote   = "note"
)
