// Copyright (c) 2026 IronLog. All rights reserved.

/*
Package account manages the authenticated user's own profile.

It sits next to [auth]: auth owns identity and sessions, account owns what a
signed-in user can read and change about themselves.
*/
package account

import (
	"context"

	"github.com/ironlog-app/ironlog/internal/users/auth"
)

// # Repository Contracts

// Repository defines the persistence operations for profile management.
type Repository interface {
	// FindByID retrieves the full account entity.
	FindByID(ctx context.Context, userID string) (*auth.User, error)

	// UpdateName changes the display name and returns the updated entity.
	UpdateName(ctx context.Context, userID, name string) (*auth.User, error)
}

// # Field Identifiers

const (
	// FieldName is the JSON field for the profile display name.
	FieldName = "name"
)
