// Copyright (c) 2026 IronLog. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Email uniqueness is enforced by the store.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - ctx: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(ctx context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given normalized email.

		Parameters:
		  - ctx: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(ctx context.Context, email string) (*User, error)

	/*
		Create persists a brand new account.

		Parameters:
		  - ctx: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on duplicate email, or storage failures
	*/
	Create(ctx context.Context, user *User) error
}

// # Login Attempt Data Access

// AttemptRepository defines the persistence contract for the per-email
// failed-attempt counters consumed by [LoginLimiter].
type AttemptRepository interface {

	/*
		Find returns the attempt record for a normalized email.

		Returns:
		  - *LoginAttempt: The current record
		  - error: apperr.NotFound when no failures are on file
	*/
	Find(ctx context.Context, email string) (*LoginAttempt, error)

	/*
		UpsertIncrement creates the record with attempts=1 or atomically
		increments an existing one. The increment happens inside the store so
		two concurrent failures can never lose a count.

		Returns:
		  - *LoginAttempt: The record after the increment
		  - error: Storage failures
	*/
	UpsertIncrement(ctx context.Context, email string) (*LoginAttempt, error)

	/*
		SetLocked stamps the lockout instant on an existing record.
	*/
	SetLocked(ctx context.Context, email string, lockedAt time.Time) error

	/*
		Delete removes the record entirely (successful sign-in, or a lapsed
		lockout episode). Deleting a missing record is not an error.
	*/
	Delete(ctx context.Context, email string) error
}
