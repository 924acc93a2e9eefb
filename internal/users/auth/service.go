// Copyright (c) 2026 IronLog. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ironlog-app/ironlog/internal/platform/apperr"
	"github.com/ironlog-app/ironlog/internal/platform/dberr"
	"github.com/ironlog-app/ironlog/internal/platform/sec"
	"github.com/ironlog-app/ironlog/pkg/uuid"
)

const (
	// invalidCredentialsMessage is returned for both unknown emails and wrong
	// passwords so responses cannot be used to enumerate accounts.
	invalidCredentialsMessage = "Invalid email or password"

	duplicateEmailMessage = "An account with this email already exists"
)

// Service implements account registration and credential verification.
//
// Session issuance is deliberately absent: the service is transport-free and
// returns the authenticated [User]; the HTTP layer decides how to represent
// the session (cookie).
type Service struct {
	users   UserRepository
	limiter *LoginLimiter
}

// NewService constructs the authentication service.
func NewService(users UserRepository, limiter *LoginLimiter) *Service {
	return &Service{users: users, limiter: limiter}
}

// SignUpInput carries validated registration fields. Email is normalized by
// the service, not the caller.
type SignUpInput struct {
	Email    string
	Name     string
	Password string
}

/*
SignUp registers a new account.

Description: Normalizes the email, rejects duplicates, hashes the password
with argon2id and creates the account with default preferences.

Parameters:
  - ctx: context.Context
  - input: SignUpInput (already shape-validated by the HTTP layer)

Returns:
  - *User: The created account
  - error: [apperr.Conflict] on duplicate email, or storage failures
*/
func (service *Service) SignUp(ctx context.Context, input SignUpInput) (*User, error) {
	email := NormalizeEmail(input.Email)

	// 1. Explicit duplicate check for a friendly message. The unique index is
	// the real guard against races; dberr maps its violation to the same 409.
	_, err := service.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperr.Conflict(duplicateEmailMessage)
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, fmt.Errorf("sign_up_lookup_failed: %w", err)
	}

	// 2. Hash the password
	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("sign_up_hash_failed: %w", err)
	}

	// 3. Persist
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         input.Name,
		PasswordHash: hash,
		WeightUnit:   DefaultWeightUnit,
	}
	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

/*
SignIn verifies credentials under the login rate limit.

Description: The limiter gate runs before any credential work, so a
locked-out email never reaches password verification. Failures are recorded
for unknown emails as well as wrong passwords, and both cases return the
same generic message. A success clears all failure state.

Parameters:
  - ctx: context.Context
  - email: string
  - password: string

Returns:
  - *User: The authenticated account
  - error: [apperr.RateLimited] when locked out, [apperr.Unauthorized] on
    bad credentials, or storage failures
*/
func (service *Service) SignIn(ctx context.Context, email, password string) (*User, error) {
	normalized := NormalizeEmail(email)

	// 1. Rate-limit gate, before any credential verification
	result, err := service.limiter.Check(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if !result.Allowed {
		return nil, apperr.RateLimited(retryMessage(result.RetryAfter))
	}

	// 2. Look up the account. Unknown emails still burn an attempt so the
	// limiter cannot be used as an account-existence oracle.
	user, err := service.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, service.failAttempt(ctx, normalized)
		}
		return nil, fmt.Errorf("sign_in_lookup_failed: %w", err)
	}

	// 3. Verify the password
	match, err := sec.CheckPasswordHash(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("sign_in_verify_failed: %w", err)
	}
	if !match {
		return nil, service.failAttempt(ctx, normalized)
	}

	// 4. Success clears the failure counter
	if err := service.limiter.Reset(ctx, normalized); err != nil {
		return nil, err
	}

	return user, nil
}

// failAttempt records one failure and picks the client-facing error: the
// lockout message when this attempt crossed the threshold, otherwise the
// generic credentials message.
func (service *Service) failAttempt(ctx context.Context, email string) error {
	locked, retryAfter, err := service.limiter.RecordFailure(ctx, email)
	if err != nil {
		return err
	}
	if locked {
		return apperr.RateLimited(retryMessage(retryAfter))
	}
	return apperr.Unauthorized(invalidCredentialsMessage)
}

// retryMessage renders the remaining lockout as whole minutes, rounding up so
// the client never retries early.
func retryMessage(retryAfter time.Duration) string {
	minutes := int(math.Ceil(retryAfter.Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	if minutes == 1 {
		return "Too many login attempts. Please try again in 1 minute."
	}
	return fmt.Sprintf("Too many login attempts. Please try again in %d minutes.", minutes)
}
