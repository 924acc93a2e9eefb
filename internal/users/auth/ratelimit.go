// Copyright (c) 2026 IronLog. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ironlog-app/ironlog/internal/platform/dberr"
)

// # Login Rate Limiting
//
// State machine per email key:
//
//	Clean -> Accumulating(n) -> Locked -> Clean
//
// A successful sign-in deletes the record from any state. A lapsed lock also
// returns to Clean: Check deletes the stale record so the counter restarts
// from zero rather than re-locking on the very next failure.

// RateLimitResult reports whether a sign-in attempt may proceed.
type RateLimitResult struct {
	Allowed bool
	// RetryAfter is the remaining lockout time when Allowed is false.
	RetryAfter time.Duration
}

// LoginLimiter throttles repeated failed authentication attempts per email
// to blunt credential-stuffing and brute-force attacks.
//
// # Concurrency
//
// Two concurrent failures for the same email may both observe a count below
// the threshold and proceed, but the store's atomic increment keeps the
// persisted count correct, so the lock triggers on the next check. The
// lockout is a deterrence mechanism, not an exact-count security boundary.
type LoginLimiter struct {
	attempts AttemptRepository
	now      func() time.Time
}

// NewLoginLimiter constructs a limiter over the given attempt store.
func NewLoginLimiter(attempts AttemptRepository) *LoginLimiter {
	return &LoginLimiter{
		attempts: attempts,
		now:      time.Now,
	}
}

/*
Check reports whether a sign-in attempt for the email may proceed.

Description: Allows when no record exists or no lock is active. A lock that
has lapsed is cleared here (fresh episode) before allowing.

Parameters:
  - ctx: context.Context
  - email: string (normalized internally)

Returns:
  - RateLimitResult: Allowed, or Denied with remaining lockout time
  - error: Storage failures
*/
func (limiter *LoginLimiter) Check(ctx context.Context, email string) (RateLimitResult, error) {
	record, err := limiter.attempts.Find(ctx, NormalizeEmail(email))
	if err != nil {
		// No failures on file: clean state.
		if errors.Is(err, dberr.ErrNotFound) {
			return RateLimitResult{Allowed: true}, nil
		}
		return RateLimitResult{}, fmt.Errorf("login_limiter_check_failed: %w", err)
	}

	if record.LockedAt != nil {
		lockExpiry := record.LockedAt.Add(LockoutDuration)
		now := limiter.now()

		if now.Before(lockExpiry) {
			return RateLimitResult{Allowed: false, RetryAfter: lockExpiry.Sub(now)}, nil
		}

		// Lock has lapsed: delete the stale record so the next failure starts
		// a fresh episode at attempt 1 instead of re-locking immediately.
		if err := limiter.attempts.Delete(ctx, record.Email); err != nil {
			return RateLimitResult{}, fmt.Errorf("login_limiter_lapse_reset_failed: %w", err)
		}
	}

	return RateLimitResult{Allowed: true}, nil
}

/*
RecordFailure registers one failed sign-in attempt for the email.

Description: Upserts the record with an atomic increment. Crossing the
threshold stamps the lockout instant and reports the full lockout duration.

Callers must invoke this for unknown emails too, so attackers cannot
distinguish "no such user" from "wrong password" by rate-limiter behavior.

Returns:
  - locked: true when this attempt triggered (or extended into) the lockout
  - retryAfter: the full lockout duration when locked
  - error: Storage failures
*/
func (limiter *LoginLimiter) RecordFailure(ctx context.Context, email string) (locked bool, retryAfter time.Duration, err error) {
	normalized := NormalizeEmail(email)

	record, err := limiter.attempts.UpsertIncrement(ctx, normalized)
	if err != nil {
		return false, 0, fmt.Errorf("login_limiter_record_failed: %w", err)
	}

	if record.Attempts >= MaxLoginAttempts {
		if err := limiter.attempts.SetLocked(ctx, normalized, limiter.now()); err != nil {
			return false, 0, fmt.Errorf("login_limiter_lock_failed: %w", err)
		}
		return true, LockoutDuration, nil
	}

	return false, 0, nil
}

/*
Reset clears all failure state for the email.

Called on every successful sign-in, including for accounts that had prior
failures below the threshold.
*/
func (limiter *LoginLimiter) Reset(ctx context.Context, email string) error {
	if err := limiter.attempts.Delete(ctx, NormalizeEmail(email)); err != nil {
		return fmt.Errorf("login_limiter_reset_failed: %w", err)
	}
	return nil
}
