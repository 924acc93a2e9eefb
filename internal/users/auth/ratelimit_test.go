// Copyright (c) 2026 IronLog. All rights reserved.

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironlog-app/ironlog/internal/platform/dberr"
)

// fakeAttemptStore is an in-memory [AttemptRepository] for limiter tests.
type fakeAttemptStore struct {
	records map[string]*LoginAttempt
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{records: make(map[string]*LoginAttempt)}
}

func (store *fakeAttemptStore) Find(_ context.Context, email string) (*LoginAttempt, error) {
	record, ok := store.records[email]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (store *fakeAttemptStore) UpsertIncrement(_ context.Context, email string) (*LoginAttempt, error) {
	record, ok := store.records[email]
	if !ok {
		record = &LoginAttempt{Email: email}
		store.records[email] = record
	}
	record.Attempts++
	record.UpdatedAt = time.Now()
	copied := *record
	return &copied, nil
}

func (store *fakeAttemptStore) SetLocked(_ context.Context, email string, lockedAt time.Time) error {
	if record, ok := store.records[email]; ok {
		record.LockedAt = &lockedAt
	}
	return nil
}

func (store *fakeAttemptStore) Delete(_ context.Context, email string) error {
	delete(store.records, email)
	return nil
}

// limiterAt builds a limiter whose clock is pinned to the given instant.
func limiterAt(store *fakeAttemptStore, instant time.Time) *LoginLimiter {
	limiter := NewLoginLimiter(store)
	limiter.now = func() time.Time { return instant }
	return limiter
}

/*
TestLoginLimiter_CleanState verifies that an email with no failure history
is always allowed.
*/
func TestLoginLimiter_CleanState(t *testing.T) {
	limiter := limiterAt(newFakeAttemptStore(), time.Now())

	result, err := limiter.Check(context.Background(), "fresh@example.com")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Zero(t, result.RetryAfter)
}

/*
TestLoginLimiter_LockThreshold verifies that the fifth consecutive failure
triggers the lockout, and not one failure earlier.
*/
func TestLoginLimiter_LockThreshold(t *testing.T) {
	store := newFakeAttemptStore()
	limiter := limiterAt(store, time.Now())
	ctx := context.Background()

	for i := 1; i < MaxLoginAttempts; i++ {
		locked, _, err := limiter.RecordFailure(ctx, "user@example.com")
		require.NoError(t, err)
		assert.False(t, locked, "failure %d must not lock", i)

		result, err := limiter.Check(ctx, "user@example.com")
		require.NoError(t, err)
		assert.True(t, result.Allowed, "still allowed after failure %d", i)
	}

	locked, retryAfter, err := limiter.RecordFailure(ctx, "user@example.com")
	require.NoError(t, err)
	assert.True(t, locked)
	assert.Equal(t, LockoutDuration, retryAfter)
}

/*
TestLoginLimiter_DeniedDuringLockout verifies that checks inside the lockout
window are denied with the remaining time, right up to the boundary.
*/
func TestLoginLimiter_DeniedDuringLockout(t *testing.T) {
	store := newFakeAttemptStore()
	lockInstant := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	limiter := limiterAt(store, lockInstant)
	ctx := context.Background()

	for i := 0; i < MaxLoginAttempts; i++ {
		_, _, err := limiter.RecordFailure(ctx, "user@example.com")
		require.NoError(t, err)
	}

	// Immediately after locking: full duration remains.
	result, err := limiter.Check(ctx, "user@example.com")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, LockoutDuration, result.RetryAfter)

	// 14 minutes in: one minute remains.
	limiter.now = func() time.Time { return lockInstant.Add(14 * time.Minute) }
	result, err = limiter.Check(ctx, "user@example.com")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, time.Minute, result.RetryAfter)
}

/*
TestLoginLimiter_LapsedLockStartsFreshEpisode verifies that once the lockout
window passes, the stale record is cleared and the counter restarts at one
instead of re-locking on the next failure.
*/
func TestLoginLimiter_LapsedLockStartsFreshEpisode(t *testing.T) {
	store := newFakeAttemptStore()
	lockInstant := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	limiter := limiterAt(store, lockInstant)
	ctx := context.Background()

	for i := 0; i < MaxLoginAttempts; i++ {
		_, _, err := limiter.RecordFailure(ctx, "user@example.com")
		require.NoError(t, err)
	}

	limiter.now = func() time.Time { return lockInstant.Add(LockoutDuration + time.Second) }

	result, err := limiter.Check(ctx, "user@example.com")
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	// The stale record is gone, so the next failure starts a new episode.
	_, exists := store.records["user@example.com"]
	assert.False(t, exists)

	locked, _, err := limiter.RecordFailure(ctx, "user@example.com")
	require.NoError(t, err)
	assert.False(t, locked)
	assert.Equal(t, 1, store.records["user@example.com"].Attempts)
}

/*
TestLoginLimiter_Reset verifies that a reset clears accumulated failures.
*/
func TestLoginLimiter_Reset(t *testing.T) {
	store := newFakeAttemptStore()
	limiter := limiterAt(store, time.Now())
	ctx := context.Background()

	for i := 0; i < MaxLoginAttempts-1; i++ {
		_, _, err := limiter.RecordFailure(ctx, "user@example.com")
		require.NoError(t, err)
	}

	require.NoError(t, limiter.Reset(ctx, "user@example.com"))

	// Post-reset, the counter restarts from scratch.
	locked, _, err := limiter.RecordFailure(ctx, "user@example.com")
	require.NoError(t, err)
	assert.False(t, locked)
	assert.Equal(t, 1, store.records["user@example.com"].Attempts)
}

/*
TestLoginLimiter_EmailNormalization verifies that case and whitespace
variants of an email share one failure record.
*/
func TestLoginLimiter_EmailNormalization(t *testing.T) {
	store := newFakeAttemptStore()
	limiter := limiterAt(store, time.Now())
	ctx := context.Background()

	variants := []string{
		"User@Example.com",
		"USER@EXAMPLE.COM",
		" user@example.com ",
		"user@example.com",
		"uSeR@eXaMpLe.CoM",
	}
	require.Len(t, variants, MaxLoginAttempts)

	var locked bool
	for _, variant := range variants {
		var err error
		locked, _, err = limiter.RecordFailure(ctx, variant)
		require.NoError(t, err)
	}

	assert.True(t, locked, "five failures across variants must lock the shared record")
	assert.Len(t, store.records, 1)

	result, err := limiter.Check(ctx, "USER@example.COM")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
}
