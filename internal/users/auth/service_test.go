// Copyright (c) 2026 IronLog. All rights reserved.

package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironlog-app/ironlog/internal/platform/apperr"
	"github.com/ironlog-app/ironlog/internal/platform/dberr"
	"github.com/ironlog-app/ironlog/internal/platform/sec"
)

// fakeUserStore is an in-memory [UserRepository] for service tests.
type fakeUserStore struct {
	byEmail map[string]*User
	created int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*User)}
}

func (store *fakeUserStore) Create(_ context.Context, user *User) error {
	if _, ok := store.byEmail[user.Email]; ok {
		return apperr.Conflict("An account with this email already exists")
	}
	store.byEmail[user.Email] = user
	store.created++
	return nil
}

func (store *fakeUserStore) FindByEmail(_ context.Context, email string) (*User, error) {
	user, ok := store.byEmail[email]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return user, nil
}

func (store *fakeUserStore) FindByID(_ context.Context, id string) (*User, error) {
	for _, user := range store.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, dberr.ErrNotFound
}

// newTestService wires a service over fresh fakes, returning the stores for
// state assertions.
func newTestService(t *testing.T) (*Service, *fakeUserStore, *fakeAttemptStore) {
	t.Helper()
	users := newFakeUserStore()
	attempts := newFakeAttemptStore()
	return NewService(users, NewLoginLimiter(attempts)), users, attempts
}

// mustSignUp registers an account and fails the test on error.
func mustSignUp(t *testing.T, service *Service, email, password string) *User {
	t.Helper()
	user, err := service.SignUp(context.Background(), SignUpInput{
		Email:    email,
		Name:     "Test User",
		Password: password,
	})
	require.NoError(t, err)
	return user
}

/*
TestService_SignUp verifies registration: email normalization, password
hashing, and default preferences.
*/
func TestService_SignUp(t *testing.T) {
	service, users, _ := newTestService(t)

	user := mustSignUp(t, service, "  Lifter@Example.COM ", "strong-password")

	assert.Equal(t, "lifter@example.com", user.Email)
	assert.Equal(t, DefaultWeightUnit, user.WeightUnit)
	assert.NotEmpty(t, user.ID)

	// The stored credential is a hash, never the plaintext.
	assert.NotEqual(t, "strong-password", user.PasswordHash)
	match, err := sec.CheckPasswordHash("strong-password", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, match)

	assert.Equal(t, 1, users.created)
}

/*
TestService_SignUp_DuplicateEmail verifies the conflict response, including
for case variants of an existing email.
*/
func TestService_SignUp_DuplicateEmail(t *testing.T) {
	service, users, _ := newTestService(t)
	mustSignUp(t, service, "lifter@example.com", "strong-password")

	_, err := service.SignUp(context.Background(), SignUpInput{
		Email:    "LIFTER@example.com",
		Name:     "Impostor",
		Password: "another-password",
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
	assert.Equal(t, "An account with this email already exists", ae.Message)
	assert.Equal(t, 1, users.created)
}

/*
TestService_SignIn verifies the happy path and that a success clears any
accumulated failure state.
*/
func TestService_SignIn(t *testing.T) {
	service, _, attempts := newTestService(t)
	registered := mustSignUp(t, service, "lifter@example.com", "strong-password")
	ctx := context.Background()

	// Two failures, then a success.
	_, err := service.SignIn(ctx, "lifter@example.com", "wrong")
	require.Error(t, err)
	_, err = service.SignIn(ctx, "lifter@example.com", "also-wrong")
	require.Error(t, err)

	user, err := service.SignIn(ctx, "Lifter@Example.com", "strong-password")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	// Success wipes the failure record entirely.
	assert.Empty(t, attempts.records)
}

/*
TestService_SignIn_GenericFailureMessage verifies enumeration resistance:
unknown emails and wrong passwords yield byte-identical 401 errors, and both
burn a rate-limit attempt.
*/
func TestService_SignIn_GenericFailureMessage(t *testing.T) {
	service, _, attempts := newTestService(t)
	mustSignUp(t, service, "known@example.com", "strong-password")
	ctx := context.Background()

	_, wrongPasswordErr := service.SignIn(ctx, "known@example.com", "wrong")
	_, unknownEmailErr := service.SignIn(ctx, "ghost@example.com", "whatever")

	wrongAE := apperr.As(wrongPasswordErr)
	unknownAE := apperr.As(unknownEmailErr)
	require.NotNil(t, wrongAE)
	require.NotNil(t, unknownAE)

	assert.Equal(t, http.StatusUnauthorized, wrongAE.HTTPStatus)
	assert.Equal(t, wrongAE.HTTPStatus, unknownAE.HTTPStatus)
	assert.Equal(t, wrongAE.Code, unknownAE.Code)
	assert.Equal(t, wrongAE.Message, unknownAE.Message)
	assert.Equal(t, "Invalid email or password", wrongAE.Message)

	// Both identities accumulated an attempt.
	assert.Equal(t, 1, attempts.records["known@example.com"].Attempts)
	assert.Equal(t, 1, attempts.records["ghost@example.com"].Attempts)
}

/*
TestService_SignIn_CorruptStoredHash verifies that an undecodable stored
hash propagates as a server-side failure instead of posing as a wrong
password, and that it burns no rate-limit attempt.
*/
func TestService_SignIn_CorruptStoredHash(t *testing.T) {
	service, users, attempts := newTestService(t)
	users.byEmail["lifter@example.com"] = &User{
		ID:           "0195b2f0-0000-7000-8000-000000000001",
		Email:        "lifter@example.com",
		PasswordHash: "not-a-phc-string",
	}

	_, err := service.SignIn(context.Background(), "lifter@example.com", "whatever")

	require.Error(t, err)
	assert.ErrorIs(t, err, sec.ErrMalformedHash)
	assert.ErrorContains(t, err, "sign_in_verify_failed")
	assert.Nil(t, apperr.As(err), "storage faults are not client errors")
	assert.Empty(t, attempts.records)
}

/*
TestService_SignIn_Lockout walks the full lockout flow: the fifth failure
returns the lockout message, and the following attempt is denied before the
password would be checked, even with correct credentials.
*/
func TestService_SignIn_Lockout(t *testing.T) {
	service, _, attempts := newTestService(t)
	mustSignUp(t, service, "lifter@example.com", "strong-password")
	ctx := context.Background()

	for i := 1; i < MaxLoginAttempts; i++ {
		_, err := service.SignIn(ctx, "lifter@example.com", "wrong")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus, "failure %d", i)
	}

	// Fifth failure crosses the threshold.
	_, err := service.SignIn(ctx, "lifter@example.com", "wrong")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusTooManyRequests, ae.HTTPStatus)
	assert.Equal(t, "Too many login attempts. Please try again in 15 minutes.", ae.Message)

	// Correct credentials are irrelevant during the lockout: the gate runs
	// first and the attempt counter must not move.
	countBefore := attempts.records["lifter@example.com"].Attempts
	_, err = service.SignIn(ctx, "lifter@example.com", "strong-password")
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusTooManyRequests, ae.HTTPStatus)
	assert.Equal(t, countBefore, attempts.records["lifter@example.com"].Attempts)
}

/*
TestService_SignIn_UnknownEmailLockout verifies that hammering a nonexistent
email locks it out just like a real one, so lockout behavior cannot be used
to probe for accounts.
*/
func TestService_SignIn_UnknownEmailLockout(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	var lastErr error
	for i := 0; i < MaxLoginAttempts; i++ {
		_, lastErr = service.SignIn(ctx, "ghost@example.com", "whatever")
		require.Error(t, lastErr)
	}

	ae := apperr.As(lastErr)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusTooManyRequests, ae.HTTPStatus)
}

/*
TestRetryMessage checks minute rounding and pluralization of the lockout
retry message.
*/
func TestRetryMessage(t *testing.T) {
	tests := []struct {
		name       string
		retryAfter time.Duration
		want       string
	}{
		{"full_window", 15 * time.Minute, "Too many login attempts. Please try again in 15 minutes."},
		{"partial_minute_rounds_up", 13*time.Minute + time.Second, "Too many login attempts. Please try again in 14 minutes."},
		{"under_a_minute", 30 * time.Second, "Too many login attempts. Please try again in 1 minute."},
		{"exactly_one_minute", time.Minute, "Too many login attempts. Please try again in 1 minute."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retryMessage(tt.retryAfter))
		})
	}
}
