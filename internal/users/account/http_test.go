// Copyright (c) 2026 IronLog. All rights reserved.

package account

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironlog-app/ironlog/internal/platform/ctxutil"
	"github.com/ironlog-app/ironlog/internal/platform/dberr"
	"github.com/ironlog-app/ironlog/internal/platform/respond"
	"github.com/ironlog-app/ironlog/internal/platform/sec"
	"github.com/ironlog-app/ironlog/internal/users/auth"
)

// fakeRepository is an in-memory [Repository] keyed by user ID.
type fakeRepository struct {
	byID map[string]*auth.User
}

func (repository *fakeRepository) FindByID(_ context.Context, userID string) (*auth.User, error) {
	user, ok := repository.byID[userID]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return user, nil
}

func (repository *fakeRepository) UpdateName(_ context.Context, userID, name string) (*auth.User, error) {
	user, ok := repository.byID[userID]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	user.Name = name
	return user, nil
}

// newTestHandler wires a handler over a fake repository holding one account.
func newTestHandler(t *testing.T) (*Handler, *auth.User, *fakeRepository) {
	t.Helper()

	user := &auth.User{
		ID:         "0195b2f0-0000-7000-8000-000000000001",
		Email:      "lifter@example.com",
		Name:       "Test User",
		WeightUnit: "lbs",
	}
	repository := &fakeRepository{byID: map[string]*auth.User{user.ID: user}}
	service := NewService(repository, slog.New(slog.DiscardHandler))

	return NewHandler(service), user, repository
}

// authenticatedRequest builds a request carrying the identity the auth gate
// would have injected.
func authenticatedRequest(user *auth.User, method, body string) *http.Request {
	request := httptest.NewRequest(method, "/", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	identity := &sec.Identity{UserID: user.ID, Email: user.Email, Name: user.Name}
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), identity))
}

/*
TestHandler_Me verifies the profile read: the signed-in user gets their own
account back, without the password hash.
*/
func TestHandler_Me(t *testing.T) {
	handler, user, _ := newTestHandler(t)

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, authenticatedRequest(user, http.MethodGet, ""))

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data auth.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, user.ID, envelope.Data.ID)
	assert.Equal(t, "lifter@example.com", envelope.Data.Email)
	assert.NotContains(t, recorder.Body.String(), "password_hash")
}

/*
TestHandler_UpdateName verifies the rename flow, including rejection of an
empty name before the repository is touched.
*/
func TestHandler_UpdateName(t *testing.T) {
	handler, user, repository := newTestHandler(t)

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder,
		authenticatedRequest(user, http.MethodPatch, `{"name": "Stronger User"}`))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Stronger User", repository.byID[user.ID].Name)

	var envelope struct {
		Data auth.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "Stronger User", envelope.Data.Name)

	// An empty name is a validation failure and must not persist.
	recorder = httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder,
		authenticatedRequest(user, http.MethodPatch, `{"name": ""}`))

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Stronger User", repository.byID[user.ID].Name)

	var failure respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &failure))
	require.NotEmpty(t, failure.Details)
	assert.Equal(t, FieldName, failure.Details[0].Field)
}

/*
TestHandler_Me_NoIdentity verifies the handler fails closed when the auth
gate did not run.
*/
func TestHandler_Me_NoIdentity(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
