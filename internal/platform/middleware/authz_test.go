// Copyright (c) 2026 IronLog. All rights reserved.

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironlog-app/ironlog/internal/platform/constants"
	"github.com/ironlog-app/ironlog/internal/platform/ctxutil"
	"github.com/ironlog-app/ironlog/internal/platform/middleware"
	"github.com/ironlog-app/ironlog/internal/platform/sec"
)

// stubResolver is a canned [middleware.SessionResolver].
type stubResolver struct {
	user *sec.Identity
	err  error
}

func (resolver *stubResolver) CurrentUser(*http.Request) (*sec.Identity, error) {
	return resolver.user, resolver.err
}

// echoUserHandler records the identity the downstream handler observes.
func echoUserHandler(seen **sec.Identity) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*seen = middleware.GetUser(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestOutcome verifies the two arms of the gate decision.
*/
func TestOutcome(t *testing.T) {
	identity := &sec.Identity{UserID: "user-1"}

	authorized := middleware.Authorized(identity)
	assert.True(t, authorized.IsAuthorized())
	assert.Equal(t, identity, authorized.User())

	anonymous := middleware.Unauthorized()
	assert.False(t, anonymous.IsAuthorized())
	assert.Nil(t, anonymous.User())
}

/*
TestAuthenticate verifies identity injection, anonymous pass-through, and
the infrastructure-failure 500.
*/
func TestAuthenticate(t *testing.T) {
	identity := &sec.Identity{UserID: "user-1", Email: "lifter@example.com"}

	t.Run("injects_identity", func(t *testing.T) {
		var seen *sec.Identity
		handler := middleware.Authenticate(&stubResolver{user: identity})(echoUserHandler(&seen))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "user-1", seen.UserID)
	})

	t.Run("anonymous_passes_through", func(t *testing.T) {
		var seen *sec.Identity
		handler := middleware.Authenticate(&stubResolver{})(echoUserHandler(&seen))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Nil(t, seen)
	})

	t.Run("resolver_failure_is_500", func(t *testing.T) {
		handler := middleware.Authenticate(&stubResolver{err: errors.New("store down")})(
			http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatal("downstream handler must not run")
			}),
		)

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

/*
TestRequireUser verifies the two unauthorized translations (redirect for
page navigations, 401 JSON for API calls) and the authorized pass-through.
*/
func TestRequireUser(t *testing.T) {
	downstream := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	t.Run("html_navigation_redirects_to_sign_in", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/workouts/current", nil)
		request.Header.Set("Accept", "text/html,application/xhtml+xml")

		recorder := httptest.NewRecorder()
		middleware.RequireUser(downstream).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusSeeOther, recorder.Code)
		assert.Equal(t, constants.SignInPath, recorder.Header().Get("Location"))
	})

	t.Run("api_call_gets_401_json", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/workouts/current", nil)
		request.Header.Set("Accept", "application/json")

		recorder := httptest.NewRecorder()
		middleware.RequireUser(downstream).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "UNAUTHORIZED")
	})

	t.Run("authenticated_request_passes", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/workouts/current", nil)
		ctx := ctxutil.WithAuthUser(request.Context(), &sec.Identity{UserID: "user-1"})

		recorder := httptest.NewRecorder()
		middleware.RequireUser(downstream).ServeHTTP(recorder, request.WithContext(ctx))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
