// Copyright (c) 2026 IronLog. All rights reserved.

// The auth gate: session resolution and protected-route enforcement.
//
// # Architecture
//
// Authenticate resolves the session cookie into an identity once per request
// and stores it in context. RequireUser then enforces presence of that
// identity for protected route groups. The gate's decision is modelled as an
// explicit [Outcome] value so the policy is testable without a router, and so
// the transport layer rather than the gate decides how Unauthorized turns
// into a response (redirect for page navigations, 401 JSON for API calls).
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ironlog-app/ironlog/internal/platform/apperr"
	"github.com/ironlog-app/ironlog/internal/platform/constants"
	"github.com/ironlog-app/ironlog/internal/platform/ctxutil"
	"github.com/ironlog-app/ironlog/internal/platform/respond"
	"github.com/ironlog-app/ironlog/internal/platform/sec"
)

// SessionResolver turns the request's session cookie into an identity.
//
// # Why an interface?
//
// Defining SessionResolver here decouples the middleware from the auth
// service implementation, allowing mocks to be injected during unit testing.
//
// Implementations return (nil, nil) for any request that is simply not
// authenticated: missing cookie, malformed token, expired token, and a token
// whose user no longer exists are all indistinguishable to callers. A non-nil
// error signals infrastructure failure (e.g. credential store unreachable).
type SessionResolver interface {
	CurrentUser(request *http.Request) (*sec.Identity, error)
}

// Outcome is the gate's decision for a single request.
//
// It is a two-armed sum: Authorized carries the identity, Unauthorized
// carries nothing.
type Outcome struct {
	user *sec.Identity
}

// Authorized constructs the positive arm of the gate outcome.
func Authorized(user *sec.Identity) Outcome { return Outcome{user: user} }

// Unauthorized constructs the negative arm of the gate outcome.
func Unauthorized() Outcome { return Outcome{} }

// IsAuthorized reports whether the request carries a resolved identity.
func (o Outcome) IsAuthorized() bool { return o.user != nil }

// User returns the resolved identity, or nil for the Unauthorized arm.
func (o Outcome) User() *sec.Identity { return o.user }

// Gate inspects a request context previously processed by [Authenticate]
// and reports whether it is authorized.
func Gate(ctx context.Context) Outcome {
	if user := ctxutil.GetAuthUser(ctx); user != nil {
		return Authorized(user)
	}
	return Unauthorized()
}

// Authenticate resolves the session cookie and injects the identity into the
// request context.
//
// # Flow
//  1. Ask the [SessionResolver] for the current user.
//  2. Infrastructure failure aborts the request with a 500.
//  3. No identity: request proceeds as anonymous (RequireUser decides later).
//  4. Identity found: inject [*sec.Identity] into the request context.
func Authenticate(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			user, err := resolver.CurrentUser(request)
			if err != nil {
				respond.Error(writer, request, apperr.Internal(err))
				return
			}

			if user == nil {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), user)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireUser blocks requests that did not resolve to an identity.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// Unauthorized page navigations are sent to the sign-in page with a 303;
// unauthorized API calls get a 401 JSON envelope. This is the only place the
// Unauthorized arm of [Outcome] is translated into a response.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		outcome := Gate(request.Context())
		if !outcome.IsAuthorized() {
			if wantsHTML(request) {
				respond.Redirect(writer, request, constants.SignInPath)
				return
			}
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// GetUser retrieves the [*sec.Identity] from the [context.Context].
//
// # Returns
//   - The resolved identity if the request is authenticated.
//   - nil if the request is anonymous.
func GetUser(ctx context.Context) *sec.Identity {
	return ctxutil.GetAuthUser(ctx)
}

// wantsHTML reports whether the client is a browser navigation rather than a
// JSON API consumer.
func wantsHTML(request *http.Request) bool {
	accept := request.Header.Get("Accept")
	return strings.Contains(accept, "text/html")
}
