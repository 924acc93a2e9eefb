// Copyright (c) 2026 IronLog. All rights reserved.

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ironlog-app/ironlog/internal/platform/constants"
	"github.com/ironlog-app/ironlog/internal/platform/dberr"
	"github.com/ironlog-app/ironlog/internal/platform/sec"
)

// SessionManager issues and resolves browser sessions carried in a signed
// cookie. Sessions are stateless: the cookie value is a self-contained signed
// token, so no server-side session store exists and sign-out cannot revoke a
// token already held by a client. The token simply remains valid until its
// embedded expiry.
type SessionManager struct {
	codec         *sec.TokenCodec
	users         UserRepository
	secureCookies bool
	now           func() time.Time
}

/*
NewSessionManager constructs a session manager.

Parameters:
  - codec: *sec.TokenCodec used to sign and verify session tokens
  - users: UserRepository for resolving token subjects to live accounts
  - secureCookies: true in production so cookies are HTTPS-only
*/
func NewSessionManager(codec *sec.TokenCodec, users UserRepository, secureCookies bool) *SessionManager {
	return &SessionManager{
		codec:         codec,
		users:         users,
		secureCookies: secureCookies,
		now:           time.Now,
	}
}

/*
Issue starts a session for the user and sets the session cookie.

Description: Signs a token expiring after [SessionDuration] and writes it as
an HttpOnly, SameSite=Lax cookie scoped to the whole site. The Secure flag
follows the deployment environment.

Parameters:
  - writer: http.ResponseWriter receiving the Set-Cookie header
  - userID: string ID of the authenticated account
*/
func (manager *SessionManager) Issue(writer http.ResponseWriter, userID string) {
	expiresAt := manager.now().Add(SessionDuration)
	token := manager.codec.Issue(userID, expiresAt)

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   manager.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

/*
CurrentUser resolves the request's session cookie to a live account.

Description: Returns (nil, nil) for every unauthenticated case: missing
cookie, invalid or expired token, and a token whose account no longer
exists. A deleted account therefore invalidates its outstanding sessions
even though the tokens themselves stay cryptographically valid. Only
storage failures surface as errors.

Parameters:
  - request: *http.Request carrying the session cookie, if any

Returns:
  - *sec.Identity: The authenticated identity, or nil when anonymous
  - error: Storage failures only
*/
func (manager *SessionManager) CurrentUser(request *http.Request) (*sec.Identity, error) {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil {
		return nil, nil
	}

	userID, valid := manager.codec.Verify(cookie.Value)
	if !valid {
		return nil, nil
	}

	user, err := manager.users.FindByID(request.Context(), userID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("session_resolve_failed: %w", err)
	}

	return &sec.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}, nil
}

// Clear expires the session cookie. Idempotent: clearing an absent session
// is not an error, so sign-out always succeeds.
func (manager *SessionManager) Clear(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   manager.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
