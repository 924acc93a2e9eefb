// Copyright (c) 2026 IronLog. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/ironlog-app/ironlog/internal/platform/request"
	"github.com/ironlog-app/ironlog/internal/platform/respond"
	"github.com/ironlog-app/ironlog/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the authentication HTTP endpoints.
//
// # Scope
//
// The handler owns all transport concerns of the authentication lifecycle:
// request decoding, input validation, status codes, and session cookie
// injection. The [Service] stays cookie-free.
type Handler struct {
	authService *Service
	sessions    *SessionManager
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, sessions *SessionManager) *Handler {
	return &Handler{authService: service, sessions: sessions}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /sign-up  : Creates a new account and starts a session.
//   - POST /sign-in  : Authenticates and starts a session.
//   - POST /sign-out : Clears the session cookie.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/sign-up", handler.signUp)
	router.Post("/sign-in", handler.signIn)
	router.Post("/sign-out", handler.signOut)

	return router
}

// # Request Payloads

type signUpRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
SignUp handles the creation of a new user account.

POST /api/v1/auth/sign-up

Description: Validates input, creates the account, and immediately starts a
session so the client lands signed in.

Request:
  - Body: signUpRequest (Email, Name, Password)

Response:
  - 201: User: Created account profile (session cookie set)
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	var input signUpRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 6)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.SignUp(request.Context(), SignUpInput{
		Email:    input.Email,
		Name:     input.Name,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.sessions.Issue(writer, user.ID)

	respond.Created(writer, user)
}

/*
SignIn authenticates a user and establishes a session.

POST /api/v1/auth/sign-in

Description: Verifies credentials under the login rate limit and sets the
session cookie on success. Bad credentials and unknown emails return the
same 401 body.

Request:
  - Body: signInRequest (Email, Password)

Response:
  - 200: User: Authenticated account profile (session cookie set)
  - 401: ErrUnauthorized: Invalid email or password
  - 429: ErrRateLimited: Account temporarily locked out
*/
func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request) {
	var input signInRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.SignIn(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.sessions.Issue(writer, user.ID)

	respond.OK(writer, user)
}

/*
SignOut terminates the current session.

POST /api/v1/auth/sign-out

Description: Expires the session cookie. Sessions are stateless, so there is
no server-side record to revoke; the endpoint succeeds whether or not the
request carried a valid session.

Response:
  - 200: Success: Signed out
*/
func (handler *Handler) signOut(writer http.ResponseWriter, request *http.Request) {
	handler.sessions.Clear(writer)

	respond.OK(writer, map[string]string{
		FieldMessage: "Signed out",
	})
}
