// Copyright (c) 2026 IronLog. All rights reserved.

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/ironlog-app/ironlog/internal/platform/request"
	"github.com/ironlog-app/ironlog/internal/platform/respond"
	"github.com/ironlog-app/ironlog/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements profile HTTP endpoints. All routes here sit behind the
// auth gate, so an authenticated identity is always present in the context.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] with profile routes. It is mounted at
// /auth/me by the server.
//
// # Endpoints
//   - GET   / : Returns the signed-in user's profile.
//   - PATCH / : Updates the display name.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.me)
	router.Patch("/", handler.updateName)

	return router
}

// # Request Payloads

type updateNameRequest struct {
	Name string `json:"name"`
}

/*
Me returns the signed-in user's profile.

GET /api/v1/auth/me

Response:
  - 200: User: The full private profile
  - 401: ErrUnauthorized: No valid session
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateName changes the signed-in user's display name.

PATCH /api/v1/auth/me

Request:
  - Body: updateNameRequest (Name)

Response:
  - 200: User: The updated profile
  - 400: ErrInvalidJSON: Empty or oversized name
  - 401: ErrUnauthorized: No valid session
*/
func (handler *Handler) updateName(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateNameRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateName(request.Context(), userID, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
