// Copyright (c) 2026 IronLog. All rights reserved.

package movement

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/ironlog-app/ironlog/internal/platform/request"
	"github.com/ironlog-app/ironlog/internal/platform/respond"
	"github.com/ironlog-app/ironlog/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the movement catalog HTTP endpoints.
type Handler struct {
	movementService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{movementService: service}
}

// Routes returns a [chi.Router] with movement routes.
//
// # Endpoints
//   - GET    /     : Lists the user's catalog.
//   - POST   /     : Creates a movement.
//   - PATCH  /{id} : Partially updates a movement.
//   - DELETE /{id} : Deletes a movement without set references.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// # Request Payloads

type createMovementRequest struct {
	Name         string `json:"name"`
	IsBodyWeight bool   `json:"is_body_weight"`
}

type updateMovementRequest struct {
	Name         *string `json:"name"`
	IsBodyWeight *bool   `json:"is_body_weight"`
}

/*
List returns the user's movement catalog ordered by name.

GET /api/v1/movements

Response:
  - 200: []Movement
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movements, err := handler.movementService.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, movements)
}

/*
Create adds a movement to the catalog.

POST /api/v1/movements

Request:
  - Body: createMovementRequest (Name, IsBodyWeight)

Response:
  - 201: Movement
  - 400: ErrInvalidJSON: Empty name
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createMovementRequest
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

	entity, err := handler.movementService.Create(request.Context(), userID, input.Name, input.IsBodyWeight)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

/*
Update partially updates a movement.

PATCH /api/v1/movements/{id}

Request:
  - Body: updateMovementRequest (Name?, IsBodyWeight?)

Response:
  - 200: Movement
  - 404: ErrNotFound: Unknown or foreign movement ID
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMovementRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).
			MaxLen(FieldName, *input.Name, 100)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.movementService.Update(request.Context(), userID, requestutil.Param(request, "id"), UpdateInput{
		Name:         input.Name,
		IsBodyWeight: input.IsBodyWeight,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
Delete removes a movement from the catalog.

DELETE /api/v1/movements/{id}

Response:
  - 204: No Content
  - 404: ErrNotFound: Unknown or foreign movement ID
  - 409: ErrConflict: Sets still reference the movement
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.movementService.Delete(request.Context(), userID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
