// Copyright (c) 2026 IronLog. All rights reserved.

package weight

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/ironlog-app/ironlog/internal/platform/request"
	"github.com/ironlog-app/ironlog/internal/platform/respond"
	"github.com/ironlog-app/ironlog/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the body-weight HTTP endpoints.
type Handler struct {
	weightService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{weightService: service}
}

// Routes returns a [chi.Router] with weight routes.
//
// # Endpoints
//   - GET    /      : Lists measurements, newest first.
//   - POST   /      : Records a measurement.
//   - DELETE /{id}  : Deletes a measurement.
//   - GET    /unit  : Returns the preferred unit.
//   - PUT    /unit  : Changes the preferred unit.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.history)
	router.Post("/", handler.record)
	router.Delete("/{id}", handler.delete)

	router.Get("/unit", handler.unit)
	router.Put("/unit", handler.setUnit)

	return router
}

// # Request Payloads

type recordWeightRequest struct {
	Weight     float64    `json:"weight"`
	RecordedAt *time.Time `json:"recorded_at"`
	Note       string     `json:"note"`
}

type setUnitRequest struct {
	Unit string `json:"unit"`
}

/*
Record logs a body-weight measurement in the user's preferred unit.

POST /api/v1/weight

Request:
  - Body: recordWeightRequest (Weight > 0, RecordedAt?, Note?)

Response:
  - 201: Entry
  - 400: ErrInvalidJSON: Non-positive weight
*/
func (handler *Handler) record(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input recordWeightRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Positive(FieldWeight, input.Weight).
		MaxLen(FieldNote, input.Note, 500)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.weightService.Record(request.Context(), userID, input.Weight, input.RecordedAt, input.Note)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

/*
History lists the user's measurements, newest first.

GET /api/v1/weight

Response:
  - 200: []Entry
*/
func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.weightService.History(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

/*
Delete removes a measurement.

DELETE /api/v1/weight/{id}

Response:
  - 204: No Content
  - 404: ErrNotFound: Unknown or foreign entry
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.weightService.Delete(request.Context(), userID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Unit returns the user's preferred weight unit.

GET /api/v1/weight/unit

Response:
  - 200: {"unit": "lbs" | "kg"}
*/
func (handler *Handler) unit(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	unit, err := handler.weightService.Unit(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldUnit: unit})
}

/*
SetUnit changes the preferred weight unit for future entries.

PUT /api/v1/weight/unit

Request:
  - Body: setUnitRequest (Unit: "lbs" | "kg")

Response:
  - 204: No Content
  - 400: ErrInvalidJSON: Unknown unit
*/
func (handler *Handler) setUnit(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setUnitRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.OneOf(FieldUnit, input.Unit, UnitLbs, UnitKg)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.weightService.SetUnit(request.Context(), userID, input.Unit); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
