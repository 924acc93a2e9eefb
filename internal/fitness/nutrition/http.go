// Copyright (c) 2026 IronLog. All rights reserved.

package nutrition

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ironlog-app/ironlog/internal/platform/apperr"
	requestutil "github.com/ironlog-app/ironlog/internal/platform/request"
	"github.com/ironlog-app/ironlog/internal/platform/respond"
	"github.com/ironlog-app/ironlog/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the nutrition HTTP endpoints.
type Handler struct {
	nutritionService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{nutritionService: service}
}

// Routes returns a [chi.Router] with nutrition routes.
//
// # Endpoints
//   - GET    /           : Lists food entries, newest first.
//   - POST   /           : Logs a food entry.
//   - DELETE /{id}       : Deletes a food entry.
//   - GET    /daily?date : Returns one day's entries and totals.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Delete("/{id}", handler.delete)
	router.Get("/daily", handler.daily)

	return router
}

// # Request Payloads

type createEntryRequest struct {
	MealType string     `json:"meal_type"`
	Calories int        `json:"calories"`
	Protein  float64    `json:"protein"`
	Carbs    float64    `json:"carbs"`
	Fat      float64    `json:"fat"`
	Note     string     `json:"note"`
	LoggedAt *time.Time `json:"logged_at"`
}

/*
Create logs a food entry.

POST /api/v1/nutrition

Request:
  - Body: createEntryRequest (MealType, Calories >= 0, macros >= 0, Note?, LoggedAt?)

Response:
  - 201: FoodEntry
  - 400: ErrInvalidJSON: Unknown meal type or negative values
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createEntryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.OneOf(FieldMealType, input.MealType, MealTypes...).
		Custom(FieldCalories, input.Calories < 0, "Must not be negative").
		NonNegative(FieldProtein, input.Protein).
		NonNegative(FieldCarbs, input.Carbs).
		NonNegative(FieldFat, input.Fat).
		MaxLen(FieldNote, input.Note, 500)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.nutritionService.Create(request.Context(), userID, CreateInput{
		MealType: input.MealType,
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fat:      input.Fat,
		Note:     input.Note,
		LoggedAt: input.LoggedAt,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

/*
List returns the user's food entries, newest first.

GET /api/v1/nutrition

Response:
  - 200: []FoodEntry
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.nutritionService.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

/*
Delete removes a food entry.

DELETE /api/v1/nutrition/{id}

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

	if err := handler.nutritionService.Delete(request.Context(), userID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Daily returns one calendar day's entries and aggregated totals.

GET /api/v1/nutrition/daily?date=YYYY-MM-DD

Response:
  - 200: DailySummary
  - 400: ErrInvalidJSON: Missing or malformed date
*/
func (handler *Handler) daily(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	date := request.URL.Query().Get(FieldDate)
	if date == "" {
		respond.Error(writer, request, apperr.ValidationError("Missing date", apperr.FieldError{
			Field:   FieldDate,
			Message: "This query parameter is required",
		}))
		return
	}

	summary, err := handler.nutritionService.Daily(request.Context(), userID, date)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}
