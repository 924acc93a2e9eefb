// Copyright (c) 2026 IronLog. All rights reserved.

package workout

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/ironlog-app/ironlog/internal/platform/request"
	"github.com/ironlog-app/ironlog/internal/platform/respond"
	"github.com/ironlog-app/ironlog/internal/platform/validate"
	"github.com/ironlog-app/ironlog/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the workout lifecycle HTTP endpoints.
type Handler struct {
	workoutService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{workoutService: service}
}

// Routes returns a [chi.Router] with workout routes.
//
// # Endpoints
//   - POST   /              : Starts a workout.
//   - GET    /current       : Returns the active workout with its sets.
//   - POST   /complete      : Completes the active workout.
//   - GET    /history       : Paginated completed workouts, newest first.
//   - DELETE /              : Bulk-deletes workouts from history.
//   - POST   /sets          : Adds a set to the active workout.
//   - DELETE /sets/{setID}  : Removes a set from the active workout.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.start)
	router.Get("/current", handler.current)
	router.Post("/complete", handler.complete)
	router.Get("/history", handler.history)
	router.Delete("/", handler.deleteWorkouts)

	router.Post("/sets", handler.addSet)
	router.Delete("/sets/{setID}", handler.deleteSet)

	return router
}

// # Request Payloads

type addSetRequest struct {
	MovementID string  `json:"movement_id"`
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
}

type deleteWorkoutsRequest struct {
	WorkoutIDs []string `json:"workout_ids"`
}

/*
Start opens a new training session.

POST /api/v1/workouts

Response:
  - 201: Workout: The new empty workout
*/
func (handler *Handler) start(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.workoutService.Start(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

/*
Current returns the in-progress workout with its sets.

GET /api/v1/workouts/current

Response:
  - 200: Workout
  - 404: ErrNotFound: No workout in progress
*/
func (handler *Handler) current(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.workoutService.Current(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
Complete finishes the active workout.

POST /api/v1/workouts/complete

Response:
  - 204: No Content
  - 409: ErrConflict: No active workout to complete
  - 422: ErrUnprocessable: Active workout has no sets
*/
func (handler *Handler) complete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.workoutService.Complete(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
History returns completed workouts, newest first.

GET /api/v1/workouts/history?page=&limit=

Response:
  - 200: []Workout with pagination metadata
*/
func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	workouts, meta, err := handler.workoutService.History(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, workouts, meta)
}

/*
DeleteWorkouts bulk-deletes workouts and their sets.

DELETE /api/v1/workouts

Request:
  - Body: deleteWorkoutsRequest (WorkoutIDs)

Response:
  - 204: No Content
*/
func (handler *Handler) deleteWorkouts(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input deleteWorkoutsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	for _, id := range input.WorkoutIDs {
		validator.UUID(FieldWorkoutIDs, id)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.workoutService.Delete(request.Context(), userID, input.WorkoutIDs); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
AddSet logs a set against the active workout.

POST /api/v1/workouts/sets

Request:
  - Body: addSetRequest (MovementID, Reps >= 1, Weight >= 0)

Response:
  - 201: Set with its movement hydrated
  - 404: ErrNotFound: Movement missing from the user's catalog
  - 409: ErrConflict: No active workout
*/
func (handler *Handler) addSet(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addSetRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldMovementID, input.MovementID).
		UUID(FieldMovementID, input.MovementID).
		Custom(FieldReps, input.Reps < 1, "Must be at least 1").
		NonNegative(FieldWeight, input.Weight)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.workoutService.AddSet(request.Context(), userID, input.MovementID, input.Reps, input.Weight)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

/*
DeleteSet removes a set from the active workout.

DELETE /api/v1/workouts/sets/{setID}

Response:
  - 204: No Content
  - 404: ErrNotFound: Unknown, foreign, or frozen set
*/
func (handler *Handler) deleteSet(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.workoutService.DeleteSet(request.Context(), userID, requestutil.Param(request, "setID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
