// Copyright (c) 2026 IronLog. All rights reserved.

package workout

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironlog-app/ironlog/internal/fitness/movement"
	"github.com/ironlog-app/ironlog/internal/platform/apperr"
	"github.com/ironlog-app/ironlog/internal/platform/dberr"
	"github.com/ironlog-app/ironlog/pkg/pagination"
)

// fakeStore is an in-memory [Repository] for service tests.
type fakeStore struct {
	workouts map[string]*Workout
	sets     map[string]*Set
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		workouts: make(map[string]*Workout),
		sets:     make(map[string]*Set),
	}
}

func (store *fakeStore) Create(_ context.Context, entity *Workout) error {
	copied := *entity
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	store.workouts[entity.ID] = &copied
	return nil
}

func (store *fakeStore) FindActive(_ context.Context, userID string) (*Workout, error) {
	var active *Workout
	for _, entity := range store.workouts {
		if entity.UserID != userID || entity.CompletedAt != nil {
			continue
		}
		if active == nil || entity.CreatedAt.After(active.CreatedAt) {
			active = entity
		}
	}
	if active == nil {
		return nil, dberr.ErrNotFound
	}

	copied := *active
	copied.Sets = store.setsOf(active.ID)
	return &copied, nil
}

func (store *fakeStore) Complete(_ context.Context, workoutID string, completedAt time.Time) error {
	if entity, ok := store.workouts[workoutID]; ok {
		entity.CompletedAt = &completedAt
	}
	return nil
}

func (store *fakeStore) History(_ context.Context, userID string, limit, offset int) ([]Workout, int, error) {
	completed := make([]Workout, 0)
	for _, entity := range store.workouts {
		if entity.UserID == userID && entity.CompletedAt != nil {
			copied := *entity
			copied.Sets = store.setsOf(entity.ID)
			completed = append(completed, copied)
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].CompletedAt.After(*completed[j].CompletedAt)
	})

	total := len(completed)
	if offset >= total {
		return []Workout{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return completed[offset:end], total, nil
}

func (store *fakeStore) DeleteMany(_ context.Context, userID string, ids []string) error {
	for _, id := range ids {
		if entity, ok := store.workouts[id]; ok && entity.UserID == userID {
			delete(store.workouts, id)
			for setID, set := range store.sets {
				if set.WorkoutID == id {
					delete(store.sets, setID)
				}
			}
		}
	}
	return nil
}

func (store *fakeStore) AddSet(_ context.Context, entity *Set) error {
	copied := *entity
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	store.sets[entity.ID] = &copied
	return nil
}

func (store *fakeStore) DeleteSet(_ context.Context, userID, setID string) error {
	set, ok := store.sets[setID]
	if !ok {
		return dberr.ErrNotFound
	}
	parent, ok := store.workouts[set.WorkoutID]
	if !ok || parent.UserID != userID || parent.CompletedAt != nil {
		return dberr.ErrNotFound
	}
	delete(store.sets, setID)
	return nil
}

func (store *fakeStore) setsOf(workoutID string) []Set {
	result := make([]Set, 0)
	for _, set := range store.sets {
		if set.WorkoutID == workoutID {
			result = append(result, *set)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result
}

// fakeCatalog is an in-memory [MovementCatalog].
type fakeCatalog struct {
	movements map[string]*movement.Movement
}

func (catalog *fakeCatalog) FindByID(_ context.Context, userID, id string) (*movement.Movement, error) {
	entity, ok := catalog.movements[id]
	if !ok || entity.UserID != userID {
		return nil, dberr.ErrNotFound
	}
	return entity, nil
}

// fixture wires a service over fresh fakes with one catalog movement for
// the given user.
func fixture(userID string) (*Service, *fakeStore, *movement.Movement) {
	store := newFakeStore()
	catalogEntry := &movement.Movement{
		ID:     "0195b2f0-0000-7000-8000-00000000000a",
		UserID: userID,
		Name:   "Bench Press",
	}
	catalog := &fakeCatalog{movements: map[string]*movement.Movement{catalogEntry.ID: catalogEntry}}
	return NewService(store, catalog), store, catalogEntry
}

/*
TestService_StartAndCurrent verifies that a started workout becomes the
active one and comes back with an empty set list.
*/
func TestService_StartAndCurrent(t *testing.T) {
	service, _, _ := fixture("user-1")
	ctx := context.Background()

	started, err := service.Start(ctx, "user-1")
	require.NoError(t, err)

	current, err := service.Current(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, started.ID, current.ID)
	assert.True(t, current.Active())
	assert.Empty(t, current.Sets)

	// Another user has no active workout.
	_, err = service.Current(ctx, "user-2")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
}

/*
TestService_Complete_RequiresActiveWorkoutWithSets walks the completion
rules: no active workout, an empty workout, then a proper completion.
*/
func TestService_Complete_RequiresActiveWorkoutWithSets(t *testing.T) {
	service, store, catalogEntry := fixture("user-1")
	ctx := context.Background()

	// Nothing to complete yet.
	err := service.Complete(ctx, "user-1")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "No active workout to complete", ae.Message)

	// An empty workout cannot be completed.
	started, err := service.Start(ctx, "user-1")
	require.NoError(t, err)

	err = service.Complete(ctx, "user-1")
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusUnprocessableEntity, ae.HTTPStatus)
	assert.Equal(t, "Cannot complete a workout with no sets", ae.Message)

	// With a set, completion succeeds and the workout leaves the active slot.
	_, err = service.AddSet(ctx, "user-1", catalogEntry.ID, 5, 185)
	require.NoError(t, err)

	require.NoError(t, service.Complete(ctx, "user-1"))
	assert.NotNil(t, store.workouts[started.ID].CompletedAt)

	_, err = service.Current(ctx, "user-1")
	require.Error(t, err)
}

/*
TestService_AddSet verifies set logging: hydrated movement on success, and
the guard errors for a missing workout or a foreign movement.
*/
func TestService_AddSet(t *testing.T) {
	service, _, catalogEntry := fixture("user-1")
	ctx := context.Background()

	// No active workout yet.
	_, err := service.AddSet(ctx, "user-1", catalogEntry.ID, 5, 185)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
	assert.Equal(t, "No active workout", ae.Message)

	_, err = service.Start(ctx, "user-1")
	require.NoError(t, err)

	set, err := service.AddSet(ctx, "user-1", catalogEntry.ID, 5, 185)
	require.NoError(t, err)
	assert.Equal(t, 5, set.Reps)
	assert.Equal(t, 185.0, set.Weight)
	require.NotNil(t, set.Movement)
	assert.Equal(t, "Bench Press", set.Movement.Name)

	// A movement from another user's catalog reads as missing.
	_, err = service.Start(ctx, "user-2")
	require.NoError(t, err)
	_, err = service.AddSet(ctx, "user-2", catalogEntry.ID, 5, 185)
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
}

/*
TestService_DeleteSet verifies that sets are only removable while the parent
workout is active and owned by the caller.
*/
func TestService_DeleteSet(t *testing.T) {
	service, _, catalogEntry := fixture("user-1")
	ctx := context.Background()

	_, err := service.Start(ctx, "user-1")
	require.NoError(t, err)
	set, err := service.AddSet(ctx, "user-1", catalogEntry.ID, 8, 135)
	require.NoError(t, err)

	// Foreign caller cannot touch it.
	err = service.DeleteSet(ctx, "user-2", set.ID)
	require.NotNil(t, apperr.As(err))

	require.NoError(t, service.DeleteSet(ctx, "user-1", set.ID))

	// Re-log and freeze the workout: the set becomes immutable.
	set, err = service.AddSet(ctx, "user-1", catalogEntry.ID, 8, 135)
	require.NoError(t, err)
	require.NoError(t, service.Complete(ctx, "user-1"))

	err = service.DeleteSet(ctx, "user-1", set.ID)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
}

/*
TestService_History verifies ordering, pagination metadata, and bulk delete.
*/
func TestService_History(t *testing.T) {
	service, store, catalogEntry := fixture("user-1")
	ctx := context.Background()

	// Complete three workouts at distinct instants.
	completedIDs := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		started, err := service.Start(ctx, "user-1")
		require.NoError(t, err)
		_, err = service.AddSet(ctx, "user-1", catalogEntry.ID, 5, 185)
		require.NoError(t, err)

		service.now = func() time.Time { return time.Date(2026, 3, 1+i, 18, 0, 0, 0, time.UTC) }
		require.NoError(t, service.Complete(ctx, "user-1"))
		completedIDs = append(completedIDs, started.ID)
	}

	page, meta, err := service.History(ctx, "user-1", pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)

	// Newest completion first.
	assert.Equal(t, completedIDs[2], page[0].ID)
	assert.Equal(t, completedIDs[1], page[1].ID)
	require.Len(t, page[0].Sets, 1)

	// Bulk delete removes workouts and their sets; foreign IDs are ignored.
	require.NoError(t, service.Delete(ctx, "user-1", []string{completedIDs[0], "unknown-id"}))
	_, ok := store.workouts[completedIDs[0]]
	assert.False(t, ok)

	_, meta, err = service.History(ctx, "user-1", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, meta.Total)
}
