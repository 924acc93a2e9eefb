// Copyright (c) 2026 IronLog. All rights reserved.

package weight

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironlog-app/ironlog/internal/platform/apperr"
	"github.com/ironlog-app/ironlog/internal/platform/dberr"
)

// fakeStore is an in-memory [Repository].
type fakeStore struct {
	entries map[string]*Entry
}

func (store *fakeStore) Create(_ context.Context, entity *Entry) error {
	copied := *entity
	store.entries[entity.ID] = &copied
	return nil
}

func (store *fakeStore) ListByUser(_ context.Context, userID string) ([]Entry, error) {
	result := make([]Entry, 0)
	for _, entity := range store.entries {
		if entity.UserID == userID {
			result = append(result, *entity)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RecordedAt.After(result[j].RecordedAt) })
	return result, nil
}

func (store *fakeStore) Delete(_ context.Context, userID, entryID string) error {
	entity, ok := store.entries[entryID]
	if !ok || entity.UserID != userID {
		return dberr.ErrNotFound
	}
	delete(store.entries, entryID)
	return nil
}

// fakePreferences is an in-memory [PreferenceStore].
type fakePreferences struct {
	units map[string]string
}

func (store *fakePreferences) GetUnit(_ context.Context, userID string) (string, error) {
	if unit, ok := store.units[userID]; ok {
		return unit, nil
	}
	return UnitLbs, nil
}

func (store *fakePreferences) SetUnit(_ context.Context, userID, unit string) error {
	store.units[userID] = unit
	return nil
}

func newTestService() (*Service, *fakeStore, *fakePreferences) {
	store := &fakeStore{entries: make(map[string]*Entry)}
	preferences := &fakePreferences{units: make(map[string]string)}
	return NewService(store, preferences), store, preferences
}

/*
TestService_Record verifies that entries freeze the preferred unit at
recording time and support backdating.
*/
func TestService_Record(t *testing.T) {
	service, _, preferences := newTestService()
	ctx := context.Background()

	// Default preference applies when nothing was ever set.
	entry, err := service.Record(ctx, "user-1", 180.5, nil, "morning")
	require.NoError(t, err)
	assert.Equal(t, UnitLbs, entry.Unit)
	assert.Equal(t, 180.5, entry.Weight)
	assert.False(t, entry.RecordedAt.IsZero())

	// Changing the preference affects new entries only.
	require.NoError(t, preferences.SetUnit(ctx, "user-1", UnitKg))

	backdate := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	backdated, err := service.Record(ctx, "user-1", 82.0, &backdate, "")
	require.NoError(t, err)
	assert.Equal(t, UnitKg, backdated.Unit)
	assert.Equal(t, backdate, backdated.RecordedAt)

	assert.Equal(t, UnitLbs, entry.Unit, "existing entries keep their recorded unit")
}

/*
TestService_HistoryOrdering verifies newest-first ordering scoped to the
owner.
*/
func TestService_HistoryOrdering(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	older := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	_, err := service.Record(ctx, "user-1", 181, &older, "")
	require.NoError(t, err)
	_, err = service.Record(ctx, "user-1", 180, &newer, "")
	require.NoError(t, err)
	_, err = service.Record(ctx, "user-2", 150, &newer, "")
	require.NoError(t, err)

	history, err := service.History(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 180.0, history[0].Weight)
	assert.Equal(t, 181.0, history[1].Weight)
}

/*
TestService_Delete verifies owner scoping of entry deletion.
*/
func TestService_Delete(t *testing.T) {
	service, store, _ := newTestService()
	ctx := context.Background()

	entry, err := service.Record(ctx, "user-1", 180, nil, "")
	require.NoError(t, err)

	err = service.Delete(ctx, "user-2", entry.ID)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)

	require.NoError(t, service.Delete(ctx, "user-1", entry.ID))
	assert.Empty(t, store.entries)
}
