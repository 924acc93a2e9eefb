// Copyright (c) 2026 IronLog. All rights reserved.

package nutrition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ironlog-app/ironlog/internal/platform/apperr"
	"github.com/ironlog-app/ironlog/internal/platform/dberr"
	"github.com/ironlog-app/ironlog/pkg/pointer"
	"github.com/ironlog-app/ironlog/pkg/uuid"
)

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

// # Service Layer

// Service orchestrates food logging and the cached daily view.
//
// # Caching
//
// Daily summaries follow cache-aside: reads try Redis first, recompute from
// PostgreSQL on a miss, and writes invalidate the affected day. Cache
// failures degrade to direct reads and are logged, never surfaced.
type Service struct {
	entries Repository
	cache   TotalsCache
	logger  *slog.Logger
	now     func() time.Time
}

// NewService constructs a new [Service].
func NewService(entries Repository, cache TotalsCache, logger *slog.Logger) *Service {
	return &Service{
		entries: entries,
		cache:   cache,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateInput carries a validated food entry to log.
type CreateInput struct {
	MealType string
	Calories int
	Protein  float64
	Carbs    float64
	Fat      float64
	Note     string
	// LoggedAt defaults to now when nil.
	LoggedAt *time.Time
}

/*
Create logs a food entry and invalidates the affected day's summary.

Returns:
  - *FoodEntry: The created entry
  - error: Storage failures
*/
func (service *Service) Create(ctx context.Context, userID string, input CreateInput) (*FoodEntry, error) {
	entity := &FoodEntry{
		ID:       uuid.New(),
		UserID:   userID,
		MealType: input.MealType,
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fat:      input.Fat,
		Note:     input.Note,
		LoggedAt: pointer.Fallback(input.LoggedAt, service.now()),
	}

	if err := service.entries.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("nutrition_service_create_failed: %w", err)
	}

	service.invalidateDay(ctx, userID, entity.LoggedAt)

	return entity, nil
}

// List returns the user's entries, newest first.
func (service *Service) List(ctx context.Context, userID string) ([]FoodEntry, error) {
	return service.entries.ListByUser(ctx, userID)
}

/*
Delete removes an entry and invalidates its day's summary.

Returns:
  - error: apperr.NotFound for unknown or foreign entries
*/
func (service *Service) Delete(ctx context.Context, userID, entryID string) error {
	entity, err := service.entries.FindByID(ctx, userID, entryID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("Entry")
		}
		return fmt.Errorf("nutrition_service_delete_lookup_failed: %w", err)
	}

	if err := service.entries.Delete(ctx, userID, entryID); err != nil {
		return fmt.Errorf("nutrition_service_delete_failed: %w", err)
	}

	service.invalidateDay(ctx, userID, entity.LoggedAt)

	return nil
}

/*
Daily returns one calendar day's entries and their aggregated totals.

Description: The day runs from midnight to midnight UTC. Results come from
the cache when present, otherwise from PostgreSQL with a cache backfill.

Parameters:
  - ctx: context.Context
  - userID: string
  - date: string in [DateLayout] form

Returns:
  - *DailySummary: Entries plus totals
  - error: apperr.ValidationError for a malformed date, or storage failures
*/
func (service *Service) Daily(ctx context.Context, userID, date string) (*DailySummary, error) {
	day, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return nil, apperr.ValidationError("Invalid date", apperr.FieldError{
			Field:   FieldDate,
			Message: "Must be a calendar date in YYYY-MM-DD form",
		})
	}

	if cached, err := service.cache.Get(ctx, userID, date); err != nil {
		service.logger.Warn("nutrition_cache_read_failed", slog.String("error", err.Error()))
	} else if cached != nil {
		return cached, nil
	}

	entries, err := service.entries.ListByDay(ctx, userID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("nutrition_service_daily_failed: %w", err)
	}

	summary := &DailySummary{
		Date:    date,
		Entries: entries,
		Totals:  sumTotals(entries),
	}

	if err := service.cache.Set(ctx, userID, date, summary); err != nil {
		service.logger.Warn("nutrition_cache_write_failed", slog.String("error", err.Error()))
	}

	return summary, nil
}

// invalidateDay drops the cached summary for the day an entry landed on.
func (service *Service) invalidateDay(ctx context.Context, userID string, loggedAt time.Time) {
	date := loggedAt.UTC().Format(DateLayout)
	if err := service.cache.Invalidate(ctx, userID, date); err != nil {
		service.logger.Warn("nutrition_cache_invalidate_failed",
			slog.String("date", date),
			slog.String("error", err.Error()),
		)
	}
}

// sumTotals aggregates calories and macros across entries.
func sumTotals(entries []FoodEntry) Totals {
	var totals Totals
	for _, entity := range entries {
		totals.Calories += entity.Calories
		totals.Protein += entity.Protein
		totals.Carbs += entity.Carbs
		totals.Fat += entity.Fat
	}
	return totals
}
