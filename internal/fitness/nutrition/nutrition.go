// Copyright (c) 2026 IronLog. All rights reserved.

/*
Package nutrition implements food logging and daily macro totals.

Entries record what was eaten per meal; the daily view aggregates calories
and macros for one calendar day. Daily totals are served through a Redis
cache that entry writes invalidate.
*/
package nutrition

import (
	"context"
	"time"
)

// Valid meal types.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// MealTypes lists the accepted meal_type values in menu order.
var MealTypes = []string{MealBreakfast, MealLunch, MealDinner, MealSnack}

// FoodEntry is one logged food item.
type FoodEntry struct {
	ID       string `json:"id"`
	UserID   string `json:"-"`
	MealType string `json:"meal_type"`
	Calories int    `json:"calories"`
	// Macros in grams.
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs"`
	Fat      float64   `json:"fat"`
	Note     string    `json:"note,omitempty"`
	LoggedAt time.Time `json:"logged_at"`
}

// Totals aggregates one day's intake.
type Totals struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// DailySummary is the daily view: the day's entries plus their totals.
type DailySummary struct {
	Date    string      `json:"date"`
	Entries []FoodEntry `json:"entries"`
	Totals  Totals      `json:"totals"`
}

// # Repository Contracts

// Repository defines the persistence operations for food entries.
type Repository interface {
	// Create persists a new entry.
	Create(ctx context.Context, entity *FoodEntry) error

	// ListByUser returns the user's entries, newest first.
	ListByUser(ctx context.Context, userID string) ([]FoodEntry, error)

	// FindByID retrieves an entry owned by the user.
	FindByID(ctx context.Context, userID, entryID string) (*FoodEntry, error)

	// ListByDay returns the entries logged within [from, to), oldest first.
	ListByDay(ctx context.Context, userID string, from, to time.Time) ([]FoodEntry, error)

	// Delete removes an entry owned by the user.
	Delete(ctx context.Context, userID, entryID string) error
}

// TotalsCache is the volatile store for computed daily summaries. A cache
// miss is reported as (nil, nil), not an error.
type TotalsCache interface {
	Get(ctx context.Context, userID, date string) (*DailySummary, error)
	Set(ctx context.Context, userID, date string, summary *DailySummary) error
	Invalidate(ctx context.Context, userID, date string) error
}

// Field identifiers for validation errors.
const (
	FieldMealType = "meal_type"
	FieldCalories = "calories"
	FieldProtein  = "protein"
	FieldCarbs    = "carbs"
	FieldFat      = "fat"
	FieldNote     = "note"
	FieldDate     = "date"
)
