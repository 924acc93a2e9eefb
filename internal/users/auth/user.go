// Copyright (c) 2026 IronLog. All rights reserved.

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, LoginAttempt) and the logic for
authentication: sign-up, sign-in with brute-force lockout, and stateless
session cookies.

# Architecture

  - Service: Orchestrates sign-up and sign-in (enumeration-resistant).
  - LoginLimiter: Per-email failed-attempt counter with temporary lockout.
  - SessionManager: Bridges the token codec to the HTTP session cookie.
  - Repository: Abstracted interfaces for the PostgreSQL stores.

This layer is the "Truth" of the system. Entities defined here encapsulate
all business rules related to user identity.
*/
package auth

import (
	"strings"
	"time"
)

// # Domain Entities

// User represents a registered member of IronLog.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	WeightUnit   string    `json:"weight_unit"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginAttempt tracks consecutive failed sign-in attempts for one email.
//
// The record exists only between the first failure and the next successful
// authentication, which deletes it. Rate limiting is strictly per-identity:
// records for unrelated emails are never read or written.
type LoginAttempt struct {
	// Email is the normalized (lower-cased) identity key.
	Email string `json:"email"`
	// Attempts is the count of consecutive failures since the last reset.
	Attempts int `json:"attempts"`
	// LockedAt is set once per lockout episode when Attempts crosses the
	// threshold; nil while accumulating.
	LockedAt  *time.Time `json:"locked_at,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NormalizeEmail case-folds and trims an email so the same mailbox always
// maps to the same credential and rate-limit records.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail    = "email"
	FieldName     = "name"
	FieldPassword = "password"
	FieldMessage  = "message"
)
