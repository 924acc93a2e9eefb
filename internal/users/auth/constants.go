// Copyright (c) 2026 IronLog. All rights reserved.

package auth

import "time"

// # Authentication Policy
//
// The lockout constants are fixed policy, not runtime configuration.

const (
	// SessionDuration is how long a session cookie (and its embedded token)
	// remains valid. Long-lived for a personal tracking app.
	SessionDuration = 7 * 24 * time.Hour

	// MaxLoginAttempts is the number of consecutive failures that triggers a
	// lockout. The 5th failure locks.
	MaxLoginAttempts = 5

	// LockoutDuration is how long further sign-in attempts for a locked email
	// are denied.
	LockoutDuration = 15 * time.Minute

	// DefaultWeightUnit is the weight unit assigned to new accounts.
	DefaultWeightUnit = "lbs"
)
