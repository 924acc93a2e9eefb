// Copyright (c) 2026 IronLog. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ironlog-app/ironlog/internal/users/auth"
)

// # Service Layer

// Service orchestrates profile reads and updates for the signed-in user.
type Service struct {
	accounts Repository
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(accounts Repository, logger *slog.Logger) *Service {
	return &Service{accounts: accounts, logger: logger}
}

/*
GetProfile retrieves the full private profile of a user.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated profile
  - error: Not found or storage failures
*/
func (service *Service) GetProfile(ctx context.Context, userID string) (*auth.User, error) {
	user, err := service.accounts.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

/*
UpdateName changes the user's display name.

Parameters:
  - ctx: context.Context
  - userID: string
  - name: string (already shape-validated by the HTTP layer)

Returns:
  - *auth.User: The updated profile
  - error: Not found or storage failures
*/
func (service *Service) UpdateName(ctx context.Context, userID, name string) (*auth.User, error) {
	user, err := service.accounts.UpdateName(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_name_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}
