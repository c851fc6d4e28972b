// Package user contains profile management use cases.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
)

// UpdateProfileInput represents the input for profile update. Nil fields
// are left unchanged.
type UpdateProfileInput struct {
	UserID           uuid.UUID
	Name             *string
	RewardPreference *string
	MonthlyDigest    *bool
}

// UpdateProfileOutput represents the output of profile update.
type UpdateProfileOutput struct {
	User *entity.User
}

// UpdateProfileUseCase handles profile update logic. The reward preference
// set here decides the unit for BOTH-type cards and filters ranking; the
// digest flag opts the user in or out of the monthly reward email.
type UpdateProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(userRepo adapter.UserRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
	}
}

// Execute performs the profile update.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	// Validate name if provided
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || len(name) > 100 {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeMissingFields,
				"name must be between 1 and 100 characters",
				nil,
			)
		}
		input.Name = &name
	}

	// Validate the reward preference if provided
	if input.RewardPreference != nil && !entity.ValidRewardPreference(*input.RewardPreference) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidPreference,
			"reward preference must be Miles, Cashback or No preference",
			domainerror.ErrInvalidPreference,
		)
	}

	// Find the existing user
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUserNotFound,
				"user not found",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Apply the changes
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.RewardPreference != nil {
		user.RewardPreference = entity.RewardPreference(*input.RewardPreference)
	}
	if input.MonthlyDigest != nil {
		user.MonthlyDigest = *input.MonthlyDigest
	}
	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &UpdateProfileOutput{User: user}, nil
}
