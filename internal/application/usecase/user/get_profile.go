// Package user contains profile management use cases.
package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
)

// GetProfileInput represents the input for fetching the caller's profile.
type GetProfileInput struct {
	UserID uuid.UUID
}

// GetProfileOutput represents the output of fetching a profile.
type GetProfileOutput struct {
	User *entity.User
}

// GetProfileUseCase handles profile retrieval logic.
type GetProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(userRepo adapter.UserRepository) *GetProfileUseCase {
	return &GetProfileUseCase{
		userRepo: userRepo,
	}
}

// Execute performs the profile retrieval.
func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUserNotFound,
				"user not found",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, err
	}

	return &GetProfileOutput{User: user}, nil
}
