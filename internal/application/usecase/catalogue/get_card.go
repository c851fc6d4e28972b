// Package catalogue contains card catalogue use cases.
package catalogue

import (
	"context"
	"errors"
	"fmt"

	"github.com/cardwise/backend/internal/application/adapter"
	domainerror "github.com/cardwise/backend/internal/domain/error"
)

// GetCardInput represents the input for fetching a single catalogue card.
type GetCardInput struct {
	CardID int64
}

// GetCardOutput represents the output of fetching a catalogue card.
type GetCardOutput struct {
	Card *CardOutput
}

// GetCardUseCase handles single card retrieval logic.
type GetCardUseCase struct {
	catalogueRepo adapter.CatalogueRepository
}

// NewGetCardUseCase creates a new GetCardUseCase instance.
func NewGetCardUseCase(catalogueRepo adapter.CatalogueRepository) *GetCardUseCase {
	return &GetCardUseCase{
		catalogueRepo: catalogueRepo,
	}
}

// Execute performs the catalogue card retrieval.
func (uc *GetCardUseCase) Execute(ctx context.Context, input GetCardInput) (*GetCardOutput, error) {
	card, err := uc.catalogueRepo.FindByID(ctx, input.CardID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCardNotFound) {
			return nil, domainerror.NewCardError(
				domainerror.ErrCodeCardNotFound,
				"card not found",
				domainerror.ErrCardNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}

	return &GetCardOutput{
		Card: newCardOutput(card),
	}, nil
}
