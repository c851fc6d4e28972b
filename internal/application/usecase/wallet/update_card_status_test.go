// Package wallet contains wallet-related use cases.
package wallet

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
)

func TestUpdateCardStatus_Transitions(t *testing.T) {
	userID := uuid.New()
	wc := entity.NewWalletCard(userID, 1, 1)
	walletRepo := &fakeWalletRepo{cards: []*entity.WalletCard{wc}}
	catRepo := &fakeCatalogueRepo{cards: []*entity.CatalogueCard{catalogueCard(1, "Live Fresh Card")}}
	uc := NewUpdateCardStatusUseCase(walletRepo, catRepo)

	out, err := uc.Execute(context.Background(), UpdateCardStatusInput{
		UserID:       userID,
		WalletCardID: wc.ID,
		Status:       "Suspended",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.WalletCard.Status != entity.WalletCardStatusSuspended {
		t.Errorf("expected Suspended, got %s", out.WalletCard.Status)
	}
	if out.WalletCard.Card == nil || out.WalletCard.Card.Name != "Live Fresh Card" {
		t.Error("expected the catalogue summary to be attached")
	}
	if len(walletRepo.updated) != 1 {
		t.Errorf("expected one update, got %d", len(walletRepo.updated))
	}
}

func TestUpdateCardStatus_RejectsUnknownStatus(t *testing.T) {
	userID := uuid.New()
	wc := entity.NewWalletCard(userID, 1, 1)
	walletRepo := &fakeWalletRepo{cards: []*entity.WalletCard{wc}}
	uc := NewUpdateCardStatusUseCase(walletRepo, &fakeCatalogueRepo{})

	_, err := uc.Execute(context.Background(), UpdateCardStatusInput{
		UserID:       userID,
		WalletCardID: wc.ID,
		Status:       "Frozen",
	})
	if code := walletCode(t, err); code != domainerror.ErrCodeInvalidWalletStatus {
		t.Errorf("expected %s, got %s", domainerror.ErrCodeInvalidWalletStatus, code)
	}
	if wc.Status != entity.WalletCardStatusActive {
		t.Errorf("expected the entry untouched, got %s", wc.Status)
	}
}

func TestUpdateCardStatus_NotFound(t *testing.T) {
	uc := NewUpdateCardStatusUseCase(&fakeWalletRepo{}, &fakeCatalogueRepo{})

	_, err := uc.Execute(context.Background(), UpdateCardStatusInput{
		UserID:       uuid.New(),
		WalletCardID: uuid.New(),
		Status:       "Expired",
	})
	if code := walletCode(t, err); code != domainerror.ErrCodeWalletCardNotFound {
		t.Errorf("expected %s, got %s", domainerror.ErrCodeWalletCardNotFound, code)
	}
}

func TestUpdateCardStatus_WrongUser(t *testing.T) {
	wc := entity.NewWalletCard(uuid.New(), 1, 1)
	walletRepo := &fakeWalletRepo{cards: []*entity.WalletCard{wc}}
	uc := NewUpdateCardStatusUseCase(walletRepo, &fakeCatalogueRepo{})

	_, err := uc.Execute(context.Background(), UpdateCardStatusInput{
		UserID:       uuid.New(),
		WalletCardID: wc.ID,
		Status:       "Suspended",
	})
	if code := walletCode(t, err); code != domainerror.ErrCodeWalletNotAuthorized {
		t.Errorf("expected %s, got %s", domainerror.ErrCodeWalletNotAuthorized, code)
	}
}

func TestUpdateCardStatus_SurvivesCatalogueGap(t *testing.T) {
	userID := uuid.New()
	wc := entity.NewWalletCard(userID, 99, 1)
	walletRepo := &fakeWalletRepo{cards: []*entity.WalletCard{wc}}
	uc := NewUpdateCardStatusUseCase(walletRepo, &fakeCatalogueRepo{})

	out, err := uc.Execute(context.Background(), UpdateCardStatusInput{
		UserID:       userID,
		WalletCardID: wc.ID,
		Status:       "Suspended",
	})
	if err != nil {
		t.Fatalf("expected the change to land despite the missing catalogue entry, got %v", err)
	}
	if out.WalletCard.Status != entity.WalletCardStatusSuspended {
		t.Errorf("expected Suspended, got %s", out.WalletCard.Status)
	}
	if out.WalletCard.Card != nil {
		t.Error("expected no catalogue details for a vanished card")
	}
}
