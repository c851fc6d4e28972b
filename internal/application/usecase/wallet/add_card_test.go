// Package wallet contains wallet-related use cases.
package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
)

func TestAddCard_AddsToWallet(t *testing.T) {
	walletRepo := &fakeWalletRepo{}
	catRepo := &fakeCatalogueRepo{cards: []*entity.CatalogueCard{catalogueCard(1, "Live Fresh Card")}}
	uc := NewAddCardUseCase(walletRepo, catRepo)
	userID := uuid.New()

	out, err := uc.Execute(context.Background(), AddCardInput{
		UserID:          userID,
		CatalogueCardID: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wc := out.WalletCard
	if wc.Status != entity.WalletCardStatusActive {
		t.Errorf("expected Active, got %s", wc.Status)
	}
	if wc.RefreshDayOfMonth != 1 {
		t.Errorf("expected default refresh day 1, got %d", wc.RefreshDayOfMonth)
	}
	if wc.Card == nil || wc.Card.Name != "Live Fresh Card" {
		t.Error("expected the catalogue summary to be attached")
	}
	if len(walletRepo.created) != 1 {
		t.Fatalf("expected one wallet row created, got %d", len(walletRepo.created))
	}
	if walletRepo.created[0].UserID != userID {
		t.Error("expected the row to belong to the requesting user")
	}
}

func TestAddCard_CustomRefreshDay(t *testing.T) {
	walletRepo := &fakeWalletRepo{}
	catRepo := &fakeCatalogueRepo{cards: []*entity.CatalogueCard{catalogueCard(1, "Live Fresh Card")}}
	uc := NewAddCardUseCase(walletRepo, catRepo)

	out, err := uc.Execute(context.Background(), AddCardInput{
		UserID:            uuid.New(),
		CatalogueCardID:   1,
		RefreshDayOfMonth: intPtr(15),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.WalletCard.RefreshDayOfMonth != 15 {
		t.Errorf("expected refresh day 15, got %d", out.WalletCard.RefreshDayOfMonth)
	}
}

func TestAddCard_RejectsBadRefreshDay(t *testing.T) {
	walletRepo := &fakeWalletRepo{}
	catRepo := &fakeCatalogueRepo{cards: []*entity.CatalogueCard{catalogueCard(1, "Live Fresh Card")}}
	uc := NewAddCardUseCase(walletRepo, catRepo)

	for _, day := range []int{0, 29, -3} {
		_, err := uc.Execute(context.Background(), AddCardInput{
			UserID:            uuid.New(),
			CatalogueCardID:   1,
			RefreshDayOfMonth: intPtr(day),
		})
		if code := walletCode(t, err); code != domainerror.ErrCodeInvalidRefreshDay {
			t.Errorf("day %d: expected %s, got %s", day, domainerror.ErrCodeInvalidRefreshDay, code)
		}
	}
	if len(walletRepo.created) != 0 {
		t.Errorf("expected nothing created, got %d rows", len(walletRepo.created))
	}
}

func TestAddCard_CardNotFound(t *testing.T) {
	uc := NewAddCardUseCase(&fakeWalletRepo{}, &fakeCatalogueRepo{})

	_, err := uc.Execute(context.Background(), AddCardInput{
		UserID:          uuid.New(),
		CatalogueCardID: 404,
	})

	var cardErr *domainerror.CardError
	if !errors.As(err, &cardErr) {
		t.Fatalf("expected a card error, got %v", err)
	}
	if cardErr.Code != domainerror.ErrCodeCardNotFound {
		t.Errorf("expected %s, got %s", domainerror.ErrCodeCardNotFound, cardErr.Code)
	}
}

func TestAddCard_RejectsWithdrawnCard(t *testing.T) {
	withdrawn := catalogueCard(1, "Legacy Card")
	withdrawn.Status = entity.CardStatusInvalid
	uc := NewAddCardUseCase(&fakeWalletRepo{}, &fakeCatalogueRepo{cards: []*entity.CatalogueCard{withdrawn}})

	_, err := uc.Execute(context.Background(), AddCardInput{
		UserID:          uuid.New(),
		CatalogueCardID: 1,
	})
	if code := walletCode(t, err); code != domainerror.ErrCodeCardNotUsable {
		t.Errorf("expected %s, got %s", domainerror.ErrCodeCardNotUsable, code)
	}
}

func TestAddCard_RejectsDuplicate(t *testing.T) {
	userID := uuid.New()
	walletRepo := &fakeWalletRepo{cards: []*entity.WalletCard{entity.NewWalletCard(userID, 1, 1)}}
	catRepo := &fakeCatalogueRepo{cards: []*entity.CatalogueCard{catalogueCard(1, "Live Fresh Card")}}
	uc := NewAddCardUseCase(walletRepo, catRepo)

	_, err := uc.Execute(context.Background(), AddCardInput{
		UserID:          userID,
		CatalogueCardID: 1,
	})
	if code := walletCode(t, err); code != domainerror.ErrCodeCardAlreadyInWallet {
		t.Errorf("expected %s, got %s", domainerror.ErrCodeCardAlreadyInWallet, code)
	}
	if len(walletRepo.created) != 0 {
		t.Errorf("expected no duplicate row, got %d created", len(walletRepo.created))
	}

	// The same card in another user's wallet is not a duplicate.
	out, err := uc.Execute(context.Background(), AddCardInput{
		UserID:          uuid.New(),
		CatalogueCardID: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error for a different user: %v", err)
	}
	if out.WalletCard == nil {
		t.Error("expected the card to be added for the other user")
	}
}

func TestAddCard_ReactivatesRemovedEntry(t *testing.T) {
	userID := uuid.New()
	removed := entity.NewWalletCard(userID, 1, 5)
	removed.Status = entity.WalletCardStatusExpired

	walletRepo := &fakeWalletRepo{cards: []*entity.WalletCard{removed}}
	catRepo := &fakeCatalogueRepo{cards: []*entity.CatalogueCard{catalogueCard(1, "Live Fresh Card")}}
	uc := NewAddCardUseCase(walletRepo, catRepo)

	out, err := uc.Execute(context.Background(), AddCardInput{
		UserID:            userID,
		CatalogueCardID:   1,
		RefreshDayOfMonth: intPtr(10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.WalletCard.ID != removed.ID {
		t.Error("expected the existing row to be reactivated, not a new one")
	}
	if out.WalletCard.Status != entity.WalletCardStatusActive {
		t.Errorf("expected Active after reactivation, got %s", out.WalletCard.Status)
	}
	if out.WalletCard.RefreshDayOfMonth != 10 {
		t.Errorf("expected the refresh day to be replaced, got %d", out.WalletCard.RefreshDayOfMonth)
	}
	if len(walletRepo.created) != 0 {
		t.Errorf("expected no new row, got %d created", len(walletRepo.created))
	}
	if len(walletRepo.updated) != 1 {
		t.Errorf("expected one update, got %d", len(walletRepo.updated))
	}
}
