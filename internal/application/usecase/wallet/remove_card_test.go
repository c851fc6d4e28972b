// Package wallet contains wallet-related use cases.
package wallet

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
)

func TestRemoveCard_ExpiresTheEntry(t *testing.T) {
	userID := uuid.New()
	wc := entity.NewWalletCard(userID, 1, 1)
	walletRepo := &fakeWalletRepo{cards: []*entity.WalletCard{wc}}
	uc := NewRemoveCardUseCase(walletRepo)

	out, err := uc.Execute(context.Background(), RemoveCardInput{
		UserID:       userID,
		WalletCardID: wc.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Success {
		t.Error("expected success")
	}
	// Removal keeps the row so transaction history stays referenced.
	if wc.Status != entity.WalletCardStatusExpired {
		t.Errorf("expected Expired, got %s", wc.Status)
	}
	if wc.ExpiresAt == nil {
		t.Error("expected the expiry timestamp to be set")
	}
	if len(walletRepo.updated) != 1 {
		t.Errorf("expected one update, got %d", len(walletRepo.updated))
	}
}

func TestRemoveCard_NotFound(t *testing.T) {
	uc := NewRemoveCardUseCase(&fakeWalletRepo{})

	_, err := uc.Execute(context.Background(), RemoveCardInput{
		UserID:       uuid.New(),
		WalletCardID: uuid.New(),
	})
	if code := walletCode(t, err); code != domainerror.ErrCodeWalletCardNotFound {
		t.Errorf("expected %s, got %s", domainerror.ErrCodeWalletCardNotFound, code)
	}
}

func TestRemoveCard_WrongUser(t *testing.T) {
	owner := uuid.New()
	wc := entity.NewWalletCard(owner, 1, 1)
	walletRepo := &fakeWalletRepo{cards: []*entity.WalletCard{wc}}
	uc := NewRemoveCardUseCase(walletRepo)

	_, err := uc.Execute(context.Background(), RemoveCardInput{
		UserID:       uuid.New(),
		WalletCardID: wc.ID,
	})
	if code := walletCode(t, err); code != domainerror.ErrCodeWalletNotAuthorized {
		t.Errorf("expected %s, got %s", domainerror.ErrCodeWalletNotAuthorized, code)
	}
	if wc.Status != entity.WalletCardStatusActive {
		t.Errorf("expected the entry untouched, got %s", wc.Status)
	}
}
