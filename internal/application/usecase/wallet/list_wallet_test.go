// Package wallet contains wallet-related use cases.
package wallet

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/domain/entity"
)

func TestListWallet_JoinsCatalogue(t *testing.T) {
	userID := uuid.New()
	walletRepo := &fakeWalletRepo{cards: []*entity.WalletCard{
		entity.NewWalletCard(userID, 1, 1),
		entity.NewWalletCard(userID, 2, 15),
		entity.NewWalletCard(uuid.New(), 1, 1), // someone else's wallet
	}}
	catRepo := &fakeCatalogueRepo{cards: []*entity.CatalogueCard{
		catalogueCard(1, "Live Fresh Card"),
		catalogueCard(2, "Altitude Card"),
	}}
	uc := NewListWalletUseCase(walletRepo, catRepo)

	out, err := uc.Execute(context.Background(), ListWalletInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.WalletCards) != 2 {
		t.Fatalf("expected 2 wallet entries, got %d", len(out.WalletCards))
	}
	for _, wc := range out.WalletCards {
		if wc.Card == nil {
			t.Fatalf("expected catalogue details on entry %s", wc.ID)
		}
	}
	if out.WalletCards[0].Card.Name != "Live Fresh Card" {
		t.Errorf("expected Live Fresh Card first, got %s", out.WalletCards[0].Card.Name)
	}
	if out.WalletCards[1].Card.Name != "Altitude Card" {
		t.Errorf("expected Altitude Card second, got %s", out.WalletCards[1].Card.Name)
	}
	if out.WalletCards[1].RefreshDayOfMonth != 15 {
		t.Errorf("expected refresh day 15, got %d", out.WalletCards[1].RefreshDayOfMonth)
	}
}

func TestListWallet_MissingCatalogueEntryListedBare(t *testing.T) {
	userID := uuid.New()
	walletRepo := &fakeWalletRepo{cards: []*entity.WalletCard{
		entity.NewWalletCard(userID, 99, 1),
	}}
	uc := NewListWalletUseCase(walletRepo, &fakeCatalogueRepo{})

	out, err := uc.Execute(context.Background(), ListWalletInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.WalletCards) != 1 {
		t.Fatalf("expected the orphaned entry to be listed, got %d entries", len(out.WalletCards))
	}
	if out.WalletCards[0].Card != nil {
		t.Error("expected no catalogue details for a vanished card")
	}
}

func TestListWallet_EmptyWallet(t *testing.T) {
	uc := NewListWalletUseCase(&fakeWalletRepo{}, &fakeCatalogueRepo{})

	out, err := uc.Execute(context.Background(), ListWalletInput{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.WalletCards) != 0 {
		t.Errorf("expected an empty wallet, got %d entries", len(out.WalletCards))
	}
}
