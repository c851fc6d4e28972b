// Package wallet contains wallet-related use cases.
package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
)

// fakeWalletRepo holds wallet rows in a slice and records writes.
type fakeWalletRepo struct {
	cards   []*entity.WalletCard
	created []*entity.WalletCard
	updated []*entity.WalletCard
}

func (f *fakeWalletRepo) Create(ctx context.Context, card *entity.WalletCard) error {
	f.cards = append(f.cards, card)
	f.created = append(f.created, card)
	return nil
}

func (f *fakeWalletRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.WalletCard, error) {
	for _, c := range f.cards {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domainerror.ErrWalletCardNotFound
}

func (f *fakeWalletRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.WalletCard, error) {
	out := make([]*entity.WalletCard, 0, len(f.cards))
	for _, c := range f.cards {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeWalletRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.WalletCard, error) {
	out := make([]*entity.WalletCard, 0, len(f.cards))
	for _, c := range f.cards {
		if c.UserID == userID && c.Status == entity.WalletCardStatusActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeWalletRepo) FindByUserAndCard(ctx context.Context, userID uuid.UUID, catalogueCardID int64) (*entity.WalletCard, error) {
	for _, c := range f.cards {
		if c.UserID == userID && c.CatalogueCardID == catalogueCardID {
			return c, nil
		}
	}
	return nil, domainerror.ErrWalletCardNotFound
}

func (f *fakeWalletRepo) Update(ctx context.Context, card *entity.WalletCard) error {
	f.updated = append(f.updated, card)
	return nil
}

func (f *fakeWalletRepo) ExistsByUserAndCard(ctx context.Context, userID uuid.UUID, catalogueCardID int64) (bool, error) {
	_, err := f.FindByUserAndCard(ctx, userID, catalogueCardID)
	return err == nil, nil
}

func (f *fakeWalletRepo) CountByCard(ctx context.Context, catalogueCardID int64) (int64, error) {
	var n int64
	for _, c := range f.cards {
		if c.CatalogueCardID == catalogueCardID {
			n++
		}
	}
	return n, nil
}

// fakeCatalogueRepo serves catalogue reads from a slice.
type fakeCatalogueRepo struct {
	cards []*entity.CatalogueCard
}

func (f *fakeCatalogueRepo) List(ctx context.Context, filter adapter.CatalogueFilter) ([]*entity.CatalogueCard, error) {
	return f.cards, nil
}

func (f *fakeCatalogueRepo) FindByID(ctx context.Context, id int64) (*entity.CatalogueCard, error) {
	for _, c := range f.cards {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domainerror.ErrCardNotFound
}

func (f *fakeCatalogueRepo) FindByIDs(ctx context.Context, ids []int64) (map[int64]*entity.CatalogueCard, error) {
	out := make(map[int64]*entity.CatalogueCard, len(ids))
	for _, id := range ids {
		for _, c := range f.cards {
			if c.ID == id {
				out[id] = c
			}
		}
	}
	return out, nil
}

func (f *fakeCatalogueRepo) Create(ctx context.Context, card *entity.CatalogueCard) error { return nil }

func (f *fakeCatalogueRepo) Update(ctx context.Context, card *entity.CatalogueCard) error { return nil }

func (f *fakeCatalogueRepo) Delete(ctx context.Context, id int64) error { return nil }

func (f *fakeCatalogueRepo) ExistsByBankAndName(ctx context.Context, bank entity.Bank, name string) (bool, error) {
	return false, nil
}

func catalogueCard(id int64, name string) *entity.CatalogueCard {
	card := entity.NewCatalogueCard(entity.BankDBS, name, entity.BenefitTypeCashback, decimal.RequireFromString("0.015"))
	card.ID = id
	return card
}

func intPtr(i int) *int { return &i }

func walletCode(t *testing.T, err error) domainerror.WalletErrorCode {
	t.Helper()
	var walletErr *domainerror.WalletError
	if !errors.As(err, &walletErr) {
		t.Fatalf("expected a wallet error, got %v", err)
	}
	return walletErr.Code
}
