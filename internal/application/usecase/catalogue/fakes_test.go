// Package catalogue contains card catalogue use cases.
package catalogue

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

// fakeCatalogueRepo serves reads from a slice and records writes.
type fakeCatalogueRepo struct {
	cards      []*entity.CatalogueCard
	exists     bool
	created    []*entity.CatalogueCard
	updated    []*entity.CatalogueCard
	deleted    []int64
	lastFilter adapter.CatalogueFilter
}

func (f *fakeCatalogueRepo) List(ctx context.Context, filter adapter.CatalogueFilter) ([]*entity.CatalogueCard, error) {
	f.lastFilter = filter
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

func (f *fakeCatalogueRepo) Create(ctx context.Context, card *entity.CatalogueCard) error {
	f.cards = append(f.cards, card)
	f.created = append(f.created, card)
	return nil
}

func (f *fakeCatalogueRepo) Update(ctx context.Context, card *entity.CatalogueCard) error {
	f.updated = append(f.updated, card)
	return nil
}

func (f *fakeCatalogueRepo) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCatalogueRepo) ExistsByBankAndName(ctx context.Context, bank entity.Bank, name string) (bool, error) {
	return f.exists, nil
}

// fakeCatalogueCache counts invalidations.
type fakeCatalogueCache struct {
	snapshot        []*entity.CatalogueCard
	setCalls        int
	invalidateCalls int
}

func (f *fakeCatalogueCache) GetSnapshot(ctx context.Context) ([]*entity.CatalogueCard, error) {
	return f.snapshot, nil
}

func (f *fakeCatalogueCache) SetSnapshot(ctx context.Context, cards []*entity.CatalogueCard) error {
	f.setCalls++
	f.snapshot = cards
	return nil
}

func (f *fakeCatalogueCache) Invalidate(ctx context.Context) error {
	f.invalidateCalls++
	f.snapshot = nil
	return nil
}

// fakeWalletRepo only answers CountByCard; catalogue use cases never touch
// the rest.
type fakeWalletRepo struct {
	countByCard int64
}

func (f *fakeWalletRepo) Create(ctx context.Context, card *entity.WalletCard) error { return nil }

func (f *fakeWalletRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.WalletCard, error) {
	return nil, domainerror.ErrWalletCardNotFound
}

func (f *fakeWalletRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.WalletCard, error) {
	return nil, nil
}

func (f *fakeWalletRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.WalletCard, error) {
	return nil, nil
}

func (f *fakeWalletRepo) FindByUserAndCard(ctx context.Context, userID uuid.UUID, catalogueCardID int64) (*entity.WalletCard, error) {
	return nil, domainerror.ErrWalletCardNotFound
}

func (f *fakeWalletRepo) Update(ctx context.Context, card *entity.WalletCard) error { return nil }

func (f *fakeWalletRepo) ExistsByUserAndCard(ctx context.Context, userID uuid.UUID, catalogueCardID int64) (bool, error) {
	return false, nil
}

func (f *fakeWalletRepo) CountByCard(ctx context.Context, catalogueCardID int64) (int64, error) {
	return f.countByCard, nil
}

func storedCard(id int64, bank entity.Bank, name string) *entity.CatalogueCard {
	card := entity.NewCatalogueCard(bank, name, entity.BenefitTypeCashback, decimal.RequireFromString("0.015"))
	card.ID = id
	return card
}

func int64Ptr(i int64) *int64 { return &i }

func strPtr(s string) *string { return &s }

func rateOf(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func cardCode(t *testing.T, err error) domainerror.CardErrorCode {
	t.Helper()
	var cardErr *domainerror.CardError
	if !errors.As(err, &cardErr) {
		t.Fatalf("expected a card error, got %v", err)
	}
	return cardErr.Code
}
