// Package digest contains the monthly reward digest use case.
package digest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/domain/reward"
)

// fakeUserRepo answers FindDigestRecipients from a fixed slice.
type fakeUserRepo struct {
	recipients []*entity.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range f.recipients {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepo) FindDigestRecipients(ctx context.Context) ([]*entity.User, error) {
	return f.recipients, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

// fakeTransactionRepo answers FindByUserMonth from a fixed log.
type fakeTransactionRepo struct {
	transactions []*entity.CardTransaction
}

func (f *fakeTransactionRepo) Create(ctx context.Context, txn *entity.CardTransaction) error {
	return nil
}

func (f *fakeTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.CardTransaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}

func (f *fakeTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	return &adapter.TransactionListResult{}, nil
}

func (f *fakeTransactionRepo) FindByUserMonth(ctx context.Context, userID uuid.UUID, month reward.MonthKey) ([]entity.CardTransaction, error) {
	var out []entity.CardTransaction
	for _, txn := range f.transactions {
		if txn.UserID == userID && reward.MonthKeyOf(txn.Date) == month {
			out = append(out, *txn)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeTransactionRepo) ExistsByIDAndUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error) {
	return false, nil
}

// fakeCatalogueRepo answers FindByIDs from a fixed card slice.
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

// fakeEmailService records queued digests; failFor makes one user's queue
// attempt fail.
type fakeEmailService struct {
	digests []adapter.QueueRewardDigestInput
	failFor string
}

func (f *fakeEmailService) QueuePasswordResetEmail(ctx context.Context, input adapter.QueuePasswordResetInput) error {
	return nil
}

func (f *fakeEmailService) QueueRewardDigestEmail(ctx context.Context, input adapter.QueueRewardDigestInput) error {
	if f.failFor != "" && input.UserEmail == f.failFor {
		return errors.New("queue unavailable")
	}
	f.digests = append(f.digests, input)
	return nil
}

func digestUser(email, name string) *entity.User {
	return entity.NewUser(email, name, "$2a$10$hash", time.Now().UTC())
}

func amountOf(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func spend(userID uuid.UUID, cardID int64, date time.Time, amount, channel, category string) *entity.CardTransaction {
	txn := entity.NewCardTransaction(userID, uuid.New(), cardID, date, amountOf(amount), channel)
	txn.Category = category
	return txn
}
