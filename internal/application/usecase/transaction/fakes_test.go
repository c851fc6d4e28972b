// Package transaction contains spend logging use cases.
package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/domain/reward"
)

// fakeTransactionRepo serves reads from a slice and records writes.
type fakeTransactionRepo struct {
	transactions   []*entity.CardTransaction
	created        []*entity.CardTransaction
	deleted        []uuid.UUID
	listResult     *adapter.TransactionListResult
	lastFilter     adapter.TransactionFilter
	lastPagination adapter.TransactionPagination
}

func (f *fakeTransactionRepo) Create(ctx context.Context, txn *entity.CardTransaction) error {
	f.transactions = append(f.transactions, txn)
	f.created = append(f.created, txn)
	return nil
}

func (f *fakeTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.CardTransaction, error) {
	for _, txn := range f.transactions {
		if txn.ID == id {
			return txn, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (f *fakeTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	f.lastFilter = filter
	f.lastPagination = pagination
	if f.listResult != nil {
		return f.listResult, nil
	}
	return &adapter.TransactionListResult{
		Transactions: f.transactions,
		Total:        int64(len(f.transactions)),
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   1,
	}, nil
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

func (f *fakeTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeTransactionRepo) ExistsByIDAndUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error) {
	for _, txn := range f.transactions {
		if txn.ID == id && txn.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// fakeWalletRepo only answers FindByID; spend logging never touches the rest.
type fakeWalletRepo struct {
	cards []*entity.WalletCard
}

func (f *fakeWalletRepo) Create(ctx context.Context, card *entity.WalletCard) error { return nil }

func (f *fakeWalletRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.WalletCard, error) {
	for _, c := range f.cards {
		if c.ID == id {
			return c, nil
		}
	}
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
	return 0, nil
}

func transactionCode(t *testing.T, err error) domainerror.TransactionErrorCode {
	t.Helper()
	var txnErr *domainerror.TransactionError
	if !errors.As(err, &txnErr) {
		t.Fatalf("expected a transaction error, got %v", err)
	}
	return txnErr.Code
}
