// Package recommendation contains reward recommendation use cases.
package recommendation

import (
	"context"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/domain/reward"
)

// fakeUserRepo serves FindByID from a map and counts lookups so tests can
// tell whether the stored preference was consulted.
type fakeUserRepo struct {
	users         map[uuid.UUID]*entity.User
	findByIDCalls int
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.findByIDCalls++
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepo) FindDigestRecipients(ctx context.Context) ([]*entity.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	return err == nil, nil
}

// fakeWalletRepo holds wallet rows in a slice; FindActiveByUser filters the
// same way the real repository query does.
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

func (f *fakeWalletRepo) Update(ctx context.Context, card *entity.WalletCard) error { return nil }

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

// fakeCatalogueRepo counts List calls so cache read-through behaviour is
// observable.
type fakeCatalogueRepo struct {
	cards     []*entity.CatalogueCard
	listCalls int
	listErr   error
}

func (f *fakeCatalogueRepo) List(ctx context.Context, filter adapter.CatalogueFilter) ([]*entity.CatalogueCard, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
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

// fakeCatalogueCache holds an in-memory snapshot and can be made to fail
// reads.
type fakeCatalogueCache struct {
	snapshot        []*entity.CatalogueCard
	getErr          error
	setCalls        int
	invalidateCalls int
}

func (f *fakeCatalogueCache) GetSnapshot(ctx context.Context) ([]*entity.CatalogueCard, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
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

// fakeTransactionRepo serves FindByUserMonth from a static log.
type fakeTransactionRepo struct {
	transactions []entity.CardTransaction
}

func (f *fakeTransactionRepo) Create(ctx context.Context, transaction *entity.CardTransaction) error {
	return nil
}

func (f *fakeTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.CardTransaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}

func (f *fakeTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	return &adapter.TransactionListResult{}, nil
}

func (f *fakeTransactionRepo) FindByUserMonth(ctx context.Context, userID uuid.UUID, month reward.MonthKey) ([]entity.CardTransaction, error) {
	out := make([]entity.CardTransaction, 0, len(f.transactions))
	for _, txn := range f.transactions {
		if txn.UserID == userID && reward.MonthKeyOf(txn.Date) == month {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeTransactionRepo) ExistsByIDAndUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error) {
	return false, nil
}

// fakeAuditRepo records created audit rows.
type fakeAuditRepo struct {
	audits    []*entity.ExplanationAudit
	createErr error
}

func (f *fakeAuditRepo) Create(ctx context.Context, audit *entity.ExplanationAudit) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.audits = append(f.audits, audit)
	return nil
}

func (f *fakeAuditRepo) FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ExplanationAudit, error) {
	return f.audits, nil
}

// fakeExplanationService scripts generation outcomes.
type fakeExplanationService struct {
	available bool
	text      string
	model     string
	err       error
	calls     int
}

func (f *fakeExplanationService) Generate(ctx context.Context, prompt string) (*adapter.GeneratedExplanation, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &adapter.GeneratedExplanation{Text: f.text, Model: f.model}, nil
}

func (f *fakeExplanationService) IsAvailable() bool { return f.available }
