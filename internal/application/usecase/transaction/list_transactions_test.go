// Package transaction contains spend logging use cases.
package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/domain/reward"
)

func loggedSpend(userID uuid.UUID, amount string, date time.Time) *entity.CardTransaction {
	return entity.NewCardTransaction(userID, uuid.New(), 1, date, amountOf(amount), "online")
}

func TestListTransactions_DefaultsPagination(t *testing.T) {
	cases := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{name: "zero values", page: 0, limit: 0, wantPage: 1, wantLimit: 20},
		{name: "negative page", page: -3, limit: 10, wantPage: 1, wantLimit: 10},
		{name: "limit clamped", page: 2, limit: 500, wantPage: 2, wantLimit: 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeTransactionRepo{}
			uc := NewListTransactionsUseCase(repo)

			_, err := uc.Execute(context.Background(), ListTransactionsInput{
				UserID: uuid.New(),
				Page:   tc.page,
				Limit:  tc.limit,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.lastPagination.Page != tc.wantPage {
				t.Errorf("expected page %d, got %d", tc.wantPage, repo.lastPagination.Page)
			}
			if repo.lastPagination.Limit != tc.wantLimit {
				t.Errorf("expected limit %d, got %d", tc.wantLimit, repo.lastPagination.Limit)
			}
		})
	}
}

func TestListTransactions_MonthFilter(t *testing.T) {
	t.Run("valid month forwarded", func(t *testing.T) {
		repo := &fakeTransactionRepo{}
		uc := NewListTransactionsUseCase(repo)

		month := "2026-03"
		_, err := uc.Execute(context.Background(), ListTransactionsInput{
			UserID: uuid.New(),
			Month:  &month,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastFilter.Month == nil || *repo.lastFilter.Month != reward.MonthKey("2026-03") {
			t.Errorf("expected the month filter forwarded, got %v", repo.lastFilter.Month)
		}
	})

	t.Run("malformed month", func(t *testing.T) {
		for _, month := range []string{"2026-13", "202603", "march"} {
			uc := NewListTransactionsUseCase(&fakeTransactionRepo{})

			m := month
			_, err := uc.Execute(context.Background(), ListTransactionsInput{
				UserID: uuid.New(),
				Month:  &m,
			})
			if code := transactionCode(t, err); code != domainerror.ErrCodeInvalidBillingMonth {
				t.Errorf("%q: expected %s, got %s", month, domainerror.ErrCodeInvalidBillingMonth, code)
			}
		}
	})
}

func TestListTransactions_ForwardsRemainingFilters(t *testing.T) {
	repo := &fakeTransactionRepo{}
	uc := NewListTransactionsUseCase(repo)

	userID := uuid.New()
	cardID := int64(7)
	channel := "online"
	category := "Food"
	_, err := uc.Execute(context.Background(), ListTransactionsInput{
		UserID:          userID,
		CatalogueCardID: &cardID,
		Channel:         &channel,
		Category:        &category,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	filter := repo.lastFilter
	if filter.UserID != userID {
		t.Errorf("expected the user scoped, got %s", filter.UserID)
	}
	if filter.CatalogueCardID == nil || *filter.CatalogueCardID != 7 {
		t.Errorf("expected the card filter forwarded, got %v", filter.CatalogueCardID)
	}
	if filter.Channel == nil || *filter.Channel != "online" {
		t.Errorf("expected the channel filter forwarded, got %v", filter.Channel)
	}
	if filter.Category == nil || *filter.Category != "Food" {
		t.Errorf("expected the category filter forwarded, got %v", filter.Category)
	}
}

func TestListTransactions_MapsResult(t *testing.T) {
	userID := uuid.New()
	date := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	repo := &fakeTransactionRepo{listResult: &adapter.TransactionListResult{
		Transactions: []*entity.CardTransaction{
			loggedSpend(userID, "42.50", date),
			loggedSpend(userID, "12.00", date),
		},
		Total:      42,
		Page:       2,
		Limit:      20,
		TotalPages: 3,
	}}
	uc := NewListTransactionsUseCase(repo)

	out, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: userID, Page: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(out.Transactions))
	}
	if !out.Transactions[0].AmountSGD.Equal(amountOf("42.50")) {
		t.Errorf("expected amount 42.50, got %s", out.Transactions[0].AmountSGD)
	}
	p := out.Pagination
	if p.Page != 2 || p.Limit != 20 || p.Total != 42 || p.TotalPages != 3 {
		t.Errorf("unexpected pagination: %+v", p)
	}
}
