// Package transaction contains spend logging use cases.
package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/domain/reward"
)

// ListTransactionsInput represents the input for listing logged spends.
type ListTransactionsInput struct {
	UserID          uuid.UUID
	Month           *string // Optional, "YYYY-MM"
	CatalogueCardID *int64
	Channel         *string
	Category        *string
	Page            int
	Limit           int
}

// TransactionOutput represents a single logged spend in the output.
type TransactionOutput struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	WalletCardID    uuid.UUID
	CatalogueCardID int64
	Date            time.Time
	AmountSGD       decimal.Decimal
	Channel         string
	Category        string
	Merchant        string
	IsOverseas      bool
	CreatedAt       time.Time
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListTransactionsOutput represents the output of listing logged spends.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Pagination   PaginationOutput
}

// ListTransactionsUseCase handles transaction listing logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	// Set default pagination values
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	// Build filter
	filter := adapter.TransactionFilter{
		UserID:          input.UserID,
		CatalogueCardID: input.CatalogueCardID,
		Channel:         input.Channel,
		Category:        input.Category,
	}
	if input.Month != nil {
		month, ok := reward.ParseMonthKey(*input.Month)
		if !ok {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidBillingMonth,
				"month must be in YYYY-MM format",
				domainerror.ErrInvalidBillingMonth,
			)
		}
		filter.Month = &month
	}

	// Build pagination
	pagination := adapter.TransactionPagination{
		Page:  page,
		Limit: limit,
	}

	// Fetch transactions
	result, err := uc.transactionRepo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, err
	}

	// Build output
	output := &ListTransactionsOutput{
		Transactions: make([]*TransactionOutput, len(result.Transactions)),
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
	for i, txn := range result.Transactions {
		output.Transactions[i] = newTransactionOutput(txn)
	}

	return output, nil
}

// newTransactionOutput maps a transaction entity to its use case output.
func newTransactionOutput(txn *entity.CardTransaction) *TransactionOutput {
	return &TransactionOutput{
		ID:              txn.ID,
		UserID:          txn.UserID,
		WalletCardID:    txn.WalletCardID,
		CatalogueCardID: txn.CatalogueCardID,
		Date:            txn.Date,
		AmountSGD:       txn.AmountSGD,
		Channel:         txn.Channel,
		Category:        txn.Category,
		Merchant:        txn.Merchant,
		IsOverseas:      txn.IsOverseas,
		CreatedAt:       txn.CreatedAt,
	}
}
