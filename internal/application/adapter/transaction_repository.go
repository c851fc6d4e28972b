// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/domain/entity"
	"github.com/cardwise/backend/internal/domain/reward"
)

// TransactionFilter defines filter options for listing card transactions.
type TransactionFilter struct {
	UserID uuid.UUID
	// Month restricts results to one billing month (YYYY-MM).
	Month           *reward.MonthKey
	CatalogueCardID *int64
	Channel         *string
	Category        *string
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionListResult represents the result of listing card transactions.
type TransactionListResult struct {
	Transactions []*entity.CardTransaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionRepository defines the interface for card transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new card transaction in the database.
	Create(ctx context.Context, transaction *entity.CardTransaction) error

	// FindByID retrieves a card transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CardTransaction, error)

	// FindByFilter retrieves card transactions based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*TransactionListResult, error)

	// FindByUserMonth retrieves all of a user's transactions within one month,
	// unpaginated, for cumulative period-state computation.
	FindByUserMonth(ctx context.Context, userID uuid.UUID, month reward.MonthKey) ([]entity.CardTransaction, error)

	// Delete removes a card transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByIDAndUser checks if a transaction exists for a given ID and user.
	ExistsByIDAndUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error)
}
