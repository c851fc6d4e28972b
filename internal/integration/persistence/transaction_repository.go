// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/domain/reward"
	"github.com/cardwise/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new card transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.CardTransaction) error {
	transactionModel := model.CardTransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a card transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CardTransaction, error) {
	var transactionModel model.CardTransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByFilter retrieves card transactions based on filter criteria with pagination.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.CardTransactionModel{}).
		Where("user_id = ?", filter.UserID)

	if filter.Month != nil {
		start, end := monthRange(*filter.Month)
		query = query.Where("date >= ? AND date < ?", start, end)
	}
	if filter.CatalogueCardID != nil {
		query = query.Where("catalogue_card_id = ?", *filter.CatalogueCardID)
	}
	if filter.Channel != nil {
		query = query.Where("channel = ?", *filter.Channel)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	// Get total count
	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	// Calculate pagination
	page := pagination.Page
	if page < 1 {
		page = 1
	}
	limit := pagination.Limit
	if limit < 1 {
		limit = 50
	}
	offset := (page - 1) * limit

	var transactionModels []model.CardTransactionModel
	result := query.
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.CardTransaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &adapter.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
	}, nil
}

// FindByUserMonth retrieves all of a user's transactions within one month,
// unpaginated, for cumulative period-state computation.
func (r *transactionRepository) FindByUserMonth(ctx context.Context, userID uuid.UUID, month reward.MonthKey) ([]entity.CardTransaction, error) {
	start, end := monthRange(month)

	var transactionModels []model.CardTransactionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]entity.CardTransaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = *tm.ToEntity()
	}
	return transactions, nil
}

// Delete removes a card transaction from the database.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.CardTransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// ExistsByIDAndUser checks if a transaction exists for a given ID and user.
func (r *transactionRepository) ExistsByIDAndUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.CardTransactionModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// monthRange returns the [start, end) bounds of a "YYYY-MM" month in UTC.
func monthRange(month reward.MonthKey) (time.Time, time.Time) {
	start, err := time.Parse("2006-01", string(month))
	if err != nil {
		// Callers validate month keys; an unparsable key matches nothing.
		return time.Time{}, time.Time{}
	}
	return start, start.AddDate(0, 1, 0)
}
