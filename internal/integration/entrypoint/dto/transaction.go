// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/cardwise/backend/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for logging a spend.
type CreateTransactionRequest struct {
	WalletCardID string `json:"wallet_card_id" binding:"required,uuid"`
	Date         string `json:"date" binding:"required"`
	AmountSGD    string `json:"amount_sgd" binding:"required"`
	Channel      string `json:"channel" binding:"required"`
	Category     string `json:"category,omitempty"`
	Merchant     string `json:"merchant,omitempty" binding:"omitempty,max=255"`
	IsOverseas   bool   `json:"is_overseas,omitempty"`
}

// TransactionResponse represents a single logged spend in API responses.
type TransactionResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	WalletCardID    string    `json:"wallet_card_id"`
	CatalogueCardID int64     `json:"catalogue_card_id"`
	Date            string    `json:"date"`
	AmountSGD       string    `json:"amount_sgd"`
	Channel         string    `json:"channel"`
	Category        string    `json:"category,omitempty"`
	Merchant        string    `json:"merchant,omitempty"`
	IsOverseas      bool      `json:"is_overseas"`
	CreatedAt       time.Time `json:"created_at"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionListResponse represents the response for listing logged spends.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	return TransactionResponse{
		ID:              txn.ID.String(),
		UserID:          txn.UserID.String(),
		WalletCardID:    txn.WalletCardID.String(),
		CatalogueCardID: txn.CatalogueCardID,
		Date:            txn.Date.Format("2006-01-02"),
		AmountSGD:       txn.AmountSGD.StringFixed(2),
		Channel:         txn.Channel,
		Category:        txn.Category,
		Merchant:        txn.Merchant,
		IsOverseas:      txn.IsOverseas,
		CreatedAt:       txn.CreatedAt,
	}
}

// ToTransactionListResponse converts a ListTransactionsOutput to TransactionListResponse.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}

	return TransactionListResponse{
		Transactions: transactions,
		Pagination: TransactionPaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
	}
}
