// Package transaction contains spend logging use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/domain/reward"
)

// MaxMerchantLength is the maximum allowed length for merchant names.
const MaxMerchantLength = 255

// channelTokenRegex accepts lowercased channel tokens such as "online",
// "contactless" or "in_store".
var channelTokenRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// CreateTransactionInput represents the input for logging a spend.
type CreateTransactionInput struct {
	UserID       uuid.UUID
	WalletCardID uuid.UUID
	Date         time.Time
	AmountSGD    decimal.Decimal
	Channel      string
	Category     string // Optional
	Merchant     string // Optional
	IsOverseas   bool
}

// CreateTransactionOutput represents the output of logging a spend.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles spend logging logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	walletRepo      adapter.WalletRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	walletRepo adapter.WalletRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		walletRepo:      walletRepo,
	}
}

// Execute performs the spend logging.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	// Validate amount
	if !input.AmountSGD.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	// Validate date; a day of slack covers clients ahead of server time
	if input.Date.IsZero() || input.Date.After(time.Now().UTC().Add(24*time.Hour)) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"transaction date is required and must not be in the future",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	// Validate channel token
	channel := strings.ToLower(strings.TrimSpace(input.Channel))
	if !channelTokenRegex.MatchString(channel) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionChannel,
			"channel must be a lowercase token such as online, contactless or in_store",
			domainerror.ErrInvalidTransactionChannel,
		)
	}

	// Validate category if provided
	if input.Category != "" {
		if _, ok := reward.ParseCategory(input.Category); !ok {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionCategory,
				fmt.Sprintf("unknown spend category %q", input.Category),
				domainerror.ErrInvalidTransactionCategory,
			)
		}
	}

	// Validate merchant length
	if len(input.Merchant) > MaxMerchantLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			fmt.Sprintf("merchant must not exceed %d characters", MaxMerchantLength),
			domainerror.ErrMissingTransactionFields,
		)
	}

	// The spend must land on a card the user actually holds
	walletCard, err := uc.walletRepo.FindByID(ctx, input.WalletCardID)
	if err != nil {
		if errors.Is(err, domainerror.ErrWalletCardNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCardNotInWallet,
				"card not in wallet",
				domainerror.ErrTransactionCardNotInWallet,
			)
		}
		return nil, fmt.Errorf("failed to find wallet card: %w", err)
	}
	if walletCard.UserID != input.UserID || walletCard.Status == entity.WalletCardStatusExpired {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCardNotInWallet,
			"card not in wallet",
			domainerror.ErrTransactionCardNotInWallet,
		)
	}

	// Create transaction entity
	transaction := entity.NewCardTransaction(
		input.UserID,
		walletCard.ID,
		walletCard.CatalogueCardID,
		input.Date,
		input.AmountSGD,
		channel,
	)
	transaction.Category = input.Category
	transaction.Merchant = input.Merchant
	transaction.IsOverseas = input.IsOverseas

	// Save transaction to database
	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &CreateTransactionOutput{
		Transaction: newTransactionOutput(transaction),
	}, nil
}
