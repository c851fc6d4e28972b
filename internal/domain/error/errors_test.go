// Package error defines domain-specific errors for the Cardwise application.
package error

import (
	"errors"
	"fmt"
	"testing"
)

func codeOf(t *testing.T, err error) string {
	t.Helper()
	switch e := err.(type) {
	case *AuthError:
		return string(e.Code)
	case *CardError:
		return string(e.Code)
	case *WalletError:
		return string(e.Code)
	case *TransactionError:
		return string(e.Code)
	case *RecommendationError:
		return string(e.Code)
	case *ExplanationError:
		return string(e.Code)
	}
	t.Fatalf("unexpected error type %T", err)
	return ""
}

func TestDomainErrors_WrapSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		wantCode string
		wantMsg  string
	}{
		{
			name:     "auth error",
			err:      NewAuthError(ErrCodeUserNotFound, "user not found", ErrUserNotFound),
			sentinel: ErrUserNotFound,
			wantCode: "AUTH-020002",
			wantMsg:  "user not found: user not found",
		},
		{
			name:     "card error",
			err:      NewCardError(ErrCodeCardNotFound, "card not found", ErrCardNotFound),
			sentinel: ErrCardNotFound,
			wantCode: "CARD-020001",
			wantMsg:  "card not found: card not found",
		},
		{
			name:     "wallet error",
			err:      NewWalletError(ErrCodeCardAlreadyInWallet, "card already in wallet", ErrCardAlreadyInWallet),
			sentinel: ErrCardAlreadyInWallet,
			wantCode: "WAL-020002",
			wantMsg:  "card already in wallet: card already in wallet",
		},
		{
			name:     "transaction error",
			err:      NewTransactionError(ErrCodeInvalidBillingMonth, "month must be in YYYY-MM format", ErrInvalidBillingMonth),
			sentinel: ErrInvalidBillingMonth,
			wantCode: "TXN-010005",
			wantMsg:  "month must be in YYYY-MM format: invalid billing month",
		},
		{
			name:     "recommendation error",
			err:      NewRecommendationError(ErrCodeInvalidSpendAmount, "amount must be greater than zero", ErrInvalidSpendAmount),
			sentinel: ErrInvalidSpendAmount,
			wantCode: "REC-010001",
			wantMsg:  "amount must be greater than zero: invalid spend amount",
		},
		{
			name:     "explanation error",
			err:      NewExplanationError(ErrCodeExplanationUnavailable, "no eligible cards to explain", ErrExplanationUnavailable),
			sentinel: ErrExplanationUnavailable,
			wantCode: "LLM-020001",
			wantMsg:  "no eligible cards to explain: explanation service unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := codeOf(t, tt.err); got != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, got)
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("expected errors.Is to reach the sentinel through the wrapper")
			}
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, got)
			}
			// A wrapped sentinel must also survive another layer of wrapping.
			wrapped := fmt.Errorf("handling request: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("expected errors.Is to reach the sentinel through two layers")
			}
		})
	}
}

func TestDomainErrors_CodeExtraction(t *testing.T) {
	err := fmt.Errorf("handling request: %w",
		NewCardError(ErrCodeInvalidBank, "bank must be one of DBS, CITI, Standard_Chartered, UOB", ErrInvalidBank))

	var cardErr *CardError
	if !errors.As(err, &cardErr) {
		t.Fatalf("expected errors.As to find the card error, got %v", err)
	}
	if cardErr.Code != ErrCodeInvalidBank {
		t.Errorf("expected %s, got %s", ErrCodeInvalidBank, cardErr.Code)
	}
}

func TestDomainErrors_MessageWithoutCause(t *testing.T) {
	err := NewAuthError(ErrCodeInvalidConfirmation, "confirmation must be exactly 'DELETE'", nil)
	if got := err.Error(); got != "confirmation must be exactly 'DELETE'" {
		t.Errorf("expected the bare message, got %q", got)
	}
	if errors.Unwrap(err) != nil {
		t.Errorf("expected no underlying error, got %v", errors.Unwrap(err))
	}
}
