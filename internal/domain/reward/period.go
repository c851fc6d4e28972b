package reward

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/domain/entity"
)

// MonthKey identifies a calendar month as "YYYY-MM".
type MonthKey string

var monthKeyRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)

// MonthKeyOf returns the month key a timestamp falls in.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

// ParseMonthKey validates a "YYYY-MM" string.
func ParseMonthKey(s string) (MonthKey, bool) {
	if !monthKeyRegex.MatchString(s) {
		return "", false
	}
	if _, err := time.Parse("2006-01", s); err != nil {
		return "", false
	}
	return MonthKey(s), true
}

// CardPeriodState is one card's cumulative position within a month.
type CardPeriodState struct {
	SpendTotal   decimal.Decimal
	TxnCount     int
	ChannelSpend map[string]decimal.Decimal
}

// PeriodState is the per-card cumulative state for one month, recomputed
// from the transaction log on every call. It is never persisted, so it can
// never drift from the ledger.
type PeriodState struct {
	Month MonthKey
	Cards map[int64]*CardPeriodState
}

// Card returns the state for a catalogue card, zero-valued when the card
// has no transactions this month.
func (s PeriodState) Card(cardID int64) CardPeriodState {
	if st, ok := s.Cards[cardID]; ok {
		return *st
	}
	return CardPeriodState{
		SpendTotal:   decimal.Zero,
		ChannelSpend: map[string]decimal.Decimal{},
	}
}

// ChannelTotal returns cumulative spend on one channel, zero when absent.
func (c CardPeriodState) ChannelTotal(channel string) decimal.Decimal {
	if v, ok := c.ChannelSpend[channel]; ok {
		return v
	}
	return decimal.Zero
}

// Accumulate folds a transaction log into per-card cumulative state for one
// month. Transactions outside the month are ignored; the log itself is
// never mutated.
func Accumulate(log []entity.CardTransaction, month MonthKey) PeriodState {
	state := PeriodState{
		Month: month,
		Cards: make(map[int64]*CardPeriodState),
	}

	for i := range log {
		txn := &log[i]
		if MonthKeyOf(txn.Date) != month {
			continue
		}

		card, ok := state.Cards[txn.CatalogueCardID]
		if !ok {
			card = &CardPeriodState{
				SpendTotal:   decimal.Zero,
				ChannelSpend: make(map[string]decimal.Decimal),
			}
			state.Cards[txn.CatalogueCardID] = card
		}

		card.SpendTotal = card.SpendTotal.Add(txn.AmountSGD)
		card.TxnCount++
		if txn.Channel != "" {
			card.ChannelSpend[txn.Channel] = card.ChannelTotal(txn.Channel).Add(txn.AmountSGD)
		}
	}

	return state
}
