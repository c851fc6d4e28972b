package reward

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/domain/entity"
)

func txnOn(cardID int64, date string, amount string, channel string) entity.CardTransaction {
	d, _ := time.Parse("2006-01-02", date)
	return entity.CardTransaction{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		CatalogueCardID: cardID,
		Date:            d,
		AmountSGD:       decimal.RequireFromString(amount),
		Channel:         channel,
	}
}

func TestMonthKey(t *testing.T) {
	t.Run("derives the key from a timestamp", func(t *testing.T) {
		ts, _ := time.Parse("2006-01-02", "2025-02-15")
		if got := MonthKeyOf(ts); got != "2025-02" {
			t.Errorf("expected 2025-02, got %s", got)
		}
	})

	t.Run("accepts well formed keys", func(t *testing.T) {
		if _, ok := ParseMonthKey("2025-02"); !ok {
			t.Error("expected 2025-02 to parse")
		}
	})

	t.Run("rejects malformed keys", func(t *testing.T) {
		for _, bad := range []string{"2025-2", "2025/02", "2025-13", "202502", "", "2025-02-15"} {
			if _, ok := ParseMonthKey(bad); ok {
				t.Errorf("expected %q to be rejected", bad)
			}
		}
	})
}

func TestAccumulate(t *testing.T) {
	log := []entity.CardTransaction{
		txnOn(4, "2025-02-05", "300", entity.ChannelOnline),
		txnOn(4, "2025-02-10", "600", entity.ChannelOnline),
		txnOn(4, "2025-02-12", "50", entity.ChannelInStore),
		txnOn(6, "2025-02-08", "65", entity.ChannelInStore),
		txnOn(6, "2025-02-09", "65", entity.ChannelInStore),
		txnOn(4, "2025-01-28", "999", entity.ChannelOnline),
		txnOn(6, "2025-03-01", "40", entity.ChannelOnline),
	}

	state := Accumulate(log, "2025-02")

	t.Run("filters to the target month", func(t *testing.T) {
		card := state.Card(4)
		if !card.SpendTotal.Equal(decimal.NewFromInt(950)) {
			t.Errorf("expected card 4 spend 950, got %s", card.SpendTotal)
		}
		if card.TxnCount != 3 {
			t.Errorf("expected card 4 count 3, got %d", card.TxnCount)
		}
	})

	t.Run("tracks channel spend separately", func(t *testing.T) {
		card := state.Card(4)
		if !card.ChannelTotal(entity.ChannelOnline).Equal(decimal.NewFromInt(900)) {
			t.Errorf("expected 900 online, got %s", card.ChannelTotal(entity.ChannelOnline))
		}
		if !card.ChannelTotal(entity.ChannelInStore).Equal(decimal.NewFromInt(50)) {
			t.Errorf("expected 50 in store, got %s", card.ChannelTotal(entity.ChannelInStore))
		}
	})

	t.Run("accumulates per card independently", func(t *testing.T) {
		card := state.Card(6)
		if !card.SpendTotal.Equal(decimal.NewFromInt(130)) {
			t.Errorf("expected card 6 spend 130, got %s", card.SpendTotal)
		}
		if card.TxnCount != 2 {
			t.Errorf("expected card 6 count 2, got %d", card.TxnCount)
		}
	})

	t.Run("unknown card yields zero state", func(t *testing.T) {
		card := state.Card(99)
		if !card.SpendTotal.IsZero() || card.TxnCount != 0 {
			t.Errorf("expected zero state, got %s / %d", card.SpendTotal, card.TxnCount)
		}
		if !card.ChannelTotal(entity.ChannelOnline).IsZero() {
			t.Error("expected zero channel spend for an unknown card")
		}
	})

	t.Run("empty log yields empty state", func(t *testing.T) {
		empty := Accumulate(nil, "2025-02")
		if len(empty.Cards) != 0 {
			t.Errorf("expected no card state, got %d entries", len(empty.Cards))
		}
	})

	t.Run("recomputation is deterministic", func(t *testing.T) {
		again := Accumulate(log, "2025-02")
		if !again.Card(4).SpendTotal.Equal(state.Card(4).SpendTotal) {
			t.Error("expected identical spend totals on recomputation")
		}
		if again.Card(6).TxnCount != state.Card(6).TxnCount {
			t.Error("expected identical counts on recomputation")
		}
	})

	t.Run("does not mutate the log", func(t *testing.T) {
		if !log[0].AmountSGD.Equal(decimal.NewFromInt(300)) {
			t.Errorf("log entry mutated: %s", log[0].AmountSGD)
		}
		if len(log) != 7 {
			t.Errorf("log length changed: %d", len(log))
		}
	})
}
