// Package reward implements the card reward engine: rate resolution,
// ranking across a wallet, and month-scoped state for cap and tier rules.
// The package is pure: callers load catalogue and wallet data up front and
// pass it in; nothing here touches storage, clocks, or the network.
package reward

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Unit is the currency of a computed reward.
type Unit string

const (
	UnitCashback Unit = "cashback"
	UnitMiles    Unit = "miles"
)

// Category is a spend/bonus category token. The taxonomy is small, fixed
// and case-sensitive; it must match the catalogue data exactly.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryFashion       Category = "Fashion"
	CategoryAll           Category = "All"
)

// Categories returns the fixed category taxonomy.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryFashion,
		CategoryAll,
	}
}

// ParseCategory validates a category token against the fixed taxonomy.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// UncappedSentinel is the catalogue's "no cap" marker for bonus rules.
// It must be reproduced exactly for compatibility with existing data.
const UncappedSentinel int64 = 99999999

// RateSource identifies which rate produced a reward.
type RateSource string

const (
	RateSourceBase  RateSource = "base"
	RateSourceBonus RateSource = "bonus"
)

var oneHundred = decimal.NewFromInt(100)

// NormalizeRate maps a stored rate to the value used for arithmetic.
// Cashback rates above 1 are percent literals and are divided by 100;
// miles-per-dollar rates have no such ceiling and pass through unchanged.
// Every rate consumer in this package goes through this function so the
// inference rule lives in exactly one place.
func NormalizeRate(rate decimal.Decimal, unit Unit) decimal.Decimal {
	if unit == UnitCashback && rate.GreaterThan(decimal.NewFromInt(1)) {
		return rate.Div(oneHundred)
	}
	return rate
}

// RatePercent returns the display percentage for a cashback rate,
// tolerating both fraction and percent-literal storage.
func RatePercent(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		return rate
	}
	return rate.Mul(oneHundred)
}

// RoundCashback rounds a cashback reward to the currency minor unit.
func RoundCashback(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// RoundMiles rounds a miles reward half-up to a whole number of miles.
func RoundMiles(v decimal.Decimal) decimal.Decimal {
	return v.Round(0)
}

// FormatRate renders the human-readable effective-rate string for a card,
// e.g. "3.5% cashback" or "4.0 mpd".
func FormatRate(rate decimal.Decimal, unit Unit) string {
	if unit == UnitMiles {
		return fmt.Sprintf("%.1f mpd", rate.InexactFloat64())
	}
	return fmt.Sprintf("%.1f%% cashback", RatePercent(rate).InexactFloat64())
}

// FormatSplitRate renders the rate string for a transaction that straddles
// a cap boundary, e.g. "split: 4.0/0.4 mpd".
func FormatSplitRate(bonusRate, spillRate decimal.Decimal) string {
	return fmt.Sprintf("split: %.1f/%.1f mpd", bonusRate.InexactFloat64(), spillRate.InexactFloat64())
}

// FormatMonthlyDelta renders a tier payout delta, e.g. "+S$20.00/month".
// A zero delta renders as "S$0.00/month".
func FormatMonthlyDelta(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return fmt.Sprintf("+S$%s/month", delta.StringFixed(2))
	}
	return "S$0.00/month"
}

// FormatRewardValue renders a reward value in its unit-appropriate form:
// a 2dp currency string for cashback, a whole number for miles.
func FormatRewardValue(v decimal.Decimal, unit Unit) string {
	if unit == UnitMiles {
		return RoundMiles(v).String()
	}
	return RoundCashback(v).StringFixed(2)
}
