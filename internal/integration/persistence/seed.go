// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cardwise/backend/internal/domain/entity"
	"github.com/cardwise/backend/internal/integration/persistence/model"
)

// SeedCatalogue inserts the starter card catalogue when the table is empty.
// Rates keep the catalogue's dual representation: cashback as a fraction,
// miles as miles-per-dollar.
func SeedCatalogue(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.CatalogueCardModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	farExpiry := time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)

	cards := []model.CatalogueCardModel{
		{
			Bank:        string(entity.BankStandardChartered),
			Name:        "Simply Cash",
			BenefitType: string(entity.BenefitTypeCashback),
			BaseRate:    decimal.RequireFromString("0.015"),
			Status:      string(entity.CardStatusValid),
			ExpiryDate:  farExpiry,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			Bank:        string(entity.BankCiti),
			Name:        "Citi PremierMiles",
			BenefitType: string(entity.BenefitTypeMiles),
			BaseRate:    decimal.RequireFromString("1.2"),
			Status:      string(entity.CardStatusValid),
			ExpiryDate:  farExpiry,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			Bank:        string(entity.BankDBS),
			Name:        "DBS Live Fresh",
			BenefitType: string(entity.BenefitTypeCashback),
			BaseRate:    decimal.RequireFromString("0.003"),
			Status:      string(entity.CardStatusValid),
			ExpiryDate:  farExpiry,
			CreatedAt:   now,
			UpdatedAt:   now,
			BonusRules: []model.BonusRuleModel{
				{
					BonusCategory:    "Fashion",
					BonusRate:        decimal.RequireFromString("0.057"),
					CapInDollar:      50,
					MinSpendInDollar: 800,
					CreatedAt:        now,
					UpdatedAt:        now,
				},
				{
					BonusCategory:    "Transport",
					BonusRate:        decimal.RequireFromString("0.057"),
					CapInDollar:      20,
					MinSpendInDollar: 800,
					CreatedAt:        now,
					UpdatedAt:        now,
				},
			},
		},
		{
			Bank:        string(entity.BankDBS),
			Name:        "DBS Woman's World Card",
			BenefitType: string(entity.BenefitTypeMiles),
			BaseRate:    decimal.RequireFromString("0.4"),
			Status:      string(entity.CardStatusValid),
			ExpiryDate:  farExpiry,
			CreatedAt:   now,
			UpdatedAt:   now,
			PeriodRule: &model.PeriodRuleModel{
				Kind:          string(entity.PeriodRuleChannelCap),
				Channel:       entity.ChannelOnline,
				MonthlyCapSGD: decimal.RequireFromString("1000"),
				BonusRate:     decimal.RequireFromString("4.0"),
				SpillRate:     decimal.RequireFromString("0.4"),
				CreatedAt:     now,
				UpdatedAt:     now,
			},
		},
		{
			Bank:        string(entity.BankUOB),
			Name:        "UOB PRVI Miles",
			BenefitType: string(entity.BenefitTypeMiles),
			BaseRate:    decimal.RequireFromString("1.4"),
			Status:      string(entity.CardStatusValid),
			ExpiryDate:  farExpiry,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			Bank:        string(entity.BankUOB),
			Name:        "UOB One",
			BenefitType: string(entity.BenefitTypeCashback),
			BaseRate:    decimal.Zero,
			Status:      string(entity.CardStatusValid),
			ExpiryDate:  farExpiry,
			CreatedAt:   now,
			UpdatedAt:   now,
			PeriodRule: &model.PeriodRuleModel{
				Kind:        string(entity.PeriodRuleTier),
				MinTxnCount: 10,
				CreatedAt:   now,
				UpdatedAt:   now,
				Tiers: []model.PeriodRuleTierModel{
					{ThresholdSGD: 600, QuarterlyPayoutSGD: decimal.RequireFromString("60")},
					{ThresholdSGD: 1000, QuarterlyPayoutSGD: decimal.RequireFromString("100")},
					{ThresholdSGD: 2000, QuarterlyPayoutSGD: decimal.RequireFromString("200")},
				},
			},
		},
	}

	if err := db.Create(&cards).Error; err != nil {
		return err
	}

	slog.Info("Seeded card catalogue", "cards", len(cards))
	return nil
}
