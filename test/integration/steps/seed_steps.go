package steps

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/cardwise/backend/internal/domain/entity"
	"github.com/cardwise/backend/internal/domain/reward"
	"github.com/cardwise/backend/internal/integration/persistence/model"
)

func (t *testContext) aUserExistsWithEmail(email string) error {
	return t.createUser(email, "DefaultPass123!", "Test User")
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password, "Test User")
}

func (t *testContext) createUser(email, password, name string) error {
	userID := uuid.New()
	t.currentUserID = userID

	user := &model.UserModel{
		ID:               userID,
		Email:            email,
		Name:             name,
		PasswordHash:     hashPassword(password),
		RewardPreference: string(entity.RewardPreferenceNone),
		MonthlyDigest:    true,
		TermsAcceptedAt:  time.Now(),
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	result := t.db.DbConn.Create(user)
	return result.Error
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

func (t *testContext) theUserPrefersRewards(preference string) error {
	return t.db.DbConn.Model(&model.UserModel{}).
		Where("id = ?", t.currentUserID).
		Update("reward_preference", preference).Error
}

func (t *testContext) theUserIsLoggedInWithValidTokens() error {
	now := time.Now().UTC()

	accessClaims := jwt.MapClaims{
		"user_id":    t.currentUserID.String(),
		"email":      "test@example.com",
		"token_type": "access",
		"exp":        jwt.NewNumericDate(now.Add(15 * time.Minute)),
		"iat":        jwt.NewNumericDate(now),
		"nbf":        jwt.NewNumericDate(now),
		"iss":        "cardwise",
		"sub":        t.currentUserID.String(),
	}
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = accessTokenString

	refreshClaims := jwt.MapClaims{
		"user_id":    t.currentUserID.String(),
		"email":      "test@example.com",
		"token_type": "refresh",
		"exp":        jwt.NewNumericDate(now.Add(7 * 24 * time.Hour)),
		"iat":        jwt.NewNumericDate(now),
		"nbf":        jwt.NewNumericDate(now),
		"iss":        "cardwise",
		"sub":        t.currentUserID.String(),
	}
	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to generate refresh token: %w", err)
	}
	t.refreshToken = refreshTokenString

	refreshTokenModel := &model.RefreshTokenModel{
		ID:          uuid.New(),
		Token:       t.refreshToken,
		UserID:      t.currentUserID,
		Invalidated: false,
		ExpiresAt:   now.Add(7 * 24 * time.Hour),
		CreatedAt:   now,
	}

	result := t.db.DbConn.Create(refreshTokenModel)
	return result.Error
}

func (t *testContext) aPasswordResetTokenExistsFor(email string) error {
	t.resetToken = fmt.Sprintf("test-reset-token-%s", uuid.New().String())

	var user model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	resetTokenModel := &model.PasswordResetTokenModel{
		ID:        uuid.New(),
		Token:     t.resetToken,
		UserID:    user.ID,
		Email:     email,
		Used:      false,
		ExpiresAt: time.Now().Add(1 * time.Hour),
		CreatedAt: time.Now(),
	}

	result := t.db.DbConn.Create(resetTokenModel)
	return result.Error
}

func (t *testContext) anExpiredPasswordResetTokenExists() error {
	t.expiredToken = fmt.Sprintf("expired-reset-token-%s", uuid.New().String())

	resetTokenModel := &model.PasswordResetTokenModel{
		ID:        uuid.New(),
		Token:     t.expiredToken,
		UserID:    uuid.New(),
		Email:     "expired@example.com",
		Used:      false,
		ExpiresAt: time.Now().Add(-1 * time.Hour),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}

	result := t.db.DbConn.Create(resetTokenModel)
	return result.Error
}

// aCatalogueCardExists seeds a catalogue card directly. The card expires a
// year out so it is always currently offered.
func (t *testContext) aCatalogueCardExists(name, bank, benefitType, baseRate string) error {
	rate, err := decimal.NewFromString(baseRate)
	if err != nil {
		return fmt.Errorf("invalid base rate '%s': %w", baseRate, err)
	}

	now := time.Now().UTC()
	card := &model.CatalogueCardModel{
		Bank:        bank,
		Name:        name,
		BenefitType: benefitType,
		BaseRate:    rate,
		Status:      string(entity.CardStatusValid),
		ExpiryDate:  now.AddDate(1, 0, 0),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := t.db.DbConn.Create(card).Error; err != nil {
		return err
	}

	t.cardIDs[name] = card.ID
	t.currentCardID = card.ID
	return nil
}

func (t *testContext) theCardHasABonusRule(cardName, category, rate string, cap, minSpend int) error {
	cardID, ok := t.cardIDs[cardName]
	if !ok {
		return fmt.Errorf("card '%s' has not been seeded", cardName)
	}

	bonusRate, err := decimal.NewFromString(rate)
	if err != nil {
		return fmt.Errorf("invalid bonus rate '%s': %w", rate, err)
	}

	// A zero cap in the scenario means uncapped
	capInDollar := int64(cap)
	if capInDollar == 0 {
		capInDollar = reward.UncappedSentinel
	}

	now := time.Now().UTC()
	rule := &model.BonusRuleModel{
		CardID:           cardID,
		BonusCategory:    category,
		BonusRate:        bonusRate,
		CapInDollar:      capInDollar,
		MinSpendInDollar: int64(minSpend),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	return t.db.DbConn.Create(rule).Error
}

func (t *testContext) theCardHasAChannelCap(cardName, channel, cap, bonusRate, spillRate string) error {
	cardID, ok := t.cardIDs[cardName]
	if !ok {
		return fmt.Errorf("card '%s' has not been seeded", cardName)
	}

	monthlyCap, err := decimal.NewFromString(cap)
	if err != nil {
		return fmt.Errorf("invalid cap '%s': %w", cap, err)
	}
	bonus, err := decimal.NewFromString(bonusRate)
	if err != nil {
		return fmt.Errorf("invalid bonus rate '%s': %w", bonusRate, err)
	}
	spill, err := decimal.NewFromString(spillRate)
	if err != nil {
		return fmt.Errorf("invalid spill rate '%s': %w", spillRate, err)
	}

	now := time.Now().UTC()
	rule := &model.PeriodRuleModel{
		CardID:        cardID,
		Kind:          string(entity.PeriodRuleChannelCap),
		Channel:       channel,
		MonthlyCapSGD: monthlyCap,
		BonusRate:     bonus,
		SpillRate:     spill,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return t.db.DbConn.Create(rule).Error
}

func (t *testContext) theCardHasATierRule(cardName string, minTxnCount int, levels *godog.DocString) error {
	cardID, ok := t.cardIDs[cardName]
	if !ok {
		return fmt.Errorf("card '%s' has not been seeded", cardName)
	}

	var tierLevels []struct {
		ThresholdSGD       int64  `json:"threshold_sgd"`
		QuarterlyPayoutSGD string `json:"quarterly_payout_sgd"`
	}
	if err := json.Unmarshal([]byte(levels.Content), &tierLevels); err != nil {
		return fmt.Errorf("invalid tier levels: %w", err)
	}

	now := time.Now().UTC()
	rule := &model.PeriodRuleModel{
		CardID:      cardID,
		Kind:        string(entity.PeriodRuleTier),
		MinTxnCount: minTxnCount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.db.DbConn.Create(rule).Error; err != nil {
		return err
	}

	for _, level := range tierLevels {
		payout, err := decimal.NewFromString(level.QuarterlyPayoutSGD)
		if err != nil {
			return fmt.Errorf("invalid quarterly payout '%s': %w", level.QuarterlyPayoutSGD, err)
		}
		tier := &model.PeriodRuleTierModel{
			PeriodRuleID:       rule.ID,
			ThresholdSGD:       level.ThresholdSGD,
			QuarterlyPayoutSGD: payout,
		}
		if err := t.db.DbConn.Create(tier).Error; err != nil {
			return err
		}
	}

	return nil
}

func (t *testContext) theCardIsMarked(cardName, status string) error {
	cardID, ok := t.cardIDs[cardName]
	if !ok {
		return fmt.Errorf("card '%s' has not been seeded", cardName)
	}

	return t.db.DbConn.Model(&model.CatalogueCardModel{}).
		Where("id = ?", cardID).
		Update("status", status).Error
}

func (t *testContext) theUsersWalletContainsTheCard(cardName string) error {
	cardID, ok := t.cardIDs[cardName]
	if !ok {
		return fmt.Errorf("card '%s' has not been seeded", cardName)
	}

	now := time.Now().UTC()
	walletCard := &model.WalletCardModel{
		ID:                uuid.New(),
		UserID:            t.currentUserID,
		CatalogueCardID:   cardID,
		Status:            string(entity.WalletCardStatusActive),
		RefreshDayOfMonth: 1,
		AddedAt:           now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := t.db.DbConn.Create(walletCard).Error; err != nil {
		return err
	}

	t.walletCardIDs[cardName] = walletCard.ID
	t.currentWalletCardID = walletCard.ID
	return nil
}

func (t *testContext) theWalletCardForIs(cardName, status string) error {
	walletCardID, ok := t.walletCardIDs[cardName]
	if !ok {
		return fmt.Errorf("wallet card for '%s' has not been seeded", cardName)
	}

	updates := map[string]any{"status": status}
	if status == string(entity.WalletCardStatusExpired) {
		now := time.Now().UTC()
		updates["expires_at"] = &now
	}

	return t.db.DbConn.Model(&model.WalletCardModel{}).
		Where("id = ?", walletCardID).
		Updates(updates).Error
}

func (t *testContext) aTransactionWasLoggedOnChannel(amount, channel, cardName string) error {
	return t.seedTransaction(amount, channel, "", cardName, time.Now().UTC())
}

func (t *testContext) aTransactionWasLoggedInCategory(amount, category, cardName string) error {
	return t.seedTransaction(amount, entity.ChannelInStore, category, cardName, time.Now().UTC())
}

func (t *testContext) aTransactionWasLoggedOnDate(amount, date, cardName string) error {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date '%s': %w", date, err)
	}
	return t.seedTransaction(amount, entity.ChannelInStore, "", cardName, parsed)
}

func (t *testContext) transactionsWereLoggedOnChannel(count int, amount, channel, cardName string) error {
	for i := 0; i < count; i++ {
		if err := t.seedTransaction(amount, channel, "", cardName, time.Now().UTC()); err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) seedTransaction(amount, channel, category, cardName string, date time.Time) error {
	cardID, ok := t.cardIDs[cardName]
	if !ok {
		return fmt.Errorf("card '%s' has not been seeded", cardName)
	}
	walletCardID, ok := t.walletCardIDs[cardName]
	if !ok {
		return fmt.Errorf("wallet card for '%s' has not been seeded", cardName)
	}

	amountSGD, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount '%s': %w", amount, err)
	}

	txn := &model.CardTransactionModel{
		ID:              uuid.New(),
		UserID:          t.currentUserID,
		WalletCardID:    walletCardID,
		CatalogueCardID: cardID,
		Date:            date,
		AmountSGD:       amountSGD,
		Channel:         channel,
		Category:        category,
		CreatedAt:       time.Now().UTC(),
	}

	if err := t.db.DbConn.Create(txn).Error; err != nil {
		return err
	}

	t.lastTransactionID = txn.ID
	return nil
}
