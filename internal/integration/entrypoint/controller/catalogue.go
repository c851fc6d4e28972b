// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/application/usecase/catalogue"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/integration/entrypoint/dto"
	"github.com/cardwise/backend/internal/integration/entrypoint/middleware"
)

// CatalogueController handles catalogue card endpoints.
type CatalogueController struct {
	listUseCase   *catalogue.ListCardsUseCase
	getUseCase    *catalogue.GetCardUseCase
	createUseCase *catalogue.CreateCardUseCase
	updateUseCase *catalogue.UpdateCardUseCase
	deleteUseCase *catalogue.DeleteCardUseCase
}

// NewCatalogueController creates a new catalogue controller instance.
func NewCatalogueController(
	listUseCase *catalogue.ListCardsUseCase,
	getUseCase *catalogue.GetCardUseCase,
	createUseCase *catalogue.CreateCardUseCase,
	updateUseCase *catalogue.UpdateCardUseCase,
	deleteUseCase *catalogue.DeleteCardUseCase,
) *CatalogueController {
	return &CatalogueController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /cards requests.
func (c *CatalogueController) List(ctx *gin.Context) {
	if _, ok := middleware.GetUserIDFromContext(ctx); !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Parse query filters
	input := catalogue.ListCardsInput{}
	if bankStr := ctx.Query("bank"); bankStr != "" {
		bank := entity.Bank(bankStr)
		input.Bank = &bank
	}
	if benefitTypeStr := ctx.Query("benefit_type"); benefitTypeStr != "" {
		benefitType := entity.BenefitType(benefitTypeStr)
		input.BenefitType = &benefitType
	}
	if statusStr := ctx.Query("status"); statusStr != "" {
		status := entity.CardStatus(statusStr)
		input.Status = &status
	}
	if categoryStr := ctx.Query("bonus_category"); categoryStr != "" {
		input.BonusCategory = &categoryStr
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCardListResponse(output))
}

// Get handles GET /cards/:id requests.
func (c *CatalogueController) Get(ctx *gin.Context) {
	if _, ok := middleware.GetUserIDFromContext(ctx); !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	cardID, ok := c.parseCardID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), catalogue.GetCardInput{CardID: cardID})
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCardResponse(output.Card))
}

// Create handles POST /cards requests.
func (c *CatalogueController) Create(ctx *gin.Context) {
	if _, ok := middleware.GetUserIDFromContext(ctx); !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingCardFields),
		})
		return
	}

	baseRate, err := decimal.NewFromString(req.BaseRate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid base rate format",
			Code:  string(domainerror.ErrCodeInvalidBaseRate),
		})
		return
	}

	input := catalogue.CreateCardInput{
		Bank:        entity.Bank(req.Bank),
		Name:        req.Name,
		BenefitType: entity.BenefitType(req.BenefitType),
		BaseRate:    baseRate,
	}

	bonusRules, ok := c.parseBonusRules(ctx, req.BonusRules)
	if !ok {
		return
	}
	input.BonusRules = bonusRules

	if input.ChannelCap, ok = c.parseChannelCap(ctx, req.ChannelCap); !ok {
		return
	}
	if input.TierRule, ok = c.parseTierRule(ctx, req.TierRule); !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCardResponse(output.Card))
}

// Update handles PUT /cards/:id requests.
func (c *CatalogueController) Update(ctx *gin.Context) {
	if _, ok := middleware.GetUserIDFromContext(ctx); !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	cardID, ok := c.parseCardID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingCardFields),
		})
		return
	}

	input := catalogue.UpdateCardInput{
		CardID:          cardID,
		Name:            req.Name,
		ClearPeriodRule: req.ClearPeriodRule,
	}

	if req.BaseRate != nil {
		baseRate, err := decimal.NewFromString(*req.BaseRate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid base rate format",
				Code:  string(domainerror.ErrCodeInvalidBaseRate),
			})
			return
		}
		input.BaseRate = &baseRate
	}
	if req.Status != nil {
		status := entity.CardStatus(*req.Status)
		input.Status = &status
	}
	if req.ExpiryDate != nil {
		expiryDate, err := time.Parse("2006-01-02", *req.ExpiryDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid expiry date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeMissingCardFields),
			})
			return
		}
		input.ExpiryDate = &expiryDate
	}
	if req.BonusRules != nil {
		bonusRules, ok := c.parseBonusRules(ctx, *req.BonusRules)
		if !ok {
			return
		}
		input.BonusRules = &bonusRules
	}
	if input.ChannelCap, ok = c.parseChannelCap(ctx, req.ChannelCap); !ok {
		return
	}
	if input.TierRule, ok = c.parseTierRule(ctx, req.TierRule); !ok {
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCardResponse(output.Card))
}

// Delete handles DELETE /cards/:id requests.
func (c *CatalogueController) Delete(ctx *gin.Context) {
	if _, ok := middleware.GetUserIDFromContext(ctx); !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	cardID, ok := c.parseCardID(ctx)
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), catalogue.DeleteCardInput{CardID: cardID})
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseCardID parses the numeric card id path parameter, writing the error
// response itself on failure.
func (c *CatalogueController) parseCardID(ctx *gin.Context) (int64, bool) {
	cardID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || cardID < 1 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card ID format",
		})
		return 0, false
	}
	return cardID, true
}

// parseBonusRules maps bonus rule request DTOs to use case inputs.
func (c *CatalogueController) parseBonusRules(ctx *gin.Context, rules []dto.BonusRuleRequest) ([]catalogue.BonusRuleInput, bool) {
	if len(rules) == 0 {
		return nil, true
	}
	inputs := make([]catalogue.BonusRuleInput, len(rules))
	for i, rule := range rules {
		bonusRate, err := decimal.NewFromString(rule.BonusRate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid bonus rate format",
				Code:  string(domainerror.ErrCodeInvalidBonusRate),
			})
			return nil, false
		}
		inputs[i] = catalogue.BonusRuleInput{
			BonusCategory:    rule.BonusCategory,
			BonusRate:        bonusRate,
			CapInDollar:      rule.CapInDollar,
			MinSpendInDollar: rule.MinSpendInDollar,
		}
	}
	return inputs, true
}

// parseChannelCap maps a channel cap request DTO to a use case input.
func (c *CatalogueController) parseChannelCap(ctx *gin.Context, cap *dto.ChannelCapRequest) (*catalogue.ChannelCapInput, bool) {
	if cap == nil {
		return nil, true
	}
	monthlyCap, err := decimal.NewFromString(cap.MonthlyCapSGD)
	if err == nil {
		var bonusRate, spillRate decimal.Decimal
		bonusRate, err = decimal.NewFromString(cap.BonusRate)
		if err == nil {
			spillRate, err = decimal.NewFromString(cap.SpillRate)
			if err == nil {
				return &catalogue.ChannelCapInput{
					Channel:       cap.Channel,
					MonthlyCapSGD: monthlyCap,
					BonusRate:     bonusRate,
					SpillRate:     spillRate,
				}, true
			}
		}
	}
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid channel cap rates",
		Code:  string(domainerror.ErrCodeInvalidPeriodRule),
	})
	return nil, false
}

// parseTierRule maps a tier rule request DTO to a use case input.
func (c *CatalogueController) parseTierRule(ctx *gin.Context, rule *dto.TierRuleRequest) (*catalogue.TierRuleInput, bool) {
	if rule == nil {
		return nil, true
	}
	input := &catalogue.TierRuleInput{
		MinTxnCount: rule.MinTxnCount,
		Tiers:       make([]catalogue.TierLevelInput, len(rule.Tiers)),
	}
	for i, tier := range rule.Tiers {
		payout, err := decimal.NewFromString(tier.QuarterlyPayoutSGD)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid tier payout format",
				Code:  string(domainerror.ErrCodeInvalidPeriodRule),
			})
			return nil, false
		}
		input.Tiers[i] = catalogue.TierLevelInput{
			ThresholdSGD:       tier.ThresholdSGD,
			QuarterlyPayoutSGD: payout,
		}
	}
	return input, true
}

// handleCardError handles catalogue card errors and returns appropriate HTTP responses.
func (c *CatalogueController) handleCardError(ctx *gin.Context, err error) {
	var cardErr *domainerror.CardError
	if errors.As(err, &cardErr) {
		statusCode := c.getStatusCodeForCardError(cardErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: cardErr.Message,
			Code:  string(cardErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForCardError maps card error codes to HTTP status codes.
func (c *CatalogueController) getStatusCodeForCardError(code domainerror.CardErrorCode) int {
	switch code {
	case domainerror.ErrCodeCardNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCardAlreadyExists,
		domainerror.ErrCodeCardHasWalletRefs:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidBank,
		domainerror.ErrCodeInvalidBenefitType,
		domainerror.ErrCodeInvalidBaseRate,
		domainerror.ErrCodeInvalidCardStatus,
		domainerror.ErrCodeInvalidBonusCategory,
		domainerror.ErrCodeInvalidBonusRate,
		domainerror.ErrCodeInvalidBonusCap,
		domainerror.ErrCodeInvalidPeriodRule,
		domainerror.ErrCodeDuplicateBonusCategory,
		domainerror.ErrCodeMissingCardFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
