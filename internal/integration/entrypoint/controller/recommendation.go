// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/application/usecase/recommendation"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/integration/entrypoint/dto"
	"github.com/cardwise/backend/internal/integration/entrypoint/middleware"
)

// RecommendationController handles reward recommendation endpoints.
type RecommendationController struct {
	recommendUseCase *recommendation.RecommendUseCase
	evaluateUseCase  *recommendation.EvaluateSpendUseCase
	explainUseCase   *recommendation.ExplainRecommendationUseCase
}

// NewRecommendationController creates a new recommendation controller instance.
func NewRecommendationController(
	recommendUseCase *recommendation.RecommendUseCase,
	evaluateUseCase *recommendation.EvaluateSpendUseCase,
	explainUseCase *recommendation.ExplainRecommendationUseCase,
) *RecommendationController {
	return &RecommendationController{
		recommendUseCase: recommendUseCase,
		evaluateUseCase:  evaluateUseCase,
		explainUseCase:   explainUseCase,
	}
}

// Recommend handles POST /recommendations requests. An empty wallet or no
// eligible card is a normal outcome: 200 with an empty ranked list and a
// null best, never an error.
func (c *RecommendationController) Recommend(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.RecommendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidSpendAmount),
		})
		return
	}

	input := recommendation.RecommendInput{
		UserID:     userID,
		Category:   req.Category,
		Preference: req.Preference,
	}

	if req.AmountSGD != nil && *req.AmountSGD != "" {
		amount, err := decimal.NewFromString(*req.AmountSGD)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid amount format",
				Code:  string(domainerror.ErrCodeInvalidSpendAmount),
			})
			return
		}
		input.AmountSGD = &amount
	}

	output, err := c.recommendUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecommendationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecommendResponse(output))
}

// Evaluate handles POST /recommendations/evaluate requests: one prospective
// spend checked against this month's accumulated caps and tiers.
func (c *RecommendationController) Evaluate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.EvaluateSpendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidSpendAmount),
		})
		return
	}

	amount, err := decimal.NewFromString(req.AmountSGD)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeInvalidSpendAmount),
		})
		return
	}

	input := recommendation.EvaluateSpendInput{
		UserID:    userID,
		AmountSGD: amount,
		Channel:   req.Channel,
		Category:  req.Category,
	}

	if req.Date != nil && *req.Date != "" {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidSpendAmount),
			})
			return
		}
		input.Date = &date
	}

	output, err := c.evaluateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecommendationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEvaluateSpendResponse(output))
}

// Explain handles POST /recommendations/explain requests.
func (c *RecommendationController) Explain(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.ExplainRecommendationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidSpendAmount),
		})
		return
	}

	amount, err := decimal.NewFromString(req.AmountSGD)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeInvalidSpendAmount),
		})
		return
	}

	input := recommendation.ExplainRecommendationInput{
		UserID:     userID,
		Category:   req.Category,
		AmountSGD:  amount,
		Preference: req.Preference,
	}

	output, err := c.explainUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecommendationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExplainRecommendationResponse(output))
}

// handleRecommendationError handles recommendation errors and returns
// appropriate HTTP responses. Explanation errors ride the same endpoint
// family, so they are handled here too.
func (c *RecommendationController) handleRecommendationError(ctx *gin.Context, err error) {
	var recErr *domainerror.RecommendationError
	if errors.As(err, &recErr) {
		statusCode := c.getStatusCodeForRecommendationError(recErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: recErr.Message,
			Code:  string(recErr.Code),
		})
		return
	}

	var expErr *domainerror.ExplanationError
	if errors.As(err, &expErr) {
		statusCode := http.StatusInternalServerError
		if expErr.Code == domainerror.ErrCodeExplanationUnavailable {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: expErr.Message,
			Code:  string(expErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForRecommendationError maps recommendation error codes to HTTP status codes.
func (c *RecommendationController) getStatusCodeForRecommendationError(code domainerror.RecommendationErrorCode) int {
	switch code {
	case domainerror.ErrCodeRecommendationUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidSpendAmount,
		domainerror.ErrCodeInvalidSpendCategory,
		domainerror.ErrCodeInvalidSpendChannel,
		domainerror.ErrCodeInvalidRewardPreference:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
