// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/application/usecase/wallet"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/integration/entrypoint/dto"
	"github.com/cardwise/backend/internal/integration/entrypoint/middleware"
)

// WalletController handles wallet endpoints.
type WalletController struct {
	listUseCase         *wallet.ListWalletUseCase
	addUseCase          *wallet.AddCardUseCase
	updateStatusUseCase *wallet.UpdateCardStatusUseCase
	removeUseCase       *wallet.RemoveCardUseCase
}

// NewWalletController creates a new wallet controller instance.
func NewWalletController(
	listUseCase *wallet.ListWalletUseCase,
	addUseCase *wallet.AddCardUseCase,
	updateStatusUseCase *wallet.UpdateCardStatusUseCase,
	removeUseCase *wallet.RemoveCardUseCase,
) *WalletController {
	return &WalletController{
		listUseCase:         listUseCase,
		addUseCase:          addUseCase,
		updateStatusUseCase: updateStatusUseCase,
		removeUseCase:       removeUseCase,
	}
}

// List handles GET /wallet requests.
func (c *WalletController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), wallet.ListWalletInput{UserID: userID})
	if err != nil {
		c.handleWalletError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToWalletListResponse(output))
}

// Add handles POST /wallet requests.
func (c *WalletController) Add(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.AddWalletCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingWalletFields),
		})
		return
	}

	input := wallet.AddCardInput{
		UserID:            userID,
		CatalogueCardID:   req.CatalogueCardID,
		RefreshDayOfMonth: req.RefreshDayOfMonth,
	}

	output, err := c.addUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleWalletError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToWalletCardResponse(output.WalletCard))
}

// UpdateStatus handles PATCH /wallet/:id/status requests.
func (c *WalletController) UpdateStatus(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	walletCardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid wallet card ID format",
		})
		return
	}

	var req dto.UpdateWalletCardStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingWalletFields),
		})
		return
	}

	input := wallet.UpdateCardStatusInput{
		UserID:       userID,
		WalletCardID: walletCardID,
		Status:       req.Status,
	}

	output, err := c.updateStatusUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleWalletError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToWalletCardResponse(output.WalletCard))
}

// Remove handles DELETE /wallet/:id requests. Removal is a soft expiry so
// past transactions keep their card context.
func (c *WalletController) Remove(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	walletCardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid wallet card ID format",
		})
		return
	}

	input := wallet.RemoveCardInput{
		UserID:       userID,
		WalletCardID: walletCardID,
	}

	if _, err := c.removeUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleWalletError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleWalletError handles wallet errors and returns appropriate HTTP
// responses. Adding a card can also surface catalogue card errors.
func (c *WalletController) handleWalletError(ctx *gin.Context, err error) {
	var walletErr *domainerror.WalletError
	if errors.As(err, &walletErr) {
		statusCode := c.getStatusCodeForWalletError(walletErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: walletErr.Message,
			Code:  string(walletErr.Code),
		})
		return
	}

	var cardErr *domainerror.CardError
	if errors.As(err, &cardErr) {
		statusCode := http.StatusBadRequest
		if cardErr.Code == domainerror.ErrCodeCardNotFound {
			statusCode = http.StatusNotFound
		}
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

// getStatusCodeForWalletError maps wallet error codes to HTTP status codes.
func (c *WalletController) getStatusCodeForWalletError(code domainerror.WalletErrorCode) int {
	switch code {
	case domainerror.ErrCodeWalletCardNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeWalletNotAuthorized:
		return http.StatusForbidden
	case domainerror.ErrCodeCardAlreadyInWallet:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidWalletStatus,
		domainerror.ErrCodeInvalidRefreshDay,
		domainerror.ErrCodeCardNotUsable,
		domainerror.ErrCodeMissingWalletFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
