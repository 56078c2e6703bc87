package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
	"github.com/SscSPs/multicurrency_ledger/internal/middleware"
	"github.com/SscSPs/multicurrency_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the caller's account and its sub-accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers routes scoped to the authenticated account.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	me := rg.Group("/accounts/me")
	{
		me.GET("", h.getMyAccount)
		me.POST("/sub-accounts", h.createSubAccount)
		me.GET("/sub-accounts", h.listSubAccounts)
		me.GET("/balances/:currency", h.getBalance)
	}
}

// callerAccountID returns the authenticated account ID or answers 401.
func callerAccountID(c *gin.Context, logger *slog.Logger) (string, bool) {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return accountID, true
}

// getMyAccount godoc
// @Summary Get the caller's account
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/me [get]
func (h *accountHandler) getMyAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := callerAccountID(c, logger)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// createSubAccount godoc
// @Summary Open a sub-account
// @Description Opens a zero-balance sub-account in a supported currency. One per currency.
// @Tags accounts
// @Accept json
// @Produce json
// @Param subAccount body dto.CreateSubAccountRequest true "Currency"
// @Success 201 {object} dto.SubAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Sub-account for currency already exists"
// @Security BearerAuth
// @Router /accounts/me/sub-accounts [post]
func (h *accountHandler) createSubAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := callerAccountID(c, logger)
	if !ok {
		return
	}

	var req dto.CreateSubAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "create sub-account request")
		return
	}

	sub, err := h.accountService.CreateSubAccount(c.Request.Context(), accountID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create sub-account")
		return
	}

	logger.Info("Sub-account created", slog.String("sub_account_id", sub.SubAccountID), slog.String("currency", sub.CurrencyCode))
	c.JSON(http.StatusCreated, dto.ToSubAccountResponse(sub, utils.FormatMoney(sub.Balance, sub.CurrencyCode)))
}

// listSubAccounts godoc
// @Summary List the caller's sub-accounts
// @Tags accounts
// @Produce json
// @Success 200 {array} dto.SubAccountResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/me/sub-accounts [get]
func (h *accountHandler) listSubAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := callerAccountID(c, logger)
	if !ok {
		return
	}

	subs, err := h.accountService.ListSubAccounts(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to list sub-accounts")
		return
	}

	res := make([]dto.SubAccountResponse, len(subs))
	for i := range subs {
		res[i] = dto.ToSubAccountResponse(&subs[i], utils.FormatMoney(subs[i].Balance, subs[i].CurrencyCode))
	}
	c.JSON(http.StatusOK, res)
}

// getBalance godoc
// @Summary Get the caller's balance in one currency
// @Tags accounts
// @Produce json
// @Param currency path string true "Currency code" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No sub-account in currency"
// @Security BearerAuth
// @Router /accounts/me/balances/{currency} [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := callerAccountID(c, logger)
	if !ok {
		return
	}
	currency := domain.NormalizeCurrency(c.Param("currency"))

	sub, err := h.accountService.GetBalance(c.Request.Context(), accountID, currency)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve balance")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountID:    accountID,
		CurrencyCode: sub.CurrencyCode,
		Balance:      sub.Balance,
		Display:      utils.FormatMoney(sub.Balance, sub.CurrencyCode),
	})
}
