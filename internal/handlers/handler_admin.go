package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
	"github.com/SscSPs/multicurrency_ledger/internal/middleware"
	"github.com/SscSPs/multicurrency_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

const defaultAccountPageSize = 100

// adminHandler serves administrator tooling that has no holder-facing counterpart.
type adminHandler struct {
	accountService  portssvc.AccountSvcFacade
	transferService portssvc.TransferSvc
}

func newAdminHandler(as portssvc.AccountSvcFacade, ts portssvc.TransferSvc) *adminHandler {
	return &adminHandler{accountService: as, transferService: ts}
}

func registerAdminRoutes(admin *gin.RouterGroup, as portssvc.AccountSvcFacade, ts portssvc.TransferSvc, idempotency gin.HandlerFunc) {
	h := newAdminHandler(as, ts)

	admin.GET("/accounts", h.listAccounts)
	admin.POST("/accounts/:accountID/sub-accounts", h.createSubAccount)
	admin.POST("/fund", idempotency, h.fund)
}

// listAccounts godoc
// @Summary List all accounts
// @Tags admin
// @Produce json
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.AccountResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/accounts [get]
func (h *adminHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "list accounts query")
		return
	}
	if params.Limit == 0 {
		params.Limit = defaultAccountPageSize
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// createSubAccount godoc
// @Summary Open a sub-account for any account
// @Tags admin
// @Accept json
// @Produce json
// @Param accountID path string true "Account ID"
// @Param subAccount body dto.CreateSubAccountRequest true "Currency"
// @Success 201 {object} dto.SubAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/accounts/{accountID}/sub-accounts [post]
func (h *adminHandler) createSubAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSubAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "create sub-account request")
		return
	}

	sub, err := h.accountService.CreateSubAccount(c.Request.Context(), c.Param("accountID"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create sub-account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSubAccountResponse(sub, utils.FormatMoney(sub.Balance, sub.CurrencyCode)))
}

// fund godoc
// @Summary Credit a sub-account without a source
// @Description Records a funding transaction. Used to capitalise the reserve account.
// @Tags admin
// @Accept json
// @Produce json
// @Param fund body dto.FundRequest true "Funding details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/fund [post]
func (h *adminHandler) fund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.FundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "fund request")
		return
	}

	txn, err := h.transferService.TopUp(c.Request.Context(), req.AccountID, req.Amount, req.CurrencyCode)
	if err != nil {
		respondError(c, logger, err, "Failed to fund account")
		return
	}

	logger.Info("Account funded",
		slog.String("account_id", req.AccountID),
		slog.String("amount", utils.FormatMoney(req.Amount, req.CurrencyCode)),
		slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}
