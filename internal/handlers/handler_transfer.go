package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
	"github.com/SscSPs/multicurrency_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transferHandler handles money movement and history requests.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: ts}
}

// registerTransferRoutes registers transfer, conversion and history routes.
// Writes are wrapped by the idempotency middleware.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade, idempotency gin.HandlerFunc) {
	h := newTransferHandler(transferService)

	rg.POST("/transfers", idempotency, h.transfer)
	rg.POST("/conversions", idempotency, h.convert)

	txns := rg.Group("/transactions")
	{
		txns.GET("", h.listTransactions)
		txns.GET("/:transactionID", h.getTransaction)
	}
}

// transfer godoc
// @Summary Transfer funds to another account
// @Description Debits the caller's sub-account and credits the recipient's sub-account in the same currency.
// @Tags transfers
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for a repeated key"
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No matching sub-account"
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := callerAccountID(c, logger)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "transfer request")
		return
	}

	txn, err := h.transferService.Transfer(c.Request.Context(), accountID, req.ToAccountID, req.Amount, req.CurrencyCode)
	if err != nil {
		respondError(c, logger, err, "Failed to transfer funds")
		return
	}

	logger.Info("Transfer completed", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// convert godoc
// @Summary Convert between two of the caller's currencies
// @Description Quotes the amount in the target currency and moves it between the caller's sub-accounts.
// @Tags transfers
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for a repeated key"
// @Param conversion body dto.ConversionRequest true "Conversion details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No matching sub-account"
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 503 {object} ErrorResponse "Exchange rate unavailable"
// @Security BearerAuth
// @Router /conversions [post]
func (h *transferHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := callerAccountID(c, logger)
	if !ok {
		return
	}

	var req dto.ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "conversion request")
		return
	}

	txn, err := h.transferService.Convert(c.Request.Context(), accountID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to convert funds")
		return
	}

	logger.Info("Conversion completed", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List the caller's transactions
// @Description Newest first. Pass nextToken from the previous page to continue.
// @Tags transactions
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transferHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := callerAccountID(c, logger)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "list transactions query")
		return
	}

	page, err := h.transferService.ListTransactions(c.Request.Context(), accountID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, page)
}

// getTransaction godoc
// @Summary Get one of the caller's transactions
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transferHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := callerAccountID(c, logger)
	if !ok {
		return
	}

	txn, err := h.transferService.GetTransaction(c.Request.Context(), accountID, c.Param("transactionID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
