package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
	"github.com/SscSPs/multicurrency_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type topUpHandler struct {
	topUpService portssvc.TopUpSvcFacade
}

func newTopUpHandler(ts portssvc.TopUpSvcFacade) *topUpHandler {
	return &topUpHandler{topUpService: ts}
}

// registerTopUpRoutes registers staging for holders and review for administrators.
func registerTopUpRoutes(rg, admin *gin.RouterGroup, topUpService portssvc.TopUpSvcFacade, idempotency gin.HandlerFunc) {
	h := newTopUpHandler(topUpService)

	rg.POST("/topups", idempotency, h.stageTopUp)

	adminTopUps := admin.Group("/topups")
	{
		adminTopUps.GET("", h.listPending)
		adminTopUps.POST("/:pendingTopUpID/approve", idempotency, h.approve)
	}
}

// stageTopUp godoc
// @Summary Request a top-up
// @Description Stages a credit to the caller's account. Funds move only after administrator approval.
// @Tags topups
// @Accept json
// @Produce json
// @Param topup body dto.StageTopUpRequest true "Top-up details"
// @Success 202 {object} dto.PendingTopUpResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /topups [post]
func (h *topUpHandler) stageTopUp(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := callerAccountID(c, logger)
	if !ok {
		return
	}

	var req dto.StageTopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "stage top-up request")
		return
	}

	pending, err := h.topUpService.Stage(c.Request.Context(), accountID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to stage top-up")
		return
	}

	logger.Info("Top-up staged", slog.String("pending_topup_id", pending.PendingTopUpID))
	c.JSON(http.StatusAccepted, dto.ToPendingTopUpResponse(pending))
}

// listPending godoc
// @Summary List staged top-ups
// @Tags admin
// @Produce json
// @Success 200 {array} dto.PendingTopUpResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/topups [get]
func (h *topUpHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	pending, err := h.topUpService.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list pending top-ups")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPendingTopUpResponse(pending))
}

// approve godoc
// @Summary Approve a staged top-up
// @Description Funds the request from the reserve account and consumes it. A request can be approved once.
// @Tags admin
// @Produce json
// @Param pendingTopUpID path string true "Pending top-up ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown or already approved"
// @Failure 422 {object} ErrorResponse "Reserve has insufficient funds"
// @Security BearerAuth
// @Router /admin/topups/{pendingTopUpID}/approve [post]
func (h *topUpHandler) approve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("pendingTopUpID")

	txn, err := h.topUpService.Approve(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to approve top-up")
		return
	}

	logger.Info("Top-up approved", slog.String("pending_topup_id", id), slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
