package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
	"github.com/SscSPs/multicurrency_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type scheduledTransferHandler struct {
	scheduledService portssvc.ScheduledTransferSvcFacade
	scheduler        portssvc.SchedulerSvc
	now              func() time.Time
}

func newScheduledTransferHandler(ss portssvc.ScheduledTransferSvcFacade, scheduler portssvc.SchedulerSvc) *scheduledTransferHandler {
	return &scheduledTransferHandler{scheduledService: ss, scheduler: scheduler, now: time.Now}
}

func registerScheduledTransferRoutes(rg, admin *gin.RouterGroup, ss portssvc.ScheduledTransferSvcFacade, scheduler portssvc.SchedulerSvc) {
	h := newScheduledTransferHandler(ss, scheduler)

	scheduled := rg.Group("/scheduled-transfers")
	{
		scheduled.POST("", h.create)
		scheduled.GET("", h.listOwn)
		scheduled.DELETE("/:scheduledTransferID", h.delete)
	}

	adminScheduled := admin.Group("/scheduled-transfers")
	{
		adminScheduled.GET("", h.listAll)
		adminScheduled.POST("/run-due", h.runDue)
	}
}

// create godoc
// @Summary Schedule a monthly transfer
// @Description The first occurrence runs on scheduledDate; later ones on the same day of following months, clamped to month end.
// @Tags scheduled transfers
// @Accept json
// @Produce json
// @Param scheduledTransfer body dto.CreateScheduledTransferRequest true "Schedule"
// @Success 201 {object} dto.ScheduledTransferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /scheduled-transfers [post]
func (h *scheduledTransferHandler) create(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := callerAccountID(c, logger)
	if !ok {
		return
	}

	var req dto.CreateScheduledTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "scheduled transfer request")
		return
	}

	st, err := h.scheduledService.CreateScheduledTransfer(c.Request.Context(), accountID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to schedule transfer")
		return
	}

	logger.Info("Scheduled transfer created", slog.String("scheduled_transfer_id", st.ScheduledTransferID))
	c.JSON(http.StatusCreated, dto.ToScheduledTransferResponse(st))
}

// listOwn godoc
// @Summary List the caller's scheduled transfers
// @Tags scheduled transfers
// @Produce json
// @Success 200 {array} dto.ScheduledTransferResponse
// @Security BearerAuth
// @Router /scheduled-transfers [get]
func (h *scheduledTransferHandler) listOwn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := callerAccountID(c, logger)
	if !ok {
		return
	}

	items, err := h.scheduledService.ListScheduledTransfers(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to list scheduled transfers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListScheduledTransferResponse(items))
}

// delete godoc
// @Summary Cancel one of the caller's scheduled transfers
// @Tags scheduled transfers
// @Param scheduledTransferID path string true "Scheduled transfer ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /scheduled-transfers/{scheduledTransferID} [delete]
func (h *scheduledTransferHandler) delete(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := callerAccountID(c, logger)
	if !ok {
		return
	}

	id := c.Param("scheduledTransferID")
	if err := h.scheduledService.DeleteScheduledTransfer(c.Request.Context(), accountID, id); err != nil {
		respondError(c, logger, err, "Failed to delete scheduled transfer")
		return
	}

	logger.Info("Scheduled transfer deleted", slog.String("scheduled_transfer_id", id))
	c.Status(http.StatusNoContent)
}

// listAll godoc
// @Summary List every scheduled transfer
// @Tags admin
// @Produce json
// @Success 200 {array} dto.ScheduledTransferResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/scheduled-transfers [get]
func (h *scheduledTransferHandler) listAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	items, err := h.scheduledService.ListAllScheduledTransfers(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list scheduled transfers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListScheduledTransferResponse(items))
}

// runDue godoc
// @Summary Run the scheduler batch
// @Description Executes every transfer scheduled exactly on the given date (today when omitted).
// @Tags admin
// @Accept json
// @Produce json
// @Param run body dto.RunDueRequest false "Run date"
// @Success 200 {object} domain.BatchReport
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse "Due list could not be loaded"
// @Security BearerAuth
// @Router /admin/scheduled-transfers/run-due [post]
func (h *scheduledTransferHandler) runDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RunDueRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, logger, err, "run-due request")
			return
		}
	}

	runDate := domain.TruncateToDate(h.now().UTC())
	if req.Date != "" {
		d, err := domain.ParseDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be YYYY-MM-DD"})
			return
		}
		runDate = d
	}

	report, err := h.scheduler.RunDueTransfers(c.Request.Context(), runDate)
	if err != nil {
		respondError(c, logger, err, "Failed to run scheduled transfers")
		return
	}

	logger.Info("Scheduler batch finished",
		slog.String("run_date", runDate.Format(time.DateOnly)),
		slog.Int("succeeded", report.Succeeded),
		slog.Int("failed", report.Failed))
	c.JSON(http.StatusOK, report)
}
