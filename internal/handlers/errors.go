package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps err to its status code. Client errors carry the error text;
// server errors are logged and replaced with a fixed message.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusServiceUnavailable {
		logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
		c.JSON(status, ErrorResponse{Error: unavailableMessage(err, fallback)})
		return
	}
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: fallback})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// unavailableMessage names the unavailable collaborator without exposing its cause.
func unavailableMessage(err error, fallback string) string {
	if errors.Is(err, apperrors.ErrRateUnavailable) {
		return "exchange rate unavailable"
	}
	return fallback
}

// bindError answers a request whose body or query failed binding.
func bindError(c *gin.Context, logger *slog.Logger, err error, what string) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
}
