package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/middleware"
)

// BaseService provides the request-scoped logging shared by all services.
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

func (s *BaseService) logErr(ctx context.Context, level slog.Level, err error, msg string, attrs []any) {
	args := make([]any, 0, len(attrs)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, attrs...)
	s.GetLogger(ctx).Log(ctx, level, msg, args...)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	s.logErr(ctx, slog.LevelError, err, msg, keyvals)
}

// LogWarn logs a recoverable failure with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	s.logErr(ctx, slog.LevelWarn, err, msg, keyvals)
}

// LogFailure logs expected outcomes at Warn and everything else at Error. Expected means
// bad input, a missing or duplicate resource, a refused ledger rule or an unavailable collaborator.
func (s *BaseService) LogFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	level := slog.LevelError
	if expectedFailure(err) {
		level = slog.LevelWarn
	}
	s.logErr(ctx, level, err, msg, keyvals)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

func expectedFailure(err error) bool {
	for _, kind := range []error{
		apperrors.ErrValidation, apperrors.ErrNotFound, apperrors.ErrDuplicate,
		apperrors.ErrBusinessRule, apperrors.ErrUnauthorized, apperrors.ErrExternal,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
