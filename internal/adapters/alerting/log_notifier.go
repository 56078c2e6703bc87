package alerting

import (
	"context"
	"log/slog"

	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
)

// LogNotifier writes alerts to the structured log. Used when no Telegram bot is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier writing to logger, or to the default logger when nil.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

var _ portssvc.Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) Notify(ctx context.Context, message string) error {
	n.logger.InfoContext(ctx, "Alert", slog.String("message", message))
	return nil
}
