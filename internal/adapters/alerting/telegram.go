package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
	"github.com/SscSPs/multicurrency_ledger/internal/utils"
)

// DefaultTelegramBaseURL is the Telegram Bot API host.
const DefaultTelegramBaseURL = "https://api.telegram.org"

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// TelegramNotifier posts alerts to one chat through the Bot API.
type TelegramNotifier struct {
	baseURL string
	token   string
	chatID  string
	client  *http.Client
}

// NewTelegramNotifier creates a notifier. An empty baseURL selects DefaultTelegramBaseURL.
func NewTelegramNotifier(baseURL, token, chatID string, client *http.Client) *TelegramNotifier {
	if baseURL == "" {
		baseURL = DefaultTelegramBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &TelegramNotifier{baseURL: strings.TrimRight(baseURL, "/"), token: token, chatID: chatID, client: client}
}

var _ portssvc.Notifier = (*TelegramNotifier)(nil)

// Notify sends message and reports delivery failures wrapped in apperrors.ErrAlertSend.
func (n *TelegramNotifier) Notify(ctx context.Context, message string) error {
	payload, err := json.Marshal(sendMessageRequest{ChatID: n.chatID, Text: message})
	if err != nil {
		return fmt.Errorf("%w: encode: %w", apperrors.ErrAlertSend, err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build request: %w", apperrors.ErrAlertSend, utils.RedactURL(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrAlertSend, utils.RedactURL(err))
	}
	defer resp.Body.Close()

	var body sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: status %d, undecodable body: %w", apperrors.ErrAlertSend, resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || !body.OK {
		return fmt.Errorf("%w: status %d: %s", apperrors.ErrAlertSend, resp.StatusCode, body.Description)
	}
	return nil
}
