package ratequote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
	"github.com/SscSPs/multicurrency_ledger/internal/utils"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public exchangerate-api endpoint.
const DefaultBaseURL = "https://v6.exchangerate-api.com"

type pairResponse struct {
	Result           string          `json:"result"`
	ErrorType        string          `json:"error-type"`
	ConversionRate   decimal.Decimal `json:"conversion_rate"`
	ConversionResult decimal.Decimal `json:"conversion_result"`
}

// HTTPQuoter converts amounts with the exchangerate-api pair endpoint.
type HTTPQuoter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPQuoter creates a quoter. An empty baseURL selects DefaultBaseURL.
func NewHTTPQuoter(baseURL, apiKey string, client *http.Client) *HTTPQuoter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPQuoter{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, client: client}
}

var _ portssvc.RateQuoter = (*HTTPQuoter)(nil)

// Quote returns amount expressed in toCurrency. Every failure wraps apperrors.ErrRateUnavailable.
func (q *HTTPQuoter) Quote(ctx context.Context, fromCurrency, toCurrency string, amount decimal.Decimal) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/v6/%s/pair/%s/%s/%s", q.baseURL,
		url.PathEscape(q.apiKey), url.PathEscape(fromCurrency), url.PathEscape(toCurrency), amount.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: build request: %w", apperrors.ErrRateUnavailable, utils.RedactURL(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := q.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", apperrors.ErrRateUnavailable, utils.RedactURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: quote service returned status %d", apperrors.ErrRateUnavailable, resp.StatusCode)
	}

	var body pairResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decode quote: %w", apperrors.ErrRateUnavailable, err)
	}
	if body.Result != "success" {
		return decimal.Zero, fmt.Errorf("%w: quote service error %q", apperrors.ErrRateUnavailable, body.ErrorType)
	}
	if !body.ConversionResult.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive conversion result", apperrors.ErrRateUnavailable)
	}
	return body.ConversionResult, nil
}
