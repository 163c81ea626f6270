package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	baseCurrency   = "GHS"
	targetCurrency = "USD"
)

var errInvalidNonPositiveRate = errors.New("conversion rate must be positive")

// Client fetches latest rates from the exchangerate-api.com v4 API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type ratesResponse struct {
	Base  string                 `json:"base"`
	Rates map[string]json.Number `json:"rates"`
}

// NewClient creates an exchangerate-api.com client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = "https://api.exchangerate-api.com"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL: trimmed,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// CurrentRate returns the latest GHS->USD rate. A well-formed payload
// that carries no USD entry yields a rate of exactly 1.
func (c *Client) CurrentRate(ctx context.Context) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/v4/latest/%s", c.baseURL, baseCurrency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create rates request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to request rates: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("exchange API returned status %d", resp.StatusCode)
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()

	var payload ratesResponse
	if err := decoder.Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode rates response: %w", err)
	}

	raw, ok := payload.Rates[targetCurrency]
	if !ok {
		return decimal.NewFromInt(1), nil
	}

	rate, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse %s rate: %w", targetCurrency, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, errInvalidNonPositiveRate
	}

	return rate, nil
}
