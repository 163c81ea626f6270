// Package airtable submits completed expense records to Airtable.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"gitlab.com/kofiasante/diligent-bot/internal/models"
)

// ErrUnknownApt indicates an apartment code with no configured base.
// Reaching it means a bug upstream: the engine only ever produces the
// fixed codes or the default.
var ErrUnknownApt = errors.New("invalid apt value")

// Client posts expense records to the Airtable REST API, picking the
// destination base by apartment code.
type Client struct {
	baseURL    string
	apiKey     string
	table      string
	bases      map[string]string // apartment code -> base ID
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates an Airtable client for the given bases.
func NewClient(baseURL, apiKey, table string, bases map[string]string, timeout time.Duration) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = "https://api.airtable.com"
	}
	if table == "" {
		table = "Income & Expenses"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: trimmed,
		apiKey:  apiKey,
		table:   table,
		bases:   bases,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		now: time.Now,
	}
}

type recordFields struct {
	Name     string  `json:"Name"`
	Month    string  `json:"Month"`
	Category string  `json:"Category"`
	Expense  float64 `json:"Expense"`
	Notes    string  `json:"Notes"`
	Date     string  `json:"Date"`
}

type record struct {
	Fields recordFields `json:"fields"`
}

type createRequest struct {
	Records  []record `json:"records"`
	Typecast bool     `json:"typecast"`
}

type createResponse struct {
	Records []struct {
		ID string `json:"id"`
	} `json:"records"`
}

// Submit posts one expense record and returns the created record ID, or
// an empty string when the store accepted the request without reporting
// one. The USD amount goes over the wire as a plain JSON number.
func (c *Client) Submit(ctx context.Context, exp models.Expense, amountUSD decimal.Decimal) (string, error) {
	baseID, ok := c.bases[exp.AptCode]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownApt, exp.AptCode)
	}

	now := c.now()
	payload := createRequest{
		Records: []record{{Fields: recordFields{
			Name:     exp.Name,
			Month:    now.Format("January"),
			Category: exp.Category,
			Expense:  amountUSD.InexactFloat64(),
			Notes:    exp.Notes,
			Date:     now.Format("2006-01-02"),
		}}},
		Typecast: true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v0/%s/%s", c.baseURL, baseID, url.PathEscape(c.table))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create record request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to post record: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("airtable returned status %d", resp.StatusCode)
	}

	var created createResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to decode airtable response: %w", err)
	}
	if len(created.Records) == 0 {
		return "", nil
	}
	return created.Records[0].ID, nil
}
