package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"voltbay.backend/internal/domain/gateway"
)

const defaultBaseURL = "https://api.stripe.com/v1"

// StripeClient implements gateway.PaymentGateway against the Stripe
// HTTP API using form-encoded requests and secret-key auth.
type StripeClient struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// NewStripeClient creates a Stripe-backed payment gateway client.
func NewStripeClient(secretKey string) *StripeClient {
	return &StripeClient{
		secretKey:  secretKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewStripeClientWithBaseURL is used by tests to point at a stub server.
func NewStripeClientWithBaseURL(secretKey, baseURL string) *StripeClient {
	c := NewStripeClient(secretKey)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type stripeIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

type stripeError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// CreateIntent creates a payment intent. Amounts are sent in the
// currency's minor unit, as the Stripe API expects.
func (c *StripeClient) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) (*gateway.Intent, error) {
	form := url.Values{}
	form.Set("amount", amount.Mul(decimal.NewFromInt(100)).Round(0).String())
	form.Set("currency", strings.ToLower(currency))
	form.Set("automatic_payment_methods[enabled]", "true")
	for k, v := range metadata {
		form.Set("metadata["+k+"]", v)
	}

	raw, err := c.do(ctx, http.MethodPost, "/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	return c.toIntent(raw)
}

// GetIntent fetches the current state of a payment intent.
func (c *StripeClient) GetIntent(ctx context.Context, intentID string) (*gateway.Intent, error) {
	raw, err := c.do(ctx, http.MethodGet, "/payment_intents/"+url.PathEscape(intentID), nil)
	if err != nil {
		return nil, err
	}
	return c.toIntent(raw)
}

func (c *StripeClient) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		var se stripeError
		if err := json.Unmarshal(raw, &se); err == nil && se.Error.Message != "" {
			return nil, fmt.Errorf("gateway error: %s", se.Error.Message)
		}
		return nil, fmt.Errorf("gateway error: status %d", resp.StatusCode)
	}

	return raw, nil
}

func (c *StripeClient) toIntent(raw []byte) (*gateway.Intent, error) {
	var si stripeIntent
	if err := json.Unmarshal(raw, &si); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}

	return &gateway.Intent{
		ID:           si.ID,
		ClientSecret: si.ClientSecret,
		Amount:       decimal.NewFromInt(si.Amount).Div(decimal.NewFromInt(100)),
		Currency:     strings.ToUpper(si.Currency),
		Status:       mapIntentStatus(si.Status),
	}, nil
}

func mapIntentStatus(s string) gateway.IntentStatus {
	switch s {
	case "succeeded":
		return gateway.IntentSucceeded
	case "processing":
		return gateway.IntentProcessing
	case "canceled":
		return gateway.IntentCanceled
	default:
		return gateway.IntentRequiresPayment
	}
}
