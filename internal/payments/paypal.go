// Package payments holds the outbound payment-provider clients. They are
// thin REST wrappers: authentication, request shaping and response decoding,
// with fixed timeouts and no retries. Persisting the results is the caller's
// job.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"storefront/internal/config"
)

// ErrProvider wraps any upstream failure so handlers can map it to 502.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

type PayPalClient struct {
	baseURL  string
	clientID string
	secret   string
	http     *http.Client
	logger   zerolog.Logger
}

func NewPayPalClient(cfg config.PayPalConfig, logger zerolog.Logger) *PayPalClient {
	return &PayPalClient{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		clientID: cfg.ClientID,
		secret:   cfg.Secret,
		http:     &http.Client{Timeout: 15 * time.Second},
		logger:   logger.With().Str("component", "paypal").Logger(),
	}
}

type PayPalOrder struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
}

type PayPalCapture struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

// CaptureID returns the first capture id in the response, if any.
func (c PayPalCapture) CaptureID() string {
	for _, unit := range c.PurchaseUnits {
		for _, capture := range unit.Payments.Captures {
			if capture.ID != "" {
				return capture.ID
			}
		}
	}
	return ""
}

// accessToken fetches a client-credentials token. PayPal tokens live for
// hours but we fetch per call; checkout volume does not justify caching.
func (c *PayPalClient) accessToken(ctx context.Context) (string, error) {
	body := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", body)
	if err != nil {
		return "", &ProviderError{Provider: "paypal", Op: "token", Err: err}
	}
	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: "paypal", Op: "token", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{Provider: "paypal", Op: "token", Err: httpStatusError(resp)}
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", &ProviderError{Provider: "paypal", Op: "token", Err: err}
	}
	if token.AccessToken == "" {
		return "", &ProviderError{Provider: "paypal", Op: "token", Err: fmt.Errorf("empty access token")}
	}
	return token.AccessToken, nil
}

// CreateOrder opens a CAPTURE-intent order for the given amount. The
// storefront order number rides along as the reference id so the two sides
// can be reconciled.
func (c *PayPalClient) CreateOrder(ctx context.Context, amount float64, currency, referenceID string) (PayPalOrder, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return PayPalOrder{}, err
	}

	payload := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{
			{
				"reference_id": referenceID,
				"amount": map[string]string{
					"currency_code": currency,
					"value":         fmt.Sprintf("%.2f", amount),
				},
			},
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return PayPalOrder{}, &ProviderError{Provider: "paypal", Op: "create order", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/checkout/orders", bytes.NewReader(raw))
	if err != nil {
		return PayPalOrder{}, &ProviderError{Provider: "paypal", Op: "create order", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return PayPalOrder{}, &ProviderError{Provider: "paypal", Op: "create order", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return PayPalOrder{}, &ProviderError{Provider: "paypal", Op: "create order", Err: httpStatusError(resp)}
	}

	var order PayPalOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return PayPalOrder{}, &ProviderError{Provider: "paypal", Op: "create order", Err: err}
	}

	c.logger.Info().Str("paypal_order_id", order.ID).Str("reference_id", referenceID).Msg("paypal order created")
	return order, nil
}

func (c *PayPalClient) CaptureOrder(ctx context.Context, orderID string) (PayPalCapture, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return PayPalCapture{}, err
	}

	url := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.baseURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return PayPalCapture{}, &ProviderError{Provider: "paypal", Op: "capture", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return PayPalCapture{}, &ProviderError{Provider: "paypal", Op: "capture", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return PayPalCapture{}, &ProviderError{Provider: "paypal", Op: "capture", Err: httpStatusError(resp)}
	}

	var capture PayPalCapture
	if err := json.NewDecoder(resp.Body).Decode(&capture); err != nil {
		return PayPalCapture{}, &ProviderError{Provider: "paypal", Op: "capture", Err: err}
	}

	c.logger.Info().Str("paypal_order_id", orderID).Str("status", capture.Status).Msg("paypal capture")
	return capture, nil
}

func httpStatusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
