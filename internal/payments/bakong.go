package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"storefront/internal/config"
)

type BakongClient struct {
	cfg    config.BakongConfig
	http   *http.Client
	logger zerolog.Logger
}

func NewBakongClient(cfg config.BakongConfig, logger zerolog.Logger) *BakongClient {
	return &BakongClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger.With().Str("component", "bakong").Logger(),
	}
}

// GenerateQR builds the KHQR payload for the configured merchant account.
func (c *BakongClient) GenerateQR(amount float64, currency string) (KHQR, error) {
	if currency == "" {
		currency = c.cfg.Currency
	}
	return GenerateKHQR(c.cfg, amount, currency)
}

type BakongTransaction struct {
	Hash        string  `json:"hash"`
	FromAccount string  `json:"fromAccountId"`
	ToAccount   string  `json:"toAccountId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	CreatedAt   int64   `json:"createdDateMs"`
}

// CheckTransaction polls the Bakong API for a payment matching the KHQR
// payload's MD5 hash. Found means the customer has paid; not-found is the
// normal answer while the QR is still unpaid and is reported as paid=false,
// not an error.
func (c *BakongClient) CheckTransaction(ctx context.Context, md5Hash string) (bool, *BakongTransaction, error) {
	raw, err := json.Marshal(map[string]string{"md5": md5Hash})
	if err != nil {
		return false, nil, &ProviderError{Provider: "bakong", Op: "check transaction", Err: err}
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/v1/check_transaction_by_md5"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return false, nil, &ProviderError{Provider: "bakong", Op: "check transaction", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, nil, &ProviderError{Provider: "bakong", Op: "check transaction", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil, &ProviderError{Provider: "bakong", Op: "check transaction", Err: httpStatusError(resp)}
	}

	var body struct {
		ResponseCode    int                `json:"responseCode"`
		ResponseMessage string             `json:"responseMessage"`
		Data            *BakongTransaction `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, nil, &ProviderError{Provider: "bakong", Op: "check transaction", Err: err}
	}

	// responseCode 0 with data means the transaction settled.
	if body.ResponseCode == 0 && body.Data != nil {
		c.logger.Info().Str("md5", md5Hash).Float64("amount", body.Data.Amount).Msg("bakong transaction found")
		return true, body.Data, nil
	}
	if body.ResponseCode == 1 {
		return false, nil, nil
	}
	return false, nil, &ProviderError{
		Provider: "bakong",
		Op:       "check transaction",
		Err:      fmt.Errorf("response code %d: %s", body.ResponseCode, body.ResponseMessage),
	}
}
