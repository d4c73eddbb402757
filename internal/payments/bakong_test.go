package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
)

func newBakongTestServer(t *testing.T, response map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/check_transaction_by_md5" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestBakongClient(baseURL string) *BakongClient {
	return NewBakongClient(config.BakongConfig{
		BaseURL:      baseURL,
		Token:        "test-token",
		AccountID:    "merchant@bank",
		MerchantName: "Storefront",
		MerchantCity: "Phnom Penh",
		Currency:     "USD",
	}, zerolog.Nop())
}

func TestBakongCheckTransactionPaid(t *testing.T) {
	server := newBakongTestServer(t, map[string]any{
		"responseCode": 0,
		"data": map[string]any{
			"hash":     "abc123",
			"amount":   12.5,
			"currency": "USD",
		},
	})
	client := newTestBakongClient(server.URL)

	paid, tx, err := client.CheckTransaction(context.Background(), "d41d8cd98f00b204e9800998ecf8427e")
	require.NoError(t, err)
	require.True(t, paid)
	require.NotNil(t, tx)
	require.Equal(t, "abc123", tx.Hash)
}

func TestBakongCheckTransactionNotYetPaid(t *testing.T) {
	server := newBakongTestServer(t, map[string]any{
		"responseCode":    1,
		"responseMessage": "Transaction could not be found",
	})
	client := newTestBakongClient(server.URL)

	paid, tx, err := client.CheckTransaction(context.Background(), "d41d8cd98f00b204e9800998ecf8427e")
	require.NoError(t, err)
	require.False(t, paid)
	require.Nil(t, tx)
}

func TestBakongCheckTransactionProviderError(t *testing.T) {
	server := newBakongTestServer(t, map[string]any{
		"responseCode":    5,
		"responseMessage": "internal error",
	})
	client := newTestBakongClient(server.URL)

	_, _, err := client.CheckTransaction(context.Background(), "d41d8cd98f00b204e9800998ecf8427e")
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "bakong", perr.Provider)
}
