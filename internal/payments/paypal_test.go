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

func newPayPalTestServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		user, pass, ok := r.BasicAuth()
		if !ok || user != "client" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "test-token"})
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var body struct {
			Intent        string `json:"intent"`
			PurchaseUnits []struct {
				ReferenceID string `json:"reference_id"`
				Amount      struct {
					CurrencyCode string `json:"currency_code"`
					Value        string `json:"value"`
				} `json:"amount"`
			} `json:"purchase_units"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if body.Intent != "CAPTURE" || len(body.PurchaseUnits) != 1 || body.PurchaseUnits[0].Amount.Value != "19.99" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": "PP-1", "status": "CREATED"})
	})
	mux.HandleFunc("/v2/checkout/orders/PP-1/capture", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "PP-1",
			"status": "COMPLETED",
			"purchase_units": []map[string]any{
				{"payments": map[string]any{"captures": []map[string]any{{"id": "CAP-9", "status": "COMPLETED"}}}},
			},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &paths
}

func newTestPayPalClient(baseURL string) *PayPalClient {
	return NewPayPalClient(config.PayPalConfig{
		BaseURL:  baseURL,
		ClientID: "client",
		Secret:   "secret",
	}, zerolog.Nop())
}

func TestPayPalCreateOrder(t *testing.T) {
	server, paths := newPayPalTestServer(t)
	client := newTestPayPalClient(server.URL)

	order, err := client.CreateOrder(context.Background(), 19.99, "USD", "ORD-1")
	require.NoError(t, err)
	require.Equal(t, "PP-1", order.ID)
	require.Equal(t, "CREATED", order.Status)
	require.Equal(t, []string{"/v1/oauth2/token", "/v2/checkout/orders"}, *paths)
}

func TestPayPalCaptureOrder(t *testing.T) {
	server, _ := newPayPalTestServer(t)
	client := newTestPayPalClient(server.URL)

	capture, err := client.CaptureOrder(context.Background(), "PP-1")
	require.NoError(t, err)
	require.Equal(t, "COMPLETED", capture.Status)
	require.Equal(t, "CAP-9", capture.CaptureID())
}

func TestPayPalBadCredentials(t *testing.T) {
	server, _ := newPayPalTestServer(t)
	client := NewPayPalClient(config.PayPalConfig{
		BaseURL:  server.URL,
		ClientID: "client",
		Secret:   "wrong",
	}, zerolog.Nop())

	_, err := client.CreateOrder(context.Background(), 19.99, "USD", "ORD-1")
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "paypal", perr.Provider)
}
