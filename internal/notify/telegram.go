// Package notify posts owner-facing notifications to the Telegram Bot API.
// Delivery is best effort: callers fire these in a goroutine and a failure
// is logged, never surfaced to the customer request.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"storefront/internal/config"
	"storefront/internal/models"
)

const maxListedItems = 5

type Telegram struct {
	botToken string
	chatID   string
	http     *http.Client
	logger   zerolog.Logger
}

func NewTelegram(cfg config.TelegramConfig, logger zerolog.Logger) *Telegram {
	return &Telegram{
		botToken: strings.TrimSpace(cfg.BotToken),
		chatID:   strings.TrimSpace(cfg.ChatID),
		http:     &http.Client{Timeout: 10 * time.Second},
		logger:   logger.With().Str("component", "telegram").Logger(),
	}
}

// Enabled reports whether a bot token and chat id are configured.
func (t *Telegram) Enabled() bool {
	return t.botToken != "" && t.chatID != ""
}

// OrderPlaced announces a fresh checkout, payment still pending.
func (t *Telegram) OrderPlaced(ctx context.Context, order models.Order, customerName, customerEmail string) {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>New Order Placed</b>\n\n")
	fmt.Fprintf(&b, "Order Number: <code>%s</code>\n", html.EscapeString(order.OrderNumber))
	fmt.Fprintf(&b, "Total Amount: <b>$%.2f</b>\n", order.TotalAmount)
	fmt.Fprintf(&b, "Payment Method: %s\n", html.EscapeString(order.PaymentMethod))
	fmt.Fprintf(&b, "Payment Status: pending\n\n")
	fmt.Fprintf(&b, "Customer: %s (%s)\n\n", html.EscapeString(customerName), html.EscapeString(customerEmail))
	b.WriteString(itemsBlock(order.Items))
	b.WriteString("\nShipping Address:\n")
	b.WriteString(addressBlock(order.ShippingAddress))
	b.WriteString("\n<i>Payment is pending. Order will be processed after payment confirmation.</i>")

	t.send(ctx, b.String())
}

// PaymentReceived announces a completed payment on an order.
func (t *Telegram) PaymentReceived(ctx context.Context, order models.Order, customerName, customerEmail string) {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Payment Received</b>\n\n")
	fmt.Fprintf(&b, "Order Number: <code>%s</code>\n", html.EscapeString(order.OrderNumber))
	fmt.Fprintf(&b, "Amount Paid: <b>$%.2f</b>\n", order.TotalAmount)
	fmt.Fprintf(&b, "Payment Method: %s\n", html.EscapeString(order.PaymentMethod))
	fmt.Fprintf(&b, "Status: <b>PAID</b>\n\n")
	fmt.Fprintf(&b, "Customer: %s (%s)\n\n", html.EscapeString(customerName), html.EscapeString(customerEmail))
	b.WriteString(itemsBlock(order.Items))

	t.send(ctx, b.String())
}

func itemsBlock(items []models.OrderItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Items (%d):\n", len(items))
	for i, item := range items {
		if i == maxListedItems {
			fmt.Fprintf(&b, "  ... and %d more item(s)\n", len(items)-maxListedItems)
			break
		}
		fmt.Fprintf(&b, "  - %s (Qty: %d) - $%.2f\n", html.EscapeString(item.Name), item.Quantity, item.Price)
	}
	return b.String()
}

func addressBlock(addr models.ShippingAddress) string {
	parts := make([]string, 0, 6)
	if name := strings.TrimSpace(addr.FirstName + " " + addr.LastName); name != "" {
		parts = append(parts, name)
	}
	for _, field := range []string{addr.Address, addr.City, addr.Province, addr.PostalCode, addr.Country} {
		if field != "" {
			parts = append(parts, field)
		}
	}
	if len(parts) == 0 {
		return "N/A\n"
	}
	return html.EscapeString(strings.Join(parts, "\n")) + "\n"
}

func (t *Telegram) send(ctx context.Context, text string) {
	if !t.Enabled() {
		t.logger.Debug().Msg("telegram not configured, skipping notification")
		return
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id":    t.chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		t.logger.Error().Err(err).Msg("marshal telegram payload")
		return
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.logger.Error().Err(err).Msg("build telegram request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		t.logger.Error().Err(err).Msg("send telegram notification")
		return
	}
	defer resp.Body.Close()

	var body struct {
		OK          bool   `json:"ok"`
		ErrorCode   int    `json:"error_code"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.logger.Error().Err(err).Msg("decode telegram response")
		return
	}
	if !body.OK {
		t.logger.Error().Int("error_code", body.ErrorCode).Str("description", body.Description).Msg("telegram api error")
		return
	}
	t.logger.Info().Msg("telegram notification sent")
}
