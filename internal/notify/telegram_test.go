package notify

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"storefront/internal/config"
	"storefront/internal/models"
)

func TestItemsBlockTruncatesAtFive(t *testing.T) {
	items := make([]models.OrderItem, 8)
	for i := range items {
		items[i] = models.OrderItem{Name: fmt.Sprintf("Product %d", i+1), Quantity: 1, Price: 10}
	}

	block := itemsBlock(items)
	if !strings.Contains(block, "Items (8):") {
		t.Fatalf("missing header: %q", block)
	}
	if !strings.Contains(block, "Product 5") {
		t.Fatalf("fifth item should be listed: %q", block)
	}
	if strings.Contains(block, "Product 6") {
		t.Fatalf("sixth item should be cut: %q", block)
	}
	if !strings.Contains(block, "... and 3 more item(s)") {
		t.Fatalf("missing truncation line: %q", block)
	}
}

func TestItemsBlockShortList(t *testing.T) {
	block := itemsBlock([]models.OrderItem{{Name: "Single", Quantity: 2, Price: 3.5}})
	if strings.Contains(block, "more item") {
		t.Fatalf("short list should not truncate: %q", block)
	}
	if !strings.Contains(block, "Single (Qty: 2) - $3.50") {
		t.Fatalf("item line wrong: %q", block)
	}
}

func TestItemsBlockEscapesHTML(t *testing.T) {
	block := itemsBlock([]models.OrderItem{{Name: "<b>Sneaky</b>", Quantity: 1}})
	if strings.Contains(block, "<b>Sneaky</b>") {
		t.Fatalf("item name not escaped: %q", block)
	}
}

func TestAddressBlock(t *testing.T) {
	addr := models.ShippingAddress{
		FirstName:  "Sok",
		LastName:   "Dara",
		Address:    "12 Street 271",
		City:       "Phnom Penh",
		Country:    "KH",
		PostalCode: "12000",
	}

	block := addressBlock(addr)
	lines := strings.Split(strings.TrimSpace(block), "\n")
	if lines[0] != "Sok Dara" {
		t.Fatalf("first line = %q", lines[0])
	}
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), block)
	}
}

func TestAddressBlockEmpty(t *testing.T) {
	if got := addressBlock(models.ShippingAddress{}); got != "N/A\n" {
		t.Fatalf("empty address = %q", got)
	}
}

func TestTelegramDisabledWithoutConfig(t *testing.T) {
	tg := NewTelegram(config.TelegramConfig{}, zerolog.Nop())
	if tg.Enabled() {
		t.Fatal("unconfigured client should be disabled")
	}

	tg = NewTelegram(config.TelegramConfig{BotToken: "t", ChatID: "c"}, zerolog.Nop())
	if !tg.Enabled() {
		t.Fatal("configured client should be enabled")
	}
}
