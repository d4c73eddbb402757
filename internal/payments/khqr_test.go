package payments

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"

	"storefront/internal/config"
)

func testBakongConfig() config.BakongConfig {
	return config.BakongConfig{
		AccountID:    "merchant@bank",
		MerchantName: "Storefront",
		MerchantCity: "Phnom Penh",
		Currency:     "USD",
	}
}

func TestGenerateKHQRStructure(t *testing.T) {
	qr, err := GenerateKHQR(testBakongConfig(), 12.5, "USD")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(qr.Payload, "000201") {
		t.Fatalf("payload should open with the payload-format TLV, got %q", qr.Payload[:10])
	}
	if !strings.Contains(qr.Payload, "5303840") {
		t.Fatalf("payload missing USD currency code: %q", qr.Payload)
	}
	if !strings.Contains(qr.Payload, "540512.50") {
		t.Fatalf("payload missing amount TLV: %q", qr.Payload)
	}
	if !strings.Contains(qr.Payload, "5802KH") {
		t.Fatalf("payload missing country TLV: %q", qr.Payload)
	}
}

func TestGenerateKHQRCRCVerifies(t *testing.T) {
	qr, err := GenerateKHQR(testBakongConfig(), 5, "USD")
	if err != nil {
		t.Fatal(err)
	}

	// The final four characters are the CRC over everything before them.
	body := qr.Payload[:len(qr.Payload)-4]
	want := qr.Payload[len(qr.Payload)-4:]
	if got := hexUint16(crc16CCITT([]byte(body))); want != got {
		t.Fatalf("crc mismatch: payload carries %s, recomputed %s", want, got)
	}
}

func hexUint16(v uint16) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{
		digits[v>>12&0xF], digits[v>>8&0xF], digits[v>>4&0xF], digits[v&0xF],
	})
}

func TestCRC16KnownVector(t *testing.T) {
	// CRC-16/CCITT-FALSE("123456789") is the standard check value.
	if got := crc16CCITT([]byte("123456789")); got != 0x29B1 {
		t.Fatalf("crc16 check value = %04X, want 29B1", got)
	}
}

func TestGenerateKHQRMD5Matches(t *testing.T) {
	qr, err := GenerateKHQR(testBakongConfig(), 7.77, "USD")
	if err != nil {
		t.Fatal(err)
	}
	sum := md5.Sum([]byte(qr.Payload))
	if qr.MD5 != hex.EncodeToString(sum[:]) {
		t.Fatalf("md5 %s does not match payload", qr.MD5)
	}
}

func TestGenerateKHQRKHRWholeAmount(t *testing.T) {
	qr, err := GenerateKHQR(testBakongConfig(), 4100, "KHR")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(qr.Payload, "5303116") {
		t.Fatalf("payload missing KHR currency code: %q", qr.Payload)
	}
	if !strings.Contains(qr.Payload, "54044100") {
		t.Fatalf("KHR amount should have no decimals: %q", qr.Payload)
	}
}

func TestGenerateKHQRRejectsBadInput(t *testing.T) {
	if _, err := GenerateKHQR(testBakongConfig(), 10, "EUR"); err == nil {
		t.Fatal("expected error for unsupported currency")
	}
	if _, err := GenerateKHQR(testBakongConfig(), 0, "USD"); err == nil {
		t.Fatal("expected error for zero amount")
	}
	cfg := testBakongConfig()
	cfg.AccountID = ""
	if _, err := GenerateKHQR(cfg, 10, "USD"); err == nil {
		t.Fatal("expected error for missing account id")
	}
}
