package payments

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"storefront/internal/config"
)

// KHQR is an EMVCo merchant-presented QR payload. The string is built from
// tag-length-value fields and sealed with a CRC-16/CCITT-FALSE checksum;
// its MD5 hash is what the Bakong API tracks transactions by.

const (
	khqrTagPayloadFormat   = "00"
	khqrTagInitiation      = "01"
	khqrTagMerchantAccount = "29"
	khqrTagCurrency        = "53"
	khqrTagAmount          = "54"
	khqrTagCountry         = "58"
	khqrTagMerchantName    = "59"
	khqrTagMerchantCity    = "60"
	khqrTagCRC             = "63"

	// 12 = dynamic QR: the amount is baked into the payload.
	khqrInitiationDynamic = "12"

	currencyCodeUSD = "840"
	currencyCodeKHR = "116"
)

type KHQR struct {
	Payload string
	MD5     string
}

// GenerateKHQR builds the payload for the configured Bakong merchant
// account. Currency must be USD or KHR.
func GenerateKHQR(cfg config.BakongConfig, amount float64, currency string) (KHQR, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	var currencyCode string
	switch currency {
	case "USD":
		currencyCode = currencyCodeUSD
	case "KHR":
		currencyCode = currencyCodeKHR
	default:
		return KHQR{}, fmt.Errorf("unsupported KHQR currency %q", currency)
	}
	if amount <= 0 {
		return KHQR{}, fmt.Errorf("amount must be positive")
	}
	if cfg.AccountID == "" {
		return KHQR{}, fmt.Errorf("bakong account id not configured")
	}

	// KHR has no fractional unit.
	var amountValue string
	if currency == "KHR" {
		amountValue = fmt.Sprintf("%.0f", amount)
	} else {
		amountValue = fmt.Sprintf("%.2f", amount)
	}

	var b strings.Builder
	b.WriteString(tlv(khqrTagPayloadFormat, "01"))
	b.WriteString(tlv(khqrTagInitiation, khqrInitiationDynamic))
	b.WriteString(tlv(khqrTagMerchantAccount, tlv("00", cfg.AccountID)))
	b.WriteString(tlv(khqrTagCurrency, currencyCode))
	b.WriteString(tlv(khqrTagAmount, amountValue))
	b.WriteString(tlv(khqrTagCountry, "KH"))
	b.WriteString(tlv(khqrTagMerchantName, truncate(cfg.MerchantName, 25)))
	b.WriteString(tlv(khqrTagMerchantCity, truncate(cfg.MerchantCity, 15)))

	// The CRC covers everything up to and including its own tag+length.
	b.WriteString(khqrTagCRC + "04")
	payload := b.String()
	payload += fmt.Sprintf("%04X", crc16CCITT([]byte(payload)))

	sum := md5.Sum([]byte(payload))
	return KHQR{Payload: payload, MD5: hex.EncodeToString(sum[:])}, nil
}

func tlv(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len(value), value)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// crc16CCITT computes CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF), the
// checksum EMV QR payloads use.
func crc16CCITT(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
