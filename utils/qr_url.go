package utils

import (
	"fmt"
	"net/url"
	"strings"
)

const vietQRImageBase = "https://img.vietqr.io/image"

// QRParams identifies one payment QR.
type QRParams struct {
	Contract string
	Name     string
	Amount   string
}

// QRBuilder builds VietQR image URLs for a fixed collection account.
// Building is pure: the same inputs always yield the same URL, which
// the fetch cascade relies on when it retries with other templates.
type QRBuilder struct {
	BankCode      string
	AccountNumber string
	AccountName   string
}

// AddInfo composes the transfer memo: contract number plus the
// customer name with diacritics stripped, trimmed and uppercased.
func (b QRBuilder) AddInfo(p QRParams) string {
	memo := strings.TrimSpace(p.Contract + " " + StripVietnamese(p.Name))
	return strings.ToUpper(memo)
}

// AmountValue reduces the amount to digits only, defaulting to "0".
// The value is never parsed or rounded.
func (b QRBuilder) AmountValue(p QRParams) string {
	digits := DigitsOnly(p.Amount)
	if digits == "" {
		return "0"
	}
	return digits
}

// BuildURL returns the VietQR image URL for the given template.
func (b QRBuilder) BuildURL(p QRParams, template string) string {
	q := url.Values{}
	q.Set("accountName", b.AccountName)
	q.Set("amount", b.AmountValue(p))
	q.Set("addInfo", b.AddInfo(p))
	q.Set("template", template)
	return fmt.Sprintf("%s/%s-%s-%s?%s", vietQRImageBase, b.BankCode, b.AccountNumber, template, q.Encode())
}
