package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// StripVietnamese removes Vietnamese diacritics: NFD decomposition,
// combining-mark removal, then the đ/Đ substitution (U+0111 does not
// decompose, so it needs an explicit replacement).
func StripVietnamese(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch r {
		case 'đ':
			b.WriteRune('d')
		case 'Đ':
			b.WriteRune('D')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DigitsOnly keeps the decimal digits of s, in order.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// GroupThousands inserts Vietnamese thousands separators (periods)
// into a digits-only string.
func GroupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatCurrency renders a display amount for the PDK form: digits
// regrouped with periods plus the currency unit, "0 VNĐ" when the
// input has no digits at all.
func FormatCurrency(s string) string {
	digits := DigitsOnly(s)
	if digits == "" {
		return "0 VNĐ"
	}
	return GroupThousands(digits) + " VNĐ"
}
