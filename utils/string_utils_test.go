package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripVietnamese(t *testing.T) {
	assert.Equal(t, "Nguyen Van Anh", StripVietnamese("Nguyễn Văn Ánh"))
	assert.Equal(t, "Do Dinh Dung", StripVietnamese("Đỗ Đình Dũng"))
	assert.Equal(t, "duong pho", StripVietnamese("đường phố"))
	assert.Equal(t, "plain ascii", StripVietnamese("plain ascii"))
	assert.Equal(t, "", StripVietnamese(""))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "1500000", DigitsOnly("1.500.000"))
	assert.Equal(t, "1500000", DigitsOnly("1,500,000 VNĐ"))
	assert.Equal(t, "", DigitsOnly("no digits here"))
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "1.500.000", GroupThousands("1500000"))
	assert.Equal(t, "500", GroupThousands("500"))
	assert.Equal(t, "12.000", GroupThousands("12000"))
	assert.Equal(t, "", GroupThousands(""))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "1.500.000 VNĐ", FormatCurrency("1,500,000"))
	assert.Equal(t, "1.500.000 VNĐ", FormatCurrency("1.500.000 VNĐ"))
	assert.Equal(t, "0 VNĐ", FormatCurrency(""))
	assert.Equal(t, "0 VNĐ", FormatCurrency("abc"))
}
