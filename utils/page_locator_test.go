package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocatePaymentPageGuideHeading(t *testing.T) {
	pages := []string{
		"HỢP ĐỒNG VAY TIÊU DÙNG",
		"HƯỚNG DẪN THANH TOÁN cho khách hàng",
		"phụ lục",
	}

	loc := LocatePaymentPage(pages)
	assert.Equal(t, 2, loc.PageNumber)
	assert.Equal(t, pages[1], loc.PageText)
}

func TestLocatePaymentPageCombinedMarkers(t *testing.T) {
	// No guide heading, but one page carries both the contract number
	// and the monthly payment labels.
	pages := []string{
		"Số Hợp Đồng: ABC12345",
		"Số Hợp Đồng: ABC12345 Khoản Thanh Toán Hàng Tháng: 1.500.000 VNĐ",
	}

	loc := LocatePaymentPage(pages)
	assert.Equal(t, 2, loc.PageNumber)
}

func TestLocatePaymentPageFallsBackToLastPage(t *testing.T) {
	pages := []string{"trang một", "trang hai", "trang ba"}

	loc := LocatePaymentPage(pages)
	assert.Equal(t, 3, loc.PageNumber)
	assert.Equal(t, "trang ba", loc.PageText)
}

func TestLocatePaymentPageEmptyDocument(t *testing.T) {
	loc := LocatePaymentPage(nil)
	assert.Equal(t, 0, loc.PageNumber)
	assert.Equal(t, "", loc.PageText)
}

func TestLocateInsurancePage(t *testing.T) {
	pages := []string{
		"hợp đồng",
		"BẢN YÊU CẦU BẢO HIỂM",
		"BẢN YÊU CẦU BẢO HIỂM tiếp theo",
	}

	// First matching page wins.
	assert.Equal(t, 2, LocateInsurancePage(pages))
}

func TestLocateInsurancePageAbsent(t *testing.T) {
	assert.Equal(t, -1, LocateInsurancePage([]string{"trang một"}))
	assert.Equal(t, -1, LocateInsurancePage(nil))
}
