package utils

import "strings"

// Marker phrases of the current contract template revision. If the
// template wording changes these must be revalidated together with the
// parser cascades.
const (
	markerPaymentGuide   = "HƯỚNG DẪN THANH TOÁN"
	markerContractNumber = "Số Hợp Đồng:"
	markerMonthlyPayment = "Khoản Thanh Toán Hàng Tháng:"
	markerInsurance      = "BẢN YÊU CẦU BẢO HIỂM"
)

// PageLocation is a located page and its text.
type PageLocation struct {
	PageNumber int // 1-based
	PageText   string
}

// LocatePaymentPage scans pages in ascending order for the payment
// instructions page: either the guide heading, or both the contract
// number and monthly payment labels. If no page matches, the last page
// is returned unconditionally.
func LocatePaymentPage(pageTexts []string) PageLocation {
	for i, text := range pageTexts {
		if strings.Contains(text, markerPaymentGuide) ||
			(strings.Contains(text, markerContractNumber) && strings.Contains(text, markerMonthlyPayment)) {
			return PageLocation{PageNumber: i + 1, PageText: text}
		}
	}
	if len(pageTexts) == 0 {
		return PageLocation{}
	}
	last := len(pageTexts)
	return PageLocation{PageNumber: last, PageText: pageTexts[last-1]}
}

// LocateInsurancePage returns the 1-based number of the first page
// carrying the insurance-request heading, or -1 when absent. The
// insurance sub-document needs this page plus the next one, which the
// caller checks against the page count.
func LocateInsurancePage(pageTexts []string) int {
	for i, text := range pageTexts {
		if strings.Contains(text, markerInsurance) {
			return i + 1
		}
	}
	return -1
}
