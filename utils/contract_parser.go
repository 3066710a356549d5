package utils

import (
	"regexp"
	"strings"

	"github.com/shikinora2/VietQR-HDSAISON-sub000/dto"
)

// textSource selects which extracted text a pattern runs against.
type textSource int

const (
	sourceFull textSource = iota
	sourcePayment
)

// fieldPattern is one step of a field's fallback cascade.
type fieldPattern struct {
	re     *regexp.Regexp
	source textSource
}

// fieldExtractor is the ordered cascade for one field. Earlier
// patterns always win over later ones; match length never matters.
type fieldExtractor struct {
	field    string
	patterns []fieldPattern
	post     func(string) string
}

func pay(expr string) fieldPattern  { return fieldPattern{regexp.MustCompile(expr), sourcePayment} }
func full(expr string) fieldPattern { return fieldPattern{regexp.MustCompile(expr), sourceFull} }

// The cascades mirror the labels of the current contract template
// revision. A template rewording shows up here and nowhere else.
var fieldExtractors = []fieldExtractor{
	{
		field: dto.FieldContract,
		patterns: []fieldPattern{
			pay(`Số Hợp Đồng:\s*([A-Z0-9]+)`),
			pay(`Số HĐ:\s*([A-Z0-9]+)`),
			full(`Số:\s*([A-Z0-9]+)`),
		},
	},
	{
		field: dto.FieldName,
		patterns: []fieldPattern{
			pay(`Họ tên:\s*(.*?)\s*Thông tin Khoản Vay:`),
			pay(`Họ và tên:\s*(.*?)(?:\s*Số|$)`),
			full(`1\.1\.\s*Họ tên:\s*(.*?)\s*1\.2\.`),
		},
	},
	{
		field: dto.FieldAmount,
		patterns: []fieldPattern{
			pay(`Khoản Thanh Toán Hàng Tháng:\s*([\d,.]+)\s*VNĐ`),
			pay(`Thanh toán hàng tháng:\s*([\d,.]+)\s*VNĐ`),
			pay(`Số tiền thanh toán:\s*([\d,.]+)\s*VNĐ`),
			pay(`Monthly Payment:\s*([\d,.]+)\s*VNĐ`),
		},
	},
	{
		field: dto.FieldBirthDate,
		patterns: []fieldPattern{
			full(`1\.2\.\s*Ngày sinh:\s*([0-9/]+)`),
			full(`Ngày sinh:\s*([0-9/]+)`),
		},
	},
	{
		field: dto.FieldIDNumber,
		patterns: []fieldPattern{
			full(`1\.4\.\s*Số CCCD/Thẻ căn cước/Giấy tờ khác:\s*([0-9]+)`),
			full(`1\.4\.\s*Số CCCD:\s*([0-9]+)`),
			full(`CMND/CCCD:\s*([0-9]+)`),
		},
	},
	{
		field: dto.FieldPhone,
		patterns: []fieldPattern{
			full(`1\.7\.\s*Điện thoại di động:\s*(\d+)`),
			full(`1\.6\.\s*Điện thoại:\s*(\d+)`),
			full(`Điện thoại:\s*(\d+)`),
		},
	},
	{
		field: dto.FieldFirstPaymentDate,
		patterns: []fieldPattern{
			full(`5\.6\.\s*Ngày Thanh Toán Đầu Tiên:\s*([0-9/]+)`),
			full(`Ngày Thanh Toán Đầu Tiên:\s*([0-9/]+)`),
		},
	},
	{
		field: dto.FieldLastPaymentDate,
		patterns: []fieldPattern{
			full(`5\.8\.\s*Ngày Thanh Toán Cuối Cùng:\s*([0-9/]+)`),
			full(`Ngày Thanh Toán Cuối Cùng:\s*([0-9/]+)`),
		},
	},
	{
		field: dto.FieldDisbursementDate,
		patterns: []fieldPattern{
			full(`2\.6\.\s*Ngày giải ngân dự kiến:\s*([0-9/]+)`),
			full(`Ngày giải ngân:\s*([0-9/]+)`),
		},
	},
	{
		field: dto.FieldLoanTermText,
		patterns: []fieldPattern{
			full(`2\.5\. Thời Hạn Vay:\s*(.*?)\s*3\.`),
		},
	},
	{
		field: dto.FieldInsuranceFee,
		patterns: []fieldPattern{
			full(`4\.3\.\s*Phí bảo hiểm:\s*([0-9,.]+)\s*VNĐ/tháng`),
			full(`Phí bảo hiểm:\s*([0-9,.]+)\s*VNĐ/tháng`),
		},
	},
	{
		field: dto.FieldProduct,
		patterns: []fieldPattern{
			full(`5\.9\.1\. Sản Phẩm Được Tài Trợ 1:\s*(.*?)(?:\s*Tổng Giá Bán|\s*5\.9\.2\.)`),
			full(`Sản phẩm:\s*(.*?)(?:\s*Giá|\s*Tổng|$)`),
			full(`Product:\s*(.*?)(?:\s*Total|$)`),
		},
		post: cleanProductName,
	},
	{
		field: dto.FieldSellPrice,
		patterns: []fieldPattern{
			full(`2\.2\. Tổng giá trị Sản Phẩm Được Tài Trợ:\s*([0-9,.]+(?:\s*VNĐ)?)`),
			full(`Tổng giá trị:\s*([0-9,.]+(?:\s*VNĐ)?)`),
			full(`Giá bán:\s*([0-9,.]+(?:\s*VNĐ)?)`),
		},
	},
	{
		field: dto.FieldDownPayment,
		patterns: []fieldPattern{
			full(`2\.3\. Khoản Tiền Mặt Trả Trước:\s*([0-9,.]+(?:\s*VNĐ)?)`),
			full(`Trả trước:\s*([0-9,.]+(?:\s*VNĐ)?)`),
			full(`Down payment:\s*([0-9,.]+(?:\s*VNĐ)?)`),
		},
	},
	{
		field: dto.FieldLoanAmount,
		patterns: []fieldPattern{
			full(`2\.4\. Số tiền đề nghị vay:\s*([0-9,.]+(?:\s*VNĐ)?)`),
			full(`Số tiền vay:\s*([0-9,.]+(?:\s*VNĐ)?)`),
			full(`Loan amount:\s*([0-9,.]+(?:\s*VNĐ)?)`),
		},
	},
}

// ordinalPrefixRe strips the "1-" style ordinal ahead of each product
// item ("1-TV Samsung, 2-Loa JBL" -> "TV Samsung, Loa JBL").
var ordinalPrefixRe = regexp.MustCompile(`^\d+-`)

func cleanProductName(raw string) string {
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = ordinalPrefixRe.ReplaceAllString(strings.TrimSpace(p), "")
	}
	return strings.Join(parts, ", ")
}

// cleanValue strips the currency unit and surrounding whitespace from
// a raw capture. Thousands separators are left intact; numeric parsing
// belongs to the consumer.
func cleanValue(raw string) string {
	return strings.TrimSpace(strings.Replace(raw, "VNĐ", "", 1))
}

// ParseFields runs every field cascade over the extracted text.
// Payment-page patterns see the payment page text, the rest see the
// full document. Each field resolves to the first pattern with a
// non-empty capture; fields with no match stay nil. ParseFields never
// fails, whatever the input looks like.
func ParseFields(fullText, paymentPageText string) dto.FieldMap {
	fields := make(dto.FieldMap, len(dto.FieldNames))
	for _, name := range dto.FieldNames {
		fields[name] = nil
	}

	for _, ex := range fieldExtractors {
		for _, fp := range ex.patterns {
			text := fullText
			if fp.source == sourcePayment {
				text = paymentPageText
			}
			m := fp.re.FindStringSubmatch(text)
			if len(m) < 2 {
				continue
			}
			value := cleanValue(m[1])
			if value == "" {
				continue
			}
			if ex.post != nil {
				value = ex.post(value)
			}
			fields.Set(ex.field, value)
			break
		}
	}

	return fields
}
