package config

import (
	"os"
	"strconv"
	"time"
)

// Fixed HD SAISON collection account used by every generated QR.
const (
	DefaultBankCode      = "970437"
	DefaultAccountNumber = "002704070014601"
	DefaultAccountName   = "HD SAISON"
)

// PDK template assets per point of sale. The renderer's coordinate
// table is tied to these exact template revisions.
var defaultTemplateURLs = map[string]string{
	"POS24414": "https://rawcdn.githack.com/shikinora2/VietQR-HDSAISON/e77ada21e72f381e5d8aaa2aecc7b9851fece42d/PDK0IR%20-%20DMCL%20(2).pdf",
	"POS13858": "https://rawcdn.githack.com/shikinora2/VietQR-HDSAISON/e77ada21e72f381e5d8aaa2aecc7b9851fece42d/PDK0IR%20-%20DMCL%2013858.pdf",
}

const defaultFontURL = "https://rawcdn.githack.com/shikinora2/VietQR-HDSAISON/f0381eb2e75227df3ceeb4ff3e8979f11229af35/SVN-Times%20New%20Roman%20Bold.ttf"

type Config struct {
	ServerPort    string
	MaxFileSize   int64
	FetchTimeout  time.Duration
	BankCode      string
	AccountNumber string
	AccountName   string
	QRTemplates   []string
	FontURL       string
	TemplateURLs  map[string]string
	DefaultPOSID  string
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	maxFileSize := int64(50 * 1024 * 1024) // 50 MB
	if v := os.Getenv("MAX_FILE_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxFileSize = n
		}
	}

	fetchTimeout := 30 * time.Second
	if v := os.Getenv("FETCH_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			fetchTimeout = time.Duration(n) * time.Second
		}
	}

	bankCode := os.Getenv("VIETQR_BANK_CODE")
	if bankCode == "" {
		bankCode = DefaultBankCode
	}

	accountNumber := os.Getenv("VIETQR_ACCOUNT_NUMBER")
	if accountNumber == "" {
		accountNumber = DefaultAccountNumber
	}

	accountName := os.Getenv("VIETQR_ACCOUNT_NAME")
	if accountName == "" {
		accountName = DefaultAccountName
	}

	fontURL := os.Getenv("PDK_FONT_URL")
	if fontURL == "" {
		fontURL = defaultFontURL
	}

	defaultPOS := os.Getenv("DEFAULT_POS_ID")
	if defaultPOS == "" {
		defaultPOS = "POS24414"
	}

	return &Config{
		ServerPort:    serverPort,
		MaxFileSize:   maxFileSize,
		FetchTimeout:  fetchTimeout,
		BankCode:      bankCode,
		AccountNumber: accountNumber,
		AccountName:   accountName,
		QRTemplates:   []string{"qr_only.png", "compact.png", "print.png"},
		FontURL:       fontURL,
		TemplateURLs:  defaultTemplateURLs,
		DefaultPOSID:  defaultPOS,
	}
}
