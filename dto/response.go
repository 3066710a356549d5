package dto

// ErrorResponse is the JSON body for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// PdfMetadata summarizes the uploaded document.
type PdfMetadata struct {
	PageCount int    `json:"page_count"`
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	Producer  string `json:"producer,omitempty"`
}

// ContractResult is the per-file outcome of a process request.
type ContractResult struct {
	ID            string       `json:"id"`
	FileName      string       `json:"file_name"`
	ContractType  ContractType `json:"contract_type"`
	Fields        FieldMap     `json:"fields"`
	PaymentPage   int          `json:"payment_page"`
	InsurancePage int          `json:"insurance_page"`
	Metadata      PdfMetadata  `json:"metadata"`
	QRURL         string       `json:"qr_url,omitempty"`
	QRTemplate    string       `json:"qr_template,omitempty"`
	Files         []FileKey    `json:"files"`
}

// ProcessResponse wraps an upload batch.
type ProcessResponse struct {
	Results     []ContractResult `json:"results"`
	ProcessedAt string           `json:"processed_at"`
}

// QRURLResponse returns a deterministic VietQR image URL.
type QRURLResponse struct {
	URL      string `json:"url"`
	Template string `json:"template"`
	AddInfo  string `json:"add_info"`
	Amount   string `json:"amount"`
}
