package dto

import (
	"strings"
	"time"
)

// ContractType selects the page-range policy for a contract bundle.
type ContractType string

const (
	ContractTypeDL      ContractType = "DL"
	ContractTypeDefault ContractType = "DEFAULT"
)

// DetectContractType classifies a contract number by its prefix.
// "DL..." contracts (case-insensitive) never get a PDK form.
func DetectContractType(contractNumber string) ContractType {
	id := strings.ToUpper(strings.TrimSpace(contractNumber))
	if strings.HasPrefix(id, "DL") {
		return ContractTypeDL
	}
	return ContractTypeDefault
}

// Field names produced by the contract parser. Every key is present in
// a parsed FieldMap; a nil value means the field was not found.
const (
	FieldContract         = "contract"
	FieldName             = "name"
	FieldAmount           = "amount"
	FieldBirthDate        = "birthDate"
	FieldIDNumber         = "idNumber"
	FieldPhone            = "phone"
	FieldFirstPaymentDate = "firstPaymentDate"
	FieldLastPaymentDate  = "lastPaymentDate"
	FieldDisbursementDate = "disbursementDate"
	FieldLoanTermText     = "loanTermText"
	FieldInsuranceFee     = "insuranceFee"
	FieldProduct          = "product"
	FieldSellPrice        = "sellPrice"
	FieldDownPayment      = "downPayment"
	FieldLoanAmount       = "loanAmount"
)

// FieldNames lists every key the parser emits, in a stable order.
var FieldNames = []string{
	FieldContract,
	FieldName,
	FieldAmount,
	FieldBirthDate,
	FieldIDNumber,
	FieldPhone,
	FieldFirstPaymentDate,
	FieldLastPaymentDate,
	FieldDisbursementDate,
	FieldLoanTermText,
	FieldInsuranceFee,
	FieldProduct,
	FieldSellPrice,
	FieldDownPayment,
	FieldLoanAmount,
}

// FieldMap holds extracted contract fields. Values are display strings
// with the "VNĐ" unit stripped; thousands separators are kept.
type FieldMap map[string]*string

// Get returns the field value or "" when the field is absent.
func (m FieldMap) Get(key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key]; ok && v != nil {
		return *v
	}
	return ""
}

// Set stores a non-empty value; empty strings are stored as nil.
func (m FieldMap) Set(key, value string) {
	if value == "" {
		m[key] = nil
		return
	}
	v := value
	m[key] = &v
}

// FileKey names one sub-document inside a FileSet.
type FileKey string

const (
	FileContract  FileKey = "contract"
	FilePayment   FileKey = "payment"
	FileInsurance FileKey = "insurance"
	FilePdk       FileKey = "pdk"
)

var fileKeyOrder = []FileKey{FileContract, FilePayment, FileInsurance, FilePdk}

// PresentFileKeys lists the sub-documents present in docs, in the
// fixed contract/payment/insurance/pdk order.
func PresentFileKeys(docs map[FileKey][]byte) []FileKey {
	keys := make([]FileKey, 0, len(docs))
	for _, k := range fileKeyOrder {
		if docs[k] != nil {
			keys = append(keys, k)
		}
	}
	return keys
}

// PrintType selects a print-bundle layout.
type PrintType string

const (
	PrintFront PrintType = "front"
	PrintBack  PrintType = "back"
)

// ExtractedText is the raw text of one PDF: the full concatenation and
// one entry per page.
type ExtractedText struct {
	FullText  string
	PageTexts []string
}

// PageCount returns the number of pages seen during extraction.
func (t *ExtractedText) PageCount() int {
	return len(t.PageTexts)
}

// AdvisorInfo is stamped into the contract sub-document footer.
type AdvisorInfo struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Branch string `json:"branch"`
}

// Empty reports whether there is nothing to stamp.
func (a *AdvisorInfo) Empty() bool {
	return a == nil || (a.Name == "" && a.Code == "" && a.Phone == "" && a.Email == "" && a.Branch == "")
}

// FileSet bundles the generated sub-documents of one uploaded contract.
// Insurance and Pdk entries may be absent (nil bytes).
type FileSet struct {
	ID           string
	FileName     string
	ContractType ContractType
	Fields       FieldMap
	Docs         map[FileKey][]byte
	CreatedAt    time.Time
}

// Doc returns a sub-document's bytes, or nil when it was not produced.
func (fs *FileSet) Doc(key FileKey) []byte {
	if fs == nil || fs.Docs == nil {
		return nil
	}
	return fs.Docs[key]
}

// Keys lists the file set's sub-documents in a stable order.
func (fs *FileSet) Keys() []FileKey {
	if fs == nil {
		return nil
	}
	return PresentFileKeys(fs.Docs)
}
