package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/shikinora2/VietQR-HDSAISON-sub000/client"
	"github.com/shikinora2/VietQR-HDSAISON-sub000/dto"
	"github.com/shikinora2/VietQR-HDSAISON-sub000/utils"
)

var pdfMagic = []byte("%PDF-")

// ContractService runs the contract pipeline: validate, extract text,
// locate pages, parse fields, fetch the QR, assemble sub-documents and
// render the PDK form.
type ContractService struct {
	processor    PDFProcessor
	assembler    *Assembler
	renderer     *PdkRenderer
	qrClient     *client.VietQRClient
	store        *FileSetStore
	maxFileSize  int64
	defaultPOSID string
}

func NewContractService(
	processor PDFProcessor,
	assembler *Assembler,
	renderer *PdkRenderer,
	qrClient *client.VietQRClient,
	store *FileSetStore,
	maxFileSize int64,
	defaultPOSID string,
) *ContractService {
	return &ContractService{
		processor:    processor,
		assembler:    assembler,
		renderer:     renderer,
		qrClient:     qrClient,
		store:        store,
		maxFileSize:  maxFileSize,
		defaultPOSID: defaultPOSID,
	}
}

// ProcessBatch handles one upload batch. Files are processed strictly
// sequentially: each file's extraction, QR fetch and assembly complete
// before the next file starts.
func (s *ContractService) ProcessBatch(ctx context.Context, req *dto.ProcessRequest) (*dto.ProcessResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	posID := req.POSID
	if posID == "" {
		posID = s.defaultPOSID
	}

	results := make([]dto.ContractResult, 0, len(req.Files))
	for _, fileHeader := range req.Files {
		f, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file %s: %w", fileHeader.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", fileHeader.Filename, err)
		}

		result, err := s.ProcessContract(ctx, fileHeader.Filename, data, posID, req.BrandName, req.Advisor)
		if err != nil {
			return nil, fmt.Errorf("failed to process file %s: %w", fileHeader.Filename, err)
		}
		results = append(results, *result)
	}

	return &dto.ProcessResponse{
		Results:     results,
		ProcessedAt: time.Now().Format(time.RFC3339),
	}, nil
}

// ProcessContract runs the full pipeline for one uploaded PDF.
func (s *ContractService) ProcessContract(ctx context.Context, fileName string, data []byte, posID, brandName string, advisor *dto.AdvisorInfo) (*dto.ContractResult, error) {
	if err := s.validatePDF(data); err != nil {
		return nil, err
	}

	extracted, err := s.processor.ExtractText(data)
	if err != nil {
		return nil, err
	}

	payment := utils.LocatePaymentPage(extracted.PageTexts)
	insurancePage := utils.LocateInsurancePage(extracted.PageTexts)
	fields := utils.ParseFields(extracted.FullText, payment.PageText)
	contractType := dto.DetectContractType(fields.Get(dto.FieldContract))

	qrParams := utils.QRParams{
		Contract: fields.Get(dto.FieldContract),
		Name:     fields.Get(dto.FieldName),
		Amount:   fields.Get(dto.FieldAmount),
	}

	// A QR that cannot be fetched degrades to a plain payment page.
	var qrBytes []byte
	var qrTemplate string
	qrImage, err := s.qrClient.FetchQR(ctx, qrParams)
	if err != nil {
		log.Printf("QR fetch failed for %s: %v", fileName, err)
	} else {
		qrBytes = qrImage.Bytes
		qrTemplate = qrImage.Template
	}

	docs, err := s.assembler.BuildFileSet(data, contractType, payment.PageNumber, insurancePage, qrBytes, advisor)
	if err != nil {
		return nil, err
	}

	// DL contracts never get a PDK form.
	if contractType != dto.ContractTypeDL {
		pdk, err := s.renderer.Render(ctx, fields, brandName, posID)
		if err != nil {
			log.Printf("PDK render failed for %s: %v", fileName, err)
		} else {
			docs[dto.FilePdk] = pdk
		}
	}

	metadata, err := s.assembler.Metadata(data)
	if err != nil {
		metadata = dto.PdfMetadata{PageCount: extracted.PageCount()}
	}

	fileSet := &dto.FileSet{
		FileName:     fileName,
		ContractType: contractType,
		Fields:       fields,
		Docs:         docs,
	}
	id := s.store.Put(fileSet)

	return &dto.ContractResult{
		ID:            id,
		FileName:      fileName,
		ContractType:  contractType,
		Fields:        fields,
		PaymentPage:   payment.PageNumber,
		InsurancePage: insurancePage,
		Metadata:      metadata,
		QRURL:         s.qrClient.BuildURL(qrParams, s.qrClient.Templates()[0]),
		QRTemplate:    qrTemplate,
		Files:         dto.PresentFileKeys(docs),
	}, nil
}

// GetFileSet returns a stored file set.
func (s *ContractService) GetFileSet(id string) (*dto.FileSet, error) {
	return s.store.Get(id)
}

// Print builds the front or back bundle for a stored file set.
func (s *ContractService) Print(id string, printType dto.PrintType) ([]byte, error) {
	fileSet, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return s.assembler.BuildPrintBundle(fileSet.Docs, printType)
}

// RegeneratePdk re-renders the PDK form after a POS change and swaps
// it into the stored set, releasing the superseded document.
func (s *ContractService) RegeneratePdk(ctx context.Context, id, posID, brandName string) (*dto.FileSet, error) {
	fileSet, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if fileSet.ContractType == dto.ContractTypeDL {
		return nil, fmt.Errorf("contract %s is a DL contract and has no PDK form", id)
	}

	pdk, err := s.renderer.Render(ctx, fileSet.Fields, brandName, posID)
	if err != nil {
		return nil, err
	}
	if err := s.store.ReplacePdk(id, pdk); err != nil {
		return nil, err
	}
	return s.store.Get(id)
}

// validatePDF checks size and magic bytes before any parsing.
func (s *ContractService) validatePDF(data []byte) error {
	if len(data) == 0 {
		return &dto.ExtractionError{Reason: "empty file"}
	}
	if s.maxFileSize > 0 && int64(len(data)) > s.maxFileSize {
		return &dto.ExtractionError{Reason: fmt.Sprintf("file exceeds %d bytes", s.maxFileSize)}
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return &dto.ExtractionError{Reason: "not a PDF file"}
	}
	return nil
}
