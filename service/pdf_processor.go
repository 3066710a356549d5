package service

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/shikinora2/VietQR-HDSAISON-sub000/dto"
)

// PDFProcessor extracts plain text from contract PDFs. Text must
// already be embedded in the document; scanned images are not
// supported.
type PDFProcessor interface {
	ExtractText(pdfData []byte) (*dto.ExtractedText, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// ExtractText returns per-page text (runs joined by single spaces, in
// reading order) plus the full-document concatenation with pages
// joined by newlines. No layout reconstruction is attempted.
func (p *pdfProcessor) ExtractText(pdfData []byte) (*dto.ExtractedText, error) {
	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return nil, &dto.ExtractionError{Reason: "not a parseable PDF", Err: err}
	}

	totalPage := r.NumPage()
	pageTexts := make([]string, 0, totalPage)
	var fullText strings.Builder

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			pageTexts = append(pageTexts, "")
			fullText.WriteString("\n")
			continue
		}

		var runs []string
		rows, _ := page.GetTextByRow()
		for _, row := range rows {
			for _, word := range row.Content {
				if word.S != "" {
					runs = append(runs, word.S)
				}
			}
		}

		pageText := strings.Join(runs, " ")
		pageTexts = append(pageTexts, pageText)
		fullText.WriteString(pageText)
		fullText.WriteString("\n")
	}

	return &dto.ExtractedText{
		FullText:  fullText.String(),
		PageTexts: pageTexts,
	}, nil
}
