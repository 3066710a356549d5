package service

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/shikinora2/VietQR-HDSAISON-sub000/dto"
	"github.com/shikinora2/VietQR-HDSAISON-sub000/utils"
)

// qrStampDesc anchors the QR at 20% of its native size, 65pt in from
// the top-right corner of the payment page.
const qrStampDesc = "pos:tr, off:-65 -65, scale:0.2 abs, rot:0"

// advisorStampDesc draws the advisor footer at the bottom-left margin.
const advisorStampDesc = "fontname:Helvetica, points:9, scale:1 abs, pos:bl, off:50 30, fillcol:#4d4d4d, rot:0"

// Assembler copies fixed page selections between PDF documents and
// stamps images/text onto them.
type Assembler struct {
	conf *model.Configuration
}

func NewAssembler() *Assembler {
	return &Assembler{conf: model.NewDefaultConfiguration()}
}

// PageCount returns the number of pages in a PDF buffer.
func (a *Assembler) PageCount(pdfData []byte) (int, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdfData), a.conf)
	if err != nil {
		return 0, fmt.Errorf("pdfcpu read: %w", err)
	}
	return ctx.PageCount, nil
}

// Metadata reads basic document info for the process response.
func (a *Assembler) Metadata(pdfData []byte) (dto.PdfMetadata, error) {
	n, err := a.PageCount(pdfData)
	if err != nil {
		return dto.PdfMetadata{}, err
	}
	return dto.PdfMetadata{PageCount: n}, nil
}

// ExtractPages copies the given 0-based pages of src, in order, into a
// new document. Indices beyond the source page count are dropped.
func (a *Assembler) ExtractPages(src []byte, indices []int) ([]byte, error) {
	n, err := a.PageCount(src)
	if err != nil {
		return nil, &dto.AssemblyError{Reason: "unreadable source document", Err: err}
	}

	valid := filterPageIndices(indices, n)
	if len(valid) == 0 {
		return nil, &dto.AssemblyError{Reason: "no valid pages to copy"}
	}

	pages := make([]string, len(valid))
	for i, idx := range valid {
		pages[i] = strconv.Itoa(idx + 1)
	}

	var buf bytes.Buffer
	if err := api.Collect(bytes.NewReader(src), &buf, pages, a.conf); err != nil {
		return nil, &dto.AssemblyError{Reason: "page copy failed", Err: err}
	}
	return buf.Bytes(), nil
}

// StampQRImage draws a fetched QR raster onto page 1 of doc.
func (a *Assembler) StampQRImage(doc, imageBytes []byte) ([]byte, error) {
	wm, err := api.ImageWatermarkForReader(bytes.NewReader(imageBytes), qrStampDesc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("qr watermark: %w", err)
	}

	var buf bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(doc), &buf, []string{"1"}, wm, a.conf); err != nil {
		return nil, fmt.Errorf("qr stamp: %w", err)
	}
	return buf.Bytes(), nil
}

// StampAdvisorFooter writes the advisor contact block onto every page.
// Diacritics are stripped because the footer uses a built-in font.
func (a *Assembler) StampAdvisorFooter(doc []byte, advisor *dto.AdvisorInfo) ([]byte, error) {
	lines := advisorLines(advisor)
	if len(lines) == 0 {
		return doc, nil
	}

	wm, err := api.TextWatermark(strings.Join(lines, "\n"), advisorStampDesc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("advisor watermark: %w", err)
	}

	var buf bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(doc), &buf, nil, wm, a.conf); err != nil {
		return nil, fmt.Errorf("advisor stamp: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildFileSet generates the per-contract sub-documents: the contract
// pages for the detected type, the single payment page with the QR
// stamped on, and the two insurance pages when the marker was found
// and both pages exist. The PDK form is rendered separately.
func (a *Assembler) BuildFileSet(original []byte, ct dto.ContractType, paymentPage, insurancePage int, qrImage []byte, advisor *dto.AdvisorInfo) (map[dto.FileKey][]byte, error) {
	total, err := a.PageCount(original)
	if err != nil {
		return nil, &dto.AssemblyError{Reason: "unreadable contract document", Err: err}
	}

	docs := make(map[dto.FileKey][]byte)

	contractDoc, err := a.ExtractPages(original, contractPagePlan(ct))
	if err != nil {
		return nil, err
	}
	if !advisor.Empty() {
		stamped, err := a.StampAdvisorFooter(contractDoc, advisor)
		if err != nil {
			log.Printf("Advisor footer stamp failed: %v", err)
		} else {
			contractDoc = stamped
		}
	}
	docs[dto.FileContract] = contractDoc

	if paymentPage >= 1 && paymentPage <= total {
		paymentDoc, err := a.ExtractPages(original, []int{paymentPage - 1})
		if err != nil {
			return nil, err
		}
		if qrImage != nil {
			stamped, err := a.StampQRImage(paymentDoc, qrImage)
			if err != nil {
				log.Printf("QR stamp failed, keeping payment page without QR: %v", err)
			} else {
				paymentDoc = stamped
			}
		}
		docs[dto.FilePayment] = paymentDoc
	}

	if insurancePage > 0 && insurancePage+1 <= total {
		insuranceDoc, err := a.ExtractPages(original, []int{insurancePage - 1, insurancePage})
		if err != nil {
			return nil, err
		}
		docs[dto.FileInsurance] = insuranceDoc
	}

	return docs, nil
}

// BuildPrintBundle concatenates the fixed page selection for a print
// type. Missing sub-documents and out-of-range pages contribute
// nothing; the bundle fails only when it would come out empty.
func (a *Assembler) BuildPrintBundle(docs map[dto.FileKey][]byte, pt dto.PrintType) ([]byte, error) {
	plan, ok := printPlans[pt]
	if !ok {
		return nil, fmt.Errorf("invalid print type: %s", pt)
	}

	pageCounts := make(map[dto.FileKey]int)
	var parts []io.ReadSeeker

	for _, item := range plan {
		src := docs[item.Doc]
		if src == nil {
			continue
		}

		n, counted := pageCounts[item.Doc]
		if !counted {
			var err error
			n, err = a.PageCount(src)
			if err != nil {
				log.Printf("Skipping unreadable %s sub-document: %v", item.Doc, err)
				pageCounts[item.Doc] = 0
				continue
			}
			pageCounts[item.Doc] = n
		}
		if item.Page < 0 || item.Page >= n {
			continue
		}

		var buf bytes.Buffer
		if err := api.Trim(bytes.NewReader(src), &buf, []string{strconv.Itoa(item.Page + 1)}, a.conf); err != nil {
			log.Printf("Skipping page %d of %s: %v", item.Page+1, item.Doc, err)
			continue
		}
		parts = append(parts, bytes.NewReader(buf.Bytes()))
	}

	if len(parts) == 0 {
		return nil, &dto.AssemblyError{Reason: "no valid pages to print"}
	}

	var out bytes.Buffer
	if err := api.MergeRaw(parts, &out, false, a.conf); err != nil {
		return nil, &dto.AssemblyError{Reason: "merge failed", Err: err}
	}
	return out.Bytes(), nil
}

func advisorLines(advisor *dto.AdvisorInfo) []string {
	if advisor == nil {
		return nil
	}
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, label+": "+utils.StripVietnamese(value))
		}
	}
	add("Tu van vien", advisor.Name)
	add("Ma TVBH", advisor.Code)
	add("SDT", advisor.Phone)
	add("Email", advisor.Email)
	add("Chi nhanh", advisor.Branch)
	return lines
}
