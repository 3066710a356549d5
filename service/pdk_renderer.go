package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/font"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/shikinora2/VietQR-HDSAISON-sub000/client"
	"github.com/shikinora2/VietQR-HDSAISON-sub000/dto"
	"github.com/shikinora2/VietQR-HDSAISON-sub000/utils"
)

// pdkTransactionDate is drawn from the clock, not from the contract.
const pdkTransactionDate = "transactionDate"

// pdkField binds one drawn value to its point on the template, in PDF
// user-space units. The table is locked to the template revisions in
// the config; changing a template means changing this table with it.
type pdkField struct {
	key      string
	x, y     float64
	currency bool
}

var pdkCoordinates = []pdkField{
	{key: dto.FieldName, x: 143.32, y: 616.87},
	{key: dto.FieldPhone, x: 143.32, y: 603.04},
	{key: dto.FieldProduct, x: 117.31, y: 465.25},
	{key: dto.FieldSellPrice, x: 112.88, y: 444.78, currency: true},
	{key: pdkTransactionDate, x: 140.00, y: 425.97},
	{key: dto.FieldLoanAmount, x: 122.84, y: 385.57, currency: true},
	{key: dto.FieldDownPayment, x: 145.53, y: 366.20, currency: true},
	{key: dto.FieldLoanTermText, x: 147.19, y: 345.73},
	{key: dto.FieldContract, x: 146.08, y: 325.81},
}

const pdkFontPoints = 13

// PdkRenderer fills the PDK 0% coupon: it loads the POS template and
// the shared bold TTF, draws each field at its fixed coordinate and
// truncates the result to one page.
type PdkRenderer struct {
	assets *client.AssetClient
	conf   *model.Configuration

	fontMu   sync.Mutex
	fontName string

	now func() time.Time
}

func NewPdkRenderer(assets *client.AssetClient) *PdkRenderer {
	return &PdkRenderer{
		assets: assets,
		conf:   model.NewDefaultConfiguration(),
		now:    time.Now,
	}
}

// Render produces the filled single-page PDK form. It either returns
// a complete document or an error; no partial bytes are ever returned.
func (r *PdkRenderer) Render(ctx context.Context, fields dto.FieldMap, brandName, posID string) ([]byte, error) {
	if fields == nil {
		return nil, &dto.RenderError{Reason: "missing field map"}
	}

	template, err := r.assets.Template(ctx, posID)
	if err != nil {
		return nil, &dto.RenderError{Reason: "template unavailable", Err: err}
	}

	fontName, err := r.ensureFont(ctx)
	if err != nil {
		return nil, &dto.RenderError{Reason: "font unavailable", Err: err}
	}

	doc := template
	for _, f := range pdkCoordinates {
		text := r.fieldText(f, fields, brandName)
		if text == "" {
			continue
		}

		desc := fmt.Sprintf("fontname:%s, points:%d, scale:1 abs, pos:bl, off:%.2f %.2f, fillcol:#000000, rot:0",
			fontName, pdkFontPoints, f.x, f.y)
		wm, err := api.TextWatermark(text, desc, true, false, types.POINTS)
		if err != nil {
			return nil, &dto.RenderError{Reason: "field overlay failed", Err: err}
		}

		var buf bytes.Buffer
		if err := api.AddWatermarks(bytes.NewReader(doc), &buf, []string{"1"}, wm, r.conf); err != nil {
			return nil, &dto.RenderError{Reason: "field overlay failed", Err: err}
		}
		doc = buf.Bytes()
	}

	// The template's later pages are terms boilerplate; the filled
	// form is always exactly one page.
	var out bytes.Buffer
	if err := api.Trim(bytes.NewReader(doc), &out, []string{"1"}, r.conf); err != nil {
		return nil, &dto.RenderError{Reason: "page trim failed", Err: err}
	}
	return out.Bytes(), nil
}

func (r *PdkRenderer) fieldText(f pdkField, fields dto.FieldMap, brandName string) string {
	if f.key == pdkTransactionDate {
		t := r.now()
		return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
	}

	text := fields.Get(f.key)
	if f.currency {
		return utils.FormatCurrency(text)
	}
	if f.key == dto.FieldProduct && brandName != "" {
		upper := strings.ToUpper(brandName)
		if text == "" {
			return upper
		}
		return text + " " + upper
	}
	return text
}

// ensureFont installs the shared TTF as a pdfcpu user font and
// resolves the name it registered under. The name is memoized only
// after a fully successful install; a failed fetch or install is
// returned without being recorded and is retried on the next render,
// same as the asset cache.
func (r *PdkRenderer) ensureFont(ctx context.Context) (string, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if r.fontName != "" {
		return r.fontName, nil
	}

	fontBytes, err := r.assets.Font(ctx)
	if err != nil {
		return "", err
	}

	path := filepath.Join(os.TempDir(), "SVN-Times-New-Roman-Bold.ttf")
	if err := os.WriteFile(path, fontBytes, 0o644); err != nil {
		return "", fmt.Errorf("write font file: %w", err)
	}

	before := make(map[string]bool)
	for _, name := range font.UserFontNames() {
		before[name] = true
	}

	if err := api.InstallFonts([]string{path}); err != nil {
		return "", fmt.Errorf("install font: %w", err)
	}

	var name string
	for _, n := range font.UserFontNames() {
		if !before[n] {
			name = n
			break
		}
	}
	if name == "" {
		// pdfcpu persists user fonts in its config dir, so a previous
		// run on this host leaves the diff empty. The registered name
		// was recorded next to the font file back then.
		name = readRecordedFontName(path)
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	recordFontName(path, name)

	r.fontName = name
	log.Printf("PDK font registered as %q", r.fontName)
	return r.fontName, nil
}

func recordFontName(fontPath, name string) {
	if err := os.WriteFile(fontPath+".name", []byte(name), 0o644); err != nil {
		log.Printf("Could not record font name: %v", err)
	}
}

func readRecordedFontName(fontPath string) string {
	data, err := os.ReadFile(fontPath + ".name")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
