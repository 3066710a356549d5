package service

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shikinora2/VietQR-HDSAISON-sub000/client"
	"github.com/shikinora2/VietQR-HDSAISON-sub000/dto"
	"github.com/stretchr/testify/assert"
)

type fontStubTransport struct {
	fn func(*http.Request) (*http.Response, error)
}

func (s *fontStubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return s.fn(req)
}

func TestRenderNilFields(t *testing.T) {
	// A nil field map fails before any template or font fetch, so a
	// renderer without clients is safe here.
	renderer := NewPdkRenderer(nil)

	out, err := renderer.Render(context.Background(), nil, "", "POS24414")

	assert.Nil(t, out)
	var renderErr *dto.RenderError
	assert.ErrorAs(t, err, &renderErr)
	assert.Contains(t, renderErr.Error(), "missing field map")
}

func TestEnsureFontFailedFetchRetried(t *testing.T) {
	requests := 0
	httpClient := &http.Client{Transport: &fontStubTransport{fn: func(req *http.Request) (*http.Response, error) {
		requests++
		if requests == 1 {
			return &http.Response{
				StatusCode: http.StatusInternalServerError,
				Body:       io.NopCloser(strings.NewReader("")),
				Header:     make(http.Header),
			}, nil
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("not a real ttf")),
			Header:     make(http.Header),
		}, nil
	}}}
	assets := client.NewAssetClient(httpClient, "https://assets.test/font.ttf", nil, "POS24414")
	renderer := NewPdkRenderer(assets)

	_, err := renderer.ensureFont(context.Background())
	assert.Error(t, err)

	// A failed fetch is not memoized: the next call fetches again
	// instead of replaying the first error.
	renderer.ensureFont(context.Background())
	assert.Equal(t, 2, requests)
}

func TestFieldTextTransactionDate(t *testing.T) {
	renderer := NewPdkRenderer(nil)
	renderer.now = func() time.Time {
		return time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)
	}

	text := renderer.fieldText(pdkField{key: pdkTransactionDate}, dto.FieldMap{}, "")
	// Day and month carry no leading zeros.
	assert.Equal(t, "5/3/2025", text)
}

func TestFieldTextCurrency(t *testing.T) {
	renderer := NewPdkRenderer(nil)

	fields := dto.FieldMap{}
	fields.Set(dto.FieldSellPrice, "15,000,000")

	text := renderer.fieldText(pdkField{key: dto.FieldSellPrice, currency: true}, fields, "")
	assert.Equal(t, "15.000.000 VNĐ", text)

	// Currency fields never render empty.
	missing := renderer.fieldText(pdkField{key: dto.FieldLoanAmount, currency: true}, dto.FieldMap{}, "")
	assert.Equal(t, "0 VNĐ", missing)
}

func TestFieldTextProductWithBrand(t *testing.T) {
	renderer := NewPdkRenderer(nil)

	fields := dto.FieldMap{}
	fields.Set(dto.FieldProduct, "TV Samsung")

	assert.Equal(t, "TV Samsung CHỢ LỚN",
		renderer.fieldText(pdkField{key: dto.FieldProduct}, fields, "Chợ Lớn"))

	// Brand alone still renders when the product is missing.
	assert.Equal(t, "CHỢ LỚN",
		renderer.fieldText(pdkField{key: dto.FieldProduct}, dto.FieldMap{}, "Chợ Lớn"))

	// Without a brand the product passes through untouched.
	assert.Equal(t, "TV Samsung",
		renderer.fieldText(pdkField{key: dto.FieldProduct}, fields, ""))
}

func TestPdkCoordinatesCoverContractFields(t *testing.T) {
	keys := make(map[string]bool, len(pdkCoordinates))
	for _, f := range pdkCoordinates {
		keys[f.key] = true
	}

	for _, want := range []string{
		dto.FieldName,
		dto.FieldPhone,
		dto.FieldProduct,
		dto.FieldSellPrice,
		dto.FieldLoanAmount,
		dto.FieldDownPayment,
		dto.FieldLoanTermText,
		dto.FieldContract,
		pdkTransactionDate,
	} {
		assert.True(t, keys[want], "missing coordinate for %s", want)
	}
}
