package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/shikinora2/VietQR-HDSAISON-sub000/dto"
	"github.com/shikinora2/VietQR-HDSAISON-sub000/utils"
	"github.com/stretchr/testify/assert"
)

type stubTransport struct {
	fn func(*http.Request) (*http.Response, error)
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return s.fn(req)
}

func respond(status int, body []byte) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     make(http.Header),
	}
}

var (
	pngBytes  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0}
)

var qrTestBuilder = utils.QRBuilder{
	BankCode:      "970437",
	AccountNumber: "002704070014601",
	AccountName:   "HD SAISON",
}

func TestFetchQRFirstTemplate(t *testing.T) {
	httpClient := &http.Client{Transport: &stubTransport{fn: func(req *http.Request) (*http.Response, error) {
		return respond(http.StatusOK, pngBytes), nil
	}}}
	c := NewVietQRClient(httpClient, qrTestBuilder, []string{"qr_only.png", "compact.png"})

	img, err := c.FetchQR(context.Background(), utils.QRParams{Contract: "HD001"})

	assert.NoError(t, err)
	assert.Equal(t, "qr_only.png", img.Template)
	assert.True(t, img.IsPNG)
	assert.False(t, img.IsJPEG)
}

func TestFetchQRCascadeFallsThrough(t *testing.T) {
	var requested []string
	httpClient := &http.Client{Transport: &stubTransport{fn: func(req *http.Request) (*http.Response, error) {
		requested = append(requested, req.URL.String())
		if strings.Contains(req.URL.Path, "qr_only.png") {
			return respond(http.StatusNotFound, nil), nil
		}
		return respond(http.StatusOK, jpegBytes), nil
	}}}
	c := NewVietQRClient(httpClient, qrTestBuilder, []string{"qr_only.png", "compact.png"})

	img, err := c.FetchQR(context.Background(), utils.QRParams{Contract: "HD001"})

	assert.NoError(t, err)
	assert.Equal(t, "compact.png", img.Template)
	assert.True(t, img.IsJPEG)
	assert.Len(t, requested, 2)
}

func TestFetchQRSkipsNonImagePayload(t *testing.T) {
	httpClient := &http.Client{Transport: &stubTransport{fn: func(req *http.Request) (*http.Response, error) {
		if strings.Contains(req.URL.Path, "qr_only.png") {
			return respond(http.StatusOK, []byte("<html>error page</html>")), nil
		}
		return respond(http.StatusOK, pngBytes), nil
	}}}
	c := NewVietQRClient(httpClient, qrTestBuilder, []string{"qr_only.png", "compact.png"})

	img, err := c.FetchQR(context.Background(), utils.QRParams{})

	assert.NoError(t, err)
	assert.Equal(t, "compact.png", img.Template)
}

func TestFetchQRAllTemplatesFail(t *testing.T) {
	httpClient := &http.Client{Transport: &stubTransport{fn: func(req *http.Request) (*http.Response, error) {
		return respond(http.StatusBadGateway, nil), nil
	}}}
	c := NewVietQRClient(httpClient, qrTestBuilder, []string{"qr_only.png", "compact.png", "print.png"})

	img, err := c.FetchQR(context.Background(), utils.QRParams{})

	assert.Nil(t, img)
	assert.ErrorIs(t, err, dto.ErrQRUnavailable)
}
