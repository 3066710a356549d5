package client

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/shikinora2/VietQR-HDSAISON-sub000/dto"
	"github.com/shikinora2/VietQR-HDSAISON-sub000/utils"
)

// QRImage is a fetched, sniffed QR raster.
type QRImage struct {
	Bytes    []byte
	Template string
	IsPNG    bool
	IsJPEG   bool
}

// VietQRClient fetches payment QR images from the VietQR image
// service, trying each template of the fallback cascade in order.
type VietQRClient struct {
	httpClient *http.Client
	builder    utils.QRBuilder
	templates  []string
}

func NewVietQRClient(httpClient *http.Client, builder utils.QRBuilder, templates []string) *VietQRClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &VietQRClient{
		httpClient: httpClient,
		builder:    builder,
		templates:  templates,
	}
}

// BuildURL exposes the deterministic URL for one template.
func (c *VietQRClient) BuildURL(p utils.QRParams, template string) string {
	return c.builder.BuildURL(p, template)
}

// Templates returns the fallback cascade in order.
func (c *VietQRClient) Templates() []string {
	return c.templates
}

// FetchQR tries each template in order and returns the first response
// that sniffs as a PNG or JPEG. The image type is decided by magic
// bytes, not by the declared content type. When every template fails,
// dto.ErrQRUnavailable is returned.
func (c *VietQRClient) FetchQR(ctx context.Context, p utils.QRParams) (*QRImage, error) {
	for _, template := range c.templates {
		url := c.builder.BuildURL(p, template)

		data, err := c.get(ctx, url)
		if err != nil {
			log.Printf("QR template %s failed: %v", template, err)
			continue
		}

		isPNG := len(data) >= 4 && data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47
		isJPEG := len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8
		if !isPNG && !isJPEG {
			log.Printf("QR template %s returned a non-image payload", template)
			continue
		}

		c.verifyDecodes(data, template)

		return &QRImage{
			Bytes:    data,
			Template: template,
			IsPNG:    isPNG,
			IsJPEG:   isJPEG,
		}, nil
	}

	return nil, dto.ErrQRUnavailable
}

func (c *VietQRClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &statusError{code: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	return data, nil
}

// verifyDecodes checks that the fetched raster actually contains a
// scannable QR code. A decode failure is logged only; the magic-byte
// check already accepted the image.
func (c *VietQRClient) verifyDecodes(data []byte, template string) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("QR image %s did not decode as an image: %v", template, err)
		return
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		log.Printf("QR bitmap conversion failed for %s: %v", template, err)
		return
	}

	if _, err := qrcode.NewQRCodeReader().Decode(bmp, nil); err != nil {
		log.Printf("Warning: fetched %s image has no decodable QR code: %v", template, err)
	}
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}
