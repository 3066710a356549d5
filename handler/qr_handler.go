package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shikinora2/VietQR-HDSAISON-sub000/dto"
	"github.com/shikinora2/VietQR-HDSAISON-sub000/utils"
)

// QRHandler exposes VietQR URL building without touching any PDF.
type QRHandler struct {
	builder   utils.QRBuilder
	templates []string
}

// NewQRHandler creates a new QRHandler instance
func NewQRHandler(builder utils.QRBuilder, templates []string) *QRHandler {
	return &QRHandler{
		builder:   builder,
		templates: templates,
	}
}

// BuildURL handles the GET /api/v1/qr/url endpoint
func (h *QRHandler) BuildURL(c *gin.Context) {
	params := utils.QRParams{
		Contract: c.Query("contract"),
		Name:     c.Query("name"),
		Amount:   c.Query("amount"),
	}

	template := c.Query("template")
	if template == "" && len(h.templates) > 0 {
		template = h.templates[0]
	}
	if !h.knownTemplate(template) {
		log.Printf("Error: unknown QR template %q", template)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "QR_URL_FAILED",
			Message: "unknown QR template " + template,
			Code:    http.StatusBadRequest,
		})
		return
	}

	c.JSON(http.StatusOK, dto.QRURLResponse{
		URL:      h.builder.BuildURL(params, template),
		Template: template,
		AddInfo:  h.builder.AddInfo(params),
		Amount:   h.builder.AmountValue(params),
	})
}

func (h *QRHandler) knownTemplate(template string) bool {
	for _, t := range h.templates {
		if t == template {
			return true
		}
	}
	return false
}
