package service

import (
	"testing"

	"github.com/shikinora2/VietQR-HDSAISON-sub000/dto"
	"github.com/stretchr/testify/assert"
)

func TestValidatePDF(t *testing.T) {
	svc := &ContractService{maxFileSize: 16}

	assert.NoError(t, svc.validatePDF([]byte("%PDF-1.7 content")))

	var extractionErr *dto.ExtractionError

	err := svc.validatePDF(nil)
	assert.ErrorAs(t, err, &extractionErr)

	err = svc.validatePDF([]byte("<html>not a pdf</html>"))
	assert.ErrorAs(t, err, &extractionErr)

	err = svc.validatePDF([]byte("%PDF-1.7 far too many bytes for the limit"))
	assert.ErrorAs(t, err, &extractionErr)
}
