package dto

import (
	"errors"
	"mime/multipart"
)

// ProcessRequest carries one upload batch. Files are processed
// strictly sequentially in the order given.
type ProcessRequest struct {
	Files     []*multipart.FileHeader
	POSID     string
	BrandName string
	Advisor   *AdvisorInfo
}

func (r *ProcessRequest) Validate() error {
	if len(r.Files) == 0 {
		return errors.New("no files provided")
	}
	return nil
}

// PrintRequest selects a print-bundle layout for a stored file set.
type PrintRequest struct {
	PrintType string `json:"print_type" binding:"required"`
}

// PdkRequest regenerates the PDK sub-document after a POS change.
type PdkRequest struct {
	POSID     string `json:"pos_id" binding:"required"`
	BrandName string `json:"brand_name"`
}
