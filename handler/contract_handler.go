package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shikinora2/VietQR-HDSAISON-sub000/dto"
	"github.com/shikinora2/VietQR-HDSAISON-sub000/service"
)

// ContractHandler handles contract processing requests
type ContractHandler struct {
	contractService *service.ContractService
}

// NewContractHandler creates a new ContractHandler instance
func NewContractHandler(contractService *service.ContractService) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
	}
}

// Process handles the POST /api/v1/contracts/process endpoint
func (h *ContractHandler) Process(c *gin.Context) {
	log.Println("Received contract processing request")

	form, err := c.MultipartForm()
	var files []*multipart.FileHeader
	if err == nil && form != nil && len(form.File["files"]) > 0 {
		files = form.File["files"]
	} else {
		f, err := c.FormFile("file")
		if err != nil {
			h.sendError(c, http.StatusBadRequest, "At least one PDF file is required", err)
			return
		}
		files = []*multipart.FileHeader{f}
	}

	req := &dto.ProcessRequest{
		Files:     files,
		POSID:     c.PostForm("pos_id"),
		BrandName: c.PostForm("brand_name"),
	}

	if raw := c.PostForm("advisor"); raw != "" {
		var advisor dto.AdvisorInfo
		if err := json.Unmarshal([]byte(raw), &advisor); err != nil {
			h.sendError(c, http.StatusBadRequest, "Invalid advisor payload", err)
			return
		}
		if !advisor.Empty() {
			req.Advisor = &advisor
		}
	}

	log.Printf("Processing %d contract file(s)", len(files))

	resp, err := h.contractService.ProcessBatch(c.Request.Context(), req)
	if err != nil {
		h.sendError(c, statusFor(err), "Contract processing failed", err)
		return
	}

	log.Println("Contract processing completed successfully")
	c.JSON(http.StatusOK, resp)
}

// Get handles the GET /api/v1/contracts/:id endpoint
func (h *ContractHandler) Get(c *gin.Context) {
	fileSet, err := h.contractService.GetFileSet(c.Param("id"))
	if err != nil {
		h.sendError(c, statusFor(err), "Contract not found", err)
		return
	}

	c.JSON(http.StatusOK, dto.ContractResult{
		ID:           fileSet.ID,
		FileName:     fileSet.FileName,
		ContractType: fileSet.ContractType,
		Fields:       fileSet.Fields,
		Files:        fileSet.Keys(),
	})
}

// DownloadFile handles the GET /api/v1/contracts/:id/files/:key endpoint
func (h *ContractHandler) DownloadFile(c *gin.Context) {
	key, ok := parseFileKey(c.Param("key"))
	if !ok {
		h.sendError(c, http.StatusBadRequest, "Unknown file key", fmt.Errorf("unknown file key %q", c.Param("key")))
		return
	}

	fileSet, err := h.contractService.GetFileSet(c.Param("id"))
	if err != nil {
		h.sendError(c, statusFor(err), "Contract not found", err)
		return
	}

	doc := fileSet.Doc(key)
	if doc == nil {
		h.sendError(c, http.StatusNotFound, "File not available for this contract",
			fmt.Errorf("contract %s has no %s document", fileSet.ID, key))
		return
	}

	fileName := fmt.Sprintf("%s-%s.pdf", fileSet.ID, key)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/pdf", doc)
}

// Print handles the POST /api/v1/contracts/:id/print endpoint
func (h *ContractHandler) Print(c *gin.Context) {
	var req dto.PrintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "print_type is required", err)
		return
	}

	printType, ok := parsePrintType(req.PrintType)
	if !ok {
		h.sendError(c, http.StatusBadRequest, "print_type must be front or back",
			fmt.Errorf("unknown print type %q", req.PrintType))
		return
	}

	bundle, err := h.contractService.Print(c.Param("id"), printType)
	if err != nil {
		h.sendError(c, statusFor(err), "Print bundle assembly failed", err)
		return
	}

	fileName := fmt.Sprintf("%s-%s.pdf", c.Param("id"), printType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/pdf", bundle)
}

// RegeneratePdk handles the POST /api/v1/contracts/:id/pdk endpoint
func (h *ContractHandler) RegeneratePdk(c *gin.Context) {
	var req dto.PdkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "pos_id is required", err)
		return
	}

	fileSet, err := h.contractService.RegeneratePdk(c.Request.Context(), c.Param("id"), req.POSID, req.BrandName)
	if err != nil {
		h.sendError(c, statusFor(err), "PDK regeneration failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.ContractResult{
		ID:           fileSet.ID,
		FileName:     fileSet.FileName,
		ContractType: fileSet.ContractType,
		Fields:       fileSet.Fields,
		Files:        fileSet.Keys(),
	})
}

// sendError sends a structured error response
func (h *ContractHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "CONTRACT_PROCESSING_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	var extractionErr *dto.ExtractionError
	var assemblyErr *dto.AssemblyError
	var renderErr *dto.RenderError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &extractionErr), errors.As(err, &assemblyErr), errors.As(err, &renderErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, dto.ErrQRUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func parseFileKey(s string) (dto.FileKey, bool) {
	switch dto.FileKey(s) {
	case dto.FileContract, dto.FilePayment, dto.FileInsurance, dto.FilePdk:
		return dto.FileKey(s), true
	}
	return "", false
}

func parsePrintType(s string) (dto.PrintType, bool) {
	switch dto.PrintType(s) {
	case dto.PrintFront, dto.PrintBack:
		return dto.PrintType(s), true
	}
	return "", false
}
