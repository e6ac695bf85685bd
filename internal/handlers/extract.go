// internal/handlers/extract.go
package handlers

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/krowne/catalog-backend/internal/services"
	"github.com/krowne/catalog-backend/internal/utils"
)

// ExtractHandler fronts the two AI-assisted data-entry helpers. Neither flow
// persists anything; results pre-fill the new-product form.
type ExtractHandler struct {
	scrapeService  *services.ScrapeService
	extractService *services.ExtractService
}

func NewExtractHandler(scrapeService *services.ScrapeService, extractService *services.ExtractService) *ExtractHandler {
	return &ExtractHandler{
		scrapeService:  scrapeService,
		extractService: extractService,
	}
}

// GET /extract/vendor-page?sku=KR-18
func (h *ExtractHandler) ScrapeVendorPage(c *gin.Context) {
	sku := c.Query("sku")
	if sku == "" {
		utils.BadRequestResponse(c, "SKU is required", nil)
		return
	}

	result, err := h.scrapeService.ScrapeProductPage(c.Request.Context(), sku)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

type specSheetRequest struct {
	// A PDF as a data URI: "data:application/pdf;base64,<encoded>".
	Data string `json:"data" validate:"required"`
}

const maxSpecSheetSize = 20 * 1024 * 1024 // 20MB

// POST /extract/spec-sheet
//
// Accepts either a multipart upload under "file" or a JSON body carrying a
// base64 data URI, matching what the product form sends.
func (h *ExtractHandler) ExtractSpecSheet(c *gin.Context) {
	pdf, err := h.readSpecSheet(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	result, err := h.extractService.ExtractSpecSheet(c.Request.Context(), pdf)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

func (h *ExtractHandler) readSpecSheet(c *gin.Context) ([]byte, error) {
	if fileHeader, err := c.FormFile("file"); err == nil {
		if fileHeader.Size > maxSpecSheetSize {
			return nil, fmt.Errorf("spec sheet exceeds the %dMB limit", maxSpecSheetSize/(1024*1024))
		}
		file, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload: %v", err)
		}
		defer file.Close()
		return io.ReadAll(io.LimitReader(file, maxSpecSheetSize))
	}

	var req specSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, fmt.Errorf("expected a 'file' upload or a JSON body with a 'data' URI")
	}

	return decodePDFDataURI(req.Data)
}

func decodePDFDataURI(uri string) ([]byte, error) {
	const prefix = "data:application/pdf;base64,"
	if !strings.HasPrefix(uri, prefix) {
		return nil, fmt.Errorf("data must be a base64 data URI with MIME type application/pdf")
	}

	pdf, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %v", err)
	}
	if len(pdf) > maxSpecSheetSize {
		return nil, fmt.Errorf("spec sheet exceeds the %dMB limit", maxSpecSheetSize/(1024*1024))
	}

	return pdf, nil
}
