package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"crm_manager/internal/services"
)

// ImportHandler accepts spreadsheet uploads for bulk customer and prospect
// creation.
type ImportHandler struct {
	importer services.ImportService
}

func NewImportHandler(importer services.ImportService) *ImportHandler {
	return &ImportHandler{importer: importer}
}

func (h *ImportHandler) ImportCustomers(c *gin.Context) {
	h.importFile(c, h.importer.ImportCustomers)
}

func (h *ImportHandler) ImportProspects(c *gin.Context) {
	h.importFile(c, h.importer.ImportProspects)
}

func (h *ImportHandler) importFile(c *gin.Context, importFn func(r io.Reader) (services.ImportResult, error)) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	result, err := importFn(file)
	if err != nil {
		// Partial success is not reported per row; the whole file either
		// imports or fails with one message.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
