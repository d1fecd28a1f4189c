package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"patrimonio/internal/services"
)

// ExportHandler serves the CSV backup download.
type ExportHandler struct {
	export services.ExportServicer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(export services.ExportServicer) *ExportHandler {
	return &ExportHandler{export: export}
}

// ExportCSV streams the full ledger as a CSV attachment. An empty
// ledger is rejected with EMPTY_EXPORT and no file is produced.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	filename, data, err := h.export.CSV()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}
