package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/application/service"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/dto/response"
)

// BackupHandler handles full-database backup and restore HTTP requests
type BackupHandler struct {
	backupService *service.BackupService
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// Export downloads the whole database as a single JSON bundle
func (h *BackupHandler) Export(c *gin.Context) {
	bundle, err := h.backupService.Export(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(200, bundle)
}

// Import restores a previously exported bundle. Rows that already exist
// are skipped, so re-importing the same file is harmless.
func (h *BackupHandler) Import(c *gin.Context) {
	var bundle service.Bundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		response.BadRequest(c, "Invalid backup file: "+err.Error())
		return
	}

	result, err := h.backupService.Import(c.Request.Context(), &bundle)
	if err != nil {
		response.Error(c, err)
		return
	}

	msg := fmt.Sprintf("Restore finished: %d imported, %d skipped", result.Imported, result.Skipped)
	response.OK(c, msg, result)
}

// ExportEntityCSV downloads one entity table as a spreadsheet-friendly CSV
func (h *BackupHandler) ExportEntityCSV(c *gin.Context) {
	data, filename, err := h.backupService.ExportEntityCSV(c.Request.Context(), c.Param("entity"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "text/csv; charset=utf-8", data)
}
