package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kdsprimark-ship-it/shipdesk/internal/backup"
)

// BackupHandler serves backup export, import, and cloud archival. The
// archiver is nil when no bucket is configured; the archive routes then
// report the feature as unavailable.
type BackupHandler struct {
	backups  *backup.Service
	archiver *backup.Archiver
}

// NewBackupHandler creates a BackupHandler.
func NewBackupHandler(backups *backup.Service, archiver *backup.Archiver) *BackupHandler {
	return &BackupHandler{backups: backups, archiver: archiver}
}

// Export streams the full backup document as a JSON download.
func (h *BackupHandler) Export(c *gin.Context) {
	data, err := h.backups.ExportJSON()
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.backups.Filename()))
	c.Data(http.StatusOK, "application/json", data)
}

// Import restores a backup document from the request body.
func (h *BackupHandler) Import(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := h.backups.Import(data); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"imported": true})
}

// Archive uploads the current dataset to cloud storage.
func (h *BackupHandler) Archive(c *gin.Context) {
	if h.archiver == nil {
		RespondError(c, http.StatusNotImplemented, "ARCHIVE_DISABLED", "no backup bucket configured")
		return
	}
	key, err := h.archiver.Archive(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"key": key})
}

// RestoreInput names the archived object to restore.
type RestoreInput struct {
	Key string `json:"key" binding:"required"`
}

// Restore downloads an archived backup and imports it.
func (h *BackupHandler) Restore(c *gin.Context) {
	if h.archiver == nil {
		RespondError(c, http.StatusNotImplemented, "ARCHIVE_DISABLED", "no backup bucket configured")
		return
	}
	var input RestoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := h.archiver.Restore(c.Request.Context(), input.Key); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"restored": input.Key})
}
