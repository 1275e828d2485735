package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kdsprimark-ship-it/shipdesk/internal/syncer"
)

// SyncHandler exposes the refresh cycle.
type SyncHandler struct {
	coordinator *syncer.Coordinator
}

// NewSyncHandler creates a SyncHandler.
func NewSyncHandler(coordinator *syncer.Coordinator) *SyncHandler {
	return &SyncHandler{coordinator: coordinator}
}

// Status returns the current sync state.
func (h *SyncHandler) Status(c *gin.Context) {
	RespondOK(c, h.coordinator.Status())
}

// Refresh runs a foreground refresh. An overlapping refresh is dropped and
// reported as applied=false; the caller polls Status for the outcome.
func (h *SyncHandler) Refresh(c *gin.Context) {
	applied, err := h.coordinator.Refresh(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"applied": applied, "status": h.coordinator.Status()})
}
