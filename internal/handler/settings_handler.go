package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kdsprimark-ship-it/shipdesk/internal/session"
)

// SettingsHandler exposes the settings record and the factory reset.
type SettingsHandler struct {
	sessions *session.Manager
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(sessions *session.Manager) *SettingsHandler {
	return &SettingsHandler{sessions: sessions}
}

// Get returns the current settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	RespondOK(c, h.sessions.Settings())
}

// Update patches the settings record: the body is bound over the current
// settings, so omitted fields keep their values.
func (h *SettingsHandler) Update(c *gin.Context) {
	current := h.sessions.Settings()
	if err := c.ShouldBindJSON(&current); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := h.sessions.UpdateSettings(current); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, current)
}

// Reset performs the factory reset.
func (h *SettingsHandler) Reset(c *gin.Context) {
	if err := h.sessions.ResetApp(); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"reset": true})
}
