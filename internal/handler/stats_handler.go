package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kdsprimark-ship-it/shipdesk/internal/stats"
)

// StatsHandler exposes the dashboard and the depot cutoff report.
type StatsHandler struct {
	stats *stats.Service
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(svc *stats.Service) *StatsHandler {
	return &StatsHandler{stats: svc}
}

// Dashboard returns the three-period dashboard summary.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	RespondOK(c, h.stats.Dashboard(time.Now()))
}

// CutoffInput carries the pasted notice text to scan for depot codes.
type CutoffInput struct {
	Text string `json:"text" binding:"required"`
}

// Cutoff counts registered depot codes in a pasted notice.
func (h *StatsHandler) Cutoff(c *gin.Context) {
	var input CutoffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	RespondOK(c, h.stats.Cutoff(input.Text))
}
