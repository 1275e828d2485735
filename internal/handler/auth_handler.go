package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kdsprimark-ship-it/shipdesk/internal/session"
)

// AuthHandler exposes login, logout, and session inspection.
type AuthHandler struct {
	sessions *session.Manager
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(sessions *session.Manager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	token, err := h.sessions.Login(input.Email, input.Password)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, token)
}

// Logout closes the session and clears the in-memory dataset.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout()
	RespondOK(c, gin.H{"loggedOut": true})
}

// Session reports whether a session is open.
func (h *AuthHandler) Session(c *gin.Context) {
	RespondOK(c, gin.H{"authenticated": h.sessions.IsAuthenticated()})
}
