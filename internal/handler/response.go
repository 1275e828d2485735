package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var remote *domain.RemoteError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "NOT_AUTHENTICATED", "no open session"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrNoMatchingEntry):
		return http.StatusUnprocessableEntity, "NO_MATCHING_ENTRY", "no indian entry matches this invoice number"
	case errors.Is(err, domain.ErrInvalidEntityType):
		return http.StatusBadRequest, "INVALID_ENTITY_TYPE", "invalid business entity type; allowed: SHIPPER, BUYER, DEPOT"
	case errors.Is(err, domain.ErrInvalidCondition):
		return http.StatusBadRequest, "INVALID_CONDITION", "invalid rate condition; allowed: DOC, CTN, TON, TRUCK UNLOAD"
	case errors.Is(err, domain.ErrBackupFormat):
		return http.StatusBadRequest, "BACKUP_FORMAT", "backup document is malformed"
	case errors.As(err, &remote):
		return http.StatusBadGateway, "REMOTE_ERROR", remote.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 && status != http.StatusBadGateway {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
