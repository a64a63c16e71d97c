package handler

import (
	"errors"
	"net/http"

	"github.com/finledger/cashmatch/internal/domain/shared"
	"github.com/finledger/cashmatch/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Accepted sends a 202 accepted response
func (h *BaseHandler) Accepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(data))
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, "NOT_FOUND", message)
}

// DomainError translates a domain error into an HTTP response
func (h *BaseHandler) DomainError(c *gin.Context, err error) {
	if errors.Is(err, shared.ErrNotFound) {
		h.NotFound(c, "Resource not found")
		return
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, statusForCode(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}
	h.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
}

func statusForCode(code string) int {
	switch code {
	case "ALREADY_ATTEMPTED", "NOT_ATTEMPTED":
		return http.StatusConflict
	case "PAYMENT_VOIDED", "PAYMENT_APPLIED", "INVALID_BALANCE", "NO_ELIGIBLE_INVOICES":
		return http.StatusUnprocessableEntity
	case "CONFIG_MISSING":
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
