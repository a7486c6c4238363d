// Package handlers provides the HTTP handler implementations for the
// dashboard API.
//
// This file defines the standard response utilities used across all
// endpoints: the structured error envelope, consistent JSON
// serialization, and the translation from service-layer errors to HTTP
// statuses. The goal is to guarantee uniform responses for both success
// and failure cases, making the API predictable and machine-friendly.
//
// Conventions:
//   - All error responses return an ErrorResponse with a stable `code`.
//   - `fail()` centralizes error formatting and makes sure 5xx responses
//     are logged with request context.
//   - `ok()` and `noContent()` keep success responses uniform across
//     handlers.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "partner not found"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/dealerhub-backend/internal/http/middleware"
	"github.com/dealerhub/dealerhub-backend/internal/services"
	"github.com/dealerhub/dealerhub-backend/internal/store"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// RequestID echoes the X-Request-ID correlation header so client-side
// errors can be matched with server logs. Code is a stable,
// machine-readable string (see errors.go); Message is safe for display.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// fail aborts the request with a structured error envelope.
//
// Server errors (>=500) are additionally logged through the
// request-scoped logger so every opaque 500 a client sees has a
// correlated log line.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(), for router-level handlers
// (404/405) that live outside this package.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response with the given status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// failService translates a service-layer error into the matching HTTP
// response. Validation sentinels map to 400, missing resources to 404,
// bad credentials to 401, and anything unrecognized — typically a
// database error that already got logged at its origin — to the generic
// fallback status and code supplied by the caller.
func failService(c *gin.Context, err error, fallbackStatus int, fallbackCode string) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid email or password")
	case errors.Is(err, services.ErrInvalidSession):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid or expired session")
	case errors.Is(err, services.ErrPartnerNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrRewardNotFound),
		errors.Is(err, store.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, services.ErrMissingName),
		errors.Is(err, services.ErrInvalidPhone),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidChannel),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidRate),
		errors.Is(err, services.ErrInvalidPoints):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		fail(c, fallbackStatus, fallbackCode, err.Error())
	}
}
