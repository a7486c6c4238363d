// HTTP-layer error codes used across all API endpoints.
//
// These symbolic constants are mapped to HTTP responses via the fail()
// helper in this package and give clients a stable, machine-readable
// error taxonomy alongside the human-readable messages.
//
// Conventions:
//   - Codes are lowercase snake_case.
//   - Generic codes (bad_request, unauthorized, not_found) mirror common
//     HTTP status semantics.
//   - Operation codes (query_failed, write_failed) mark business
//     operations that failed for reasons a status alone cannot convey,
//     almost always a datastore error.
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeNotFound     = "not_found"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeQueryFailed        = "query_failed"
	ErrCodeWriteFailed        = "write_failed"
	ErrCodeStreamFailed       = "stream_failed"
	ErrCodeMethodNotAllowed   = "method_not_allowed"
)
