// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are stable, lowercase snake_case strings returned in the `code` field
// of ErrorResponse. Generic codes mirror HTTP status semantics; domain codes
// name failures that the status alone cannot convey. Clients branch on codes,
// never on messages.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "production_unavailable",
//	  "message": "production record not available"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/tbourn/go-personalizer-backend/internal/services"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeShopRequired          = "shop_required"
	ErrCodeCatalogUnavailable    = "catalog_unavailable"
	ErrCodeMalformedOrder        = "malformed_order"
	ErrCodeProductionUnavailable = "production_unavailable"
	ErrCodeInvalidStatus         = "invalid_status"
	ErrCodeUpdateFailed          = "update_failed"
	ErrCodeListFailed            = "list_failed"
)

// failFor maps a service error to a response. fallback is the code used for
// unrecognized (5xx) errors.
func failFor(err error, fallback string) (status int, code, msg string) {
	switch {
	case errors.Is(err, services.ErrShopRequired):
		return http.StatusBadRequest, ErrCodeShopRequired, err.Error()
	case errors.Is(err, services.ErrProductRequired):
		return http.StatusBadRequest, ErrCodeBadRequest, err.Error()
	case errors.Is(err, services.ErrInvalidStatus):
		return http.StatusBadRequest, ErrCodeInvalidStatus, err.Error()
	case errors.Is(err, services.ErrMalformedOrder):
		return http.StatusBadRequest, ErrCodeMalformedOrder, err.Error()
	case errors.Is(err, services.ErrIntakeNotFound):
		return http.StatusNotFound, ErrCodeNotFound, err.Error()
	case errors.Is(err, services.ErrProductionUnavailable):
		return http.StatusConflict, ErrCodeProductionUnavailable, err.Error()
	case errors.Is(err, services.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable, ErrCodeCatalogUnavailable, err.Error()
	default:
		return http.StatusInternalServerError, fallback, err.Error()
	}
}
