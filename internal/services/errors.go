// Package services defines the business logic of the personalization backend:
// catalog resolution, product customization toggles, the order intake
// pipeline and production record lookup. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

var (
	// ErrShopRequired is returned when a call does not identify a shop.
	ErrShopRequired = errors.New("shop is required")

	// ErrCatalogUnavailable wraps persistence failures while resolving or
	// replacing a catalog. No default is substituted.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrMalformedOrder is returned when an order payload is not valid JSON
	// or lacks id, name or line_items. No intake record is created.
	ErrMalformedOrder = errors.New("malformed order payload")

	// ErrNoCandidates is returned by Enqueue when called without any
	// customization candidate.
	ErrNoCandidates = errors.New("order has no customization candidates")

	// ErrIntakeNotFound indicates that the intake record does not exist or
	// belongs to another shop.
	ErrIntakeNotFound = errors.New("intake record not found")

	// ErrProductionUnavailable is returned for intake records that have not
	// completed; their production record is not exposed.
	ErrProductionUnavailable = errors.New("production record not available")

	// ErrInvalidStatus is returned for an unknown status filter.
	ErrInvalidStatus = errors.New("invalid status filter")

	// ErrProductRequired is returned when a toggle call has no product id.
	ErrProductRequired = errors.New("product id is required")
)
