// Package utils provides small helpers for request parsing that carry no
// domain knowledge.
package utils

import (
	"errors"
	"strconv"
	"strings"
)

// ErrBadLimit is returned by ParseLimit for values that are not a
// non-negative integer.
var ErrBadLimit = errors.New("limit must be a non-negative integer")

// ParseLimit reads an optional page-size parameter. An empty value yields 0,
// which callers treat as "use the default".
func ParseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, ErrBadLimit
	}
	return n, nil
}
