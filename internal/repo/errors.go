package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates an insert collided with a unique key.
var ErrDuplicate = errors.New("duplicate")

// isUniqueViolation reports whether err is a unique-key collision.
// glebarez/sqlite often returns plain-text errors for UNIQUE violations, so
// the message is checked as well as the translated GORM error.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key value violates unique constraint")
}

// translate maps unique violations to ErrDuplicate and passes other errors
// through unchanged.
func translate(err error) error {
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}
