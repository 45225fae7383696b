package persistence

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
)

// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
const uniqueViolationCode = "23505"

// isUniqueViolation reports whether the error is a unique constraint violation.
// The SQLite check keeps behaviour consistent for in-memory test databases.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// translateError maps driver-level errors to domain sentinels so callers
// above the persistence layer never import gorm.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case isUniqueViolation(err):
		return shared.ErrAlreadyExists
	default:
		return err
	}
}
