package models

import (
	"errors"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrItemNotFound is returned when no item matches the requested id.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidCategory is returned for an empty category name.
	ErrInvalidCategory = errors.New("invalid category name")

	// ErrForeignKeyViolation is returned when an item references a category
	// that does not exist.
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

const pqForeignKeyViolation = pq.ErrorCode("23503")

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqForeignKeyViolation
	}
	return false
}
