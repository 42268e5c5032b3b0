package db

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrConnection = errors.New("storage connection failed")
	ErrIntegrity  = errors.New("integrity constraint violated")
	ErrQuery      = errors.New("query failed")
)

// Classify maps driver-level failures onto the storage error taxonomy.
// Errors that did not originate in the driver pass through unchanged, so
// business rejections surfaced out of a transaction closure keep their
// identity.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint:
			return fmt.Errorf("%w: %v", ErrIntegrity, err)
		case sqlite3.ErrCantOpen, sqlite3.ErrNotADB:
			return fmt.Errorf("%w: %v", ErrConnection, err)
		default:
			return fmt.Errorf("%w: %v", ErrQuery, err)
		}
	}
	if errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return err
}
