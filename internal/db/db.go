package db

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

type TxRunner interface {
	WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error
}

type SQLTxRunner struct {
	db *sqlx.DB
}

func NewTxRunner(db *sqlx.DB) SQLTxRunner {
	return SQLTxRunner{db: db}
}

func (r SQLTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	return WithTx(ctx, r.db, fn)
}

// Open opens (creating if necessary) the bank database file. The handle is
// restricted to a single connection; every operation runs serially over it.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", path))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func WithTx(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	const maxAttempts = 5
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		if err := fn(tx); err != nil {
			_ = tx.Rollback()
			if isRetryableSQLiteError(err) && attempt < maxAttempts {
				sleepWithBackoff(attempt)
				continue
			}
			return err
		}
		if err := tx.Commit(); err != nil {
			if isRetryableSQLiteError(err) && attempt < maxAttempts {
				sleepWithBackoff(attempt)
				continue
			}
			return err
		}
		return nil
	}
	return errors.New("transaction retry limit exceeded")
}

func isRetryableSQLiteError(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}

func sleepWithBackoff(attempt int) {
	base := 20 * time.Millisecond
	backoff := time.Duration(attempt*attempt) * base
	jitter := time.Duration(rand.Int63n(int64(10 * time.Millisecond)))
	time.Sleep(backoff + jitter)
}
