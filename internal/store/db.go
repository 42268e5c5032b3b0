package store

import (
	"context"
	"database/sql"
)

// Record access capabilities. Every store routes reads and writes through
// these, never through a concrete connection, so a test double can stand in
// for the database.

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Getter interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

type Selecter interface {
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

type DB interface {
	Execer
	Getter
	Selecter
}

type Tx interface {
	Execer
	Getter
}
