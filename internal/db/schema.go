package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		contact    TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		role       TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id          TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers (id),
		kind        TEXT NOT NULL CHECK (kind IN ('checking', 'savings')),
		balance     INTEGER NOT NULL CHECK (balance >= 0),
		created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		id            TEXT PRIMARY KEY,
		customer_id   TEXT NOT NULL REFERENCES customers (id),
		principal     INTEGER NOT NULL CHECK (principal > 0),
		interest_rate TEXT NOT NULL,
		status        TEXT NOT NULL CHECK (status IN ('pending', 'approved', 'rejected')),
		approved_by   TEXT REFERENCES employees (id),
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS credit_cards (
		id           TEXT PRIMARY KEY,
		customer_id  TEXT NOT NULL REFERENCES customers (id),
		credit_limit INTEGER NOT NULL CHECK (credit_limit > 0),
		outstanding  INTEGER NOT NULL DEFAULT 0 CHECK (outstanding >= 0 AND outstanding <= credit_limit),
		created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id            TEXT PRIMARY KEY,
		account_id    TEXT REFERENCES accounts (id),
		card_id       TEXT REFERENCES credit_cards (id),
		loan_id       TEXT REFERENCES loans (id),
		type          TEXT NOT NULL,
		amount        INTEGER NOT NULL,
		balance_after INTEGER NOT NULL,
		outcome       TEXT NOT NULL CHECK (outcome IN ('success', 'rejected')),
		reason        TEXT,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// Init creates the schema if absent. Safe to call on every startup.
func Init(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", Classify(err))
		}
	}
	return nil
}
