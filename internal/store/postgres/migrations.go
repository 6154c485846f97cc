package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the schema. Statements are idempotent so the server can run
// this at startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id          UUID PRIMARY KEY,
			email       TEXT NOT NULL UNIQUE,
			full_name   TEXT NOT NULL,
			designation TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			sku                TEXT PRIMARY KEY,
			name               TEXT NOT NULL,
			available_quantity BIGINT NOT NULL,
			unit_price         NUMERIC(14,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ledgers (
			id         UUID PRIMARY KEY,
			kind       TEXT NOT NULL,
			discount   NUMERIC(14,2) NOT NULL DEFAULT 0,
			tax        NUMERIC(14,2) NOT NULL DEFAULT 0,
			subtotal   NUMERIC(14,2) NOT NULL DEFAULT 0,
			total      NUMERIC(14,2) NOT NULL DEFAULT 0,
			given_away NUMERIC(14,2) NOT NULL DEFAULT 0,
			finalized  BOOLEAN NOT NULL DEFAULT FALSE,
			created_by TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ledger_lines (
			id                 UUID PRIMARY KEY,
			ledger_id          UUID NOT NULL REFERENCES ledgers(id) ON DELETE CASCADE,
			position           INT NOT NULL,
			sku                TEXT NOT NULL,
			name               TEXT NOT NULL,
			unit_price         NUMERIC(14,2) NOT NULL,
			quantity           BIGINT NOT NULL,
			discount_percent   NUMERIC(7,4) NOT NULL DEFAULT 0,
			line_total         NUMERIC(14,2) NOT NULL,
			status             TEXT NOT NULL,
			reason             TEXT NOT NULL DEFAULT '',
			available_quantity BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_lines_ledger ON ledger_lines (ledger_id, position)`,
		`CREATE TABLE IF NOT EXISTS purchase_requests (
			id            UUID PRIMARY KEY,
			snapshot      JSONB NOT NULL,
			subtotal      NUMERIC(14,2) NOT NULL,
			charges       NUMERIC(14,2) NOT NULL DEFAULT 0,
			status        TEXT NOT NULL,
			customer_name TEXT NOT NULL DEFAULT '',
			submitted_by  TEXT NOT NULL,
			submitted_at  TIMESTAMPTZ NOT NULL,
			unlocked_at   TIMESTAMPTZ,
			paid_at       TIMESTAMPTZ,
			method        TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS obligations (
			id                UUID PRIMARY KEY,
			side              TEXT NOT NULL,
			counterparty_name TEXT NOT NULL,
			original_amount   NUMERIC(14,2) NOT NULL,
			source_request_id TEXT NOT NULL DEFAULT '',
			created_at        TIMESTAMPTZ NOT NULL,
			updated_at        TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settlement_records (
			id            UUID PRIMARY KEY,
			obligation_id UUID NOT NULL REFERENCES obligations(id) ON DELETE CASCADE,
			position      INT NOT NULL,
			amount        NUMERIC(14,2) NOT NULL,
			recorded_at   TIMESTAMPTZ NOT NULL,
			method        TEXT NOT NULL,
			reference     TEXT NOT NULL DEFAULT '',
			recorded_by   TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_settlements_obligation ON settlement_records (obligation_id, position)`,
	}

	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
