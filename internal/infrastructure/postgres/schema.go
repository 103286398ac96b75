package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema DDL idempotente del motor de suministros. Los contadores de items llevan el invariante como CHECK.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS organizations (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id               TEXT PRIMARY KEY,
		organization_id  TEXT NOT NULL REFERENCES organizations(id),
		email            TEXT NOT NULL UNIQUE,
		password_hash    TEXT NOT NULL,
		name             TEXT NOT NULL DEFAULT '',
		role             TEXT NOT NULL,
		status           TEXT NOT NULL DEFAULT 'active',
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id               TEXT PRIMARY KEY,
		organization_id  TEXT NOT NULL REFERENCES organizations(id),
		name             TEXT NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id                  TEXT PRIMARY KEY,
		organization_id     TEXT NOT NULL REFERENCES organizations(id),
		category_id         TEXT REFERENCES categories(id),
		name                TEXT NOT NULL,
		serial_number       TEXT NOT NULL UNIQUE,
		image               TEXT NOT NULL DEFAULT '',
		minimum_quantity    BIGINT NOT NULL DEFAULT 0,
		total_quantity      BIGINT NOT NULL DEFAULT 0,
		available_quantity  BIGINT NOT NULL DEFAULT 0,
		purchase_date       TIMESTAMPTZ,
		purchase_source     TEXT NOT NULL DEFAULT '',
		location            TEXT NOT NULL DEFAULT '',
		return_required     BOOLEAN NOT NULL DEFAULT false,
		status              TEXT NOT NULL,
		created_at          TIMESTAMPTZ NOT NULL,
		updated_at          TIMESTAMPTZ NOT NULL,
		CONSTRAINT items_quantities_chk CHECK (available_quantity >= 0 AND available_quantity <= total_quantity)
	)`,
	`CREATE INDEX IF NOT EXISTS items_org_name_idx ON items (organization_id, name) WHERE status = 'ACTIVE'`,
	`CREATE TABLE IF NOT EXISTS item_instances (
		id                 TEXT PRIMARY KEY,
		seq                BIGSERIAL UNIQUE,
		item_id            TEXT NOT NULL REFERENCES items(id),
		instance_code      TEXT NOT NULL UNIQUE,
		disposition        TEXT NOT NULL,
		status             TEXT NOT NULL,
		image              TEXT NOT NULL DEFAULT '',
		final_image        TEXT NOT NULL DEFAULT '',
		borrower_id        TEXT,
		supply_request_id  TEXT,
		created_at         TIMESTAMPTZ NOT NULL,
		updated_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS item_instances_fifo_idx ON item_instances (item_id, disposition, status, created_at, seq)`,
	`CREATE TABLE IF NOT EXISTS supply_requests (
		id               TEXT PRIMARY KEY,
		organization_id  TEXT NOT NULL REFERENCES organizations(id),
		item_id          TEXT NOT NULL REFERENCES items(id),
		requester_id     TEXT NOT NULL REFERENCES users(id),
		serial_number    TEXT NOT NULL,
		product_name     TEXT NOT NULL,
		quantity         BIGINT NOT NULL CHECK (quantity > 0),
		purpose          TEXT NOT NULL DEFAULT '',
		use_date         TIMESTAMPTZ NOT NULL,
		return_date      TIMESTAMPTZ,
		rental           BOOLEAN NOT NULL DEFAULT false,
		re_request       BOOLEAN NOT NULL DEFAULT false,
		status           TEXT NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS supply_requests_org_status_idx ON supply_requests (organization_id, status, created_at)`,
	`CREATE TABLE IF NOT EXISTS supply_returns (
		id                 TEXT PRIMARY KEY,
		supply_request_id  TEXT NOT NULL REFERENCES supply_requests(id),
		requester_id       TEXT NOT NULL REFERENCES users(id),
		organization_id    TEXT NOT NULL REFERENCES organizations(id),
		item_id            TEXT NOT NULL REFERENCES items(id),
		serial_number      TEXT NOT NULL,
		product_name       TEXT NOT NULL,
		quantity           BIGINT NOT NULL CHECK (quantity > 0),
		use_date           TIMESTAMPTZ NOT NULL,
		return_date        TIMESTAMPTZ NOT NULL,
		status             TEXT NOT NULL,
		condition          TEXT NOT NULL,
		image              TEXT NOT NULL DEFAULT '',
		created_at         TIMESTAMPTZ NOT NULL,
		updated_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS supply_returns_open_idx ON supply_returns (supply_request_id) WHERE status <> 'REJECTED'`,
	`CREATE TABLE IF NOT EXISTS inventory_in (
		id                TEXT PRIMARY KEY,
		organization_id   TEXT NOT NULL REFERENCES organizations(id),
		category_id       TEXT REFERENCES categories(id),
		item_id           TEXT NOT NULL REFERENCES items(id),
		supply_return_id  TEXT REFERENCES supply_returns(id),
		quantity          BIGINT NOT NULL CHECK (quantity > 0),
		kind              TEXT NOT NULL,
		image             TEXT NOT NULL DEFAULT '',
		created_by        TEXT NOT NULL DEFAULT '',
		created_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS inventory_in_org_idx ON inventory_in (organization_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS inventory_out (
		id                 TEXT PRIMARY KEY,
		organization_id    TEXT NOT NULL REFERENCES organizations(id),
		category_id        TEXT REFERENCES categories(id),
		item_id            TEXT NOT NULL REFERENCES items(id),
		supply_request_id  TEXT NOT NULL REFERENCES supply_requests(id),
		requester_id       TEXT NOT NULL REFERENCES users(id),
		quantity           BIGINT NOT NULL CHECK (quantity > 0),
		kind               TEXT NOT NULL,
		created_by         TEXT NOT NULL DEFAULT '',
		created_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS inventory_out_org_idx ON inventory_out (organization_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS chase_items (
		id                 TEXT PRIMARY KEY,
		supply_request_id  TEXT NOT NULL REFERENCES supply_requests(id) ON DELETE CASCADE,
		product_name       TEXT NOT NULL,
		quantity           BIGINT NOT NULL,
		issue              TEXT NOT NULL,
		created_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS register_items (
		id               TEXT PRIMARY KEY,
		organization_id  TEXT NOT NULL REFERENCES organizations(id),
		category_id      TEXT REFERENCES categories(id),
		item_id          TEXT NOT NULL REFERENCES items(id),
		inventory_in_id  TEXT NOT NULL REFERENCES inventory_in(id),
		image            TEXT NOT NULL DEFAULT '',
		quantity         BIGINT NOT NULL,
		unit_cost        NUMERIC(14,2) NOT NULL DEFAULT 0,
		total_cost       NUMERIC(14,2) NOT NULL DEFAULT 0,
		purchase_date    TIMESTAMPTZ,
		purchase_source  TEXT NOT NULL DEFAULT '',
		location         TEXT NOT NULL DEFAULT '',
		kind             TEXT NOT NULL,
		status           TEXT NOT NULL,
		created_by       TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate aplica el esquema. Es seguro ejecutarlo en cada arranque.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}
	return nil
}
