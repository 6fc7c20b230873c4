package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open; ALTER TABLE duplicates are tolerated so older databases
// upgrade in place.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		email           TEXT NOT NULL DEFAULT '',
		phone           TEXT NOT NULL DEFAULT '',
		service_address TEXT NOT NULL DEFAULT '',
		billing_address TEXT NOT NULL DEFAULT '',
		notes           TEXT NOT NULL DEFAULT '',
		archived_at     TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS team_members (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		role        TEXT NOT NULL DEFAULT '',
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS estimates (
		id              TEXT PRIMARY KEY,
		document_number TEXT NOT NULL UNIQUE,
		customer_id     TEXT NOT NULL REFERENCES customers(id),
		customer_name   TEXT NOT NULL,
		customer_email  TEXT NOT NULL DEFAULT '',
		customer_phone  TEXT NOT NULL DEFAULT '',
		service_address TEXT NOT NULL DEFAULT '',
		billing_address TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'draft'
		                CHECK(status IN ('draft','sent','viewed','accepted','declined')),
		tax_rate        REAL NOT NULL DEFAULT 0,
		subtotal        REAL NOT NULL DEFAULT 0,
		tax_amount      REAL NOT NULL DEFAULT 0,
		total           REAL NOT NULL DEFAULT 0,
		valid_until     TEXT,
		sent_at         TEXT,
		viewed_at       TEXT,
		accepted_at     TEXT,
		declined_at     TEXT,
		converted_to_work_order_id TEXT,
		converted_to_invoice_id    TEXT,
		deleted_at      TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS work_orders (
		id              TEXT PRIMARY KEY,
		document_number TEXT NOT NULL UNIQUE,
		estimate_id     TEXT REFERENCES estimates(id),
		customer_id     TEXT NOT NULL REFERENCES customers(id),
		customer_name   TEXT NOT NULL,
		customer_email  TEXT NOT NULL DEFAULT '',
		customer_phone  TEXT NOT NULL DEFAULT '',
		service_address TEXT NOT NULL DEFAULT '',
		billing_address TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'draft'
		                CHECK(status IN ('draft','scheduled','in_progress','on_hold','completed','cancelled')),
		tax_rate        REAL NOT NULL DEFAULT 0,
		subtotal        REAL NOT NULL DEFAULT 0,
		tax_amount      REAL NOT NULL DEFAULT 0,
		total           REAL NOT NULL DEFAULT 0,
		scheduled_date  TEXT,
		scheduled_time  TEXT NOT NULL DEFAULT '',
		assigned_to     TEXT NOT NULL DEFAULT '[]',
		priority        TEXT NOT NULL DEFAULT 'normal'
		                CHECK(priority IN ('low','normal','high','urgent')),
		started_at      TEXT,
		completed_at    TEXT,
		cancelled_at    TEXT,
		converted_to_invoice_id TEXT,
		deleted_at      TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS invoices (
		id              TEXT PRIMARY KEY,
		document_number TEXT NOT NULL UNIQUE,
		work_order_id   TEXT REFERENCES work_orders(id),
		estimate_id     TEXT REFERENCES estimates(id),
		customer_id     TEXT NOT NULL REFERENCES customers(id),
		customer_name   TEXT NOT NULL,
		customer_email  TEXT NOT NULL DEFAULT '',
		customer_phone  TEXT NOT NULL DEFAULT '',
		service_address TEXT NOT NULL DEFAULT '',
		billing_address TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'draft'
		                CHECK(status IN ('draft','sent','viewed','cancelled')),
		tax_rate        REAL NOT NULL DEFAULT 0,
		subtotal        REAL NOT NULL DEFAULT 0,
		tax_amount      REAL NOT NULL DEFAULT 0,
		total           REAL NOT NULL DEFAULT 0,
		amount_paid     REAL NOT NULL DEFAULT 0,
		balance         REAL NOT NULL DEFAULT 0,
		payment_terms   TEXT NOT NULL DEFAULT 'Net 30',
		due_date        TEXT,
		sent_at         TEXT,
		viewed_at       TEXT,
		cancelled_at    TEXT,
		deleted_at      TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS line_items (
		id            TEXT PRIMARY KEY,
		document_type TEXT NOT NULL
		              CHECK(document_type IN ('estimate','work_order','invoice')),
		document_id   TEXT NOT NULL,
		item_type     TEXT NOT NULL
		              CHECK(item_type IN ('material','labor','equipment','subcontractor','permit')),
		description   TEXT NOT NULL DEFAULT '',
		quantity      REAL NOT NULL DEFAULT 0,
		rate          REAL NOT NULL DEFAULT 0,
		amount        REAL NOT NULL DEFAULT 0,
		taxable       INTEGER NOT NULL DEFAULT 1,
		sort_order    INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_line_items_document ON line_items(document_type, document_id)`,

	`CREATE TABLE IF NOT EXISTS payments (
		id         TEXT PRIMARY KEY,
		invoice_id TEXT NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
		amount     REAL NOT NULL,
		paid_date  TEXT NOT NULL,
		method     TEXT NOT NULL DEFAULT '',
		reference  TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_payments_invoice ON payments(invoice_id)`,

	`CREATE TABLE IF NOT EXISTS time_entries (
		id            TEXT PRIMARY KEY,
		work_order_id TEXT NOT NULL REFERENCES work_orders(id) ON DELETE CASCADE,
		description   TEXT NOT NULL DEFAULT '',
		started_at    TEXT NOT NULL,
		ended_at      TEXT,
		minutes       INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_time_entries_work_order ON time_entries(work_order_id)`,

	`CREATE TABLE IF NOT EXISTS document_sequences (
		prefix   TEXT PRIMARY KEY,
		next_seq INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_estimates_customer ON estimates(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_work_orders_customer ON work_orders(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_customer ON invoices(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_work_orders_estimate ON work_orders(estimate_id)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_work_order ON invoices(work_order_id)`,
}
