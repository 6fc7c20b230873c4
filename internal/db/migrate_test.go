package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesAllTables(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	expected := []string{
		"customers", "team_members",
		"estimates", "work_orders", "invoices",
		"line_items", "payments", "time_entries",
		"document_sequences",
	}

	for _, table := range expected {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	// Re-running the full migration list must not fail.
	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))
}

func TestMigrate_StatusChecksEnforced(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO customers (id, name, created_at, updated_at)
		VALUES ('c1', 'Test', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = database.Exec(`INSERT INTO estimates
		(id, document_number, customer_id, customer_name, status, created_at, updated_at)
		VALUES ('e1', 'EST-0001', 'c1', 'Test', 'approved', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "estimates must reject statuses outside the state machine")

	_, err = database.Exec(`INSERT INTO invoices
		(id, document_number, customer_id, customer_name, status, created_at, updated_at)
		VALUES ('i1', 'INV-0001', 'c1', 'Test', 'paid', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "derived invoice statuses are never stored")
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	uow := NewSQLiteUnitOfWork(database)
	sentinel := assert.AnError

	err = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		_, execErr := tx.ExecContext(ctx, `INSERT INTO customers (id, name, created_at, updated_at)
			VALUES ('c1', 'Rolled Back', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
		require.NoError(t, execErr)
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM customers`).Scan(&count))
	assert.Equal(t, 0, count, "failed transaction must leave no rows behind")
}
