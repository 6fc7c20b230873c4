package repository

import (
	"context"
	"fmt"

	"github.com/jobledger/jobledger/internal/db"
	"github.com/jobledger/jobledger/internal/domain"
)

// SQLiteSequenceRepo allocates per-prefix document numbers atomically using
// the document_sequences table.
type SQLiteSequenceRepo struct {
	db db.DBTX
}

// NewSQLiteSequenceRepo creates a new SQLiteSequenceRepo.
func NewSQLiteSequenceRepo(conn db.DBTX) *SQLiteSequenceRepo {
	return &SQLiteSequenceRepo{db: conn}
}

// NextNumber returns the next document number for a prefix, formatted as
// PREFIX-NNNN. The counter seeds itself from the highest number already on
// file for the prefix, so databases predating the sequences table keep
// counting where they left off. Allocation is atomic and safe under
// concurrent writers.
func (r *SQLiteSequenceRepo) NextNumber(ctx context.Context, prefix string) (string, error) {
	like := prefix + "-%"
	offset := len(prefix) + 2

	seedQuery := `INSERT OR IGNORE INTO document_sequences (prefix, next_seq)
		SELECT ?, COALESCE(MAX(seq_val), 0) + 1
		FROM (
			SELECT CAST(substr(document_number, ?) AS INTEGER) AS seq_val
			FROM estimates WHERE document_number LIKE ?
			UNION ALL
			SELECT CAST(substr(document_number, ?) AS INTEGER) AS seq_val
			FROM work_orders WHERE document_number LIKE ?
			UNION ALL
			SELECT CAST(substr(document_number, ?) AS INTEGER) AS seq_val
			FROM invoices WHERE document_number LIKE ?
		)`
	if _, err := r.db.ExecContext(ctx, seedQuery,
		prefix, offset, like, offset, like, offset, like); err != nil {
		return "", fmt.Errorf("seeding document sequence for %s: %w", prefix, err)
	}

	var next int
	allocQuery := `UPDATE document_sequences
		SET next_seq = next_seq + 1
		WHERE prefix = ?
		RETURNING next_seq - 1`
	if err := r.db.QueryRowContext(ctx, allocQuery, prefix).Scan(&next); err != nil {
		return "", fmt.Errorf("allocating next number for %s: %w", prefix, err)
	}

	return domain.FormatDocumentNumber(prefix, next), nil
}
