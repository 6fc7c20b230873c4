package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jobledger/jobledger/internal/db"
	"github.com/jobledger/jobledger/internal/domain"
)

// estimateColumns is the canonical SELECT column list for estimates.
const estimateColumns = `id, document_number, customer_id, customer_name, customer_email, customer_phone,
		service_address, billing_address, status, tax_rate, subtotal, tax_amount, total,
		valid_until, sent_at, viewed_at, accepted_at, declined_at,
		converted_to_work_order_id, converted_to_invoice_id, deleted_at, created_at, updated_at`

// SQLiteEstimateRepo implements EstimateRepo on SQLite.
type SQLiteEstimateRepo struct {
	db db.DBTX
}

// NewSQLiteEstimateRepo creates a new SQLiteEstimateRepo.
func NewSQLiteEstimateRepo(conn db.DBTX) *SQLiteEstimateRepo {
	return &SQLiteEstimateRepo{db: conn}
}

func (r *SQLiteEstimateRepo) Create(ctx context.Context, e *domain.Estimate) error {
	query := `INSERT INTO estimates (` + estimateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.DocumentNumber,
		e.Customer.CustomerID, e.Customer.Name, e.Customer.Email, e.Customer.Phone,
		e.ServiceAddress, e.BillingAddress,
		string(e.Status), e.TaxRate,
		e.Totals.Subtotal, e.Totals.TaxAmount, e.Totals.Total,
		nullableTimeToString(e.ValidUntil, time.RFC3339),
		nullableTimeToString(e.SentAt, time.RFC3339),
		nullableTimeToString(e.ViewedAt, time.RFC3339),
		nullableTimeToString(e.AcceptedAt, time.RFC3339),
		nullableTimeToString(e.DeclinedAt, time.RFC3339),
		nullableStr(e.ConvertedToWorkOrderID),
		nullableStr(e.ConvertedToInvoiceID),
		nullableTimeToString(e.DeletedAt, time.RFC3339),
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting estimate: %w", err)
	}
	return insertLineItems(ctx, r.db, docTypeEstimate, e.ID, e.LineItems)
}

func (r *SQLiteEstimateRepo) GetByID(ctx context.Context, id string) (*domain.Estimate, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+estimateColumns+` FROM estimates WHERE id = ?`, id)
	return r.hydrate(ctx, row)
}

func (r *SQLiteEstimateRepo) GetByNumber(ctx context.Context, number string) (*domain.Estimate, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+estimateColumns+` FROM estimates WHERE UPPER(document_number) = UPPER(?)`, number)
	return r.hydrate(ctx, row)
}

func (r *SQLiteEstimateRepo) List(ctx context.Context, customerID *string, status *domain.EstimateStatus) ([]*domain.Estimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates WHERE deleted_at IS NULL`
	var args []any
	if customerID != nil {
		query += ` AND customer_id = ?`
		args = append(args, *customerID)
	}
	if status != nil {
		query += ` AND status = ?`
		args = append(args, string(*status))
	}
	query += ` ORDER BY document_number`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing estimates: %w", err)
	}
	defer rows.Close()

	var estimates []*domain.Estimate
	for rows.Next() {
		e, err := scanEstimate(rows)
		if err != nil {
			return nil, err
		}
		estimates = append(estimates, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating estimates: %w", err)
	}

	for _, e := range estimates {
		if e.LineItems, err = loadLineItems(ctx, r.db, docTypeEstimate, e.ID); err != nil {
			return nil, err
		}
	}
	return estimates, nil
}

func (r *SQLiteEstimateRepo) Update(ctx context.Context, e *domain.Estimate) error {
	query := `UPDATE estimates SET
		customer_id = ?, customer_name = ?, customer_email = ?, customer_phone = ?,
		service_address = ?, billing_address = ?, status = ?, tax_rate = ?,
		subtotal = ?, tax_amount = ?, total = ?, valid_until = ?,
		sent_at = ?, viewed_at = ?, accepted_at = ?, declined_at = ?,
		converted_to_work_order_id = ?, converted_to_invoice_id = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		e.Customer.CustomerID, e.Customer.Name, e.Customer.Email, e.Customer.Phone,
		e.ServiceAddress, e.BillingAddress, string(e.Status), e.TaxRate,
		e.Totals.Subtotal, e.Totals.TaxAmount, e.Totals.Total,
		nullableTimeToString(e.ValidUntil, time.RFC3339),
		nullableTimeToString(e.SentAt, time.RFC3339),
		nullableTimeToString(e.ViewedAt, time.RFC3339),
		nullableTimeToString(e.AcceptedAt, time.RFC3339),
		nullableTimeToString(e.DeclinedAt, time.RFC3339),
		nullableStr(e.ConvertedToWorkOrderID),
		nullableStr(e.ConvertedToInvoiceID),
		e.UpdatedAt.Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating estimate: %w", err)
	}
	return replaceLineItems(ctx, r.db, docTypeEstimate, e.ID, e.LineItems)
}

func (r *SQLiteEstimateRepo) SoftDelete(ctx context.Context, id string) error {
	now := nowUTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE estimates SET deleted_at = ?, updated_at = ? WHERE id = ?`, now, now, id)
	if err != nil {
		return fmt.Errorf("soft-deleting estimate: %w", err)
	}
	return nil
}

func (r *SQLiteEstimateRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM line_items WHERE document_type = ? AND document_id = ?`, docTypeEstimate, id); err != nil {
		return fmt.Errorf("deleting estimate line items: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM estimates WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting estimate: %w", err)
	}
	return nil
}

func (r *SQLiteEstimateRepo) hydrate(ctx context.Context, row rowScanner) (*domain.Estimate, error) {
	e, err := scanEstimate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if e.LineItems, err = loadLineItems(ctx, r.db, docTypeEstimate, e.ID); err != nil {
		return nil, err
	}
	return e, nil
}

func scanEstimate(row rowScanner) (*domain.Estimate, error) {
	var e domain.Estimate
	var status string
	var validUntil, sentAt, viewedAt, acceptedAt, declinedAt sql.NullString
	var convertedWO, convertedInv, deletedAt sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&e.ID, &e.DocumentNumber,
		&e.Customer.CustomerID, &e.Customer.Name, &e.Customer.Email, &e.Customer.Phone,
		&e.ServiceAddress, &e.BillingAddress, &status, &e.TaxRate,
		&e.Totals.Subtotal, &e.Totals.TaxAmount, &e.Totals.Total,
		&validUntil, &sentAt, &viewedAt, &acceptedAt, &declinedAt,
		&convertedWO, &convertedInv, &deletedAt, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning estimate: %w", err)
	}

	e.Status = domain.EstimateStatus(status)
	e.ValidUntil = parseNullableTime(validUntil, time.RFC3339)
	e.SentAt = parseNullableTime(sentAt, time.RFC3339)
	e.ViewedAt = parseNullableTime(viewedAt, time.RFC3339)
	e.AcceptedAt = parseNullableTime(acceptedAt, time.RFC3339)
	e.DeclinedAt = parseNullableTime(declinedAt, time.RFC3339)
	e.ConvertedToWorkOrderID = convertedWO.String
	e.ConvertedToInvoiceID = convertedInv.String
	e.DeletedAt = parseNullableTime(deletedAt, time.RFC3339)
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing estimate created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing estimate updated_at: %w", err)
	}
	return &e, nil
}
