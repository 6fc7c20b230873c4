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

// invoiceColumns is the canonical SELECT column list for invoices.
const invoiceColumns = `id, document_number, work_order_id, estimate_id, customer_id, customer_name,
		customer_email, customer_phone, service_address, billing_address, status, tax_rate,
		subtotal, tax_amount, total, amount_paid, balance, payment_terms, due_date,
		sent_at, viewed_at, cancelled_at, deleted_at, created_at, updated_at`

// SQLiteInvoiceRepo implements InvoiceRepo on SQLite.
type SQLiteInvoiceRepo struct {
	db db.DBTX
}

// NewSQLiteInvoiceRepo creates a new SQLiteInvoiceRepo.
func NewSQLiteInvoiceRepo(conn db.DBTX) *SQLiteInvoiceRepo {
	return &SQLiteInvoiceRepo{db: conn}
}

func (r *SQLiteInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.DocumentNumber,
		nullableStr(inv.WorkOrderID), nullableStr(inv.EstimateID),
		inv.Customer.CustomerID, inv.Customer.Name, inv.Customer.Email, inv.Customer.Phone,
		inv.ServiceAddress, inv.BillingAddress,
		string(inv.Status), inv.TaxRate,
		inv.Totals.Subtotal, inv.Totals.TaxAmount, inv.Totals.Total,
		inv.AmountPaid(), inv.Balance(), inv.PaymentTerms,
		nullableTimeToString(inv.DueDate, time.RFC3339),
		nullableTimeToString(inv.SentAt, time.RFC3339),
		nullableTimeToString(inv.ViewedAt, time.RFC3339),
		nullableTimeToString(inv.CancelledAt, time.RFC3339),
		nullableTimeToString(inv.DeletedAt, time.RFC3339),
		inv.CreatedAt.Format(time.RFC3339),
		inv.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting invoice: %w", err)
	}
	if err := insertLineItems(ctx, r.db, docTypeInvoice, inv.ID, inv.LineItems); err != nil {
		return err
	}
	for _, p := range inv.Payments {
		if err := r.insertPayment(ctx, inv.ID, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteInvoiceRepo) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, id)
	return r.hydrate(ctx, row)
}

func (r *SQLiteInvoiceRepo) GetByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE UPPER(document_number) = UPPER(?)`, number)
	return r.hydrate(ctx, row)
}

func (r *SQLiteInvoiceRepo) List(ctx context.Context, customerID *string, status *domain.InvoiceStatus) ([]*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE deleted_at IS NULL`
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
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoices: %w", err)
	}

	for _, inv := range invoices {
		if inv.LineItems, err = loadLineItems(ctx, r.db, docTypeInvoice, inv.ID); err != nil {
			return nil, err
		}
		if inv.Payments, err = r.loadPayments(ctx, inv.ID); err != nil {
			return nil, err
		}
	}
	return invoices, nil
}

func (r *SQLiteInvoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	query := `UPDATE invoices SET
		work_order_id = ?, estimate_id = ?,
		customer_id = ?, customer_name = ?, customer_email = ?, customer_phone = ?,
		service_address = ?, billing_address = ?, status = ?, tax_rate = ?,
		subtotal = ?, tax_amount = ?, total = ?, amount_paid = ?, balance = ?,
		payment_terms = ?, due_date = ?, sent_at = ?, viewed_at = ?, cancelled_at = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		nullableStr(inv.WorkOrderID), nullableStr(inv.EstimateID),
		inv.Customer.CustomerID, inv.Customer.Name, inv.Customer.Email, inv.Customer.Phone,
		inv.ServiceAddress, inv.BillingAddress, string(inv.Status), inv.TaxRate,
		inv.Totals.Subtotal, inv.Totals.TaxAmount, inv.Totals.Total,
		inv.AmountPaid(), inv.Balance(), inv.PaymentTerms,
		nullableTimeToString(inv.DueDate, time.RFC3339),
		nullableTimeToString(inv.SentAt, time.RFC3339),
		nullableTimeToString(inv.ViewedAt, time.RFC3339),
		nullableTimeToString(inv.CancelledAt, time.RFC3339),
		inv.UpdatedAt.Format(time.RFC3339),
		inv.ID,
	)
	if err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}
	return replaceLineItems(ctx, r.db, docTypeInvoice, inv.ID, inv.LineItems)
}

// AddPayment appends one payment row and refreshes the invoice's rolled-up
// paid and balance columns. The payments table itself is append-only.
func (r *SQLiteInvoiceRepo) AddPayment(ctx context.Context, inv *domain.Invoice, p domain.Payment) error {
	if err := r.insertPayment(ctx, inv.ID, p); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET amount_paid = ?, balance = ?, updated_at = ? WHERE id = ?`,
		inv.AmountPaid(), inv.Balance(), inv.UpdatedAt.Format(time.RFC3339), inv.ID)
	if err != nil {
		return fmt.Errorf("updating invoice payment totals: %w", err)
	}
	return nil
}

func (r *SQLiteInvoiceRepo) SoftDelete(ctx context.Context, id string) error {
	now := nowUTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET deleted_at = ?, updated_at = ? WHERE id = ?`, now, now, id)
	if err != nil {
		return fmt.Errorf("soft-deleting invoice: %w", err)
	}
	return nil
}

func (r *SQLiteInvoiceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM line_items WHERE document_type = ? AND document_id = ?`, docTypeInvoice, id); err != nil {
		return fmt.Errorf("deleting invoice line items: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}
	return nil
}

func (r *SQLiteInvoiceRepo) hydrate(ctx context.Context, row rowScanner) (*domain.Invoice, error) {
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if inv.LineItems, err = loadLineItems(ctx, r.db, docTypeInvoice, inv.ID); err != nil {
		return nil, err
	}
	if inv.Payments, err = r.loadPayments(ctx, inv.ID); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *SQLiteInvoiceRepo) insertPayment(ctx context.Context, invoiceID string, p domain.Payment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (id, invoice_id, amount, paid_date, method, reference)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, invoiceID, p.Amount, p.Date.Format(time.RFC3339), p.Method, p.Reference)
	if err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}
	return nil
}

func (r *SQLiteInvoiceRepo) loadPayments(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, paid_date, method, reference
		FROM payments WHERE invoice_id = ? ORDER BY paid_date, id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("loading payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		var paidDate string
		if err := rows.Scan(&p.ID, &p.Amount, &paidDate, &p.Method, &p.Reference); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}
		if p.Date, err = time.Parse(time.RFC3339, paidDate); err != nil {
			return nil, fmt.Errorf("parsing payment date: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}
	return payments, nil
}

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var inv domain.Invoice
	var status string
	var workOrderID, estimateID, dueDate, sentAt, viewedAt, cancelledAt, deletedAt sql.NullString
	var amountPaid, balance float64
	var createdAt, updatedAt string

	err := row.Scan(&inv.ID, &inv.DocumentNumber, &workOrderID, &estimateID,
		&inv.Customer.CustomerID, &inv.Customer.Name, &inv.Customer.Email, &inv.Customer.Phone,
		&inv.ServiceAddress, &inv.BillingAddress, &status, &inv.TaxRate,
		&inv.Totals.Subtotal, &inv.Totals.TaxAmount, &inv.Totals.Total,
		&amountPaid, &balance, &inv.PaymentTerms, &dueDate,
		&sentAt, &viewedAt, &cancelledAt, &deletedAt, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning invoice: %w", err)
	}

	inv.Status = domain.InvoiceStatus(status)
	inv.WorkOrderID = workOrderID.String
	inv.EstimateID = estimateID.String
	inv.Totals.AmountPaid = &amountPaid
	inv.Totals.Balance = &balance
	inv.DueDate = parseNullableTime(dueDate, time.RFC3339)
	inv.SentAt = parseNullableTime(sentAt, time.RFC3339)
	inv.ViewedAt = parseNullableTime(viewedAt, time.RFC3339)
	inv.CancelledAt = parseNullableTime(cancelledAt, time.RFC3339)
	inv.DeletedAt = parseNullableTime(deletedAt, time.RFC3339)
	if inv.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing invoice created_at: %w", err)
	}
	if inv.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing invoice updated_at: %w", err)
	}
	return &inv, nil
}
