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

// workOrderColumns is the canonical SELECT column list for work orders.
const workOrderColumns = `id, document_number, estimate_id, customer_id, customer_name, customer_email,
		customer_phone, service_address, billing_address, status, tax_rate, subtotal, tax_amount, total,
		scheduled_date, scheduled_time, assigned_to, priority,
		started_at, completed_at, cancelled_at, converted_to_invoice_id, deleted_at, created_at, updated_at`

// SQLiteWorkOrderRepo implements WorkOrderRepo on SQLite.
type SQLiteWorkOrderRepo struct {
	db db.DBTX
}

// NewSQLiteWorkOrderRepo creates a new SQLiteWorkOrderRepo.
func NewSQLiteWorkOrderRepo(conn db.DBTX) *SQLiteWorkOrderRepo {
	return &SQLiteWorkOrderRepo{db: conn}
}

func (r *SQLiteWorkOrderRepo) Create(ctx context.Context, w *domain.WorkOrder) error {
	query := `INSERT INTO work_orders (` + workOrderColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID, w.DocumentNumber, nullableStr(w.EstimateID),
		w.Customer.CustomerID, w.Customer.Name, w.Customer.Email, w.Customer.Phone,
		w.ServiceAddress, w.BillingAddress,
		string(w.Status), w.TaxRate,
		w.Totals.Subtotal, w.Totals.TaxAmount, w.Totals.Total,
		nullableTimeToString(w.ScheduledDate, time.RFC3339),
		w.ScheduledTime, stringsToJSON(w.AssignedTo), string(w.Priority),
		nullableTimeToString(w.StartedAt, time.RFC3339),
		nullableTimeToString(w.CompletedAt, time.RFC3339),
		nullableTimeToString(w.CancelledAt, time.RFC3339),
		nullableStr(w.ConvertedToInvoiceID),
		nullableTimeToString(w.DeletedAt, time.RFC3339),
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting work order: %w", err)
	}
	if err := insertLineItems(ctx, r.db, docTypeWorkOrder, w.ID, w.LineItems); err != nil {
		return err
	}
	return r.saveTimeEntries(ctx, w)
}

func (r *SQLiteWorkOrderRepo) GetByID(ctx context.Context, id string) (*domain.WorkOrder, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+workOrderColumns+` FROM work_orders WHERE id = ?`, id)
	return r.hydrate(ctx, row)
}

func (r *SQLiteWorkOrderRepo) GetByNumber(ctx context.Context, number string) (*domain.WorkOrder, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+workOrderColumns+` FROM work_orders WHERE UPPER(document_number) = UPPER(?)`, number)
	return r.hydrate(ctx, row)
}

func (r *SQLiteWorkOrderRepo) List(ctx context.Context, customerID *string, status *domain.WorkOrderStatus) ([]*domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE deleted_at IS NULL`
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
		return nil, fmt.Errorf("listing work orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.WorkOrder
	for rows.Next() {
		w, err := scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work orders: %w", err)
	}

	for _, w := range orders {
		if w.LineItems, err = loadLineItems(ctx, r.db, docTypeWorkOrder, w.ID); err != nil {
			return nil, err
		}
		if w.TimeTracking, err = r.loadTimeEntries(ctx, w.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *SQLiteWorkOrderRepo) Update(ctx context.Context, w *domain.WorkOrder) error {
	query := `UPDATE work_orders SET
		estimate_id = ?, customer_id = ?, customer_name = ?, customer_email = ?, customer_phone = ?,
		service_address = ?, billing_address = ?, status = ?, tax_rate = ?,
		subtotal = ?, tax_amount = ?, total = ?,
		scheduled_date = ?, scheduled_time = ?, assigned_to = ?, priority = ?,
		started_at = ?, completed_at = ?, cancelled_at = ?, converted_to_invoice_id = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		nullableStr(w.EstimateID),
		w.Customer.CustomerID, w.Customer.Name, w.Customer.Email, w.Customer.Phone,
		w.ServiceAddress, w.BillingAddress, string(w.Status), w.TaxRate,
		w.Totals.Subtotal, w.Totals.TaxAmount, w.Totals.Total,
		nullableTimeToString(w.ScheduledDate, time.RFC3339),
		w.ScheduledTime, stringsToJSON(w.AssignedTo), string(w.Priority),
		nullableTimeToString(w.StartedAt, time.RFC3339),
		nullableTimeToString(w.CompletedAt, time.RFC3339),
		nullableTimeToString(w.CancelledAt, time.RFC3339),
		nullableStr(w.ConvertedToInvoiceID),
		w.UpdatedAt.Format(time.RFC3339),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work order: %w", err)
	}
	if err := replaceLineItems(ctx, r.db, docTypeWorkOrder, w.ID, w.LineItems); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE work_order_id = ?`, w.ID); err != nil {
		return fmt.Errorf("clearing time entries: %w", err)
	}
	return r.saveTimeEntries(ctx, w)
}

func (r *SQLiteWorkOrderRepo) SoftDelete(ctx context.Context, id string) error {
	now := nowUTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE work_orders SET deleted_at = ?, updated_at = ? WHERE id = ?`, now, now, id)
	if err != nil {
		return fmt.Errorf("soft-deleting work order: %w", err)
	}
	return nil
}

func (r *SQLiteWorkOrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM line_items WHERE document_type = ? AND document_id = ?`, docTypeWorkOrder, id); err != nil {
		return fmt.Errorf("deleting work order line items: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM work_orders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting work order: %w", err)
	}
	return nil
}

func (r *SQLiteWorkOrderRepo) hydrate(ctx context.Context, row rowScanner) (*domain.WorkOrder, error) {
	w, err := scanWorkOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if w.LineItems, err = loadLineItems(ctx, r.db, docTypeWorkOrder, w.ID); err != nil {
		return nil, err
	}
	if w.TimeTracking, err = r.loadTimeEntries(ctx, w.ID); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *SQLiteWorkOrderRepo) saveTimeEntries(ctx context.Context, w *domain.WorkOrder) error {
	for _, t := range w.TimeTracking {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO time_entries (id, work_order_id, description, started_at, ended_at, minutes)
			VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, w.ID, t.Description,
			t.StartedAt.Format(time.RFC3339),
			nullableTimeToString(t.EndedAt, time.RFC3339),
			t.Minutes,
		)
		if err != nil {
			return fmt.Errorf("inserting time entry: %w", err)
		}
	}
	return nil
}

func (r *SQLiteWorkOrderRepo) loadTimeEntries(ctx context.Context, workOrderID string) ([]domain.TimeEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, work_order_id, description, started_at, ended_at, minutes
		FROM time_entries WHERE work_order_id = ? ORDER BY started_at, id`, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("loading time entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.TimeEntry
	for rows.Next() {
		var t domain.TimeEntry
		var startedAt string
		var endedAt sql.NullString
		if err := rows.Scan(&t.ID, &t.WorkOrderID, &t.Description, &startedAt, &endedAt, &t.Minutes); err != nil {
			return nil, fmt.Errorf("scanning time entry: %w", err)
		}
		if t.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return nil, fmt.Errorf("parsing time entry started_at: %w", err)
		}
		t.EndedAt = parseNullableTime(endedAt, time.RFC3339)
		entries = append(entries, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time entries: %w", err)
	}
	return entries, nil
}

func scanWorkOrder(row rowScanner) (*domain.WorkOrder, error) {
	var w domain.WorkOrder
	var status, priority, assigned string
	var estimateID, scheduledDate, startedAt, completedAt, cancelledAt sql.NullString
	var convertedInv, deletedAt sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&w.ID, &w.DocumentNumber, &estimateID,
		&w.Customer.CustomerID, &w.Customer.Name, &w.Customer.Email, &w.Customer.Phone,
		&w.ServiceAddress, &w.BillingAddress, &status, &w.TaxRate,
		&w.Totals.Subtotal, &w.Totals.TaxAmount, &w.Totals.Total,
		&scheduledDate, &w.ScheduledTime, &assigned, &priority,
		&startedAt, &completedAt, &cancelledAt, &convertedInv, &deletedAt, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning work order: %w", err)
	}

	w.Status = domain.WorkOrderStatus(status)
	w.Priority = domain.Priority(priority)
	w.EstimateID = estimateID.String
	w.ScheduledDate = parseNullableTime(scheduledDate, time.RFC3339)
	w.StartedAt = parseNullableTime(startedAt, time.RFC3339)
	w.CompletedAt = parseNullableTime(completedAt, time.RFC3339)
	w.CancelledAt = parseNullableTime(cancelledAt, time.RFC3339)
	w.ConvertedToInvoiceID = convertedInv.String
	w.DeletedAt = parseNullableTime(deletedAt, time.RFC3339)
	w.AssignedTo = jsonToStrings(assigned)
	if w.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing work order created_at: %w", err)
	}
	if w.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing work order updated_at: %w", err)
	}
	return &w, nil
}
