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

const customerColumns = `id, name, email, phone, service_address, billing_address, notes, archived_at, created_at, updated_at`

// SQLiteCustomerRepo implements CustomerRepo on SQLite.
type SQLiteCustomerRepo struct {
	db db.DBTX
}

// NewSQLiteCustomerRepo creates a new SQLiteCustomerRepo.
func NewSQLiteCustomerRepo(conn db.DBTX) *SQLiteCustomerRepo {
	return &SQLiteCustomerRepo{db: conn}
}

func (r *SQLiteCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (` + customerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone,
		c.ServiceAddress, c.BillingAddress, c.Notes,
		nullableTimeToString(c.ArchivedAt, time.RFC3339),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting customer: %w", err)
	}
	return nil
}

func (r *SQLiteCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *SQLiteCustomerRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customers: %w", err)
	}
	return customers, nil
}

func (r *SQLiteCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name = ?, email = ?, phone = ?, service_address = ?,
		billing_address = ?, notes = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		c.Name, c.Email, c.Phone, c.ServiceAddress, c.BillingAddress, c.Notes,
		c.UpdatedAt.Format(time.RFC3339), c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}
	return nil
}

func (r *SQLiteCustomerRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE customers SET archived_at = ?, updated_at = ? WHERE id = ?`, now, now, id)
	if err != nil {
		return fmt.Errorf("archiving customer: %w", err)
	}
	return nil
}

func (r *SQLiteCustomerRepo) Unarchive(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE customers SET archived_at = NULL, updated_at = ? WHERE id = ?`, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("unarchiving customer: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	var archivedAt sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone,
		&c.ServiceAddress, &c.BillingAddress, &c.Notes,
		&archivedAt, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning customer: %w", err)
	}

	c.ArchivedAt = parseNullableTime(archivedAt, time.RFC3339)
	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing customer created_at: %w", err)
	}
	if c.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing customer updated_at: %w", err)
	}
	return &c, nil
}
