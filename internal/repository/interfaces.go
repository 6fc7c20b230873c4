package repository

import (
	"context"

	"github.com/jobledger/jobledger/internal/domain"
)

// Repositories return (nil, nil) from GetByID-style lookups when no row
// matches; services translate that into a not-found error with context.

type CustomerRepo interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
}

type TeamRepo interface {
	Create(ctx context.Context, m *domain.TeamMember) error
	GetByID(ctx context.Context, id string) (*domain.TeamMember, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.TeamMember, error)
	Update(ctx context.Context, m *domain.TeamMember) error
	Archive(ctx context.Context, id string) error
}

type EstimateRepo interface {
	Create(ctx context.Context, e *domain.Estimate) error
	GetByID(ctx context.Context, id string) (*domain.Estimate, error)
	GetByNumber(ctx context.Context, number string) (*domain.Estimate, error)
	List(ctx context.Context, customerID *string, status *domain.EstimateStatus) ([]*domain.Estimate, error)
	Update(ctx context.Context, e *domain.Estimate) error
	SoftDelete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type WorkOrderRepo interface {
	Create(ctx context.Context, w *domain.WorkOrder) error
	GetByID(ctx context.Context, id string) (*domain.WorkOrder, error)
	GetByNumber(ctx context.Context, number string) (*domain.WorkOrder, error)
	List(ctx context.Context, customerID *string, status *domain.WorkOrderStatus) ([]*domain.WorkOrder, error)
	Update(ctx context.Context, w *domain.WorkOrder) error
	SoftDelete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type InvoiceRepo interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*domain.Invoice, error)
	List(ctx context.Context, customerID *string, status *domain.InvoiceStatus) ([]*domain.Invoice, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	AddPayment(ctx context.Context, inv *domain.Invoice, p domain.Payment) error
	SoftDelete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// SequenceRepo allocates document numbers atomically per prefix.
type SequenceRepo interface {
	NextNumber(ctx context.Context, prefix string) (string, error)
}
