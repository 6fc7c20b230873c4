package service

import (
	"context"
	"time"

	"github.com/jobledger/jobledger/internal/domain"
)

type CustomerService interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
}

type TeamService interface {
	Create(ctx context.Context, m *domain.TeamMember) error
	GetByID(ctx context.Context, id string) (*domain.TeamMember, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.TeamMember, error)
	Update(ctx context.Context, m *domain.TeamMember) error
	Archive(ctx context.Context, id string) error
}

// EstimateDraftInput carries the caller-supplied fields for a new estimate.
type EstimateDraftInput struct {
	CustomerID     string
	ServiceAddress string
	BillingAddress string
	TaxRate        float64
	ValidUntil     *time.Time
	LineItems      []domain.LineItem
}

type EstimateService interface {
	CreateDraft(ctx context.Context, in EstimateDraftInput) (*domain.Estimate, error)
	GetByID(ctx context.Context, id string) (*domain.Estimate, error)
	GetByNumber(ctx context.Context, number string) (*domain.Estimate, error)
	List(ctx context.Context, customerID *string, status *domain.EstimateStatus) ([]*domain.Estimate, error)
	SetLineItems(ctx context.Context, id string, items []domain.LineItem) (*domain.Estimate, error)
	Send(ctx context.Context, id string) (*domain.Estimate, error)
	MarkViewed(ctx context.Context, id string) (*domain.Estimate, error)
	Accept(ctx context.Context, id string) (*domain.Estimate, error)
	Decline(ctx context.Context, id string) (*domain.Estimate, error)
	Delete(ctx context.Context, id string) error
}

// WorkOrderDraftInput carries the caller-supplied fields for a new work order.
type WorkOrderDraftInput struct {
	CustomerID     string
	ServiceAddress string
	BillingAddress string
	TaxRate        float64
	Priority       domain.Priority
	AssignedTo     []string
	LineItems      []domain.LineItem
}

type WorkOrderService interface {
	CreateDraft(ctx context.Context, in WorkOrderDraftInput) (*domain.WorkOrder, error)
	GetByID(ctx context.Context, id string) (*domain.WorkOrder, error)
	GetByNumber(ctx context.Context, number string) (*domain.WorkOrder, error)
	List(ctx context.Context, customerID *string, status *domain.WorkOrderStatus) ([]*domain.WorkOrder, error)
	SetLineItems(ctx context.Context, id string, items []domain.LineItem) (*domain.WorkOrder, error)
	Assign(ctx context.Context, id string, names []string) (*domain.WorkOrder, error)
	Schedule(ctx context.Context, id string, date time.Time, timeOfDay string) (*domain.WorkOrder, error)
	Start(ctx context.Context, id string) (*domain.WorkOrder, error)
	Hold(ctx context.Context, id string) (*domain.WorkOrder, error)
	Resume(ctx context.Context, id string) (*domain.WorkOrder, error)
	Complete(ctx context.Context, id string) (*domain.WorkOrder, error)
	Cancel(ctx context.Context, id string) (*domain.WorkOrder, error)
	LogTime(ctx context.Context, id string, entry domain.TimeEntry) (*domain.WorkOrder, error)
	Delete(ctx context.Context, id string) error
}

// InvoiceDraftInput carries the caller-supplied fields for a standalone
// invoice created outside the conversion pipeline.
type InvoiceDraftInput struct {
	CustomerID     string
	ServiceAddress string
	BillingAddress string
	TaxRate        float64
	PaymentTerms   string
	DueDate        *time.Time
	LineItems      []domain.LineItem
}

type InvoiceService interface {
	CreateDraft(ctx context.Context, in InvoiceDraftInput) (*domain.Invoice, error)
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*domain.Invoice, error)
	List(ctx context.Context, customerID *string, status *domain.InvoiceStatus) ([]*domain.Invoice, error)
	SetLineItems(ctx context.Context, id string, items []domain.LineItem) (*domain.Invoice, error)
	Send(ctx context.Context, id string) (*domain.Invoice, error)
	MarkViewed(ctx context.Context, id string) (*domain.Invoice, error)
	Cancel(ctx context.Context, id string) (*domain.Invoice, error)
	RecordPayment(ctx context.Context, id string, p domain.Payment) (*domain.Invoice, error)
	Delete(ctx context.Context, id string) error
}

// ImportResult reports how many directory records an import created.
type ImportResult struct {
	CustomerCount int
	TeamCount     int
}

// DirectoryImportService seeds the customer and team directories from a
// JSON file, atomically.
type DirectoryImportService interface {
	ImportDirectory(ctx context.Context, path string) (*ImportResult, error)
}

// ConvertOptions tunes the documents produced by the conversion pipeline.
type ConvertOptions struct {
	ScheduledDate *time.Time
	AssignedTo    []string
	PaymentTerms  string
	DueDate       *time.Time
}

// ConversionService moves documents down the estimate → work order → invoice
// pipeline. Each conversion is atomic: the new document and the back-reference
// on the source commit together or not at all.
type ConversionService interface {
	EstimateToWorkOrder(ctx context.Context, estimateID string, opts ConvertOptions) (*domain.WorkOrder, error)
	WorkOrderToInvoice(ctx context.Context, workOrderID string, opts ConvertOptions) (*domain.Invoice, error)
	EstimateToInvoice(ctx context.Context, estimateID string, opts ConvertOptions) (*domain.Invoice, error)
}
