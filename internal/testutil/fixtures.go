package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jobledger/jobledger/internal/domain"
)

var testNumberCounter atomic.Int64

func nextTestNumber(prefix string) string {
	return domain.FormatDocumentNumber(prefix, int(testNumberCounter.Add(1)))
}

// Customer options
type CustomerOption func(*domain.Customer)

func WithCustomerEmail(email string) CustomerOption {
	return func(c *domain.Customer) {
		c.Email = email
	}
}

func WithServiceAddress(addr string) CustomerOption {
	return func(c *domain.Customer) {
		c.ServiceAddress = addr
	}
}

func NewTestCustomer(name string, opts ...CustomerOption) *domain.Customer {
	now := time.Now().UTC()
	c := &domain.Customer{
		ID:             uuid.New().String(),
		Name:           name,
		Email:          "test@example.com",
		Phone:          "555-0100",
		ServiceAddress: "1 Test Ln",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewTestTeamMember(name, role string) *domain.TeamMember {
	now := time.Now().UTC()
	return &domain.TeamMember{
		ID:        uuid.New().String(),
		Name:      name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestLineItem builds a valid line item, failing the caller loudly via
// panic if the inputs are bad (fixtures should never carry invalid data).
func NewTestLineItem(typ domain.LineItemType, desc string, qty, rate float64, taxable bool) domain.LineItem {
	li, err := domain.NewLineItem(uuid.New().String(), typ, desc, qty, rate, taxable)
	if err != nil {
		panic(fmt.Sprintf("testutil: bad line item fixture: %v", err))
	}
	return li
}

// Estimate options
type EstimateOption func(*domain.Estimate)

func WithEstimateStatus(s domain.EstimateStatus) EstimateOption {
	return func(e *domain.Estimate) {
		e.Status = s
	}
}

func WithValidUntil(d time.Time) EstimateOption {
	return func(e *domain.Estimate) {
		e.ValidUntil = &d
	}
}

func WithEstimateItems(items ...domain.LineItem) EstimateOption {
	return func(e *domain.Estimate) {
		if err := e.SetLineItems(items, e.UpdatedAt); err != nil {
			panic(fmt.Sprintf("testutil: bad estimate items: %v", err))
		}
	}
}

func WithTaxRate(rate float64) EstimateOption {
	return func(e *domain.Estimate) {
		e.TaxRate = rate
	}
}

func NewTestEstimate(customer *domain.Customer, opts ...EstimateOption) *domain.Estimate {
	now := time.Now().UTC()
	e := &domain.Estimate{
		ID:             uuid.New().String(),
		DocumentNumber: nextTestNumber(domain.PrefixEstimate),
		Customer:       customer.Ref(),
		ServiceAddress: customer.ServiceAddress,
		Status:         domain.EstimateDraft,
		TaxRate:        10,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	items := []domain.LineItem{
		NewTestLineItem(domain.LineItemLabor, "Labor", 4, 95, true),
		NewTestLineItem(domain.LineItemMaterial, "Materials", 1, 200, true),
	}
	if err := e.SetLineItems(items, now); err != nil {
		panic(fmt.Sprintf("testutil: bad estimate fixture: %v", err))
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WorkOrder options
type WorkOrderOption func(*domain.WorkOrder)

func WithWorkOrderStatus(s domain.WorkOrderStatus) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.Status = s
	}
}

func WithPriority(p domain.Priority) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.Priority = p
	}
}

func WithAssignees(names ...string) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.AssignedTo = names
	}
}

func WithScheduledDate(d time.Time) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.ScheduledDate = &d
	}
}

func NewTestWorkOrder(customer *domain.Customer, opts ...WorkOrderOption) *domain.WorkOrder {
	now := time.Now().UTC()
	w := &domain.WorkOrder{
		ID:             uuid.New().String(),
		DocumentNumber: nextTestNumber(domain.PrefixWorkOrder),
		Customer:       customer.Ref(),
		ServiceAddress: customer.ServiceAddress,
		Status:         domain.WorkOrderDraft,
		TaxRate:        8.25,
		Priority:       domain.PriorityNormal,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	items := []domain.LineItem{
		NewTestLineItem(domain.LineItemLabor, "Install", 8, 110, true),
	}
	if err := w.SetLineItems(items, now); err != nil {
		panic(fmt.Sprintf("testutil: bad work order fixture: %v", err))
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Invoice options
type InvoiceOption func(*domain.Invoice)

func WithInvoiceStatus(s domain.InvoiceStatus) InvoiceOption {
	return func(i *domain.Invoice) {
		i.Status = s
	}
}

func WithDueDate(d time.Time) InvoiceOption {
	return func(i *domain.Invoice) {
		i.DueDate = &d
	}
}

func WithInvoiceItems(items ...domain.LineItem) InvoiceOption {
	return func(i *domain.Invoice) {
		if err := i.SetLineItems(items, i.UpdatedAt); err != nil {
			panic(fmt.Sprintf("testutil: bad invoice items: %v", err))
		}
	}
}

func NewTestInvoice(customer *domain.Customer, opts ...InvoiceOption) *domain.Invoice {
	now := time.Now().UTC()
	i := &domain.Invoice{
		ID:             uuid.New().String(),
		DocumentNumber: nextTestNumber(domain.PrefixInvoice),
		Customer:       customer.Ref(),
		ServiceAddress: customer.ServiceAddress,
		Status:         domain.InvoiceDraft,
		TaxRate:        0,
		PaymentTerms:   domain.DefaultPaymentTerms,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	items := []domain.LineItem{
		NewTestLineItem(domain.LineItemLabor, "Service call", 10, 10, true),
	}
	if err := i.SetLineItems(items, now); err != nil {
		panic(fmt.Sprintf("testutil: bad invoice fixture: %v", err))
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}
