package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jobledger/jobledger/internal/db"
	"github.com/jobledger/jobledger/internal/domain"
	"github.com/jobledger/jobledger/internal/repository"
)

type invoiceService struct {
	invoices  repository.InvoiceRepo
	customers repository.CustomerRepo
	uow       db.UnitOfWork
}

func NewInvoiceService(invoices repository.InvoiceRepo, customers repository.CustomerRepo, uow db.UnitOfWork) InvoiceService {
	return &invoiceService{invoices: invoices, customers: customers, uow: uow}
}

func (s *invoiceService) CreateDraft(ctx context.Context, in InvoiceDraftInput) (*domain.Invoice, error) {
	cust, err := s.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if cust == nil {
		return nil, fmt.Errorf("customer %s not found", in.CustomerID)
	}

	now := time.Now().UTC()
	inv := &domain.Invoice{
		ID:             uuid.New().String(),
		Customer:       cust.Ref(),
		ServiceAddress: in.ServiceAddress,
		BillingAddress: in.BillingAddress,
		Status:         domain.InvoiceDraft,
		TaxRate:        in.TaxRate,
		PaymentTerms:   in.PaymentTerms,
		DueDate:        in.DueDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if inv.ServiceAddress == "" {
		inv.ServiceAddress = cust.ServiceAddress
	}
	if inv.BillingAddress == "" {
		inv.BillingAddress = cust.BillingAddress
	}
	if inv.PaymentTerms == "" {
		inv.PaymentTerms = domain.DefaultPaymentTerms
	}
	if inv.DueDate == nil {
		due := now.AddDate(0, 0, domain.DefaultDueDays)
		inv.DueDate = &due
	}
	if err := inv.SetLineItems(in.LineItems, now); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSeq := repository.NewSQLiteSequenceRepo(tx)
		txInv := repository.NewSQLiteInvoiceRepo(tx)

		num, err := txSeq.NextNumber(ctx, domain.PrefixInvoice)
		if err != nil {
			return err
		}
		inv.DocumentNumber = num
		return txInv.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.resolve(ctx, id)
}

func (s *invoiceService) GetByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	inv, err := s.invoices.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("invoice %s not found", number)
	}
	return inv, nil
}

func (s *invoiceService) List(ctx context.Context, customerID *string, status *domain.InvoiceStatus) ([]*domain.Invoice, error) {
	if status == nil || !domain.DerivedInvoiceStatuses[*status] {
		return s.invoices.List(ctx, customerID, status)
	}

	// Derived statuses (paid, partial, overdue) are never stored, so the
	// filter has to run against EffectiveStatus after the query.
	invoices, err := s.invoices.List(ctx, customerID, nil)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	matched := make([]*domain.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.EffectiveStatus(now) == *status {
			matched = append(matched, inv)
		}
	}
	return matched, nil
}

func (s *invoiceService) SetLineItems(ctx context.Context, id string, items []domain.LineItem) (*domain.Invoice, error) {
	return s.mutate(ctx, id, func(inv *domain.Invoice, now time.Time) error {
		if inv.Status != domain.InvoiceDraft {
			return fmt.Errorf("%w: invoice %s is %s, line items can only change on a draft",
				domain.ErrInvalidTransition, inv.DocumentNumber, inv.Status)
		}
		return inv.SetLineItems(items, now)
	})
}

func (s *invoiceService) Send(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.mutate(ctx, id, (*domain.Invoice).Send)
}

func (s *invoiceService) MarkViewed(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.mutate(ctx, id, (*domain.Invoice).MarkViewed)
}

func (s *invoiceService) Cancel(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.mutate(ctx, id, (*domain.Invoice).Cancel)
}

// RecordPayment re-reads the invoice inside a transaction so concurrent
// payments never operate on a stale payment history.
func (s *invoiceService) RecordPayment(ctx context.Context, id string, p domain.Payment) (*domain.Invoice, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}

	var result *domain.Invoice
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txInv := repository.NewSQLiteInvoiceRepo(tx)

		inv, err := txInv.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("invoice %s not found", id)
		}
		now := time.Now().UTC()
		if err := inv.RecordPayment(p, now); err != nil {
			return err
		}
		if err := txInv.AddPayment(ctx, inv, p); err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *invoiceService) Delete(ctx context.Context, id string) error {
	inv, err := s.resolve(ctx, id)
	if err != nil {
		return err
	}
	return s.invoices.SoftDelete(ctx, inv.ID)
}

func (s *invoiceService) resolve(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("invoice %s not found", id)
	}
	return inv, nil
}

func (s *invoiceService) mutate(ctx context.Context, id string, fn func(*domain.Invoice, time.Time) error) (*domain.Invoice, error) {
	inv, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(inv, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.invoices.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}
