package domain

import (
	"fmt"
	"time"
)

// DefaultPaymentTerms is applied when a conversion does not supply terms.
const DefaultPaymentTerms = "Net 30"

// DefaultDueDays is the due-date offset matching DefaultPaymentTerms.
const DefaultDueDays = 30

// ConvertEstimateToWorkOrder builds a work order from an accepted estimate.
// Line items and totals are copied by value, never shared. The forward
// reference is written onto the source estimate as a paired update; both
// records must be persisted together by the caller. Identity (id, number)
// and the clock are supplied by the caller. An estimate already converted
// to either target is rejected.
func ConvertEstimateToWorkOrder(e *Estimate, id, number string, now time.Time, scheduledDate *time.Time, assignedTo []string) (*WorkOrder, error) {
	if e.Status != EstimateAccepted {
		return nil, fmt.Errorf("%w: estimate %s is %s, only accepted estimates convert to work orders",
			ErrInvalidTransition, e.DocumentNumber, e.Status)
	}
	if e.ConvertedToWorkOrderID != "" {
		return nil, fmt.Errorf("%w: estimate %s already became work order %s",
			ErrAlreadyConverted, e.DocumentNumber, e.ConvertedToWorkOrderID)
	}
	if e.ConvertedToInvoiceID != "" {
		return nil, fmt.Errorf("%w: estimate %s already became invoice %s",
			ErrAlreadyConverted, e.DocumentNumber, e.ConvertedToInvoiceID)
	}

	w := &WorkOrder{
		ID:             id,
		DocumentNumber: number,
		EstimateID:     e.ID,
		Customer:       e.Customer,
		ServiceAddress: e.ServiceAddress,
		BillingAddress: e.BillingAddress,
		LineItems:      CopyLineItems(e.LineItems),
		Status:         WorkOrderDraft,
		TaxRate:        e.TaxRate,
		Totals:         e.Totals,
		AssignedTo:     append([]string(nil), assignedTo...),
		Priority:       PriorityNormal,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if scheduledDate != nil {
		if err := w.Schedule(*scheduledDate, "", now); err != nil {
			return nil, err
		}
	}

	e.ConvertedToWorkOrderID = id
	e.UpdatedAt = now
	return w, nil
}

// ConvertWorkOrderToInvoice builds an invoice from a completed work order.
// The invoice starts with no payments: AmountPaid 0 and Balance == Total.
// Empty paymentTerms defaults to Net 30 with a due date 30 days out.
func ConvertWorkOrderToInvoice(w *WorkOrder, id, number string, now time.Time, paymentTerms string, dueDate *time.Time) (*Invoice, error) {
	if w.Status != WorkOrderCompleted {
		return nil, fmt.Errorf("%w: work order %s is %s, only completed work orders convert to invoices",
			ErrInvalidTransition, w.DocumentNumber, w.Status)
	}
	if w.ConvertedToInvoiceID != "" {
		return nil, fmt.Errorf("%w: work order %s already became invoice %s",
			ErrAlreadyConverted, w.DocumentNumber, w.ConvertedToInvoiceID)
	}

	inv, err := newInvoiceFrom(id, number, now, paymentTerms, dueDate,
		w.Customer, w.ServiceAddress, w.BillingAddress, w.LineItems, w.TaxRate)
	if err != nil {
		return nil, err
	}
	inv.WorkOrderID = w.ID
	inv.EstimateID = w.EstimateID

	w.ConvertedToInvoiceID = id
	w.UpdatedAt = now
	return inv, nil
}

// ConvertEstimateToInvoice is the direct shortcut used when no work order
// step is needed. It follows the same balance-initialization rule and the
// same one-shot guarantee: an estimate already converted either way is
// rejected.
func ConvertEstimateToInvoice(e *Estimate, id, number string, now time.Time, paymentTerms string, dueDate *time.Time) (*Invoice, error) {
	if e.Status != EstimateAccepted {
		return nil, fmt.Errorf("%w: estimate %s is %s, only accepted estimates convert to invoices",
			ErrInvalidTransition, e.DocumentNumber, e.Status)
	}
	if e.ConvertedToInvoiceID != "" {
		return nil, fmt.Errorf("%w: estimate %s already became invoice %s",
			ErrAlreadyConverted, e.DocumentNumber, e.ConvertedToInvoiceID)
	}
	if e.ConvertedToWorkOrderID != "" {
		return nil, fmt.Errorf("%w: estimate %s already became work order %s",
			ErrAlreadyConverted, e.DocumentNumber, e.ConvertedToWorkOrderID)
	}

	inv, err := newInvoiceFrom(id, number, now, paymentTerms, dueDate,
		e.Customer, e.ServiceAddress, e.BillingAddress, e.LineItems, e.TaxRate)
	if err != nil {
		return nil, err
	}
	inv.EstimateID = e.ID

	e.ConvertedToInvoiceID = id
	e.UpdatedAt = now
	return inv, nil
}

func newInvoiceFrom(id, number string, now time.Time, paymentTerms string, dueDate *time.Time,
	customer CustomerRef, serviceAddr, billingAddr string, items []LineItem, taxRate float64) (*Invoice, error) {

	if paymentTerms == "" {
		paymentTerms = DefaultPaymentTerms
	}
	if dueDate == nil {
		d := now.AddDate(0, 0, DefaultDueDays)
		dueDate = &d
	}

	copied := CopyLineItems(items)
	totals, err := CalculateInvoiceTotals(copied, taxRate, nil)
	if err != nil {
		return nil, err
	}

	return &Invoice{
		ID:             id,
		DocumentNumber: number,
		Customer:       customer,
		ServiceAddress: serviceAddr,
		BillingAddress: billingAddr,
		LineItems:      copied,
		Status:         InvoiceDraft,
		TaxRate:        taxRate,
		Totals:         totals,
		PaymentTerms:   paymentTerms,
		DueDate:        dueDate,
		Payments:       []Payment{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
