package domain

import (
	"fmt"
	"math"
	"time"
)

// Payment is one received payment against an invoice. The payment list is
// append-only; an invoice accumulates history and never rewrites it.
type Payment struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	Method    string    `json:"method"`
	Reference string    `json:"reference,omitempty"`
}

// Invoice is a bill for completed work. The stored status only captures
// explicit user actions (draft, sent, viewed, cancelled); paid, partial and
// overdue are derived by EffectiveStatus and never persisted.
type Invoice struct {
	ID             string      `json:"id"`
	DocumentNumber string      `json:"documentNumber"`
	WorkOrderID    string      `json:"workOrderId,omitempty"`
	EstimateID     string      `json:"estimateId,omitempty"`
	Customer       CustomerRef `json:"customer"`
	ServiceAddress string      `json:"serviceAddress"`
	BillingAddress string      `json:"billingAddress,omitempty"`

	LineItems []LineItem     `json:"lineItems"`
	Status    InvoiceStatus  `json:"status"`
	TaxRate   float64        `json:"taxRate"`
	Totals    DocumentTotals `json:"totals"`

	PaymentTerms string     `json:"paymentTerms"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	Payments     []Payment  `json:"payments"`

	SentAt      *time.Time `json:"sentAt,omitempty"`
	ViewedAt    *time.Time `json:"viewedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// AmountPaid returns the sum of all recorded payments.
func (i *Invoice) AmountPaid() float64 {
	var paid float64
	for _, p := range i.Payments {
		paid += p.Amount
	}
	return paid
}

// Balance returns the rounded amount still owed.
func (i *Invoice) Balance() float64 {
	return Round2(i.Totals.Total - i.AmountPaid())
}

// SetLineItems replaces the line items and recomputes totals including the
// payment side.
func (i *Invoice) SetLineItems(items []LineItem, now time.Time) error {
	totals, err := CalculateInvoiceTotals(items, i.TaxRate, i.Payments)
	if err != nil {
		return err
	}
	i.LineItems = items
	i.Totals = totals
	i.UpdatedAt = now
	return nil
}

// Send marks a draft invoice as sent.
func (i *Invoice) Send(now time.Time) error {
	if i.Status != InvoiceDraft {
		return i.transitionErr("send")
	}
	if i.Customer.CustomerID == "" {
		return fmt.Errorf("%w: invoice %s has no customer", ErrValidation, i.DocumentNumber)
	}
	if len(i.LineItems) == 0 {
		return fmt.Errorf("%w: invoice %s has no line items", ErrValidation, i.DocumentNumber)
	}
	i.Status = InvoiceSent
	i.SentAt = &now
	i.UpdatedAt = now
	return nil
}

// MarkViewed records that the customer opened a sent invoice.
func (i *Invoice) MarkViewed(now time.Time) error {
	if i.Status != InvoiceSent {
		return i.transitionErr("mark viewed")
	}
	i.Status = InvoiceViewed
	i.ViewedAt = &now
	i.UpdatedAt = now
	return nil
}

// Cancel voids an invoice. Terminal.
func (i *Invoice) Cancel(now time.Time) error {
	if i.Status == InvoiceCancelled {
		return i.transitionErr("cancel")
	}
	i.Status = InvoiceCancelled
	i.CancelledAt = &now
	i.UpdatedAt = now
	return nil
}

// RecordPayment appends a payment and recomputes AmountPaid and Balance.
// The invoice itself is the only place payment history accumulates.
func (i *Invoice) RecordPayment(p Payment, now time.Time) error {
	if i.Status == InvoiceCancelled {
		return i.transitionErr("record a payment against")
	}
	if math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
		return fmt.Errorf("%w: payment amount is not finite", ErrComputation)
	}
	if p.Amount <= 0 {
		return fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}
	i.Payments = append(i.Payments, p)

	totals, err := CalculateInvoiceTotals(i.LineItems, i.TaxRate, i.Payments)
	if err != nil {
		// Roll the append back so a failed computation leaves the
		// invoice unchanged.
		i.Payments = i.Payments[:len(i.Payments)-1]
		return err
	}
	i.Totals = totals
	i.UpdatedAt = now
	return nil
}

// EffectiveStatus derives the displayed status. Precedence, highest first:
// cancelled, draft, paid, overdue, partial, then the stored status. The
// paid check runs before overdue so a fully paid invoice past its due date
// reads paid, not overdue.
func (i *Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	switch {
	case i.Status == InvoiceCancelled:
		return InvoiceCancelled
	case i.Status == InvoiceDraft:
		return InvoiceDraft
	}

	paid := i.AmountPaid()
	switch {
	case paid >= i.Totals.Total:
		return InvoicePaid
	case i.DueDate != nil && now.After(*i.DueDate):
		return InvoiceOverdue
	case paid > 0 && paid < i.Totals.Total:
		return InvoicePartial
	}
	return i.Status
}

func (i *Invoice) transitionErr(event string) error {
	return fmt.Errorf("%w: cannot %s invoice %s in status %s",
		ErrInvalidTransition, event, i.DocumentNumber, i.Status)
}
