package domain

import (
	"fmt"
	"time"
)

// Estimate is a priced proposal sent to a customer. Status moves
// draft → sent → viewed → accepted|declined; "expired" is derived from
// ValidUntil on read and never stored.
type Estimate struct {
	ID             string      `json:"id"`
	DocumentNumber string      `json:"documentNumber"`
	Customer       CustomerRef `json:"customer"`
	ServiceAddress string      `json:"serviceAddress"`
	BillingAddress string      `json:"billingAddress,omitempty"`

	LineItems []LineItem     `json:"lineItems"`
	Status    EstimateStatus `json:"status"`
	TaxRate   float64        `json:"taxRate"`
	Totals    DocumentTotals `json:"totals"`

	ValidUntil *time.Time `json:"validUntil,omitempty"`

	SentAt     *time.Time `json:"sentAt,omitempty"`
	ViewedAt   *time.Time `json:"viewedAt,omitempty"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
	DeclinedAt *time.Time `json:"declinedAt,omitempty"`

	// Conversion cross-references, each set at most once.
	ConvertedToWorkOrderID string `json:"convertedToWorkOrderId,omitempty"`
	ConvertedToInvoiceID   string `json:"convertedToInvoiceId,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// validateIssuable checks the fields a document must have before it may
// leave draft.
func (e *Estimate) validateIssuable() error {
	if e.Customer.CustomerID == "" {
		return fmt.Errorf("%w: estimate %s has no customer", ErrValidation, e.DocumentNumber)
	}
	if len(e.LineItems) == 0 {
		return fmt.Errorf("%w: estimate %s has no line items", ErrValidation, e.DocumentNumber)
	}
	return nil
}

// SetLineItems replaces the line items and recomputes totals.
func (e *Estimate) SetLineItems(items []LineItem, now time.Time) error {
	totals, err := CalculateDocumentTotals(items, e.TaxRate)
	if err != nil {
		return err
	}
	e.LineItems = items
	e.Totals = totals
	e.UpdatedAt = now
	return nil
}

// IsExpired reports the derived expired condition: past ValidUntil and not
// accepted. Computed on read, never persisted.
func (e *Estimate) IsExpired(now time.Time) bool {
	return e.ValidUntil != nil && now.After(*e.ValidUntil) && e.Status != EstimateAccepted
}

// DisplayStatus returns the status with the derived expired condition
// applied on top of the stored value.
func (e *Estimate) DisplayStatus(now time.Time) EstimateStatus {
	if e.IsExpired(now) {
		return EstimateExpired
	}
	return e.Status
}

// Send marks a draft estimate as sent.
func (e *Estimate) Send(now time.Time) error {
	if e.Status != EstimateDraft {
		return e.transitionErr("send")
	}
	if err := e.validateIssuable(); err != nil {
		return err
	}
	e.Status = EstimateSent
	e.SentAt = &now
	e.UpdatedAt = now
	return nil
}

// MarkViewed records that the customer opened a sent estimate.
func (e *Estimate) MarkViewed(now time.Time) error {
	if e.Status != EstimateSent {
		return e.transitionErr("mark viewed")
	}
	e.Status = EstimateViewed
	e.ViewedAt = &now
	e.UpdatedAt = now
	return nil
}

// Accept moves a sent or viewed estimate to accepted. Terminal with respect
// to further status changes, but the estimate stays eligible for
// conversion. An estimate past its ValidUntil cannot be accepted.
func (e *Estimate) Accept(now time.Time) error {
	if e.Status != EstimateSent && e.Status != EstimateViewed {
		return e.transitionErr("accept")
	}
	if e.IsExpired(now) {
		return fmt.Errorf("%w: estimate %s expired %s", ErrInvalidTransition,
			e.DocumentNumber, e.ValidUntil.Format("2006-01-02"))
	}
	e.Status = EstimateAccepted
	e.AcceptedAt = &now
	e.UpdatedAt = now
	return nil
}

// Decline moves a sent or viewed estimate to declined. Terminal. Unlike
// Accept, declining past ValidUntil is allowed: recording a customer's
// refusal is valid bookkeeping regardless of expiry.
func (e *Estimate) Decline(now time.Time) error {
	if e.Status != EstimateSent && e.Status != EstimateViewed {
		return e.transitionErr("decline")
	}
	e.Status = EstimateDeclined
	e.DeclinedAt = &now
	e.UpdatedAt = now
	return nil
}

func (e *Estimate) transitionErr(event string) error {
	return fmt.Errorf("%w: cannot %s estimate %s in status %s",
		ErrInvalidTransition, event, e.DocumentNumber, e.Status)
}
