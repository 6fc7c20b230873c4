package domain

import (
	"fmt"
	"time"
)

// TimeEntry is one logged block of work against a work order.
type TimeEntry struct {
	ID          string     `json:"id"`
	WorkOrderID string     `json:"workOrderId"`
	Description string     `json:"description,omitempty"`
	StartedAt   time.Time  `json:"startedAt"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
	Minutes     int        `json:"minutes"`
}

// WorkOrder is scheduled, assignable work, usually born from an accepted
// estimate. Status moves draft → scheduled → in_progress ⇄ on_hold →
// completed, with cancelled reachable from any non-terminal state.
type WorkOrder struct {
	ID             string      `json:"id"`
	DocumentNumber string      `json:"documentNumber"`
	EstimateID     string      `json:"estimateId,omitempty"`
	Customer       CustomerRef `json:"customer"`
	ServiceAddress string      `json:"serviceAddress"`
	BillingAddress string      `json:"billingAddress,omitempty"`

	LineItems []LineItem      `json:"lineItems"`
	Status    WorkOrderStatus `json:"status"`
	TaxRate   float64         `json:"taxRate"`
	Totals    DocumentTotals  `json:"totals"`

	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	ScheduledTime string     `json:"scheduledTime,omitempty"`
	AssignedTo    []string   `json:"assignedTo"`
	Priority      Priority   `json:"priority"`
	TimeTracking  []TimeEntry `json:"timeTracking"`

	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	// Set at most once, when the work order is converted to an invoice.
	ConvertedToInvoiceID string `json:"convertedToInvoiceId,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// IsTerminal reports whether no further transitions are permitted.
func (w *WorkOrder) IsTerminal() bool {
	return w.Status == WorkOrderCompleted || w.Status == WorkOrderCancelled
}

// InvoiceEligible reports whether this work order can be converted to an
// invoice: completed and not yet converted.
func (w *WorkOrder) InvoiceEligible() bool {
	return w.Status == WorkOrderCompleted && w.ConvertedToInvoiceID == ""
}

// SetLineItems replaces the line items and recomputes totals.
func (w *WorkOrder) SetLineItems(items []LineItem, now time.Time) error {
	totals, err := CalculateDocumentTotals(items, w.TaxRate)
	if err != nil {
		return err
	}
	w.LineItems = items
	w.Totals = totals
	w.UpdatedAt = now
	return nil
}

// Schedule moves a draft work order to scheduled on the given date.
// scheduledTime is an optional free-form time-of-day such as "09:00".
func (w *WorkOrder) Schedule(date time.Time, scheduledTime string, now time.Time) error {
	if w.Status != WorkOrderDraft {
		return w.transitionErr("schedule")
	}
	if w.Customer.CustomerID == "" {
		return fmt.Errorf("%w: work order %s has no customer", ErrValidation, w.DocumentNumber)
	}
	if len(w.LineItems) == 0 {
		return fmt.Errorf("%w: work order %s has no line items", ErrValidation, w.DocumentNumber)
	}
	w.Status = WorkOrderScheduled
	w.ScheduledDate = &date
	w.ScheduledTime = scheduledTime
	w.UpdatedAt = now
	return nil
}

// Start moves a scheduled work order to in_progress. The first entry into
// in_progress records StartedAt.
func (w *WorkOrder) Start(now time.Time) error {
	if w.Status != WorkOrderScheduled {
		return w.transitionErr("start")
	}
	w.Status = WorkOrderInProgress
	if w.StartedAt == nil {
		w.StartedAt = &now
	}
	w.UpdatedAt = now
	return nil
}

// Hold pauses an in-progress work order.
func (w *WorkOrder) Hold(now time.Time) error {
	if w.Status != WorkOrderInProgress {
		return w.transitionErr("hold")
	}
	w.Status = WorkOrderOnHold
	w.UpdatedAt = now
	return nil
}

// Resume returns an on-hold work order to in_progress. StartedAt is only
// recorded once, on the first start.
func (w *WorkOrder) Resume(now time.Time) error {
	if w.Status != WorkOrderOnHold {
		return w.transitionErr("resume")
	}
	w.Status = WorkOrderInProgress
	if w.StartedAt == nil {
		w.StartedAt = &now
	}
	w.UpdatedAt = now
	return nil
}

// Complete finishes an in-progress or on-hold work order and records
// CompletedAt.
func (w *WorkOrder) Complete(now time.Time) error {
	if w.Status != WorkOrderInProgress && w.Status != WorkOrderOnHold {
		return w.transitionErr("complete")
	}
	w.Status = WorkOrderCompleted
	w.CompletedAt = &now
	w.UpdatedAt = now
	return nil
}

// Cancel aborts any non-terminal work order.
func (w *WorkOrder) Cancel(now time.Time) error {
	if w.IsTerminal() {
		return w.transitionErr("cancel")
	}
	w.Status = WorkOrderCancelled
	w.CancelledAt = &now
	w.UpdatedAt = now
	return nil
}

// LogTime appends a time entry. Entries are append-only; cancelled and
// completed work orders no longer accept time.
func (w *WorkOrder) LogTime(entry TimeEntry, now time.Time) error {
	if w.IsTerminal() {
		return w.transitionErr("log time against")
	}
	if entry.Minutes <= 0 {
		return fmt.Errorf("%w: time entry minutes must be positive", ErrValidation)
	}
	entry.WorkOrderID = w.ID
	w.TimeTracking = append(w.TimeTracking, entry)
	w.UpdatedAt = now
	return nil
}

// LoggedMinutes sums all tracked time.
func (w *WorkOrder) LoggedMinutes() int {
	total := 0
	for _, e := range w.TimeTracking {
		total += e.Minutes
	}
	return total
}

func (w *WorkOrder) transitionErr(event string) error {
	return fmt.Errorf("%w: cannot %s work order %s in status %s",
		ErrInvalidTransition, event, w.DocumentNumber, w.Status)
}
