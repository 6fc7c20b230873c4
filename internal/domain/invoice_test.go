package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInvoice(t *testing.T) *Invoice {
	t.Helper()
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, 30)
	inv := &Invoice{
		ID:             "inv-1",
		DocumentNumber: "INV-0001",
		Customer:       CustomerRef{CustomerID: "cust-1", Name: "Dana Alvarez"},
		ServiceAddress: "12 Oak St",
		Status:         InvoiceDraft,
		TaxRate:        0,
		PaymentTerms:   DefaultPaymentTerms,
		DueDate:        &due,
		Payments:       []Payment{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	items := []LineItem{mustLineItem(t, "li-1", LineItemLabor, 10, 10, false)}
	require.NoError(t, inv.SetLineItems(items, now))
	return inv
}

func TestInvoice_SendAndView(t *testing.T) {
	inv := testInvoice(t)
	now := time.Now().UTC()

	require.NoError(t, inv.Send(now))
	assert.Equal(t, InvoiceSent, inv.Status)

	require.NoError(t, inv.MarkViewed(now))
	assert.Equal(t, InvoiceViewed, inv.Status)

	require.ErrorIs(t, inv.Send(now), ErrInvalidTransition)
}

func TestInvoice_RecordPaymentAccumulates(t *testing.T) {
	inv := testInvoice(t)
	now := time.Now().UTC()
	require.NoError(t, inv.Send(now))

	require.NoError(t, inv.RecordPayment(Payment{ID: "p1", Amount: 30, Date: now, Method: "check"}, now))
	require.NoError(t, inv.RecordPayment(Payment{ID: "p2", Amount: 20, Date: now, Method: "card"}, now))

	assert.Equal(t, 50.00, inv.AmountPaid())
	assert.Equal(t, 50.00, inv.Balance())
	require.Len(t, inv.Payments, 2, "payment history is append-only")
	require.NotNil(t, inv.Totals.AmountPaid)
	assert.Equal(t, 50.00, *inv.Totals.AmountPaid)
	require.NotNil(t, inv.Totals.Balance)
	assert.Equal(t, 50.00, *inv.Totals.Balance)
}

func TestInvoice_RecordPaymentValidation(t *testing.T) {
	inv := testInvoice(t)
	now := time.Now().UTC()

	require.ErrorIs(t, inv.RecordPayment(Payment{ID: "p1", Amount: 0}, now), ErrValidation)
	require.ErrorIs(t, inv.RecordPayment(Payment{ID: "p2", Amount: -5}, now), ErrValidation)
	assert.Empty(t, inv.Payments)

	require.NoError(t, inv.Cancel(now))
	require.ErrorIs(t, inv.RecordPayment(Payment{ID: "p3", Amount: 10}, now), ErrInvalidTransition)
}

func TestInvoice_EffectiveStatus_Partial(t *testing.T) {
	// Scenario: total 100.00, payments 30 + 20, due date in the future.
	inv := testInvoice(t)
	now := time.Now().UTC()
	future := now.AddDate(0, 0, 10)
	inv.DueDate = &future

	require.NoError(t, inv.Send(now))
	require.NoError(t, inv.RecordPayment(Payment{ID: "p1", Amount: 30, Date: now}, now))
	require.NoError(t, inv.RecordPayment(Payment{ID: "p2", Amount: 20, Date: now}, now))

	assert.Equal(t, InvoicePartial, inv.EffectiveStatus(now))
}

func TestInvoice_EffectiveStatus_Overdue(t *testing.T) {
	// Same invoice, due date in the past.
	inv := testInvoice(t)
	now := time.Now().UTC()
	past := now.AddDate(0, 0, -10)
	inv.DueDate = &past

	require.NoError(t, inv.Send(past.AddDate(0, 0, -5)))
	require.NoError(t, inv.RecordPayment(Payment{ID: "p1", Amount: 30, Date: now}, now))
	require.NoError(t, inv.RecordPayment(Payment{ID: "p2", Amount: 20, Date: now}, now))

	assert.Equal(t, InvoiceOverdue, inv.EffectiveStatus(now))
}

func TestInvoice_EffectiveStatus_PaidBeatsOverdue(t *testing.T) {
	inv := testInvoice(t)
	now := time.Now().UTC()
	past := now.AddDate(0, 0, -10)
	inv.DueDate = &past

	require.NoError(t, inv.Send(past.AddDate(0, 0, -5)))
	require.NoError(t, inv.RecordPayment(Payment{ID: "p1", Amount: 100, Date: now}, now))

	assert.Equal(t, InvoicePaid, inv.EffectiveStatus(now),
		"a fully paid invoice past its due date reads paid, not overdue")
	assert.Equal(t, 0.00, inv.Balance())
}

func TestInvoice_EffectiveStatus_ExplicitPrecedence(t *testing.T) {
	now := time.Now().UTC()

	inv := testInvoice(t)
	assert.Equal(t, InvoiceDraft, inv.EffectiveStatus(now), "draft shows before any derivation")

	inv = testInvoice(t)
	require.NoError(t, inv.Send(now))
	require.NoError(t, inv.RecordPayment(Payment{ID: "p1", Amount: 100, Date: now}, now))
	require.NoError(t, inv.Cancel(now))
	assert.Equal(t, InvoiceCancelled, inv.EffectiveStatus(now), "cancelled outranks paid")
}

func TestInvoice_EffectiveStatus_StoredFallback(t *testing.T) {
	inv := testInvoice(t)
	now := time.Now().UTC()
	future := now.AddDate(0, 0, 10)
	inv.DueDate = &future

	require.NoError(t, inv.Send(now))
	assert.Equal(t, InvoiceSent, inv.EffectiveStatus(now))

	require.NoError(t, inv.MarkViewed(now))
	assert.Equal(t, InvoiceViewed, inv.EffectiveStatus(now))
}
