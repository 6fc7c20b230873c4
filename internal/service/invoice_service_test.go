package service

import (
	"context"
	"testing"
	"time"

	"github.com/jobledger/jobledger/internal/domain"
	"github.com/jobledger/jobledger/internal/repository"
	"github.com/jobledger/jobledger/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvoiceFixture(t *testing.T) (InvoiceService, *domain.Customer, context.Context) {
	t.Helper()
	database := testutil.NewTestDB(t)
	customers := repository.NewSQLiteCustomerRepo(database)
	svc := NewInvoiceService(
		repository.NewSQLiteInvoiceRepo(database),
		customers,
		testutil.NewTestUoW(database))
	ctx := context.Background()

	cust := testutil.NewTestCustomer("Billing Co")
	require.NoError(t, customers.Create(ctx, cust))
	return svc, cust, ctx
}

func billItems() []domain.LineItem {
	return []domain.LineItem{
		testutil.NewTestLineItem(domain.LineItemLabor, "Service call", 10, 10, true),
	}
}

func TestInvoiceService_CreateDraft_Defaults(t *testing.T) {
	svc, cust, ctx := newInvoiceFixture(t)

	inv, err := svc.CreateDraft(ctx, InvoiceDraftInput{
		CustomerID: cust.ID,
		LineItems:  billItems(),
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", inv.DocumentNumber)
	assert.Equal(t, domain.DefaultPaymentTerms, inv.PaymentTerms)
	require.NotNil(t, inv.DueDate)
	assert.Equal(t, 100.0, inv.Totals.Total)
	require.NotNil(t, inv.Totals.Balance)
	assert.Equal(t, 100.0, *inv.Totals.Balance)
}

func TestInvoiceService_RecordPayment_Accumulates(t *testing.T) {
	svc, cust, ctx := newInvoiceFixture(t)

	inv, err := svc.CreateDraft(ctx, InvoiceDraftInput{CustomerID: cust.ID, LineItems: billItems()})
	require.NoError(t, err)
	_, err = svc.Send(ctx, inv.ID)
	require.NoError(t, err)

	inv, err = svc.RecordPayment(ctx, inv.ID, domain.Payment{Amount: 30, Method: "check"})
	require.NoError(t, err)
	assert.Equal(t, 30.0, inv.AmountPaid())
	assert.Equal(t, 70.0, inv.Balance())
	assert.Equal(t, domain.InvoicePartial, inv.EffectiveStatus(time.Now().UTC()))

	inv, err = svc.RecordPayment(ctx, inv.ID, domain.Payment{Amount: 70, Method: "card"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, inv.Balance())
	assert.Equal(t, domain.InvoicePaid, inv.EffectiveStatus(time.Now().UTC()))
	require.Len(t, inv.Payments, 2)
	assert.NotEmpty(t, inv.Payments[0].ID)
}

func TestInvoiceService_RecordPayment_Validation(t *testing.T) {
	svc, cust, ctx := newInvoiceFixture(t)

	inv, err := svc.CreateDraft(ctx, InvoiceDraftInput{CustomerID: cust.ID, LineItems: billItems()})
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, inv.ID, domain.Payment{Amount: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.RecordPayment(ctx, inv.ID, domain.Payment{Amount: -5})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Cancel(ctx, inv.ID)
	require.NoError(t, err)
	_, err = svc.RecordPayment(ctx, inv.ID, domain.Payment{Amount: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestInvoiceService_OverpaymentStillPaid(t *testing.T) {
	svc, cust, ctx := newInvoiceFixture(t)

	inv, err := svc.CreateDraft(ctx, InvoiceDraftInput{CustomerID: cust.ID, LineItems: billItems()})
	require.NoError(t, err)

	inv, err = svc.RecordPayment(ctx, inv.ID, domain.Payment{Amount: 120})
	require.NoError(t, err)
	assert.Equal(t, -20.0, inv.Balance())
	assert.Equal(t, domain.InvoicePaid, inv.EffectiveStatus(time.Now().UTC()))
}

func TestInvoiceService_OverdueBeatsPartial(t *testing.T) {
	svc, cust, ctx := newInvoiceFixture(t)

	past := time.Now().UTC().AddDate(0, 0, -5)
	inv, err := svc.CreateDraft(ctx, InvoiceDraftInput{
		CustomerID: cust.ID,
		DueDate:    &past,
		LineItems:  billItems(),
	})
	require.NoError(t, err)
	_, err = svc.Send(ctx, inv.ID)
	require.NoError(t, err)

	inv, err = svc.RecordPayment(ctx, inv.ID, domain.Payment{Amount: 50})
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceOverdue, inv.EffectiveStatus(time.Now().UTC()))
}

func TestInvoiceService_List_DerivedStatusFilter(t *testing.T) {
	svc, cust, ctx := newInvoiceFixture(t)
	now := time.Now().UTC()

	past := now.AddDate(0, 0, -5)
	overdue, err := svc.CreateDraft(ctx, InvoiceDraftInput{
		CustomerID: cust.ID,
		DueDate:    &past,
		LineItems:  billItems(),
	})
	require.NoError(t, err)
	_, err = svc.Send(ctx, overdue.ID)
	require.NoError(t, err)

	future := now.AddDate(0, 0, 14)
	partial, err := svc.CreateDraft(ctx, InvoiceDraftInput{
		CustomerID: cust.ID,
		DueDate:    &future,
		LineItems:  billItems(),
	})
	require.NoError(t, err)
	_, err = svc.Send(ctx, partial.ID)
	require.NoError(t, err)
	_, err = svc.RecordPayment(ctx, partial.ID, domain.Payment{Amount: 30})
	require.NoError(t, err)

	draft, err := svc.CreateDraft(ctx, InvoiceDraftInput{CustomerID: cust.ID, LineItems: billItems()})
	require.NoError(t, err)

	status := domain.InvoiceOverdue
	got, err := svc.List(ctx, nil, &status)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, overdue.ID, got[0].ID)

	status = domain.InvoicePartial
	got, err = svc.List(ctx, nil, &status)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, partial.ID, got[0].ID)

	status = domain.InvoicePaid
	got, err = svc.List(ctx, nil, &status)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Stored statuses still filter in the query.
	status = domain.InvoiceDraft
	got, err = svc.List(ctx, nil, &status)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, draft.ID, got[0].ID)
}
