package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEstimate(t *testing.T) *Estimate {
	t.Helper()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	e := &Estimate{
		ID:             "est-1",
		DocumentNumber: "EST-0001",
		Customer:       CustomerRef{CustomerID: "cust-1", Name: "Dana Alvarez"},
		ServiceAddress: "12 Oak St",
		Status:         EstimateDraft,
		TaxRate:        10,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	items := []LineItem{
		mustLineItem(t, "li-1", LineItemLabor, 4, 95, true),
		mustLineItem(t, "li-2", LineItemMaterial, 1, 200, true),
	}
	require.NoError(t, e.SetLineItems(items, now))
	return e
}

func TestEstimate_HappyPathToAccepted(t *testing.T) {
	e := testEstimate(t)
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	require.NoError(t, e.Send(now))
	assert.Equal(t, EstimateSent, e.Status)
	require.NotNil(t, e.SentAt)

	later := now.Add(2 * time.Hour)
	require.NoError(t, e.MarkViewed(later))
	assert.Equal(t, EstimateViewed, e.Status)

	require.NoError(t, e.Accept(later.Add(time.Hour)))
	assert.Equal(t, EstimateAccepted, e.Status)
	require.NotNil(t, e.AcceptedAt)
}

func TestEstimate_AcceptDirectlyFromSent(t *testing.T) {
	e := testEstimate(t)
	now := time.Now().UTC()

	require.NoError(t, e.Send(now))
	require.NoError(t, e.Accept(now))
	assert.Equal(t, EstimateAccepted, e.Status)
}

func TestEstimate_DeclineIsTerminal(t *testing.T) {
	e := testEstimate(t)
	now := time.Now().UTC()

	require.NoError(t, e.Send(now))
	require.NoError(t, e.Decline(now))

	require.ErrorIs(t, e.Accept(now), ErrInvalidTransition)
	require.ErrorIs(t, e.Send(now), ErrInvalidTransition)
	assert.Equal(t, EstimateDeclined, e.Status, "failed transition must not mutate status")
}

func TestEstimate_SendRequiresDraft(t *testing.T) {
	e := testEstimate(t)
	now := time.Now().UTC()

	require.NoError(t, e.Send(now))
	require.ErrorIs(t, e.Send(now), ErrInvalidTransition)
}

func TestEstimate_SendValidation(t *testing.T) {
	now := time.Now().UTC()

	noCustomer := testEstimate(t)
	noCustomer.Customer = CustomerRef{}
	require.ErrorIs(t, noCustomer.Send(now), ErrValidation)

	noItems := testEstimate(t)
	noItems.LineItems = nil
	require.ErrorIs(t, noItems.Send(now), ErrValidation)
	assert.Equal(t, EstimateDraft, noItems.Status)
}

func TestEstimate_ViewedRequiresSent(t *testing.T) {
	e := testEstimate(t)
	require.ErrorIs(t, e.MarkViewed(time.Now().UTC()), ErrInvalidTransition)
}

func TestEstimate_ExpiryIsDerived(t *testing.T) {
	e := testEstimate(t)
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -7)
	e.ValidUntil = &past

	e.Status = EstimateSent
	assert.True(t, e.IsExpired(now))
	assert.Equal(t, EstimateExpired, e.DisplayStatus(now))
	assert.Equal(t, EstimateSent, e.Status, "expired is never written back")

	e.Status = EstimateAccepted
	assert.False(t, e.IsExpired(now), "accepted estimates do not expire")
	assert.Equal(t, EstimateAccepted, e.DisplayStatus(now))
}

func TestEstimate_CannotAcceptExpired(t *testing.T) {
	e := testEstimate(t)
	now := time.Now().UTC()
	past := now.AddDate(0, 0, -1)
	e.ValidUntil = &past

	require.NoError(t, e.Send(past.AddDate(0, 0, -10)))
	require.ErrorIs(t, e.Accept(now), ErrInvalidTransition)
}

func TestEstimate_CanDeclineExpired(t *testing.T) {
	e := testEstimate(t)
	now := time.Now().UTC()
	past := now.AddDate(0, 0, -1)
	e.ValidUntil = &past

	require.NoError(t, e.Send(past.AddDate(0, 0, -10)))
	require.NoError(t, e.Decline(now))
	assert.Equal(t, EstimateDeclined, e.Status)
}

func TestEstimate_SetLineItemsRecomputesTotals(t *testing.T) {
	e := testEstimate(t)
	require.Equal(t, 580.00, e.Totals.Subtotal)
	require.Equal(t, 638.00, e.Totals.Total)

	now := time.Now().UTC()
	items := []LineItem{mustLineItem(t, "li-3", LineItemPermit, 1, 50, false)}
	require.NoError(t, e.SetLineItems(items, now))

	assert.Equal(t, 50.00, e.Totals.Subtotal)
	assert.Equal(t, 0.00, e.Totals.TaxAmount)
	assert.Equal(t, 50.00, e.Totals.Total)
}
