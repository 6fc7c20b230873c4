package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWorkOrder(t *testing.T) *WorkOrder {
	t.Helper()
	now := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	w := &WorkOrder{
		ID:             "wo-1",
		DocumentNumber: "WO-0001",
		Customer:       CustomerRef{CustomerID: "cust-1", Name: "Dana Alvarez"},
		ServiceAddress: "12 Oak St",
		Status:         WorkOrderDraft,
		Priority:       PriorityNormal,
		TaxRate:        8.25,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	items := []LineItem{mustLineItem(t, "li-1", LineItemLabor, 8, 110, true)}
	require.NoError(t, w.SetLineItems(items, now))
	return w
}

func TestWorkOrder_FullLifecycle(t *testing.T) {
	w := testWorkOrder(t)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC)

	require.NoError(t, w.Schedule(day, "08:30", now))
	assert.Equal(t, WorkOrderScheduled, w.Status)
	require.NotNil(t, w.ScheduledDate)
	assert.Equal(t, "08:30", w.ScheduledTime)

	start := day.Add(9 * time.Hour)
	require.NoError(t, w.Start(start))
	assert.Equal(t, WorkOrderInProgress, w.Status)
	require.NotNil(t, w.StartedAt)
	assert.Equal(t, start, *w.StartedAt)

	require.NoError(t, w.Hold(start.Add(time.Hour)))
	assert.Equal(t, WorkOrderOnHold, w.Status)

	require.NoError(t, w.Resume(start.Add(2*time.Hour)))
	assert.Equal(t, WorkOrderInProgress, w.Status)
	assert.Equal(t, start, *w.StartedAt, "StartedAt only set on first start")

	require.NoError(t, w.Complete(start.Add(6*time.Hour)))
	assert.Equal(t, WorkOrderCompleted, w.Status)
	require.NotNil(t, w.CompletedAt)
	assert.True(t, w.InvoiceEligible())
}

func TestWorkOrder_CompleteFromHold(t *testing.T) {
	w := testWorkOrder(t)
	now := time.Now().UTC()

	require.NoError(t, w.Schedule(now, "", now))
	require.NoError(t, w.Start(now))
	require.NoError(t, w.Hold(now))
	require.NoError(t, w.Complete(now))
	assert.Equal(t, WorkOrderCompleted, w.Status)
}

func TestWorkOrder_StartRequiresScheduled(t *testing.T) {
	w := testWorkOrder(t)
	require.ErrorIs(t, w.Start(time.Now().UTC()), ErrInvalidTransition)
}

func TestWorkOrder_CancelFromAnyNonTerminal(t *testing.T) {
	now := time.Now().UTC()

	for _, status := range []WorkOrderStatus{WorkOrderDraft, WorkOrderScheduled, WorkOrderInProgress, WorkOrderOnHold} {
		w := testWorkOrder(t)
		w.Status = status
		require.NoError(t, w.Cancel(now), "cancel from %s", status)
		assert.Equal(t, WorkOrderCancelled, w.Status)
		require.NotNil(t, w.CancelledAt)
	}

	for _, status := range []WorkOrderStatus{WorkOrderCompleted, WorkOrderCancelled} {
		w := testWorkOrder(t)
		w.Status = status
		require.ErrorIs(t, w.Cancel(now), ErrInvalidTransition, "cancel from %s", status)
	}
}

func TestWorkOrder_NotEligibleAfterConversion(t *testing.T) {
	w := testWorkOrder(t)
	w.Status = WorkOrderCompleted
	require.True(t, w.InvoiceEligible())

	w.ConvertedToInvoiceID = "inv-9"
	assert.False(t, w.InvoiceEligible())
}

func TestWorkOrder_LogTime(t *testing.T) {
	w := testWorkOrder(t)
	now := time.Now().UTC()
	require.NoError(t, w.Schedule(now, "", now))
	require.NoError(t, w.Start(now))

	require.NoError(t, w.LogTime(TimeEntry{ID: "t1", StartedAt: now, Minutes: 90}, now))
	require.NoError(t, w.LogTime(TimeEntry{ID: "t2", StartedAt: now, Minutes: 45}, now))
	assert.Equal(t, 135, w.LoggedMinutes())
	assert.Equal(t, w.ID, w.TimeTracking[0].WorkOrderID)

	require.ErrorIs(t, w.LogTime(TimeEntry{ID: "t3", Minutes: 0}, now), ErrValidation)

	require.NoError(t, w.Complete(now))
	require.ErrorIs(t, w.LogTime(TimeEntry{ID: "t4", Minutes: 30}, now), ErrInvalidTransition)
}

func TestWorkOrder_ScheduleValidation(t *testing.T) {
	now := time.Now().UTC()

	w := testWorkOrder(t)
	w.LineItems = nil
	require.ErrorIs(t, w.Schedule(now, "", now), ErrValidation)

	w = testWorkOrder(t)
	w.Customer = CustomerRef{}
	require.ErrorIs(t, w.Schedule(now, "", now), ErrValidation)
}
