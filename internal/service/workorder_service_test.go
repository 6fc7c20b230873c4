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

func newWorkOrderFixture(t *testing.T) (WorkOrderService, *domain.Customer, context.Context) {
	t.Helper()
	database := testutil.NewTestDB(t)
	customers := repository.NewSQLiteCustomerRepo(database)
	svc := NewWorkOrderService(
		repository.NewSQLiteWorkOrderRepo(database),
		customers,
		testutil.NewTestUoW(database))
	ctx := context.Background()

	cust := testutil.NewTestCustomer("Jobsite LLC")
	require.NoError(t, customers.Create(ctx, cust))
	return svc, cust, ctx
}

func jobItems() []domain.LineItem {
	return []domain.LineItem{
		testutil.NewTestLineItem(domain.LineItemLabor, "Rough-in", 8, 110, true),
	}
}

func TestWorkOrderService_CreateDraft_Defaults(t *testing.T) {
	svc, cust, ctx := newWorkOrderFixture(t)

	wo, err := svc.CreateDraft(ctx, WorkOrderDraftInput{
		CustomerID: cust.ID,
		TaxRate:    8.25,
		LineItems:  jobItems(),
	})
	require.NoError(t, err)
	assert.Equal(t, "WO-0001", wo.DocumentNumber)
	assert.Equal(t, domain.WorkOrderDraft, wo.Status)
	assert.Equal(t, domain.PriorityNormal, wo.Priority)
	assert.Equal(t, 880.0, wo.Totals.Subtotal)
	assert.Equal(t, 952.60, wo.Totals.Total)
}

func TestWorkOrderService_FullLifecycle(t *testing.T) {
	svc, cust, ctx := newWorkOrderFixture(t)

	wo, err := svc.CreateDraft(ctx, WorkOrderDraftInput{CustomerID: cust.ID, LineItems: jobItems()})
	require.NoError(t, err)

	date := time.Now().UTC().AddDate(0, 0, 2)
	wo, err = svc.Schedule(ctx, wo.ID, date, "08:00")
	require.NoError(t, err)
	assert.Equal(t, domain.WorkOrderScheduled, wo.Status)
	assert.Equal(t, "08:00", wo.ScheduledTime)

	wo, err = svc.Start(ctx, wo.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkOrderInProgress, wo.Status)
	require.NotNil(t, wo.StartedAt)

	wo, err = svc.Hold(ctx, wo.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkOrderOnHold, wo.Status)

	wo, err = svc.Resume(ctx, wo.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkOrderInProgress, wo.Status)

	wo, err = svc.Complete(ctx, wo.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkOrderCompleted, wo.Status)
	require.NotNil(t, wo.CompletedAt)
	assert.True(t, wo.InvoiceEligible())

	_, err = svc.Cancel(ctx, wo.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestWorkOrderService_LogTime(t *testing.T) {
	svc, cust, ctx := newWorkOrderFixture(t)

	wo, err := svc.CreateDraft(ctx, WorkOrderDraftInput{CustomerID: cust.ID, LineItems: jobItems()})
	require.NoError(t, err)
	date := time.Now().UTC()
	_, err = svc.Schedule(ctx, wo.ID, date, "")
	require.NoError(t, err)
	_, err = svc.Start(ctx, wo.ID)
	require.NoError(t, err)

	wo, err = svc.LogTime(ctx, wo.ID, domain.TimeEntry{
		Description: "Rough-in",
		StartedAt:   date,
		Minutes:     120,
	})
	require.NoError(t, err)
	require.Len(t, wo.TimeTracking, 1)
	assert.NotEmpty(t, wo.TimeTracking[0].ID)
	assert.Equal(t, wo.ID, wo.TimeTracking[0].WorkOrderID)
	assert.Equal(t, 120, wo.LoggedMinutes())

	_, err = svc.LogTime(ctx, wo.ID, domain.TimeEntry{StartedAt: date, Minutes: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestWorkOrderService_Assign(t *testing.T) {
	svc, cust, ctx := newWorkOrderFixture(t)

	wo, err := svc.CreateDraft(ctx, WorkOrderDraftInput{CustomerID: cust.ID, LineItems: jobItems()})
	require.NoError(t, err)

	wo, err = svc.Assign(ctx, wo.ID, []string{"Marcus", "Dee"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Marcus", "Dee"}, wo.AssignedTo)

	_, err = svc.Cancel(ctx, wo.ID)
	require.NoError(t, err)
	_, err = svc.Assign(ctx, wo.ID, []string{"Nobody"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
