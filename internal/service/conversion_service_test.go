package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jobledger/jobledger/internal/domain"
	"github.com/jobledger/jobledger/internal/repository"
	"github.com/jobledger/jobledger/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversion_EstimateToWorkOrder_CopiesEverything(t *testing.T) {
	database := testutil.NewTestDB(t)
	customers := repository.NewSQLiteCustomerRepo(database)
	estimates := repository.NewSQLiteEstimateRepo(database)
	svc := NewConversionService(testutil.NewTestUoW(database))
	ctx := context.Background()

	cust := testutil.NewTestCustomer("Rosa Martinez")
	require.NoError(t, customers.Create(ctx, cust))
	est := testutil.NewTestEstimate(cust, testutil.WithEstimateStatus(domain.EstimateAccepted))
	require.NoError(t, estimates.Create(ctx, est))

	scheduled := time.Now().UTC().AddDate(0, 0, 3).Truncate(time.Second)
	wo, err := svc.EstimateToWorkOrder(ctx, est.ID, ConvertOptions{
		ScheduledDate: &scheduled,
		AssignedTo:    []string{"Marcus"},
	})
	require.NoError(t, err)

	assert.Equal(t, est.ID, wo.EstimateID)
	assert.Equal(t, est.Customer, wo.Customer)
	assert.Equal(t, est.TaxRate, wo.TaxRate)
	assert.Equal(t, est.Totals.Total, wo.Totals.Total)
	assert.Equal(t, domain.WorkOrderScheduled, wo.Status)
	assert.Equal(t, []string{"Marcus"}, wo.AssignedTo)
	require.Len(t, wo.LineItems, len(est.LineItems))
	for i := range est.LineItems {
		assert.Equal(t, est.LineItems[i].Description, wo.LineItems[i].Description)
		assert.Equal(t, est.LineItems[i].Amount, wo.LineItems[i].Amount)
		assert.NotEqual(t, est.LineItems[i].ID, wo.LineItems[i].ID)
	}

	// Both sides of the conversion are on disk.
	stored, err := estimates.GetByID(ctx, est.ID)
	require.NoError(t, err)
	assert.Equal(t, wo.ID, stored.ConvertedToWorkOrderID)

	storedWO, err := repository.NewSQLiteWorkOrderRepo(database).GetByID(ctx, wo.ID)
	require.NoError(t, err)
	require.NotNil(t, storedWO)
	assert.Equal(t, "WO-0001", storedWO.DocumentNumber)
}

func TestConversion_EstimateToWorkOrder_RejectsUnaccepted(t *testing.T) {
	database := testutil.NewTestDB(t)
	customers := repository.NewSQLiteCustomerRepo(database)
	estimates := repository.NewSQLiteEstimateRepo(database)
	svc := NewConversionService(testutil.NewTestUoW(database))
	ctx := context.Background()

	cust := testutil.NewTestCustomer("Pending")
	require.NoError(t, customers.Create(ctx, cust))
	est := testutil.NewTestEstimate(cust, testutil.WithEstimateStatus(domain.EstimateSent))
	require.NoError(t, estimates.Create(ctx, est))

	_, err := svc.EstimateToWorkOrder(ctx, est.ID, ConvertOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestConversion_EstimateToWorkOrder_SecondAttemptFails(t *testing.T) {
	database := testutil.NewTestDB(t)
	customers := repository.NewSQLiteCustomerRepo(database)
	estimates := repository.NewSQLiteEstimateRepo(database)
	svc := NewConversionService(testutil.NewTestUoW(database))
	ctx := context.Background()

	cust := testutil.NewTestCustomer("Once Only")
	require.NoError(t, customers.Create(ctx, cust))
	est := testutil.NewTestEstimate(cust, testutil.WithEstimateStatus(domain.EstimateAccepted))
	require.NoError(t, estimates.Create(ctx, est))

	_, err := svc.EstimateToWorkOrder(ctx, est.ID, ConvertOptions{})
	require.NoError(t, err)

	_, err = svc.EstimateToWorkOrder(ctx, est.ID, ConvertOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)

	// Still exactly one work order.
	list, err := repository.NewSQLiteWorkOrderRepo(database).List(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestConversion_WorkOrderToInvoice(t *testing.T) {
	database := testutil.NewTestDB(t)
	customers := repository.NewSQLiteCustomerRepo(database)
	workOrders := repository.NewSQLiteWorkOrderRepo(database)
	svc := NewConversionService(testutil.NewTestUoW(database))
	ctx := context.Background()

	cust := testutil.NewTestCustomer("Finished Job")
	require.NoError(t, customers.Create(ctx, cust))
	wo := testutil.NewTestWorkOrder(cust, testutil.WithWorkOrderStatus(domain.WorkOrderCompleted))
	require.NoError(t, workOrders.Create(ctx, wo))

	inv, err := svc.WorkOrderToInvoice(ctx, wo.ID, ConvertOptions{})
	require.NoError(t, err)

	assert.Equal(t, wo.ID, inv.WorkOrderID)
	assert.Equal(t, wo.EstimateID, inv.EstimateID)
	assert.Equal(t, "INV-0001", inv.DocumentNumber)
	assert.Equal(t, domain.InvoiceDraft, inv.Status)
	assert.Equal(t, domain.DefaultPaymentTerms, inv.PaymentTerms)
	require.NotNil(t, inv.DueDate)
	assert.Equal(t, wo.Totals.Total, inv.Totals.Total)
	require.NotNil(t, inv.Totals.Balance)
	assert.Equal(t, inv.Totals.Total, *inv.Totals.Balance)
	assert.Empty(t, inv.Payments)

	stored, err := workOrders.GetByID(ctx, wo.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, stored.ConvertedToInvoiceID)
	assert.False(t, stored.InvoiceEligible())
}

func TestConversion_WorkOrderToInvoice_RequiresCompleted(t *testing.T) {
	database := testutil.NewTestDB(t)
	customers := repository.NewSQLiteCustomerRepo(database)
	workOrders := repository.NewSQLiteWorkOrderRepo(database)
	svc := NewConversionService(testutil.NewTestUoW(database))
	ctx := context.Background()

	cust := testutil.NewTestCustomer("Mid Job")
	require.NoError(t, customers.Create(ctx, cust))
	wo := testutil.NewTestWorkOrder(cust, testutil.WithWorkOrderStatus(domain.WorkOrderInProgress))
	require.NoError(t, workOrders.Create(ctx, wo))

	_, err := svc.WorkOrderToInvoice(ctx, wo.ID, ConvertOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestConversion_EstimateToInvoice_Shortcut(t *testing.T) {
	database := testutil.NewTestDB(t)
	customers := repository.NewSQLiteCustomerRepo(database)
	estimates := repository.NewSQLiteEstimateRepo(database)
	svc := NewConversionService(testutil.NewTestUoW(database))
	ctx := context.Background()

	cust := testutil.NewTestCustomer("Direct Bill")
	require.NoError(t, customers.Create(ctx, cust))
	est := testutil.NewTestEstimate(cust, testutil.WithEstimateStatus(domain.EstimateAccepted))
	require.NoError(t, estimates.Create(ctx, est))

	inv, err := svc.EstimateToInvoice(ctx, est.ID, ConvertOptions{})
	require.NoError(t, err)
	assert.Equal(t, est.ID, inv.EstimateID)
	assert.Empty(t, inv.WorkOrderID)
	assert.Equal(t, est.Totals.Total, inv.Totals.Total)

	stored, err := estimates.GetByID(ctx, est.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, stored.ConvertedToInvoiceID)

	// The estimate is spent: no second conversion down either path.
	_, err = svc.EstimateToWorkOrder(ctx, est.ID, ConvertOptions{})
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)
	_, err = svc.EstimateToInvoice(ctx, est.ID, ConvertOptions{})
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)
}

func TestConversion_RollbackLeavesSourceUntouched(t *testing.T) {
	database := testutil.NewTestDB(t)
	customers := repository.NewSQLiteCustomerRepo(database)
	estimates := repository.NewSQLiteEstimateRepo(database)
	ctx := context.Background()

	cust := testutil.NewTestCustomer("Rollback")
	require.NoError(t, customers.Create(ctx, cust))
	est := testutil.NewTestEstimate(cust, testutil.WithEstimateStatus(domain.EstimateAccepted))
	require.NoError(t, estimates.Create(ctx, est))

	injected := errors.New("disk full")
	// Exec 1 seeds the sequence, 2 inserts the work order, 3 and 4 insert
	// line items; failing on the last write exercises a partial insert.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 4, Err: injected}
	svc := NewConversionService(uow)

	_, err := svc.EstimateToWorkOrder(ctx, est.ID, ConvertOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, injected)

	// Nothing committed: no work order, estimate unconverted, no number burned.
	list, err := repository.NewSQLiteWorkOrderRepo(database).List(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	stored, err := estimates.GetByID(ctx, est.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ConvertedToWorkOrderID)

	wo, err := NewConversionService(testutil.NewTestUoW(database)).EstimateToWorkOrder(ctx, est.ID, ConvertOptions{})
	require.NoError(t, err)
	assert.Equal(t, "WO-0001", wo.DocumentNumber)
}
