package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jobledger/jobledger/internal/domain"
	"github.com/jobledger/jobledger/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	customers := NewSQLiteCustomerRepo(db)
	repo := NewSQLiteEstimateRepo(db)
	ctx := context.Background()

	cust := testutil.NewTestCustomer("Rosa Martinez")
	require.NoError(t, customers.Create(ctx, cust))

	validUntil := time.Now().UTC().AddDate(0, 1, 0)
	est := testutil.NewTestEstimate(cust, testutil.WithValidUntil(validUntil))
	require.NoError(t, repo.Create(ctx, est))

	fetched, err := repo.GetByID(ctx, est.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, est.DocumentNumber, fetched.DocumentNumber)
	assert.Equal(t, domain.EstimateDraft, fetched.Status)
	assert.Equal(t, cust.ID, fetched.Customer.CustomerID)
	assert.Equal(t, "Rosa Martinez", fetched.Customer.Name)
	require.NotNil(t, fetched.ValidUntil)
	assert.Equal(t, validUntil.Format(time.RFC3339), fetched.ValidUntil.Format(time.RFC3339))

	require.Len(t, fetched.LineItems, 2)
	assert.Equal(t, est.Totals.Subtotal, fetched.Totals.Subtotal)
	assert.Equal(t, est.Totals.Total, fetched.Totals.Total)
}

func TestEstimateRepo_GetByNumber_CaseInsensitive(t *testing.T) {
	db := testutil.NewTestDB(t)
	customers := NewSQLiteCustomerRepo(db)
	repo := NewSQLiteEstimateRepo(db)
	ctx := context.Background()

	cust := testutil.NewTestCustomer("Case Test")
	require.NoError(t, customers.Create(ctx, cust))

	est := testutil.NewTestEstimate(cust)
	require.NoError(t, repo.Create(ctx, est))

	fetched, err := repo.GetByNumber(ctx, est.DocumentNumber)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, est.ID, fetched.ID)
}

func TestEstimateRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEstimateRepo(db)

	fetched, err := repo.GetByID(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, fetched)
}

func TestEstimateRepo_Update_RoundTripsTransition(t *testing.T) {
	db := testutil.NewTestDB(t)
	customers := NewSQLiteCustomerRepo(db)
	repo := NewSQLiteEstimateRepo(db)
	ctx := context.Background()

	cust := testutil.NewTestCustomer("Update Co")
	require.NoError(t, customers.Create(ctx, cust))

	est := testutil.NewTestEstimate(cust)
	require.NoError(t, repo.Create(ctx, est))

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, est.Send(now))
	require.NoError(t, repo.Update(ctx, est))

	fetched, err := repo.GetByID(ctx, est.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EstimateSent, fetched.Status)
	require.NotNil(t, fetched.SentAt)
	assert.True(t, fetched.SentAt.Equal(now))
}

func TestEstimateRepo_Update_ReplacesLineItems(t *testing.T) {
	db := testutil.NewTestDB(t)
	customers := NewSQLiteCustomerRepo(db)
	repo := NewSQLiteEstimateRepo(db)
	ctx := context.Background()

	cust := testutil.NewTestCustomer("Repricing")
	require.NoError(t, customers.Create(ctx, cust))

	est := testutil.NewTestEstimate(cust)
	require.NoError(t, repo.Create(ctx, est))

	items := []domain.LineItem{
		testutil.NewTestLineItem(domain.LineItemEquipment, "Lift rental", 2, 150, true),
	}
	require.NoError(t, est.SetLineItems(items, time.Now().UTC()))
	require.NoError(t, repo.Update(ctx, est))

	fetched, err := repo.GetByID(ctx, est.ID)
	require.NoError(t, err)
	require.Len(t, fetched.LineItems, 1)
	assert.Equal(t, domain.LineItemEquipment, fetched.LineItems[0].Type)
	assert.Equal(t, 300.0, fetched.LineItems[0].Amount)
	assert.Equal(t, est.Totals.Total, fetched.Totals.Total)
}

func TestEstimateRepo_List_Filters(t *testing.T) {
	db := testutil.NewTestDB(t)
	customers := NewSQLiteCustomerRepo(db)
	repo := NewSQLiteEstimateRepo(db)
	ctx := context.Background()

	alice := testutil.NewTestCustomer("Alice")
	bob := testutil.NewTestCustomer("Bob")
	require.NoError(t, customers.Create(ctx, alice))
	require.NoError(t, customers.Create(ctx, bob))

	e1 := testutil.NewTestEstimate(alice)
	e2 := testutil.NewTestEstimate(alice, testutil.WithEstimateStatus(domain.EstimateSent))
	e3 := testutil.NewTestEstimate(bob)
	for _, e := range []*domain.Estimate{e1, e2, e3} {
		require.NoError(t, repo.Create(ctx, e))
	}

	all, err := repo.List(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byCustomer, err := repo.List(ctx, &alice.ID, nil)
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	sent := domain.EstimateSent
	byStatus, err := repo.List(ctx, &alice.ID, &sent)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, e2.ID, byStatus[0].ID)
}

func TestEstimateRepo_SoftDelete_HidesFromList(t *testing.T) {
	db := testutil.NewTestDB(t)
	customers := NewSQLiteCustomerRepo(db)
	repo := NewSQLiteEstimateRepo(db)
	ctx := context.Background()

	cust := testutil.NewTestCustomer("Trash Test")
	require.NoError(t, customers.Create(ctx, cust))

	est := testutil.NewTestEstimate(cust)
	require.NoError(t, repo.Create(ctx, est))
	require.NoError(t, repo.SoftDelete(ctx, est.ID))

	list, err := repo.List(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Direct lookup still finds the record.
	fetched, err := repo.GetByID(ctx, est.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.NotNil(t, fetched.DeletedAt)
}

func TestEstimateRepo_ConversionReferencesPersist(t *testing.T) {
	db := testutil.NewTestDB(t)
	customers := NewSQLiteCustomerRepo(db)
	repo := NewSQLiteEstimateRepo(db)
	ctx := context.Background()

	cust := testutil.NewTestCustomer("Converted")
	require.NoError(t, customers.Create(ctx, cust))

	est := testutil.NewTestEstimate(cust, testutil.WithEstimateStatus(domain.EstimateAccepted))
	require.NoError(t, repo.Create(ctx, est))

	est.ConvertedToWorkOrderID = "wo-123"
	require.NoError(t, repo.Update(ctx, est))

	fetched, err := repo.GetByID(ctx, est.ID)
	require.NoError(t, err)
	assert.Equal(t, "wo-123", fetched.ConvertedToWorkOrderID)
	assert.Empty(t, fetched.ConvertedToInvoiceID)
}
