package repository

import (
	"context"
	"testing"

	"github.com/jobledger/jobledger/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCustomerRepo(db)
	ctx := context.Background()

	cust := testutil.NewTestCustomer("Rosa Martinez",
		testutil.WithCustomerEmail("rosa@example.com"),
		testutil.WithServiceAddress("42 Oak St"))
	require.NoError(t, repo.Create(ctx, cust))

	fetched, err := repo.GetByID(ctx, cust.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Rosa Martinez", fetched.Name)
	assert.Equal(t, "rosa@example.com", fetched.Email)
	assert.Equal(t, "42 Oak St", fetched.ServiceAddress)
}

func TestCustomerRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCustomerRepo(db)

	fetched, err := repo.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, fetched)
}

func TestCustomerRepo_List_ExcludesArchived(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCustomerRepo(db)
	ctx := context.Background()

	c1 := testutil.NewTestCustomer("Active")
	c2 := testutil.NewTestCustomer("Archived")
	require.NoError(t, repo.Create(ctx, c1))
	require.NoError(t, repo.Create(ctx, c2))
	require.NoError(t, repo.Archive(ctx, c2.ID))

	list, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c1.ID, list[0].ID)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCustomerRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCustomerRepo(db)
	ctx := context.Background()

	cust := testutil.NewTestCustomer("Before")
	require.NoError(t, repo.Create(ctx, cust))

	cust.Name = "After"
	cust.Notes = "prefers morning visits"
	require.NoError(t, repo.Update(ctx, cust))

	fetched, err := repo.GetByID(ctx, cust.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", fetched.Name)
	assert.Equal(t, "prefers morning visits", fetched.Notes)
}

func TestTeamRepo_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTeamRepo(db)
	ctx := context.Background()

	m := testutil.NewTestTeamMember("Marcus", "electrician")
	require.NoError(t, repo.Create(ctx, m))

	fetched, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Marcus", fetched.Name)
	assert.Equal(t, "electrician", fetched.Role)

	require.NoError(t, repo.Archive(ctx, m.ID))
	list, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, list)
}
