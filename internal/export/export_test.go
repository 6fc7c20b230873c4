package export

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"
	"time"

	"github.com/jobledger/jobledger/internal/domain"
	"github.com/jobledger/jobledger/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestEstimateTable_UsesDisplayStatus(t *testing.T) {
	cust := testutil.NewTestCustomer("Rosa Martinez")
	past := time.Now().UTC().AddDate(0, 0, -2)
	expired := testutil.NewTestEstimate(cust,
		testutil.WithEstimateStatus(domain.EstimateSent),
		testutil.WithValidUntil(past))
	fresh := testutil.NewTestEstimate(cust)

	table := EstimateTable([]*domain.Estimate{expired, fresh}, time.Now().UTC())
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "expired", table.Rows[0][2])
	assert.Equal(t, "draft", table.Rows[1][2])
	assert.Equal(t, "638.00", table.Rows[0][7])
}

func TestInvoiceTable_EffectiveStatusAndBalance(t *testing.T) {
	cust := testutil.NewTestCustomer("Billing Co")
	inv := testutil.NewTestInvoice(cust, testutil.WithInvoiceStatus(domain.InvoiceSent))
	now := time.Now().UTC()
	require.NoError(t, inv.RecordPayment(domain.Payment{ID: "p1", Amount: 40, Date: now}, now))

	table := InvoiceTable([]*domain.Invoice{inv}, now)
	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, "partial", row[2])
	assert.Equal(t, "100.00", row[7])
	assert.Equal(t, "40.00", row[8])
	assert.Equal(t, "60.00", row[9])
}

func TestWorkOrderTable_JoinsAssignees(t *testing.T) {
	cust := testutil.NewTestCustomer("Jobsite LLC")
	wo := testutil.NewTestWorkOrder(cust, testutil.WithAssignees("Marcus", "Dee"))

	table := WorkOrderTable([]*domain.WorkOrder{wo})
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Marcus; Dee", table.Rows[0][5])
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	cust := testutil.NewTestCustomer("CSV Co")
	est := testutil.NewTestEstimate(cust)
	table := EstimateTable([]*domain.Estimate{est}, time.Now().UTC())

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, table.Headers, records[0])
	assert.Equal(t, est.DocumentNumber, records[1][0])
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	cust := testutil.NewTestCustomer("XLSX Co")
	inv := testutil.NewTestInvoice(cust)
	table := InvoiceTable([]*domain.Invoice{inv}, time.Now().UTC())

	path := filepath.Join(t.TempDir(), "invoices.xlsx")
	require.NoError(t, WriteXLSX(path, "Invoices", table))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Number", rows[0][0])
	assert.Equal(t, inv.DocumentNumber, rows[1][0])
}
