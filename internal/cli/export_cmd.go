package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobledger/jobledger/internal/export"
)

func newExportCmd(app *App) *cobra.Command {
	var format, out, customer string

	cmd := &cobra.Command{
		Use:   "export {estimates|workorders|invoices}",
		Short: "Export documents to CSV or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now().UTC()

			var customerID *string
			if customer != "" {
				id, err := resolveCustomerID(ctx, app, customer)
				if err != nil {
					return err
				}
				customerID = &id
			}

			kind := strings.ToLower(args[0])
			sheetNames := map[string]string{
				"estimates": "Estimates", "workorders": "Work Orders", "invoices": "Invoices",
			}
			var table export.Table
			switch kind {
			case "estimates":
				estimates, err := app.Estimates.List(ctx, customerID, nil)
				if err != nil {
					return err
				}
				table = export.EstimateTable(estimates, now)
			case "workorders":
				orders, err := app.WorkOrders.List(ctx, customerID, nil)
				if err != nil {
					return err
				}
				table = export.WorkOrderTable(orders)
			case "invoices":
				invoices, err := app.Invoices.List(ctx, customerID, nil)
				if err != nil {
					return err
				}
				table = export.InvoiceTable(invoices, now)
			default:
				return fmt.Errorf("unknown export target %q, expected estimates, workorders or invoices", args[0])
			}

			if out == "" {
				name := fmt.Sprintf("%s-%s.%s", kind, now.Format("2006-01-02"), format)
				out = filepath.Join(app.Config.Documents.ExportDir, name)
			}

			switch format {
			case "csv":
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
				defer f.Close()
				if err := export.WriteCSV(f, table); err != nil {
					return err
				}
			case "xlsx":
				if err := export.WriteXLSX(out, sheetNames[kind], table); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown --format %q, expected csv or xlsx", format)
			}

			fmt.Printf("Exported %d rows to %s\n", len(table.Rows), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Output format (csv|xlsx)")
	cmd.Flags().StringVar(&out, "out", "", "Output path (defaults to the configured export directory)")
	cmd.Flags().StringVar(&customer, "customer", "", "Only export documents for this customer")

	return cmd
}
