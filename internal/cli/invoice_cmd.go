package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jobledger/jobledger/internal/cli/formatter"
	"github.com/jobledger/jobledger/internal/domain"
	"github.com/jobledger/jobledger/internal/service"
)

func newInvoiceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invoice",
		Aliases: []string{"inv"},
		Short:   "Manage invoices",
	}

	cmd.AddCommand(
		newInvoiceAddCmd(app),
		newInvoiceListCmd(app),
		newInvoiceShowCmd(app),
		newInvoiceSendCmd(app),
		newInvoiceViewCmd(app),
		newInvoicePayCmd(app),
		newInvoiceCancelCmd(app),
		newInvoiceRemoveCmd(app),
	)

	return cmd
}

func newInvoiceAddCmd(app *App) *cobra.Command {
	var (
		customer, serviceAddr, terms, due string
		taxRate                           float64
		itemSpecs                         []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a standalone draft invoice",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			customerID, err := resolveCustomerID(ctx, app, customer)
			if err != nil {
				return err
			}
			items, err := parseLineItemFlags(itemSpecs)
			if err != nil {
				return err
			}
			dueDate, err := parseDateFlag("due", due)
			if err != nil {
				return err
			}
			rate := app.Config.Documents.DefaultTaxRate
			if cmd.Flags().Changed("tax-rate") {
				rate = taxRate
			}
			if terms == "" {
				terms = app.Config.Documents.DefaultPaymentTerms
			}

			inv, err := app.Invoices.CreateDraft(ctx, service.InvoiceDraftInput{
				CustomerID:     customerID,
				ServiceAddress: serviceAddr,
				TaxRate:        rate,
				PaymentTerms:   terms,
				DueDate:        dueDate,
				LineItems:      items,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created invoice %s for %s — total %s, due %s\n",
				inv.DocumentNumber, inv.Customer.Name,
				formatter.Money(inv.Totals.Total), formatter.DatePtr(inv.DueDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "Customer name or ID")
	cmd.Flags().StringVar(&serviceAddr, "address", "", "Service address (defaults to the customer's)")
	cmd.Flags().Float64Var(&taxRate, "tax-rate", 0, "Tax rate percentage (defaults to configured rate)")
	cmd.Flags().StringVar(&terms, "terms", "", "Payment terms (defaults to configured terms)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&itemSpecs, "item", nil, "Line item: type|qty|rate|description[|notax]")
	_ = cmd.MarkFlagRequired("customer")

	return cmd
}

func newInvoiceListCmd(app *App) *cobra.Command {
	var customer, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var customerID *string
			if customer != "" {
				id, err := resolveCustomerID(ctx, app, customer)
				if err != nil {
					return err
				}
				customerID = &id
			}
			var statusFilter *domain.InvoiceStatus
			if status != "" {
				s := domain.InvoiceStatus(status)
				statusFilter = &s
			}

			invoices, err := app.Invoices.List(ctx, customerID, statusFilter)
			if err != nil {
				return err
			}
			if len(invoices) == 0 {
				fmt.Println("No invoices found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatInvoiceList(invoices, time.Now().UTC()))
			return nil
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "Filter by customer name or ID")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (draft|sent|viewed|cancelled|paid|partial|overdue)")

	return cmd
}

func newInvoiceShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show INVOICE",
		Short: "Show invoice details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := resolveInvoice(context.Background(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Print(companyHeader(app))
			fmt.Printf("%s\n", formatter.FormatInvoiceDetail(inv, time.Now().UTC()))
			return nil
		},
	}
}

func invoiceTransitionCmd(app *App, use, short, done string,
	fn func(context.Context, string) (*domain.Invoice, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " INVOICE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			inv, err := resolveInvoice(ctx, app, args[0])
			if err != nil {
				return err
			}
			inv, err = fn(ctx, inv.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%s invoice %s\n", done, inv.DocumentNumber)
			return nil
		},
	}
}

func newInvoiceSendCmd(app *App) *cobra.Command {
	return invoiceTransitionCmd(app, "send", "Mark an invoice as sent", "Sent", app.Invoices.Send)
}

func newInvoiceViewCmd(app *App) *cobra.Command {
	return invoiceTransitionCmd(app, "view", "Mark an invoice as viewed by the customer", "Marked viewed", app.Invoices.MarkViewed)
}

func newInvoiceCancelCmd(app *App) *cobra.Command {
	return invoiceTransitionCmd(app, "cancel", "Cancel an invoice", "Cancelled", app.Invoices.Cancel)
}

func newInvoicePayCmd(app *App) *cobra.Command {
	var amount float64
	var method, reference, date string

	cmd := &cobra.Command{
		Use:   "pay INVOICE",
		Short: "Record a payment against an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			inv, err := resolveInvoice(ctx, app, args[0])
			if err != nil {
				return err
			}

			paidAt := time.Now().UTC()
			if date != "" {
				day, err := parseDateFlag("date", date)
				if err != nil {
					return err
				}
				paidAt = *day
			}

			inv, err = app.Invoices.RecordPayment(ctx, inv.ID, domain.Payment{
				ID:        uuid.New().String(),
				Amount:    amount,
				Date:      paidAt,
				Method:    method,
				Reference: reference,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Recorded %s on %s — balance %s (%s)\n",
				formatter.Money(amount), inv.DocumentNumber,
				formatter.Money(inv.Balance()),
				formatter.Status(string(inv.EffectiveStatus(time.Now().UTC()))))
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Payment amount")
	cmd.Flags().StringVar(&method, "method", "check", "Payment method (check|cash|card|transfer)")
	cmd.Flags().StringVar(&reference, "reference", "", "Check number or transaction reference")
	cmd.Flags().StringVar(&date, "date", "", "Payment date (YYYY-MM-DD, defaults to today)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newInvoiceRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove INVOICE",
		Short: "Remove an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			inv, err := resolveInvoice(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Invoices.Delete(ctx, inv.ID); err != nil {
				return err
			}
			fmt.Printf("Removed invoice %s\n", inv.DocumentNumber)
			return nil
		},
	}
}
