package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobledger/jobledger/internal/cli/formatter"
	"github.com/jobledger/jobledger/internal/domain"
	"github.com/jobledger/jobledger/internal/service"
)

func newEstimateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "estimate",
		Aliases: []string{"est"},
		Short:   "Manage estimates",
	}

	cmd.AddCommand(
		newEstimateAddCmd(app),
		newEstimateListCmd(app),
		newEstimateShowCmd(app),
		newEstimateItemsCmd(app),
		newEstimateSendCmd(app),
		newEstimateViewCmd(app),
		newEstimateAcceptCmd(app),
		newEstimateDeclineCmd(app),
		newEstimateConvertCmd(app),
		newEstimateRemoveCmd(app),
	)

	return cmd
}

func newEstimateAddCmd(app *App) *cobra.Command {
	var (
		customer, serviceAddr, billingAddr, validUntil string
		taxRate                                        float64
		itemSpecs                                      []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a draft estimate",
		Long: "Create a draft estimate. With --customer and --item flags the estimate is\n" +
			"created directly; without them, an interactive wizard collects the details.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var in service.EstimateDraftInput
			if customer == "" && len(itemSpecs) == 0 && app.interactive() {
				wizardIn, err := estimateWizard(ctx, app)
				if err != nil {
					return err
				}
				in = wizardIn
			} else {
				customerID, err := resolveCustomerID(ctx, app, customer)
				if err != nil {
					return err
				}
				items, err := parseLineItemFlags(itemSpecs)
				if err != nil {
					return err
				}
				until, err := parseDateFlag("valid-until", validUntil)
				if err != nil {
					return err
				}
				if until == nil {
					if days := app.Config.Documents.EstimateValidDays; days > 0 {
						t := time.Now().UTC().AddDate(0, 0, days)
						until = &t
					}
				}
				rate := app.Config.Documents.DefaultTaxRate
				if cmd.Flags().Changed("tax-rate") {
					rate = taxRate
				}
				in = service.EstimateDraftInput{
					CustomerID:     customerID,
					ServiceAddress: serviceAddr,
					BillingAddress: billingAddr,
					TaxRate:        rate,
					ValidUntil:     until,
					LineItems:      items,
				}
			}

			e, err := app.Estimates.CreateDraft(ctx, in)
			if err != nil {
				return err
			}
			fmt.Printf("Created estimate %s for %s — total %s\n",
				e.DocumentNumber, e.Customer.Name, formatter.Money(e.Totals.Total))
			return nil
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "Customer name or ID")
	cmd.Flags().StringVar(&serviceAddr, "address", "", "Service address (defaults to the customer's)")
	cmd.Flags().StringVar(&billingAddr, "billing-address", "", "Billing address, when different")
	cmd.Flags().Float64Var(&taxRate, "tax-rate", 0, "Tax rate percentage (defaults to configured rate)")
	cmd.Flags().StringVar(&validUntil, "valid-until", "", "Expiry date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&itemSpecs, "item", nil, "Line item: type|qty|rate|description[|notax]")

	return cmd
}

func newEstimateListCmd(app *App) *cobra.Command {
	var customer, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List estimates",
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
			var statusFilter *domain.EstimateStatus
			if status != "" {
				s := domain.EstimateStatus(status)
				statusFilter = &s
			}

			estimates, err := app.Estimates.List(ctx, customerID, statusFilter)
			if err != nil {
				return err
			}
			if len(estimates) == 0 {
				fmt.Println("No estimates found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatEstimateList(estimates, time.Now().UTC()))
			return nil
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "Filter by customer name or ID")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (draft|sent|viewed|accepted|declined|expired)")

	return cmd
}

func newEstimateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ESTIMATE",
		Short: "Show estimate details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEstimate(context.Background(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Print(companyHeader(app))
			fmt.Printf("%s\n", formatter.FormatEstimateDetail(e, time.Now().UTC()))
			return nil
		},
	}
}

func newEstimateItemsCmd(app *App) *cobra.Command {
	var itemSpecs []string

	cmd := &cobra.Command{
		Use:   "items ESTIMATE",
		Short: "Replace the line items of a draft estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := resolveEstimate(ctx, app, args[0])
			if err != nil {
				return err
			}
			items, err := parseLineItemFlags(itemSpecs)
			if err != nil {
				return err
			}
			e, err = app.Estimates.SetLineItems(ctx, e.ID, items)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s — total %s\n", e.DocumentNumber, formatter.Money(e.Totals.Total))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&itemSpecs, "item", nil, "Line item: type|qty|rate|description[|notax]")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

// estimateTransitionCmd builds the send/view/accept/decline commands, which
// differ only in verb and service call.
func estimateTransitionCmd(app *App, use, short, done string,
	fn func(context.Context, string) (*domain.Estimate, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ESTIMATE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := resolveEstimate(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err = fn(ctx, e.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%s estimate %s\n", done, e.DocumentNumber)
			return nil
		},
	}
}

func newEstimateSendCmd(app *App) *cobra.Command {
	return estimateTransitionCmd(app, "send", "Mark an estimate as sent", "Sent", app.Estimates.Send)
}

func newEstimateViewCmd(app *App) *cobra.Command {
	return estimateTransitionCmd(app, "view", "Mark an estimate as viewed by the customer", "Marked viewed", app.Estimates.MarkViewed)
}

func newEstimateAcceptCmd(app *App) *cobra.Command {
	return estimateTransitionCmd(app, "accept", "Mark an estimate as accepted", "Accepted", app.Estimates.Accept)
}

func newEstimateDeclineCmd(app *App) *cobra.Command {
	return estimateTransitionCmd(app, "decline", "Mark an estimate as declined", "Declined", app.Estimates.Decline)
}

func newEstimateConvertCmd(app *App) *cobra.Command {
	var (
		target, schedule, terms, due string
		assign                       []string
	)

	cmd := &cobra.Command{
		Use:   "convert ESTIMATE",
		Short: "Convert an accepted estimate to a work order or invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := resolveEstimate(ctx, app, args[0])
			if err != nil {
				return err
			}

			opts := service.ConvertOptions{AssignedTo: assign, PaymentTerms: terms}
			if opts.ScheduledDate, err = parseDateFlag("schedule", schedule); err != nil {
				return err
			}
			if opts.DueDate, err = parseDateFlag("due", due); err != nil {
				return err
			}

			switch target {
			case "workorder", "wo":
				w, err := app.Conversions.EstimateToWorkOrder(ctx, e.ID, opts)
				if err != nil {
					return err
				}
				fmt.Printf("Converted %s to work order %s\n", e.DocumentNumber, w.DocumentNumber)
			case "invoice", "inv":
				inv, err := app.Conversions.EstimateToInvoice(ctx, e.ID, opts)
				if err != nil {
					return err
				}
				fmt.Printf("Converted %s to invoice %s\n", e.DocumentNumber, inv.DocumentNumber)
			default:
				return fmt.Errorf("invalid --to %q, expected workorder or invoice", target)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "to", "workorder", "Conversion target (workorder|invoice)")
	cmd.Flags().StringVar(&schedule, "schedule", "", "Scheduled date for the work order (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&assign, "assign", nil, "Assignee names for the work order")
	cmd.Flags().StringVar(&terms, "terms", "", "Payment terms for the invoice")
	cmd.Flags().StringVar(&due, "due", "", "Due date for the invoice (YYYY-MM-DD)")

	return cmd
}

func newEstimateRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ESTIMATE",
		Short: "Remove an estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := resolveEstimate(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Estimates.Delete(ctx, e.ID); err != nil {
				return err
			}
			fmt.Printf("Removed estimate %s\n", e.DocumentNumber)
			return nil
		},
	}
}
