package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jobledger/jobledger/internal/cli/formatter"
	"github.com/jobledger/jobledger/internal/domain"
	"github.com/jobledger/jobledger/internal/service"
)

func newWorkOrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workorder",
		Aliases: []string{"wo"},
		Short:   "Manage work orders",
	}

	cmd.AddCommand(
		newWorkOrderAddCmd(app),
		newWorkOrderListCmd(app),
		newWorkOrderShowCmd(app),
		newWorkOrderAssignCmd(app),
		newWorkOrderScheduleCmd(app),
		newWorkOrderStartCmd(app),
		newWorkOrderHoldCmd(app),
		newWorkOrderResumeCmd(app),
		newWorkOrderCompleteCmd(app),
		newWorkOrderCancelCmd(app),
		newWorkOrderLogCmd(app),
		newWorkOrderConvertCmd(app),
		newWorkOrderRemoveCmd(app),
	)

	return cmd
}

func newWorkOrderAddCmd(app *App) *cobra.Command {
	var (
		customer, serviceAddr, priority string
		taxRate                         float64
		assign, itemSpecs               []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a draft work order",
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
			rate := app.Config.Documents.DefaultTaxRate
			if cmd.Flags().Changed("tax-rate") {
				rate = taxRate
			}

			w, err := app.WorkOrders.CreateDraft(ctx, service.WorkOrderDraftInput{
				CustomerID:     customerID,
				ServiceAddress: serviceAddr,
				TaxRate:        rate,
				Priority:       domain.Priority(priority),
				AssignedTo:     assign,
				LineItems:      items,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created work order %s for %s — total %s\n",
				w.DocumentNumber, w.Customer.Name, formatter.Money(w.Totals.Total))
			return nil
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "Customer name or ID")
	cmd.Flags().StringVar(&serviceAddr, "address", "", "Service address (defaults to the customer's)")
	cmd.Flags().Float64Var(&taxRate, "tax-rate", 0, "Tax rate percentage (defaults to configured rate)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|normal|high|urgent)")
	cmd.Flags().StringArrayVar(&assign, "assign", nil, "Assignee names")
	cmd.Flags().StringArrayVar(&itemSpecs, "item", nil, "Line item: type|qty|rate|description[|notax]")
	_ = cmd.MarkFlagRequired("customer")

	return cmd
}

func newWorkOrderListCmd(app *App) *cobra.Command {
	var customer, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work orders",
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
			var statusFilter *domain.WorkOrderStatus
			if status != "" {
				s := domain.WorkOrderStatus(status)
				statusFilter = &s
			}

			orders, err := app.WorkOrders.List(ctx, customerID, statusFilter)
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Println("No work orders found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatWorkOrderList(orders))
			return nil
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "Filter by customer name or ID")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (draft|scheduled|in_progress|on_hold|completed|cancelled)")

	return cmd
}

func newWorkOrderShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show WORKORDER",
		Short: "Show work order details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := resolveWorkOrder(context.Background(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Print(companyHeader(app))
			fmt.Printf("%s\n", formatter.FormatWorkOrderDetail(w, time.Now().UTC()))
			return nil
		},
	}
}

func newWorkOrderAssignCmd(app *App) *cobra.Command {
	var assign []string

	cmd := &cobra.Command{
		Use:   "assign WORKORDER",
		Short: "Set the assignees of a work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			w, err := resolveWorkOrder(ctx, app, args[0])
			if err != nil {
				return err
			}
			w, err = app.WorkOrders.Assign(ctx, w.ID, assign)
			if err != nil {
				return err
			}
			fmt.Printf("Assigned %s to %s\n", w.DocumentNumber, strings.Join(w.AssignedTo, ", "))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&assign, "to", nil, "Assignee names")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newWorkOrderScheduleCmd(app *App) *cobra.Command {
	var date, timeOfDay string

	cmd := &cobra.Command{
		Use:   "schedule WORKORDER",
		Short: "Schedule a work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			w, err := resolveWorkOrder(ctx, app, args[0])
			if err != nil {
				return err
			}
			day, err := parseDateFlag("date", date)
			if err != nil {
				return err
			}
			if day == nil {
				return fmt.Errorf("--date is required")
			}
			w, err = app.WorkOrders.Schedule(ctx, w.ID, *day, timeOfDay)
			if err != nil {
				return err
			}
			fmt.Printf("Scheduled %s for %s\n", w.DocumentNumber, formatter.DatePtr(w.ScheduledDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Scheduled date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&timeOfDay, "time", "", "Time of day, free-form (e.g. \"8:00 AM\")")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

// workOrderTransitionCmd builds the start/hold/resume/complete/cancel
// commands, which differ only in verb and service call.
func workOrderTransitionCmd(app *App, use, short, done string,
	fn func(context.Context, string) (*domain.WorkOrder, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " WORKORDER",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			w, err := resolveWorkOrder(ctx, app, args[0])
			if err != nil {
				return err
			}
			w, err = fn(ctx, w.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%s work order %s\n", done, w.DocumentNumber)
			return nil
		},
	}
}

func newWorkOrderStartCmd(app *App) *cobra.Command {
	return workOrderTransitionCmd(app, "start", "Start work", "Started", app.WorkOrders.Start)
}

func newWorkOrderHoldCmd(app *App) *cobra.Command {
	return workOrderTransitionCmd(app, "hold", "Put a work order on hold", "Put on hold", app.WorkOrders.Hold)
}

func newWorkOrderResumeCmd(app *App) *cobra.Command {
	return workOrderTransitionCmd(app, "resume", "Resume a work order on hold", "Resumed", app.WorkOrders.Resume)
}

func newWorkOrderCompleteCmd(app *App) *cobra.Command {
	return workOrderTransitionCmd(app, "complete", "Mark a work order completed", "Completed", app.WorkOrders.Complete)
}

func newWorkOrderCancelCmd(app *App) *cobra.Command {
	return workOrderTransitionCmd(app, "cancel", "Cancel a work order", "Cancelled", app.WorkOrders.Cancel)
}

func newWorkOrderLogCmd(app *App) *cobra.Command {
	var minutes int
	var desc, started string

	cmd := &cobra.Command{
		Use:   "log WORKORDER",
		Short: "Log time against a work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			w, err := resolveWorkOrder(ctx, app, args[0])
			if err != nil {
				return err
			}

			startedAt := time.Now().UTC()
			if started != "" {
				day, err := parseDateFlag("started", started)
				if err != nil {
					return err
				}
				startedAt = *day
			}

			w, err = app.WorkOrders.LogTime(ctx, w.ID, domain.TimeEntry{
				ID:          uuid.New().String(),
				Description: desc,
				StartedAt:   startedAt,
				Minutes:     minutes,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Logged %s on %s (%s total)\n",
				formatter.Minutes(minutes), w.DocumentNumber, formatter.Minutes(w.LoggedMinutes()))
			return nil
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Minutes worked")
	cmd.Flags().StringVar(&desc, "desc", "", "What was done")
	cmd.Flags().StringVar(&started, "started", "", "Work date (YYYY-MM-DD, defaults to today)")
	_ = cmd.MarkFlagRequired("minutes")

	return cmd
}

func newWorkOrderConvertCmd(app *App) *cobra.Command {
	var terms, due string

	cmd := &cobra.Command{
		Use:   "convert WORKORDER",
		Short: "Convert a completed work order to an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			w, err := resolveWorkOrder(ctx, app, args[0])
			if err != nil {
				return err
			}

			opts := service.ConvertOptions{PaymentTerms: terms}
			if opts.DueDate, err = parseDateFlag("due", due); err != nil {
				return err
			}

			inv, err := app.Conversions.WorkOrderToInvoice(ctx, w.ID, opts)
			if err != nil {
				return err
			}
			fmt.Printf("Converted %s to invoice %s\n", w.DocumentNumber, inv.DocumentNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&terms, "terms", "", "Payment terms for the invoice")
	cmd.Flags().StringVar(&due, "due", "", "Due date for the invoice (YYYY-MM-DD)")

	return cmd
}

func newWorkOrderRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove WORKORDER",
		Short: "Remove a work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			w, err := resolveWorkOrder(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.WorkOrders.Delete(ctx, w.ID); err != nil {
				return err
			}
			fmt.Printf("Removed work order %s\n", w.DocumentNumber)
			return nil
		},
	}
}
