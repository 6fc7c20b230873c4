package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jobledger/jobledger/internal/cli/formatter"
	"github.com/jobledger/jobledger/internal/domain"
)

func newCustomerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage the customer directory",
	}

	cmd.AddCommand(
		newCustomerAddCmd(app),
		newCustomerListCmd(app),
		newCustomerUpdateCmd(app),
		newCustomerArchiveCmd(app),
		newCustomerUnarchiveCmd(app),
	)

	return cmd
}

func newCustomerAddCmd(app *App) *cobra.Command {
	var name, email, phone, serviceAddr, billingAddr, notes string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			c := &domain.Customer{
				ID:             uuid.New().String(),
				Name:           name,
				Email:          email,
				Phone:          phone,
				ServiceAddress: serviceAddr,
				BillingAddress: billingAddr,
				Notes:          notes,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := app.Customers.Create(context.Background(), c); err != nil {
				return err
			}
			fmt.Printf("Added customer %s [%s]\n", c.Name, formatter.ShortID(c.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Customer name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&serviceAddr, "address", "", "Service address")
	cmd.Flags().StringVar(&billingAddr, "billing-address", "", "Billing address, when different")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCustomerListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			customers, err := app.Customers.List(context.Background(), all)
			if err != nil {
				return err
			}
			if len(customers) == 0 {
				fmt.Println("No customers found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatCustomerList(customers))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived customers")

	return cmd
}

func newCustomerUpdateCmd(app *App) *cobra.Command {
	var name, email, phone, serviceAddr, billingAddr, notes string

	cmd := &cobra.Command{
		Use:   "update CUSTOMER",
		Short: "Update a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			customerID, err := resolveCustomerID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Customers.GetByID(ctx, customerID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				c.Name = name
			}
			if cmd.Flags().Changed("email") {
				c.Email = email
			}
			if cmd.Flags().Changed("phone") {
				c.Phone = phone
			}
			if cmd.Flags().Changed("address") {
				c.ServiceAddress = serviceAddr
			}
			if cmd.Flags().Changed("billing-address") {
				c.BillingAddress = billingAddr
			}
			if cmd.Flags().Changed("notes") {
				c.Notes = notes
			}

			if err := app.Customers.Update(ctx, c); err != nil {
				return err
			}
			fmt.Printf("Updated customer %s\n", c.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Customer name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&serviceAddr, "address", "", "Service address")
	cmd.Flags().StringVar(&billingAddr, "billing-address", "", "Billing address")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func newCustomerArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive CUSTOMER",
		Short: "Archive a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			customerID, err := resolveCustomerID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Customers.Archive(ctx, customerID); err != nil {
				return err
			}
			fmt.Printf("Archived customer %s\n", formatter.ShortID(customerID))
			return nil
		},
	}
}

func newCustomerUnarchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unarchive CUSTOMER",
		Short: "Unarchive a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			customerID, err := resolveCustomerID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Customers.Unarchive(ctx, customerID); err != nil {
				return err
			}
			fmt.Printf("Unarchived customer %s\n", formatter.ShortID(customerID))
			return nil
		},
	}
}
