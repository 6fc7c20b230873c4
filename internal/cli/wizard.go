package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/jobledger/jobledger/internal/cli/formatter"
	"github.com/jobledger/jobledger/internal/domain"
	"github.com/jobledger/jobledger/internal/service"
)

// jobledgerHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func jobledgerHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateNumber accepts a parseable float.
func validateNumber(s string) error {
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}

// validateOptionalNumber accepts empty or a parseable float.
func validateOptionalNumber(s string) error {
	if s == "" {
		return nil
	}
	return validateNumber(s)
}

func validateRequired(title string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", title)
		}
		return nil
	}
}

// wizardSelectCustomer runs a form to pick a customer from the directory.
func wizardSelectCustomer(ctx context.Context, app *App) (string, error) {
	customers, err := app.Customers.List(ctx, false)
	if err != nil {
		return "", err
	}
	if len(customers) == 0 {
		return "", fmt.Errorf("no customers on file; add one with `jobledger customer add`")
	}

	options := make([]huh.Option[string], 0, len(customers))
	for _, c := range customers {
		label := c.Name
		if c.ServiceAddress != "" {
			label = fmt.Sprintf("%s — %s", c.Name, c.ServiceAddress)
		}
		options = append(options, huh.NewOption(label, c.ID))
	}

	var result string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which Customer?").
				Options(options...).
				Value(&result),
		),
	).WithTheme(jobledgerHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return "", err
	}
	return result, nil
}

// wizardLineItems runs an add-another loop collecting line items.
func wizardLineItems() ([]domain.LineItem, error) {
	var items []domain.LineItem
	for {
		var (
			typ     = string(domain.LineItemLabor)
			desc    string
			qtyStr  = "1"
			rateStr string
			taxable = true
		)
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Line Item Type").
					Options(
						huh.NewOption("Labor", string(domain.LineItemLabor)),
						huh.NewOption("Material", string(domain.LineItemMaterial)),
						huh.NewOption("Equipment", string(domain.LineItemEquipment)),
						huh.NewOption("Subcontractor", string(domain.LineItemSubcontractor)),
						huh.NewOption("Permit", string(domain.LineItemPermit)),
					).
					Value(&typ),
				huh.NewInput().
					Title("Description").
					Value(&desc).
					Validate(validateRequired("description")),
				huh.NewInput().
					Title("Quantity").
					Placeholder("1").
					Value(&qtyStr).
					Validate(validateNumber),
				huh.NewInput().
					Title("Rate").
					Placeholder("95.00").
					Value(&rateStr).
					Validate(validateNumber),
				huh.NewConfirm().
					Title("Taxable?").
					Affirmative("Yes").
					Negative("No").
					Value(&taxable),
			),
		).WithTheme(jobledgerHuhTheme()).WithShowHelp(false)
		if err := form.Run(); err != nil {
			return nil, err
		}

		qty, _ := strconv.ParseFloat(qtyStr, 64)
		rate, _ := strconv.ParseFloat(rateStr, 64)
		li, err := domain.NewLineItem(uuid.New().String(), domain.LineItemType(typ), desc, qty, rate, taxable)
		if err != nil {
			return nil, err
		}
		li.Order = len(items)
		items = append(items, li)

		var more bool
		confirm := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Add another line item?").
					Affirmative("Yes").
					Negative("No").
					Value(&more),
			),
		).WithTheme(jobledgerHuhTheme()).WithShowHelp(false)
		if err := confirm.Run(); err != nil {
			return nil, err
		}
		if !more {
			return items, nil
		}
	}
}

// estimateWizard collects a full EstimateDraftInput interactively.
func estimateWizard(ctx context.Context, app *App) (service.EstimateDraftInput, error) {
	var in service.EstimateDraftInput

	customerID, err := wizardSelectCustomer(ctx, app)
	if err != nil {
		return in, err
	}
	in.CustomerID = customerID

	var (
		serviceAddr string
		taxRateStr  string
		validUntil  string
	)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Service Address (blank to use the customer's)").
				Value(&serviceAddr),
			huh.NewInput().
				Title("Tax Rate % (blank for configured default)").
				Placeholder(strconv.FormatFloat(app.Config.Documents.DefaultTaxRate, 'f', -1, 64)).
				Value(&taxRateStr).
				Validate(validateOptionalNumber),
			huh.NewInput().
				Title("Valid Until (YYYY-MM-DD, blank for default)").
				Value(&validUntil).
				Validate(validateOptionalDate),
		),
	).WithTheme(jobledgerHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return in, err
	}

	in.ServiceAddress = serviceAddr
	in.TaxRate = app.Config.Documents.DefaultTaxRate
	if taxRateStr != "" {
		in.TaxRate, _ = strconv.ParseFloat(taxRateStr, 64)
	}
	if validUntil != "" {
		t, _ := time.Parse("2006-01-02", validUntil)
		t = t.UTC()
		in.ValidUntil = &t
	} else if days := app.Config.Documents.EstimateValidDays; days > 0 {
		t := time.Now().UTC().AddDate(0, 0, days)
		in.ValidUntil = &t
	}

	items, err := wizardLineItems()
	if err != nil {
		return in, err
	}
	in.LineItems = items

	return in, nil
}
