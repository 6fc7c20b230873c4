package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jobledger/jobledger/internal/cli/formatter"
	"github.com/jobledger/jobledger/internal/domain"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive document dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("dashboard needs an interactive terminal")
			}
			p := tea.NewProgram(newDashboardModel(app), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}

// ── data ─────────────────────────────────────────────────────────────────────

type dashboardTab int

const (
	tabEstimates dashboardTab = iota
	tabWorkOrders
	tabInvoices
	tabCount
)

func (t dashboardTab) title() string {
	switch t {
	case tabEstimates:
		return "Estimates"
	case tabWorkOrders:
		return "Work Orders"
	default:
		return "Invoices"
	}
}

type dashboardData struct {
	estimates  []*domain.Estimate
	workOrders []*domain.WorkOrder
	invoices   []*domain.Invoice
}

type dashboardLoadedMsg struct {
	data dashboardData
	err  error
}

// ── model ────────────────────────────────────────────────────────────────────

type dashboardModel struct {
	app     *App
	tab     dashboardTab
	tables  [tabCount]table.Model
	loading bool
	err     error
	width   int
	height  int
}

func newDashboardModel(app *App) *dashboardModel {
	m := &dashboardModel{app: app, loading: true}
	for i := range m.tables {
		m.tables[i] = table.New(
			table.WithFocused(true),
			table.WithHeight(12),
		)
		m.tables[i].SetStyles(dashboardTableStyles())
	}
	return m
}

func dashboardTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		Foreground(formatter.ColorHeader).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(formatter.ColorDim).
		BorderBottom(true)
	s.Selected = s.Selected.
		Foreground(formatter.ColorFg).
		Background(lipgloss.Color("#3c3836")).
		Bold(false)
	return s
}

func (m *dashboardModel) Init() tea.Cmd {
	return m.load()
}

func (m *dashboardModel) load() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx := context.Background()
		var data dashboardData
		var err error
		if data.estimates, err = app.Estimates.List(ctx, nil, nil); err != nil {
			return dashboardLoadedMsg{err: err}
		}
		if data.workOrders, err = app.WorkOrders.List(ctx, nil, nil); err != nil {
			return dashboardLoadedMsg{err: err}
		}
		if data.invoices, err = app.Invoices.List(ctx, nil, nil); err != nil {
			return dashboardLoadedMsg{err: err}
		}
		return dashboardLoadedMsg{data: data}
	}
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for i := range m.tables {
			m.tables[i].SetHeight(max(4, m.height-8))
		}
		return m, nil

	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.populate(msg.data)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % tabCount
			return m, nil
		case "shift+tab", "left", "h":
			m.tab = (m.tab + tabCount - 1) % tabCount
			return m, nil
		case "r":
			m.loading = true
			return m, m.load()
		}
	}

	var cmd tea.Cmd
	m.tables[m.tab], cmd = m.tables[m.tab].Update(msg)
	return m, cmd
}

func (m *dashboardModel) populate(data dashboardData) {
	now := time.Now().UTC()

	estRows := make([]table.Row, 0, len(data.estimates))
	for _, e := range data.estimates {
		estRows = append(estRows, table.Row{
			e.DocumentNumber,
			formatter.Truncate(e.Customer.Name, 26),
			strings.ReplaceAll(string(e.DisplayStatus(now)), "_", " "),
			formatter.Money(e.Totals.Total),
		})
	}
	m.tables[tabEstimates].SetColumns([]table.Column{
		{Title: "Number", Width: 10},
		{Title: "Customer", Width: 28},
		{Title: "Status", Width: 12},
		{Title: "Total", Width: 12},
	})
	m.tables[tabEstimates].SetRows(estRows)

	woRows := make([]table.Row, 0, len(data.workOrders))
	for _, w := range data.workOrders {
		woRows = append(woRows, table.Row{
			w.DocumentNumber,
			formatter.Truncate(w.Customer.Name, 26),
			strings.ReplaceAll(string(w.Status), "_", " "),
			string(w.Priority),
			formatter.Money(w.Totals.Total),
		})
	}
	m.tables[tabWorkOrders].SetColumns([]table.Column{
		{Title: "Number", Width: 10},
		{Title: "Customer", Width: 28},
		{Title: "Status", Width: 12},
		{Title: "Priority", Width: 10},
		{Title: "Total", Width: 12},
	})
	m.tables[tabWorkOrders].SetRows(woRows)

	invRows := make([]table.Row, 0, len(data.invoices))
	for _, inv := range data.invoices {
		invRows = append(invRows, table.Row{
			inv.DocumentNumber,
			formatter.Truncate(inv.Customer.Name, 26),
			strings.ReplaceAll(string(inv.EffectiveStatus(now)), "_", " "),
			formatter.Money(inv.Totals.Total),
			formatter.Money(inv.Balance()),
		})
	}
	m.tables[tabInvoices].SetColumns([]table.Column{
		{Title: "Number", Width: 10},
		{Title: "Customer", Width: 28},
		{Title: "Status", Width: 12},
		{Title: "Total", Width: 12},
		{Title: "Balance", Width: 12},
	})
	m.tables[tabInvoices].SetRows(invRows)
}

func (m *dashboardModel) View() string {
	var b strings.Builder

	tabs := make([]string, 0, int(tabCount))
	for t := dashboardTab(0); t < tabCount; t++ {
		title := t.title()
		if t == m.tab {
			tabs = append(tabs, formatter.StyleHeader.Render("["+title+"]"))
		} else {
			tabs = append(tabs, formatter.StyleDim.Render(" "+title+" "))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(formatter.StyleDim.Render("Loading…"))
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
	case len(m.tables[m.tab].Rows()) == 0:
		b.WriteString(formatter.StyleDim.Render("No " + strings.ToLower(m.tab.title()) + " yet."))
	default:
		b.WriteString(m.tables[m.tab].View())
	}

	b.WriteString("\n\n")
	b.WriteString(formatter.StyleDim.Render("tab: switch  ↑/↓: move  r: refresh  q: quit"))
	return b.String()
}
