package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/timereport/internal/cli/formatter"
	"github.com/alexanderramin/timereport/internal/domain"
)

// reportsLoadedMsg carries the report list for the overview.
type reportsLoadedMsg struct {
	reports []*domain.Report
	err     error
}

// overviewView lists the billing periods, newest first.
type overviewView struct {
	state   *SharedState
	reports []*domain.Report
	cursor  int
	loading bool
	err     error
}

func newOverviewView(state *SharedState) *overviewView {
	return &overviewView{state: state, loading: true}
}

func (v *overviewView) ID() ViewID    { return ViewOverview }
func (v *overviewView) Title() string { return "Abrechnungen" }

func (v *overviewView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "current report")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new report")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "employees")),
	}
}

func (v *overviewView) Init() tea.Cmd {
	return v.load()
}

func (v *overviewView) load() tea.Cmd {
	backend := v.state.Backend
	return func() tea.Msg {
		reports, err := backend.Reports(context.Background())
		return reportsLoadedMsg{reports: reports, err: err}
	}
}

func (v *overviewView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err != nil {
			return v, nil
		}
		v.reports = make([]*domain.Report, 0, len(msg.reports))
		for i := len(msg.reports) - 1; i >= 0; i-- {
			v.reports = append(v.reports, msg.reports[i])
		}
		v.cursor = min(v.cursor, max(len(v.reports)-1, 0))
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		return v.updateKey(msg)
	}
	return v, nil
}

func (v *overviewView) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.reports)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(v.reports) {
			return v, pushView(newReportView(v.state, v.reports[v.cursor].ID))
		}
	case "c":
		return v, pushView(newReportView(v.state, 0))
	case "m":
		return v, pushView(newEmployeesView(v.state))
	case "n":
		return v, v.newReportWizard()
	}
	return v, nil
}

func (v *overviewView) newReportWizard() tea.Cmd {
	backend := v.state.Backend
	title := new(string)
	return startWizardCmd("New report", wizardInputText("Title", "Januar 2018", title), func() tea.Cmd {
		return func() tea.Msg {
			r, err := backend.CreateReport(context.Background(), strings.TrimSpace(*title))
			if err != nil {
				return cmdOutputMsg{output: formatter.StyleRed.Render("Error: " + err.Error())}
			}
			return cmdOutputMsg{output: fmt.Sprintf("%s Created %s from %s",
				formatter.StyleGreen.Render("✔"), formatter.Bold(r.Title), domain.FormatDate(r.StartDate))}
		}
	})
}

func (v *overviewView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading reports...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	b.WriteString("\n")
	if len(v.reports) == 0 {
		b.WriteString("  " + formatter.Dim("No reports yet. Press n to open one.") + "\n")
		return b.String()
	}

	for i, r := range v.reports {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		end := "open"
		if !r.EndDate.IsZero() {
			end = domain.FormatDate(r.EndDate)
		}
		fmt.Fprintf(&b, "%s%s  %s  %s\n",
			cursor,
			nameStyle.Render(formatter.PadRight(r.Title, 24)),
			formatter.Dim(domain.FormatDate(r.StartDate)+" – "+formatter.PadRight(end, 10)),
			formatter.PDFPill(r.PDFGenerated),
		)
	}
	return b.String()
}
