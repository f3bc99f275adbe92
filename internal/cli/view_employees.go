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

type employeesLoadedMsg struct {
	employees []*domain.Employee
	err       error
}

// employeesView lists employees ordered by family name.
type employeesView struct {
	state     *SharedState
	employees []*domain.Employee
	cursor    int
	loading   bool
	err       error
}

func newEmployeesView(state *SharedState) *employeesView {
	return &employeesView{state: state, loading: true}
}

func (v *employeesView) ID() ViewID    { return ViewEmployees }
func (v *employeesView) Title() string { return "Mitarbeiter" }

func (v *employeesView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}

func (v *employeesView) Init() tea.Cmd {
	return v.load()
}

func (v *employeesView) load() tea.Cmd {
	backend := v.state.Backend
	return func() tea.Msg {
		list, err := backend.Employees(context.Background())
		return employeesLoadedMsg{employees: list, err: err}
	}
}

func (v *employeesView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case employeesLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.employees = msg.employees
			v.cursor = min(v.cursor, max(len(v.employees)-1, 0))
		}
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.employees)-1 {
				v.cursor++
			}
		case "a":
			return v, v.addWizard()
		case "r":
			if v.cursor < len(v.employees) {
				return v, v.renameWizard(v.employees[v.cursor])
			}
		case "x":
			if v.cursor < len(v.employees) {
				return v, v.remove(v.employees[v.cursor])
			}
		}
	}
	return v, nil
}

func (v *employeesView) addWizard() tea.Cmd {
	backend := v.state.Backend
	name := new(string)
	return startWizardCmd("New employee", wizardInputText("Name", "Doe, Jane", name), func() tea.Cmd {
		return func() tea.Msg {
			if _, err := backend.AddEmployee(context.Background(), *name); err != nil {
				return cmdOutputMsg{output: formatter.StyleRed.Render("Error: " + err.Error())}
			}
			return cmdOutputMsg{output: formatter.StyleGreen.Render("✔") + " Added " + formatter.Bold(strings.TrimSpace(*name))}
		}
	})
}

func (v *employeesView) renameWizard(e *domain.Employee) tea.Cmd {
	backend := v.state.Backend
	name := e.Name
	return startWizardCmd("Rename "+e.Name, wizardInputText("Name", e.Name, &name), func() tea.Cmd {
		return func() tea.Msg {
			if err := backend.RenameEmployee(context.Background(), e.ID, name); err != nil {
				return cmdOutputMsg{output: formatter.StyleRed.Render("Error: " + err.Error())}
			}
			return cmdOutputMsg{output: fmt.Sprintf("%s Renamed %s to %s",
				formatter.StyleGreen.Render("✔"), e.Name, formatter.Bold(strings.TrimSpace(name)))}
		}
	})
}

func (v *employeesView) remove(e *domain.Employee) tea.Cmd {
	backend := v.state.Backend
	return func() tea.Msg {
		if err := backend.DeleteEmployee(context.Background(), e.ID); err != nil {
			return cmdOutputMsg{output: formatter.StyleRed.Render(fmt.Sprintf("Cannot delete %s: %v", e.Name, err))}
		}
		return refreshViewMsg{}
	}
}

func (v *employeesView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading employees...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	var b strings.Builder
	b.WriteString("\n")
	if len(v.employees) == 0 {
		b.WriteString("  " + formatter.Dim("No employees yet.") + "\n")
		return b.String()
	}
	for i, e := range v.employees {
		cursor := "  "
		style := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			style = formatter.StyleBold
		}
		b.WriteString(cursor + style.Render(e.Name) + "\n")
	}
	return b.String()
}
