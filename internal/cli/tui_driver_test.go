package cli

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/timereport/internal/teatest"
)

// TestDriver wraps teatest.Driver with access to appModel internals (view
// stack, command bar focus, transient output).
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver starts the TUI at path against app's REST backend and drains
// Init, which loads data over HTTP.
func NewTestDriver(t *testing.T, app *App, path string) *TestDriver {
	t.Helper()

	route, err := ParseRoute(path)
	if err != nil {
		t.Fatalf("bad start route %q: %v", path, err)
	}
	state := &SharedState{Backend: app.Backend, Config: app.config}
	d := teatest.New(t, newAppModel(state, route),
		teatest.WithSize(140, 40),
		teatest.WithCmdTimeout(100*time.Millisecond),
	)
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// Command focuses the command bar with ':', types input, presses Enter and
// blurs the bar again if the command left it focused.
func (d *TestDriver) Command(input string) {
	d.T.Helper()
	d.PressKey(':')
	d.Type(input)
	d.PressEnter()
	if d.CmdBarFocused() {
		d.PressEsc()
	}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ActiveViewTitle returns the Title() of the top view on the stack.
func (d *TestDriver) ActiveViewTitle() string {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ""
	}
	return v.Title()
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// ReportView returns the active report view, failing the test otherwise.
func (d *TestDriver) ReportView() *reportView {
	d.T.Helper()
	m := d.appModel()
	rv, ok := m.activeView().(*reportView)
	if !ok {
		d.T.Fatalf("active view is %v, not a report view", d.ActiveViewID())
	}
	return rv
}

// IsQuitting reports whether the app has signalled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// CmdBarFocused returns whether the command bar currently has focus.
func (d *TestDriver) CmdBarFocused() bool {
	m := d.appModel()
	return m.cmdBar.Focused()
}

// LastOutput returns the transient output shown in the content area.
func (d *TestDriver) LastOutput() string {
	return d.appModel().lastOutput
}

// EditCell selects the cell at (row, col), types value over its content and
// applies it.
func (d *TestDriver) EditCell(row int, col column, value string) {
	d.T.Helper()
	rv := d.ReportView()
	if row >= rv.sheet.Len() {
		d.T.Fatalf("row %d out of range (%d rows)", row, rv.sheet.Len())
	}
	for rv.row > row {
		d.PressKey('k')
	}
	for rv.row < row {
		d.PressKey('j')
	}
	for rv.col > int(col) {
		d.PressKey('h')
	}
	for rv.col < int(col) {
		d.PressKey('l')
	}
	d.PressEnter()
	d.SendKey(tea.KeyMsg{Type: tea.KeyCtrlU})
	d.Type(value)
	d.PressEnter()
}
