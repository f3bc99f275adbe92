package cli

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubView struct {
	id         ViewID
	title      string
	viewText   string
	capturing  bool
	initCmd    tea.Cmd
	updateCmd  tea.Cmd
	updateSeen []tea.Msg
}

func (v *stubView) Init() tea.Cmd { return v.initCmd }

func (v *stubView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	v.updateSeen = append(v.updateSeen, msg)
	return v, v.updateCmd
}

func (v *stubView) View() string             { return v.viewText }
func (v *stubView) ID() ViewID               { return v.id }
func (v *stubView) ShortHelp() []key.Binding { return nil }
func (v *stubView) Title() string            { return v.title }
func (v *stubView) CapturesInput() bool      { return v.capturing }

func newStubView(id ViewID, title, text string) *stubView {
	return &stubView{id: id, title: title, viewText: text}
}

func newStubModel(views ...View) appModel {
	m := newAppModel(&SharedState{}, Route{Kind: RouteOverview})
	if len(views) > 0 {
		m.viewStack = views
	}
	return m
}

func TestNewAppModel_StartRoute(t *testing.T) {
	state := &SharedState{}

	m := newAppModel(state, Route{Kind: RouteOverview})
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewOverview, m.activeView().ID())

	m = newAppModel(state, Route{Kind: RouteReport, ReportID: 3})
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, ViewReport, m.activeView().ID())

	m = newAppModel(state, Route{Kind: RouteEmployees})
	assert.Equal(t, []ViewID{ViewOverview, ViewEmployees},
		[]ViewID{m.viewStack[0].ID(), m.viewStack[1].ID()})
}

func TestAppModel_NavigationMessages(t *testing.T) {
	m := newStubModel(newStubView(ViewOverview, "Abrechnungen", "overview"))
	v2 := newStubView(ViewEmployees, "Mitarbeiter", "employees")

	model, cmd := m.Update(pushViewMsg{view: v2})
	m = model.(appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, v2, m.activeView())

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(appModel)
	require.Len(t, m.viewStack, 1)

	// The bottom view is never popped.
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(appModel)
	require.Len(t, m.viewStack, 1)
}

func TestAppModel_RouteResetsStack(t *testing.T) {
	m := newStubModel(
		newStubView(ViewOverview, "Abrechnungen", ""),
		newStubView(ViewEmployees, "Mitarbeiter", ""),
	)
	m.lastOutput = "old"

	model, cmd := m.Update(routeMsg{route: Route{Kind: RouteReport, ReportID: 7}})
	m = model.(appModel)
	require.NotNil(t, cmd)
	assert.Empty(t, m.lastOutput)
	require.Len(t, m.viewStack, 2)
	rv, ok := m.activeView().(*reportView)
	require.True(t, ok)
	assert.Equal(t, int64(7), rv.sheet.ReportID())
}

func TestAppModel_WindowResizeReachesEveryView(t *testing.T) {
	bottom := newStubView(ViewOverview, "Abrechnungen", "")
	top := newStubView(ViewEmployees, "Mitarbeiter", "")
	m := newStubModel(bottom, top)

	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = model.(appModel)

	assert.Equal(t, 100, m.state.Width)
	assert.Equal(t, 25, m.state.ContentHeight())
	assert.NotZero(t, m.cmdBar.input.Width)
	require.Len(t, bottom.updateSeen, 1)
	require.Len(t, top.updateSeen, 1)
}

func TestAppModel_KeyHandling(t *testing.T) {
	t.Run("colon focuses command bar", func(t *testing.T) {
		m := newStubModel(newStubView(ViewOverview, "Abrechnungen", ""))

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{':'}})
		m = model.(appModel)
		require.Nil(t, cmd)
		assert.True(t, m.cmdBar.Focused())
	})

	t.Run("q quits", func(t *testing.T) {
		m := newStubModel(newStubView(ViewOverview, "Abrechnungen", ""))

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		m = model.(appModel)
		require.NotNil(t, cmd)
		assert.True(t, m.quitting)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, m.View())
	})

	t.Run("capturing view receives q", func(t *testing.T) {
		v := newStubView(ViewReport, "Januar", "")
		v.capturing = true
		m := newStubModel(newStubView(ViewOverview, "Abrechnungen", ""), v)

		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		m = model.(appModel)
		assert.False(t, m.quitting)
		require.Len(t, v.updateSeen, 1)
		assert.Equal(t, "q", v.updateSeen[0].(tea.KeyMsg).String())
	})

	t.Run("esc dismisses output before popping", func(t *testing.T) {
		m := newStubModel(
			newStubView(ViewOverview, "Abrechnungen", ""),
			newStubView(ViewEmployees, "Mitarbeiter", ""),
		)
		m.lastOutput = "stale output"

		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = model.(appModel)
		assert.Empty(t, m.lastOutput)
		require.Len(t, m.viewStack, 2)

		model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = model.(appModel)
		require.Len(t, m.viewStack, 1)
	})
}

func TestAppModel_WizardCompleteAndOutput(t *testing.T) {
	m := newStubModel(
		newStubView(ViewOverview, "Abrechnungen", "overview"),
		newStubView(ViewForm, "New report", "wizard"),
	)
	next := func() tea.Msg { return cmdOutputMsg{output: "done"} }

	model, cmd := m.Update(wizardCompleteMsg{nextCmd: next})
	m = model.(appModel)
	require.NotNil(t, cmd)
	require.Len(t, m.viewStack, 1)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	var gotOutput, gotRefresh bool
	for _, c := range batch {
		if c == nil {
			continue
		}
		switch c().(type) {
		case cmdOutputMsg:
			gotOutput = true
		case refreshViewMsg:
			gotRefresh = true
		}
	}
	assert.True(t, gotOutput)
	assert.True(t, gotRefresh)

	model, cmd = m.Update(cmdOutputMsg{output: "hello"})
	m = model.(appModel)
	require.Nil(t, cmd)
	assert.Contains(t, m.View(), "hello")
	assert.NotContains(t, m.View(), "overview")
}

func TestAppModel_HeaderShowsBreadcrumbs(t *testing.T) {
	m := newStubModel(
		newStubView(ViewOverview, "Abrechnungen", ""),
		newStubView(ViewReport, "Januar", ""),
	)
	m.state.Width = 120
	view := m.View()
	assert.Contains(t, view, "Abrechnungen › Januar")
	assert.Contains(t, view, "esc: back")
}

func TestViewCapturesInput(t *testing.T) {
	assert.False(t, viewCapturesInput(nil))
	assert.True(t, viewCapturesInput(newStubView(ViewForm, "Form", "")))
	assert.False(t, viewCapturesInput(newStubView(ViewOverview, "Abrechnungen", "")))

	v := newStubView(ViewReport, "Januar", "")
	v.capturing = true
	assert.True(t, viewCapturesInput(v))
}

func TestExecuteBarCommand(t *testing.T) {
	msg := executeBarCommand("/mitarbeiter")()
	require.IsType(t, routeMsg{}, msg)
	assert.Equal(t, RouteEmployees, msg.(routeMsg).route.Kind)

	msg = executeBarCommand("go /abrechnung/4")()
	require.IsType(t, routeMsg{}, msg)
	assert.Equal(t, int64(4), msg.(routeMsg).route.ReportID)

	assert.IsType(t, quitMsg{}, executeBarCommand("quit")())
	assert.IsType(t, refreshViewMsg{}, executeBarCommand("reload")())

	msg = executeBarCommand("/abrechnung/x")()
	require.IsType(t, cmdOutputMsg{}, msg)
	assert.Contains(t, msg.(cmdOutputMsg).output, "unknown route")

	msg = executeBarCommand("frobnicate")()
	require.IsType(t, cmdOutputMsg{}, msg)
	assert.Contains(t, msg.(cmdOutputMsg).output, "unknown command")
}
