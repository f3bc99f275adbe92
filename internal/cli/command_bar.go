package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/timereport/internal/cli/formatter"
)

// barCommands are completed by the command bar.
var barCommands = []string{"/", "/mitarbeiter", "/abrechnung/", "reload", "help", "quit"}

// commandBar is the persistent text input at the bottom of the TUI.
// It accepts route paths and a few commands, with in-memory history.
type commandBar struct {
	input   textinput.Model
	focused bool

	history    []string
	historyIdx int
}

func newCommandBar() commandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 200
	ti.SetSuggestions(barCommands)
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))
	return commandBar{input: ti}
}

func (c *commandBar) Focus() {
	c.focused = true
	c.input.Focus()
}

func (c *commandBar) Blur() {
	c.focused = false
	c.input.Blur()
}

func (c *commandBar) Focused() bool {
	return c.focused
}

// SetWidth updates the input width for terminal resizing.
func (c *commandBar) SetWidth(w int) {
	c.input.Width = max(w-len(promptPlain)-1, 1)
}

// Update handles key messages when the command bar is focused.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(c.input.Value())
		c.input.Reset()
		if input == "" {
			return nil
		}
		c.history = append(c.history, input)
		c.historyIdx = len(c.history)
		c.Blur()
		return executeBarCommand(input)

	case tea.KeyUp:
		if c.historyIdx > 0 {
			c.historyIdx--
			c.input.SetValue(c.history[c.historyIdx])
			c.input.CursorEnd()
		}
		return nil

	case tea.KeyDown:
		if c.historyIdx < len(c.history)-1 {
			c.historyIdx++
			c.input.SetValue(c.history[c.historyIdx])
			c.input.CursorEnd()
		} else {
			c.historyIdx = len(c.history)
			c.input.Reset()
		}
		return nil

	case tea.KeyEsc:
		c.Blur()
		return nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// UpdateNonKey handles non-key messages (e.g., cursor blink).
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

const promptPlain = "timereport ❯ "

func (c *commandBar) View() string {
	prompt := formatter.StylePurple.Render("timereport") + " " + formatter.Dim("❯") + " "
	if !c.focused {
		return prompt + formatter.Dim("press : to type a path or command")
	}
	return prompt + c.input.View()
}

// executeBarCommand turns one line of input into a tea.Cmd.
func executeBarCommand(input string) tea.Cmd {
	fields := strings.Fields(input)
	switch fields[0] {
	case "q", "quit", "exit":
		return func() tea.Msg { return quitMsg{} }
	case "reload":
		return refreshViews()
	case "help":
		return outputCmd(barHelp())
	case "go":
		if len(fields) < 2 {
			return outputCmd(formatter.StyleRed.Render("usage: go PATH"))
		}
		input = fields[1]
	}
	if !strings.HasPrefix(input, "/") {
		return outputCmd(formatter.StyleRed.Render(fmt.Sprintf("unknown command %q", fields[0])))
	}
	r, err := ParseRoute(input)
	if err != nil {
		return outputCmd(formatter.StyleRed.Render(err.Error()))
	}
	return navigate(r)
}

func barHelp() string {
	rows := [][]string{
		{"/", "report overview"},
		{"/abrechnung/ID", "rows of one report"},
		{"/mitarbeiter", "employees"},
		{"reload", "reload every view"},
		{"quit", "leave"},
	}
	return "\n" + formatter.RenderTable([]string{"COMMAND", "DESCRIPTION"}, rows)
}
