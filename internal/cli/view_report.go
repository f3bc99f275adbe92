package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/timereport/internal/api"
	"github.com/alexanderramin/timereport/internal/cli/formatter"
	"github.com/alexanderramin/timereport/internal/domain"
	"github.com/alexanderramin/timereport/internal/worksheet"
)

// column is one editable cell of a row. The first four are tracked fields.
type column int

const (
	colName column = iota
	colDate
	colStart
	colEnd
	colWeek
	colRemark

	numColumns
)

var columnTitles = [numColumns]string{"NAME", "DATE", "START", "END", "WEEK", "REMARK"}
var columnWidths = [numColumns]int{22, 10, 5, 5, 4, 30}

// field returns the tracked field behind c, if any.
func (c column) field() (domain.Field, bool) {
	if c < colWeek {
		return domain.Field(c), true
	}
	return 0, false
}

// sheetDoneMsg reports the end of a sheet operation started by a reportView.
type sheetDoneMsg struct {
	sheet *worksheet.Sheet
	op    string
	index int
	err   error
}

// reportView edits the rows of one report through a worksheet.
type reportView struct {
	state *SharedState
	sheet *worksheet.Sheet

	// busy is set while a command works on the sheet; View and key
	// handling leave the sheet alone until the matching sheetDoneMsg.
	busy    string
	loaded  bool
	err     error
	message string

	row, col int
	editing  bool
	input    textinput.Model
}

func newReportView(state *SharedState, reportID int64) *reportView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 200
	return &reportView{
		state: state,
		sheet: worksheet.New(state.Backend, reportID),
		input: ti,
	}
}

func (v *reportView) ID() ViewID { return ViewReport }

func (v *reportView) Title() string {
	if v.loaded && v.busy == "" {
		if t := v.sheet.Globals().Title; t != "" {
			return t
		}
	}
	return "Abrechnung"
}

func (v *reportView) CapturesInput() bool { return v.editing }

func (v *reportView) ShortHelp() []key.Binding {
	if v.editing {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next school day")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "summary")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

func (v *reportView) Init() tea.Cmd {
	return v.run("load", -1, func(ctx context.Context) (int, error) {
		return -1, v.sheet.Load(ctx)
	})
}

// run marks the view busy and performs fn on the sheet outside Update.
func (v *reportView) run(op string, index int, fn func(ctx context.Context) (int, error)) tea.Cmd {
	v.busy = op
	sheet := v.sheet
	return func() tea.Msg {
		idx, err := fn(context.Background())
		if idx < 0 {
			idx = index
		}
		return sheetDoneMsg{sheet: sheet, op: op, index: idx, err: err}
	}
}

func (v *reportView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sheetDoneMsg:
		if msg.sheet != v.sheet {
			return v, nil
		}
		v.finish(msg)
		return v, nil

	case refreshViewMsg:
		if v.busy != "" || v.editing || v.sheet.Dirty() > 0 {
			return v, nil
		}
		return v, v.Init()

	case tea.KeyMsg:
		if v.busy != "" {
			return v, nil
		}
		if v.editing {
			return v.updateEditing(msg)
		}
		return v.updateNormal(msg)
	}

	if v.editing {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *reportView) finish(msg sheetDoneMsg) {
	v.busy = ""
	switch msg.op {
	case "load":
		// A failed reload keeps the rows shown before.
		v.err = msg.err
		if msg.err == nil {
			v.loaded = true
			v.message = ""
		}
	case "add":
		if msg.err == nil {
			v.row, v.col = msg.index, int(colName)
		}
		v.message = errText(msg.err)
	case "save":
		if msg.err == nil {
			v.message = formatter.StyleGreen.Render("✔ Saved")
		} else {
			v.message = errText(msg.err)
		}
	case "delete", "next":
		v.message = errText(msg.err)
	}
	v.row = min(v.row, max(v.sheet.Len()-1, 0))
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return formatter.StyleRed.Render("Error: " + err.Error())
}

func (v *reportView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !v.loaded {
		if msg.String() == "r" {
			return v, v.Init()
		}
		return v, nil
	}
	switch msg.String() {
	case "up", "k":
		if v.row > 0 {
			v.row--
		}
	case "down", "j":
		if v.row < v.sheet.Len()-1 {
			v.row++
		}
	case "left", "h":
		if v.col > 0 {
			v.col--
		}
	case "right", "l", "tab":
		if v.col < int(numColumns)-1 {
			v.col++
		}
	case "enter", "e":
		if v.sheet.Len() > 0 {
			v.startEditing()
			return v, textinput.Blink
		}
	case "a":
		return v, v.run("add", -1, v.sheet.Add)
	case "n":
		if v.sheet.Len() > 0 {
			idx := v.row
			return v, v.run("next", idx, func(ctx context.Context) (int, error) {
				return -1, v.moveToNextSchoolDay(ctx, idx)
			})
		}
	case "u":
		return v, v.summary()
	case "s":
		return v, v.run("save", v.row, func(ctx context.Context) (int, error) {
			return -1, v.sheet.Save(ctx)
		})
	case "x":
		if v.sheet.Len() > 0 {
			idx := v.row
			return v, v.run("delete", idx, func(ctx context.Context) (int, error) {
				return -1, v.sheet.Remove(ctx, idx)
			})
		}
	case "r":
		if v.sheet.Dirty() > 0 {
			v.message = formatter.StyleYellow.Render("Unsaved changes: press s to save first")
			return v, nil
		}
		return v, v.Init()
	}
	return v, nil
}

// moveToNextSchoolDay sets the date of row idx to the first school day
// after it. Crossing into a later calendar week advances the week label:
// weeks in between hold no school day and so carry no label.
func (v *reportView) moveToNextSchoolDay(ctx context.Context, idx int) error {
	r, err := v.sheet.Row(idx)
	if err != nil {
		return err
	}
	if r.Date.IsZero() {
		return fmt.Errorf("row %d has no date", idx+1)
	}
	next, err := v.state.Backend.NextSchoolDay(ctx, r.Date)
	if err != nil {
		return err
	}
	prev := r.Date
	if err := v.sheet.Edit(idx, domain.FieldDate, domain.FormatDate(next)); err != nil {
		return err
	}
	if domain.ISOWeekOf(next) == domain.ISOWeekOf(prev) || !r.Week.Valid() {
		return nil
	}
	return v.sheet.SetWeek(idx, r.Week.Next())
}

// summary shows the stored hours per employee; unsaved edits are not included.
func (v *reportView) summary() tea.Cmd {
	backend := v.state.Backend
	id := v.sheet.ReportID()
	return func() tea.Msg {
		s, err := backend.Summary(context.Background(), id)
		if err != nil {
			return cmdOutputMsg{output: errText(err)}
		}
		return cmdOutputMsg{output: renderSummary(s)}
	}
}

func renderSummary(s api.Summary) string {
	rows := make([][]string, 0, len(s.Employees))
	for _, e := range s.Employees {
		rows = append(rows, []string{e.Name, strconv.Itoa(len(e.Items)), formatter.FormatMinutes(e.Hours*60 + e.Minutes)})
	}
	var b strings.Builder
	b.WriteString("\n  " + formatter.Header(s.Title) + "\n\n")
	b.WriteString(formatter.RenderTable([]string{"NAME", "DAYS", "HOURS"}, rows))
	b.WriteString("\n  " + formatter.Dim("Total ") + formatter.Bold(formatter.FormatMinutes(s.TotalMinutes)))
	return b.String()
}

func (v *reportView) startEditing() {
	v.editing = true
	v.message = ""
	v.input.SetValue(v.cellValue(v.row, column(v.col)))
	v.input.CursorEnd()
	v.input.Focus()
}

func (v *reportView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.editing = false
		v.input.Blur()
		return v, nil
	case tea.KeyEnter:
		if err := v.applyEdit(v.input.Value()); err != nil {
			v.message = errText(err)
			return v, nil
		}
		v.editing = false
		v.input.Blur()
		v.message = ""
		return v, nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// applyEdit stores value into the selected cell. Invalid input leaves the
// row untouched.
func (v *reportView) applyEdit(value string) error {
	c := column(v.col)
	if f, ok := c.field(); ok {
		return v.sheet.Edit(v.row, f, value)
	}
	if c == colWeek {
		w, err := domain.ParseWeek(value)
		if err != nil {
			return err
		}
		return v.sheet.SetWeek(v.row, w)
	}
	return v.sheet.SetRemark(v.row, value)
}

func (v *reportView) cellValue(index int, c column) string {
	r, err := v.sheet.Row(index)
	if err != nil {
		return ""
	}
	if f, ok := c.field(); ok {
		return r.Value(f)
	}
	if c == colWeek {
		return r.Week.String()
	}
	return r.Remark
}

func (v *reportView) View() string {
	switch {
	case v.busy == "load" && !v.loaded:
		return "\n  " + formatter.Dim("Loading rows...")
	case v.busy != "":
		return "\n  " + formatter.Dim(strings.ToUpper(v.busy[:1])+v.busy[1:]+"...")
	case !v.loaded && v.err != nil:
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n  " + formatter.Dim("press r to retry")
	}

	var b strings.Builder
	g := v.sheet.Globals()
	b.WriteString("\n  " + formatter.Dim(fmt.Sprintf("%s – %s   %s – %s",
		domain.FormatDate(g.MinDate), domain.FormatDate(g.MaxDate), g.MinTime, g.MaxTime)))
	if n := v.sheet.Dirty(); n > 0 {
		b.WriteString("   " + formatter.StyleYellow.Render(fmt.Sprintf("● %d unsaved", n)))
	}
	b.WriteString("\n\n")

	b.WriteString("    ")
	for c := column(0); c < numColumns; c++ {
		b.WriteString(formatter.StyleHeader.Render(formatter.PadRight(columnTitles[c], columnWidths[c])) + "  ")
	}
	b.WriteString("\n")

	if v.sheet.Len() == 0 {
		b.WriteString("  " + formatter.Dim("No rows. Press a to add one.") + "\n")
	}
	for i, r := range v.sheet.Rows() {
		marker := "  "
		if i == v.row {
			marker = formatter.StyleGreen.Render("▸ ")
		}
		b.WriteString(marker + formatter.Dim(formatter.PadRight(strconv.Itoa(i+1), 2)))
		for c := column(0); c < numColumns; c++ {
			b.WriteString(v.renderCell(i, r, c, g) + "  ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n  " + formatter.Dim("Total ") + formatter.Bold(formatter.FormatDuration(v.sheet.Total())))
	for _, w := range v.sheet.Warnings() {
		b.WriteString("\n  " + formatter.StyleYellow.Render("! "+w))
	}
	if v.err != nil {
		b.WriteString("\n  " + errText(v.err))
	}
	if v.message != "" {
		b.WriteString("\n  " + v.message)
	}
	return b.String()
}

func (v *reportView) renderCell(i int, r *domain.Row, c column, g domain.Globals) string {
	width := columnWidths[c]
	if v.editing && i == v.row && int(c) == v.col {
		return formatter.PadRight(v.input.View(), width)
	}

	text := v.cellValue(i, c)
	style := formatter.StyleFg
	if f, ok := c.field(); ok && r.Modified[f] {
		style = formatter.StyleYellow
	}
	switch c {
	case colWeek:
		style = formatter.WeekStyle(r.Week)
	case colDate:
		if !r.Date.IsZero() && !g.AllowsDate(r.Date) {
			style = formatter.StyleRed
		}
	case colStart:
		if !g.AllowsTime(r.Start) {
			style = formatter.StyleRed
		}
	case colEnd:
		if !g.AllowsTime(r.End) {
			style = formatter.StyleRed
		}
	}
	cell := formatter.PadRight(text, width)
	if i == v.row && int(c) == v.col {
		return style.Reverse(true).Render(cell)
	}
	return style.Render(cell)
}
