package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/timereport/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{150, "2:30"},
		{-10, "0:00"},
		{605, "10:05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.in))
	}
	assert.Equal(t, "1:15", FormatDuration(75*time.Minute))
}

func TestGermanDate(t *testing.T) {
	assert.Equal(t, "Mi 10.01.2018", GermanDate(day(2018, 1, 10)))
	assert.Equal(t, "", GermanDate(time.Time{}))
}

func TestPadRightAndTruncate(t *testing.T) {
	assert.Equal(t, "abc  ", PadRight("abc", 5))
	assert.Equal(t, "abcd…", ansi.Strip(PadRight("abcdefgh", 5)))
	assert.Equal(t, 5, lipgloss.Width(PadRight(StyleGreen.Render("abcdefgh"), 5)))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestRenderTableWidth_TruncatesLastColumn(t *testing.T) {
	out := ansi.Strip(RenderTableWidth([]string{"A", "REMARK"}, [][]string{{"x", strings.Repeat("r", 40)}}, 12))
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 12, line)
	}
	assert.Contains(t, out, "…")
}

func TestFormatRows(t *testing.T) {
	g := domain.Globals{
		Title:   "Januar",
		MinDate: day(2018, 1, 8), MaxDate: day(2018, 2, 28),
		MinTime: domain.MustClock("12:30"), MaxTime: domain.MustClock("16:00"),
	}
	rows := []*domain.Row{
		{Name: "Jane Doe", Date: day(2018, 1, 10), Week: domain.WeekB,
			Start: domain.MustClock("13:00"), End: domain.MustClock("15:30"), Remark: "Betreuung"},
		{Name: "John Roe", Date: day(2018, 1, 11),
			Start: domain.MustClock("13:00"), End: domain.MustClock("14:00")},
	}

	out := ansi.Strip(FormatRows(rows, g))
	assert.Contains(t, out, "JANUAR")
	assert.Contains(t, out, "Mi 10.01.2018")
	assert.Contains(t, out, "Betreuung")
	assert.Contains(t, out, "2:30")
	assert.Contains(t, out, "Total 3:30")
}

func TestFormatSummary(t *testing.T) {
	rows := []*domain.Row{
		{EmployeeID: 1, Name: "Doe, Jane", Date: day(2018, 1, 10),
			Start: domain.MustClock("13:00"), End: domain.MustClock("15:30")},
		{EmployeeID: 1, Name: "Doe, Jane", Date: day(2018, 1, 11),
			Start: domain.MustClock("13:00"), End: domain.MustClock("14:00")},
	}
	s := domain.Summarize(domain.Report{Title: "Januar"}, rows)

	out := ansi.Strip(FormatSummary(s))
	assert.Contains(t, out, "Doe, Jane  3:30")
	assert.Contains(t, out, "Total 3:30")
}

func TestFormatReportList(t *testing.T) {
	out := ansi.Strip(FormatReportList([]*domain.Report{
		{ID: 3, Title: "Januar", StartDate: day(2018, 1, 8), PDFGenerated: true},
	}))
	assert.Contains(t, out, "Januar")
	assert.Contains(t, out, "open")
	assert.Contains(t, out, "✔ PDF")

	assert.Contains(t, ansi.Strip(FormatReportList(nil)), "No reports yet.")
}
