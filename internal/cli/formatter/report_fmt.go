package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/timereport/internal/domain"
)

// FormatReportList renders the billing periods inside a bordered box.
func FormatReportList(reports []*domain.Report) string {
	if len(reports) == 0 {
		return RenderBox("Abrechnungen", Dim("No reports yet."))
	}
	headers := []string{"ID", "TITLE", "FROM", "TO", "PDF"}
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		to := Dim("open")
		if !r.EndDate.IsZero() {
			to = domain.FormatDate(r.EndDate)
		}
		rows = append(rows, []string{
			StyleGreen.Render(strconv.FormatInt(r.ID, 10)),
			Bold(r.Title),
			domain.FormatDate(r.StartDate),
			to,
			PDFPill(r.PDFGenerated),
		})
	}
	return RenderBox("Abrechnungen", RenderTable(headers, rows))
}

// FormatRows renders a report's rows. Rows outside the bounds of g are
// highlighted.
func FormatRows(rows []*domain.Row, g domain.Globals) string {
	headers := []string{"#", "NAME", "DATE", "WEEK", "START", "END", "HOURS", "REMARK"}
	out := make([][]string, 0, len(rows))
	var total time.Duration
	for i, r := range rows {
		date := GermanDate(r.Date)
		if !r.Date.IsZero() && !g.AllowsDate(r.Date) {
			date = StyleRed.Render(date)
		}
		start, end := r.Start.String(), r.End.String()
		if !g.AllowsTime(r.Start) {
			start = StyleRed.Render(start)
		}
		if !g.AllowsTime(r.End) {
			end = StyleRed.Render(end)
		}
		total += r.Duration()
		out = append(out, []string{
			Dim(strconv.Itoa(i + 1)),
			r.Name,
			date,
			WeekBadge(r.Week),
			start,
			end,
			FormatDuration(r.Duration()),
			r.Remark,
		})
	}
	title := "Rows"
	if g.Title != "" {
		title = g.Title
	}
	body := RenderTable(headers, out) + "\n" + Dim("Total ") + Bold(FormatDuration(total))
	return RenderBox(title, body)
}

// FormatSummary renders per-employee totals of a report.
func FormatSummary(s domain.ReportSummary) string {
	var b strings.Builder
	if len(s.Employees) == 0 {
		b.WriteString(Dim("No rows."))
	}
	for i, e := range s.Employees {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", Bold(e.Name), StyleGreen.Render(FormatMinutes(e.Hours*60+e.Minutes))))
		rows := make([][]string, 0, len(e.Lines))
		for _, l := range e.Lines {
			rows = append(rows, []string{
				GermanDate(l.Date),
				WeekBadge(l.Week),
				l.Start.String() + "–" + l.End.String(),
				FormatMinutes(l.Hours*60 + l.Minutes),
				l.Remark,
			})
		}
		b.WriteString(RenderTable([]string{"DATE", "WEEK", "TIME", "HOURS", "REMARK"}, rows))
	}
	b.WriteString("\n" + Dim("Total ") + Bold(FormatMinutes(s.TotalMinutes())))
	return RenderBox(s.Report.Title, b.String())
}

// FormatEmployees renders the employee list.
func FormatEmployees(employees []*domain.Employee) string {
	if len(employees) == 0 {
		return RenderBox("Mitarbeiter", Dim("No employees yet."))
	}
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{
			StyleGreen.Render(strconv.FormatInt(e.ID, 10)),
			Bold(e.Name),
			Dim(e.SortKey),
		})
	}
	return RenderBox("Mitarbeiter", RenderTable([]string{"ID", "NAME", "SORT"}, rows))
}

// FormatHolidays renders holidays one per line.
func FormatHolidays(holidays []domain.Holiday) string {
	if len(holidays) == 0 {
		return Dim("No holidays stored.")
	}
	rows := make([][]string, 0, len(holidays))
	for _, h := range holidays {
		rows = append(rows, []string{GermanDate(h.Date), h.Title})
	}
	return RenderTable([]string{"DATE", "TITLE"}, rows)
}
