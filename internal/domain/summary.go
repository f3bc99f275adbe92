package domain

import (
	"fmt"
	"sort"
	"time"
)

// SummaryLine is one worked day of an employee within a report.
type SummaryLine struct {
	Date    time.Time
	Week    Week
	Start   Clock
	End     Clock
	Hours   int
	Minutes int
	Remark  string
}

// EmployeeSummary totals one employee's rows.
type EmployeeSummary struct {
	EmployeeID int64
	Name       string
	Hours      int
	Minutes    int
	Lines      []SummaryLine
}

// ReportSummary groups a report's rows per employee.
type ReportSummary struct {
	Report    Report
	Employees []EmployeeSummary
}

// TotalMinutes sums every employee's worked time.
func (s ReportSummary) TotalMinutes() int {
	total := 0
	for _, e := range s.Employees {
		total += e.Hours*60 + e.Minutes
	}
	return total
}

// Summarize groups rows per employee ordered by SortName, each employee's
// lines ordered by date.
func Summarize(report Report, rows []*Row) ReportSummary {
	type acc struct {
		sum   EmployeeSummary
		total time.Duration
	}
	byKey := make(map[string]*acc)
	var keys []string
	for _, r := range rows {
		key := r.Name
		if r.EmployeeID != 0 {
			key = fmt.Sprintf("#%d", r.EmployeeID)
		}
		a, ok := byKey[key]
		if !ok {
			a = &acc{sum: EmployeeSummary{EmployeeID: r.EmployeeID, Name: r.Name}}
			byKey[key] = a
			keys = append(keys, key)
		}
		d := r.Duration()
		a.total += d
		a.sum.Lines = append(a.sum.Lines, SummaryLine{
			Date:    r.Date,
			Week:    r.Week,
			Start:   r.Start,
			End:     r.End,
			Hours:   int(d.Hours()),
			Minutes: int(d.Minutes()) % 60,
			Remark:  r.Remark,
		})
	}

	out := ReportSummary{Report: report}
	for _, k := range keys {
		a := byKey[k]
		sort.SliceStable(a.sum.Lines, func(i, j int) bool {
			return a.sum.Lines[i].Date.Before(a.sum.Lines[j].Date)
		})
		a.sum.Hours = int(a.total.Hours())
		a.sum.Minutes = int(a.total.Minutes()) % 60
		out.Employees = append(out.Employees, a.sum)
	}
	sort.SliceStable(out.Employees, func(i, j int) bool {
		ki, kj := SortName(out.Employees[i].Name), SortName(out.Employees[j].Name)
		if ki != kj {
			return ki < kj
		}
		return out.Employees[i].Name < out.Employees[j].Name
	})
	return out
}

// MaxHoursPerDay is the longest shift accepted without a warning.
const MaxHoursPerDay = 4

// CheckRow returns human-readable warnings about suspicious row data.
// Warnings never block storage.
func CheckRow(r *Row) []string {
	var warnings []string
	if !r.Start.IsZero() && !r.End.IsZero() && !r.Start.Before(r.End) {
		warnings = append(warnings, fmt.Sprintf("end %s is not after start %s", r.End, r.Start))
	}
	if r.Duration() > MaxHoursPerDay*time.Hour {
		warnings = append(warnings, fmt.Sprintf("more than %d hours", MaxHoursPerDay))
	}
	if r.Remark == "" {
		warnings = append(warnings, "remark is empty")
	}
	return warnings
}
