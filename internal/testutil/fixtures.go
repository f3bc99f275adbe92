package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/timereport/internal/domain"
)

// Date parses YYYY-MM-DD and panics on malformed test input.
func Date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Report options
type ReportOption func(*domain.Report)

func WithPeriod(start, end string) ReportOption {
	return func(r *domain.Report) {
		r.StartDate = Date(start)
		if end != "" {
			r.EndDate = Date(end)
		}
	}
}

func NewTestReport(title string, opts ...ReportOption) *domain.Report {
	r := &domain.Report{
		Title:     title,
		StartDate: Date("2018-01-08"),
		EndDate:   Date("2018-02-28"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Row options
type RowOption func(*domain.Row)

func WithDay(day string) RowOption {
	return func(r *domain.Row) {
		r.Date = Date(day)
	}
}

func WithHours(start, end string) RowOption {
	return func(r *domain.Row) {
		r.Start = domain.MustClock(start)
		r.End = domain.MustClock(end)
	}
}

func WithWeek(w domain.Week) RowOption {
	return func(r *domain.Row) {
		r.Week = w
	}
}

func WithRemark(remark string) RowOption {
	return func(r *domain.Row) {
		r.Remark = remark
	}
}

func WithEmployeeID(id int64) RowOption {
	return func(r *domain.Row) {
		r.EmployeeID = id
	}
}

// NewTestRow returns an unsaved row with every tracked field flagged.
func NewTestRow(reportID int64, name string, opts ...RowOption) *domain.Row {
	r := domain.NewRow(reportID)
	r.Name = name
	r.Date = Date("2018-01-10")
	r.Start = domain.DefaultStart
	r.End = domain.DefaultEnd
	r.Remark = "Betreuung"
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// InsertEmployee stores an employee directly and returns its id.
func InsertEmployee(t *testing.T, database *sql.DB, name string) int64 {
	t.Helper()
	res, err := database.ExecContext(context.Background(),
		`INSERT INTO employees (name, sort_key, created_at) VALUES (?, ?, ?)`,
		name, domain.SortName(name), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("inserting employee: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// InsertReport stores a report directly and returns its id.
func InsertReport(t *testing.T, database *sql.DB, r *domain.Report) int64 {
	t.Helper()
	var end any
	if !r.EndDate.IsZero() {
		end = r.EndDate.Format(domain.DateLayout)
	}
	res, err := database.ExecContext(context.Background(),
		`INSERT INTO reports (title, start_date, end_date, was_pdf_generated) VALUES (?, ?, ?, 0)`,
		r.Title, r.StartDate.Format(domain.DateLayout), end)
	if err != nil {
		t.Fatalf("inserting report: %v", err)
	}
	id, _ := res.LastInsertId()
	r.ID = id
	return id
}
