package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/timereport/internal/domain"
)

type ItemService interface {
	// List returns a report's rows ordered by day, then name.
	List(ctx context.Context, reportID int64) ([]*domain.Row, error)
	// Template proposes the next row of a report. Its id is always 0.
	Template(ctx context.Context, reportID int64) (*domain.Row, error)
	// Save stores a complete row. Rows with id 0 are inserted and receive
	// their new id; others are replaced.
	Save(ctx context.Context, row *domain.Row) (int64, error)
	// Patch applies only the supplied fields to a stored row.
	Patch(ctx context.Context, reportID, id int64, patch RowPatch) (*domain.Row, error)
	Delete(ctx context.Context, reportID, id int64) error
}

// RowPatch carries the fields of a partial row update. Nil means unchanged.
type RowPatch struct {
	Name   *string
	Date   *time.Time
	Start  *domain.Clock
	End    *domain.Clock
	Week   *domain.Week
	Remark *string
}

// Empty reports whether the patch changes nothing.
func (p RowPatch) Empty() bool {
	return p.Name == nil && p.Date == nil && p.Start == nil && p.End == nil &&
		p.Week == nil && p.Remark == nil
}

type ReportService interface {
	List(ctx context.Context) ([]*domain.Report, error)
	Get(ctx context.Context, id int64) (*domain.Report, error)
	// Active returns the most recently created report.
	Active(ctx context.Context) (*domain.Report, error)
	Add(ctx context.Context, r *domain.Report) error
	Update(ctx context.Context, r *domain.Report) error
	// Template proposes the period following the latest report.
	Template(ctx context.Context) (*domain.Report, error)
	// CreateFromTitle opens a report starting the day after the latest end date.
	CreateFromTitle(ctx context.Context, title string) (*domain.Report, error)
	MarkPDFGenerated(ctx context.Context, id int64) error
	Summary(ctx context.Context, id int64) (*domain.ReportSummary, error)
	// Globals returns the active report's date bounds with the configured
	// time-of-day window. Without any report only the time window is set.
	Globals(ctx context.Context) (domain.Globals, error)
}

type EmployeeService interface {
	List(ctx context.Context) ([]*domain.Employee, error)
	// Add returns the id of the named employee, creating it if needed.
	Add(ctx context.Context, name string) (int64, error)
	Rename(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

type CalendarService interface {
	IsSchoolDay(ctx context.Context, day time.Time) (bool, error)
	NextSchoolDay(ctx context.Context, day time.Time) (time.Time, error)
	PreviousSchoolDay(ctx context.Context, day time.Time) (time.Time, error)
	Holidays(ctx context.Context) ([]domain.Holiday, error)
	// RefreshHolidays fetches the year's holidays and stores unknown dates.
	RefreshHolidays(ctx context.Context, year int) (int, error)
	// PopulateWeeks labels every calendar week in [from, to] that contains a
	// school day, rotating from first.
	PopulateWeeks(ctx context.Context, from, to time.Time, first domain.Week) (int, error)
	WeekOf(ctx context.Context, day time.Time) (domain.Week, error)
}

// HolidaySource fetches holidays from an external calendar.
type HolidaySource interface {
	Fetch(ctx context.Context, year int) ([]domain.Holiday, error)
}

type ExportService interface {
	WriteCSV(ctx context.Context, reportID int64, w io.Writer) error
	WriteLaTeX(ctx context.Context, reportID int64, w io.Writer) error
	// PDF renders the report, stores CSV and PDF in the export directory and
	// returns the PDF path.
	PDF(ctx context.Context, reportID int64) (string, error)
	// Check lists data warnings for every row of the report.
	Check(ctx context.Context, reportID int64) ([]RowWarning, error)
}

// RowWarning is a data check finding for one row.
type RowWarning struct {
	Row     *domain.Row
	Message string
}

// PDFCompiler turns a LaTeX source file into a PDF.
type PDFCompiler interface {
	Compile(ctx context.Context, texPath string) (string, error)
}

// TimeWindow is the allowed time-of-day range for row input.
type TimeWindow struct {
	Min domain.Clock
	Max domain.Clock
}

// RowDefaults are the hours proposed for a report's first row.
type RowDefaults struct {
	Start domain.Clock
	End   domain.Clock
}
