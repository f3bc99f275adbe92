package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/timereport/internal/domain"
)

type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByName(ctx context.Context, name string) (*domain.Employee, error)
	// EnsureByName returns the id of the employee with the given name,
	// creating the employee if necessary.
	EnsureByName(ctx context.Context, name string) (int64, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id int64) error
}

type ReportRepo interface {
	Create(ctx context.Context, r *domain.Report) error
	GetByID(ctx context.Context, id int64) (*domain.Report, error)
	// Latest returns the report with the highest id.
	Latest(ctx context.Context) (*domain.Report, error)
	List(ctx context.Context) ([]*domain.Report, error)
	Update(ctx context.Context, r *domain.Report) error
	SetPDFGenerated(ctx context.Context, id int64, generated bool) error
	// MaxEndDate returns the latest end date across all reports; ok is false
	// when no report has an end date.
	MaxEndDate(ctx context.Context) (end time.Time, ok bool, err error)
}

type ItemRepo interface {
	Create(ctx context.Context, r *domain.Row) error
	Replace(ctx context.Context, r *domain.Row) error
	GetByID(ctx context.Context, reportID, id int64) (*domain.Row, error)
	ListByReport(ctx context.Context, reportID int64) ([]*domain.Row, error)
	// Last returns the report's row with the latest day.
	Last(ctx context.Context, reportID int64) (*domain.Row, error)
	Delete(ctx context.Context, reportID, id int64) error
	CountByEmployee(ctx context.Context, employeeID int64) (int, error)
}

// WeekMapping assigns a rotation label to a calendar week.
type WeekMapping struct {
	Week  domain.ISOWeek
	Label domain.Week
}

type WeekRepo interface {
	Upsert(ctx context.Context, m WeekMapping) error
	Get(ctx context.Context, w domain.ISOWeek) (domain.Week, error)
	List(ctx context.Context) ([]WeekMapping, error)
}

type HolidayRepo interface {
	// InsertIgnore stores holidays whose date is not yet known and returns
	// the number of new rows.
	InsertIgnore(ctx context.Context, holidays []domain.Holiday) (int, error)
	List(ctx context.Context) ([]domain.Holiday, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.Holiday, error)
	Exists(ctx context.Context, day time.Time) (bool, error)
}
