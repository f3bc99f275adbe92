package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/timereport/internal/domain"
	"github.com/alexanderramin/timereport/internal/repository"
	"github.com/alexanderramin/timereport/internal/testutil"
)

type testEnv struct {
	db        *sql.DB
	employees repository.EmployeeRepo
	reports   repository.ReportRepo
	items     repository.ItemRepo
	weeks     repository.WeekRepo
	holidays  repository.HolidayRepo
	calendar  CalendarService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	env := &testEnv{
		db:        database,
		employees: repository.NewSQLiteEmployeeRepo(database),
		reports:   repository.NewSQLiteReportRepo(database),
		items:     repository.NewSQLiteItemRepo(database),
		weeks:     repository.NewSQLiteWeekRepo(database),
		holidays:  repository.NewSQLiteHolidayRepo(database),
	}
	env.calendar = NewCalendarService(env.holidays, env.weeks, nil, testutil.NewTestUoW(database))
	return env
}

func (e *testEnv) report(t *testing.T, title string) *domain.Report {
	t.Helper()
	r := testutil.NewTestReport(title)
	testutil.InsertReport(t, e.db, r)
	return r
}

// staticHolidays is a HolidaySource serving a fixed list.
type staticHolidays struct {
	holidays []domain.Holiday
	err      error
	years    []int
}

func (s *staticHolidays) Fetch(_ context.Context, year int) ([]domain.Holiday, error) {
	s.years = append(s.years, year)
	return s.holidays, s.err
}

// recordingObserver collects use-case events.
type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

func fixedDay(s string) func() time.Time {
	d := testutil.Date(s)
	return func() time.Time { return d }
}
