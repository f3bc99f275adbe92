package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timereport/internal/db"
	"github.com/alexanderramin/timereport/internal/domain"
	"github.com/alexanderramin/timereport/internal/repository"
)

// maxSchoolDayGap bounds the search for the next or previous school day.
// The longest school break is well below this.
const maxSchoolDayGap = 120

// ErrNoSchoolDay is returned when no school day lies within maxSchoolDayGap.
var ErrNoSchoolDay = errors.New("no school day in range")

type calendarService struct {
	holidays repository.HolidayRepo
	weeks    repository.WeekRepo
	source   HolidaySource
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewCalendarService creates a CalendarService. source may be nil when
// holidays are never refreshed from the network.
func NewCalendarService(holidays repository.HolidayRepo, weeks repository.WeekRepo, source HolidaySource, uow db.UnitOfWork, observers ...UseCaseObserver) CalendarService {
	return &calendarService{
		holidays: holidays,
		weeks:    weeks,
		source:   source,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *calendarService) IsSchoolDay(ctx context.Context, day time.Time) (bool, error) {
	if !domain.IsWorkDay(day) {
		return false, nil
	}
	holiday, err := s.holidays.Exists(ctx, day)
	if err != nil {
		return false, err
	}
	return !holiday, nil
}

func (s *calendarService) NextSchoolDay(ctx context.Context, day time.Time) (time.Time, error) {
	return s.step(ctx, domain.Day(day), 1)
}

func (s *calendarService) PreviousSchoolDay(ctx context.Context, day time.Time) (time.Time, error) {
	return s.step(ctx, domain.Day(day), -1)
}

// step walks from day in direction dir and returns the first school day,
// excluding day itself.
func (s *calendarService) step(ctx context.Context, day time.Time, dir int) (time.Time, error) {
	from, to := day, day.AddDate(0, 0, dir*maxSchoolDayGap)
	if dir < 0 {
		from, to = to, from
	}
	holidays, err := s.holidays.ListBetween(ctx, from, to)
	if err != nil {
		return time.Time{}, err
	}
	closed := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		closed[domain.FormatDate(h.Date)] = true
	}

	for i := 1; i <= maxSchoolDayGap; i++ {
		d := day.AddDate(0, 0, dir*i)
		if domain.IsWorkDay(d) && !closed[domain.FormatDate(d)] {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %d days from %s", ErrNoSchoolDay, maxSchoolDayGap, domain.FormatDate(day))
}

func (s *calendarService) Holidays(ctx context.Context) ([]domain.Holiday, error) {
	return s.holidays.List(ctx)
}

func (s *calendarService) RefreshHolidays(ctx context.Context, year int) (added int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"year": year}
	defer func() { observe(ctx, s.observer, "refresh-holidays", startedAt, err, fields) }()

	if s.source == nil {
		return 0, errors.New("no holiday source configured")
	}
	var fetched []domain.Holiday
	fetched, err = s.source.Fetch(ctx, year)
	if err != nil {
		return 0, fmt.Errorf("fetching holidays for %d: %w", year, err)
	}
	fields["fetched"] = len(fetched)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		added, err = repository.NewSQLiteHolidayRepo(tx).InsertIgnore(ctx, fetched)
		return err
	})
	if err != nil {
		return 0, err
	}
	fields["added"] = added
	return added, nil
}

func (s *calendarService) PopulateWeeks(ctx context.Context, from, to time.Time, first domain.Week) (n int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"from": domain.FormatDate(from), "to": domain.FormatDate(to)}
	defer func() { observe(ctx, s.observer, "populate-weeks", startedAt, err, fields) }()

	if !first.Valid() {
		return 0, fmt.Errorf("%w: %d", domain.ErrInvalidWeek, int(first))
	}
	from, to = domain.Day(from), domain.Day(to)
	if to.Before(from) {
		return 0, fmt.Errorf("%w: %s after %s", domain.ErrInvalidDate, domain.FormatDate(from), domain.FormatDate(to))
	}

	holidays, err := s.holidays.ListBetween(ctx, from, to)
	if err != nil {
		return 0, err
	}
	closed := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		closed[domain.FormatDate(h.Date)] = true
	}

	var mappings []repository.WeekMapping
	label := first
	var prev domain.ISOWeek
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if !domain.IsWorkDay(d) || closed[domain.FormatDate(d)] {
			continue
		}
		wk := domain.ISOWeekOf(d)
		if wk == prev {
			continue
		}
		prev = wk
		mappings = append(mappings, repository.WeekMapping{Week: wk, Label: label})
		label = label.Next()
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		weeks := repository.NewSQLiteWeekRepo(tx)
		for _, m := range mappings {
			if err := weeks.Upsert(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	fields["weeks"] = len(mappings)
	return len(mappings), nil
}

func (s *calendarService) WeekOf(ctx context.Context, day time.Time) (domain.Week, error) {
	return s.weeks.Get(ctx, domain.ISOWeekOf(day))
}
