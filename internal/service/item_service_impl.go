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

type itemService struct {
	items    repository.ItemRepo
	calendar CalendarService
	uow      db.UnitOfWork
	defaults func() RowDefaults
	observer UseCaseObserver
	today    func() time.Time
}

// NewItemService creates an ItemService. defaults supplies the hours of a
// report's first row; nil uses domain.DefaultStart and domain.DefaultEnd.
func NewItemService(items repository.ItemRepo, calendar CalendarService, uow db.UnitOfWork, defaults func() RowDefaults, observers ...UseCaseObserver) ItemService {
	if defaults == nil {
		defaults = func() RowDefaults {
			return RowDefaults{Start: domain.DefaultStart, End: domain.DefaultEnd}
		}
	}
	return &itemService{
		items:    items,
		calendar: calendar,
		uow:      uow,
		defaults: defaults,
		observer: useCaseObserverOrNoop(observers),
		today:    func() time.Time { return domain.Day(time.Now()) },
	}
}

func (s *itemService) List(ctx context.Context, reportID int64) ([]*domain.Row, error) {
	return s.items.ListByReport(ctx, reportID)
}

func (s *itemService) Template(ctx context.Context, reportID int64) (*domain.Row, error) {
	last, err := s.items.Last(ctx, reportID)
	if errors.Is(err, repository.ErrNotFound) {
		day, err := s.calendar.NextSchoolDay(ctx, s.today().AddDate(0, 0, -1))
		if err != nil {
			return nil, err
		}
		tmpl := domain.TemplateRow(reportID, day, s.weekFor(ctx, day, domain.WeekA, day))
		if d := s.defaults(); !d.Start.IsZero() && !d.End.IsZero() {
			tmpl.Start, tmpl.End = d.Start, d.End
		}
		return tmpl, nil
	}
	if err != nil {
		return nil, err
	}

	day, err := s.calendar.NextSchoolDay(ctx, last.Date)
	if err != nil {
		return nil, err
	}
	tmpl := last.Clone()
	tmpl.ID = 0
	tmpl.Date = day
	tmpl.Week = s.weekFor(ctx, day, last.Week, last.Date)
	tmpl.Modified.ClearAll()
	return tmpl, nil
}

// weekFor returns the stored label of day's calendar week. Unmapped weeks
// continue the rotation from prev, the label in effect on prevDay.
func (s *itemService) weekFor(ctx context.Context, day time.Time, prev domain.Week, prevDay time.Time) domain.Week {
	w, err := s.calendar.WeekOf(ctx, day)
	if err == nil {
		return w
	}
	if domain.ISOWeekOf(day) == domain.ISOWeekOf(prevDay) {
		return prev
	}
	return prev.Next()
}

func (s *itemService) Save(ctx context.Context, row *domain.Row) (id int64, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"report_id": row.ReportID, "item_id": row.ID}
	defer func() { observe(ctx, s.observer, "save-item", startedAt, err, fields) }()

	if err = row.ValidateForSave(); err != nil {
		return 0, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return storeRow(ctx, tx, row)
	})
	if err != nil {
		return 0, err
	}
	fields["item_id"] = row.ID
	return row.ID, nil
}

// storeRow resolves the employee, records the row's week label and writes
// the row. It runs inside a transaction.
func storeRow(ctx context.Context, tx db.DBTX, row *domain.Row) error {
	employeeID, err := repository.NewSQLiteEmployeeRepo(tx).EnsureByName(ctx, row.Name)
	if err != nil {
		return err
	}
	row.EmployeeID = employeeID

	if err := repository.NewSQLiteWeekRepo(tx).Upsert(ctx, repository.WeekMapping{
		Week:  domain.ISOWeekOf(row.Date),
		Label: row.Week,
	}); err != nil {
		return err
	}

	items := repository.NewSQLiteItemRepo(tx)
	if row.IsNew() {
		return items.Create(ctx, row)
	}
	return items.Replace(ctx, row)
}

func (s *itemService) Patch(ctx context.Context, reportID, id int64, patch RowPatch) (row *domain.Row, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"report_id": reportID, "item_id": id}
	defer func() { observe(ctx, s.observer, "patch-item", startedAt, err, fields) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		stored, err := repository.NewSQLiteItemRepo(tx).GetByID(ctx, reportID, id)
		if err != nil {
			return err
		}
		applyPatch(stored, patch)
		fields["fields"] = fieldNames(stored.Modified.Changed())
		if err := stored.ValidateForSave(); err != nil {
			return err
		}
		if err := storeRow(ctx, tx, stored); err != nil {
			return err
		}
		stored.MarkSaved()
		row = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func applyPatch(row *domain.Row, p RowPatch) {
	if p.Name != nil {
		row.SetName(*p.Name)
	}
	if p.Date != nil {
		row.SetDate(*p.Date)
	}
	if p.Start != nil {
		row.SetStart(*p.Start)
	}
	if p.End != nil {
		row.SetEnd(*p.End)
	}
	if p.Week != nil {
		row.Week = *p.Week
	}
	if p.Remark != nil {
		row.Remark = *p.Remark
	}
}

func fieldNames(fs []domain.Field) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.String()
	}
	return out
}

func (s *itemService) Delete(ctx context.Context, reportID, id int64) error {
	if err := s.items.Delete(ctx, reportID, id); err != nil {
		return fmt.Errorf("deleting item %d: %w", id, err)
	}
	return nil
}
