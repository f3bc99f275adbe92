package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timereport/internal/db"
	"github.com/alexanderramin/timereport/internal/domain"
)

const itemViewColumns = `id, report_id, employee_id, name, day, type_of_week, start_time, end_time, remark`

// SQLiteItemRepo implements ItemRepo using a SQLite database.
// Writes go to the items table; reads go through items_view so that
// rows carry the employee name and week label.
type SQLiteItemRepo struct {
	db db.DBTX
}

// NewSQLiteItemRepo creates a new SQLiteItemRepo.
func NewSQLiteItemRepo(db db.DBTX) *SQLiteItemRepo {
	return &SQLiteItemRepo{db: db}
}

// Create inserts r. The caller resolves r.EmployeeID beforehand.
func (r *SQLiteItemRepo) Create(ctx context.Context, row *domain.Row) error {
	wk := domain.ISOWeekOf(row.Date)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO items (employee_id, report_id, day, start_time, end_time, remark, week_year, week_no)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		row.EmployeeID, row.ReportID,
		row.Date.Format(domain.DateLayout),
		clockToString(row.Start), clockToString(row.End),
		row.Remark, wk.Year, wk.Week,
	)
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("item references unknown report or employee: %w", ErrNotFound)
		}
		return fmt.Errorf("inserting item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading item id: %w", err)
	}
	row.ID = id
	return nil
}

// Replace overwrites every stored column of an existing item.
func (r *SQLiteItemRepo) Replace(ctx context.Context, row *domain.Row) error {
	wk := domain.ISOWeekOf(row.Date)
	res, err := r.db.ExecContext(ctx,
		`UPDATE items SET employee_id = ?, day = ?, start_time = ?, end_time = ?, remark = ?,
		        week_year = ?, week_no = ?
		 WHERE id = ? AND report_id = ?`,
		row.EmployeeID,
		row.Date.Format(domain.DateLayout),
		clockToString(row.Start), clockToString(row.End),
		row.Remark, wk.Year, wk.Week,
		row.ID, row.ReportID,
	)
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("item references unknown employee: %w", ErrNotFound)
		}
		return fmt.Errorf("updating item: %w", err)
	}
	return requireAffected(res, "item")
}

func (r *SQLiteItemRepo) GetByID(ctx context.Context, reportID, id int64) (*domain.Row, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+itemViewColumns+` FROM items_view WHERE id = ? AND report_id = ?`, id, reportID)
	item, err := scanItemFields(row.Scan)
	if err != nil {
		return nil, notFound("item", err)
	}
	return item, nil
}

// ListByReport returns a report's rows ordered by day, then employee name.
func (r *SQLiteItemRepo) ListByReport(ctx context.Context, reportID int64) ([]*domain.Row, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemViewColumns+` FROM items_view WHERE report_id = ?
		 ORDER BY day, name, id`, reportID)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var out []*domain.Row
	for rows.Next() {
		item, err := scanItemFields(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return out, nil
}

func (r *SQLiteItemRepo) Last(ctx context.Context, reportID int64) (*domain.Row, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+itemViewColumns+` FROM items_view WHERE report_id = ?
		 ORDER BY day DESC, start_time DESC, id DESC LIMIT 1`, reportID)
	item, err := scanItemFields(row.Scan)
	if err != nil {
		return nil, notFound("item", err)
	}
	return item, nil
}

func (r *SQLiteItemRepo) Delete(ctx context.Context, reportID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ? AND report_id = ?`, id, reportID)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return requireAffected(res, "item")
}

func (r *SQLiteItemRepo) CountByEmployee(ctx context.Context, employeeID int64) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE employee_id = ?`, employeeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return n, nil
}

// scanItemFields decodes one items_view row. Stored times carry seconds,
// which ParseClock drops. Loaded rows start with no modification flags.
func scanItemFields(scan func(dest ...any) error) (*domain.Row, error) {
	var (
		item            domain.Row
		day, start, end string
		week            int
	)
	if err := scan(&item.ID, &item.ReportID, &item.EmployeeID, &item.Name,
		&day, &week, &start, &end, &item.Remark); err != nil {
		return nil, err
	}
	var err error
	if item.Date, err = time.Parse(domain.DateLayout, day); err != nil {
		return nil, fmt.Errorf("parsing day: %w", err)
	}
	if item.Start, err = domain.ParseClock(start); err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	if item.End, err = domain.ParseClock(end); err != nil {
		return nil, fmt.Errorf("parsing end_time: %w", err)
	}
	item.Week = domain.Week(week)
	return &item, nil
}
