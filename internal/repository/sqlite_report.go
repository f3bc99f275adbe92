package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/timereport/internal/db"
	"github.com/alexanderramin/timereport/internal/domain"
)

const reportColumns = `id, title, start_date, end_date, was_pdf_generated`

// SQLiteReportRepo implements ReportRepo using a SQLite database.
type SQLiteReportRepo struct {
	db db.DBTX
}

// NewSQLiteReportRepo creates a new SQLiteReportRepo.
func NewSQLiteReportRepo(db db.DBTX) *SQLiteReportRepo {
	return &SQLiteReportRepo{db: db}
}

func (r *SQLiteReportRepo) Create(ctx context.Context, rep *domain.Report) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reports (title, start_date, end_date, was_pdf_generated) VALUES (?, ?, ?, ?)`,
		rep.Title,
		rep.StartDate.Format(domain.DateLayout),
		nullableDateToString(rep.EndDate),
		boolToInt(rep.PDFGenerated),
	)
	if err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading report id: %w", err)
	}
	rep.ID = id
	return nil
}

func (r *SQLiteReportRepo) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = ?`, id)
	return scanReport(row)
}

func (r *SQLiteReportRepo) Latest(ctx context.Context) (*domain.Report, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports ORDER BY id DESC LIMIT 1`)
	return scanReport(row)
}

func (r *SQLiteReportRepo) List(ctx context.Context) ([]*domain.Report, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+reportColumns+` FROM reports ORDER BY start_date, id`)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var out []*domain.Report
	for rows.Next() {
		rep, err := scanReportFields(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}
	return out, nil
}

func (r *SQLiteReportRepo) Update(ctx context.Context, rep *domain.Report) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reports SET title = ?, start_date = ?, end_date = ? WHERE id = ?`,
		rep.Title,
		rep.StartDate.Format(domain.DateLayout),
		nullableDateToString(rep.EndDate),
		rep.ID,
	)
	if err != nil {
		return fmt.Errorf("updating report: %w", err)
	}
	return requireAffected(res, "report")
}

func (r *SQLiteReportRepo) SetPDFGenerated(ctx context.Context, id int64, generated bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reports SET was_pdf_generated = ? WHERE id = ?`, boolToInt(generated), id)
	if err != nil {
		return fmt.Errorf("updating was_pdf_generated: %w", err)
	}
	return requireAffected(res, "report")
}

func (r *SQLiteReportRepo) MaxEndDate(ctx context.Context) (time.Time, bool, error) {
	var end sql.NullString
	if err := r.db.QueryRowContext(ctx, `SELECT MAX(end_date) FROM reports`).Scan(&end); err != nil {
		return time.Time{}, false, fmt.Errorf("finding latest report end date: %w", err)
	}
	t, err := parseNullableDate(end)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing end_date: %w", err)
	}
	return t, !t.IsZero(), nil
}

func scanReport(row *sql.Row) (*domain.Report, error) {
	rep, err := scanReportFields(row.Scan)
	if err != nil {
		return nil, notFound("report", err)
	}
	return rep, nil
}

// scanReportFields decodes one report from either a *sql.Row or *sql.Rows scanner.
func scanReportFields(scan func(dest ...any) error) (*domain.Report, error) {
	var rep domain.Report
	var start string
	var end sql.NullString
	var pdf int
	if err := scan(&rep.ID, &rep.Title, &start, &end, &pdf); err != nil {
		return nil, err
	}
	var err error
	if rep.StartDate, err = time.Parse(domain.DateLayout, start); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if rep.EndDate, err = parseNullableDate(end); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	rep.PDFGenerated = intToBool(pdf)
	return &rep, nil
}
