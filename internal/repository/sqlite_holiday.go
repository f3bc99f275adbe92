package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timereport/internal/db"
	"github.com/alexanderramin/timereport/internal/domain"
)

// SQLiteHolidayRepo implements HolidayRepo using a SQLite database.
type SQLiteHolidayRepo struct {
	db db.DBTX
}

// NewSQLiteHolidayRepo creates a new SQLiteHolidayRepo.
func NewSQLiteHolidayRepo(db db.DBTX) *SQLiteHolidayRepo {
	return &SQLiteHolidayRepo{db: db}
}

func (r *SQLiteHolidayRepo) InsertIgnore(ctx context.Context, holidays []domain.Holiday) (int, error) {
	added := 0
	for _, h := range holidays {
		res, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO holidays (date, title) VALUES (?, ?)`,
			h.Date.Format(domain.DateLayout), h.Title)
		if err != nil {
			return added, fmt.Errorf("inserting holiday %s: %w", domain.FormatDate(h.Date), err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return added, fmt.Errorf("reading affected rows: %w", err)
		}
		added += int(n)
	}
	return added, nil
}

func (r *SQLiteHolidayRepo) List(ctx context.Context) ([]domain.Holiday, error) {
	return r.query(ctx, `SELECT date, title FROM holidays ORDER BY date`)
}

// ListBetween returns holidays in [from, to], both inclusive.
func (r *SQLiteHolidayRepo) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Holiday, error) {
	return r.query(ctx,
		`SELECT date, title FROM holidays WHERE date BETWEEN ? AND ? ORDER BY date`,
		from.Format(domain.DateLayout), to.Format(domain.DateLayout))
}

func (r *SQLiteHolidayRepo) Exists(ctx context.Context, day time.Time) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM holidays WHERE date = ?`, day.Format(domain.DateLayout)).Scan(&n); err != nil {
		return false, fmt.Errorf("looking up holiday: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteHolidayRepo) query(ctx context.Context, query string, args ...any) ([]domain.Holiday, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()

	var out []domain.Holiday
	for rows.Next() {
		var h domain.Holiday
		var date string
		if err := rows.Scan(&date, &h.Title); err != nil {
			return nil, fmt.Errorf("scanning holiday row: %w", err)
		}
		if h.Date, err = time.Parse(domain.DateLayout, date); err != nil {
			return nil, fmt.Errorf("parsing holiday date: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return out, nil
}
