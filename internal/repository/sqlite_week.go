package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timereport/internal/db"
	"github.com/alexanderramin/timereport/internal/domain"
)

// SQLiteWeekRepo implements WeekRepo using a SQLite database.
type SQLiteWeekRepo struct {
	db db.DBTX
}

// NewSQLiteWeekRepo creates a new SQLiteWeekRepo.
func NewSQLiteWeekRepo(db db.DBTX) *SQLiteWeekRepo {
	return &SQLiteWeekRepo{db: db}
}

func (r *SQLiteWeekRepo) Upsert(ctx context.Context, m WeekMapping) error {
	if !m.Label.Valid() {
		return fmt.Errorf("%w: %d", domain.ErrInvalidWeek, int(m.Label))
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO weeks (year, week_of_year, type_of_week) VALUES (?, ?, ?)
		 ON CONFLICT(year, week_of_year) DO UPDATE SET type_of_week = excluded.type_of_week`,
		m.Week.Year, m.Week.Week, int(m.Label))
	if err != nil {
		return fmt.Errorf("upserting week %d/%d: %w", m.Week.Year, m.Week.Week, err)
	}
	return nil
}

func (r *SQLiteWeekRepo) Get(ctx context.Context, w domain.ISOWeek) (domain.Week, error) {
	var label int
	err := r.db.QueryRowContext(ctx,
		`SELECT type_of_week FROM weeks WHERE year = ? AND week_of_year = ?`, w.Year, w.Week).Scan(&label)
	if err != nil {
		return 0, notFound("week", err)
	}
	return domain.Week(label), nil
}

func (r *SQLiteWeekRepo) List(ctx context.Context) ([]WeekMapping, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT year, week_of_year, type_of_week FROM weeks ORDER BY year, week_of_year`)
	if err != nil {
		return nil, fmt.Errorf("listing weeks: %w", err)
	}
	defer rows.Close()

	var out []WeekMapping
	for rows.Next() {
		var m WeekMapping
		var label int
		if err := rows.Scan(&m.Week.Year, &m.Week.Week, &label); err != nil {
			return nil, fmt.Errorf("scanning week row: %w", err)
		}
		m.Label = domain.Week(label)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating weeks: %w", err)
	}
	return out, nil
}
