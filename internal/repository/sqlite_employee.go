package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/timereport/internal/db"
	"github.com/alexanderramin/timereport/internal/domain"
)

// SQLiteEmployeeRepo implements EmployeeRepo using a SQLite database.
type SQLiteEmployeeRepo struct {
	db db.DBTX
}

// NewSQLiteEmployeeRepo creates a new SQLiteEmployeeRepo.
func NewSQLiteEmployeeRepo(db db.DBTX) *SQLiteEmployeeRepo {
	return &SQLiteEmployeeRepo{db: db}
}

func (r *SQLiteEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	if e.SortKey == "" {
		e.SortKey = domain.SortName(e.Name)
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO employees (name, sort_key, created_at) VALUES (?, ?, ?)`,
		e.Name, e.SortKey, nowUTC())
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("employee %q: %w", e.Name, ErrConflict)
		}
		return fmt.Errorf("inserting employee: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading employee id: %w", err)
	}
	e.ID = id
	return nil
}

func (r *SQLiteEmployeeRepo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, sort_key FROM employees WHERE id = ?`, id)
	return scanEmployee(row)
}

func (r *SQLiteEmployeeRepo) GetByName(ctx context.Context, name string) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, sort_key FROM employees WHERE name = ?`, name)
	return scanEmployee(row)
}

func (r *SQLiteEmployeeRepo) EnsureByName(ctx context.Context, name string) (int64, error) {
	if _, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO employees (name, sort_key, created_at) VALUES (?, ?, ?)`,
		name, domain.SortName(name), nowUTC()); err != nil {
		return 0, fmt.Errorf("inserting employee %q: %w", name, err)
	}
	var id int64
	if err := r.db.QueryRowContext(ctx, `SELECT id FROM employees WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, notFound("employee", err)
	}
	return id, nil
}

func (r *SQLiteEmployeeRepo) List(ctx context.Context) ([]*domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, sort_key FROM employees ORDER BY sort_key, name`)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var out []*domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.SortKey); err != nil {
			return nil, fmt.Errorf("scanning employee row: %w", err)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	return out, nil
}

func (r *SQLiteEmployeeRepo) Update(ctx context.Context, e *domain.Employee) error {
	e.SortKey = domain.SortName(e.Name)
	res, err := r.db.ExecContext(ctx,
		`UPDATE employees SET name = ?, sort_key = ? WHERE id = ?`, e.Name, e.SortKey, e.ID)
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("employee %q: %w", e.Name, ErrConflict)
		}
		return fmt.Errorf("updating employee: %w", err)
	}
	return requireAffected(res, "employee")
}

func (r *SQLiteEmployeeRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("employee %d still has items: %w", id, ErrConflict)
		}
		return fmt.Errorf("deleting employee: %w", err)
	}
	return requireAffected(res, "employee")
}

func scanEmployee(row *sql.Row) (*domain.Employee, error) {
	var e domain.Employee
	if err := row.Scan(&e.ID, &e.Name, &e.SortKey); err != nil {
		return nil, notFound("employee", err)
	}
	return &e, nil
}

// requireAffected turns a write that touched no rows into ErrNotFound.
func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
