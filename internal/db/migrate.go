package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillSortKeys(db); err != nil {
		return fmt.Errorf("backfilling employee sort keys: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS reports (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		title             TEXT NOT NULL,
		start_date        TEXT NOT NULL,
		end_date          TEXT,
		was_pdf_generated INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS weeks (
		year         INTEGER NOT NULL,
		week_of_year INTEGER NOT NULL,
		type_of_week INTEGER NOT NULL CHECK(type_of_week BETWEEN 0 AND 3),
		PRIMARY KEY (year, week_of_year)
	)`,

	`CREATE TABLE IF NOT EXISTS holidays (
		date  TEXT PRIMARY KEY,
		title TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS items (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id INTEGER NOT NULL REFERENCES employees(id) ON DELETE RESTRICT,
		report_id   INTEGER NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
		day         TEXT NOT NULL,
		start_time  TEXT NOT NULL,
		end_time    TEXT NOT NULL,
		remark      TEXT NOT NULL DEFAULT '',
		week_year   INTEGER NOT NULL,
		week_no     INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_items_report_day ON items(report_id, day)`,
	`CREATE INDEX IF NOT EXISTS idx_items_employee ON items(employee_id)`,

	// Family-name sort key for per-employee listings.
	`ALTER TABLE employees ADD COLUMN sort_key TEXT NOT NULL DEFAULT ''`,

	// Denormalized rows as the table view shows them.
	`CREATE VIEW IF NOT EXISTS items_view AS
		SELECT i.id, i.employee_id, i.report_id, e.name, e.sort_key AS name_sort,
		       i.day, COALESCE(w.type_of_week, 0) AS type_of_week,
		       i.start_time, i.end_time, i.remark
		FROM items i
		JOIN employees e ON e.id = i.employee_id
		LEFT JOIN weeks w ON w.year = i.week_year AND w.week_of_year = i.week_no`,
}

// migrateBackfillSortKeys fills sort_key for employees created before the
// column existed. Idempotent: only rows with an empty key are touched.
func migrateBackfillSortKeys(db *sql.DB) error {
	ctx := context.Background()

	rows, err := db.QueryContext(ctx, `SELECT id, name FROM employees WHERE sort_key = ''`)
	if err != nil {
		return fmt.Errorf("listing employees without sort key: %w", err)
	}
	type pending struct {
		id   int64
		name string
	}
	var todo []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.name); err != nil {
			rows.Close()
			return fmt.Errorf("scanning employee: %w", err)
		}
		todo = append(todo, p)
	}
	rows.Close()

	for _, p := range todo {
		if _, err := db.ExecContext(ctx,
			`UPDATE employees SET sort_key = ? WHERE id = ?`, sortKey(p.name), p.id); err != nil {
			return fmt.Errorf("updating sort key for employee %d: %w", p.id, err)
		}
	}
	return nil
}

// sortKey mirrors domain.SortName; db stays free of domain imports.
func sortKey(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.Index(name, ","); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
