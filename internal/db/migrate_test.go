package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"employees", "reports", "weeks", "holidays", "items"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}

	var view string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='view' AND name='items_view'`).Scan(&view)
	require.NoError(t, err)
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_items_report_day", "idx_items_employee"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_WeekTypeConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO weeks (year, week_of_year, type_of_week) VALUES (2018, 3, 3)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO weeks (year, week_of_year, type_of_week) VALUES (2018, 4, 4)`)
	assert.Error(t, err, "labels beyond D must be rejected")
}

func TestMigrate_ItemsViewDefaultsWeek(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO employees (name, sort_key, created_at) VALUES ('Otto', 'Otto', '2018-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO reports (title, start_date) VALUES ('Jan', '2018-01-01')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO items (employee_id, report_id, day, start_time, end_time, week_year, week_no)
		VALUES (1, 1, '2018-01-08', '13:00:00', '15:30:00', 2018, 2)`)
	require.NoError(t, err)

	var name string
	var week int
	require.NoError(t, db.QueryRow(`SELECT name, type_of_week FROM items_view`).Scan(&name, &week))
	assert.Equal(t, "Otto", name)
	assert.Equal(t, 0, week, "unmapped weeks fall back to A")

	_, err = db.Exec(`INSERT INTO weeks (year, week_of_year, type_of_week) VALUES (2018, 2, 2)`)
	require.NoError(t, err)
	require.NoError(t, db.QueryRow(`SELECT type_of_week FROM items_view`).Scan(&week))
	assert.Equal(t, 2, week)
}
