package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_EmployeesWithoutSortKey simulates a database created
// before employees carried a sort key. Existing rows must survive and get a
// backfilled key.
func TestMigrate_UpgradePath_EmployeesWithoutSortKey(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE employees (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`)
	require.NoError(t, err)
	for _, name := range []string{"Alice Berg", "Doe, Jane", "Baz"} {
		_, err = db.Exec(`INSERT INTO employees (name, created_at) VALUES (?, '2017-08-01T00:00:00Z')`, name)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	got := map[string]string{}
	rows, err := db.Query(`SELECT name, sort_key FROM employees`)
	require.NoError(t, err)
	for rows.Next() {
		var name, key string
		require.NoError(t, rows.Scan(&name, &key))
		got[name] = key
	}
	require.NoError(t, rows.Err())
	rows.Close()

	assert.Equal(t, map[string]string{
		"Alice Berg": "Berg",
		"Doe, Jane":  "Doe",
		"Baz":        "Baz",
	}, got)

	// A second run leaves keys alone.
	_, err = db.Exec(`UPDATE employees SET sort_key = 'custom' WHERE name = 'Baz'`)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	var key string
	require.NoError(t, db.QueryRow(`SELECT sort_key FROM employees WHERE name = 'Baz'`).Scan(&key))
	assert.Equal(t, "custom", key)
}
