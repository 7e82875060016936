package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	for _, name := range []string{"sqlite3", "mysql", "postgres", "MySQL"} {
		d, err := DialectFor(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, d.DonorsDDL)
		assert.NotEmpty(t, d.AdminsDDL)
	}

	_, err := DialectFor("oracle")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	pg, _ := DialectFor(Postgres)
	my, _ := DialectFor(MySQL)

	q := "SELECT * FROM blood_donors WHERE blood_group = ? AND LOWER(location) LIKE ?"
	assert.Equal(t, "SELECT * FROM blood_donors WHERE blood_group = $1 AND LOWER(location) LIKE $2", pg.Rebind(q))
	assert.Equal(t, q, my.Rebind(q))

	assert.Equal(t, "SELECT '?' FROM t WHERE a = $1", pg.Rebind("SELECT '?' FROM t WHERE a = ?"))
}

func TestMySQLDSN(t *testing.T) {
	assert.Equal(t,
		"root@tcp(db:3306)/blood?charset=utf8mb4&parseTime=true&loc=UTC",
		MySQLDSN("root", "", "db", "3306", "blood"))
	assert.Equal(t,
		"root:secret@tcp(db:3306)/blood?charset=utf8mb4&parseTime=true&loc=UTC",
		MySQLDSN("root", "secret", "db", "3306", "blood"))
}

func TestOpenSQLiteMemory(t *testing.T) {
	db, d, err := Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, SQLite, d.Name)
	_, err = db.Exec(d.DonorsDDL)
	require.NoError(t, err)
}
